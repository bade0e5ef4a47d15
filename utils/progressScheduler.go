package utils

import (
	"log"
	"time"

	"learnhub/database"
	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/robfig/cron/v3"
)

// InitializeProgressScheduler sets up the hourly enrollment maintenance
// job. Tracker operations never touch Enrollment.Status themselves;
// this job flips fully-completed enrollments to COMPLETED.
func InitializeProgressScheduler() *cron.Cron {
	log.Println("[PROGRESS-SCHEDULER] Initializing progress scheduler...")

	c := cron.New()

	c.AddFunc("@hourly", func() {
		log.Println("[PROGRESS-SCHEDULER] Running enrollment maintenance...")
		CompleteFinishedEnrollments()
	})

	c.Start()
	log.Println("[PROGRESS-SCHEDULER] Progress scheduler started - runs hourly")
	return c
}

// CompleteFinishedEnrollments marks ACTIVE enrollments whose progress
// reached 100% as COMPLETED and notifies the user
func CompleteFinishedEnrollments() {
	db := database.Database.Db

	var finished []courseModels.UserProgress
	if err := db.
		Where("completion_percentage >= 100 AND is_deleted = ?", false).
		Find(&finished).Error; err != nil {
		log.Printf("[PROGRESS-SCHEDULER] Error fetching finished progress: %v", err)
		return
	}

	for _, progress := range finished {
		var enrollment courseModels.Enrollment
		if err := db.
			Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
				progress.UserID, progress.CourseID, courseModels.EnrollmentActive, false).
			First(&enrollment).Error; err != nil {
			continue
		}

		now := time.Now()
		enrollment.Status = courseModels.EnrollmentCompleted
		enrollment.CompletedAt = &now
		if err := db.Save(&enrollment).Error; err != nil {
			log.Printf("[PROGRESS-SCHEDULER] Error completing enrollment %d: %v", enrollment.ID, err)
			continue
		}
		log.Printf("[PROGRESS-SCHEDULER] Enrollment %d completed (user=%d course=%d)", enrollment.ID, progress.UserID, progress.CourseID)

		var user models.User
		var course courseModels.Course
		if db.First(&user, progress.UserID).Error == nil && db.First(&course, progress.CourseID).Error == nil {
			SendCourseCompletionEmail(user.Email, user.Name, course.Title)
		}
	}
}
