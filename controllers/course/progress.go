package controllers

import (
	"errors"
	"time"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Tracker errors, mapped to HTTP statuses by the handlers
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrLessonNotFound = errors.New("lesson not found")
	ErrQuizNotFound   = errors.New("quiz not found")
	ErrNotEnrolled    = errors.New("not enrolled in course")
)

// findCourse resolves a published course by ID
func findCourse(db *gorm.DB, courseID uint) (*courseModels.Course, error) {
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return nil, ErrCourseNotFound
	}
	return &course, nil
}

// findEnrollment resolves the live enrollment for a (user, course) pair
func findEnrollment(db *gorm.DB, userID, courseID uint) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return nil, ErrNotEnrolled
	}
	return &enrollment, nil
}

// ensureProgress returns the UserProgress row for the pair, creating it
// when missing. Seeded enrollments may not carry one yet.
func ensureProgress(db *gorm.DB, userID, courseID uint) (*courseModels.UserProgress, error) {
	var progress courseModels.UserProgress
	err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress = courseModels.UserProgress{
		UserID:               userID,
		CourseID:             courseID,
		LastAccessed:         time.Now(),
		CompletionPercentage: 0,
	}
	if err := db.Create(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// completionPercentage recomputes 100 * completed / total lessons for
// the pair. A course with no lessons is defined as 0, never NaN.
func completionPercentage(db *gorm.DB, userID, courseID uint) (float64, error) {
	var totalLessons int64
	if err := db.Model(&courseModels.Lesson{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&totalLessons).Error; err != nil {
		return 0, err
	}
	if totalLessons == 0 {
		return 0, nil
	}

	var completed int64
	if err := db.Model(&courseModels.LessonCompletion{}).Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).Count(&completed).Error; err != nil {
		return 0, err
	}
	return float64(completed) / float64(totalLessons) * 100, nil
}

// RecordLessonCompletion marks a lesson completed for an enrolled user.
// Re-completing a lesson leaves the completion set unchanged but still
// refreshes last access and the derived percentage.
func RecordLessonCompletion(db *gorm.DB, userID, courseID, lessonID uint) (*courseModels.UserProgress, error) {
	if _, err := findCourse(db, courseID); err != nil {
		return nil, err
	}
	if _, err := findEnrollment(db, userID, courseID); err != nil {
		return nil, err
	}

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).First(&lesson).Error; err != nil {
		return nil, ErrLessonNotFound
	}

	progress, err := ensureProgress(db, userID, courseID)
	if err != nil {
		return nil, err
	}

	var existing courseModels.LessonCompletion
	err = db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		completion := courseModels.LessonCompletion{
			UserID:   userID,
			CourseID: courseID,
			LessonID: lessonID,
		}
		if err := db.Create(&completion).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	percentage, err := completionPercentage(db, userID, courseID)
	if err != nil {
		return nil, err
	}

	progress.CompletionPercentage = percentage
	progress.LastAccessed = time.Now()
	if err := db.Save(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

// RecordQuizResult stores the latest quiz score for an enrolled user
// and marks the surrounding lesson completed. Resubmission overwrites
// the previous result; there is no attempt history.
func RecordQuizResult(db *gorm.DB, userID, courseID, lessonID, quizID uint, score int) (*courseModels.QuizResult, *courseModels.UserProgress, error) {
	if _, err := findCourse(db, courseID); err != nil {
		return nil, nil, err
	}
	if _, err := findEnrollment(db, userID, courseID); err != nil {
		return nil, nil, err
	}

	var result courseModels.QuizResult
	err := db.Where("user_id = ? AND quiz_id = ? AND is_deleted = ?", userID, quizID, false).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		result = courseModels.QuizResult{
			UserID:      userID,
			CourseID:    courseID,
			LessonID:    lessonID,
			QuizID:      quizID,
			Score:       score,
			Completed:   true,
			AttemptedAt: time.Now(),
		}
		if err := db.Create(&result).Error; err != nil {
			return nil, nil, err
		}
	} else if err != nil {
		return nil, nil, err
	} else {
		result.Score = score
		result.Completed = true
		result.AttemptedAt = time.Now()
		if err := db.Save(&result).Error; err != nil {
			return nil, nil, err
		}
	}

	progress, err := RecordLessonCompletion(db, userID, courseID, lessonID)
	if err != nil {
		return nil, nil, err
	}
	return &result, progress, nil
}

// statusForTrackerError maps tracker errors onto HTTP statuses
func statusForTrackerError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrCourseNotFound):
		return fiber.StatusNotFound, "Course not found!"
	case errors.Is(err, ErrLessonNotFound):
		return fiber.StatusNotFound, "Lesson not found!"
	case errors.Is(err, ErrQuizNotFound):
		return fiber.StatusNotFound, "Quiz not found!"
	case errors.Is(err, ErrNotEnrolled):
		return fiber.StatusForbidden, "Please enroll in this course first!"
	default:
		return fiber.StatusInternalServerError, "Failed to update progress!"
	}
}

// MarkLessonComplete records a lesson completion for the current user
func MarkLessonComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	progress, err := RecordLessonCompletion(database.Database.Db, userID, uint(courseID), uint(lessonID))
	if err != nil {
		status, message := statusForTrackerError(err)
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", fiber.Map{
		"progress": progress,
	})
}

// GetUserProgress gets the user's progress in a course
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))
	db := database.Database.Db

	if _, err := findCourse(db, courseID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	enrollment, err := findEnrollment(db, userID, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	// Pure lookup: absent progress is reported as such, not created
	var progress courseModels.UserProgress
	hasProgress := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&progress).Error == nil

	var completions []courseModels.LessonCompletion
	db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).Order("created_at asc").Find(&completions)

	completedIDs := make([]uint, len(completions))
	for i, completion := range completions {
		completedIDs[i] = completion.LessonID
	}

	var quizResults []courseModels.QuizResult
	db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).Find(&quizResults)

	data := fiber.Map{
		"enrollment":        enrollment,
		"completed_lessons": completedIDs,
		"quiz_results":      quizResults,
	}
	if hasProgress {
		data["progress"] = progress
	} else {
		data["progress"] = nil
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", data)
}
