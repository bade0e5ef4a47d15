package controllers

import (
	"errors"
	"time"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	"learnhub/utils"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnrollUser creates the Enrollment and UserProgress pair for a user
// and course. Enrolling twice is a no-op returning the existing record.
func EnrollUser(db *gorm.DB, userID, courseID uint) (*courseModels.Enrollment, bool, error) {
	course, err := findCourse(db, courseID)
	if err != nil {
		return nil, false, err
	}

	existing, err := findEnrollment(db, userID, courseID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotEnrolled) {
		return nil, false, err
	}

	now := time.Now()
	enrollment := courseModels.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: now,
		Status:     courseModels.EnrollmentActive,
	}
	progress := courseModels.UserProgress{
		UserID:               userID,
		CourseID:             courseID,
		LastAccessed:         now,
		CompletionPercentage: 0,
	}

	tx := db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return nil, false, err
	}
	if err := tx.Create(&progress).Error; err != nil {
		tx.Rollback()
		return nil, false, err
	}
	if err := tx.Model(course).Update("enrolled_count", gorm.Expr("enrolled_count + 1")).Error; err != nil {
		tx.Rollback()
		return nil, false, err
	}
	tx.Commit()

	return &enrollment, true, nil
}

// ListEnrolledCourses returns the courses a user is actively enrolled
// in, in catalog order regardless of enrollment order.
func ListEnrolledCourses(db *gorm.DB, userID uint) ([]courseModels.Course, error) {
	var courses []courseModels.Course
	err := db.Model(&courseModels.Course{}).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ? AND enrollments.status = ? AND enrollments.is_deleted = ?", userID, courseModels.EnrollmentActive, false).
		Where("courses.is_deleted = ?", false).
		Order("courses.id asc").
		Find(&courses).Error
	return courses, err
}

func EnrollInCourse(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated course ID
	courseID := c.Locals("courseID").(int)

	enrollment, created, err := EnrollUser(database.Database.Db, userID, uint(courseID))
	if err != nil {
		status, message := statusForTrackerError(err)
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	if !created {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Already enrolled in this course.", enrollment)
	}

	var course courseModels.Course
	if err := database.Database.Db.First(&course, enrollment.CourseID).Error; err == nil {
		utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

func GetEnrollments(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated pagination request
	reqData, ok := c.Locals("validatedEnrollmentList").(*courseValidator.EnrollmentListQuery)
	if !ok {
		// Fetch all enrollments without pagination, in catalog order
		var enrollments []courseModels.Enrollment
		if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Preload("Course").Order("course_id asc").Find(&enrollments).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
		}
		response := map[string]interface{}{
			"enrollments": enrollments,
			"pagination": map[string]interface{}{
				"total": int64(len(enrollments)),
				"page":  1,
				"limit": len(enrollments),
			},
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", response)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	// Fetch enrollments with pagination, in catalog order
	var enrollments []courseModels.Enrollment
	db := database.Database.Db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND is_deleted = ?", userID, false).Preload("Course")

	// Get total count
	var total int64
	db.Count(&total)

	if err := db.Offset(offset).Limit(limit).Order("course_id asc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	// Prepare response
	response := map[string]interface{}{
		"enrollments": enrollments,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", response)
}
