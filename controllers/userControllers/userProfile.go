package userControllers

import (
	courseControllers "learnhub/controllers/course"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the current user's profile
func GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}

// GetDashboard returns the user's enrolled courses joined with their
// progress, in catalog order
func GetDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	db := database.Database.Db

	courses, err := courseControllers.ListEnrolledCourses(db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	type CourseProgress struct {
		Course           courseModels.Course        `json:"course"`
		Progress         *courseModels.UserProgress `json:"progress"`
		CompletedLessons int64                      `json:"completed_lessons"`
		TotalLessons     int64                      `json:"total_lessons"`
	}

	cards := make([]CourseProgress, len(courses))
	for i, crs := range courses {
		cards[i] = CourseProgress{Course: crs}

		var progress courseModels.UserProgress
		if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, crs.ID, false).First(&progress).Error; err == nil {
			cards[i].Progress = &progress
		}

		db.Model(&courseModels.Lesson{}).Where("course_id = ? AND is_deleted = ?", crs.ID, false).Count(&cards[i].TotalLessons)
		db.Model(&courseModels.LessonCompletion{}).Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, crs.ID, false).Count(&cards[i].CompletedLessons)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"user":    user,
		"courses": cards,
	})
}
