package userProfileRoutes

import (
	courseControllers "learnhub/controllers/course"
	userProfileController "learnhub/controllers/userControllers"
	"learnhub/middleware"
	courseValidators "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userProfileController.GetProfile)
	userGroup.Get("/dashboard", middleware.JWTMiddleware, userProfileController.GetDashboard)
	userGroup.Get("/enrollments", middleware.JWTMiddleware, courseValidators.GetUserEnrollments(), courseControllers.GetEnrollments)
}
