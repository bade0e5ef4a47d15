package courseValidator

import (
	"strconv"
	"strings"

	"learnhub/middleware"
	courseModels "learnhub/models/course"

	"github.com/gofiber/fiber/v2"
)

// CourseListQuery is the validated catalog listing query
type CourseListQuery struct {
	Page     *int   `query:"page"`
	Limit    *int   `query:"limit"`
	Category string `query:"category"`
	Level    string `query:"level"`
	Search   string `query:"search"`
}

// CourseList validates the catalog listing query parameters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseListQuery)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if reqData.Level != "" {
			level := strings.ToUpper(strings.TrimSpace(reqData.Level))
			switch level {
			case courseModels.LevelBeginner, courseModels.LevelIntermediate, courseModels.LevelAdvanced:
				reqData.Level = level
			default:
				errors["level"] = "Level must be one of BEGINNER, INTERMEDIATE, ADVANCED!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// GetCourseDetail validates the course ID path parameter
func GetCourseDetail() fiber.Handler {
	return courseIDParam("id")
}

// courseIDParam validates a positive integer course ID path parameter
// and stores it as c.Locals("courseID")
func courseIDParam(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params(name))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		// Validate CourseID is a valid integer
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}
