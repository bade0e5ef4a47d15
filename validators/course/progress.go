package courseValidator

import (
	"strconv"
	"strings"

	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// intParam validates a positive integer path parameter and stores it
// under localsKey
func intParam(name, localsKey string) func(*fiber.Ctx) (int, error) {
	return func(c *fiber.Ctx) (int, error) {
		raw := strings.TrimSpace(c.Params(name))
		if raw == "" {
			return 0, fiber.NewError(fiber.StatusBadRequest, name+" is required!")
		}
		val, err := strconv.Atoi(raw)
		if err != nil || val <= 0 {
			return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name+"!")
		}
		c.Locals(localsKey, val)
		return val, nil
	}
}

// MarkLessonComplete validates the course and lesson path parameters
func MarkLessonComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := intParam("course_id", "courseID")(c); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		if _, err := intParam("lesson_id", "lessonID")(c); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		return c.Next()
	}
}

// QuizSubmission is the validated quiz submission body. Answers maps
// question ID to the selected option index; unanswered questions are
// simply absent and scored as incorrect.
type QuizSubmission struct {
	Answers map[uint]int `json:"answers"`
}

// SubmitQuiz validates the quiz submission path parameters and body
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := intParam("course_id", "courseID")(c); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		if _, err := intParam("lesson_id", "lessonID")(c); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		if _, err := intParam("quiz_id", "quizID")(c); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}

		reqData := new(QuizSubmission)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if reqData.Answers == nil {
			reqData.Answers = map[uint]int{}
		}

		c.Locals("validatedQuizSubmission", reqData)
		return c.Next()
	}
}

// GetCourseProgress validates the course path parameter
func GetCourseProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := intParam("course_id", "courseID")(c); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		return c.Next()
	}
}
