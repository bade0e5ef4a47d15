package controllers

import (
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuiz scores a quiz submission and records the result. The
// surrounding lesson is marked completed as part of the same action.
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))
	lessonID := uint(c.Locals("lessonID").(int))
	quizID := uint(c.Locals("quizID").(int))
	db := database.Database.Db

	if _, err := findCourse(db, courseID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if _, err := findEnrollment(db, userID, courseID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	// Quiz must belong to the lesson and course from the path
	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND lesson_id = ? AND course_id = ? AND is_deleted = ?", quizID, lessonID, courseID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var questions []courseModels.Question
	if err := db.Where("quiz_id = ? AND is_deleted = ?", quizID, false).Order("order_index asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	reqData, ok := c.Locals("validatedQuizSubmission").(*courseValidator.QuizSubmission)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	score, correctCount := ScoreQuiz(questions, reqData.Answers)

	result, progress, err := RecordQuizResult(db, userID, courseID, lessonID, quizID, score)
	if err != nil {
		status, message := statusForTrackerError(err)
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	// Reveal correct answers after submission
	answerKey := make(map[uint]int, len(questions))
	for _, q := range questions {
		answerKey[q.ID] = q.CorrectAnswer
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"result":          result,
		"progress":        progress,
		"score":           score,
		"correct_count":   correctCount,
		"total_questions": len(questions),
		"answer_key":      answerKey,
	})
}
