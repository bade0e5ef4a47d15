package controllers

import (
	"math"

	courseModels "learnhub/models/course"
)

// ScoreQuiz computes the percentage score for a quiz submission.
// Answers maps question ID to the selected option index; questions with
// no entry count as incorrect. The result is rounded to the nearest
// integer. A quiz with no questions scores 0.
func ScoreQuiz(questions []courseModels.Question, answers map[uint]int) (score int, correctCount int) {
	if len(questions) == 0 {
		return 0, 0
	}

	for _, q := range questions {
		if selected, ok := answers[q.ID]; ok && selected == q.CorrectAnswer {
			correctCount++
		}
	}

	score = int(math.Round(float64(correctCount) / float64(len(questions)) * 100))
	return score, correctCount
}
