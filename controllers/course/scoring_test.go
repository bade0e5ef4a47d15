package controllers

import (
	"testing"

	courseModels "learnhub/models/course"

	"gorm.io/gorm"
)

func question(id uint, correct int) courseModels.Question {
	return courseModels.Question{
		Model:         gorm.Model{ID: id},
		CorrectAnswer: correct,
	}
}

func TestScoreQuiz(t *testing.T) {
	tests := []struct {
		name      string
		questions []courseModels.Question
		answers   map[uint]int
		wantScore int
		wantHits  int
	}{
		{
			name:      "two of three correct rounds to 67",
			questions: []courseModels.Question{question(1, 0), question(2, 1), question(3, 2)},
			answers:   map[uint]int{1: 0, 2: 1, 3: 9},
			wantScore: 67,
			wantHits:  2,
		},
		{
			name:      "all correct",
			questions: []courseModels.Question{question(1, 0), question(2, 1)},
			answers:   map[uint]int{1: 0, 2: 1},
			wantScore: 100,
			wantHits:  2,
		},
		{
			name:      "empty answer mapping scores zero",
			questions: []courseModels.Question{question(1, 0), question(2, 1), question(3, 2)},
			answers:   map[uint]int{},
			wantScore: 0,
			wantHits:  0,
		},
		{
			name:      "partial mapping counts missing as incorrect",
			questions: []courseModels.Question{question(1, 0), question(2, 1), question(3, 2)},
			answers:   map[uint]int{2: 1},
			wantScore: 33,
			wantHits:  1,
		},
		{
			name:      "one of three rounds down",
			questions: []courseModels.Question{question(1, 0), question(2, 0), question(3, 0)},
			answers:   map[uint]int{1: 0, 2: 3, 3: 3},
			wantScore: 33,
			wantHits:  1,
		},
		{
			name:      "no questions",
			questions: nil,
			answers:   map[uint]int{1: 0},
			wantScore: 0,
			wantHits:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, hits := ScoreQuiz(tt.questions, tt.answers)
			if score != tt.wantScore {
				t.Errorf("ScoreQuiz() score = %v, want %v", score, tt.wantScore)
			}
			if hits != tt.wantHits {
				t.Errorf("ScoreQuiz() correctCount = %v, want %v", hits, tt.wantHits)
			}
		})
	}
}
