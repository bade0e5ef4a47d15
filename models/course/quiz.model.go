package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz represents a multiple choice quiz attached to a lesson
type Quiz struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	LessonID   uint   `json:"lesson_id" gorm:"index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `json:"-" gorm:"default:false"`
}

// Question represents a single choice question within a quiz.
// Options holds the ordered option texts as a JSON array; CorrectAnswer
// is the index into that array.
type Question struct {
	gorm.Model
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	Text          string         `json:"text" gorm:"type:text"`
	Options       datatypes.JSON `json:"options"`
	CorrectAnswer int            `json:"-" gorm:"not null;default:0"`
	OrderIndex    int            `json:"order_index" gorm:"default:0"`
	IsDeleted     bool           `json:"-" gorm:"default:false"`
}
