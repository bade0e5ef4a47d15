package course

import (
	"time"

	"gorm.io/gorm"
)

// UserProgress tracks how far a user has progressed through a course.
// One row per (UserID, CourseID); created on enroll, or lazily on the
// first completion if a seeded enrollment lacks one.
type UserProgress struct {
	gorm.Model
	UserID               uint      `json:"user_id" gorm:"index;not null"`
	CourseID             uint      `json:"course_id" gorm:"index;not null"`
	LastAccessed         time.Time `json:"last_accessed"`
	CompletionPercentage float64   `json:"completion_percentage" gorm:"default:0"` // 0-100
	IsDeleted            bool      `json:"-" gorm:"default:false"`
}

// LessonCompletion records that a user finished a lesson. Semantically a
// set: inserting an already-present (UserID, LessonID) pair is a no-op.
type LessonCompletion struct {
	gorm.Model
	UserID    uint `json:"user_id" gorm:"index;not null"`
	CourseID  uint `json:"course_id" gorm:"index;not null"`
	LessonID  uint `json:"lesson_id" gorm:"index;not null"`
	IsDeleted bool `json:"-" gorm:"default:false"`
}

// QuizResult holds the latest quiz attempt for a user. Resubmission
// overwrites score and attempt time, there is no attempt history.
type QuizResult struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	LessonID    uint      `json:"lesson_id" gorm:"index;not null"`
	QuizID      uint      `json:"quiz_id" gorm:"index;not null"`
	Score       int       `json:"score"` // 0-100
	Completed   bool      `json:"completed" gorm:"default:false"`
	AttemptedAt time.Time `json:"attempted_at"`
	IsDeleted   bool      `json:"-" gorm:"default:false"`
}
