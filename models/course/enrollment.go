package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentPaused    = "PAUSED" // reserved, no transition sets it yet
)

// Enrollment tracks a user's membership in a course. At most one live
// row exists per (UserID, CourseID).
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	Course      Course     `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	EnrolledAt  time.Time  `json:"enrolled_at"`
	Status      string     `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, COMPLETED, PAUSED
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `json:"-" gorm:"default:false"`
}
