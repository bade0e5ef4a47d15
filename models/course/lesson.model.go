package course

import "gorm.io/gorm"

// Lesson represents a video lesson within a course
type Lesson struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text"`
	VideoID     string `json:"video_id"` // YouTube video ID
	Duration    string `json:"duration"` // e.g. "15:30"
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Lesson order in course
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
