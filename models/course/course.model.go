package course

import "gorm.io/gorm"

// Course levels
const (
	LevelBeginner     = "BEGINNER"
	LevelIntermediate = "INTERMEDIATE"
	LevelAdvanced     = "ADVANCED"
)

// Course represents a learning course in the catalog
type Course struct {
	gorm.Model
	Title         string  `json:"title"`
	Description   string  `json:"description" gorm:"type:text"`
	Instructor    string  `json:"instructor"`
	ThumbnailURL  string  `json:"thumbnail_url"`
	Category      string  `json:"category" gorm:"index"`
	Level         string  `json:"level" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	Duration      string  `json:"duration"`                        // e.g. "8 weeks"
	EnrolledCount int64   `json:"enrolled" gorm:"default:0"`
	Rating        float64 `json:"rating" gorm:"default:0"`
	IsPublished   bool    `json:"is_published" gorm:"default:true"`
	IsDeleted     bool    `json:"-" gorm:"default:false"`
}
