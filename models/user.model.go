package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	PublicID  string     `json:"public_id" gorm:"uniqueIndex;size:36;not null"`
	Name      string     `json:"name" gorm:"default:''"`
	Email     string     `json:"email" gorm:"unique;not null"`
	Avatar    string     `json:"avatar" gorm:"default:''"`
	Password  string     `json:"-" gorm:"default:''"` // stored hashed, never verified on login (mock auth)
	LastLogin *time.Time `json:"last_login"`
	IsDeleted bool       `json:"-" gorm:"default:false"`
}
