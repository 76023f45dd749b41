package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	UserID         string `gorm:"uniqueIndex;size:64"` // short handle, e.g. "maria48213"
	Email          string `gorm:"uniqueIndex;not null"`
	Password       string `gorm:"not null"`
	FirstName      string
	LastName       string
	Role           Role  `gorm:"size:16;default:'user';index"`
	NutritionistID *uint `gorm:"index"` // assigned nutritionist, when any
	ProfilePicture string
	MFAEnabled     bool
	MFACode        string
	ResetToken     string
	ResetTokenExp  time.Time
	Onboarded      bool
	Disabled       bool
}
