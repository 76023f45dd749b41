package models

import (
	"time"

	"gorm.io/gorm"
)

// MealPlan stores one AI-generated plan. Payload is the gateway's JSON kept
// verbatim — the backend never edits what the model produced.
type MealPlan struct {
	gorm.Model
	UserID     uint      `gorm:"index;not null"`
	ShareToken string    `gorm:"uniqueIndex;size:64"`
	WeekStart  time.Time `gorm:"index"`

	// target snapshot at generation time
	Calories int
	ProteinG int
	CarbsG   int
	FatsG    int

	ModelName string `gorm:"size:64"`
	Payload   string `gorm:"type:text"`
}
