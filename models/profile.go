package models

import (
	"gorm.io/gorm"
)

// Profile holds each user's anthropometrics plus the derived daily targets.
// Targets are written at onboarding by the calculator and afterwards only by
// the weekly adjustment engine (or an explicit user edit).
type Profile struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`

	AgeYears      int
	Gender        string  `gorm:"size:8"`  // "male" | "female"
	WeightKg      float64
	HeightCm      float64
	ActivityLevel string  `gorm:"size:16"` // sedentary|light|moderate|active|very_active
	WorkType      string  `gorm:"size:32"`
	Goal          string  `gorm:"size:8"`  // lose|gain|maintain
	DietType      string  `gorm:"size:32"`
	Restrictions  string  `gorm:"type:text"` // comma-separated allergen/food labels

	TDEE           int // kcal/day
	TargetCalories int
	TargetProteinG int
	TargetCarbsG   int
	TargetFatsG    int
}
