package models

import (
	"time"

	"gorm.io/gorm"
)

// WeeklyFeedback is one user-submitted check-in per reporting week.
// Rows are append-only; the composite unique index is the storage-level
// guard against submitting the same week twice.
type WeeklyFeedback struct {
	gorm.Model
	UserID   uint      `gorm:"not null;uniqueIndex:idx_user_week"`
	WeekDate time.Time `gorm:"not null;uniqueIndex:idx_user_week"`

	WeightKg           float64
	EnergyLevel        int // 1-5
	HungerSatisfaction int // 1-5
	AdherenceLevel     int // 1-5
	Notes              string `gorm:"type:text"`
}
