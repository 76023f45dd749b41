package models

import "gorm.io/gorm"

// AdjustmentRecord is the append-only audit trail of target changes.
// One row per executed adjustment; weeks that only update the stored
// weight leave no record.
type AdjustmentRecord struct {
	gorm.Model
	UserID           uint `gorm:"index;not null"`
	WeeklyFeedbackID uint `gorm:"index;not null"` // feedback that triggered it

	PreviousCalories int
	NewCalories      int
	PreviousProteinG int
	NewProteinG      int
	PreviousCarbsG   int
	NewCarbsG        int
	PreviousFatsG    int
	NewFatsG         int

	Reason string `gorm:"type:text"` // triggered rules joined by "; "
}
