package models

import "gorm.io/gorm"

const (
	InsightPredictive = "predictive" // per-user outlook from history
	InsightGroup      = "group"      // nutritionist roster analysis
)

// Insight stores LLM-generated analysis verbatim. For kind=group the row
// belongs to the nutritionist who requested it.
type Insight struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null"`
	Kind      string `gorm:"size:16;index"`
	ModelName string `gorm:"size:64"`
	Content   string `gorm:"type:text"`
}
