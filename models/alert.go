package models

import "time"

type Alert struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Type      string `gorm:"size:32"` // "adjustment" | "plan" | "reminder" | "info"
	Message   string `gorm:"type:text"`
	Read      bool   `gorm:"default:false"`
	CreatedAt time.Time
}
