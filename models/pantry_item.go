package models

import "gorm.io/gorm"

type PantryItem struct {
	gorm.Model
	UserID   uint    `gorm:"not null;uniqueIndex:idx_user_item"`
	Name     string  `gorm:"size:255;not null;uniqueIndex:idx_user_item"`
	Quantity float64
	Unit     string `gorm:"size:32"` // g, ml, pcs, ...
}
