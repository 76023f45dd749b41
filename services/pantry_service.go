package services

import (
	"errors"

	"github.com/Makarios44/smart-plan-eats-sub000/config"
	"github.com/Makarios44/smart-plan-eats-sub000/models"

	"gorm.io/gorm"
)

type PantryItemInput struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

func ListPantry(userID uint) ([]models.PantryItem, error) {
	var items []models.PantryItem
	err := config.DB.Where("user_id = ?", userID).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

// UpsertPantryItem adds the item, or replaces quantity/unit when the name
// already exists (names are unique per user).
func UpsertPantryItem(userID uint, in PantryItemInput) (*models.PantryItem, error) {
	var item models.PantryItem
	err := config.DB.Where("user_id = ? AND name = ?", userID, in.Name).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.PantryItem{
			UserID:   userID,
			Name:     in.Name,
			Quantity: in.Quantity,
			Unit:     in.Unit,
		}
		if err := config.DB.Create(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}
	if err != nil {
		return nil, err
	}

	item.Quantity = in.Quantity
	if in.Unit != "" {
		item.Unit = in.Unit
	}
	if err := config.DB.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func DeletePantryItem(userID, itemID uint) error {
	return config.DB.
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.PantryItem{}).Error
}
