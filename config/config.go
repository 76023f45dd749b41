package config

import (
	"fmt"
	"os"

	"github.com/Makarios44/smart-plan-eats-sub000/logger"
	"github.com/Makarios44/smart-plan-eats-sub000/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, relying on environment", zap.Error(err))
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := Migrate(DB); err != nil {
		logger.Fatal("AutoMigrate failed", zap.Error(err))
	}
}

// Migrate runs schema migration for every entity. Split out so tests can
// run it against their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.WeeklyFeedback{},
		&models.AdjustmentRecord{},
		&models.MealPlan{},
		&models.PantryItem{},
		&models.Insight{},
		&models.Alert{},
		&models.UserDevice{},
	)
}
