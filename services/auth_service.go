package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/Makarios44/smart-plan-eats-sub000/config"
	"github.com/Makarios44/smart-plan-eats-sub000/models"
	"github.com/Makarios44/smart-plan-eats-sub000/utils"
)

func RegisterUser(email, password, firstName, lastName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	base := strings.ToLower(strings.ReplaceAll(firstName, " ", ""))
	userID := fmt.Sprintf("%s%d", base, rand.Intn(100000))

	user := models.User{
		UserID:    userID,
		Email:     email,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		Role:      models.RoleUser,
		Disabled:  false,
	}

	result := config.DB.Create(&user)
	return result.Error
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	result := config.DB.First(&user, "email = ?", email)
	if result.Error != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}
