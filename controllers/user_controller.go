package controllers

import (
	"errors"
	"net/http"

	"github.com/Makarios44/smart-plan-eats-sub000/services"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	uid := c.GetUint("userID")
	profile, err := services.GetUserProfile(uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func UpdateProfile(c *gin.Context) {
	uid := c.GetUint("userID")
	var input services.ProfileEdit
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.UpdateUserProfile(uid, input); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated successfully"})
}

// CompleteOnboarding runs the calculator over the wizard payload and
// returns the freshly derived targets.
func CompleteOnboarding(c *gin.Context) {
	uid := c.GetUint("userID")
	var input services.OnboardingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := services.CompleteOnboarding(uid, input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidProfileInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "onboarding complete",
		"targets": gin.H{
			"tdee":             profile.TDEE,
			"target_calories":  profile.TargetCalories,
			"target_protein_g": profile.TargetProteinG,
			"target_carbs_g":   profile.TargetCarbsG,
			"target_fats_g":    profile.TargetFatsG,
		},
	})
}
