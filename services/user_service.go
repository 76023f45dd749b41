package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Makarios44/smart-plan-eats-sub000/config"
	"github.com/Makarios44/smart-plan-eats-sub000/models"
	"github.com/Makarios44/smart-plan-eats-sub000/utils"

	"gorm.io/gorm"
)

// OnboardingInput is everything the wizard collects before the first
// targets can be computed.
type OnboardingInput struct {
	AgeYears             int      `json:"age_years" binding:"required"`
	Gender               string   `json:"gender" binding:"required"`
	WeightKg             float64  `json:"weight_kg" binding:"required"`
	HeightCm             float64  `json:"height_cm" binding:"required"`
	ActivityLevel        string   `json:"activity_level" binding:"required"`
	WorkType             string   `json:"work_type"`
	Goal                 string   `json:"goal" binding:"required"`
	DietType             string   `json:"diet_type"`
	Restrictions         []string `json:"restrictions"`
	ProfilePictureBase64 string   `json:"profile_picture"`
}

// CompleteOnboarding runs the calculator over the wizard input and creates
// (or refreshes) the user's profile with the derived targets.
func CompleteOnboarding(userID uint, in OnboardingInput) (*models.Profile, error) {
	var user models.User
	if err := config.DB.
		Where("id = ? AND disabled = ?", userID, false).
		First(&user).Error; err != nil {
		return nil, errors.New("user not found or disabled")
	}

	if in.Goal != GoalLose && in.Goal != GoalGain && in.Goal != GoalMaintain {
		return nil, fmt.Errorf("%w: goal must be lose, gain or maintain", ErrInvalidProfileInput)
	}
	if !ValidActivityLevel(in.ActivityLevel) {
		return nil, fmt.Errorf("%w: unknown activity level %q", ErrInvalidProfileInput, in.ActivityLevel)
	}

	targets, err := CalculateTargets(in.WeightKg, in.HeightCm, in.AgeYears, in.Gender, in.ActivityLevel, in.Goal)
	if err != nil {
		return nil, err
	}

	profile := models.Profile{
		UserID:         userID,
		AgeYears:       in.AgeYears,
		Gender:         in.Gender,
		WeightKg:       in.WeightKg,
		HeightCm:       in.HeightCm,
		ActivityLevel:  in.ActivityLevel,
		WorkType:       in.WorkType,
		Goal:           in.Goal,
		DietType:       in.DietType,
		Restrictions:   strings.Join(in.Restrictions, ","),
		TDEE:           targets.TDEE,
		TargetCalories: targets.Calories,
		TargetProteinG: targets.ProteinG,
		TargetCarbsG:   targets.CarbsG,
		TargetFatsG:    targets.FatsG,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Profile
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			profile.ID = existing.ID
			profile.CreatedAt = existing.CreatedAt
			if err := tx.Save(&profile).Error; err != nil {
				return err
			}
		}

		if in.ProfilePictureBase64 != "" {
			url, err := utils.UploadBase64ImageToS3(in.ProfilePictureBase64, "onboarding/"+user.Email)
			if err != nil {
				return fmt.Errorf("failed to upload profile picture: %w", err)
			}
			user.ProfilePicture = url
		}
		user.Onboarded = true
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	if err := config.DB.
		Where("id = ? AND disabled = ?", userID, false).
		First(&user).Error; err != nil {
		return nil, errors.New("user not found or disabled")
	}

	out := map[string]interface{}{
		"id":              user.ID,
		"user_id":         user.UserID,
		"email":           user.Email,
		"first_name":      user.FirstName,
		"last_name":       user.LastName,
		"role":            user.Role,
		"profile_picture": user.ProfilePicture,
		"mfa_enabled":     user.MFAEnabled,
		"onboarded":       user.Onboarded,
	}

	var profile models.Profile
	err := config.DB.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		restrictions := []string{}
		if profile.Restrictions != "" {
			restrictions = strings.Split(profile.Restrictions, ",")
		}
		out["profile"] = map[string]interface{}{
			"age_years":        profile.AgeYears,
			"gender":           profile.Gender,
			"weight_kg":        profile.WeightKg,
			"height_cm":        profile.HeightCm,
			"activity_level":   profile.ActivityLevel,
			"work_type":        profile.WorkType,
			"goal":             profile.Goal,
			"diet_type":        profile.DietType,
			"restrictions":     restrictions,
			"tdee":             profile.TDEE,
			"target_calories":  profile.TargetCalories,
			"target_protein_g": profile.TargetProteinG,
			"target_carbs_g":   profile.TargetCarbsG,
			"target_fats_g":    profile.TargetFatsG,
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return out, nil
}

// ProfileEdit is a partial update; zero values leave fields untouched.
// Changing anthropometrics or goal does NOT silently recompute targets —
// the user re-runs onboarding or waits for the weekly adjustment.
type ProfileEdit struct {
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	WorkType     string   `json:"work_type"`
	DietType     string   `json:"diet_type"`
	Restrictions []string `json:"restrictions"`
}

func UpdateUserProfile(userID uint, edit ProfileEdit) error {
	var user models.User
	if err := config.DB.
		Where("id = ? AND disabled = ?", userID, false).
		First(&user).Error; err != nil {
		return errors.New("user not found or disabled")
	}

	if edit.FirstName != "" {
		user.FirstName = edit.FirstName
	}
	if edit.LastName != "" {
		user.LastName = edit.LastName
	}
	if err := config.DB.Save(&user).Error; err != nil {
		return err
	}

	updates := map[string]any{}
	if edit.WorkType != "" {
		updates["work_type"] = edit.WorkType
	}
	if edit.DietType != "" {
		updates["diet_type"] = edit.DietType
	}
	if edit.Restrictions != nil {
		updates["restrictions"] = strings.Join(edit.Restrictions, ",")
	}
	if len(updates) == 0 {
		return nil
	}
	return config.DB.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}
