package services

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for the calculator and the weekly adjustment engine.
// Controllers match on these to pick status codes.
var (
	ErrInvalidProfileInput  = errors.New("invalid profile input")
	ErrInvalidFeedbackInput = errors.New("invalid feedback input")
	ErrProfileNotFound      = errors.New("profile not found")
)

const (
	GoalLose     = "lose"
	GoalGain     = "gain"
	GoalMaintain = "maintain"
)

// activityMultipliers maps activity level labels to their TDEE multiplier.
// Single source of truth — also used to validate onboarding input.
var activityMultipliers = map[string]float64{
	"sedentary":   1.20,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.90,
}

// ValidActivityLevel reports whether level is one of the five known tiers.
func ValidActivityLevel(level string) bool {
	_, ok := activityMultipliers[level]
	return ok
}

// Targets is the calculator's output: estimated daily burn plus the
// calorie/macro prescription derived from it.
type Targets struct {
	TDEE     int `json:"tdee"`
	Calories int `json:"target_calories"`
	ProteinG int `json:"target_protein_g"`
	CarbsG   int `json:"target_carbs_g"`
	FatsG    int `json:"target_fats_g"`
}

// CalculateTargets maps a profile snapshot to daily calorie and macro
// targets. Pure — same input always gives the same output.
//
// BMR via Mifflin-St Jeor, scaled by the activity multiplier (unknown
// levels fall back to sedentary), then shifted for the goal: lose −15%,
// gain +10%, maintain unchanged. Macros split 30/40/30 of target calories
// at 4/4/9 kcal per gram. No calorie floor is applied here — only the
// adjustment engine enforces the 1200 kcal floor.
func CalculateTargets(weightKg, heightCm float64, ageYears int, gender, activityLevel, goal string) (Targets, error) {
	if weightKg <= 0 || heightCm <= 0 || ageYears <= 0 {
		return Targets{}, fmt.Errorf("%w: weight, height and age must be positive", ErrInvalidProfileInput)
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		mult = activityMultipliers["sedentary"]
	}
	tdee := int(math.Round(bmr * mult))

	calories := tdee
	switch goal {
	case GoalLose:
		calories = int(math.Round(float64(tdee) * 0.85))
	case GoalGain:
		calories = int(math.Round(float64(tdee) * 1.10))
	}

	return Targets{
		TDEE:     tdee,
		Calories: calories,
		ProteinG: int(math.Round(0.30 * float64(calories) / 4)),
		CarbsG:   int(math.Round(0.40 * float64(calories) / 4)),
		FatsG:    int(math.Round(0.30 * float64(calories) / 9)),
	}, nil
}
