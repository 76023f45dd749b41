package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Makarios44/smart-plan-eats-sub000/models"

	"gorm.io/gorm"
)

// ErrDuplicateWeek: one check-in per reporting week, enforced here and by
// the (user_id, week_date) unique index underneath.
var ErrDuplicateWeek = errors.New("feedback already submitted for this week")

type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

type WeeklyFeedbackRequest struct {
	WeekDate           string  `json:"week_date" binding:"required"` // YYYY-MM-DD
	WeightKg           float64 `json:"current_weight_kg" binding:"required"`
	EnergyLevel        int     `json:"energy_level" binding:"required"`
	HungerSatisfaction int     `json:"hunger_satisfaction" binding:"required"`
	AdherenceLevel     int     `json:"adherence_level" binding:"required"`
	Notes              string  `json:"notes"`
}

// FeedbackResult tells the caller whether targets moved and why.
type FeedbackResult struct {
	Adjusted      bool       `json:"adjusted"`
	Message       string     `json:"message"`
	WeightChange  float64    `json:"weight_change"`
	DeltaCalories int        `json:"delta_calories,omitempty"`
	Reasons       []string   `json:"reasons,omitempty"`
	Previous      *TargetSet `json:"previous,omitempty"`
	New           *TargetSet `json:"new,omitempty"`
	FeedbackID    uint       `json:"feedback_id"`
}

// Submit runs the weekly adjustment flow for one check-in: validate, resolve
// the reference weight, evaluate the rule table, then commit feedback row,
// audit record and profile update in a single transaction.
func (s *FeedbackService) Submit(userID uint, req WeeklyFeedbackRequest) (*FeedbackResult, error) {
	weekDate, err := time.Parse("2006-01-02", req.WeekDate)
	if err != nil {
		return nil, fmt.Errorf("%w: week_date must be YYYY-MM-DD", ErrInvalidFeedbackInput)
	}

	input := FeedbackInput{
		WeightKg:           req.WeightKg,
		EnergyLevel:        req.EnergyLevel,
		HungerSatisfaction: req.HungerSatisfaction,
		AdherenceLevel:     req.AdherenceLevel,
	}
	if err := ValidateFeedback(input); err != nil {
		return nil, err
	}

	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	var dup int64
	if err := s.db.Model(&models.WeeklyFeedback{}).
		Where("user_id = ? AND week_date = ?", userID, weekDate).
		Count(&dup).Error; err != nil {
		return nil, err
	}
	if dup > 0 {
		return nil, ErrDuplicateWeek
	}

	// reference weight: previous check-in if one exists, else the profile's
	// stored weight
	input.ReferenceWeightKg = profile.WeightKg
	var prev models.WeeklyFeedback
	err = s.db.Where("user_id = ?", userID).
		Order("week_date DESC").
		Limit(1).
		First(&prev).Error
	if err == nil {
		input.ReferenceWeightKg = prev.WeightKg
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	current := TargetSet{
		Calories: profile.TargetCalories,
		ProteinG: profile.TargetProteinG,
		CarbsG:   profile.TargetCarbsG,
		FatsG:    profile.TargetFatsG,
	}
	decision := EvaluateWeeklyAdjustment(profile.Goal, current, input)

	feedback := models.WeeklyFeedback{
		UserID:             userID,
		WeekDate:           weekDate,
		WeightKg:           req.WeightKg,
		EnergyLevel:        req.EnergyLevel,
		HungerSatisfaction: req.HungerSatisfaction,
		AdherenceLevel:     req.AdherenceLevel,
		Notes:              req.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&feedback).Error; err != nil {
			return err
		}

		updates := map[string]any{"weight_kg": req.WeightKg}
		if decision.Adjusted {
			record := models.AdjustmentRecord{
				UserID:           userID,
				WeeklyFeedbackID: feedback.ID,
				PreviousCalories: decision.Previous.Calories,
				NewCalories:      decision.New.Calories,
				PreviousProteinG: decision.Previous.ProteinG,
				NewProteinG:      decision.New.ProteinG,
				PreviousCarbsG:   decision.Previous.CarbsG,
				NewCarbsG:        decision.New.CarbsG,
				PreviousFatsG:    decision.Previous.FatsG,
				NewFatsG:         decision.New.FatsG,
				Reason:           strings.Join(decision.Reasons, "; "),
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			updates["target_calories"] = decision.New.Calories
			updates["target_protein_g"] = decision.New.ProteinG
			updates["target_carbs_g"] = decision.New.CarbsG
			updates["target_fats_g"] = decision.New.FatsG
		}

		return tx.Model(&models.Profile{}).
			Where("user_id = ?", userID).
			Updates(updates).Error
	})
	if err != nil {
		return nil, fmt.Errorf("saving weekly feedback: %w", err)
	}

	res := &FeedbackResult{
		Adjusted:     decision.Adjusted,
		WeightChange: decision.WeightChange,
		FeedbackID:   feedback.ID,
	}
	if decision.Adjusted {
		prevSet, newSet := decision.Previous, decision.New
		res.Message = "targets adjusted based on your weekly feedback"
		res.DeltaCalories = decision.DeltaCalories
		res.Reasons = decision.Reasons
		res.Previous = &prevSet
		res.New = &newSet
		EmitAlert(userID, "adjustment",
			fmt.Sprintf("Your daily target moved from %d to %d kcal: %s",
				prevSet.Calories, newSet.Calories, strings.Join(decision.Reasons, "; ")))
	} else {
		res.Message = "weight recorded, no target change this week"
	}
	return res, nil
}

func (s *FeedbackService) History(userID uint) ([]models.WeeklyFeedback, error) {
	var rows []models.WeeklyFeedback
	err := s.db.Where("user_id = ?", userID).
		Order("week_date DESC").
		Find(&rows).Error
	return rows, err
}

func (s *FeedbackService) Adjustments(userID uint) ([]models.AdjustmentRecord, error) {
	var rows []models.AdjustmentRecord
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
