package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Makarios44/smart-plan-eats-sub000/llm"
	"github.com/Makarios44/smart-plan-eats-sub000/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlanService struct {
	db  *gorm.DB
	llm *llm.Client
}

func NewPlanService(db *gorm.DB, client *llm.Client) *PlanService {
	return &PlanService{db: db, llm: client}
}

// PlanPayload is the schema we ask the gateway for. The raw reply is stored
// verbatim; this struct only validates that the reply parses.
type PlanPayload struct {
	Days []struct {
		Day   string `json:"day"`
		Meals []struct {
			Name         string   `json:"name"`
			Type         string   `json:"type"` // breakfast|lunch|dinner|snack
			Calories     int      `json:"calories"`
			ProteinG     int      `json:"protein_g"`
			CarbsG       int      `json:"carbs_g"`
			FatsG        int      `json:"fats_g"`
			Ingredients  []string `json:"ingredients"`
			Instructions string   `json:"instructions"`
		} `json:"meals"`
	} `json:"days"`
	ShoppingList []string `json:"shopping_list"`
}

const planSystemPrompt = `You are a nutrition planning assistant. Respond ONLY with JSON matching:
{"days":[{"day":"monday","meals":[{"name":"","type":"breakfast|lunch|dinner|snack","calories":0,"protein_g":0,"carbs_g":0,"fats_g":0,"ingredients":[""],"instructions":""}]}],"shopping_list":[""]}
Each day's meals should add up to roughly the given calorie and macro targets.`

// Generate builds a 7-day plan prompt from the profile and pantry, calls
// the gateway and stores the reply verbatim.
func (s *PlanService) Generate(userID uint, weekStart time.Time) (*models.MealPlan, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	var pantry []models.PantryItem
	if err := s.db.Where("user_id = ?", userID).Find(&pantry).Error; err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a 7-day meal plan.\n")
	fmt.Fprintf(&sb, "Daily targets: %d kcal, %dg protein, %dg carbs, %dg fat.\n",
		profile.TargetCalories, profile.TargetProteinG, profile.TargetCarbsG, profile.TargetFatsG)
	fmt.Fprintf(&sb, "Goal: %s.\n", profile.Goal)
	if profile.DietType != "" {
		fmt.Fprintf(&sb, "Diet type: %s.\n", profile.DietType)
	}
	if profile.Restrictions != "" {
		fmt.Fprintf(&sb, "Strictly avoid: %s.\n", profile.Restrictions)
	}
	if len(pantry) > 0 {
		sb.WriteString("Prefer ingredients already in the pantry:\n")
		for _, it := range pantry {
			fmt.Fprintf(&sb, "- %s: %.0f %s\n", it.Name, it.Quantity, it.Unit)
		}
	}

	var payload PlanPayload
	raw, err := s.llm.ChatJSON([]llm.Message{
		{Role: "system", Content: planSystemPrompt},
		{Role: "user", Content: sb.String()},
	}, &payload)
	if err != nil {
		return nil, err
	}
	if len(payload.Days) == 0 {
		return nil, fmt.Errorf("gateway returned an empty plan")
	}

	plan := models.MealPlan{
		UserID:     userID,
		ShareToken: uuid.NewString(),
		WeekStart:  weekStart,
		Calories:   profile.TargetCalories,
		ProteinG:   profile.TargetProteinG,
		CarbsG:     profile.TargetCarbsG,
		FatsG:      profile.TargetFatsG,
		ModelName:  s.llm.Model(),
		Payload:    raw,
	}
	if err := s.db.Create(&plan).Error; err != nil {
		return nil, err
	}

	EmitAlert(userID, "plan", "Your meal plan for the week is ready.")
	return &plan, nil
}

func (s *PlanService) List(userID uint) ([]models.MealPlan, error) {
	var plans []models.MealPlan
	err := s.db.
		Select("id", "created_at", "user_id", "week_start", "calories", "protein_g", "carbs_g", "fats_g", "model_name", "share_token").
		Where("user_id = ?", userID).
		Order("week_start DESC").
		Find(&plans).Error
	return plans, err
}

func (s *PlanService) Get(userID, planID uint) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetShared resolves a plan by its share token, no auth required.
func (s *PlanService) GetShared(token string) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.Where("share_token = ?", token).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
