package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Makarios44/smart-plan-eats-sub000/llm"
	"github.com/Makarios44/smart-plan-eats-sub000/models"

	"gorm.io/gorm"
)

type SuggestionService struct {
	db  *gorm.DB
	llm *llm.Client
}

func NewSuggestionService(db *gorm.DB, client *llm.Client) *SuggestionService {
	return &SuggestionService{db: db, llm: client}
}

type MealSuggestion struct {
	Name         string   `json:"name"`
	Uses         []string `json:"uses"` // pantry items the dish consumes
	Calories     int      `json:"calories"`
	ProteinG     int      `json:"protein_g"`
	Instructions string   `json:"instructions"`
}

// SuggestFromPantry asks the gateway for meals the user can cook from what
// they already have, honoring diet type and restrictions.
func (s *SuggestionService) SuggestFromPantry(userID uint) ([]MealSuggestion, error) {
	var pantry []models.PantryItem
	if err := s.db.Where("user_id = ?", userID).Find(&pantry).Error; err != nil {
		return nil, err
	}
	if len(pantry) == 0 {
		return nil, errors.New("pantry is empty, add some items first")
	}

	// no profile yet is fine (no restrictions to honor), but a storage
	// failure must not silently drop them from the prompt
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil &&
		!errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var items strings.Builder
	for _, it := range pantry {
		fmt.Fprintf(&items, "- %s: %.0f %s\n", it.Name, it.Quantity, it.Unit)
	}

	prompt := fmt.Sprintf(`Based on these ingredients in my pantry:

%s
Suggest 3 meals I can make.`, items.String())
	if profile.Restrictions != "" {
		prompt += fmt.Sprintf(" Strictly avoid: %s.", profile.Restrictions)
	}
	if profile.DietType != "" {
		prompt += fmt.Sprintf(" The meals must fit a %s diet.", profile.DietType)
	}
	prompt += `
Respond ONLY with JSON: {"suggestions":[{"name":"","uses":[""],"calories":0,"protein_g":0,"instructions":""}]}`

	var out struct {
		Suggestions []MealSuggestion `json:"suggestions"`
	}
	_, err := s.llm.ChatJSON([]llm.Message{
		{Role: "system", Content: "You are a practical cooking assistant. Suggest easy meals from available ingredients."},
		{Role: "user", Content: prompt},
	}, &out)
	if err != nil {
		return nil, err
	}
	if len(out.Suggestions) == 0 {
		return nil, fmt.Errorf("no suggestions returned")
	}
	return out.Suggestions, nil
}

// SuggestSwap proposes substitutes for a single meal the user wants to
// replace (disliked it, missing ingredients, etc.).
func (s *SuggestionService) SuggestSwap(userID uint, meal, reason string) ([]MealSuggestion, error) {
	if strings.TrimSpace(meal) == "" {
		return nil, errors.New("meal is required")
	}

	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil &&
		!errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	prompt := fmt.Sprintf("Suggest 3 substitutes for %q with a similar calorie and protein content.", meal)
	if reason != "" {
		prompt += fmt.Sprintf(" The user wants to swap it because: %s.", reason)
	}
	if profile.Restrictions != "" {
		prompt += fmt.Sprintf(" Strictly avoid: %s.", profile.Restrictions)
	}
	prompt += `
Respond ONLY with JSON: {"suggestions":[{"name":"","uses":[],"calories":0,"protein_g":0,"instructions":""}]}`

	var out struct {
		Suggestions []MealSuggestion `json:"suggestions"`
	}
	_, err := s.llm.ChatJSON([]llm.Message{
		{Role: "system", Content: "You are a nutrition assistant helping swap meals while keeping macros comparable."},
		{Role: "user", Content: prompt},
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Suggestions, nil
}
