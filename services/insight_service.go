package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Makarios44/smart-plan-eats-sub000/llm"
	"github.com/Makarios44/smart-plan-eats-sub000/models"

	"gorm.io/gorm"
)

type InsightService struct {
	db  *gorm.DB
	llm *llm.Client
}

func NewInsightService(db *gorm.DB, client *llm.Client) *InsightService {
	return &InsightService{db: db, llm: client}
}

// GeneratePredictive summarizes the user's recent check-ins and adjustment
// history into a prompt, asks the gateway for an outlook and stores the
// reply verbatim as an Insight row.
func (s *InsightService) GeneratePredictive(userID uint) (*models.Insight, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	var feedbacks []models.WeeklyFeedback
	if err := s.db.Where("user_id = ?", userID).
		Order("week_date DESC").
		Limit(8).
		Find(&feedbacks).Error; err != nil {
		return nil, err
	}
	if len(feedbacks) < 2 {
		return nil, errors.New("not enough weekly feedback yet, check back after two check-ins")
	}

	var adjustments []models.AdjustmentRecord
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(8).
		Find(&adjustments).Error; err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Goal: %s. Current target: %d kcal/day. Current weight: %.1f kg.\n",
		profile.Goal, profile.TargetCalories, profile.WeightKg)
	sb.WriteString("Weekly check-ins, newest first (weight kg / energy / satiety / adherence, each 1-5):\n")
	for _, f := range feedbacks {
		fmt.Fprintf(&sb, "- %s: %.1f / %d / %d / %d\n",
			f.WeekDate.Format("2006-01-02"), f.WeightKg, f.EnergyLevel, f.HungerSatisfaction, f.AdherenceLevel)
	}
	if len(adjustments) > 0 {
		sb.WriteString("Target adjustments applied:\n")
		for _, a := range adjustments {
			fmt.Fprintf(&sb, "- %d -> %d kcal (%s)\n", a.PreviousCalories, a.NewCalories, a.Reason)
		}
	}
	sb.WriteString(`
Give a short outlook: expected weight in 4 weeks at the current trend, the main risks, and 2-3 concrete recommendations.
Respond ONLY with JSON: {"summary":"","projected_weight_4w_kg":0,"risks":[""],"recommendations":[""]}`)

	var parsed struct {
		Summary string `json:"summary"`
	}
	raw, err := s.llm.ChatJSON([]llm.Message{
		{Role: "system", Content: "You are a cautious nutrition coach. Base everything strictly on the provided history; no medical claims."},
		{Role: "user", Content: sb.String()},
	}, &parsed)
	if err != nil {
		return nil, err
	}

	insight := models.Insight{
		UserID:    userID,
		Kind:      models.InsightPredictive,
		ModelName: s.llm.Model(),
		Content:   raw,
	}
	if err := s.db.Create(&insight).Error; err != nil {
		return nil, err
	}
	return &insight, nil
}

func (s *InsightService) Latest(userID uint, kind string) (*models.Insight, error) {
	var insight models.Insight
	err := s.db.Where("user_id = ? AND kind = ?", userID, kind).
		Order("created_at DESC").
		First(&insight).Error
	if err != nil {
		return nil, err
	}
	return &insight, nil
}
