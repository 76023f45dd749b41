package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Makarios44/smart-plan-eats-sub000/llm"
	"github.com/Makarios44/smart-plan-eats-sub000/models"

	"gorm.io/gorm"
)

// GroupService backs the nutritionist panel: roster overview plus the
// LLM-generated group analysis.
type GroupService struct {
	db  *gorm.DB
	llm *llm.Client
}

func NewGroupService(db *gorm.DB, client *llm.Client) *GroupService {
	return &GroupService{db: db, llm: client}
}

type ClientOverview struct {
	UserID        uint    `json:"user_id"`
	Name          string  `json:"name"`
	Goal          string  `json:"goal"`
	CurrentWeight float64 `json:"current_weight_kg"`
	WeightTrend   float64 `json:"weight_trend_kg"` // delta over last 4 check-ins
	AvgAdherence  float64 `json:"avg_adherence"`
	Checkins      int     `json:"checkins"`
}

// AssignClient puts a user under a nutritionist's care.
func (s *GroupService) AssignClient(nutritionistID, clientID uint) error {
	var nutritionist models.User
	if err := s.db.First(&nutritionist, nutritionistID).Error; err != nil {
		return err
	}
	if !nutritionist.Role.AtLeast(models.RoleNutritionist) {
		return errors.New("assignee is not a nutritionist")
	}
	return s.db.Model(&models.User{}).
		Where("id = ? AND role = ?", clientID, models.RoleUser).
		Update("nutritionist_id", nutritionistID).Error
}

func (s *GroupService) Clients(nutritionistID uint) ([]ClientOverview, error) {
	var users []models.User
	if err := s.db.Where("nutritionist_id = ? AND disabled = ?", nutritionistID, false).
		Find(&users).Error; err != nil {
		return nil, err
	}

	out := make([]ClientOverview, 0, len(users))
	for _, u := range users {
		ov := ClientOverview{
			UserID: u.ID,
			Name:   strings.TrimSpace(u.FirstName + " " + u.LastName),
		}

		var profile models.Profile
		if err := s.db.Where("user_id = ?", u.ID).First(&profile).Error; err == nil {
			ov.Goal = profile.Goal
			ov.CurrentWeight = profile.WeightKg
		}

		var recent []models.WeeklyFeedback
		if err := s.db.Where("user_id = ?", u.ID).
			Order("week_date DESC").
			Limit(4).
			Find(&recent).Error; err == nil && len(recent) > 0 {
			ov.Checkins = len(recent)
			sum := 0
			for _, f := range recent {
				sum += f.AdherenceLevel
			}
			ov.AvgAdherence = float64(sum) / float64(len(recent))
			ov.WeightTrend = recent[0].WeightKg - recent[len(recent)-1].WeightKg
		}

		out = append(out, ov)
	}
	return out, nil
}

// AnalyzeGroup turns the roster overview into a prompt and stores the
// gateway's analysis verbatim, owned by the nutritionist.
func (s *GroupService) AnalyzeGroup(nutritionistID uint) (*models.Insight, error) {
	clients, err := s.Clients(nutritionistID)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, errors.New("no clients assigned")
	}

	var sb strings.Builder
	sb.WriteString("You coach the following clients (goal, current weight, 4-week weight trend, average adherence 1-5, check-ins):\n")
	for _, c := range clients {
		fmt.Fprintf(&sb, "- client %d: %s, %.1f kg, trend %+.1f kg, adherence %.1f, %d check-ins\n",
			c.UserID, c.Goal, c.CurrentWeight, c.WeightTrend, c.AvgAdherence, c.Checkins)
	}
	sb.WriteString(`
Identify who is on track, who needs attention and why, and common patterns across the group.
Respond ONLY with JSON: {"on_track":[0],"needs_attention":[{"client":0,"why":""}],"patterns":[""],"summary":""}`)

	var parsed struct {
		Summary string `json:"summary"`
	}
	raw, err := s.llm.ChatJSON([]llm.Message{
		{Role: "system", Content: "You are an assistant for a professional nutritionist reviewing their client roster."},
		{Role: "user", Content: sb.String()},
	}, &parsed)
	if err != nil {
		return nil, err
	}

	insight := models.Insight{
		UserID:    nutritionistID,
		Kind:      models.InsightGroup,
		ModelName: s.llm.Model(),
		Content:   raw,
	}
	if err := s.db.Create(&insight).Error; err != nil {
		return nil, err
	}
	return &insight, nil
}
