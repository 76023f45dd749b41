package services

import (
	"errors"
	"math"
	"time"

	"github.com/Makarios44/smart-plan-eats-sub000/models"

	"gorm.io/gorm"
)

type ProgressService struct {
	db *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

type WeightPoint struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight_kg"`
}

type ProgressSummary struct {
	CurrentWeightKg float64 `json:"current_weight_kg"`
	StartWeightKg   float64 `json:"start_weight_kg"`
	WeightChangeKg  float64 `json:"weight_change_kg"`

	AvgEnergy    float64 `json:"avg_energy"`
	AvgSatiety   float64 `json:"avg_satiety"`
	AvgAdherence float64 `json:"avg_adherence"`

	Targets         TargetSet `json:"targets"`
	TDEE            int       `json:"tdee"`
	Checkins        int       `json:"checkins"`
	Adjustments     int       `json:"adjustments"`
	NetCalorieShift int       `json:"net_calorie_shift"` // sum of applied deltas
}

func (s *ProgressService) WeightHistory(userID uint) ([]WeightPoint, error) {
	var rows []models.WeeklyFeedback
	if err := s.db.Where("user_id = ?", userID).
		Order("week_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	points := make([]WeightPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, WeightPoint{
			Date:     r.WeekDate.Format("2006-01-02"),
			WeightKg: r.WeightKg,
		})
	}
	return points, nil
}

// Summary aggregates the whole tracking history: weight movement since the
// first check-in, averaged ordinals over the last 4 weeks, and how far the
// adjustment engine has moved the calorie target in total.
func (s *ProgressService) Summary(userID uint) (*ProgressSummary, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	out := &ProgressSummary{
		CurrentWeightKg: profile.WeightKg,
		StartWeightKg:   profile.WeightKg,
		TDEE:            profile.TDEE,
		Targets: TargetSet{
			Calories: profile.TargetCalories,
			ProteinG: profile.TargetProteinG,
			CarbsG:   profile.TargetCarbsG,
			FatsG:    profile.TargetFatsG,
		},
	}

	var feedbacks []models.WeeklyFeedback
	if err := s.db.Where("user_id = ?", userID).
		Order("week_date ASC").
		Find(&feedbacks).Error; err != nil {
		return nil, err
	}
	out.Checkins = len(feedbacks)
	if len(feedbacks) > 0 {
		out.StartWeightKg = feedbacks[0].WeightKg
		out.CurrentWeightKg = feedbacks[len(feedbacks)-1].WeightKg
		out.WeightChangeKg = round1(out.CurrentWeightKg - out.StartWeightKg)

		recent := feedbacks
		if len(recent) > 4 {
			recent = recent[len(recent)-4:]
		}
		var e, h, a int
		for _, f := range recent {
			e += f.EnergyLevel
			h += f.HungerSatisfaction
			a += f.AdherenceLevel
		}
		n := float64(len(recent))
		out.AvgEnergy = round1(float64(e) / n)
		out.AvgSatiety = round1(float64(h) / n)
		out.AvgAdherence = round1(float64(a) / n)
	}

	var records []models.AdjustmentRecord
	if err := s.db.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, err
	}
	out.Adjustments = len(records)
	for _, r := range records {
		out.NetCalorieShift += r.NewCalories - r.PreviousCalories
	}

	return out, nil
}

type WeekOverview struct {
	WeekStart  string                   `json:"week_start"`
	Feedback   *models.WeeklyFeedback   `json:"feedback,omitempty"`
	Adjustment *models.AdjustmentRecord `json:"adjustment,omitempty"`
}

// WeeklyOverview returns the check-in and any adjustment inside the seven
// days starting at weekStart.
func (s *ProgressService) WeeklyOverview(userID uint, weekStart time.Time) (*WeekOverview, error) {
	from := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
	to := from.AddDate(0, 0, 7)

	out := &WeekOverview{WeekStart: from.Format("2006-01-02")}

	var fb models.WeeklyFeedback
	err := s.db.Where("user_id = ? AND week_date >= ? AND week_date < ?", userID, from, to).
		First(&fb).Error
	if err == nil {
		out.Feedback = &fb
		var rec models.AdjustmentRecord
		if err := s.db.Where("weekly_feedback_id = ?", fb.ID).First(&rec).Error; err == nil {
			out.Adjustment = &rec
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return out, nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
