package jobs

import (
	"time"

	"github.com/Makarios44/smart-plan-eats-sub000/logger"
	"github.com/Makarios44/smart-plan-eats-sub000/models"
	"github.com/Makarios44/smart-plan-eats-sub000/services"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Start schedules the weekly check-in reminder. Every Sunday morning it
// finds onboarded users who have not submitted feedback for the current
// week and nudges them over push and in-app alert.
func Start(db *gorm.DB, push *services.PushService) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.WeeklyJob(1,
			gocron.NewWeekdays(time.Sunday),
			gocron.NewAtTimes(gocron.NewAtTime(9, 0, 0)),
		),
		gocron.NewTask(func() {
			remindPendingCheckins(db, push)
		}),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	return s, nil
}

func remindPendingCheckins(db *gorm.DB, push *services.PushService) {
	weekStart := startOfWeek(time.Now().UTC())

	var users []models.User
	if err := db.Where("onboarded = ? AND disabled = ?", true, false).Find(&users).Error; err != nil {
		logger.Error("reminder: failed to list users", zap.Error(err))
		return
	}

	for _, u := range users {
		var n int64
		if err := db.Model(&models.WeeklyFeedback{}).
			Where("user_id = ? AND week_date >= ?", u.ID, weekStart).
			Count(&n).Error; err != nil {
			logger.Error("reminder: feedback lookup failed", zap.Uint("user", u.ID), zap.Error(err))
			continue
		}
		if n > 0 {
			continue
		}

		msg := "Time for your weekly check-in: log your weight and how the week felt."
		services.EmitAlert(u.ID, "reminder", msg)
		if push != nil {
			push.PushToUser(u.ID, "Weekly check-in", msg, map[string]string{"type": "reminder"})
		}
	}
	logger.Info("reminder: weekly check-in sweep done", zap.Int("users", len(users)))
}

// startOfWeek returns Monday 00:00 UTC of t's week.
func startOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -(wd - 1))
}
