package services

import (
	"fmt"
	"time"

	"github.com/Makarios44/smart-plan-eats-sub000/models"

	"gorm.io/gorm"
)

type alertDeps struct {
	db *gorm.DB
	rt *RealtimeHub
	ps *PushService
}

var _alert alertDeps

func InitAlertDeps(db *gorm.DB, rt *RealtimeHub, ps *PushService) {
	_alert = alertDeps{db: db, rt: rt, ps: ps}
}

// EmitAlert persists an in-app alert and fans it out over websocket and
// push. Safe to call anywhere, including before init (then it is a no-op,
// which keeps service tests free of notification wiring).
func EmitAlert(userID uint, typ, message string) {
	if _alert.db == nil {
		return
	}
	a := &models.Alert{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	_ = _alert.db.Create(a).Error

	if _alert.rt != nil {
		_alert.rt.BroadcastAlert(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if _alert.ps != nil {
		_alert.ps.PushToUser(userID, "Smart Plan Eats", message, map[string]string{
			"type": typ, "alertId": fmt.Sprintf("%d", a.ID),
		})
	}
}

func ListAlerts(db *gorm.DB, userID uint) ([]models.Alert, error) {
	var alerts []models.Alert
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&alerts).Error
	return alerts, err
}

func MarkAlertRead(db *gorm.DB, userID, alertID uint) error {
	return db.Model(&models.Alert{}).
		Where("id = ? AND user_id = ?", alertID, userID).
		Update("read", true).Error
}
