package services

import (
	"errors"
	"testing"

	"github.com/Makarios44/smart-plan-eats-sub000/config"
	"github.com/Makarios44/smart-plan-eats-sub000/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, goal string) models.Profile {
	t.Helper()
	p := models.Profile{
		UserID:         1,
		AgeYears:       30,
		Gender:         "male",
		WeightKg:       80,
		HeightCm:       180,
		ActivityLevel:  "moderate",
		Goal:           goal,
		TDEE:           2914,
		TargetCalories: 2477,
		TargetProteinG: 186,
		TargetCarbsG:   248,
		TargetFatsG:    83,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return p
}

func TestSubmitAdjustsAndAudits(t *testing.T) {
	db := testDB(t)
	seedProfile(t, db, GoalLose)
	svc := NewFeedbackService(db)

	res, err := svc.Submit(1, WeeklyFeedbackRequest{
		WeekDate: "2026-08-24", WeightKg: 80.5,
		EnergyLevel: 3, HungerSatisfaction: 3, AdherenceLevel: 3,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Adjusted || res.DeltaCalories != -200 {
		t.Fatalf("expected -200 adjustment, got %+v", res)
	}

	var rec models.AdjustmentRecord
	if err := db.Where("user_id = ?", 1).First(&rec).Error; err != nil {
		t.Fatalf("adjustment record missing: %v", err)
	}
	if rec.NewCalories != 2277 || rec.PreviousCalories != 2477 {
		t.Errorf("record calories %d->%d", rec.PreviousCalories, rec.NewCalories)
	}
	if rec.Reason != "weight did not decrease as expected" {
		t.Errorf("reason = %q", rec.Reason)
	}
	if rec.WeeklyFeedbackID != res.FeedbackID {
		t.Errorf("record not linked to feedback row")
	}

	var p models.Profile
	if err := db.Where("user_id = ?", 1).First(&p).Error; err != nil {
		t.Fatal(err)
	}
	if p.TargetCalories != 2277 || p.WeightKg != 80.5 {
		t.Errorf("profile not updated: calories=%d weight=%v", p.TargetCalories, p.WeightKg)
	}
	if p.TargetProteinG != 171 || p.TargetCarbsG != 228 || p.TargetFatsG != 76 {
		t.Errorf("macros not rescaled: %d/%d/%d", p.TargetProteinG, p.TargetCarbsG, p.TargetFatsG)
	}
}

func TestSubmitWeightOnlyWeek(t *testing.T) {
	db := testDB(t)
	seedProfile(t, db, GoalLose)
	svc := NewFeedbackService(db)

	res, err := svc.Submit(1, WeeklyFeedbackRequest{
		WeekDate: "2026-08-24", WeightKg: 79.8, // -0.2, no rule fires
		EnergyLevel: 4, HungerSatisfaction: 4, AdherenceLevel: 4,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Adjusted {
		t.Fatalf("should not adjust: %+v", res)
	}

	var count int64
	db.Model(&models.AdjustmentRecord{}).Count(&count)
	if count != 0 {
		t.Errorf("no adjustment record expected, found %d", count)
	}

	var p models.Profile
	db.Where("user_id = ?", 1).First(&p)
	if p.WeightKg != 79.8 {
		t.Errorf("weight should still be recorded, got %v", p.WeightKg)
	}
	if p.TargetCalories != 2477 {
		t.Errorf("targets must be untouched, got %d", p.TargetCalories)
	}
}

func TestSubmitUsesPreviousFeedbackAsReference(t *testing.T) {
	db := testDB(t)
	seedProfile(t, db, GoalLose) // profile weight 80
	svc := NewFeedbackService(db)

	// week 1: drops to 78.5 (-1.5 vs profile 80) -> "too fast" +100
	res1, err := svc.Submit(1, WeeklyFeedbackRequest{
		WeekDate: "2026-08-17", WeightKg: 78.5,
		EnergyLevel: 4, HungerSatisfaction: 4, AdherenceLevel: 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res1.DeltaCalories != 100 {
		t.Fatalf("week1 delta = %d, want +100", res1.DeltaCalories)
	}

	// week 2: 78.5 again. Reference must now be the previous feedback
	// (78.5), so change is 0 -> stall rule -200, not "too fast" again.
	res2, err := svc.Submit(1, WeeklyFeedbackRequest{
		WeekDate: "2026-08-24", WeightKg: 78.5,
		EnergyLevel: 4, HungerSatisfaction: 4, AdherenceLevel: 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res2.WeightChange != 0 {
		t.Errorf("week2 change = %v, want 0 (reference = previous feedback)", res2.WeightChange)
	}
	if res2.DeltaCalories != -200 {
		t.Errorf("week2 delta = %d, want -200", res2.DeltaCalories)
	}
}

func TestSubmitDuplicateWeekRejected(t *testing.T) {
	db := testDB(t)
	seedProfile(t, db, GoalMaintain)
	svc := NewFeedbackService(db)

	req := WeeklyFeedbackRequest{
		WeekDate: "2026-08-24", WeightKg: 80,
		EnergyLevel: 3, HungerSatisfaction: 3, AdherenceLevel: 3,
	}
	if _, err := svc.Submit(1, req); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Submit(1, req)
	if !errors.Is(err, ErrDuplicateWeek) {
		t.Errorf("got %v, want ErrDuplicateWeek", err)
	}

	var count int64
	db.Model(&models.WeeklyFeedback{}).Count(&count)
	if count != 1 {
		t.Errorf("duplicate left %d rows", count)
	}
}

func TestSubmitValidationBeforePersistence(t *testing.T) {
	db := testDB(t)
	seedProfile(t, db, GoalLose)
	svc := NewFeedbackService(db)

	_, err := svc.Submit(1, WeeklyFeedbackRequest{
		WeekDate: "2026-08-24", WeightKg: 80,
		EnergyLevel: 9, HungerSatisfaction: 3, AdherenceLevel: 3,
	})
	if !errors.Is(err, ErrInvalidFeedbackInput) {
		t.Fatalf("got %v, want ErrInvalidFeedbackInput", err)
	}

	var count int64
	db.Model(&models.WeeklyFeedback{}).Count(&count)
	if count != 0 {
		t.Errorf("invalid input must not persist anything, found %d rows", count)
	}
}

func TestSubmitMissingProfile(t *testing.T) {
	db := testDB(t)
	svc := NewFeedbackService(db)

	_, err := svc.Submit(42, WeeklyFeedbackRequest{
		WeekDate: "2026-08-24", WeightKg: 80,
		EnergyLevel: 3, HungerSatisfaction: 3, AdherenceLevel: 3,
	})
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("got %v, want ErrProfileNotFound", err)
	}
}

func TestHistoryOrdering(t *testing.T) {
	db := testDB(t)
	seedProfile(t, db, GoalMaintain)
	svc := NewFeedbackService(db)

	for _, week := range []string{"2026-08-10", "2026-08-17", "2026-08-24"} {
		if _, err := svc.Submit(1, WeeklyFeedbackRequest{
			WeekDate: week, WeightKg: 80,
			EnergyLevel: 3, HungerSatisfaction: 3, AdherenceLevel: 3,
		}); err != nil {
			t.Fatal(err)
		}
	}

	rows, err := svc.History(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	if !rows[0].WeekDate.After(rows[1].WeekDate) {
		t.Error("history should be newest first")
	}
}
