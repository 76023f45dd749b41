package services

import (
	"errors"
	"strings"
	"testing"
)

var baseTargets = TargetSet{Calories: 2477, ProteinG: 186, CarbsG: 248, FatsG: 83}

func TestAdjustmentWeightStalledOnLose(t *testing.T) {
	dec := EvaluateWeeklyAdjustment(GoalLose, baseTargets, FeedbackInput{
		WeightKg: 80.5, ReferenceWeightKg: 80,
		EnergyLevel: 3, HungerSatisfaction: 3, AdherenceLevel: 3,
	})
	if !dec.Adjusted {
		t.Fatal("expected an adjustment")
	}
	if dec.DeltaCalories != -200 {
		t.Errorf("delta = %d, want -200", dec.DeltaCalories)
	}
	want := TargetSet{Calories: 2277, ProteinG: 171, CarbsG: 228, FatsG: 76}
	if dec.New != want {
		t.Errorf("new targets = %+v, want %+v", dec.New, want)
	}
	if len(dec.Reasons) != 1 || dec.Reasons[0] != "weight did not decrease as expected" {
		t.Errorf("reasons = %v", dec.Reasons)
	}
}

func TestAdjustmentLowEnergyOnly(t *testing.T) {
	// change of exactly -1.0 is not "too fast" (< -1 is strict)
	dec := EvaluateWeeklyAdjustment(GoalLose, baseTargets, FeedbackInput{
		WeightKg: 79.0, ReferenceWeightKg: 80,
		EnergyLevel: 1, HungerSatisfaction: 4, AdherenceLevel: 4,
	})
	if dec.DeltaCalories != 100 {
		t.Errorf("delta = %d, want +100", dec.DeltaCalories)
	}
	if !dec.Adjusted || dec.New.Calories != 2577 {
		t.Errorf("new calories = %d, want 2577", dec.New.Calories)
	}
}

func TestAdjustmentNoRuleFires(t *testing.T) {
	dec := EvaluateWeeklyAdjustment(GoalLose, baseTargets, FeedbackInput{
		WeightKg: 79.8, ReferenceWeightKg: 80,
		EnergyLevel: 4, HungerSatisfaction: 4, AdherenceLevel: 4,
	})
	if dec.Adjusted {
		t.Error("no rule fired, should not adjust")
	}
	if dec.DeltaCalories != 0 || len(dec.Reasons) != 0 {
		t.Errorf("delta=%d reasons=%v, want zero delta and no reasons", dec.DeltaCalories, dec.Reasons)
	}
	if dec.New != baseTargets {
		t.Errorf("targets changed without an adjustment: %+v", dec.New)
	}
}

func TestAdjustmentGainTooFast(t *testing.T) {
	current := TargetSet{Calories: 3000, ProteinG: 225, CarbsG: 300, FatsG: 100}
	dec := EvaluateWeeklyAdjustment(GoalGain, current, FeedbackInput{
		WeightKg: 71.5, ReferenceWeightKg: 70,
		EnergyLevel: 5, HungerSatisfaction: 5, AdherenceLevel: 5,
	})
	if dec.DeltaCalories != -100 {
		t.Errorf("delta = %d, want -100", dec.DeltaCalories)
	}
	want := TargetSet{Calories: 2900, ProteinG: 218, CarbsG: 290, FatsG: 97}
	if dec.New != want {
		t.Errorf("new targets = %+v, want %+v", dec.New, want)
	}
}

func TestAdjustmentRulesAreAdditive(t *testing.T) {
	dec := EvaluateWeeklyAdjustment(GoalLose, baseTargets, FeedbackInput{
		WeightKg: 80.2, ReferenceWeightKg: 80, // stalled: -200
		EnergyLevel: 2, HungerSatisfaction: 2, AdherenceLevel: 2, // +100+150+100
	})
	if dec.DeltaCalories != 150 {
		t.Errorf("delta = %d, want +150", dec.DeltaCalories)
	}
	if len(dec.Reasons) != 4 {
		t.Errorf("reasons = %v, want all four rules", dec.Reasons)
	}
}

func TestAdjustmentMaintainSkipsWeightRules(t *testing.T) {
	dec := EvaluateWeeklyAdjustment(GoalMaintain, baseTargets, FeedbackInput{
		WeightKg: 85, ReferenceWeightKg: 80,
		EnergyLevel: 5, HungerSatisfaction: 5, AdherenceLevel: 5,
	})
	if dec.Adjusted || dec.DeltaCalories != 0 {
		t.Errorf("maintain goal should ignore weight swings, got delta %d", dec.DeltaCalories)
	}
}

func TestAdjustmentCalorieFloor(t *testing.T) {
	low := TargetSet{Calories: 1300, ProteinG: 98, CarbsG: 130, FatsG: 43}
	dec := EvaluateWeeklyAdjustment(GoalLose, low, FeedbackInput{
		WeightKg: 62, ReferenceWeightKg: 61,
		EnergyLevel: 3, HungerSatisfaction: 3, AdherenceLevel: 3,
	})
	if dec.New.Calories != 1200 {
		t.Errorf("new calories = %d, want floor 1200", dec.New.Calories)
	}
}

func TestAdjustmentBelowCommitThreshold(t *testing.T) {
	// Construct a delta of exactly 0 vs the 50 threshold boundary is covered
	// elsewhere; here make sure small-but-nonzero deltas can't occur from the
	// table (smallest nonzero combination is |100 - 150| = 50, which commits).
	dec := EvaluateWeeklyAdjustment(GoalGain, baseTargets, FeedbackInput{
		WeightKg: 71.5, ReferenceWeightKg: 70, // too fast: -100
		EnergyLevel: 2, HungerSatisfaction: 2, AdherenceLevel: 5, // +100 +150
	})
	if dec.DeltaCalories != 150 || !dec.Adjusted {
		t.Errorf("delta = %d adjusted=%v, want +150 committed", dec.DeltaCalories, dec.Adjusted)
	}
}

func TestAdjustmentCommitsAtExactThreshold(t *testing.T) {
	// stalled on lose (-200) plus low satiety (+150) nets exactly -50,
	// which sits right on the commit boundary and must still commit
	dec := EvaluateWeeklyAdjustment(GoalLose, baseTargets, FeedbackInput{
		WeightKg: 80, ReferenceWeightKg: 80,
		EnergyLevel: 3, HungerSatisfaction: 2, AdherenceLevel: 3,
	})
	if dec.DeltaCalories != -50 {
		t.Fatalf("delta = %d, want -50", dec.DeltaCalories)
	}
	if !dec.Adjusted {
		t.Error("delta of exactly -50 must commit")
	}
	if dec.New.Calories != 2427 {
		t.Errorf("new calories = %d, want 2427", dec.New.Calories)
	}
	if len(dec.Reasons) != 2 {
		t.Errorf("reasons = %v, want both triggered rules", dec.Reasons)
	}
}

func TestAdjustmentRatioPreservation(t *testing.T) {
	skewed := TargetSet{Calories: 2000, ProteinG: 250, CarbsG: 100, FatsG: 60} // not 30/40/30
	dec := EvaluateWeeklyAdjustment(GoalGain, skewed, FeedbackInput{
		WeightKg: 70, ReferenceWeightKg: 70, // no increase: +200
		EnergyLevel: 3, HungerSatisfaction: 3, AdherenceLevel: 3,
	})
	if !dec.Adjusted {
		t.Fatal("expected adjustment")
	}
	// stored ratio 250/2000 = 0.125 must carry over, not be reset to 30%
	wantProtein := 275 // round(2200 * 0.125)
	if dec.New.ProteinG != wantProtein {
		t.Errorf("protein = %d, want %d (ratio preserved)", dec.New.ProteinG, wantProtein)
	}
	oldRatio := float64(skewed.CarbsG) / float64(skewed.Calories)
	newRatio := float64(dec.New.CarbsG) / float64(dec.New.Calories)
	if newRatio < oldRatio-0.01 || newRatio > oldRatio+0.01 {
		t.Errorf("carb ratio drifted: %.4f -> %.4f", oldRatio, newRatio)
	}
}

func TestValidateFeedback(t *testing.T) {
	ok := FeedbackInput{WeightKg: 80, EnergyLevel: 3, HungerSatisfaction: 3, AdherenceLevel: 3}
	if err := ValidateFeedback(ok); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}

	bad := []FeedbackInput{
		{WeightKg: 0, EnergyLevel: 3, HungerSatisfaction: 3, AdherenceLevel: 3},
		{WeightKg: 80, EnergyLevel: 0, HungerSatisfaction: 3, AdherenceLevel: 3},
		{WeightKg: 80, EnergyLevel: 3, HungerSatisfaction: 6, AdherenceLevel: 3},
		{WeightKg: 80, EnergyLevel: 3, HungerSatisfaction: 3, AdherenceLevel: -1},
	}
	for i, fb := range bad {
		if err := ValidateFeedback(fb); !errors.Is(err, ErrInvalidFeedbackInput) {
			t.Errorf("case %d: got %v, want ErrInvalidFeedbackInput", i, err)
		}
	}
	if err := ValidateFeedback(bad[1]); err == nil || !strings.Contains(err.Error(), "energy_level") {
		t.Errorf("error should name the failing field, got %v", err)
	}
}
