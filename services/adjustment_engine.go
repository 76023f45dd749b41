package services

import (
	"fmt"
	"math"
)

// calorieFloor is the safety floor the engine never prescribes below.
const calorieFloor = 1200

// minCommitDelta: adjustments smaller than this are dropped — the week's
// weight is recorded but targets stay where they are.
const minCommitDelta = 50

// TargetSet is the four prescription values the engine reads and rewrites.
type TargetSet struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatsG    int `json:"fats_g"`
}

// FeedbackInput is one week's check-in as the engine consumes it.
// ReferenceWeightKg is resolved by the caller (previous feedback's weight,
// or the profile weight when this is the first check-in) so the engine
// itself reads no hidden state.
type FeedbackInput struct {
	WeightKg           float64
	ReferenceWeightKg  float64
	EnergyLevel        int
	HungerSatisfaction int
	AdherenceLevel     int
}

// AdjustmentDecision is the engine's verdict. When Adjusted is false the
// caller records the new weight and nothing else.
type AdjustmentDecision struct {
	Adjusted      bool
	DeltaCalories int
	WeightChange  float64
	Reasons       []string
	Previous      TargetSet
	New           TargetSet
}

// ValidateFeedback rejects out-of-range input before anything is persisted.
func ValidateFeedback(fb FeedbackInput) error {
	if fb.WeightKg <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidFeedbackInput)
	}
	for name, v := range map[string]int{
		"energy_level":        fb.EnergyLevel,
		"hunger_satisfaction": fb.HungerSatisfaction,
		"adherence_level":     fb.AdherenceLevel,
	} {
		if v < 1 || v > 5 {
			return fmt.Errorf("%w: %s must be between 1 and 5", ErrInvalidFeedbackInput, name)
		}
	}
	return nil
}

// EvaluateWeeklyAdjustment applies the rule table to one week of feedback
// and, when the accumulated delta is large enough to commit, rescales the
// macro targets.
//
// Rules are additive — every matching row contributes. Goal "maintain"
// skips the weight rules entirely. Macro rescaling preserves whatever
// gram-per-calorie ratios are currently stored (computed against the
// pre-adjustment calories), not the canonical 30/40/30 split.
func EvaluateWeeklyAdjustment(goal string, current TargetSet, fb FeedbackInput) AdjustmentDecision {
	weightChange := fb.WeightKg - fb.ReferenceWeightKg

	delta := 0
	var reasons []string
	addRule := func(d int, reason string) {
		delta += d
		reasons = append(reasons, reason)
	}

	switch goal {
	case GoalLose:
		if weightChange >= 0 {
			addRule(-200, "weight did not decrease as expected")
		}
		if weightChange < -1 {
			addRule(+100, "weight loss too fast")
		}
	case GoalGain:
		if weightChange <= 0 {
			addRule(+200, "weight did not increase as expected")
		}
		if weightChange > 1 {
			addRule(-100, "weight gain too fast")
		}
	}

	if fb.EnergyLevel <= 2 {
		addRule(+100, "low energy reported")
	}
	if fb.HungerSatisfaction <= 2 {
		addRule(+150, "low satiety reported")
	}
	if fb.AdherenceLevel <= 2 {
		addRule(+100, "low plan adherence")
	}

	dec := AdjustmentDecision{
		DeltaCalories: delta,
		WeightChange:  weightChange,
		Reasons:       reasons,
		Previous:      current,
		New:           current,
	}
	if delta > -minCommitDelta && delta < minCommitDelta {
		return dec
	}

	newCalories := current.Calories + delta
	if newCalories < calorieFloor {
		newCalories = calorieFloor
	}

	// Rescale against the pre-adjustment calories so the stored ratios
	// carry over as-is.
	rescale := func(grams int) int {
		if current.Calories <= 0 {
			return grams
		}
		ratio := float64(grams) / float64(current.Calories)
		return int(math.Round(float64(newCalories) * ratio))
	}

	dec.Adjusted = true
	dec.New = TargetSet{
		Calories: newCalories,
		ProteinG: rescale(current.ProteinG),
		CarbsG:   rescale(current.CarbsG),
		FatsG:    rescale(current.FatsG),
	}
	return dec
}
