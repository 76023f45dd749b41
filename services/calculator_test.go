package services

import (
	"errors"
	"testing"
)

func TestCalculateTargetsReference(t *testing.T) {
	// male, 30y, 80kg, 180cm, moderate, lose:
	// BMR = 10*80 + 6.25*180 - 5*30 + 5 = 1880
	// tdee = round(1880*1.55) = 2914, calories = round(2914*0.85) = 2477
	got, err := CalculateTargets(80, 180, 30, "male", "moderate", GoalLose)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Targets{TDEE: 2914, Calories: 2477, ProteinG: 186, CarbsG: 248, FatsG: 83}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCalculateTargetsFemaleConstant(t *testing.T) {
	m, _ := CalculateTargets(60, 165, 25, "male", "sedentary", GoalMaintain)
	f, _ := CalculateTargets(60, 165, 25, "female", "sedentary", GoalMaintain)
	// Mifflin-St Jeor constants differ by 166 kcal before the multiplier.
	if m.TDEE <= f.TDEE {
		t.Errorf("male tdee %d should exceed female tdee %d", m.TDEE, f.TDEE)
	}
}

func TestCalculateTargetsDeterministic(t *testing.T) {
	a, err := CalculateTargets(72.5, 171.3, 41, "female", "light", GoalGain)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := CalculateTargets(72.5, 171.3, 41, "female", "light", GoalGain)
	if a != b {
		t.Errorf("same input produced different output: %+v vs %+v", a, b)
	}
}

func TestTDEEMonotonicInActivity(t *testing.T) {
	levels := []string{"sedentary", "light", "moderate", "active", "very_active"}
	prev := -1
	for _, lvl := range levels {
		out, err := CalculateTargets(80, 180, 30, "male", lvl, GoalMaintain)
		if err != nil {
			t.Fatalf("%s: %v", lvl, err)
		}
		if out.TDEE <= prev {
			t.Errorf("tdee not increasing at %s: %d after %d", lvl, out.TDEE, prev)
		}
		prev = out.TDEE
	}
}

func TestUnknownActivityDefaultsToSedentary(t *testing.T) {
	sed, _ := CalculateTargets(80, 180, 30, "male", "sedentary", GoalMaintain)
	unk, _ := CalculateTargets(80, 180, 30, "male", "couch", GoalMaintain)
	if sed != unk {
		t.Errorf("unknown level should match sedentary: %+v vs %+v", unk, sed)
	}
}

func TestGoalRelativeToTDEE(t *testing.T) {
	lose, _ := CalculateTargets(80, 180, 30, "male", "moderate", GoalLose)
	gain, _ := CalculateTargets(80, 180, 30, "male", "moderate", GoalGain)
	maintain, _ := CalculateTargets(80, 180, 30, "male", "moderate", GoalMaintain)

	if lose.Calories > lose.TDEE {
		t.Errorf("lose calories %d above tdee %d", lose.Calories, lose.TDEE)
	}
	if gain.Calories < gain.TDEE {
		t.Errorf("gain calories %d below tdee %d", gain.Calories, gain.TDEE)
	}
	if maintain.Calories != maintain.TDEE {
		t.Errorf("maintain calories %d != tdee %d", maintain.Calories, maintain.TDEE)
	}
}

func TestMacroEnergyConsistency(t *testing.T) {
	cases := []struct {
		w, h   float64
		age    int
		gender string
		lvl    string
		goal   string
	}{
		{80, 180, 30, "male", "moderate", GoalLose},
		{60, 165, 25, "female", "light", GoalGain},
		{95, 190, 52, "male", "very_active", GoalMaintain},
		{48, 152, 19, "female", "sedentary", GoalLose},
	}
	for _, c := range cases {
		out, err := CalculateTargets(c.w, c.h, c.age, c.gender, c.lvl, c.goal)
		if err != nil {
			t.Fatalf("%+v: %v", c, err)
		}
		kcal := out.ProteinG*4 + out.CarbsG*4 + out.FatsG*9
		diff := kcal - out.Calories
		if diff < -10 || diff > 10 {
			t.Errorf("%+v: macros add to %d kcal, target %d", c, kcal, out.Calories)
		}
	}
}

func TestCalculateTargetsRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		w, h   float64
		age    int
	}{
		{"zero weight", 0, 180, 30},
		{"negative height", 80, -1, 30},
		{"zero age", 80, 180, 0},
	}
	for _, c := range cases {
		_, err := CalculateTargets(c.w, c.h, c.age, "male", "moderate", GoalLose)
		if !errors.Is(err, ErrInvalidProfileInput) {
			t.Errorf("%s: got %v, want ErrInvalidProfileInput", c.name, err)
		}
	}
}
