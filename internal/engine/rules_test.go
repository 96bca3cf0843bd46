package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/tatianab/absurd-path/internal/models"
)

func TestCondIsMet(t *testing.T) {
	s := models.NewGameState("start")
	s.Stats[models.Absurdism] = 2
	s.Flags["seen"] = true
	s.Flags["falsy"] = false

	tests := []struct {
		name string
		cond models.Condition
		want bool
	}{
		{"flag set present", models.Condition{FlagSet: models.Flag("seen")}, true},
		{"flag set absent", models.Condition{FlagSet: models.Flag("missing")}, false},
		{"flag set false", models.Condition{FlagSet: models.Flag("falsy")}, false},
		{"flag unset absent", models.Condition{FlagUnset: models.Flag("missing")}, true},
		{"flag unset present", models.Condition{FlagUnset: models.Flag("seen")}, false},
		{"flag wins over stat", models.Condition{FlagSet: models.Flag("seen"), Stat: models.Absurdism, Op: ">", Value: 99}, true},
		{"gt", models.Condition{Stat: models.Absurdism, Op: ">", Value: 1}, true},
		{"gt false", models.Condition{Stat: models.Absurdism, Op: ">", Value: 5}, false},
		{"ge", models.Condition{Stat: models.Absurdism, Op: ">=", Value: 2}, true},
		{"lt", models.Condition{Stat: models.Absurdism, Op: "<", Value: 3}, true},
		{"le", models.Condition{Stat: models.Absurdism, Op: "<=", Value: 2}, true},
		{"eq", models.Condition{Stat: models.Absurdism, Op: "==", Value: 2}, true},
		{"ne", models.Condition{Stat: models.Absurdism, Op: "!=", Value: 3}, true},
		{"default value is zero", models.Condition{Stat: models.Faith, Op: "=="}, true},
		{"unknown stat reads zero", models.Condition{Stat: "Courage", Op: "<", Value: 1}, true},
		{"unknown operator fails closed", models.Condition{Stat: models.Absurdism, Op: "~="}, false},
		{"empty condition holds", models.Condition{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CondIsMet(tt.cond, s); got != tt.want {
				t.Errorf("CondIsMet(%+v) = %v, want %v", tt.cond, got, tt.want)
			}
		})
	}
}

func TestChoiceIsAvailableAndApplyEffect(t *testing.T) {
	s := models.NewGameState("x")
	c := models.Choice{
		Text: "gain + set + journal",
		Next: "y",
		Conditions: []models.Condition{
			{FlagUnset: models.Flag("locked")},
			{Stat: models.Faith, Op: "==", Value: 0},
		},
		Effects: []models.Effect{{Stat: models.Faith, Delta: 2}, {SetFlag: "opened"}, {Journal: "did a thing"}},
	}
	if !ChoiceIsAvailable(c, s) {
		t.Fatalf("Expected choice to be available")
	}
	for _, eff := range c.Effects {
		ApplyEffect(eff, s)
	}
	if s.Stats[models.Faith] != 2 {
		t.Errorf("Expected Faith 2, got %d", s.Stats[models.Faith])
	}
	if !s.Flags["opened"] {
		t.Errorf("Expected opened flag")
	}
	if len(s.Journal) != 1 || s.Journal[0] != "did a thing" {
		t.Errorf("Unexpected journal %v", s.Journal)
	}
	if ChoiceIsAvailable(c, s) {
		t.Errorf("Expected choice to close once Faith changed")
	}
	if !ChoiceIsAvailable(models.Choice{}, s) {
		t.Errorf("Expected a choice without conditions to be available")
	}
}

func TestApplyEffectClearFlagDeletesKey(t *testing.T) {
	s := models.NewGameState("x")
	s.Flags["temp"] = true

	ApplyEffect(models.Effect{ClearFlag: "temp"}, s)
	if _, ok := s.Flags["temp"]; ok {
		t.Errorf("Expected temp to be removed, flags are %v", s.Flags)
	}
}

func TestApplyEffectAllFieldsFire(t *testing.T) {
	s := models.NewGameState("x")
	s.Flags["old"] = true

	ApplyEffect(models.Effect{Stat: models.Stability, Delta: -2, SetFlag: "new", ClearFlag: "old", Journal: "line"}, s)
	if s.Stats[models.Stability] != -2 || !s.Flags["new"] || s.Flags["old"] || len(s.Journal) != 1 {
		t.Errorf("Expected every field to fire, got %+v", s)
	}
}

func TestApplyEffectIgnoresUnknownStat(t *testing.T) {
	s := models.NewGameState("x")
	ApplyEffect(models.Effect{Stat: "Courage", Delta: 5}, s)
	if len(s.Stats) != len(models.StatKeys) {
		t.Errorf("Expected the stat set to stay fixed, got %v", s.Stats)
	}
}

func TestStatsLine(t *testing.T) {
	s := models.NewGameState("start")
	s.Stats[models.Absurdism] = 1
	s.Stats[models.Stability] = -2

	line := StatsLine(s)
	want := "Absurdism:+1 Freedom:+0 Faith:+0 Stability:-2 SelfAffirmation:+0"
	if line != want {
		t.Errorf("Expected %q, got %q", want, line)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(sampleDoc()); err != nil {
		t.Fatalf("Expected sample content to be valid, got %v", err)
	}

	doc := models.ContentDoc{Start: "ghost", Nodes: []models.NodeDef{
		{ID: "a", Choices: []models.Choice{
			{Text: "x", Next: "nowhere"},
			{Text: "y", Next: "a", Conditions: []models.Condition{{Stat: "Courage", Op: "=~"}}},
			{Text: "z", Next: "a", Effects: []models.Effect{{Stat: "Luck", Delta: 1}}},
		}},
		{ID: "a"},
	}}
	err := Validate(doc)
	if !errors.Is(err, ErrInvalidContent) {
		t.Fatalf("Expected ErrInvalidContent, got %v", err)
	}
	for _, want := range []string{
		`start node "ghost" is not defined`,
		`duplicate node id "a"`,
		`undefined node "nowhere"`,
		`unknown stat "Courage"`,
		`unknown operator "=~"`,
		`changes unknown stat "Luck"`,
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in %v", want, err)
		}
	}

	if err := Validate(models.ContentDoc{}); err == nil || !strings.Contains(err.Error(), "start node is not set") {
		t.Errorf("Expected unset start to be reported, got %v", err)
	}
}
