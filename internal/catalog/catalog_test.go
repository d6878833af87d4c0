package catalog

import (
	"strings"
	"testing"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Plans()) == 0 {
		t.Fatal("expected built-in plans")
	}
}

func TestPlanByID(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	p, ok := c.PlanByID("morning-cardio")
	if !ok {
		t.Fatal("expected morning-cardio plan")
	}
	if p.Name == "" || p.Duration <= 0 || len(p.Exercises) == 0 {
		t.Errorf("incomplete plan: %+v", p)
	}

	if _, ok := c.PlanByID("no-such-plan"); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestMorningAndEveningGroups(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	morning := c.MorningPlans()
	evening := c.EveningPlans()
	if len(morning) == 0 || len(evening) == 0 {
		t.Fatalf("expected both groups populated: %d morning, %d evening", len(morning), len(evening))
	}
	for _, p := range morning {
		if !strings.HasPrefix(p.ID, "morning-") {
			t.Errorf("plan %q in morning group", p.ID)
		}
	}
	for _, p := range evening {
		if !strings.HasPrefix(p.ID, "evening-") {
			t.Errorf("plan %q in evening group", p.ID)
		}
	}
}

func TestDescribeFallsBackToPlaceholder(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	known := c.Describe("Jumping Jacks")
	if known.Description == "" {
		t.Error("expected a description for a known exercise")
	}

	unknown := c.Describe("Quantum Lunges")
	if unknown.Description == "" || unknown.Image == "" {
		t.Errorf("expected placeholder entry, got %+v", unknown)
	}
}

func TestEveryPlanExerciseIsDescribed(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range c.Plans() {
		for _, name := range p.Exercises {
			if IsRest(name) {
				continue
			}
			if e := c.Describe(name); e.Image == "placeholder.png" {
				t.Errorf("plan %q references undescribed exercise %q", p.ID, name)
			}
		}
	}
}

func TestIsRest(t *testing.T) {
	if !IsRest(RestMarker) {
		t.Error("marker should be rest")
	}
	if IsRest("Plank") {
		t.Error("Plank is not rest")
	}
}
