// Package catalog holds the built-in workout plans and the exercise reference
// table. The data is compiled into the binary and never mutated at runtime.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed plans.yaml
var plansYAML []byte

// RestMarker is the pseudo-exercise inserted between exercises when rest
// periods are enabled.
const RestMarker = "Rest"

type Intensity string

const (
	IntensityLow    Intensity = "Low"
	IntensityMedium Intensity = "Medium"
	IntensityHigh   Intensity = "High"
)

type PlanType string

const (
	TypeCardio      PlanType = "cardio"
	TypeStrength    PlanType = "strength"
	TypeFlexibility PlanType = "flexibility"
	TypeHIIT        PlanType = "hiit"
)

// Plan is a fixed workout template. Duration is the suggested total length in
// minutes; Exercises is the ordered list of exercise names.
type Plan struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Duration  int       `yaml:"duration"`
	Intensity Intensity `yaml:"intensity"`
	Type      PlanType  `yaml:"type"`
	Exercises []string  `yaml:"exercises"`
}

// Exercise is the reference entry for a single exercise name.
type Exercise struct {
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

type Catalog struct {
	plans     []Plan
	byID      map[string]int
	exercises map[string]Exercise
}

type catalogFile struct {
	Plans     []Plan              `yaml:"plans"`
	Exercises map[string]Exercise `yaml:"exercises"`
}

// Load parses and validates the embedded catalog data.
func Load() (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(plansYAML, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		plans:     f.Plans,
		byID:      make(map[string]int, len(f.Plans)),
		exercises: f.Exercises,
	}
	for i, p := range f.Plans {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("plan %d: missing id or name", i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate plan id %q", p.ID)
		}
		if p.Duration <= 0 {
			return nil, fmt.Errorf("plan %q: duration must be positive", p.ID)
		}
		if len(p.Exercises) == 0 {
			return nil, fmt.Errorf("plan %q: empty exercise list", p.ID)
		}
		switch p.Intensity {
		case IntensityLow, IntensityMedium, IntensityHigh:
		default:
			return nil, fmt.Errorf("plan %q: unknown intensity %q", p.ID, p.Intensity)
		}
		switch p.Type {
		case TypeCardio, TypeStrength, TypeFlexibility, TypeHIIT:
		default:
			return nil, fmt.Errorf("plan %q: unknown type %q", p.ID, p.Type)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// Plans returns all plans in catalog order.
func (c *Catalog) Plans() []Plan {
	return c.plans
}

func (c *Catalog) PlanByID(id string) (Plan, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Plan{}, false
	}
	return c.plans[i], true
}

// MorningPlans returns the plans intended for the morning slot.
func (c *Catalog) MorningPlans() []Plan {
	return c.filter("morning")
}

// EveningPlans returns the plans intended for the evening slot.
func (c *Catalog) EveningPlans() []Plan {
	return c.filter("evening")
}

func (c *Catalog) filter(substr string) []Plan {
	var out []Plan
	for _, p := range c.plans {
		if strings.Contains(p.ID, substr) {
			out = append(out, p)
		}
	}
	return out
}

// Describe looks up the reference entry for an exercise name. Unknown names
// get a generic placeholder so callers never have to handle a miss.
func (c *Catalog) Describe(name string) Exercise {
	if e, ok := c.exercises[name]; ok {
		return e
	}
	return Exercise{
		Description: "Follow the exercise shown in the image.",
		Image:       "placeholder.png",
	}
}

// IsRest reports whether name is the rest marker.
func IsRest(name string) bool {
	return name == RestMarker
}
