package plan

import (
	"fmt"
	"sort"
	"strings"

	"menu-planner/internal/ingredient"
)

// Meals holds the two meal slots of a single day.
type Meals struct {
	Midi string `json:"midi"`
	Soir string `json:"soir"`
}

// Slot returns the meal stored in the given slot.
func (m Meals) Slot(meal ingredient.MealType) string {
	if meal == ingredient.Soir {
		return m.Soir
	}
	return m.Midi
}

// SetSlot stores a meal in the given slot.
func (m *Meals) SetSlot(meal ingredient.MealType, value string) {
	if meal == ingredient.Soir {
		m.Soir = value
		return
	}
	m.Midi = value
}

// Plan maps a day of month to its meals. Earlier revisions of the data
// keyed plans by weekday name; that schema is a dead migration path and is
// not accepted here.
type Plan map[int]Meals

// Days returns the plan's day numbers in ascending order.
func (p Plan) Days() []int {
	days := make([]int, 0, len(p))
	for day := range p {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// Meals returns every non-empty meal string in the plan, in day order.
// This is the "already visible" set handed to single-slot regeneration.
func (p Plan) Meals() []string {
	var meals []string
	for _, day := range p.Days() {
		for _, meal := range []string{p[day].Midi, p[day].Soir} {
			if strings.TrimSpace(meal) != "" {
				meals = append(meals, meal)
			}
		}
	}
	return meals
}

// MergeMode controls whether generated content may overwrite meals the
// user already entered.
type MergeMode int

const (
	// FillEmpty keeps every non-blank existing meal and only fills the gaps.
	FillEmpty MergeMode = iota
	// ReplaceAll overwrites every day present in the generated plan.
	ReplaceAll
)

func (m MergeMode) String() string {
	switch m {
	case FillEmpty:
		return "fill-empty"
	case ReplaceAll:
		return "replace-all"
	}
	return fmt.Sprintf("MergeMode(%d)", int(m))
}

// ParseMergeMode maps the CLI/bot spellings onto a MergeMode.
func ParseMergeMode(s string) (MergeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fill", "fill-empty":
		return FillEmpty, nil
	case "replace", "replace-all":
		return ReplaceAll, nil
	}
	return FillEmpty, fmt.Errorf("unknown merge mode %q", s)
}

// Merge combines an existing plan with freshly generated content. Neither
// input is modified. Days present only in existing are always kept; with
// FillEmpty an existing meal survives whenever it is non-blank after
// trimming, with ReplaceAll the generated day wins outright.
func Merge(existing, generated Plan, mode MergeMode) Plan {
	merged := make(Plan, len(existing)+len(generated))
	for day, meals := range existing {
		merged[day] = meals
	}
	for day, meals := range generated {
		if mode == ReplaceAll {
			merged[day] = meals
			continue
		}
		current := merged[day]
		if strings.TrimSpace(current.Midi) == "" {
			current.Midi = meals.Midi
		}
		if strings.TrimSpace(current.Soir) == "" {
			current.Soir = meals.Soir
		}
		merged[day] = current
	}
	return merged
}
