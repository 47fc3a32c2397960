package mealgen

import (
	"errors"
	"math/rand"
	"time"

	"menu-planner/internal/ingredient"
	"menu-planner/internal/plan"
	"menu-planner/internal/schedule"
)

// ErrNoSuggestion is returned by GenerateSingleMeal when every attempt
// collides with a meal the user can already see.
var ErrNoSuggestion = errors.New("mealgen: no suggestion available")

const (
	// Week-level generation accepts a duplicate after this many collisions
	// rather than leave a slot blank.
	weekMaxAttempts = 10
	// Single-slot regeneration tries harder and then fails outright; the
	// user explicitly asked for something new, so a silent duplicate would
	// be worse than no answer.
	singleMaxAttempts = 20
)

// RunStats summarizes one generation run.
type RunStats struct {
	Slots          int
	SoftDuplicates int
}

// Generator fills meal slots from per-category rotations. It is built for
// one generation run and is not safe for concurrent use: create one per
// request.
type Generator struct {
	catalog ingredient.Catalog
	rng     *rand.Rand
	stats   RunStats
}

// NewGenerator returns a Generator over the given catalog. rng may be nil,
// in which case a time-seeded source is used; tests pass a fixed seed.
func NewGenerator(catalog ingredient.Catalog, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{catalog: catalog, rng: rng}
}

// Stats reports the slots filled and duplicates accepted so far.
func (g *Generator) Stats() RunStats {
	return g.stats
}

// ValidateIngredients reports whether the catalog can produce any meal at
// all. Callers must refuse to start generation when this is false; the
// generator itself does not re-check.
func ValidateIngredients(catalog ingredient.Catalog) bool {
	return catalog.HasItems()
}

// newRotations builds fresh per-category state for one run.
func (g *Generator) newRotations() map[string]*Rotation {
	rotations := make(map[string]*Rotation, len(g.catalog))
	for _, cat := range g.catalog {
		rotations[cat.Name] = NewRotation(cat.Items, g.rng)
	}
	return rotations
}

// GenerateWeek composes midi and soir meals for each given day, in order.
// A single used-set spans the whole call, so meals are kept distinct
// across the week being generated, not merely within a day.
func (g *Generator) GenerateWeek(days []int) plan.Plan {
	rotations := g.newRotations()
	used := make(map[string]struct{})
	week := make(plan.Plan, len(days))
	for _, day := range days {
		var meals plan.Meals
		meals.Midi = g.fillSlot(rotations, ingredient.Midi, used)
		meals.Soir = g.fillSlot(rotations, ingredient.Soir, used)
		week[day] = meals
	}
	return week
}

func (g *Generator) fillSlot(rotations map[string]*Rotation, meal ingredient.MealType, used map[string]struct{}) string {
	categories := g.catalog.Active(meal)
	s := composeUnique(rotations, categories, used, weekMaxAttempts)
	g.stats.Slots++
	if s.Outcome == SoftDuplicate {
		g.stats.SoftDuplicates++
	}
	if s.Meal != "" {
		used[Normalize(s.Meal)] = struct{}{}
	}
	return s.Meal
}

// GenerateAllWeeks generates each week range independently, with fresh
// rotation state and a fresh used-set per week. Cross-week repeats are
// allowed; only within-week uniqueness is attempted.
func (g *Generator) GenerateAllWeeks(ranges []schedule.WeekRange) map[int]plan.Plan {
	weeks := make(map[int]plan.Plan, len(ranges))
	for _, r := range ranges {
		weeks[r.Week] = g.GenerateWeek(r.Days)
	}
	return weeks
}

// GenerateSingleMeal composes one meal for the given slot that collides
// with none of usedMeals. Unlike the week path it never soft-accepts:
// after twenty colliding attempts it returns ErrNoSuggestion.
func (g *Generator) GenerateSingleMeal(meal ingredient.MealType, usedMeals []string) (string, error) {
	rotations := g.newRotations()
	used := make(map[string]struct{}, len(usedMeals))
	for _, m := range usedMeals {
		used[Normalize(m)] = struct{}{}
	}
	s := composeUnique(rotations, g.catalog.Active(meal), used, singleMaxAttempts)
	g.stats.Slots++
	if s.Outcome == SoftDuplicate {
		g.stats.SoftDuplicates++
		return "", ErrNoSuggestion
	}
	return s.Meal, nil
}
