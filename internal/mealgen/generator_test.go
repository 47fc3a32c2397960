package mealgen

import (
	"errors"
	"math/rand"
	"testing"

	"menu-planner/internal/ingredient"
	"menu-planner/internal/schedule"
)

func testCatalog() ingredient.Catalog {
	return ingredient.Catalog{
		{
			Name:  "Féculents",
			Meals: ingredient.MealFlags{Midi: true, Soir: true},
			Items: []string{
				"Riz", "Pâtes", "Semoule", "Pommes de terre", "Quinoa",
				"Boulgour", "Lentilles", "Polenta", "Gnocchis", "Orge",
				"Haricots blancs", "Pois chiches", "Patate douce", "Épeautre",
			},
		},
		{
			Name:  "Légumes",
			Meals: ingredient.MealFlags{Midi: true, Soir: false},
			Items: []string{"Brocoli", "Carottes", "Courgettes", "Haricots verts", "Épinards", "Poireaux", "Chou-fleur"},
		},
	}
}

func TestGenerateWeekFillsEverySlot(t *testing.T) {
	gen := NewGenerator(testCatalog(), rand.New(rand.NewSource(1)))
	days := []int{1, 2, 3, 4, 5, 6, 7}

	week := gen.GenerateWeek(days)
	if len(week) != len(days) {
		t.Fatalf("Expected %d days, got %d", len(days), len(week))
	}
	for _, day := range days {
		meals, ok := week[day]
		if !ok {
			t.Fatalf("Day %d missing from plan", day)
		}
		if meals.Midi == "" || meals.Soir == "" {
			t.Errorf("Day %d has a blank slot: %+v", day, meals)
		}
	}
}

func TestGenerateWeekMealsDistinctAcrossWeek(t *testing.T) {
	// 14 slots, and enough distinct compositions available: everything the
	// week produces should be unique, not merely unique within one day.
	gen := NewGenerator(testCatalog(), rand.New(rand.NewSource(2)))
	week := gen.GenerateWeek([]int{1, 2, 3, 4, 5, 6, 7})

	seen := make(map[string]int)
	for day, meals := range week {
		for _, meal := range []string{meals.Midi, meals.Soir} {
			key := Normalize(meal)
			if firstDay, dup := seen[key]; dup {
				t.Errorf("Meal %q appears on both day %d and day %d", meal, firstDay, day)
			}
			seen[key] = day
		}
	}
	if gen.Stats().SoftDuplicates != 0 {
		t.Errorf("Expected no soft duplicates, got %d", gen.Stats().SoftDuplicates)
	}
}

func TestGenerateWeekSoftAcceptsWhenStarved(t *testing.T) {
	// One single-item category: only one composition exists, so every slot
	// after the first is a soft-accepted duplicate rather than a blank.
	catalog := ingredient.Catalog{
		{Name: "Féculents", Meals: ingredient.MealFlags{Midi: true, Soir: true}, Items: []string{"Riz"}},
	}
	gen := NewGenerator(catalog, rand.New(rand.NewSource(1)))

	week := gen.GenerateWeek([]int{1, 2, 3})
	for day, meals := range week {
		if meals.Midi != "Riz" || meals.Soir != "Riz" {
			t.Errorf("Day %d: expected Riz in both slots, got %+v", day, meals)
		}
	}
	if gen.Stats().SoftDuplicates != 5 {
		t.Errorf("Expected 5 soft duplicates (6 slots, 1 unique meal), got %d", gen.Stats().SoftDuplicates)
	}
}

func TestGenerateWeekNoActiveCategories(t *testing.T) {
	// Soir is disabled everywhere: soir slots stay blank, midi still fills.
	catalog := ingredient.Catalog{
		{Name: "Légumes", Meals: ingredient.MealFlags{Midi: true, Soir: false}, Items: []string{"Brocoli", "Carottes"}},
	}
	gen := NewGenerator(catalog, rand.New(rand.NewSource(1)))

	week := gen.GenerateWeek([]int{1, 2})
	for day, meals := range week {
		if meals.Midi == "" {
			t.Errorf("Day %d: expected a midi meal", day)
		}
		if meals.Soir != "" {
			t.Errorf("Day %d: expected a blank soir slot, got %q", day, meals.Soir)
		}
	}
}

func TestGenerateAllWeeks(t *testing.T) {
	ranges, err := schedule.Partition(30, 4)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	gen := NewGenerator(testCatalog(), rand.New(rand.NewSource(3)))
	weeks := gen.GenerateAllWeeks(ranges)

	if len(weeks) != 4 {
		t.Fatalf("Expected 4 week plans, got %d", len(weeks))
	}
	covered := make(map[int]bool)
	for _, r := range ranges {
		week := weeks[r.Week]
		if len(week) != len(r.Days) {
			t.Errorf("Week %d: expected %d days, got %d", r.Week, len(r.Days), len(week))
		}
		for day := range week {
			if covered[day] {
				t.Errorf("Day %d generated twice", day)
			}
			covered[day] = true
		}
	}
	if len(covered) != 30 {
		t.Errorf("Expected 30 generated days, got %d", len(covered))
	}
}

func TestGenerateSingleMealAvoidsUsed(t *testing.T) {
	catalog := ingredient.Catalog{
		{Name: "Féculents", Meals: ingredient.MealFlags{Midi: true, Soir: true}, Items: []string{"Riz", "Pâtes", "Semoule"}},
	}
	gen := NewGenerator(catalog, rand.New(rand.NewSource(1)))

	meal, err := gen.GenerateSingleMeal(ingredient.Midi, []string{"Riz", "Semoule"})
	if err != nil {
		t.Fatalf("GenerateSingleMeal failed: %v", err)
	}
	if meal != "Pâtes" {
		t.Errorf("Expected Pâtes (the only unused meal), got %q", meal)
	}
}

func TestGenerateSingleMealStrictFailure(t *testing.T) {
	// Every possible composition is already visible: the single-slot path
	// must fail explicitly, never hand back a duplicate.
	catalog := ingredient.Catalog{
		{Name: "Féculents", Meals: ingredient.MealFlags{Midi: true, Soir: true}, Items: []string{"Riz", "Pâtes"}},
	}
	gen := NewGenerator(catalog, rand.New(rand.NewSource(1)))

	meal, err := gen.GenerateSingleMeal(ingredient.Midi, []string{"riz", " Pâtes "})
	if !errors.Is(err, ErrNoSuggestion) {
		t.Fatalf("Expected ErrNoSuggestion, got meal=%q err=%v", meal, err)
	}
}

func TestValidateIngredients(t *testing.T) {
	if ValidateIngredients(ingredient.Catalog{}) {
		t.Error("Expected an empty catalog to be invalid")
	}

	emptyItems := ingredient.Catalog{
		{Name: "Légumes", Meals: ingredient.MealFlags{Midi: true, Soir: false}},
	}
	if ValidateIngredients(emptyItems) {
		t.Error("Expected a catalog with no items to be invalid")
	}

	valid := ingredient.Catalog{
		{Name: "Légumes", Meals: ingredient.MealFlags{Midi: true, Soir: false}, Items: []string{"Carotte"}},
	}
	if !ValidateIngredients(valid) {
		t.Error("Expected a catalog with one item to be valid")
	}
}
