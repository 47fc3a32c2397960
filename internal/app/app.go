package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"menu-planner/internal/config"
	"menu-planner/internal/ingredient"
	"menu-planner/internal/mealgen"
	"menu-planner/internal/metrics"
	"menu-planner/internal/plan"
	"menu-planner/internal/schedule"
	"menu-planner/internal/storage"
)

// ErrEmptyCatalog means the user's catalog has no category with items, so
// generation cannot be started.
var ErrEmptyCatalog = errors.New("app: ingredient catalog has no usable items")

// IngredientFetcher extracts ingredient candidates from a recipe URL.
type IngredientFetcher interface {
	FetchIngredients(ctx context.Context, url string) ([]string, error)
}

// App wires the stores, the generator, and the importer together. The
// generation core itself does no I/O; everything that touches disk or the
// network lives here or below.
type App struct {
	cfg          *config.Config
	catalogStore *storage.CatalogStore
	planStore    *storage.PlanStore
	metricsStore *metrics.Store
	fetcher      IngredientFetcher

	// Rng overrides the generator's random source; tests set a fixed seed.
	Rng *rand.Rand
}

// NewApp creates a new App instance. metricsStore may be nil, in which
// case runs are simply not recorded.
func NewApp(
	cfg *config.Config,
	catalogStore *storage.CatalogStore,
	planStore *storage.PlanStore,
	metricsStore *metrics.Store,
	fetcher IngredientFetcher,
) *App {
	return &App{
		cfg:          cfg,
		catalogStore: catalogStore,
		planStore:    planStore,
		metricsStore: metricsStore,
		fetcher:      fetcher,
	}
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// GenerateMonth fills the plan for one month: the month is partitioned
// into the configured number of week buckets, each week is generated
// independently, and the result is merged against whatever the user
// already has for that month. The merged plan is saved and returned.
func (a *App) GenerateMonth(userID string, year int, month time.Month, mode plan.MergeMode) (plan.Plan, error) {
	catalog, err := a.loadCatalog(userID)
	if err != nil {
		return nil, err
	}
	if !mealgen.ValidateIngredients(catalog) {
		return nil, ErrEmptyCatalog
	}

	totalDays := DaysInMonth(year, month)
	ranges, err := schedule.Partition(totalDays, a.cfg.NumberOfWeeks)
	if err != nil {
		return nil, fmt.Errorf("failed to partition month: %w", err)
	}

	gen := mealgen.NewGenerator(catalog, a.Rng)
	start := time.Now()
	weeks := gen.GenerateAllWeeks(ranges)
	generated := flattenWeeks(weeks)

	existing := plan.Plan{}
	if a.planStore.Exists(userID, year, month) {
		existing, err = a.planStore.Load(userID, year, month)
		if err != nil {
			return nil, err
		}
	}

	merged := plan.Merge(existing, generated, mode)
	if err := a.planStore.Save(userID, year, month, merged); err != nil {
		return nil, err
	}

	a.recordRun(userID, "month", totalDays, gen.Stats(), time.Since(start))
	return merged, nil
}

// SuggestMeal regenerates a single slot of the stored month plan. The
// suggestion must differ from every meal already visible in that plan;
// when that is impossible the error wraps mealgen.ErrNoSuggestion and the
// plan is left untouched.
func (a *App) SuggestMeal(userID string, year int, month time.Month, day int, meal ingredient.MealType) (string, error) {
	catalog, err := a.loadCatalog(userID)
	if err != nil {
		return "", err
	}
	if !mealgen.ValidateIngredients(catalog) {
		return "", ErrEmptyCatalog
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return "", fmt.Errorf("day %d is not in %04d-%02d", day, year, int(month))
	}

	current := plan.Plan{}
	if a.planStore.Exists(userID, year, month) {
		current, err = a.planStore.Load(userID, year, month)
		if err != nil {
			return "", err
		}
	}

	gen := mealgen.NewGenerator(catalog, a.Rng)
	start := time.Now()
	suggestion, err := gen.GenerateSingleMeal(meal, current.Meals())
	a.recordRun(userID, "single", 1, gen.Stats(), time.Since(start))
	if err != nil {
		return "", err
	}

	meals := current[day]
	meals.SetSlot(meal, suggestion)
	current[day] = meals
	if err := a.planStore.Save(userID, year, month, current); err != nil {
		return "", err
	}
	return suggestion, nil
}

// ShowPlan loads the stored plan for a month. A month with no stored plan
// yields an empty plan, not an error.
func (a *App) ShowPlan(userID string, year int, month time.Month) (plan.Plan, error) {
	if !a.planStore.Exists(userID, year, month) {
		return plan.Plan{}, nil
	}
	return a.planStore.Load(userID, year, month)
}

// HasPlan reports whether the user already has a stored plan for a month.
func (a *App) HasPlan(userID string, year int, month time.Month) bool {
	return a.planStore.Exists(userID, year, month)
}

// Catalog loads the user's ingredient catalog; a missing catalog is empty.
func (a *App) Catalog(userID string) (ingredient.Catalog, error) {
	return a.loadCatalog(userID)
}

// SaveCatalog persists the user's ingredient catalog.
func (a *App) SaveCatalog(userID string, catalog ingredient.Catalog) error {
	return a.catalogStore.Save(userID, catalog)
}

// ImportIngredients scrapes a recipe URL and merges the found ingredient
// lines into the named catalog category, creating the category (enabled
// for both slots) when it does not exist yet. Duplicates are dropped here,
// at the boundary; the generation core assumes items are already unique.
// It returns the number of items actually added.
func (a *App) ImportIngredients(ctx context.Context, userID, url, categoryName string) (int, error) {
	items, err := a.fetcher.FetchIngredients(ctx, url)
	if err != nil {
		return 0, err
	}

	catalog, err := a.loadCatalog(userID)
	if err != nil {
		return 0, err
	}

	if _, ok := catalog.Get(categoryName); !ok {
		catalog.Add(ingredient.Category{
			Name:  categoryName,
			Meals: ingredient.MealFlags{Midi: true, Soir: true},
		})
	}
	added := catalog.AddItems(categoryName, items)

	if err := a.catalogStore.Save(userID, catalog); err != nil {
		return 0, err
	}
	return added, nil
}

func (a *App) loadCatalog(userID string) (ingredient.Catalog, error) {
	if !a.catalogStore.Exists(userID) {
		return ingredient.Catalog{}, nil
	}
	return a.catalogStore.Load(userID)
}

func flattenWeeks(weeks map[int]plan.Plan) plan.Plan {
	month := plan.Plan{}
	for _, week := range weeks {
		for day, meals := range week {
			month[day] = meals
		}
	}
	return month
}

func (a *App) recordRun(userID, kind string, days int, stats mealgen.RunStats, latency time.Duration) {
	if a.metricsStore == nil {
		return
	}
	err := a.metricsStore.Record(metrics.GenerationMetric{
		UserID:         userID,
		Kind:           kind,
		Days:           days,
		Slots:          stats.Slots,
		SoftDuplicates: stats.SoftDuplicates,
		LatencyMS:      latency.Milliseconds(),
	})
	if err != nil {
		log.Printf("Warning: failed to record %s generation metric for user %s: %v", kind, userID, err)
	}
}
