package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"menu-planner/internal/app"
	"menu-planner/internal/config"
	"menu-planner/internal/database"
	"menu-planner/internal/importer"
	"menu-planner/internal/ingredient"
	"menu-planner/internal/mealgen"
	"menu-planner/internal/metrics"
	"menu-planner/internal/plan"
	"menu-planner/internal/storage"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	catalogStore, err := storage.NewCatalogStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize catalog store: %v", err)
	}
	planStore, err := storage.NewPlanStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize plan store: %v", err)
	}

	metricsStore := metrics.NewStore(db.SQL)
	application := app.NewApp(cfg, catalogStore, planStore, metricsStore, importer.NewImporter())

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		runGenerate(application, cfg, os.Args[2:])
	case "suggest":
		runSuggest(application, cfg, os.Args[2:])
	case "show":
		runShow(application, cfg, os.Args[2:])
	case "import":
		runImport(application, cfg, os.Args[2:])
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(*days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runGenerate(application *app.App, cfg *config.Config, args []string) {
	cmd := flag.NewFlagSet("generate", flag.ExitOnError)
	monthFlag := cmd.String("month", "", "Target month as YYYY-MM (default: current month)")
	modeFlag := cmd.String("mode", "fill", "Merge mode: fill (keep existing meals) or replace")
	userFlag := cmd.String("user", cfg.DefaultUserID, "User identifier")
	cmd.Parse(args)

	year, month := parseMonth(*monthFlag)
	mode, err := plan.ParseMergeMode(*modeFlag)
	if err != nil {
		log.Fatalf("Invalid mode: %v", err)
	}

	monthPlan, err := application.GenerateMonth(*userFlag, year, month, mode)
	if err != nil {
		if errors.Is(err, app.ErrEmptyCatalog) {
			log.Fatalf("The ingredient catalog is empty; run 'import' first.")
		}
		log.Fatalf("Generation failed: %v", err)
	}

	printPlan(monthPlan, year, month)
}

func runSuggest(application *app.App, cfg *config.Config, args []string) {
	cmd := flag.NewFlagSet("suggest", flag.ExitOnError)
	monthFlag := cmd.String("month", "", "Target month as YYYY-MM (default: current month)")
	dayFlag := cmd.Int("day", time.Now().Day(), "Day of month to regenerate")
	mealFlag := cmd.String("meal", "midi", "Meal slot: midi or soir")
	userFlag := cmd.String("user", cfg.DefaultUserID, "User identifier")
	cmd.Parse(args)

	meal := ingredient.MealType(*mealFlag)
	if !meal.Valid() {
		log.Fatalf("Invalid meal slot %q: must be midi or soir", *mealFlag)
	}

	year, month := parseMonth(*monthFlag)
	suggestion, err := application.SuggestMeal(*userFlag, year, month, *dayFlag, meal)
	if err != nil {
		if errors.Is(err, mealgen.ErrNoSuggestion) {
			log.Fatalf("No suggestion available: every possible meal is already on the plan.")
		}
		log.Fatalf("Suggestion failed: %v", err)
	}

	fmt.Printf("Day %d, %s: %s\n", *dayFlag, meal, suggestion)
}

func runShow(application *app.App, cfg *config.Config, args []string) {
	cmd := flag.NewFlagSet("show", flag.ExitOnError)
	monthFlag := cmd.String("month", "", "Target month as YYYY-MM (default: current month)")
	userFlag := cmd.String("user", cfg.DefaultUserID, "User identifier")
	cmd.Parse(args)

	year, month := parseMonth(*monthFlag)
	monthPlan, err := application.ShowPlan(*userFlag, year, month)
	if err != nil {
		log.Fatalf("Failed to load plan: %v", err)
	}
	if len(monthPlan) == 0 {
		fmt.Printf("No plan stored for %04d-%02d.\n", year, int(month))
		return
	}
	printPlan(monthPlan, year, month)
}

func runImport(application *app.App, cfg *config.Config, args []string) {
	cmd := flag.NewFlagSet("import", flag.ExitOnError)
	urlFlag := cmd.String("url", "", "Recipe page URL to scrape")
	categoryFlag := cmd.String("category", "", "Catalog category to add the ingredients to")
	userFlag := cmd.String("user", cfg.DefaultUserID, "User identifier")
	cmd.Parse(args)

	if *urlFlag == "" || *categoryFlag == "" {
		log.Fatalf("Both -url and -category are required.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	added, err := application.ImportIngredients(ctx, *userFlag, *urlFlag, *categoryFlag)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	fmt.Printf("Added %d new ingredients to category %q.\n", added, *categoryFlag)
}

func parseMonth(value string) (int, time.Month) {
	if value == "" {
		now := time.Now()
		return now.Year(), now.Month()
	}
	t, err := time.Parse("2006-01", value)
	if err != nil {
		log.Fatalf("Invalid month %q: expected YYYY-MM", value)
	}
	return t.Year(), t.Month()
}

func printPlan(p plan.Plan, year int, month time.Month) {
	fmt.Printf("Plan for %04d-%02d:\n", year, int(month))
	for _, day := range p.Days() {
		meals := p[day]
		fmt.Printf("  %2d  midi: %-40s soir: %s\n", day, meals.Midi, meals.Soir)
	}
}

func printUsage() {
	fmt.Println("Usage: menu-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  generate           Fill the month plan from the ingredient catalog")
	fmt.Println("  suggest            Regenerate a single meal slot")
	fmt.Println("  show               Print the stored plan for a month")
	fmt.Println("  import             Scrape ingredients from a recipe URL into a category")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
