package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"larder/internal/cache"
	"larder/internal/config"
	"larder/internal/grocery"
	"larder/internal/nutrition"
	"larder/internal/plans"
	"larder/internal/recipes"
	"larder/internal/users"
)

// seedFile is the JSON shape -seed consumes: a profile, its recipes and
// optional liked/disliked signals.
type seedFile struct {
	Profile  *users.Profile   `json:"profile,omitempty"`
	Recipes  []recipes.Recipe `json:"recipes"`
	Liked    []string         `json:"liked,omitempty"`
	Disliked []string         `json:"disliked,omitempty"`
}

func main() {
	var seedPath string
	var userID string
	var weekStart string
	var generate bool
	var groceryPlan string
	var nutritionPlan string
	var regenPlan string
	var regenSlot string
	var help bool

	flag.StringVar(&seedPath, "seed", "", "Seed recipes and a profile from a JSON file")
	flag.StringVar(&userID, "user", "demo", "User id to plan for")
	flag.StringVar(&weekStart, "week", "", "Week start date (YYYY-MM-DD, default next Monday)")
	flag.BoolVar(&generate, "plan", false, "Generate a week of dinners for -user")
	flag.StringVar(&groceryPlan, "grocery", "", "Build and print the grocery list for a plan id")
	flag.StringVar(&nutritionPlan, "nutrition", "", "Print the weekly nutrition summary for a plan id")
	flag.StringVar(&regenPlan, "regen-plan", "", "Plan id for slot regeneration")
	flag.StringVar(&regenSlot, "regen-slot", "", "Slot id to regenerate within -regen-plan")
	flag.BoolVar(&help, "help", false, "Show help message")
	flag.BoolVar(&help, "h", false, "Show help message")
	flag.Parse()

	if help {
		showHelp()
		return
	}

	// .env is optional, real env always wins
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	app, err := newApp(cfg)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	ctx := context.Background()

	switch {
	case seedPath != "":
		if err := app.seed(ctx, seedPath); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	case generate:
		if err := app.generatePlan(ctx, userID, weekStart); err != nil {
			log.Fatalf("plan generation failed: %v", err)
		}
	case groceryPlan != "":
		if err := app.printGroceryList(ctx, groceryPlan); err != nil {
			log.Fatalf("grocery list failed: %v", err)
		}
	case nutritionPlan != "":
		if err := app.printNutrition(ctx, nutritionPlan); err != nil {
			log.Fatalf("nutrition summary failed: %v", err)
		}
	case regenPlan != "" && regenSlot != "":
		if err := app.regenerateSlot(ctx, regenPlan, regenSlot); err != nil {
			log.Fatalf("slot regeneration failed: %v", err)
		}
	default:
		showHelp()
		os.Exit(1)
	}
}

type app struct {
	recipes  *recipes.Store
	profiles *users.Storage
	plans    *plans.Store
	loader   *plans.Loader
	lists    *grocery.Store
}

func newApp(cfg *config.Config) (*app, error) {
	var c cache.Cache
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		c = cache.NewInMemoryCache()
	default:
		if err := os.MkdirAll(cfg.Storage.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		c = cache.NewFileCache(cfg.Storage.Dir)
	}

	recipeStore := recipes.NewStore(c)
	planStore := plans.NewStore(c)
	return &app{
		recipes:  recipeStore,
		profiles: users.NewStorage(c),
		plans:    planStore,
		loader:   plans.NewLoader(planStore, recipeStore),
		lists:    grocery.NewStore(c),
	}, nil
}

func (a *app) seed(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	for _, r := range seed.Recipes {
		if err := a.recipes.Save(ctx, r); err != nil {
			return err
		}
	}
	if seed.Profile != nil {
		if err := a.profiles.SaveProfile(ctx, *seed.Profile); err != nil {
			return err
		}
		for _, id := range seed.Liked {
			if err := a.profiles.SetPreference(ctx, seed.Profile.UserID, id, true); err != nil {
				return err
			}
		}
		for _, id := range seed.Disliked {
			if err := a.profiles.SetPreference(ctx, seed.Profile.UserID, id, false); err != nil {
				return err
			}
		}
	}

	fmt.Printf("Seeded %d recipes\n", len(seed.Recipes))
	return nil
}

func (a *app) generatePlan(ctx context.Context, userID, weekStart string) error {
	start, err := parseWeekStart(weekStart)
	if err != nil {
		return err
	}

	generator := plans.NewGenerator(a.profiles, a.recipes)
	slots, err := generator.GenerateWeek(ctx, plans.Request{UserID: userID, WeekStart: start})
	if err != nil {
		return err
	}

	plan, err := a.plans.Create(ctx, userID, start, slots)
	if err != nil {
		return err
	}

	fmt.Printf("Plan %s for week of %s:\n", plan.ID, start.Format("2006-01-02"))
	for _, slot := range plan.Slots {
		recipe, err := a.recipes.Get(ctx, slot.RecipeID)
		if err != nil {
			return err
		}
		day := start.AddDate(0, 0, slot.DayOfWeek)
		fmt.Printf("  %-9s %s (%d servings)\n", day.Weekday().String(), recipe.Title, slot.Servings)
	}
	return nil
}

func (a *app) printGroceryList(ctx context.Context, planID string) error {
	aggregator := grocery.NewAggregator(a.loader, a.lists, grocery.DefaultNormalizer())
	listID, err := aggregator.Generate(ctx, planID)
	if err != nil {
		return err
	}

	list, err := a.lists.GetByPlan(ctx, planID)
	if err != nil {
		return err
	}

	titler := cases.Title(language.English)
	fmt.Printf("Grocery list %s (%d items):\n", listID, len(list.Items))
	lastCategory := ""
	for _, item := range list.Items {
		if item.Category != lastCategory {
			fmt.Printf("%s:\n", titler.String(item.Category))
			lastCategory = item.Category
		}
		fmt.Printf("  %-28s %g %s\n", item.Name, item.Quantity, item.Unit)
	}
	return nil
}

func (a *app) printNutrition(ctx context.Context, planID string) error {
	summarizer := nutrition.NewSummarizer(a.loader)
	summary, err := summarizer.Week(ctx, planID)
	if err != nil {
		return err
	}
	percentages := nutrition.Percentages(*summary)

	fmt.Printf("Weekly nutrition for plan %s (%d meals):\n", planID, summary.MealsCount)
	fmt.Printf("  Calories: %d total, %d/day\n", summary.TotalCalories, summary.AvgCaloriesPerDay)
	fmt.Printf("  Protein:  %dg total, %dg/day (%d%%)\n", summary.TotalProtein, summary.AvgProteinPerDay, percentages.Protein)
	fmt.Printf("  Fat:      %dg total, %dg/day (%d%%)\n", summary.TotalFat, summary.AvgFatPerDay, percentages.Fat)
	fmt.Printf("  Carbs:    %dg total, %dg/day (%d%%)\n", summary.TotalCarbs, summary.AvgCarbsPerDay, percentages.Carbs)
	return nil
}

func (a *app) regenerateSlot(ctx context.Context, planID, slotID string) error {
	regenerator := plans.NewRegenerator(a.plans, a.profiles, a.recipes, nil)
	recipeID, err := regenerator.Regenerate(ctx, planID, slotID, nil)
	if err != nil {
		return err
	}
	if err := a.plans.SetSlotRecipe(ctx, planID, slotID, recipeID); err != nil {
		return err
	}

	recipe, err := a.recipes.Get(ctx, recipeID)
	if err != nil {
		return err
	}
	fmt.Printf("Slot %s now has %s\n", slotID, recipe.Title)
	return nil
}

// parseWeekStart defaults to the upcoming Monday, the first day of the
// generated week.
func parseWeekStart(s string) (time.Time, error) {
	if s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid week start, use YYYY-MM-DD: %w", err)
		}
		return t, nil
	}
	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}
	return day, nil
}

func showHelp() {
	fmt.Println(`larder - weekly meal planning and grocery aggregation

Usage:
  larder -seed recipes.json          Seed recipes and a profile
  larder -plan -user <id>            Generate a week of dinners
  larder -grocery <planID>           Build and print the grocery list
  larder -nutrition <planID>         Print the weekly nutrition summary
  larder -regen-plan <planID> -regen-slot <slotID>
                                     Swap one day's recipe

Environment:
  LARDER_STORAGE_BACKEND  "file" (default) or "memory"
  LARDER_DATA_DIR         data directory for the file backend (default "data")`)
}
