package plans

import (
	"context"
	"log/slog"

	"larder/internal/recipes"
)

// PlannedMeal is one slot joined with its recipe, the shape the grocery
// aggregator and nutrition summarizer consume.
type PlannedMeal struct {
	Slot   MealSlot
	Recipe *recipes.Recipe
}

type recipeGetter interface {
	Get(ctx context.Context, id string) (*recipes.Recipe, error)
}

// Loader resolves a plan id into its slots with recipes and ingredients
// attached.
type Loader struct {
	store   *Store
	recipes recipeGetter
}

func NewLoader(store *Store, rg recipeGetter) *Loader {
	return &Loader{store: store, recipes: rg}
}

// PlannedMeals returns one entry per slot; Recipe is nil for empty slots and
// for dangling recipe ids, which downstream consumers skip.
func (l *Loader) PlannedMeals(ctx context.Context, planID string) ([]PlannedMeal, error) {
	plan, err := l.store.Get(ctx, planID)
	if err != nil {
		return nil, err
	}

	meals := make([]PlannedMeal, 0, len(plan.Slots))
	for _, slot := range plan.Slots {
		meal := PlannedMeal{Slot: slot}
		if slot.RecipeID != "" {
			recipe, err := l.recipes.Get(ctx, slot.RecipeID)
			if err != nil {
				slog.WarnContext(ctx, "failed to load recipe for slot",
					"plan_id", planID, "slot_id", slot.ID, "recipe_id", slot.RecipeID, "error", err)
			} else {
				meal.Recipe = recipe
			}
		}
		meals = append(meals, meal)
	}
	return meals, nil
}
