package grocery

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"larder/internal/plans"
)

// GroceryItem is one aggregated line of a shopping list. Checked and
// AlreadyHave are user-toggled and survive only until the next
// regeneration, which rebuilds items from scratch.
type GroceryItem struct {
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category"`
	Checked     bool    `json:"checked"`
	AlreadyHave bool    `json:"already_have"`
	SortOrder   int     `json:"sort_order"`
}

// GroceryList is owned 1:1 by a meal plan.
type GroceryList struct {
	ID         string        `json:"id"`
	MealPlanID string        `json:"meal_plan_id"`
	Items      []GroceryItem `json:"items"`
}

var ErrListNotFound = errors.New("grocery list not found")

type mealSource interface {
	PlannedMeals(ctx context.Context, planID string) ([]plans.PlannedMeal, error)
}

// ListStore is the persistence contract for grocery lists. Regeneration is
// delete-then-insert against an existing list, never an in-place patch.
type ListStore interface {
	// GetByPlan returns ErrListNotFound when the plan has no list yet.
	GetByPlan(ctx context.Context, planID string) (*GroceryList, error)
	Create(ctx context.Context, planID string, items []GroceryItem) (*GroceryList, error)
	DeleteItems(ctx context.Context, listID string) error
	InsertItems(ctx context.Context, listID string, items []GroceryItem) error
}

// Aggregator builds a plan's shopping list from its slots.
type Aggregator struct {
	meals mealSource
	lists ListStore
	norm  *Normalizer
}

func NewAggregator(meals mealSource, lists ListStore, norm *Normalizer) *Aggregator {
	if norm == nil {
		norm = DefaultNormalizer()
	}
	return &Aggregator{meals: meals, lists: lists, norm: norm}
}

// Generate aggregates the plan's ingredients into sorted items and persists
// them, replacing any previous list contents. It returns the list id,
// which is stable across regenerations. An empty plan yields an empty list,
// not an error.
func (a *Aggregator) Generate(ctx context.Context, planID string) (string, error) {
	meals, err := a.meals.PlannedMeals(ctx, planID)
	if err != nil {
		return "", fmt.Errorf("failed to load planned meals: %w", err)
	}

	items := a.aggregate(meals)

	existing, err := a.lists.GetByPlan(ctx, planID)
	if err != nil {
		if !errors.Is(err, ErrListNotFound) {
			return "", err
		}
		created, err := a.lists.Create(ctx, planID, items)
		if err != nil {
			return "", fmt.Errorf("failed to create grocery list: %w", err)
		}
		return created.ID, nil
	}

	// Known gap: if the insert fails after the delete the list is left
	// empty. The storage layer is expected to make the pair atomic.
	if err := a.lists.DeleteItems(ctx, existing.ID); err != nil {
		return "", fmt.Errorf("failed to clear grocery list %s: %w", existing.ID, err)
	}
	if err := a.lists.InsertItems(ctx, existing.ID, items); err != nil {
		return "", fmt.Errorf("failed to fill grocery list %s: %w", existing.ID, err)
	}
	return existing.ID, nil
}

func (a *Aggregator) aggregate(meals []plans.PlannedMeal) []GroceryItem {
	lines := make(map[string]*GroceryItem)

	for _, meal := range meals {
		if meal.Recipe == nil {
			continue
		}
		multiplier := float64(meal.Slot.Servings) / float64(meal.Recipe.Servings)

		for _, ing := range meal.Recipe.Ingredients {
			unit := a.norm.Unit(ing.Unit)
			key := strings.ToLower(ing.Name) + "-" + unit

			quantity := 1.0
			if ing.Quantity != nil {
				quantity = *ing.Quantity
			}
			quantity *= multiplier

			if existing, ok := lines[key]; ok {
				existing.Quantity += quantity
				continue
			}
			// first occurrence keeps its original casing
			lines[key] = &GroceryItem{
				Name:     ing.Name,
				Quantity: quantity,
				Unit:     unit,
				Category: a.norm.Categorize(ing.Name),
			}
		}
	}

	items := make([]GroceryItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, *l)
	}
	slices.SortFunc(items, func(x, y GroceryItem) int {
		if c := strings.Compare(x.Category, y.Category); c != 0 {
			return c
		}
		if c := strings.Compare(x.Name, y.Name); c != 0 {
			return c
		}
		// same name in two units, keep the order deterministic
		return strings.Compare(x.Unit, y.Unit)
	})
	for i := range items {
		items[i].SortOrder = i
	}
	return items
}
