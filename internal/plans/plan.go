package plans

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"larder/internal/cache"
)

const MealTypeDinner = "dinner"

// MealSlot is one day/meal assignment inside a plan. Servings is how many
// servings this slot's cook-out should yield, independent of the recipe's
// base serving count. A locked slot is never touched by regeneration.
type MealSlot struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	MealType  string `json:"meal_type"`
	RecipeID  string `json:"recipe_id,omitempty"`
	Servings  int    `json:"servings"`
	Locked    bool   `json:"locked"`
}

type MealPlan struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	WeekStart time.Time  `json:"week_start"`
	Slots     []MealSlot `json:"slots"`
	CreatedAt time.Time  `json:"created_at"`
}

// RecipeIDs returns every assigned recipe id in the plan, slot order.
func (p MealPlan) RecipeIDs() []string {
	var ids []string
	for _, slot := range p.Slots {
		if slot.RecipeID != "" {
			ids = append(ids, slot.RecipeID)
		}
	}
	return ids
}

const planCachePrefix = "mealplan/"

var (
	ErrNotFound = cache.ErrNotFound

	nowFn = time.Now
)

// Store keeps meal plans (slots embedded) as JSON documents in a cache.
type Store struct {
	cache cache.Cache
}

func NewStore(c cache.Cache) *Store {
	return &Store{cache: c}
}

// Create persists a new plan for the user, assigning ids to the plan and
// every slot.
func (s *Store) Create(ctx context.Context, userID string, weekStart time.Time, slots []MealSlot) (*MealPlan, error) {
	plan := MealPlan{
		ID:        uuid.NewString(),
		UserID:    userID,
		WeekStart: weekStart,
		Slots:     slots,
		CreatedAt: nowFn(),
	}
	for i := range plan.Slots {
		if plan.Slots[i].ID == "" {
			plan.Slots[i].ID = uuid.NewString()
		}
	}

	if err := s.put(ctx, plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *Store) Get(ctx context.Context, planID string) (*MealPlan, error) {
	blob, err := s.cache.Get(ctx, planCachePrefix+planID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := blob.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close cached meal plan", "plan_id", planID, "error", err)
		}
	}()

	var plan MealPlan
	if err := json.NewDecoder(blob).Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to decode meal plan %s: %w", planID, err)
	}
	return &plan, nil
}

// GetSlot returns the plan and the addressed slot, or ErrNotFound when
// either is missing.
func (s *Store) GetSlot(ctx context.Context, planID, slotID string) (*MealPlan, *MealSlot, error) {
	plan, err := s.Get(ctx, planID)
	if err != nil {
		return nil, nil, err
	}
	for i := range plan.Slots {
		if plan.Slots[i].ID == slotID {
			return plan, &plan.Slots[i], nil
		}
	}
	return nil, nil, ErrNotFound
}

// SetSlotRecipe assigns a recipe onto one slot and persists the plan.
func (s *Store) SetSlotRecipe(ctx context.Context, planID, slotID, recipeID string) error {
	plan, slot, err := s.GetSlot(ctx, planID, slotID)
	if err != nil {
		return err
	}
	slot.RecipeID = recipeID
	return s.put(ctx, *plan)
}

func (s *Store) put(ctx context.Context, plan MealPlan) error {
	planJSON := lo.Must(json.Marshal(plan))
	if err := s.cache.Put(ctx, planCachePrefix+plan.ID, string(planJSON), cache.Unconditional()); err != nil {
		return fmt.Errorf("failed to store meal plan %s: %w", plan.ID, err)
	}
	return nil
}
