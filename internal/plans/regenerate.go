package plans

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"larder/internal/recipes"
	"larder/internal/users"
)

var (
	// ErrInvalidSlot deliberately covers both the locked and the missing
	// case so callers can't probe which one it was.
	ErrInvalidSlot = errors.New("cannot regenerate locked or non-existent slot")

	ErrNoAlternatives = errors.New("no alternative recipes found")
)

// alternativePoolSize bounds the regeneration candidate fetch; unlike full
// generation we only need a handful to pick from.
const alternativePoolSize = 5

type slotSource interface {
	GetSlot(ctx context.Context, planID, slotID string) (*MealPlan, *MealSlot, error)
}

// Regenerator re-selects a single slot's recipe, avoiding everything the
// plan already uses. The random source is injected so tests can pin picks.
type Regenerator struct {
	plans    slotSource
	profiles profileSource
	recipes  recipeSource
	rng      *rand.Rand
}

func NewRegenerator(plans slotSource, profiles profileSource, rs recipeSource, rng *rand.Rand) *Regenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Regenerator{plans: plans, profiles: profiles, recipes: rs, rng: rng}
}

// Regenerate returns the replacement recipe id for the slot. Writing it onto
// the slot is the caller's job (via Store.SetSlotRecipe), matching the
// read-then-write split at the storage boundary.
func (r *Regenerator) Regenerate(ctx context.Context, planID, slotID string, avoidRecipeIDs []string) (string, error) {
	plan, slot, err := r.plans.GetSlot(ctx, planID, slotID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidSlot
		}
		return "", err
	}
	if slot.Locked {
		return "", ErrInvalidSlot
	}

	// Avoid every recipe anywhere in the plan, including the one being
	// replaced, plus the caller's own exclusions.
	exclude := append(plan.RecipeIDs(), avoidRecipeIDs...)

	profile, err := r.profiles.GetProfile(ctx, plan.UserID)
	if err != nil && !errors.Is(err, users.ErrNotFound) {
		return "", err
	}

	filter := recipes.Filter{ExcludeIDs: exclude}
	if profile != nil {
		filter.DietaryPatterns = profile.DietaryPatterns
	}

	alternatives, err := r.recipes.Find(ctx, filter, alternativePoolSize)
	if err != nil {
		return "", err
	}
	if len(alternatives) == 0 {
		return "", ErrNoAlternatives
	}

	return alternatives[r.rng.Intn(len(alternatives))].ID, nil
}
