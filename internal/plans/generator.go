package plans

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/samber/lo"

	"larder/internal/recipes"
	"larder/internal/users"
)

// ErrNoCandidates is user-actionable: the filtered pool came back empty.
var ErrNoCandidates = errors.New("no recipes available matching your dietary preferences, add more recipes or adjust your preferences")

type profileSource interface {
	GetProfile(ctx context.Context, userID string) (*users.Profile, error)
	LikedRecipeIDs(ctx context.Context, userID string) ([]string, error)
}

type recipeSource interface {
	Find(ctx context.Context, f recipes.Filter, limit int) ([]recipes.Recipe, error)
}

// Generator builds a week of dinner slots for a user.
type Generator struct {
	profiles profileSource
	recipes  recipeSource
}

func NewGenerator(profiles profileSource, rs recipeSource) *Generator {
	return &Generator{profiles: profiles, recipes: rs}
}

// Request tunes one generation run. MaxPrepTime wins over the profile's
// TimeToCook when both are set. MealsPerDay and PreferredCuisines are
// accepted for forward compatibility; the generator currently plans one
// dinner per day and does not weight by cuisine.
type Request struct {
	UserID            string
	WeekStart         time.Time
	MealsPerDay       int
	AvoidRecipeIDs    []string
	PreferredCuisines []string
	MaxPrepTime       int
}

// GenerateWeek returns exactly 7 slot descriptors (dayOfWeek 0..6,
// Monday-first) ready for Store.Create. When the candidate pool is smaller
// than 7 it cycles, so repeats are possible but the week is always full.
func (g *Generator) GenerateWeek(ctx context.Context, req Request) ([]MealSlot, error) {
	profile, err := g.profiles.GetProfile(ctx, req.UserID)
	if err != nil && !errors.Is(err, users.ErrNotFound) {
		return nil, err
	}

	likedIDs, err := g.profiles.LikedRecipeIDs(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	filter := recipes.Filter{ExcludeIDs: req.AvoidRecipeIDs}
	if profile != nil {
		filter.DietaryPatterns = profile.DietaryPatterns
	}
	filter.MaxTotalTime = req.MaxPrepTime
	if filter.MaxTotalTime == 0 && profile != nil && profile.TimeToCook != nil {
		filter.MaxTotalTime = *profile.TimeToCook
	}

	pool, err := g.recipes.Find(ctx, filter, 0)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, ErrNoCandidates
	}
	if len(pool) < 7 {
		slog.WarnContext(ctx, "candidate pool smaller than a week, some days will repeat",
			"user_id", req.UserID, "pool_size", len(pool))
	}

	// Liked recipes first; stable so the store's order breaks ties.
	liked := func(r recipes.Recipe) bool { return slices.Contains(likedIDs, r.ID) }
	slices.SortStableFunc(pool, func(a, b recipes.Recipe) int {
		switch {
		case liked(a) && !liked(b):
			return -1
		case !liked(a) && liked(b):
			return 1
		default:
			return 0
		}
	})

	servings := profile.EffectiveHouseholdSize()
	used := make(map[string]bool)
	slots := make([]MealSlot, 0, 7)
	for day := 0; day < 7; day++ {
		recipe, found := lo.Find(pool, func(r recipes.Recipe) bool { return !used[r.ID] })
		if !found {
			// every candidate already used once: cycle
			recipe = pool[day%len(pool)]
		}
		slots = append(slots, MealSlot{
			DayOfWeek: day,
			MealType:  MealTypeDinner,
			RecipeID:  recipe.ID,
			Servings:  servings,
			Locked:    false,
		})
		used[recipe.ID] = true
	}
	return slots, nil
}
