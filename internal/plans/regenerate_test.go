package plans

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"larder/internal/recipes"
	"larder/internal/users"
)

func seededRegenerator(f fixture) *Regenerator {
	return NewRegenerator(f.plans, f.profiles, f.recipes, rand.New(rand.NewSource(1)))
}

func createPlan(t *testing.T, f fixture, slots []MealSlot) *MealPlan {
	t.Helper()
	plan, err := f.plans.Create(context.Background(), "u1", week(), slots)
	require.NoError(t, err)
	return plan
}

func TestRegenerateMissingSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	plan := createPlan(t, f, []MealSlot{{DayOfWeek: 0, MealType: MealTypeDinner, Servings: 4}})
	r := seededRegenerator(f)

	t.Run("missing plan", func(t *testing.T) {
		_, err := r.Regenerate(ctx, "no-such-plan", "no-such-slot", nil)
		require.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("missing slot", func(t *testing.T) {
		_, err := r.Regenerate(ctx, plan.ID, "no-such-slot", nil)
		require.ErrorIs(t, err, ErrInvalidSlot)
	})
}

func TestRegenerateLockedSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addRecipes(t, recipes.Recipe{ID: "r1"}, recipes.Recipe{ID: "r2"})
	plan := createPlan(t, f, []MealSlot{
		{DayOfWeek: 0, MealType: MealTypeDinner, RecipeID: "r1", Servings: 4, Locked: true},
	})
	r := seededRegenerator(f)

	_, err := r.Regenerate(ctx, plan.ID, plan.Slots[0].ID, nil)
	require.ErrorIs(t, err, ErrInvalidSlot)
	// locked and missing must be indistinguishable
	_, missingErr := r.Regenerate(ctx, plan.ID, "no-such-slot", nil)
	require.Equal(t, err, missingErr)
}

func TestRegenerateExcludesPlanRecipes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addRecipes(t,
		recipes.Recipe{ID: "r1"}, recipes.Recipe{ID: "r2"},
		recipes.Recipe{ID: "r3"}, recipes.Recipe{ID: "fresh"},
	)
	plan := createPlan(t, f, []MealSlot{
		{DayOfWeek: 0, MealType: MealTypeDinner, RecipeID: "r1", Servings: 4},
		{DayOfWeek: 1, MealType: MealTypeDinner, RecipeID: "r2", Servings: 4},
		{DayOfWeek: 2, MealType: MealTypeDinner, RecipeID: "r3", Servings: 4},
	})
	r := seededRegenerator(f)

	// only "fresh" is outside the plan, so the pick is forced
	got, err := r.Regenerate(ctx, plan.ID, plan.Slots[0].ID, nil)
	require.NoError(t, err)
	require.Equal(t, "fresh", got)
}

func TestRegenerateCallerExclusions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addRecipes(t, recipes.Recipe{ID: "r1"}, recipes.Recipe{ID: "r2"}, recipes.Recipe{ID: "r3"})
	plan := createPlan(t, f, []MealSlot{
		{DayOfWeek: 0, MealType: MealTypeDinner, RecipeID: "r1", Servings: 4},
	})
	r := seededRegenerator(f)

	got, err := r.Regenerate(ctx, plan.ID, plan.Slots[0].ID, []string{"r2"})
	require.NoError(t, err)
	require.Equal(t, "r3", got)
}

func TestRegenerateNoAlternatives(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addRecipes(t, recipes.Recipe{ID: "r1"})
	plan := createPlan(t, f, []MealSlot{
		{DayOfWeek: 0, MealType: MealTypeDinner, RecipeID: "r1", Servings: 4},
	})
	r := seededRegenerator(f)

	_, err := r.Regenerate(ctx, plan.ID, plan.Slots[0].ID, nil)
	require.ErrorIs(t, err, ErrNoAlternatives)
}

func TestRegenerateAppliesDietaryFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addRecipes(t,
		recipes.Recipe{ID: "r1"},
		recipes.Recipe{ID: "meaty"},
		recipes.Recipe{ID: "veggie", Tags: dietaryTag("vegetarian")},
	)
	require.NoError(t, f.profiles.SaveProfile(ctx, users.Profile{
		UserID:          "u1",
		DietaryPatterns: []string{"vegetarian"},
	}))
	plan := createPlan(t, f, []MealSlot{
		{DayOfWeek: 0, MealType: MealTypeDinner, RecipeID: "r1", Servings: 4},
	})
	r := seededRegenerator(f)

	got, err := r.Regenerate(ctx, plan.ID, plan.Slots[0].ID, nil)
	require.NoError(t, err)
	require.Equal(t, "veggie", got)
}

func TestRegenerateDeterministicWithSeed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addRecipes(t,
		recipes.Recipe{ID: "a"}, recipes.Recipe{ID: "b"}, recipes.Recipe{ID: "c"},
		recipes.Recipe{ID: "d"}, recipes.Recipe{ID: "e"},
	)
	plan := createPlan(t, f, []MealSlot{{DayOfWeek: 0, MealType: MealTypeDinner, Servings: 4}})

	first, err := NewRegenerator(f.plans, f.profiles, f.recipes, rand.New(rand.NewSource(7))).
		Regenerate(ctx, plan.ID, plan.Slots[0].ID, nil)
	require.NoError(t, err)
	second, err := NewRegenerator(f.plans, f.profiles, f.recipes, rand.New(rand.NewSource(7))).
		Regenerate(ctx, plan.ID, plan.Slots[0].ID, nil)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Contains(t, []string{"a", "b", "c", "d", "e"}, first)
}
