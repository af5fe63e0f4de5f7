package plans

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"larder/internal/recipes"
)

func TestStoreCreateAndGet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	plan := createPlan(t, f, []MealSlot{
		{DayOfWeek: 0, MealType: MealTypeDinner, RecipeID: "r1", Servings: 4},
		{DayOfWeek: 1, MealType: MealTypeDinner, Servings: 4},
	})
	require.NotEmpty(t, plan.ID)
	for _, slot := range plan.Slots {
		require.NotEmpty(t, slot.ID)
	}

	got, err := f.plans.Get(ctx, plan.ID)
	require.NoError(t, err)
	require.Equal(t, plan.ID, got.ID)
	require.Equal(t, "u1", got.UserID)
	require.Len(t, got.Slots, 2)

	_, err = f.plans.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRecipeIDsSkipsEmptySlots(t *testing.T) {
	plan := MealPlan{Slots: []MealSlot{
		{RecipeID: "r1"},
		{},
		{RecipeID: "r2"},
	}}
	require.Equal(t, []string{"r1", "r2"}, plan.RecipeIDs())
}

func TestSetSlotRecipe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	plan := createPlan(t, f, []MealSlot{
		{DayOfWeek: 0, MealType: MealTypeDinner, RecipeID: "r1", Servings: 4},
	})

	require.NoError(t, f.plans.SetSlotRecipe(ctx, plan.ID, plan.Slots[0].ID, "r9"))

	_, slot, err := f.plans.GetSlot(ctx, plan.ID, plan.Slots[0].ID)
	require.NoError(t, err)
	require.Equal(t, "r9", slot.RecipeID)

	require.ErrorIs(t, f.plans.SetSlotRecipe(ctx, plan.ID, "missing", "r9"), ErrNotFound)
}

func TestLoaderJoinsRecipes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addRecipes(t, recipes.Recipe{ID: "r1", Title: "Pizza"})
	plan := createPlan(t, f, []MealSlot{
		{DayOfWeek: 0, MealType: MealTypeDinner, RecipeID: "r1", Servings: 4},
		{DayOfWeek: 1, MealType: MealTypeDinner, Servings: 4},
		{DayOfWeek: 2, MealType: MealTypeDinner, RecipeID: "dangling", Servings: 4},
	})

	meals, err := NewLoader(f.plans, f.recipes).PlannedMeals(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, meals, 3)
	require.NotNil(t, meals[0].Recipe)
	require.Equal(t, "Pizza", meals[0].Recipe.Title)
	require.Nil(t, meals[1].Recipe, "empty slot stays recipe-less")
	require.Nil(t, meals[2].Recipe, "dangling id is skipped, not fatal")
}
