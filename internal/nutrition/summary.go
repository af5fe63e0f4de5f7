package nutrition

import (
	"context"
	"math"

	"larder/internal/plans"
)

// WeeklySummary totals a plan's macros, scaled per slot by the same serving
// multiplier the grocery aggregation uses, and averages over the week.
type WeeklySummary struct {
	TotalCalories     int `json:"total_calories"`
	AvgCaloriesPerDay int `json:"avg_calories_per_day"`
	TotalProtein      int `json:"total_protein"`
	TotalFat          int `json:"total_fat"`
	TotalCarbs        int `json:"total_carbs"`
	AvgProteinPerDay  int `json:"avg_protein_per_day"`
	AvgFatPerDay      int `json:"avg_fat_per_day"`
	AvgCarbsPerDay    int `json:"avg_carbs_per_day"`
	MealsCount        int `json:"meals_count"`
}

// MacroPercentages is each macro's share of the macro total, rounded
// independently, so the three values may not sum to exactly 100.
type MacroPercentages struct {
	Protein int `json:"protein"`
	Fat     int `json:"fat"`
	Carbs   int `json:"carbs"`
}

type mealSource interface {
	PlannedMeals(ctx context.Context, planID string) ([]plans.PlannedMeal, error)
}

type Summarizer struct {
	meals mealSource
}

func NewSummarizer(meals mealSource) *Summarizer {
	return &Summarizer{meals: meals}
}

// Week sums every slot that has a recipe with a nutrition record. Averages
// always divide by 7 once any slot contributed, even when fewer days carry
// nutrition data; that matches how the figures have always been reported.
func (s *Summarizer) Week(ctx context.Context, planID string) (*WeeklySummary, error) {
	meals, err := s.meals.PlannedMeals(ctx, planID)
	if err != nil {
		return nil, err
	}

	var calories, protein, fat, carbs float64
	mealsCount := 0
	for _, meal := range meals {
		if meal.Recipe == nil || meal.Recipe.Nutrition == nil {
			continue
		}
		n := meal.Recipe.Nutrition
		multiplier := float64(meal.Slot.Servings) / float64(meal.Recipe.Servings)

		if n.Calories != nil {
			calories += *n.Calories * multiplier
		}
		if n.Protein != nil {
			protein += *n.Protein * multiplier
		}
		if n.Fat != nil {
			fat += *n.Fat * multiplier
		}
		if n.Carbs != nil {
			carbs += *n.Carbs * multiplier
		}
		mealsCount++
	}

	days := 1.0
	if mealsCount > 0 {
		days = 7
	}

	return &WeeklySummary{
		TotalCalories:     round(calories),
		AvgCaloriesPerDay: round(calories / days),
		TotalProtein:      round(protein),
		TotalFat:          round(fat),
		TotalCarbs:        round(carbs),
		AvgProteinPerDay:  round(protein / days),
		AvgFatPerDay:      round(fat / days),
		AvgCarbsPerDay:    round(carbs / days),
		MealsCount:        mealsCount,
	}, nil
}

// Percentages splits the summary's macro totals. All zeros when the plan
// carried no macro data.
func Percentages(summary WeeklySummary) MacroPercentages {
	total := summary.TotalProtein + summary.TotalFat + summary.TotalCarbs
	if total == 0 {
		return MacroPercentages{}
	}
	return MacroPercentages{
		Protein: round(float64(summary.TotalProtein) / float64(total) * 100),
		Fat:     round(float64(summary.TotalFat) / float64(total) * 100),
		Carbs:   round(float64(summary.TotalCarbs) / float64(total) * 100),
	}
}

func round(f float64) int {
	return int(math.Round(f))
}
