package recipes

import (
	"errors"
	"slices"
	"time"
)

const (
	TagDietary  = "dietary"
	TagCuisine  = "cuisine"
	TagMealType = "mealType"
)

// Tag is one categorical facet of a recipe, e.g. {dietary, vegetarian}.
type Tag struct {
	Type  string `json:"tag_type"`
	Value string `json:"tag_value"`
}

// Nutrition holds per-recipe macro values, written for the recipe's base
// serving count. Fields are pointers because imported recipes often carry
// only a subset.
type Nutrition struct {
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
}

// Ingredient is one line of a recipe. Quantity is nil when the source gave
// none ("salt to taste"); aggregation treats that as 1. Unit is free text
// until normalized.
type Ingredient struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

type Recipe struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	PrepTime    int    `json:"prep_time,omitempty"`
	TotalTime   int    `json:"total_time,omitempty"`
	// Servings is the count the ingredient quantities are written for.
	Servings     int          `json:"servings"`
	Ingredients  []Ingredient `json:"ingredients,omitempty"`
	Instructions []string     `json:"instructions,omitempty"`
	Tags         []Tag        `json:"tags,omitempty"`
	Nutrition    *Nutrition   `json:"nutrition,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (r Recipe) Validate() error {
	if r.ID == "" {
		return errors.New("recipe id is required")
	}
	if r.Title == "" {
		return errors.New("recipe title is required")
	}
	if r.Servings <= 0 {
		return errors.New("recipe servings must be positive")
	}
	return nil
}

// HasTag reports whether the recipe carries a tag of the given type with any
// of the given values.
func (r Recipe) HasTag(tagType string, values []string) bool {
	for _, tag := range r.Tags {
		if tag.Type == tagType && slices.Contains(values, tag.Value) {
			return true
		}
	}
	return false
}

// Filter is the candidate query used by plan generation and slot
// regeneration. Zero values mean unconstrained.
type Filter struct {
	ExcludeIDs      []string
	DietaryPatterns []string
	MaxTotalTime    int
}

func (f Filter) Matches(r Recipe) bool {
	if slices.Contains(f.ExcludeIDs, r.ID) {
		return false
	}
	if len(f.DietaryPatterns) > 0 && !r.HasTag(TagDietary, f.DietaryPatterns) {
		return false
	}
	if f.MaxTotalTime > 0 && r.TotalTime > f.MaxTotalTime {
		return false
	}
	return true
}
