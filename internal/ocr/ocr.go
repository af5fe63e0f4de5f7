// Package ocr is a stub for recipe extraction from photos. A real
// deployment would call a vision API here; until then it returns a fixed
// scan so the import flow can be exercised end to end.
package ocr

import (
	"context"
	"io"
)

type RecipeScan struct {
	Title        string   `json:"title,omitempty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Confidence   float64  `json:"confidence"`
}

// ExtractRecipeFromImage ignores the image contents.
// TODO: integrate a real OCR backend (Cloud Vision or Textract) and parse
// the extracted text into the structured scan.
func ExtractRecipeFromImage(_ context.Context, _ io.Reader) (*RecipeScan, error) {
	return &RecipeScan{
		Title: "Chocolate Chip Cookies",
		Ingredients: []string{
			"2 1/4 cups all-purpose flour",
			"1 tsp baking soda",
			"1 cup butter, softened",
			"3/4 cup sugar",
			"2 eggs",
			"2 cups chocolate chips",
		},
		Instructions: []string{
			"Preheat oven to 375°F",
			"Mix flour and baking soda",
			"Cream butter and sugar",
			"Beat in eggs",
			"Stir in flour mixture",
			"Fold in chocolate chips",
			"Bake 9-11 minutes",
		},
		Confidence: 0.85,
	}, nil
}
