package grocery

import "strings"

const (
	CategoryProduce = "produce"
	CategoryDairy   = "dairy"
	CategoryMeat    = "meat"
	CategoryPantry  = "pantry"
	CategoryProtein = "protein"
	CategoryOther   = "other"
)

// UnitEach is the canonical unit for count-style ingredients ("2 onions").
const UnitEach = "unit"

// CategoryRule maps a keyword to a shopping category by substring match
// against the lower-cased ingredient name.
type CategoryRule struct {
	Keyword  string
	Category string
}

// DefaultCategoryRules returns the built-in keyword table. Rule order is
// load-bearing: "pepper" appears under both produce and pantry, and the
// produce entry wins because it comes first. Don't reorder without checking
// the categorization tests.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{"tomato", CategoryProduce},
		{"lettuce", CategoryProduce},
		{"onion", CategoryProduce},
		{"garlic", CategoryProduce},
		{"basil", CategoryProduce},
		{"cucumber", CategoryProduce},
		{"pepper", CategoryProduce},
		{"spinach", CategoryProduce},
		{"cauliflower", CategoryProduce},
		{"potato", CategoryProduce},

		{"milk", CategoryDairy},
		{"cheese", CategoryDairy},
		{"butter", CategoryDairy},
		{"yogurt", CategoryDairy},
		{"cream", CategoryDairy},
		{"mozzarella", CategoryDairy},
		{"feta", CategoryDairy},
		{"parmesan", CategoryDairy},

		{"chicken", CategoryMeat},
		{"beef", CategoryMeat},
		{"pork", CategoryMeat},
		{"fish", CategoryMeat},
		{"salmon", CategoryMeat},
		{"pancetta", CategoryMeat},

		{"flour", CategoryPantry},
		{"sugar", CategoryPantry},
		{"salt", CategoryPantry},
		{"pepper", CategoryPantry},
		{"oil", CategoryPantry},
		{"pasta", CategoryPantry},
		{"rice", CategoryPantry},
		{"sauce", CategoryPantry},
		{"vinegar", CategoryPantry},
		{"soy sauce", CategoryPantry},

		{"tofu", CategoryProtein},
		{"chickpeas", CategoryProtein},
		{"beans", CategoryProtein},
		{"lentils", CategoryProtein},
		{"eggs", CategoryProtein},
	}
}

// DefaultUnitAliases collapses plural/long unit spellings to canonical form.
func DefaultUnitAliases() map[string]string {
	return map[string]string{
		"tablespoon":  "tbsp",
		"tablespoons": "tbsp",
		"teaspoon":    "tsp",
		"teaspoons":   "tsp",
		"ounce":       "oz",
		"ounces":      "oz",
		"pound":       "lb",
		"pounds":      "lb",
		"can":         "can",
		"cans":        "can",
	}
}

// Normalizer owns the category and unit tables. Build it once at startup;
// it is immutable afterwards and safe for concurrent use.
type Normalizer struct {
	rules []CategoryRule
	units map[string]string
}

func NewNormalizer(rules []CategoryRule, units map[string]string) *Normalizer {
	return &Normalizer{rules: rules, units: units}
}

func DefaultNormalizer() *Normalizer {
	return NewNormalizer(DefaultCategoryRules(), DefaultUnitAliases())
}

// Categorize returns the category of the first rule whose keyword is a
// substring of the lower-cased name, or "other".
func (n *Normalizer) Categorize(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range n.rules {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Category
		}
	}
	return CategoryOther
}

// Unit canonicalizes a raw unit string. Empty means a count ("unit");
// unknown units pass through with their casing preserved. Ingredient names
// are never plural-stripped, so "Tomatoes" and "tomato" stay distinct keys.
func (n *Normalizer) Unit(raw string) string {
	if raw == "" {
		return UnitEach
	}
	if canonical, ok := n.units[strings.ToLower(raw)]; ok {
		return canonical
	}
	return raw
}
