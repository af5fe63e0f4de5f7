package users

import (
	"errors"
	"fmt"
	"time"
)

// DefaultHouseholdSize is assumed when a profile doesn't declare one; it
// becomes the serving count of every generated meal slot.
const DefaultHouseholdSize = 4

// Profile holds a user's planning constraints. DietaryPatterns are tag
// values a candidate recipe must match at least one of when non-empty.
type Profile struct {
	UserID          string    `json:"user_id"`
	DietaryPatterns []string  `json:"dietary_patterns,omitempty"`
	TimeToCook      *int      `json:"time_to_cook,omitempty"`
	HouseholdSize   int       `json:"household_size,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (p Profile) Validate() error {
	if p.UserID == "" {
		return errors.New("profile user id is required")
	}
	if p.HouseholdSize < 0 {
		return fmt.Errorf("invalid household size %d", p.HouseholdSize)
	}
	if p.TimeToCook != nil && *p.TimeToCook <= 0 {
		return fmt.Errorf("invalid time to cook %d", *p.TimeToCook)
	}
	return nil
}

// EffectiveHouseholdSize falls back to the default when unset.
func (p *Profile) EffectiveHouseholdSize() int {
	if p == nil || p.HouseholdSize <= 0 {
		return DefaultHouseholdSize
	}
	return p.HouseholdSize
}

// Preference is a per-(user, recipe) like/dislike signal. Liked recipes rank
// first during plan generation; disliked ones are dropped from the feed.
type Preference struct {
	UserID    string    `json:"user_id"`
	RecipeID  string    `json:"recipe_id"`
	Liked     bool      `json:"liked"`
	UpdatedAt time.Time `json:"updated_at"`
}
