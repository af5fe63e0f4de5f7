package users

import (
	"context"
	"errors"
	"testing"

	"larder/internal/cache"
)

func TestProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStorage(cache.NewInMemoryCache())

	timeToCook := 30
	in := Profile{
		UserID:          "u1",
		DietaryPatterns: []string{"vegetarian"},
		TimeToCook:      &timeToCook,
		HouseholdSize:   2,
	}
	if err := s.SaveProfile(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.HouseholdSize != 2 || len(out.DietaryPatterns) != 1 || *out.TimeToCook != 30 {
		t.Fatalf("unexpected profile: %+v", out)
	}
	if out.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be stamped on save")
	}

	if _, err := s.GetProfile(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveProfileValidates(t *testing.T) {
	s := NewStorage(cache.NewInMemoryCache())
	err := s.SaveProfile(context.Background(), Profile{})
	if err == nil || err.Error() != "profile user id is required" {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestEffectiveHouseholdSize(t *testing.T) {
	var nilProfile *Profile
	if got := nilProfile.EffectiveHouseholdSize(); got != DefaultHouseholdSize {
		t.Fatalf("nil profile: got %d want %d", got, DefaultHouseholdSize)
	}
	if got := (&Profile{}).EffectiveHouseholdSize(); got != DefaultHouseholdSize {
		t.Fatalf("unset size: got %d want %d", got, DefaultHouseholdSize)
	}
	if got := (&Profile{HouseholdSize: 6}).EffectiveHouseholdSize(); got != 6 {
		t.Fatalf("explicit size: got %d want 6", got)
	}
}

func TestPreferences(t *testing.T) {
	ctx := context.Background()
	s := NewStorage(cache.NewInMemoryCache())

	for recipeID, liked := range map[string]bool{
		"r1": true,
		"r2": false,
		"r3": true,
	} {
		if err := s.SetPreference(ctx, "u1", recipeID, liked); err != nil {
			t.Fatalf("set preference: %v", err)
		}
	}
	// another user's signals must not leak in
	if err := s.SetPreference(ctx, "u2", "r9", true); err != nil {
		t.Fatalf("set preference: %v", err)
	}

	liked, err := s.LikedRecipeIDs(ctx, "u1")
	if err != nil {
		t.Fatalf("liked: %v", err)
	}
	if len(liked) != 2 || liked[0] != "r1" || liked[1] != "r3" {
		t.Fatalf("unexpected liked ids: %v", liked)
	}

	disliked, err := s.DislikedRecipeIDs(ctx, "u1")
	if err != nil {
		t.Fatalf("disliked: %v", err)
	}
	if len(disliked) != 1 || disliked[0] != "r2" {
		t.Fatalf("unexpected disliked ids: %v", disliked)
	}
}

func TestSetPreferenceOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewStorage(cache.NewInMemoryCache())

	if err := s.SetPreference(ctx, "u1", "r1", false); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetPreference(ctx, "u1", "r1", true); err != nil {
		t.Fatalf("flip: %v", err)
	}

	liked, err := s.LikedRecipeIDs(ctx, "u1")
	if err != nil {
		t.Fatalf("liked: %v", err)
	}
	if len(liked) != 1 || liked[0] != "r1" {
		t.Fatalf("expected flipped preference, got %v", liked)
	}
}
