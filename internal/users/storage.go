package users

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"larder/internal/cache"
)

const (
	profileCachePrefix    = "profile/"
	preferenceCachePrefix = "preference/"
)

var ErrNotFound = cache.ErrNotFound

// Storage keeps profiles and recipe preferences as JSON documents in a
// cache. Preferences are keyed preference/<user>/<recipe> so one List call
// walks a user's signals.
type Storage struct {
	cache cache.Cache
}

var nowFn = time.Now

func NewStorage(c cache.Cache) *Storage {
	return &Storage{cache: c}
}

func (s *Storage) SaveProfile(ctx context.Context, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = nowFn()
	}
	profileJSON := lo.Must(json.Marshal(p))
	if err := s.cache.Put(ctx, profileCachePrefix+p.UserID, string(profileJSON), cache.Unconditional()); err != nil {
		return fmt.Errorf("failed to store profile for %s: %w", p.UserID, err)
	}
	return nil
}

// GetProfile returns ErrNotFound for users who never completed onboarding;
// callers treat that as an unconstrained profile.
func (s *Storage) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	blob, err := s.cache.Get(ctx, profileCachePrefix+userID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := blob.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close cached profile", "user_id", userID, "error", err)
		}
	}()

	var p Profile
	if err := json.NewDecoder(blob).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode profile for %s: %w", userID, err)
	}
	return &p, nil
}

func (s *Storage) SetPreference(ctx context.Context, userID, recipeID string, liked bool) error {
	pref := Preference{
		UserID:    userID,
		RecipeID:  recipeID,
		Liked:     liked,
		UpdatedAt: nowFn(),
	}
	prefJSON := lo.Must(json.Marshal(pref))
	key := preferenceCachePrefix + userID + "/" + recipeID
	if err := s.cache.Put(ctx, key, string(prefJSON), cache.Unconditional()); err != nil {
		return fmt.Errorf("failed to store preference: %w", err)
	}
	return nil
}

// LikedRecipeIDs returns the ids the user marked liked, sorted.
func (s *Storage) LikedRecipeIDs(ctx context.Context, userID string) ([]string, error) {
	return s.preferenceIDs(ctx, userID, true)
}

// DislikedRecipeIDs returns the ids the user marked disliked, sorted.
func (s *Storage) DislikedRecipeIDs(ctx context.Context, userID string) ([]string, error) {
	return s.preferenceIDs(ctx, userID, false)
}

func (s *Storage) preferenceIDs(ctx context.Context, userID string, liked bool) ([]string, error) {
	prefix := preferenceCachePrefix + userID + "/"
	recipeIDs, err := s.cache.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences for %s: %w", userID, err)
	}

	var out []string
	for _, recipeID := range recipeIDs {
		pref, err := s.getPreference(ctx, prefix+recipeID)
		if err != nil {
			return nil, err
		}
		if pref.Liked == liked {
			out = append(out, pref.RecipeID)
		}
	}
	return out, nil
}

func (s *Storage) getPreference(ctx context.Context, key string) (*Preference, error) {
	blob, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := blob.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close cached preference", "key", key, "error", err)
		}
	}()

	var pref Preference
	if err := json.NewDecoder(blob).Decode(&pref); err != nil {
		return nil, fmt.Errorf("failed to decode preference %s: %w", key, err)
	}
	return &pref, nil
}
