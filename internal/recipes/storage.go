package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"larder/internal/cache"
)

const recipeCachePrefix = "recipe/"

// Store keeps recipes as JSON documents in a cache.
type Store struct {
	cache cache.Cache
}

func NewStore(c cache.Cache) *Store {
	return &Store{cache: c}
}

func (s *Store) Save(ctx context.Context, r Recipe) error {
	if err := r.Validate(); err != nil {
		return err
	}
	recipeJSON := lo.Must(json.Marshal(r))
	if err := s.cache.Put(ctx, recipeCachePrefix+r.ID, string(recipeJSON), cache.Unconditional()); err != nil {
		return fmt.Errorf("failed to store recipe %s: %w", r.ID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*Recipe, error) {
	blob, err := s.cache.Get(ctx, recipeCachePrefix+id)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := blob.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close cached recipe", "id", id, "error", err)
		}
	}()

	var r Recipe
	if err := json.NewDecoder(blob).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode recipe %s: %w", id, err)
	}
	return &r, nil
}

// All returns every stored recipe in id order.
func (s *Store) All(ctx context.Context) ([]Recipe, error) {
	ids, err := s.cache.List(ctx, recipeCachePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	out := make([]Recipe, 0, len(ids))
	for _, id := range ids {
		r, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

// Find returns recipes matching the filter. limit <= 0 means no bound.
func (s *Store) Find(ctx context.Context, f Filter, limit int) ([]Recipe, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	matched := lo.Filter(all, func(r Recipe, _ int) bool { return f.Matches(r) })
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
