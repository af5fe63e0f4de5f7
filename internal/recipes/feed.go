package recipes

import (
	"context"
	"slices"

	"github.com/samber/lo"
)

// Feed returns the discovery list for a user: every recipe except the ones
// in dislikedIDs, newest first. Liked recipes are not boosted here; that
// ranking belongs to plan generation.
func (s *Store) Feed(ctx context.Context, dislikedIDs []string) ([]Recipe, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	feed := lo.Filter(all, func(r Recipe, _ int) bool {
		return !slices.Contains(dislikedIDs, r.ID)
	})
	slices.SortStableFunc(feed, func(a, b Recipe) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return feed, nil
}
