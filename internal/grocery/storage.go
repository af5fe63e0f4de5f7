package grocery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"larder/internal/cache"
)

const (
	listByPlanPrefix = "grocerylist/plan/"
	// secondary index so item operations can address a list by its own id
	planByListPrefix = "grocerylist/id/"
)

// Store persists grocery lists as JSON documents keyed by plan id, with a
// list-id index beside them.
type Store struct {
	cache cache.Cache
}

var _ ListStore = (*Store)(nil)

func NewStore(c cache.Cache) *Store {
	return &Store{cache: c}
}

func (s *Store) GetByPlan(ctx context.Context, planID string) (*GroceryList, error) {
	return s.getDocument(ctx, listByPlanPrefix+planID)
}

func (s *Store) Create(ctx context.Context, planID string, items []GroceryItem) (*GroceryList, error) {
	list := GroceryList{
		ID:         uuid.NewString(),
		MealPlanID: planID,
		Items:      items,
	}
	if err := s.putDocument(ctx, list); err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, planByListPrefix+list.ID, planID, cache.Unconditional()); err != nil {
		return nil, fmt.Errorf("failed to index grocery list %s: %w", list.ID, err)
	}
	return &list, nil
}

func (s *Store) DeleteItems(ctx context.Context, listID string) error {
	list, err := s.getByID(ctx, listID)
	if err != nil {
		return err
	}
	list.Items = nil
	return s.putDocument(ctx, *list)
}

func (s *Store) InsertItems(ctx context.Context, listID string, items []GroceryItem) error {
	list, err := s.getByID(ctx, listID)
	if err != nil {
		return err
	}
	list.Items = append(list.Items, items...)
	return s.putDocument(ctx, *list)
}

func (s *Store) getByID(ctx context.Context, listID string) (*GroceryList, error) {
	blob, err := s.cache.Get(ctx, planByListPrefix+listID)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	defer closeBlob(ctx, blob, listID)

	planID, err := io.ReadAll(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to read grocery list index %s: %w", listID, err)
	}
	return s.GetByPlan(ctx, strings.TrimSpace(string(planID)))
}

func (s *Store) getDocument(ctx context.Context, key string) (*GroceryList, error) {
	blob, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	defer closeBlob(ctx, blob, key)

	var list GroceryList
	if err := json.NewDecoder(blob).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode grocery list %s: %w", key, err)
	}
	return &list, nil
}

func (s *Store) putDocument(ctx context.Context, list GroceryList) error {
	listJSON := lo.Must(json.Marshal(list))
	if err := s.cache.Put(ctx, listByPlanPrefix+list.MealPlanID, string(listJSON), cache.Unconditional()); err != nil {
		return fmt.Errorf("failed to store grocery list for plan %s: %w", list.MealPlanID, err)
	}
	return nil
}

func closeBlob(ctx context.Context, blob io.Closer, key string) {
	if err := blob.Close(); err != nil {
		slog.ErrorContext(ctx, "failed to close cached grocery document", "key", key, "error", err)
	}
}
