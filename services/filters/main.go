package filtersService

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"varq/api/models"
	"varq/api/queries"
)

type (
	FilterStore interface {
		InsertFilterStash(ctx context.Context, stash models.FilterStash) error
		FindFilterStashById(ctx context.Context, stashId string) (*models.FilterStash, error)
		FindFilterStashes(ctx context.Context, instituteId string, category string) ([]models.FilterStash, error)
		DeleteFilterStash(ctx context.Context, stashId string) (int64, error)
	}

	FilterService struct {
		Store FilterStore
	}
)

func NewFilterService(store FilterStore) *FilterService {
	return &FilterService{Store: store}
}

// Stash validates and persists a named filter dict. The dict must
// parse cleanly so a saved filter can always be replayed later ;
// unknown-key warnings are surfaced but do not block saving.
func (s *FilterService) Stash(ctx context.Context, stash models.FilterStash) (*models.FilterStash, []string, error) {
	_, warnings, parseErr := queries.ParseFilter(stash.FilterDict)
	if parseErr != nil {
		return nil, warnings, parseErr
	}

	stash.Id = uuid.New().String()
	stash.CreatedAt = time.Now().UTC()

	if insertErr := s.Store.InsertFilterStash(ctx, stash); insertErr != nil {
		return nil, warnings, insertErr
	}

	return &stash, warnings, nil
}

// Fetch returns nil without error for an unknown stash id.
func (s *FilterService) Fetch(ctx context.Context, stashId string) (*models.FilterStash, error) {
	stash, err := s.Store.FindFilterStashById(ctx, stashId)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return stash, nil
}

func (s *FilterService) List(ctx context.Context, instituteId string, category string) ([]models.FilterStash, error) {
	return s.Store.FindFilterStashes(ctx, instituteId, category)
}

// Remove reports whether anything was deleted.
func (s *FilterService) Remove(ctx context.Context, stashId string) (bool, error) {
	deleted, err := s.Store.DeleteFilterStash(ctx, stashId)
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}
