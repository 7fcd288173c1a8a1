package usecase

import (
	"context"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/storagelocation"
	"github.com/fekuna/omnipos-warehouse-service/pkg/apperror"
)

// capacityBatch tracks quantity reserved against storage locations by the
// items of one AddInventory call before any of them is written.
type capacityBatch struct {
	repo      storagelocation.Repository
	userID    int64
	bySection map[string]*model.StorageLocation // nil value: no location has that section
	pending   map[int64]int
	touched   []*model.StorageLocation
}

func newCapacityBatch(repo storagelocation.Repository, userID int64) *capacityBatch {
	return &capacityBatch{
		repo:      repo,
		userID:    userID,
		bySection: map[string]*model.StorageLocation{},
		pending:   map[int64]int{},
	}
}

func (b *capacityBatch) locate(ctx context.Context, section string) (*model.StorageLocation, error) {
	if loc, ok := b.bySection[section]; ok {
		return loc, nil
	}
	loc, err := b.repo.FindBySectionForUpdate(ctx, b.userID, section)
	if err != nil {
		return nil, err
	}
	b.bySection[section] = loc
	if loc != nil {
		b.touched = append(b.touched, loc)
	}
	return loc, nil
}

// reserve books quantity against the location matching section. It returns
// nil when no location matches, leaving the item unassigned.
func (b *capacityBatch) reserve(ctx context.Context, section string, quantity int) (*model.StorageLocation, error) {
	loc, err := b.locate(ctx, section)
	if err != nil || loc == nil {
		return nil, err
	}

	pending := b.pending[loc.ID]
	if wouldBe := loc.OccupiedCapacity + pending + quantity; wouldBe > loc.MaxCapacity {
		available := loc.MaxCapacity - loc.OccupiedCapacity - pending
		if available < 0 {
			available = 0
		}
		return nil, apperror.CapacityExceeded(loc.SectionName, wouldBe-loc.MaxCapacity, available).
			With("location_id", loc.ID)
	}
	b.pending[loc.ID] = pending + quantity
	return loc, nil
}

// flush writes the new occupied capacity of every location with reservations.
func (b *capacityBatch) flush(ctx context.Context) error {
	for _, loc := range b.touched {
		pending := b.pending[loc.ID]
		if pending == 0 {
			continue
		}
		if err := b.repo.UpdateOccupiedCapacity(ctx, loc.ID, loc.OccupiedCapacity+pending); err != nil {
			return err
		}
	}
	return nil
}
