package repository_test

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-warehouse-service/internal/storagelocation/repository"
	"github.com/fekuna/omnipos-warehouse-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByIDForUpdate_KeepsWarehouseJoin(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.SeedUser(t, db, "owner@example.com")
	other := testutil.SeedUser(t, db, "other@example.com")
	wh := testutil.SeedWarehouse(t, db, owner.ID, "Main")
	loc := testutil.SeedLocation(t, db, owner.ID, wh.ID, "A1", 10, 4)
	repo := repository.NewPGRepository(db)
	ctx := context.Background()

	got, err := repo.FindByIDForUpdate(ctx, owner.ID, loc.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Main", got.WarehouseName)
	assert.Equal(t, 4, got.OccupiedCapacity)

	got, err = repo.FindByIDForUpdate(ctx, other.ID, loc.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
