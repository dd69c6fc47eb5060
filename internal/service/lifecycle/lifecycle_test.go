package lifecycle

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlamayo/boardinghouse/internal/domain/models"
	"github.com/dlamayo/boardinghouse/internal/repository/localstore"
	"github.com/dlamayo/boardinghouse/internal/service/projection"
)

// The trash transitions run against a real file-backed store so the test
// covers the patch semantics end to end, including the clear-on-restore.
func TestTrashRestorePurge(t *testing.T) {
	ctx := context.Background()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "beds.json"), nil)
	require.NoError(t, err)
	defer store.Close(ctx)

	id, err := store.Create(ctx, models.BedRecord{
		House: "1", RoomNumber: "1", BedNumber: "A",
		Status: models.BedOccupied, TenantName: "Maria Santos",
		MoveInDate: "2024-01-15", MonthlyRent: 5000,
	})
	require.NoError(t, err)

	svc := NewService(store, nil)
	now := time.Now()

	activeRows := func() []models.TenantBalance {
		records, err := store.List(ctx)
		require.NoError(t, err)
		return projection.TenantRows(records, false, now)
	}
	trashRows := func() []models.TenantBalance {
		records, err := store.List(ctx)
		require.NoError(t, err)
		return projection.TenantRows(records, true, now)
	}

	require.Len(t, activeRows(), 1)
	require.Empty(t, trashRows())

	// Soft delete: disappears from the active view, appears in the trash.
	require.NoError(t, svc.Trash(ctx, id))
	assert.Empty(t, activeRows())
	require.Len(t, trashRows(), 1)
	assert.NotEmpty(t, trashRows()[0].DeletedAt)

	// The slot is free while the record sits in the trash.
	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Deleted())

	// Restore reverses the soft delete exactly.
	require.NoError(t, svc.Restore(ctx, id))
	require.Len(t, activeRows(), 1)
	assert.Empty(t, trashRows())
	records, err = store.List(ctx)
	require.NoError(t, err)
	assert.False(t, records[0].Deleted())

	// Purge erases the record for good.
	require.NoError(t, svc.Trash(ctx, id))
	require.NoError(t, svc.Purge(ctx, id))
	records, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTrashed(t *testing.T) {
	records := []models.BedRecord{
		{ID: "1"},
		{ID: "2", DeletedAt: "2024-03-01T00:00:00Z"},
		{ID: "3"},
	}
	trashed := Trashed(records)
	require.Len(t, trashed, 1)
	assert.Equal(t, "2", trashed[0].ID)
}
