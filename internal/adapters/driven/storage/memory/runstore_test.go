package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
)

func TestRunStore_SaveAndGet(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	run := domain.IngestRun{
		ID:        "run-1",
		Year:      2023,
		Status:    domain.RunStatusSucceeded,
		StartedAt: time.Now(),
	}
	require.NoError(t, store.Save(ctx, run))

	got, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run, *got)
}

func TestRunStore_Get_NotFound(t *testing.T) {
	_, err := NewRunStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunStore_Save_RequiresID(t *testing.T) {
	err := NewRunStore().Save(context.Background(), domain.IngestRun{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRunStore_Save_Update(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	run := domain.IngestRun{ID: "run-1", Status: domain.RunStatusSucceeded}
	require.NoError(t, store.Save(ctx, run))
	run.Status = domain.RunStatusFailed
	require.NoError(t, store.Save(ctx, run))

	runs, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.RunStatusFailed, runs[0].Status)
}

func TestRunStore_List_Ordering(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, domain.IngestRun{ID: "a", StartedAt: base}))
	require.NoError(t, store.Save(ctx, domain.IngestRun{ID: "b", StartedAt: base.Add(time.Minute)}))
	require.NoError(t, store.Save(ctx, domain.IngestRun{ID: "c", StartedAt: base}))

	runs, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "b", runs[0].ID)
	assert.Equal(t, "c", runs[1].ID)
	assert.Equal(t, "a", runs[2].ID)

	limited, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "b", limited[0].ID)
}
