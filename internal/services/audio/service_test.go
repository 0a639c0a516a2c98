package audio

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendiq/pickrun/internal/repository/sqlite"
)

func TestSequence_UnknownRun(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := sqlite.Open(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = NewService(store, logger).Sequence(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestSequence_EmptyRun(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := sqlite.Open(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	co, err := store.CreateCompany(ctx, "Vendiq", "UTC")
	require.NoError(t, err)
	run, err := store.CreateRun(ctx, co.ID, nil)
	require.NoError(t, err)

	cmds, err := NewService(store, logger).Sequence(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, cmds)
}
