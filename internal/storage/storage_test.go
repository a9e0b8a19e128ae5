// internal/storage/storage_test.go
package storage_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supersim-ai/drivesim/internal/config"
	"github.com/supersim-ai/drivesim/internal/storage"
	gormstorage "github.com/supersim-ai/drivesim/internal/storage/gorm"
	"github.com/supersim-ai/drivesim/internal/storage/memory"
	"github.com/supersim-ai/drivesim/internal/storage/postgres"
	sqlitestorage "github.com/supersim-ai/drivesim/internal/storage/sqlite"
)

var (
	_ storage.Backend    = (*memory.Backend)(nil)
	_ storage.Ledger     = (*memory.Backend)(nil)
	_ storage.Uploadable = (*memory.Backend)(nil)
	_ storage.Backend    = (*gormstorage.Backend)(nil)
	_ storage.Ledger     = (*gormstorage.Backend)(nil)
	_ storage.Backend    = (*sqlitestorage.Backend)(nil)
	_ storage.Backend    = (*postgres.Backend)(nil)
	_ storage.Ledger     = (*postgres.Backend)(nil)
)

func TestNewBackend_Memory(t *testing.T) {
	for _, typ := range []string{"memory", ""} {
		b, err := storage.NewBackend(config.StorageConfig{Type: typ}, zerolog.Nop())
		require.NoError(t, err)
		assert.IsType(t, &memory.Backend{}, b)
	}
}

func TestNewBackend_Postgres(t *testing.T) {
	b, err := storage.NewBackend(config.StorageConfig{Type: "postgres"}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &postgres.Backend{}, b)
}

func TestNewBackend_Unknown(t *testing.T) {
	_, err := storage.NewBackend(config.StorageConfig{Type: "websocket"}, zerolog.Nop())
	assert.ErrorIs(t, err, storage.ErrUnknownBackend)
}
