package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/supersim-ai/drivesim/internal/cache"
	"github.com/supersim-ai/drivesim/internal/config"
	"github.com/supersim-ai/drivesim/internal/storage/memory"
	"github.com/supersim-ai/drivesim/internal/storage/postgres"
	sqlitestorage "github.com/supersim-ai/drivesim/internal/storage/sqlite"
)

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		return postgres.New(cfg.Postgres, cache.NewTeamCache(), cfg.Memory.IncludeFrames, log), nil
	case "sqlite":
		return sqlitestorage.New(sqlitestorage.Config{
			DumpInterval:  cfg.SQLite.DumpInterval,
			DumpPath:      cfg.SQLite.OutputPath,
			IncludeFrames: cfg.Memory.IncludeFrames,
		}, cache.NewTeamCache(), log)
	case "memory", "":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Type)
	}
}
