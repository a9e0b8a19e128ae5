// Package postgres implements the storage.Backend interface on PostgreSQL
// through the shared GORM backend.
package postgres

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/supersim-ai/drivesim/internal/cache"
	"github.com/supersim-ai/drivesim/internal/config"
	"github.com/supersim-ai/drivesim/internal/database"
	gormstorage "github.com/supersim-ai/drivesim/internal/storage/gorm"
	"github.com/supersim-ai/drivesim/pkg/core"
)

var errNotConnected = errors.New("postgres backend not initialized")

// Backend connects to Postgres on Init and delegates writes to the GORM backend.
type Backend struct {
	*gormstorage.Backend
	cfg           config.PostgresConfig
	teamCache     *cache.TeamCache
	includeFrames bool
	log           zerolog.Logger
}

// New creates a new Postgres storage backend. No connection is made until Init.
func New(cfg config.PostgresConfig, teamCache *cache.TeamCache, includeFrames bool, log zerolog.Logger) *Backend {
	return &Backend{
		cfg:           cfg,
		teamCache:     teamCache,
		includeFrames: includeFrames,
		log:           log,
	}
}

// Init connects, migrates and starts the DB writer.
func (b *Backend) Init() error {
	db, err := database.GetPostgresDB(b.cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	b.log.Info().Str("host", b.cfg.Host).Str("database", b.cfg.Database).Msg("Connected to database")

	b.Backend = gormstorage.New(gormstorage.Dependencies{
		DB:            db,
		TeamCache:     b.teamCache,
		Logger:        b.log,
		IncludeFrames: b.includeFrames,
	})
	return b.Backend.Init()
}

// Close flushes queued drives. It is a no-op if Init never connected.
func (b *Backend) Close() error {
	if b.Backend == nil {
		return nil
	}
	return b.Backend.Close()
}

// SaveDrive queues r on the connected backend.
func (b *Backend) SaveDrive(r *core.DriveResult) error {
	if b.Backend == nil {
		return errNotConnected
	}
	return b.Backend.SaveDrive(r)
}

// Teams reads every team profile.
func (b *Backend) Teams() ([]core.TeamProfile, error) {
	if b.Backend == nil {
		return nil, errNotConnected
	}
	return b.Backend.Teams()
}
