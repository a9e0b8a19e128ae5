package main

import (
	"errors"
	"fmt"

	"github.com/supersim-ai/drivesim/internal/api"
	"github.com/supersim-ai/drivesim/internal/config"
	"github.com/supersim-ai/drivesim/internal/dispatcher"
	"github.com/supersim-ai/drivesim/internal/influx"
	"github.com/supersim-ai/drivesim/internal/storage"
	"github.com/supersim-ai/drivesim/pkg/core"
)

// initSinks opens the storage backend and the optional InfluxDB and upload targets.
// Only the storage backend is required.
func (a *app) initSinks() error {
	storageCfg := config.GetStorageConfig()

	backend, err := storage.NewBackend(storageCfg, a.log)
	if err != nil {
		return fmt.Errorf("failed to create storage backend: %w", err)
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("failed to initialize %s storage backend: %w", storageCfg.Type, err)
	}
	a.backend = backend
	a.log.Info().Str("type", storageCfg.Type).Msg("Storage backend initialized")

	im := influx.NewManager(config.GetInfluxConfig(), a.log)
	switch err := im.Connect(a.ctx); {
	case errors.Is(err, influx.ErrDisabled):
	case err != nil:
		a.log.Warn().Err(err).Msg("InfluxDB unavailable, skipping points")
		_ = im.Close()
	default:
		a.influx = im
	}

	apiCfg := config.GetAPIConfig()
	if apiCfg.Enabled {
		client := api.New(apiCfg.ServerURL, apiCfg.APIKey)
		if err := client.Healthcheck(a.ctx); err != nil {
			a.log.Warn().Err(err).Str("url", apiCfg.ServerURL).Msg("Results server unreachable, uploads disabled")
		} else {
			a.uploader = client
		}
	}
	return nil
}

// handlePersist stores one finished drive in every configured sink. It runs
// on the dispatcher's buffered worker, one drive at a time.
func (a *app) handlePersist(e dispatcher.Event) (any, error) {
	r, ok := e.Payload.(*core.DriveResult)
	if !ok || r == nil {
		return nil, fmt.Errorf("persist: unexpected payload %T", e.Payload)
	}

	if err := a.backend.SaveDrive(r); err != nil {
		return nil, fmt.Errorf("saving drive %s: %w", r.ID, err)
	}

	if a.influx != nil {
		if err := a.influx.WriteDrive(*r); err != nil {
			a.log.Warn().Err(err).Str("drive", r.ID).Msg("Failed to write drive points")
		}
	}

	if a.uploader != nil {
		if up, ok := a.backend.(storage.Uploadable); ok && up.GetExportedFilePath() != "" {
			if err := a.uploader.Upload(a.ctx, up.GetExportedFilePath(), up.GetExportMetadata()); err != nil {
				a.log.Warn().Err(err).Str("drive", r.ID).Msg("Failed to upload drive")
			} else {
				a.log.Info().Str("drive", r.ID).Msg("Drive uploaded")
			}
		}
	}
	return nil, nil
}
