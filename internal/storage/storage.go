// Package storage defines the sinks finished drives are persisted to.
package storage

import (
	"errors"

	"github.com/supersim-ai/drivesim/pkg/core"
)

// ErrUnknownBackend is returned by NewBackend for an unrecognised storage type.
var ErrUnknownBackend = errors.New("unknown storage type")

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// SaveDrive persists one finished drive and credits it to its team.
	SaveDrive(r *core.DriveResult) error
}

// Ledger is an optional interface for backends that keep team profiles.
type Ledger interface {
	Teams() ([]core.TeamProfile, error)
}

// Uploadable is an optional interface for storage backends that produce
// files suitable for upload to the results server.
type Uploadable interface {
	GetExportedFilePath() string
	GetExportMetadata() core.UploadMetadata
}
