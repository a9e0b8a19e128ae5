// internal/storage/memory/memory.go
package memory

import (
	"errors"
	"sort"
	"sync"

	"github.com/supersim-ai/drivesim/internal/config"
	"github.com/supersim-ai/drivesim/pkg/core"
)

// Backend keeps drives and team profiles in memory and exports each drive to JSON
type Backend struct {
	cfg config.MemoryConfig

	drives []core.DriveResult
	teams  map[string]*core.TeamProfile

	lastExportPath string
	lastMeta       core.UploadMetadata
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:   cfg,
		teams: make(map[string]*core.TeamProfile),
	}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// SaveDrive records r, credits its team and exports it when an output directory is set.
func (b *Backend) SaveDrive(r *core.DriveResult) error {
	if r == nil {
		return errors.New("nil drive result")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.drives = append(b.drives, *r)
	p, ok := b.teams[r.Team]
	if !ok {
		p = &core.TeamProfile{Name: r.Team, Level: 1}
		b.teams[r.Team] = p
	}
	p.Credit(*r)

	if b.cfg.OutputDir == "" {
		return nil
	}
	return b.exportJSON(*r)
}

// Drives returns a copy of every recorded drive in save order.
func (b *Backend) Drives() []core.DriveResult {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]core.DriveResult, len(b.drives))
	copy(out, b.drives)
	return out
}

// Teams returns every team profile, best first.
func (b *Backend) Teams() ([]core.TeamProfile, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]core.TeamProfile, 0, len(b.teams))
	for _, p := range b.teams {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].XP != out[j].XP {
			return out[i].XP > out[j].XP
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// GetExportedFilePath returns the path of the last exported drive.
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}

// GetExportMetadata returns metadata of the last exported drive.
func (b *Backend) GetExportMetadata() core.UploadMetadata {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastMeta
}
