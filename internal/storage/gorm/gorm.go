// Package gormstorage implements the storage.Backend interface on any GORM
// connection with an internal queue and a background DB writer goroutine.
package gormstorage

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/supersim-ai/drivesim/internal/cache"
	"github.com/supersim-ai/drivesim/internal/database"
	"github.com/supersim-ai/drivesim/internal/model"
	"github.com/supersim-ai/drivesim/internal/model/convert"
	"github.com/supersim-ai/drivesim/internal/queue"
	"github.com/supersim-ai/drivesim/pkg/core"
)

const (
	// DefaultWriteInterval is how often the writer drains the drive queue.
	DefaultWriteInterval = time.Second
	// DefaultMaxAttempts is how many failed writes a drive gets before it is
	// dropped.
	DefaultMaxAttempts = 3
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB        *gorm.DB
	TeamCache *cache.TeamCache
	Logger    zerolog.Logger
	// IncludeFrames stores each drive's frames in frame_data.
	IncludeFrames bool
	WriteInterval time.Duration
	MaxAttempts   int
}

// Backend implements storage.Backend using GORM with queue-based writes.
type Backend struct {
	deps     Dependencies
	drives   *queue.Queue[core.DriveResult]
	writeMu  sync.Mutex
	attempts map[string]int // failed writes per drive ID, guarded by writeMu
	stopChan chan struct{}
	done     chan struct{}
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.TeamCache == nil {
		deps.TeamCache = cache.NewTeamCache()
	}
	if deps.WriteInterval <= 0 {
		deps.WriteInterval = DefaultWriteInterval
	}
	if deps.MaxAttempts <= 0 {
		deps.MaxAttempts = DefaultMaxAttempts
	}
	return &Backend{
		deps:     deps,
		drives:   queue.New[core.DriveResult](16),
		attempts: make(map[string]int),
	}
}

// DB returns the underlying connection.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// Init runs schema migration and starts the DB writer goroutine.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return errors.New("no database connection")
	}
	if err := database.Setup(b.deps.DB); err != nil {
		return fmt.Errorf("failed to setup DB: %w", err)
	}

	b.stopChan = make(chan struct{})
	b.done = make(chan struct{})
	go b.writeLoop()
	return nil
}

// Close stops the writer and flushes anything still queued.
func (b *Backend) Close() error {
	if b.stopChan != nil {
		close(b.stopChan)
		<-b.done
		b.stopChan = nil
	}
	return b.Flush()
}

// SaveDrive queues r for the next write cycle.
func (b *Backend) SaveDrive(r *core.DriveResult) error {
	if r == nil {
		return errors.New("nil drive result")
	}
	b.drives.Push(*r)
	return nil
}

// Pending returns the number of queued drives.
func (b *Backend) Pending() int {
	return b.drives.Len()
}

// Flush writes queued drives in order and stops at the first failure. The
// failed drive and everything after it go back to the head of the queue,
// ahead of drives saved in the meantime. A drive that has failed MaxAttempts
// times is dropped instead of requeued.
func (b *Backend) Flush() error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	if b.drives.Empty() {
		return nil
	}

	items := b.drives.Drain()
	for i, r := range items {
		err := b.writeDrive(r)
		if err == nil {
			delete(b.attempts, r.ID)
			continue
		}

		b.attempts[r.ID]++
		rest := items[i:]
		if n := b.attempts[r.ID]; n >= b.deps.MaxAttempts {
			delete(b.attempts, r.ID)
			rest = items[i+1:]
			b.deps.Logger.Error().Err(err).Str("drive", r.ID).Int("attempts", n).Msg("dropping drive after repeated write failures")
		}
		b.drives.PushFront(rest...)
		return fmt.Errorf("error writing drive %s: %w", r.ID, err)
	}
	return nil
}

// Teams returns every team profile, best first.
func (b *Backend) Teams() ([]core.TeamProfile, error) {
	var rows []model.Team
	if err := b.deps.DB.Order("xp desc, name asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error reading teams: %w", err)
	}
	out := make([]core.TeamProfile, 0, len(rows))
	for _, t := range rows {
		out = append(out, convert.TeamToCore(t))
	}
	return out, nil
}

func (b *Backend) writeLoop() {
	defer close(b.done)
	ticker := time.NewTicker(b.deps.WriteInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			start := time.Now()
			n := b.drives.Len()
			if err := b.Flush(); err != nil {
				b.deps.Logger.Error().Err(err).Msg("DB writer failed")
			} else if n > 0 {
				b.deps.Logger.Debug().Int("drives", n).Dur("duration", time.Since(start)).Msg("DB write cycle complete")
			}
		}
	}
}

func (b *Backend) writeDrive(r core.DriveResult) error {
	return b.deps.DB.Transaction(func(tx *gorm.DB) error {
		team, err := b.team(tx, r.Team)
		if err != nil {
			return err
		}
		convert.ApplyDrive(&team, r)
		if err := tx.Save(&team).Error; err != nil {
			return fmt.Errorf("error updating team: %w", err)
		}

		drive := convert.CoreToDrive(r, team.ID)
		if err := tx.Create(&drive).Error; err != nil {
			return fmt.Errorf("error creating drive: %w", err)
		}

		if b.deps.IncludeFrames {
			fd, err := convert.CoreToFrameData(r, drive.ID)
			if err != nil {
				return fmt.Errorf("error encoding frames: %w", err)
			}
			if err := tx.Create(&fd).Error; err != nil {
				return fmt.Errorf("error creating frame data: %w", err)
			}
		}
		return nil
	})
}

// team loads the named team row, creating it on first sight.
func (b *Backend) team(tx *gorm.DB, name string) (model.Team, error) {
	var team model.Team
	if id, ok := b.deps.TeamCache.Get(name); ok {
		if err := tx.First(&team, id).Error; err == nil {
			return team, nil
		}
		b.deps.TeamCache.Delete(name)
	}
	if err := tx.Where("name = ?", name).Attrs(model.Team{Name: name, Level: 1}).FirstOrCreate(&team).Error; err != nil {
		return model.Team{}, fmt.Errorf("error loading team %q: %w", name, err)
	}
	b.deps.TeamCache.Set(name, team.ID)
	return team, nil
}
