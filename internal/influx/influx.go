// Package influx ships drive and play measurements to InfluxDB, falling back
// to a gzipped line-protocol file when the server is unreachable.
package influx

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/rs/zerolog"

	"github.com/supersim-ai/drivesim/internal/config"
	"github.com/supersim-ai/drivesim/pkg/core"
)

// ErrDisabled is returned by Connect when influx.enabled is false.
var ErrDisabled = errors.New("influx is disabled")

// BackupFileName is the line-protocol fallback written under BackupDir.
const BackupFileName = "influx_backup.lp.gz"

const (
	measurementDrive = "drive"
	measurementPlay  = "play"
)

// Manager handles InfluxDB connections and writes.
type Manager struct {
	Client     influxdb2.Client
	Writer     influxdb2_api.WriteAPI
	IsValid    bool
	Logger     zerolog.Logger
	BackupPath string

	cfg          config.InfluxConfig
	mu           sync.Mutex
	backupFile   *os.File
	backupWriter *gzip.Writer
}

// NewManager creates a new InfluxDB manager.
func NewManager(cfg config.InfluxConfig, log zerolog.Logger) *Manager {
	return &Manager{
		cfg:        cfg,
		Logger:     log,
		BackupPath: filepath.Join(cfg.BackupDir, BackupFileName),
	}
}

// Connect establishes a connection to InfluxDB. An unreachable server
// switches the manager to the backup file instead of failing.
func (m *Manager) Connect(ctx context.Context) error {
	if !m.cfg.Enabled {
		return ErrDisabled
	}

	m.Client = influxdb2.NewClientWithOptions(
		m.cfg.URL(),
		m.cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(500).
			SetFlushInterval(1000),
	)

	// validate client connection health
	running, err := m.Client.Ping(ctx)
	if err != nil || !running {
		m.IsValid = false
		m.Logger.Warn().Err(err).Str("backupPath", m.BackupPath).
			Msg("InfluxDB unreachable, writing to backup file")
		return m.openBackup()
	}

	if err := m.setupOrganizationAndBucket(ctx); err != nil {
		return err
	}
	m.createWriter()
	m.IsValid = true
	m.Logger.Info().Str("url", m.cfg.URL()).Msg("InfluxDB client initialized")
	return nil
}

func (m *Manager) openBackup() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.backupWriter != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(m.BackupPath), 0755); err != nil {
		return fmt.Errorf("error creating backup dir: %w", err)
	}
	file, err := os.OpenFile(m.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error creating backup file: %w", err)
	}
	m.backupFile = file
	m.backupWriter = gzip.NewWriter(file)
	return nil
}

func (m *Manager) setupOrganizationAndBucket(ctx context.Context) error {
	orgName := m.cfg.Org

	// ensure org exists
	influxOrg, err := m.Client.OrganizationsAPI().FindOrganizationByName(ctx, orgName)
	if err != nil {
		m.Logger.Info().Str("org", orgName).Msg("Organization not found, creating")
		influxOrg, err = m.Client.OrganizationsAPI().CreateOrganizationWithName(ctx, orgName)
		if err != nil {
			m.Logger.Error().Err(err).Str("org", orgName).Msg("Error creating organization")
			return err
		}
	}

	// ensure bucket exists with 90 day retention
	if _, err = m.Client.BucketsAPI().FindBucketByName(ctx, m.cfg.Bucket); err != nil {
		m.Logger.Info().Str("bucket", m.cfg.Bucket).Msg("Bucket not found, creating")

		rule := domain.RetentionRuleTypeExpire
		_, err = m.Client.BucketsAPI().CreateBucketWithName(ctx, influxOrg, m.cfg.Bucket, domain.RetentionRule{
			Type:         &rule,
			EverySeconds: 60 * 60 * 24 * 90, // 90 days
		})
		if err != nil {
			m.Logger.Error().Err(err).Str("bucket", m.cfg.Bucket).Msg("Error creating bucket")
			return err
		}
	}

	return nil
}

func (m *Manager) createWriter() {
	m.Writer = m.Client.WriteAPI(m.cfg.Org, m.cfg.Bucket)

	errorsCh := m.Writer.Errors()
	go func() {
		for writeErr := range errorsCh {
			m.Logger.Error().Err(writeErr).Str("bucket", m.cfg.Bucket).
				Msg("Error sending data to InfluxDB")
		}
	}()
}

// WritePoint writes a point to InfluxDB or backup file.
func (m *Manager) WritePoint(point *influxdb2_write.Point) error {
	if m.IsValid {
		m.Writer.WritePoint(point)
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.backupWriter == nil {
		return fmt.Errorf("influxDB client not initialized and backup writer not available")
	}

	lineProtocol := strings.TrimRight(influxdb2_write.PointToLineProtocol(point, time.Nanosecond), "\n")
	if _, err := m.backupWriter.Write([]byte(lineProtocol + "\n")); err != nil {
		return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
	}
	return nil
}

// WriteDrive writes one drive point followed by a point per play.
func (m *Manager) WriteDrive(r core.DriveResult) error {
	if err := m.WritePoint(DrivePoint(r)); err != nil {
		return err
	}
	for _, p := range r.Plays {
		if err := m.WritePoint(PlayPoint(r, p)); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes pending writes and releases the client and backup file.
func (m *Manager) Close() error {
	if m.Writer != nil {
		m.Writer.Flush()
	}
	if m.Client != nil {
		m.Client.Close()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.backupWriter == nil {
		return nil
	}
	err := m.backupWriter.Close()
	if cerr := m.backupFile.Close(); err == nil {
		err = cerr
	}
	m.backupWriter = nil
	m.backupFile = nil
	return err
}

// DrivePoint builds the summary measurement of a finished drive.
func DrivePoint(r core.DriveResult) *influxdb2_write.Point {
	ts := r.FinishedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	return influxdb2_write.NewPoint(
		measurementDrive,
		map[string]string{
			"team":    r.Team,
			"outcome": string(r.Outcome),
			"ending":  string(r.Ending),
		},
		map[string]interface{}{
			"id":            r.ID,
			"seed":          r.Seed,
			"xp":            r.XP,
			"plays":         r.Stats.Plays,
			"totalYards":    r.Stats.TotalYards,
			"rushingYards":  r.Stats.RushingYards,
			"passingYards":  r.Stats.PassingYards,
			"firstDowns":    r.Stats.FirstDowns,
			"interceptions": r.Stats.Interceptions,
			"fallbackCalls": r.Stats.FallbackCalls,
			"finalYardLine": r.FinalYardLine,
			"durationMs":    r.FinishedAt.Sub(r.StartedAt).Milliseconds(),
		},
		ts,
	)
}

// PlayPoint builds the measurement of one play. Plays of a drive are spaced
// one millisecond apart so they never collide on timestamp.
func PlayPoint(r core.DriveResult, p core.PlayRecord) *influxdb2_write.Point {
	ts := r.StartedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	return influxdb2_write.NewPoint(
		measurementPlay,
		map[string]string{
			"team":    r.Team,
			"call":    string(p.Call.Type),
			"event":   string(p.Result.Event),
			"defense": string(p.DefenseLook),
		},
		map[string]interface{}{
			"drive":     r.ID,
			"index":     p.Index,
			"down":      p.Before.Down,
			"yardsToGo": p.Before.YardsToGo,
			"yardLine":  p.Before.FieldPosition,
			"yards":     p.Result.YardsGained,
			"firstDown": p.Result.FirstDown,
			"fallback":  p.Fallback,
			"frames":    p.Frames,
		},
		ts.Add(time.Duration(p.Index)*time.Millisecond),
	)
}
