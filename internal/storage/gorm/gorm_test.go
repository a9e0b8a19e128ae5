package gormstorage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/supersim-ai/drivesim/internal/cache"
	"github.com/supersim-ai/drivesim/internal/database"
	"github.com/supersim-ai/drivesim/internal/model"
	"github.com/supersim-ai/drivesim/pkg/core"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.GetSqliteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func newTestBackend(t *testing.T, includeFrames bool) (*Backend, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	b := New(Dependencies{
		DB:            db,
		TeamCache:     cache.NewTeamCache(),
		Logger:        zerolog.Nop(),
		IncludeFrames: includeFrames,
		WriteInterval: time.Hour,
	})
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	return b, db
}

func testDrive(id, team string, outcome core.DriveOutcome, xp int) *core.DriveResult {
	return &core.DriveResult{
		ID:      id,
		Team:    team,
		Seed:    7,
		Outcome: outcome,
		Ending:  core.Touchdown,
		XP:      xp,
		Stats:   core.DriveStats{Plays: 1, TotalYards: 12},
		Plays: []core.PlayRecord{{
			Index:  0,
			Before: core.DriveState{Down: 1, YardsToGo: 10, FieldPosition: 25},
			Call:   core.PlayCall{Type: core.Run},
			Result: core.PlayResult{Event: core.EventRun, YardsGained: 12, EndYard: 37, FirstDown: true},
			Frames: 2,
		}},
		Frames: []core.Frame{
			{Play: 0, Tick: 0, Ball: core.Point3{X: -0.5}},
			{Play: 0, Tick: 1, Ball: core.Point3{X: -0.3}},
		},
		Log:        []string{"Run for 12 yards.", "FIRST DOWN!"},
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
	}
}

func TestBackend_InitMigrates(t *testing.T) {
	_, db := newTestBackend(t, false)
	for _, m := range model.DatabaseModels {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

func TestBackend_SaveDriveQueuesUntilFlush(t *testing.T) {
	b, db := newTestBackend(t, false)

	require.NoError(t, b.SaveDrive(testDrive("d1", "tigers", core.Win, 110)))
	assert.Equal(t, 1, b.Pending())

	var count int64
	db.Model(&model.Drive{}).Count(&count)
	assert.Equal(t, int64(0), count)

	require.NoError(t, b.Flush())
	assert.Equal(t, 0, b.Pending())

	var drive model.Drive
	require.NoError(t, db.Preload("Plays").Where("uuid = ?", "d1").First(&drive).Error)
	assert.Equal(t, "win", drive.Outcome)
	assert.Equal(t, 110, drive.XP)
	assert.Equal(t, 12, drive.Stats.TotalYards)
	require.Len(t, drive.Plays, 1)
	assert.Equal(t, "RUN", drive.Plays[0].PlayType)
	assert.True(t, drive.Plays[0].FirstDown)

	db.Model(&model.FrameData{}).Count(&count)
	assert.Equal(t, int64(0), count, "frames are skipped unless requested")
}

func TestBackend_IncludeFrames(t *testing.T) {
	b, db := newTestBackend(t, true)

	require.NoError(t, b.SaveDrive(testDrive("d1", "tigers", core.Win, 110)))
	require.NoError(t, b.Flush())

	var fd model.FrameData
	require.NoError(t, db.First(&fd).Error)
	assert.Equal(t, 2, fd.Count)
}

func TestBackend_TeamProfiles(t *testing.T) {
	b, _ := newTestBackend(t, false)

	require.NoError(t, b.SaveDrive(testDrive("d1", "tigers", core.Win, 150)))
	require.NoError(t, b.SaveDrive(testDrive("d2", "tigers", core.Lose, 60)))
	require.NoError(t, b.SaveDrive(testDrive("d3", "lions", core.Lose, 25)))
	require.NoError(t, b.Flush())

	teams, err := b.Teams()
	require.NoError(t, err)
	require.Len(t, teams, 2)

	assert.Equal(t, core.TeamProfile{Name: "tigers", XP: 210, Level: 2, Drives: 2, Wins: 1, Losses: 1}, teams[0])
	assert.Equal(t, core.TeamProfile{Name: "lions", XP: 25, Level: 1, Drives: 1, Losses: 1}, teams[1])
}

func TestBackend_DuplicateDriveIsRequeued(t *testing.T) {
	b, _ := newTestBackend(t, false)

	require.NoError(t, b.SaveDrive(testDrive("dup", "tigers", core.Win, 100)))
	require.NoError(t, b.Flush())

	require.NoError(t, b.SaveDrive(testDrive("dup", "tigers", core.Win, 100)))
	assert.Error(t, b.Flush())
	assert.Equal(t, 1, b.Pending())

	// rolled back: the team was not credited twice
	teams, err := b.Teams()
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, 1, teams[0].Drives)
}

func TestBackend_FailedDriveStaysAhead(t *testing.T) {
	b, _ := newTestBackend(t, false)

	require.NoError(t, b.SaveDrive(testDrive("dup", "tigers", core.Win, 100)))
	require.NoError(t, b.Flush())

	require.NoError(t, b.SaveDrive(testDrive("dup", "tigers", core.Win, 100)))
	require.NoError(t, b.SaveDrive(testDrive("d2", "lions", core.Lose, 25)))
	require.Error(t, b.Flush())
	require.NoError(t, b.SaveDrive(testDrive("d3", "bears", core.Lose, 25)))

	var ids []string
	for _, r := range b.drives.Drain() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"dup", "d2", "d3"}, ids)
}

func TestBackend_DropsDriveAfterMaxAttempts(t *testing.T) {
	db := setupTestDB(t)
	b := New(Dependencies{DB: db, Logger: zerolog.Nop(), WriteInterval: time.Hour, MaxAttempts: 2})
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })

	require.NoError(t, b.SaveDrive(testDrive("dup", "tigers", core.Win, 100)))
	require.NoError(t, b.Flush())

	require.NoError(t, b.SaveDrive(testDrive("dup", "tigers", core.Win, 100)))
	require.NoError(t, b.SaveDrive(testDrive("d2", "lions", core.Lose, 25)))

	require.Error(t, b.Flush())
	assert.Equal(t, 2, b.Pending())

	// second failure drops the duplicate but keeps the drive behind it
	require.Error(t, b.Flush())
	assert.Equal(t, 1, b.Pending())
	assert.Empty(t, b.attempts)

	require.NoError(t, b.Flush())
	assert.Equal(t, 0, b.Pending())

	var count int64
	db.Model(&model.Drive{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestNew_DefaultMaxAttempts(t *testing.T) {
	b := New(Dependencies{})
	assert.Equal(t, DefaultMaxAttempts, b.deps.MaxAttempts)
}

func TestBackend_CloseFlushes(t *testing.T) {
	db := setupTestDB(t)
	b := New(Dependencies{DB: db, Logger: zerolog.Nop(), WriteInterval: time.Hour})
	require.NoError(t, b.Init())

	require.NoError(t, b.SaveDrive(testDrive("d1", "bears", core.Lose, 25)))
	require.NoError(t, b.Close())

	var count int64
	db.Model(&model.Drive{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestBackend_WriteLoop(t *testing.T) {
	db := setupTestDB(t)
	b := New(Dependencies{DB: db, Logger: zerolog.Nop(), WriteInterval: 10 * time.Millisecond})
	require.NoError(t, b.Init())
	defer b.Close()

	require.NoError(t, b.SaveDrive(testDrive("d1", "bears", core.Lose, 25)))
	assert.Eventually(t, func() bool { return b.Pending() == 0 }, time.Second, 10*time.Millisecond)
}

func TestBackend_SaveNil(t *testing.T) {
	b := New(Dependencies{})
	assert.Error(t, b.SaveDrive(nil))
	assert.Error(t, b.Init())
}
