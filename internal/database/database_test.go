package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supersim-ai/drivesim/internal/config"
	"github.com/supersim-ai/drivesim/internal/model"
)

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.PostgresConfig{
		Host: "db", Port: "5432", Username: "coach", Password: "pw", Database: "drivesim",
	})
	assert.Equal(t, "host=db port=5432 user=coach password=pw dbname=drivesim sslmode=disable", dsn)
}

func TestGetSqliteDB_FileAndSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drives.db")
	db, err := GetSqliteDB(path)
	require.NoError(t, err)

	require.NoError(t, Setup(db))
	for _, m := range model.DatabaseModels {
		assert.True(t, db.Migrator().HasTable(m))
	}

	require.NoError(t, db.Create(&model.Team{Name: "tigers", Level: 1}).Error)
	var count int64
	require.NoError(t, db.Model(&model.Team{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDumpMemoryDBToDisk(t *testing.T) {
	db, err := GetSqliteDB(filepath.Join(t.TempDir(), "source.db"))
	require.NoError(t, err)
	require.NoError(t, Setup(db))
	require.NoError(t, db.Create(&model.Team{Name: "lions", XP: 300, Level: 2}).Error)

	out := filepath.Join(t.TempDir(), "dump.db")
	require.NoError(t, os.WriteFile(out, []byte("stale"), 0o644))
	require.NoError(t, DumpMemoryDBToDisk(db, out))

	dumped, err := GetSqliteDB(out)
	require.NoError(t, err)
	var team model.Team
	require.NoError(t, dumped.Where("name = ?", "lions").First(&team).Error)
	assert.Equal(t, 300, team.XP)
}

func TestDumpMemoryDBToDisk_NoPath(t *testing.T) {
	assert.Error(t, DumpMemoryDBToDisk(nil, ""))
}
