package model

import (
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/supersim-ai/drivesim/pkg/core"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Team{},
	&Drive{},
	&Play{},
	&FrameData{},
}

// Team is the persistent coach profile a drive is credited to.
type Team struct {
	gorm.Model
	Name   string `json:"name" gorm:"size:127;uniqueIndex"`
	XP     int    `json:"xp"`
	Level  int    `json:"level" gorm:"default:1"`
	Drives int    `json:"drives"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

func (*Team) TableName() string {
	return "teams"
}

// Drive is one completed drive and its summary stats.
type Drive struct {
	gorm.Model
	UUID          string          `json:"uuid" gorm:"size:36;uniqueIndex"`
	TeamID        uint            `json:"teamId" gorm:"index:idx_drive_team_id"`
	Team          Team            `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:TeamID;"`
	Seed          int64           `json:"seed"`
	Outcome       string          `json:"outcome" gorm:"size:16;index:idx_drive_outcome"`
	Ending        string          `json:"ending" gorm:"size:32"`
	XP            int             `json:"xp"`
	FinalYardLine int             `json:"finalYardLine"`
	ScoreHome     int             `json:"scoreHome"`
	ScoreAway     int             `json:"scoreAway"`
	Stats         core.DriveStats `json:"stats" gorm:"embedded;embeddedPrefix:stats_"`
	Log           datatypes.JSON  `json:"log"`
	StartedAt     time.Time       `json:"startedAt" gorm:"type:timestamptz;index:idx_drive_started_at"`
	FinishedAt    time.Time       `json:"finishedAt" gorm:"type:timestamptz"`

	Plays []Play `json:"plays"`
}

func (*Drive) TableName() string {
	return "drives"
}

// Play is one snap of a drive.
type Play struct {
	ID          uint   `json:"id" gorm:"primarykey;autoIncrement"`
	DriveID     uint   `json:"driveId" gorm:"index:idx_play_drive_id"`
	Index       int    `json:"index"`
	Down        int    `json:"down"`
	YardsToGo   int    `json:"yardsToGo"`
	YardLine    int    `json:"yardLine"`
	PlayType    string `json:"playType" gorm:"size:8"`
	Target      string `json:"target" gorm:"size:8"`
	DefenseLook string `json:"defenseLook" gorm:"size:16"`
	Fallback    bool   `json:"fallback"`
	Reason      string `json:"reason" gorm:"size:255"`
	Event       string `json:"event" gorm:"size:32"`
	PassResult  string `json:"passResult" gorm:"size:16"`
	Overruled   bool   `json:"overruled"`
	YardsGained int    `json:"yardsGained"`
	EndYard     int    `json:"endYard"`
	FirstDown   bool   `json:"firstDown"`
	Outcome     string `json:"outcome" gorm:"size:32"`
	Frames      int    `json:"frames"`
	// BallPath is the ball's planar track in viewer coordinates.
	BallPath geom.LineString `json:"ballPath"`
}

func (*Play) TableName() string {
	return "plays"
}

// FrameData stores a drive's full frame sequence as JSON
type FrameData struct {
	ID      uint           `json:"id" gorm:"primarykey;autoIncrement"`
	DriveID uint           `json:"driveId" gorm:"uniqueIndex"`
	Drive   Drive          `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:DriveID;"`
	Count   int            `json:"count"`
	Frames  datatypes.JSON `json:"frames"`
}

func (*FrameData) TableName() string {
	return "frame_data"
}
