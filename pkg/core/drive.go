// pkg/core/drive.go
package core

import "time"

// DriveOutcome is the orchestrator's verdict on a drive.
type DriveOutcome string

const (
	Win     DriveOutcome = "win"
	Lose    DriveOutcome = "lose"
	Aborted DriveOutcome = "aborted"
)

// DriveStats accumulates per-drive counters.
type DriveStats struct {
	Plays         int `json:"plays"`
	TotalYards    int `json:"totalYards"`
	RushingYards  int `json:"rushingYards"`
	PassingYards  int `json:"passingYards"`
	Completions   int `json:"completions"`
	Incompletions int `json:"incompletions"`
	Interceptions int `json:"interceptions"`
	FirstDowns    int `json:"firstDowns"`
	FallbackCalls int `json:"fallbackCalls"`
}

// PlayRecord summarizes one play of a drive.
type PlayRecord struct {
	Index       int         `json:"index"`
	Before      DriveState  `json:"before"`
	Call        PlayCall    `json:"call"`
	Reason      string      `json:"reason,omitempty"`
	Fallback    bool        `json:"fallback,omitempty"`
	DefenseLook DefenseCall `json:"defenseLook"`
	PassResult  PassResult  `json:"passResult,omitempty"`
	Frames      int         `json:"frames"`
	Result      PlayResult  `json:"result"`

	// OverruledInterception marks a play whose frames show an interception
	// that the state machine did not rule a turnover.
	OverruledInterception bool `json:"overruledInterception,omitempty"`
}

// DriveResult is the artifact returned for one drive request.
type DriveResult struct {
	ID            string       `json:"id"`
	Team          string       `json:"team"`
	Seed          int64        `json:"seed"`
	Outcome       DriveOutcome `json:"outcome"`
	Ending        Outcome      `json:"ending"`
	Stats         DriveStats   `json:"stats"`
	XP            int          `json:"xp"`
	FinalYardLine int          `json:"finalYardLine"`
	Score         Score        `json:"score"`
	Plays         []PlayRecord `json:"plays"`
	Frames        []Frame      `json:"frames"`
	Log           []string     `json:"log"`
	StartedAt     time.Time    `json:"startedAt"`
	FinishedAt    time.Time    `json:"finishedAt"`
}

// LevelThresholds maps coach level to the cumulative XP required to reach it.
var LevelThresholds = []struct {
	Level int
	XP    int
}{
	{5, 2000},
	{4, 1000},
	{3, 500},
	{2, 200},
}

// CoachLevel returns the level a coach with xp experience has reached.
func CoachLevel(xp int) int {
	for _, th := range LevelThresholds {
		if xp >= th.XP {
			return th.Level
		}
	}
	return 1
}

// TeamProfile is a coach's cumulative record across drives.
type TeamProfile struct {
	Name   string `json:"name"`
	XP     int    `json:"xp"`
	Level  int    `json:"level"`
	Drives int    `json:"drives"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// Credit folds a finished drive into the profile. Aborted drives only count
// toward the drive total.
func (p *TeamProfile) Credit(r DriveResult) {
	p.Drives++
	switch r.Outcome {
	case Win:
		p.Wins++
	case Lose:
		p.Losses++
	}
	p.XP += r.XP
	p.Level = CoachLevel(p.XP)
}

// UploadMetadata describes an exported drive file for upload.
type UploadMetadata struct {
	DriveID string       `json:"driveId"`
	Team    string       `json:"team"`
	Outcome DriveOutcome `json:"outcome"`
	Ending  Outcome      `json:"ending"`
	XP      int          `json:"xp"`
	Plays   int          `json:"plays"`
}

// Metadata returns the upload metadata of r.
func (r DriveResult) Metadata() UploadMetadata {
	return UploadMetadata{
		DriveID: r.ID,
		Team:    r.Team,
		Outcome: r.Outcome,
		Ending:  r.Ending,
		XP:      r.XP,
		Plays:   r.Stats.Plays,
	}
}
