// Package convert maps drive results onto their GORM models
package convert

import (
	"encoding/json"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"

	"github.com/supersim-ai/drivesim/internal/geo"
	"github.com/supersim-ai/drivesim/internal/model"
	"github.com/supersim-ai/drivesim/pkg/core"
)

// logToJSON converts a []string to datatypes.JSON for DB storage.
func logToJSON(lines []string) datatypes.JSON {
	if len(lines) == 0 {
		return datatypes.JSON("[]")
	}
	data, _ := json.Marshal(lines)
	return datatypes.JSON(data)
}

// BallPath returns the planar track of the ball across the frames of one play.
func BallPath(frames []core.Frame, play int) geom.LineString {
	var pts []geom.XY
	for _, f := range frames {
		if f.Play != play {
			continue
		}
		pts = append(pts, geom.XY{X: f.Ball.X, Y: f.Ball.Y})
	}
	return geo.Path(pts)
}

// CoreToPlay converts a core.PlayRecord to a GORM model.Play.
func CoreToPlay(r core.PlayRecord, frames []core.Frame) model.Play {
	return model.Play{
		Index:       r.Index,
		Down:        r.Before.Down,
		YardsToGo:   r.Before.YardsToGo,
		YardLine:    r.Before.FieldPosition,
		PlayType:    string(r.Call.Type),
		Target:      string(r.Call.Target),
		DefenseLook: string(r.DefenseLook),
		Fallback:    r.Fallback,
		Reason:      r.Reason,
		Event:       string(r.Result.Event),
		PassResult:  string(r.PassResult),
		Overruled:   r.OverruledInterception,
		YardsGained: r.Result.YardsGained,
		EndYard:     r.Result.EndYard,
		FirstDown:   r.Result.FirstDown,
		Outcome:     string(r.Result.Outcome),
		Frames:      r.Frames,
		BallPath:    BallPath(frames, r.Index),
	}
}

// CoreToDrive converts a core.DriveResult to a GORM model.Drive with its plays.
// core.DriveResult.ID maps to GORM Drive.UUID.
func CoreToDrive(r core.DriveResult, teamID uint) model.Drive {
	plays := make([]model.Play, 0, len(r.Plays))
	for _, p := range r.Plays {
		plays = append(plays, CoreToPlay(p, r.Frames))
	}
	return model.Drive{
		UUID:          r.ID,
		TeamID:        teamID,
		Seed:          r.Seed,
		Outcome:       string(r.Outcome),
		Ending:        string(r.Ending),
		XP:            r.XP,
		FinalYardLine: r.FinalYardLine,
		ScoreHome:     r.Score.Home,
		ScoreAway:     r.Score.Away,
		Stats:         r.Stats,
		Log:           logToJSON(r.Log),
		StartedAt:     r.StartedAt,
		FinishedAt:    r.FinishedAt,
		Plays:         plays,
	}
}

// CoreToFrameData converts a drive's frames to a GORM model.FrameData.
func CoreToFrameData(r core.DriveResult, driveID uint) (model.FrameData, error) {
	frames := r.Frames
	if frames == nil {
		frames = []core.Frame{}
	}
	data, err := json.Marshal(frames)
	if err != nil {
		return model.FrameData{}, err
	}
	return model.FrameData{
		DriveID: driveID,
		Count:   len(r.Frames),
		Frames:  datatypes.JSON(data),
	}, nil
}

// ApplyDrive credits a finished drive to a team row.
func ApplyDrive(t *model.Team, r core.DriveResult) {
	p := TeamToCore(*t)
	p.Credit(r)
	t.XP, t.Level, t.Drives, t.Wins, t.Losses = p.XP, p.Level, p.Drives, p.Wins, p.Losses
}

// TeamToCore converts a GORM model.Team to a core.TeamProfile.
func TeamToCore(t model.Team) core.TeamProfile {
	return core.TeamProfile{
		Name:   t.Name,
		XP:     t.XP,
		Level:  t.Level,
		Drives: t.Drives,
		Wins:   t.Wins,
		Losses: t.Losses,
	}
}
