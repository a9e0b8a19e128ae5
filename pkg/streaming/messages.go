// Package streaming encodes a drive as a newline-delimited JSON message stream
// for viewers that replay it play by play.
package streaming

import (
	"encoding/json"
	"time"

	"github.com/supersim-ai/drivesim/pkg/core"
)

// Message type constants matching the streaming protocol.
const (
	TypeDriveStart = "drive_start"
	TypePlay       = "play"
	TypeFrame      = "frame"
	TypeDriveEnd   = "drive_end"
)

// Envelope wraps every message on the stream.
type Envelope struct {
	Type    string          `json:"type"`
	Seq     int             `json:"seq"`
	Payload json.RawMessage `json:"payload"`
}

// DriveStartPayload opens a drive.
type DriveStartPayload struct {
	ID        string    `json:"id"`
	Team      string    `json:"team"`
	Seed      int64     `json:"seed"`
	Start     core.HUD  `json:"start"`
	StartedAt time.Time `json:"startedAt"`
}

// PlayPayload carries one play summary. Its frames follow as frame messages.
type PlayPayload struct {
	Play core.PlayRecord `json:"play"`
}

// FramePayload carries one physics tick.
type FramePayload struct {
	Frame core.Frame `json:"frame"`
}

// DriveEndPayload closes a drive with its verdict.
type DriveEndPayload struct {
	ID            string            `json:"id"`
	Outcome       core.DriveOutcome `json:"outcome"`
	Ending        core.Outcome      `json:"ending"`
	XP            int               `json:"xp"`
	FinalYardLine int               `json:"finalYardLine"`
	Score         core.Score        `json:"score"`
	Stats         core.DriveStats   `json:"stats"`
	Log           []string          `json:"log"`
}
