package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlayType(t *testing.T) {
	tests := []struct {
		in   string
		want PlayType
		ok   bool
	}{
		{"run", Run, true},
		{" PASS ", Pass, true},
		{"Punt", Punt, true},
		{"fg", FG, true},
		{"field_goal", FG, true},
		{"KNEEL", PlayType("KNEEL"), false},
		{"", PlayType(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePlayType(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScore(t *testing.T) {
	var s Score
	s.Add(Home, 7)
	s.Add(Away, 3)
	s.Add(Home, 3)
	assert.Equal(t, 10, s.Of(Home))
	assert.Equal(t, 3, s.Of(Away))
	assert.Equal(t, Away, Home.Opponent())
	assert.Equal(t, Home, Away.Opponent())
}

func TestOutcome(t *testing.T) {
	assert.False(t, InProgress.Terminal())
	for _, o := range []Outcome{Touchdown, TurnoverOnDowns, Turnover, Punted, FieldGoal, MissedFieldGoal} {
		assert.True(t, o.Terminal(), o)
	}
	assert.True(t, Touchdown.Scoring())
	assert.True(t, FieldGoal.Scoring())
	assert.False(t, MissedFieldGoal.Scoring())
}

func TestPlayCallPower(t *testing.T) {
	assert.Equal(t, 1.0, PlayCall{Type: Pass}.Power())
	assert.Equal(t, 1.4, PlayCall{Type: Pass, ThrowPower: 1.4}.Power())
}

func TestCoachLevel(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1}, {199, 1}, {200, 2}, {499, 2}, {500, 3}, {1000, 4}, {1999, 4}, {2000, 5}, {9000, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CoachLevel(tt.xp), "xp=%d", tt.xp)
	}
}

func TestTeamProfileCredit(t *testing.T) {
	p := TeamProfile{Name: "tigers"}
	p.Credit(DriveResult{Outcome: Win, XP: 130})
	p.Credit(DriveResult{Outcome: Lose, XP: 75})
	p.Credit(DriveResult{Outcome: Aborted})

	assert.Equal(t, TeamProfile{Name: "tigers", XP: 205, Level: 2, Drives: 3, Wins: 1, Losses: 1}, p)
}

func TestDriveResultMetadata(t *testing.T) {
	r := DriveResult{ID: "d1", Team: "tigers", Outcome: Win, Ending: FieldGoal, XP: 40, Stats: DriveStats{Plays: 6}}
	assert.Equal(t, UploadMetadata{DriveID: "d1", Team: "tigers", Outcome: Win, Ending: FieldGoal, XP: 40, Plays: 6}, r.Metadata())
}
