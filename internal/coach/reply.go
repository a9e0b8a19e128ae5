package coach

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/supersim-ai/drivesim/pkg/core"
)

type jsonReply struct {
	Play      string `json:"play"`
	TrashTalk string `json:"trash_talk"`
	Reason    string `json:"reason"`
}

// ParseReply extracts a play call from free-form model output. It accepts an
// embedded JSON object {"play": ..., "trash_talk": ...} or a line of the form
// "ACTION: PASS | REASON: ...".
func ParseReply(text string) (Decision, error) {
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		var r jsonReply
		if err := json.Unmarshal([]byte(text[start:end+1]), &r); err == nil && r.Play != "" {
			pt, ok := core.ParsePlayType(r.Play)
			if !ok {
				return Decision{}, fmt.Errorf("%w: %q", ErrInvalidPlay, r.Play)
			}
			reason := r.TrashTalk
			if reason == "" {
				reason = r.Reason
			}
			return Decision{Call: core.PlayCall{Type: pt}, Reason: reason}, nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		upper := strings.ToUpper(line)
		idx := strings.Index(upper, "ACTION:")
		if idx < 0 {
			continue
		}
		rest := line[idx+len("ACTION:"):]
		action, reason := rest, ""
		if bar := strings.Index(rest, "|"); bar >= 0 {
			action = rest[:bar]
			tail := rest[bar+1:]
			if r := strings.Index(strings.ToUpper(tail), "REASON:"); r >= 0 {
				reason = strings.TrimSpace(tail[r+len("REASON:"):])
			}
		}
		action = strings.Trim(strings.TrimSpace(action), "*`\"'.")
		pt, ok := core.ParsePlayType(action)
		if !ok {
			return Decision{}, fmt.Errorf("%w: %q", ErrInvalidPlay, action)
		}
		return Decision{Call: core.PlayCall{Type: pt}, Reason: reason}, nil
	}
	return Decision{}, ErrMalformedReply
}
