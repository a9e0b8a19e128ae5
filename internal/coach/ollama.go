package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OllamaConfig configures the HTTP language-model coach.
type OllamaConfig struct {
	URL        string
	Model      string
	HTTPClient *http.Client
}

// Ollama asks a model served behind an Ollama-compatible /api/generate
// endpoint for the play call.
type Ollama struct {
	cfg OllamaConfig
}

// NewOllama builds the adapter. Missing fields get defaults.
func NewOllama(cfg OllamaConfig) *Ollama {
	if cfg.URL == "" {
		cfg.URL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &Ollama{cfg: cfg}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (o *Ollama) CallPlay(ctx context.Context, s Situation) (Decision, error) {
	body, err := json.Marshal(generateRequest{Model: o.cfg.Model, Prompt: Prompt(s)})
	if err != nil {
		return Decision{}, fmt.Errorf("marshal generate request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.URL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return Decision{}, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := o.cfg.HTTPClient.Do(req)
	if err != nil {
		return Decision{}, fmt.Errorf("generate request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return Decision{}, fmt.Errorf("generate request status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	var payload generateResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return Decision{}, fmt.Errorf("decode generate response: %w", err)
	}
	return ParseReply(payload.Response)
}

// Prompt renders the offensive coordinator prompt for s.
func Prompt(s Situation) string {
	var b strings.Builder
	b.WriteString("You are an offensive coordinator calling one play.\n\n")
	b.WriteString("GAME STATE:\n")
	fmt.Fprintf(&b, "- Down: %d\n", s.Down)
	fmt.Fprintf(&b, "- Yards to go: %d\n", s.YardsToGo)
	fmt.Fprintf(&b, "- Field position: own %d yard line\n", s.YardLine)
	fmt.Fprintf(&b, "- Score: %d - %d\n", s.Score.Of(s.Possession), s.Score.Of(s.Possession.Opponent()))
	if s.Strategy != "" {
		fmt.Fprintf(&b, "- Strategy: %s\n", s.Strategy)
	}
	if s.LastDefense != "" {
		fmt.Fprintf(&b, "- Defense last showed: %s\n", s.LastDefense)
	}
	b.WriteString("\nRespond with exactly one line:\n")
	b.WriteString("ACTION: <RUN or PASS or PUNT or FG> | REASON: <short explanation>\n")
	return b.String()
}
