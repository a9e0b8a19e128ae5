// Package api talks to the results server that collects exported drives.
package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/supersim-ai/drivesim/pkg/core"
)

const (
	healthPath = "/healthcheck"
	drivesPath = "/api/v1/drives"

	requestTimeout = 30 * time.Second
)

// Client posts drive exports to the results server. Requests carry the key
// as a bearer token.
type Client struct {
	server string
	key    string
	http   *http.Client
}

// New returns a client for the server at serverURL.
func New(serverURL, key string) *Client {
	return &Client{
		server: strings.TrimRight(serverURL, "/"),
		key:    key,
		http:   &http.Client{Timeout: requestTimeout},
	}
}

// Healthcheck reports whether the server answers.
func (c *Client) Healthcheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.server+healthPath, nil)
	if err != nil {
		return fmt.Errorf("building healthcheck: %w", err)
	}
	if err := c.send(req); err != nil {
		return fmt.Errorf("healthcheck: %w", err)
	}
	return nil
}

// Upload streams the export at path to the server together with the drive
// summary fields the server indexes on.
func (c *Client) Upload(ctx context.Context, path string, meta core.UploadMetadata) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()

	body, form := io.Pipe()
	mw := multipart.NewWriter(form)
	go func() {
		form.CloseWithError(writeDriveForm(mw, f, meta))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.server+drivesPath, body)
	if err != nil {
		body.Close()
		return fmt.Errorf("building upload: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+c.key)
	}

	if err := c.send(req); err != nil {
		body.CloseWithError(err)
		return fmt.Errorf("uploading drive %s: %w", meta.DriveID, err)
	}
	return nil
}

func writeDriveForm(mw *multipart.Writer, export *os.File, meta core.UploadMetadata) error {
	fields := [][2]string{
		{"driveId", meta.DriveID},
		{"team", meta.Team},
		{"outcome", string(meta.Outcome)},
		{"xp", strconv.Itoa(meta.XP)},
	}
	for _, kv := range fields {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return err
		}
	}
	part, err := mw.CreateFormFile("file", filepath.Base(export.Name()))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, export); err != nil {
		return fmt.Errorf("copying export: %w", err)
	}
	return mw.Close()
}

// send performs req and treats any non-2xx answer as an error.
func (c *Client) send(req *http.Request) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("server answered %s", resp.Status)
	}
	return nil
}
