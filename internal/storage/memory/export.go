// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/supersim-ai/drivesim/pkg/core"
)

// ExportVersion is bumped whenever DriveExport changes shape.
const ExportVersion = "1"

// DriveExport is the root JSON structure of an exported drive
type DriveExport struct {
	Version string           `json:"version"`
	Drive   core.DriveResult `json:"drive"`
}

// exportFileName builds "<team>_<start>_<id>.json[.gz]".
func exportFileName(r core.DriveResult, compress bool) string {
	team := r.Team
	if team == "" {
		team = "drive"
	}
	team = strings.NewReplacer(" ", "_", ":", "_", "/", "_").Replace(team)
	id := r.ID
	if len(id) > 8 {
		id = id[:8]
	}
	name := fmt.Sprintf("%s_%s_%s.json", team, r.StartedAt.Format("20060102_150405"), id)
	if compress {
		name += ".gz"
	}
	return name
}

// exportJSON writes the drive to a (optionally gzipped) JSON file. Caller holds mu.
func (b *Backend) exportJSON(r core.DriveResult) error {
	if !b.cfg.IncludeFrames {
		r.Frames = nil
	}
	export := DriveExport{Version: ExportVersion, Drive: r}

	outputPath := filepath.Join(b.cfg.OutputDir, exportFileName(r, b.cfg.CompressOutput))

	// Ensure output directory exists
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var err error
	if b.cfg.CompressOutput {
		err = writeGzipJSON(outputPath, export)
	} else {
		err = writeJSON(outputPath, export)
	}
	if err != nil {
		return err
	}

	b.lastExportPath = outputPath
	b.lastMeta = r.Metadata()
	return nil
}

// ReadExport loads a drive written by the memory backend.
func ReadExport(path string) (DriveExport, error) {
	var export DriveExport
	f, err := os.Open(path)
	if err != nil {
		return export, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var dec *json.Decoder
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return export, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		dec = json.NewDecoder(gz)
	} else {
		dec = json.NewDecoder(f)
	}
	if err := dec.Decode(&export); err != nil {
		return export, fmt.Errorf("failed to decode export: %w", err)
	}
	return export, nil
}

func writeJSON(path string, data DriveExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	return encoder.Encode(data)
}

func writeGzipJSON(path string, data DriveExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	encoder := json.NewEncoder(gzWriter)
	return encoder.Encode(data)
}
