package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/frontgen-dev/frontgen/internal/branding"
	"github.com/frontgen-dev/frontgen/internal/project"
)

// Record is the on-disk shape of the metadata file: the run config
// flattened to the top level plus the stamp fields.
type Record struct {
	project.Config
	CreatedAt         time.Time `json:"created_at"`
	ScaffolderVersion string    `json:"scaffolder_version"`
}

// Write stamps the project directory with a fresh metadata record. An
// existing record is replaced wholesale, so a re-run over the same
// directory always reflects the latest configuration.
func Write(dir string, cfg project.Config, version string) error {
	rec := Record{
		Config:            cfg,
		CreatedAt:         time.Now(),
		ScaffolderVersion: version,
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return &project.Error{Kind: project.KindFilesystem, Msg: "encoding scaffold metadata", Err: err}
	}
	path := filepath.Join(dir, branding.MetadataFile())
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return &project.Error{Kind: project.KindFilesystem, Msg: "writing " + branding.MetadataFile(), Err: err}
	}
	return nil
}

// Read loads the metadata record from a project directory.
func Read(dir string) (*Record, error) {
	path := filepath.Join(dir, branding.MetadataFile())
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", branding.MetadataFile(), err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", branding.MetadataFile(), err)
	}
	return &rec, nil
}
