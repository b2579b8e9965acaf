package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jckenny59/COS568-LI-SP25/pkg/fsutil"
)

// Artifact is one file a report run produced.
type Artifact struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

const (
	artifactChart   = "chart"
	artifactTable   = "table"
	artifactSummary = "summary"
)

// manifestName is the artifact index written per run.
const manifestName = "index.json"

// writeManifest writes index.json listing the artifacts a report run
// produced, so downstream consumers need not guess at file names.
func writeManifest(outputDir, command string, artifacts []Artifact) error {
	manifest := struct {
		Command     string     `json:"command"`
		GeneratedAt time.Time  `json:"generated_at"`
		Artifacts   []Artifact `json:"artifacts"`
	}{
		Command:     command,
		GeneratedAt: time.Now().UTC(),
		Artifacts:   artifacts,
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	return fsutil.WriteFile(filepath.Join(outputDir, manifestName), data)
}
