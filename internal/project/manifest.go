package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/TablePlan/internal/model"
)

// ErrInvalidManifest is returned for manifests that parse but cannot run.
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest describes a batch run: shared settings plus input/output pairs.
//
//	strategy = "spaced"
//	format   = "chars"
//	workers  = 4
//
//	[[job]]
//	input  = "level3/in1.txt"
//	output = "out/level3_1.txt"
type Manifest struct {
	Strategy string `toml:"strategy"`
	Format   string `toml:"format"`
	Workers  int    `toml:"workers"`
	FillGaps *bool  `toml:"fill_gaps"`
	Jobs     []Job  `toml:"job"`
}

// Job is one input file and where its plans are written. An empty Format
// uses the manifest's format.
type Job struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`
	Format string `toml:"format"`
}

// LoadManifest reads a TOML manifest. Relative job paths are resolved
// against the manifest's directory and a missing output defaults to the
// input path with ".out" appended.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	if _, err := model.ParseStrategy(m.Strategy); err != nil {
		return Manifest{}, fmt.Errorf("%w: %s: %v", ErrInvalidManifest, path, err)
	}
	if len(m.Jobs) == 0 {
		return Manifest{}, fmt.Errorf("%w: %s: no [[job]] entries", ErrInvalidManifest, path)
	}

	base := filepath.Dir(path)
	for i := range m.Jobs {
		job := &m.Jobs[i]
		if job.Input == "" {
			return Manifest{}, fmt.Errorf("%w: %s: job %d has no input", ErrInvalidManifest, path, i+1)
		}
		job.Input = resolve(base, job.Input)
		if job.Output == "" {
			job.Output = job.Input + ".out"
		} else {
			job.Output = resolve(base, job.Output)
		}
		if job.Format == "" {
			job.Format = m.Format
		}
	}
	return m, nil
}

// Settings converts the manifest's engine options, starting from base.
func (m Manifest) Settings(base model.PlanSettings) model.PlanSettings {
	s := base
	if strategy, err := model.ParseStrategy(m.Strategy); err == nil && m.Strategy != "" {
		s.Strategy = strategy
	}
	if m.FillGaps != nil {
		s.FillGaps = *m.FillGaps
	}
	return s
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
