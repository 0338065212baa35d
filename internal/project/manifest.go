// Package project reads the bebop.toml manifest that describes a
// schema project: which files to compile, which generator to run, and
// where the output goes.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the canonical manifest file name.
const ManifestName = "bebop.toml"

// Manifest mirrors bebop.toml:
//
//	namespace = "music"
//	schemas   = ["schemas/music.bop"]
//
//	[generator]
//	name    = "go"
//	out_dir = "gen"
type Manifest struct {
	Namespace string    `toml:"namespace"`
	Schemas   []string  `toml:"schemas"`
	Generator Generator `toml:"generator"`

	// Dir is where the manifest was found; schema paths resolve
	// relative to it. Not part of the file.
	Dir string `toml:"-"`
}

// Generator selects and configures the back end.
type Generator struct {
	Name   string `toml:"name"`
	OutDir string `toml:"out_dir"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	m.Dir = filepath.Dir(path)
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

// Find walks up from dir looking for a manifest.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found above %s", ManifestName, dir)
		}
		dir = parent
	}
}

func (m *Manifest) validate() error {
	if len(m.Schemas) == 0 {
		return fmt.Errorf("manifest lists no schemas")
	}
	if m.Generator.Name == "" {
		return fmt.Errorf("manifest has no generator name")
	}
	if m.Generator.OutDir == "" {
		m.Generator.OutDir = "gen"
	}
	return nil
}

// SchemaPaths resolves the schema entries against the manifest directory.
func (m *Manifest) SchemaPaths() []string {
	out := make([]string, 0, len(m.Schemas))
	for _, s := range m.Schemas {
		if filepath.IsAbs(s) {
			out = append(out, s)
			continue
		}
		out = append(out, filepath.Join(m.Dir, s))
	}
	return out
}

// OutDir resolves the generator output directory.
func (m *Manifest) OutDir() string {
	if filepath.IsAbs(m.Generator.OutDir) {
		return m.Generator.OutDir
	}
	return filepath.Join(m.Dir, m.Generator.OutDir)
}
