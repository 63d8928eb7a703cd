// Package config loads the embedgen manifest. A manifest names the emitter
// options and, optionally, a list of jobs that can be generated in one run.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/embedgen/internal/embed"
)

// FileNames are the manifest names looked up in a project directory.
var FileNames = []string{"embedgen.yml", "embedgen.yaml"}

// userConfigPath is searched for in the XDG config directories by
// LoadWithUserFallback.
const userConfigPath = "embedgen/embedgen.yml"

// JobConfig describes one output file and its ordered inputs.
type JobConfig struct {
	Output string   `yaml:"output"`
	Inputs []string `yaml:"inputs"`
}

// Manifest holds settings loaded from embedgen.yml.
type Manifest struct {
	Tool            string      `yaml:"tool,omitempty"`
	Namespaces      []string    `yaml:"namespaces,omitempty"`
	ChunkSize       int         `yaml:"chunkSize,omitempty"`
	DisabledWarning int         `yaml:"disabledWarning,omitempty"`
	Jobs            []JobConfig `yaml:"jobs,omitempty"`

	// Path is the file the manifest was read from, empty for the zero value.
	Path string `yaml:"-"`
}

// Load attempts to read embedgen.yml or embedgen.yaml from the given
// directory. Returns a zero-value manifest (not an error) if no file exists.
func Load(dir string) (*Manifest, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		m, err := LoadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return m, err
	}
	return &Manifest{}, nil
}

// LoadWithUserFallback behaves like Load, but when dir has no manifest it
// also searches the XDG config directories for embedgen/embedgen.yml.
func LoadWithUserFallback(dir string) (*Manifest, error) {
	m, err := Load(dir)
	if err != nil || m.Path != "" {
		return m, err
	}
	if path, err := xdg.SearchConfigFile(userConfigPath); err == nil {
		return LoadFile(path)
	}
	return m, nil
}

// LoadFile reads one manifest file. Relative job paths are resolved against
// the manifest's directory.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	m.Path = path
	m.resolve(filepath.Dir(path))
	return m, nil
}

// Parse decodes manifest YAML. Paths are left as written.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) resolve(base string) {
	for i := range m.Jobs {
		job := &m.Jobs[i]
		if job.Output != "" && !filepath.IsAbs(job.Output) {
			job.Output = filepath.Join(base, job.Output)
		}
		for j, in := range job.Inputs {
			if !filepath.IsAbs(in) {
				job.Inputs[j] = filepath.Join(base, in)
			}
		}
	}
}

// Validate reports the first problem that would make the manifest unusable.
func (m *Manifest) Validate() error {
	if m.ChunkSize < 0 {
		return fmt.Errorf("chunkSize must be positive, got %d", m.ChunkSize)
	}
	seen := make(map[string]int, len(m.Jobs))
	for i, job := range m.Jobs {
		if job.Output == "" {
			return fmt.Errorf("job %d: output is required", i)
		}
		if len(job.Inputs) == 0 {
			return fmt.Errorf("job %d (%s): at least one input is required", i, job.Output)
		}
		if prev, ok := seen[job.Output]; ok {
			return fmt.Errorf("job %d: output %s already produced by job %d", i, job.Output, prev)
		}
		seen[job.Output] = i
	}
	return nil
}

// Options merges the manifest's settings over embed.DefaultOptions.
func (m *Manifest) Options() embed.Options {
	opts := embed.DefaultOptions()
	if m.Tool != "" {
		opts.Tool = m.Tool
	}
	if m.Namespaces != nil {
		opts.Namespaces = m.Namespaces
	}
	if m.ChunkSize > 0 {
		opts.ChunkSize = m.ChunkSize
	}
	if m.DisabledWarning > 0 {
		opts.DisabledWarning = m.DisabledWarning
	}
	return opts
}

// BuildJobs converts the manifest's jobs into embed jobs, preserving order.
func (m *Manifest) BuildJobs() []embed.Job {
	jobs := make([]embed.Job, len(m.Jobs))
	for i, jc := range m.Jobs {
		jobs[i] = embed.NewJob(jc.Output, jc.Inputs)
	}
	return jobs
}
