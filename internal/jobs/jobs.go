// Package jobs loads the named commands beacon can run from a jobs.toml file.
package jobs

import (
	"errors"
	"fmt"
	"os"
	"sort"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultFile is the jobs file looked up in the working directory.
const DefaultFile = "beacon.toml"

// Sentinel errors for job lookup and validation.
var (
	// ErrUnknownJob indicates the requested job is not defined.
	ErrUnknownJob = errors.New("unknown job")
	// ErrEmptyCommand indicates a job has no command to run.
	ErrEmptyCommand = errors.New("job has an empty command")
)

// Job is one named command whose stderr is turned into a report.
type Job struct {
	Name       string   `toml:"-"`
	Command    []string `toml:"command"`
	Watch      []string `toml:"watch,omitempty"`
	NeedStdout bool     `toml:"need_stdout,omitempty"`
}

// Manifest is the parsed content of a jobs file.
type Manifest struct {
	DefaultJob string         `toml:"default_job"`
	Jobs       map[string]Job `toml:"jobs"`
}

// Defaults returns the built-in jobs.
func Defaults() *Manifest {
	return &Manifest{
		DefaultJob: "check",
		Jobs: map[string]Job{
			"check":  {Command: []string{"cargo", "check", "--color", "always"}},
			"clippy": {Command: []string{"cargo", "clippy", "--color", "always"}},
			"test":   {Command: []string{"cargo", "test", "--color", "always"}, NeedStdout: true},
			"doc":    {Command: []string{"cargo", "doc", "--color", "always", "--no-deps"}},
		},
	}
}

// Load reads the jobs file at path and layers it over the built-in jobs. A
// missing file yields the defaults unchanged.
func Load(path string) (*Manifest, error) {
	m := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file Manifest
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if file.DefaultJob != "" {
		m.DefaultJob = file.DefaultJob
	}
	for name, job := range file.Jobs {
		if len(job.Command) == 0 {
			return nil, fmt.Errorf("%s: job %q: %w", path, name, ErrEmptyCommand)
		}
		m.Jobs[name] = job
	}
	if _, ok := m.Jobs[m.DefaultJob]; !ok {
		return nil, fmt.Errorf("%s: default job %q: %w", path, m.DefaultJob, ErrUnknownJob)
	}
	return m, nil
}

// Save writes the manifest to path as TOML.
func Save(path string, m *Manifest) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding jobs: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Lookup returns the job called name, or the default job when name is empty.
func (m *Manifest) Lookup(name string) (Job, error) {
	if name == "" {
		name = m.DefaultJob
	}
	job, ok := m.Jobs[name]
	if !ok {
		return Job{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownJob, name, m.Names())
	}
	job.Name = name
	return job, nil
}

// Names returns the defined job names in sorted order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Jobs))
	for name := range m.Jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
