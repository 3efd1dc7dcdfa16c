// Package settings loads the optional .tasker.yaml file.
package settings

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFilename is the settings file looked up in the working directory.
	DefaultFilename = ".tasker.yaml"
	// EnvPath overrides the settings file location.
	EnvPath = "TASKER_CONFIG"
	// DefaultTaskfile is the task-definition file used when none is configured.
	DefaultTaskfile = "Taskfile"
	// DefaultJournal is the run journal location used when none is configured.
	DefaultJournal = ".tasker/journal.json"
)

// Settings represents the structure of the .tasker.yaml file.
type Settings struct {
	// Taskfile is the task-definition file to load.
	Taskfile string `yaml:"taskfile"`
	// Journal is the JSON file receiving run records.
	Journal string `yaml:"journal"`
	// LogFile, when set, receives a copy of every log line.
	LogFile string `yaml:"log_file"`
	// Shell replaces the headless interpreter prefix, e.g. ["bash", "-c"].
	Shell []string `yaml:"shell"`
	// Terminal replaces the terminal emulator prefix, e.g. ["xterm", "-e"].
	Terminal []string `yaml:"terminal"`
}

// Default returns the settings used when no file exists.
func Default() *Settings {
	return &Settings{
		Taskfile: DefaultTaskfile,
		Journal:  DefaultJournal,
	}
}

// Discover returns the settings file path: $TASKER_CONFIG if set, else
// .tasker.yaml in cwd.
func Discover(cwd string) string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return filepath.Join(cwd, DefaultFilename)
}

// Load reads the settings file at path. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read settings file"), "path", path)
	}

	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse settings file"), "path", path)
	}

	if s.Taskfile == "" {
		s.Taskfile = DefaultTaskfile
	}
	if s.Journal == "" {
		s.Journal = DefaultJournal
	}
	return s, nil
}
