// Package config loads vbcore settings from vbcore.toml or vbcore.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileNames are looked up in this order by Find.
var FileNames = []string{"vbcore.toml", "vbcore.yaml", "vbcore.yml"}

var (
	// ErrUnknownFormat is returned for config files that are neither TOML nor YAML.
	ErrUnknownFormat = errors.New("unknown config format")
	// ErrInvalid wraps validation failures.
	ErrInvalid = errors.New("invalid config")
)

// Write-back policies for Newline and Encoding.
const (
	Keep         = "keep"
	NewlineLF    = "lf"
	NewlineCRLF  = "crlf"
	EncodingUTF8 = "utf-8"
	EncodingANSI = "windows-1252"
)

type Config struct {
	// Project is the VBA project name used to qualify module names.
	Project string `toml:"project" yaml:"project"`
	// Newline controls line endings of files written back: keep, lf or crlf.
	Newline string `toml:"newline" yaml:"newline"`
	// Encoding controls the encoding of files written back: keep, utf-8 or windows-1252.
	Encoding string        `toml:"encoding" yaml:"encoding"`
	Log      LogConfig     `toml:"log" yaml:"log"`
	Journal  JournalConfig `toml:"journal" yaml:"journal"`

	// path of the file the config was read from, empty for defaults
	path string
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn, error
	Format string `toml:"format" yaml:"format"` // console или json
}

type JournalConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Dir     string `toml:"dir" yaml:"dir"`
}

func Default() *Config {
	return &Config{
		Project:  "VBAProject",
		Newline:  Keep,
		Encoding: Keep,
		Log:      LogConfig{Level: "warn", Format: "console"},
		Journal:  JournalConfig{Enabled: true, Dir: ".vbcore/journal"},
	}
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string { return c.path }

// JournalDir resolves the journal directory against the config file location.
func (c *Config) JournalDir() string {
	if c.Journal.Dir == "" || filepath.IsAbs(c.Journal.Dir) || c.path == "" {
		return c.Journal.Dir
	}
	return filepath.Join(filepath.Dir(c.path), c.Journal.Dir)
}

// Load reads path over the defaults. The format follows the extension.
func Load(path string) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	case ".yaml", ".yml":
		// #nosec G304 -- path is provided by the caller
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	cfg.path = path
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find walks up from startDir to the nearest vbcore config file.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Resolve loads path, or the nearest config above startDir, or the defaults.
func Resolve(path, startDir string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	found, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		cfg := Default()
		cfg.applyEnvOverrides()
		return cfg, nil
	}
	return Load(found)
}

func (c *Config) Validate() error {
	var errs []error
	if c.Project == "" {
		errs = append(errs, errors.New("project must not be empty"))
	}
	switch c.Newline {
	case Keep, NewlineLF, NewlineCRLF:
	default:
		errs = append(errs, fmt.Errorf("newline %q (want keep, lf or crlf)", c.Newline))
	}
	switch c.Encoding {
	case Keep, EncodingUTF8, EncodingANSI:
	default:
		errs = append(errs, fmt.Errorf("encoding %q (want keep, utf-8 or windows-1252)", c.Encoding))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q", c.Log.Format))
	}
	if c.Journal.Enabled && c.Journal.Dir == "" {
		errs = append(errs, errors.New("journal.dir must be set when the journal is enabled"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("VBCORE_PROJECT"); v != "" {
		c.Project = v
	}
	if v := os.Getenv("VBCORE_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}
