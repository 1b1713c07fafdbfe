package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Flag defaults, mirrored from the CLI struct tags so that file values
// only replace flags the user did not set.
const (
	defaultBaseURL  = "http://localhost:5000"
	defaultMode     = "poll"
	defaultInterval = time.Second
	defaultTimeout  = 5 * time.Minute
	defaultOut      = "."
)

// FileConfig is the config file schema.
type FileConfig struct {
	BaseURL  string        `yaml:"baseURL" json:"baseURL"`
	Mode     string        `yaml:"mode" json:"mode"`
	DB       string        `yaml:"db" json:"db"`
	Interval time.Duration `yaml:"interval" json:"interval"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout"`
	Verbose  bool          `yaml:"verbose" json:"verbose"`

	Export struct {
		Dir          string `yaml:"dir" json:"dir"`
		EscapeQuotes bool   `yaml:"escapeQuotes" json:"escapeQuotes"`
	} `yaml:"export" json:"export"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".json":
		// Shadow the duration fields so JSON accepts "250ms" like YAML does.
		var raw struct {
			FileConfig
			Interval jsonDuration `json:"interval"`
			Timeout  jsonDuration `json:"timeout"`
		}
		if err := json.Unmarshal(b, &raw); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
		fc = raw.FileConfig
		fc.Interval = time.Duration(raw.Interval)
		fc.Timeout = time.Duration(raw.Timeout)
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	}
	return fc, nil
}

// jsonDuration decodes a duration string such as "2s", or a bare number of
// nanoseconds.
type jsonDuration time.Duration

func (d *jsonDuration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case nil:
		return nil
	case string:
		dur, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*d = jsonDuration(dur)
	case float64:
		*d = jsonDuration(time.Duration(v))
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
	return nil
}

// ApplyFileConfig overlays file values onto cli for every setting still at
// its flag default. Explicit flags and environment variables win.
func ApplyFileConfig(cli *CLI, fc FileConfig) {
	if cli == nil {
		return
	}

	if cli.BaseURL == defaultBaseURL && fc.BaseURL != "" {
		cli.BaseURL = fc.BaseURL
	}
	if cli.Mode == defaultMode && fc.Mode != "" {
		cli.Mode = fc.Mode
	}
	if cli.DB == "" && fc.DB != "" {
		cli.DB = fc.DB
	}
	if cli.Interval == defaultInterval && fc.Interval > 0 {
		cli.Interval = fc.Interval
	}
	if cli.Timeout == defaultTimeout && fc.Timeout > 0 {
		cli.Timeout = fc.Timeout
	}
	if !cli.Verbose && fc.Verbose {
		cli.Verbose = true
	}

	if fc.Export.Dir != "" {
		if cli.Extract.Out == defaultOut {
			cli.Extract.Out = fc.Export.Dir
		}
		if cli.Export.Out == defaultOut {
			cli.Export.Out = fc.Export.Dir
		}
		if cli.Shell.Out == defaultOut {
			cli.Shell.Out = fc.Export.Dir
		}
	}
	if fc.Export.EscapeQuotes {
		cli.Extract.EscapeQuotes = true
		cli.Export.EscapeQuotes = true
		cli.Shell.EscapeQuotes = true
	}
}
