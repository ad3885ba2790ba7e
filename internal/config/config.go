// Package config loads roadmap-content settings.
//
// Settings come from an optional HCL file, then flags override them. The
// API credential is only ever read from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/agentic-research/roadmap-content/internal/generate"
)

const (
	// DefaultFile is looked up in the working directory when no file is given.
	DefaultFile = ".roadmap-content.hcl"
	// DefaultRoadmapsDir is relative to the working directory.
	DefaultRoadmapsDir = "src/data/roadmaps"

	// APIKeyEnv holds the generation credential.
	APIKeyEnv = "OPEN_AI_API_KEY"
	// BaseURLEnv optionally overrides the API endpoint.
	BaseURLEnv = "OPEN_AI_BASE_URL"
)

// Config is the resolved configuration.
type Config struct {
	RoadmapsDir      string `hcl:"roadmaps_dir,optional"`
	Model            string `hcl:"model,optional"`
	APIBaseURL       string `hcl:"api_base_url,optional"`
	Concurrency      int    `hcl:"concurrency,optional"`
	StrictCollisions bool   `hcl:"strict_collisions,optional"`

	// APIKey comes from APIKeyEnv. Empty means placeholder mode.
	APIKey string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RoadmapsDir: DefaultRoadmapsDir,
		Model:       generate.DefaultModel,
	}
}

// Load reads path (or DefaultFile when path is empty and the file exists)
// over the defaults, then applies the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	src, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := Decode(path, src, &cfg); err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// no config file
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// Decode parses HCL src into cfg. Attributes absent from src keep the
// values already in cfg.
func Decode(filename string, src []byte, cfg *Config) error {
	var file Config
	if err := hclsimple.Decode(filename, src, nil, &file); err != nil {
		return fmt.Errorf("decode config %s: %w", filename, err)
	}
	if file.RoadmapsDir != "" {
		cfg.RoadmapsDir = file.RoadmapsDir
	}
	if file.Model != "" {
		cfg.Model = file.Model
	}
	cfg.APIBaseURL = file.APIBaseURL
	cfg.Concurrency = file.Concurrency
	cfg.StrictCollisions = file.StrictCollisions
	return nil
}

// ApplyEnv reads the credential and endpoint override through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	c.APIKey = getenv(APIKeyEnv)
	if u := getenv(BaseURLEnv); u != "" {
		c.APIBaseURL = u
	}
}

// Validate checks values that flags or the file may have set.
func (c Config) Validate() error {
	if c.RoadmapsDir == "" {
		return errors.New("roadmaps_dir must not be empty")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0, got %d", c.Concurrency)
	}
	return nil
}

// Generator returns the configured generator, or nil when no credential is
// set.
func (c Config) Generator() generate.Generator {
	if c.APIKey == "" {
		return nil
	}
	return generate.NewOpenAI(generate.Options{
		APIKey:  c.APIKey,
		BaseURL: c.APIBaseURL,
		Model:   c.Model,
	})
}
