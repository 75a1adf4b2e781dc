// Package config loads runtime settings from an optional fable.yaml.
// Command-line flags take precedence over the file; the file takes
// precedence over the defaults here.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings that are not part of game content.
type Config struct {
	// SaveDir is where file-backed saves are written.
	SaveDir string `yaml:"save_dir"`
	// SaveBackend selects the save store: "file" or "sqlite".
	SaveBackend string `yaml:"save_backend"`
	// SaveDB is the SQLite database path when SaveBackend is "sqlite".
	SaveDB string `yaml:"save_db"`

	// Parser selects the command parser: "keyword" or "llm".
	Parser string `yaml:"parser"`
	// Model is the generative model name used by the llm parser.
	Model string `yaml:"model"`
	// APIKey for the llm parser. Falls back to the GEMINI_API_KEY
	// environment variable when empty.
	APIKey string `yaml:"api_key"`

	// Seed fixes the RNG seed; 0 means seed from the clock.
	Seed int64 `yaml:"seed"`

	Debug    bool   `yaml:"debug"`
	DebugLog string `yaml:"debug_log"`

	Tracing struct {
		Enabled  bool   `yaml:"enabled"`
		Endpoint string `yaml:"endpoint"`
	} `yaml:"tracing"`
}

// Default returns the settings used when no file or flags override them.
func Default() Config {
	cfg := Config{
		SaveDir:     "saves",
		SaveBackend: "file",
		SaveDB:      "saves.db",
		Parser:      "keyword",
		Model:       "gemini-2.0-flash",
		DebugLog:    "debug.log",
	}
	cfg.Tracing.Endpoint = "http://localhost:4318"
	return cfg
}

// Load reads path into the defaults. A missing file is not an error;
// the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.applyEnv()
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
}

func (c *Config) validate() error {
	switch c.SaveBackend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("unknown save_backend %q (want file or sqlite)", c.SaveBackend)
	}
	switch c.Parser {
	case "keyword", "llm":
	default:
		return fmt.Errorf("unknown parser %q (want keyword or llm)", c.Parser)
	}
	return nil
}
