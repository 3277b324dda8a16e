package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"nfrtrace/internal/domain"
	"nfrtrace/internal/preprocess"
)

// VariantConfig pairs a preprocessing variant with its binarization threshold.
type VariantConfig struct {
	Name      string  `yaml:"name"`
	Threshold float64 `yaml:"threshold"`
}

// VectorizerConfig configures the TF-IDF analyzer.
type VectorizerConfig struct {
	Lowercase   *bool `yaml:"lowercase,omitempty"`
	MinTokenLen int   `yaml:"min_token_len"`
}

// OutputConfig controls which CSV reports are written and where.
type OutputConfig struct {
	Dir               string `yaml:"dir"`
	WritePreprocessed bool   `yaml:"write_preprocessed"`
	WriteWeights      bool   `yaml:"write_weights"`
}

// HistoryConfig configures the SQLite run history.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LogConfig selects the logger flavour and level.
type LogConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Requirements string           `yaml:"requirements"`
	Gold         string           `yaml:"gold,omitempty"`
	NFRCount     int              `yaml:"nfr_count"`
	TopN         int              `yaml:"top_n"`
	Variants     []VariantConfig  `yaml:"variants"`
	Vectorizer   VectorizerConfig `yaml:"vectorizer"`
	Output       OutputConfig     `yaml:"output"`
	History      HistoryConfig    `yaml:"history"`
	Log          LogConfig        `yaml:"log"`
}

// LowercaseEnabled reports whether the analyzer folds case (default true).
func (v VectorizerConfig) LowercaseEnabled() bool {
	return v.Lowercase == nil || *v.Lowercase
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./nfrtrace.yaml first, then ~/.config/nfrtrace/config.yaml.
// If neither exists, it writes defaults to ~/.config/nfrtrace/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "nfrtrace.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := DefaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnvOverrides(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks values the pipeline cannot run with.
func (c *AppConfig) Validate() error {
	if c.NFRCount < 1 {
		return fmt.Errorf("nfr_count must be >= 1, got %d", c.NFRCount)
	}
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be >= 1, got %d", c.TopN)
	}
	if len(c.Variants) == 0 {
		return errors.New("at least one variant is required")
	}
	seen := make(map[string]bool, len(c.Variants))
	for _, v := range c.Variants {
		pv, err := preprocess.ParseVariant(v.Name)
		if err != nil {
			return err
		}
		if seen[string(pv)] {
			return fmt.Errorf("variant %s listed twice", pv)
		}
		seen[string(pv)] = true
	}
	return nil
}

// DefaultUserConfigPath is ~/.config/nfrtrace/config.yaml.
func DefaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "nfrtrace", "config.yaml"), nil
}

// Default returns a fresh default configuration.
func Default() *AppConfig { return defaultConfig() }

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		NFRCount: domain.DefaultNFRCount,
		TopN:     10,
		Variants: []VariantConfig{
			{Name: string(preprocess.V1), Threshold: 0.14},
			{Name: string(preprocess.V2), Threshold: 0.11},
			{Name: string(preprocess.V3), Threshold: 0.09},
		},
		Vectorizer: VectorizerConfig{MinTokenLen: 2},
		Output:     OutputConfig{Dir: "out"},
		History:    HistoryConfig{Path: defaultHistoryPath()},
		Log:        LogConfig{Env: "local", Level: "info"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.NFRCount == 0 {
		cfg.NFRCount = def.NFRCount
	}
	if cfg.TopN == 0 {
		cfg.TopN = def.TopN
	}
	if len(cfg.Variants) == 0 {
		cfg.Variants = def.Variants
	}
	if cfg.Vectorizer.MinTokenLen == 0 {
		cfg.Vectorizer.MinTokenLen = def.Vectorizer.MinTokenLen
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = def.Output.Dir
	}
	if cfg.History.Path == "" {
		cfg.History.Path = def.History.Path
	}
	if cfg.Log.Env == "" {
		cfg.Log.Env = def.Log.Env
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if lvl := os.Getenv("NFRTRACE_LOG_LEVEL"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if p := os.Getenv("NFRTRACE_HISTORY"); p != "" {
		cfg.History.Enabled = true
		cfg.History.Path = p
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "nfrtrace-history.db"
	}
	return filepath.Join(home, ".local", "share", "nfrtrace", "history.db")
}
