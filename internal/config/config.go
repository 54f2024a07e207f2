// Package config resolves runtime settings for govassess.
//
// Precedence, lowest to highest: built-in defaults, an optional
// govassess.yaml in the data directory, then GOVASSESS_* environment
// variables (nested keys use "_", e.g. GOVASSESS_LOG_LEVEL).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/HendryAvila/govassess/internal/catalog"
)

const (
	// EnvPrefix is the prefix for environment overrides.
	EnvPrefix = "GOVASSESS"
	// FileName is the optional config file name (without extension).
	FileName = "govassess"
)

// Config holds every tunable setting.
type Config struct {
	DataDir          string    `mapstructure:"data_dir"`
	AnswersFile      string    `mapstructure:"answers_file"`
	HistoryDB        string    `mapstructure:"history_db"`
	ExportDir        string    `mapstructure:"export_dir"`
	QuestionsPerPage int       `mapstructure:"questions_per_page"`
	Log              LogConfig `mapstructure:"log"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
	// File enables a rotated JSON log at this path when non-empty.
	File string `mapstructure:"file"`
}

// AnswersPath returns the absolute answers file path.
func (c Config) AnswersPath() string {
	return c.resolve(c.AnswersFile)
}

// HistoryPath returns the absolute report history database path.
func (c Config) HistoryPath() string {
	return c.resolve(c.HistoryDB)
}

// ExportPath returns the directory exported reports are written to.
func (c Config) ExportPath() string {
	return c.resolve(c.ExportDir)
}

func (c Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:          filepath.Join(home, ".govassess"),
		AnswersFile:      "answers.json",
		HistoryDB:        "history.db",
		ExportDir:        "exports",
		QuestionsPerPage: catalog.DefaultPerPage,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load resolves the configuration from defaults, the optional config file
// and the environment.
func Load() (Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so AutomaticEnv is consulted on Unmarshal.
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("answers_file", def.AnswersFile)
	v.SetDefault("history_db", def.HistoryDB)
	v.SetDefault("export_dir", def.ExportDir)
	v.SetDefault("questions_per_page", def.QuestionsPerPage)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(v.GetString("data_dir"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: reading %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("config: data_dir is required")
	}
	if strings.TrimSpace(c.AnswersFile) == "" {
		return errors.New("config: answers_file is required")
	}
	if c.QuestionsPerPage < 1 {
		return fmt.Errorf("config: questions_per_page must be positive, got %d", c.QuestionsPerPage)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}
