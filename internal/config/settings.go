// Package config turns viper keys into the immutable Settings of one process.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/homework-heap/internal/common"
	"github.com/Veraticus/homework-heap/internal/llm"
	"github.com/spf13/viper"
)

// ProviderRules selects the offline keyword classifier instead of a language model.
const ProviderRules = "rules"

// Defaults.
const (
	DefaultScanFolder    = "Downloads"
	DefaultExtension     = ".pdf"
	DefaultHoldingFolder = "Old Schoolwork"
	DefaultCancelKeyword = "STOP"
	DefaultProvider      = llm.ProviderOpenAI
	DefaultDatabasePath  = "$HOME/.local/share/homeworkheap/history.db"
	DefaultLockPath      = "$HOME/.local/share/homeworkheap/run.lock"
)

// ClassificationSettings configures the offline keyword classifier.
type ClassificationSettings struct {
	// Keywords replaces the built-in keyword list when non-empty.
	Keywords []string
	// Patterns are extra case-insensitive regular expressions.
	Patterns []string
}

// Settings is the complete, immutable configuration of one process.
// It is built once at startup; nothing downstream reads the environment again.
type Settings struct {
	Home           string
	ScanFolder     string
	Extension      string
	HoldingFolder  string
	CancelKeyword  string
	DatabasePath   string
	LockPath       string
	Classification ClassificationSettings
	LLM            llm.Config
	HistoryEnabled bool
}

// ScanRoot returns the directory a run organizes.
func (s Settings) ScanRoot() string {
	return filepath.Join(s.Home, s.ScanFolder)
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("scan.folder", DefaultScanFolder)
	v.SetDefault("scan.extension", DefaultExtension)
	v.SetDefault("holding.name", DefaultHoldingFolder)
	v.SetDefault("review.cancel_keyword", DefaultCancelKeyword)
	v.SetDefault("llm.provider", DefaultProvider)
	v.SetDefault("history.enabled", true)
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("lock.path", DefaultLockPath)
}

// Load builds Settings from v. API keys come from the config file first and then
// from OPENAI_API_KEY or ANTHROPIC_API_KEY.
func Load(v *viper.Viper) (Settings, error) {
	SetDefaults(v)

	home, err := os.UserHomeDir()
	if err != nil {
		return Settings{}, fmt.Errorf("%w: failed to get home directory: %v", common.ErrMissingConfig, err)
	}

	s := Settings{
		Home:           home,
		ScanFolder:     strings.TrimSpace(v.GetString("scan.folder")),
		Extension:      strings.TrimSpace(v.GetString("scan.extension")),
		HoldingFolder:  strings.TrimSpace(v.GetString("holding.name")),
		CancelKeyword:  strings.TrimSpace(v.GetString("review.cancel_keyword")),
		DatabasePath:   ExpandPath(v.GetString("database.path"), home),
		LockPath:       ExpandPath(v.GetString("lock.path"), home),
		HistoryEnabled: v.GetBool("history.enabled"),
		Classification: ClassificationSettings{
			Keywords: v.GetStringSlice("classification.keywords"),
			Patterns: v.GetStringSlice("classification.patterns"),
		},
		LLM: llm.Config{
			Provider:       strings.ToLower(strings.TrimSpace(v.GetString("llm.provider"))),
			Model:          v.GetString("llm.model"),
			BaseURL:        v.GetString("llm.base_url"),
			ClaudeCodePath: ExpandPath(v.GetString("llm.claude_code_path"), home),
			Timeout:        v.GetDuration("llm.timeout"),
			MaxTokens:      v.GetInt("llm.max_tokens"),
		},
	}
	if v.IsSet("llm.temperature") {
		temperature := v.GetFloat64("llm.temperature")
		s.LLM.Temperature = &temperature
	}
	if len(s.Classification.Keywords) == 0 {
		s.Classification.Keywords = nil
	}

	if err := validateNames(s); err != nil {
		return Settings{}, err
	}

	switch s.LLM.Provider {
	case llm.ProviderOpenAI:
		s.LLM.APIKey = firstNonEmpty(v.GetString("llm.openai_api_key"), os.Getenv("OPENAI_API_KEY"))
		if s.LLM.APIKey == "" {
			return Settings{}, fmt.Errorf("%w: OpenAI API key not found in config or OPENAI_API_KEY environment variable", common.ErrMissingConfig)
		}
	case llm.ProviderAnthropic:
		s.LLM.APIKey = firstNonEmpty(v.GetString("llm.anthropic_api_key"), os.Getenv("ANTHROPIC_API_KEY"))
		if s.LLM.APIKey == "" {
			return Settings{}, fmt.Errorf("%w: anthropic API key not found in config or ANTHROPIC_API_KEY environment variable", common.ErrMissingConfig)
		}
	case llm.ProviderClaudeCode, ProviderRules:
		// No credentials needed.
	default:
		return Settings{}, fmt.Errorf("%w: unsupported provider %q", common.ErrInvalidConfig, s.LLM.Provider)
	}

	return s, nil
}

// DatabasePath resolves only the history database location, for commands that
// read history without needing classifier credentials.
func DatabasePath(v *viper.Viper) (string, error) {
	SetDefaults(v)
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: failed to get home directory: %v", common.ErrMissingConfig, err)
	}
	return ExpandPath(v.GetString("database.path"), home), nil
}

// ExpandPath replaces a leading "~" with home and then expands $VAR references.
func ExpandPath(path, home string) string {
	switch {
	case path == "~":
		path = home
	case strings.HasPrefix(path, "~/"):
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

func validateNames(s Settings) error {
	names := map[string]string{
		"scan.folder":  s.ScanFolder,
		"holding.name": s.HoldingFolder,
	}
	for key, name := range names {
		if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("%w: %s must be a plain folder name, got %q", common.ErrInvalidConfig, key, name)
		}
	}
	if s.CancelKeyword == "" {
		return fmt.Errorf("%w: review.cancel_keyword cannot be empty", common.ErrInvalidConfig)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
