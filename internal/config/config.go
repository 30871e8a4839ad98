package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the lgtm configuration.
type Config struct {
	Provider        string        `yaml:"provider" validate:"required,oneof=gemini openai anthropic ollama"`
	Model           string        `yaml:"model,omitempty"`
	BaseURL         string        `yaml:"baseURL,omitempty" validate:"omitempty,url"`
	BaseBranch      string        `yaml:"baseBranch" validate:"required"`
	Alias           AliasConfig   `yaml:"alias"`
	Extensions      []string      `yaml:"extensions" validate:"min=1,dive,startswith=."`
	Scanner         string        `yaml:"scanner" validate:"oneof=regex treesitter"`
	HistoryWindow   int           `yaml:"historyWindow" validate:"gte=0"`
	FailureDelay    time.Duration `yaml:"failureDelay" validate:"gte=0"`
	Temperature     float64       `yaml:"temperature" validate:"gte=0,lte=2"`
	MaxOutputTokens int           `yaml:"maxOutputTokens" validate:"gt=0"`
	Exclude         []string      `yaml:"exclude,omitempty"`
	RulesFile       string        `yaml:"rulesFile,omitempty"`
	Log             LogConfig     `yaml:"log"`
	Cache           CacheConfig   `yaml:"cache"`
	Privacy         PrivacyConfig `yaml:"privacy"`
}

// AliasConfig maps a reference prefix to a project directory.
type AliasConfig struct {
	Prefix string `yaml:"prefix"`
	Dir    string `yaml:"dir"`
}

// LogConfig controls the structured log file.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=trace debug info warn error disabled"`
	File  string `yaml:"file,omitempty"`
}

// CacheConfig controls caching of provider responses.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Dir        string `yaml:"dir,omitempty"`
	TTLSeconds int    `yaml:"ttlSeconds" validate:"gte=0"`
}

// PrivacyConfig controls privacy/redaction behavior.
type PrivacyConfig struct {
	RedactSecrets bool     `yaml:"redactSecrets"`
	RedactPaths   []string `yaml:"redactPaths,omitempty"`
}

// DefaultModels is the model used for each provider when none is configured.
var DefaultModels = map[string]string{
	"gemini":    "gemini-2.5-pro",
	"openai":    "gpt-4o",
	"anthropic": "claude-sonnet-4-20250514",
	"ollama":    "llama3.1",
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:        "gemini",
		BaseBranch:      "develop",
		Alias:           AliasConfig{Prefix: "@/", Dir: "src"},
		Extensions:      []string{".ts", ".tsx", ".js", ".jsx", ".mjs"},
		Scanner:         "regex",
		HistoryWindow:   2,
		FailureDelay:    2 * time.Second,
		Temperature:     0.3,
		MaxOutputTokens: 8192,
		Log:             LogConfig{Level: "info"},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
			RedactPaths:   []string{"**/.env", "**/.env.*", "**/*secrets*"},
		},
	}
}

// EffectiveModel returns Model, or the provider's default model when unset.
func (c Config) EffectiveModel() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModels[c.Provider]
}

var validate = validator.New()

// Validate checks the config against its field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ConfigDir returns the platform-appropriate config directory for lgtm.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lgtm"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "lgtm"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "lgtm"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "lgtm"), nil
	default:
		return filepath.Join(home, ".config", "lgtm"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// loadFile decodes the config file over cfg. Keys absent from the file keep
// their current value. A missing file is not an error.
func loadFile(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// LoadFile returns the defaults overlaid with the config file, ignoring the
// environment. It does not validate.
func LoadFile() (Config, error) {
	cfg := Default()
	if err := loadFile(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides,
// then validates it. The overrides map comes from CLI flags; empty values are
// ignored.
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()
	if err := loadFile(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := SetField(&cfg, key, value); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var envKeys = map[string]string{
	"LGTM_PROVIDER":    "provider",
	"LGTM_MODEL":       "model",
	"LGTM_BASE_BRANCH": "baseBranch",
	"LGTM_BASE_URL":    "baseURL",
	"LGTM_SCANNER":     "scanner",
	"LGTM_LOG_LEVEL":   "log.level",
	"LGTM_LOG_FILE":    "log.file",
}

func mergeEnv(cfg *Config) error {
	for env, key := range envKeys {
		if v := os.Getenv(env); v != "" {
			if err := SetField(cfg, key, v); err != nil {
				return fmt.Errorf("%s: %w", env, err)
			}
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "baseURL":
		cfg.BaseURL = value
	case "baseBranch":
		cfg.BaseBranch = value
	case "alias.prefix":
		cfg.Alias.Prefix = value
	case "alias.dir":
		cfg.Alias.Dir = value
	case "extensions":
		cfg.Extensions = splitList(value)
	case "scanner":
		cfg.Scanner = value
	case "historyWindow":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("historyWindow must be an integer: %w", err)
		}
		cfg.HistoryWindow = n
	case "failureDelay":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("failureDelay must be a duration: %w", err)
		}
		cfg.FailureDelay = d
	case "temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("temperature must be a number: %w", err)
		}
		cfg.Temperature = f
	case "maxOutputTokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxOutputTokens must be an integer: %w", err)
		}
		cfg.MaxOutputTokens = n
	case "exclude":
		cfg.Exclude = splitList(value)
	case "rulesFile":
		cfg.RulesFile = value
	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "cache.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cache.enabled must be a boolean: %w", err)
		}
		cfg.Cache.Enabled = b
	case "cache.dir":
		cfg.Cache.Dir = value
	case "cache.ttlSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("cache.ttlSeconds must be an integer: %w", err)
		}
		cfg.Cache.TTLSeconds = n
	case "privacy.redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("privacy.redactSecrets must be a boolean: %w", err)
		}
		cfg.Privacy.RedactSecrets = b
	case "privacy.redactPaths":
		cfg.Privacy.RedactPaths = splitList(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
