package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "DORMANT_"

// Config holds the configuration for a run
type Config struct {
	// Token is the GitHub access token
	Token string `koanf:"token" validate:"required"`

	// TokenFile is a file holding the token, for mounted secrets
	TokenFile string `koanf:"token_file"`

	// MaxInactiveDays is both the minimum age and the commit-free window in days
	MaxInactiveDays int `koanf:"max_inactive_days" validate:"gt=0"`

	// FailOpen archives repositories whose commit history cannot be read
	FailOpen bool `koanf:"fail_open"`

	// DryRun logs what would be archived without archiving
	DryRun bool `koanf:"dry_run"`

	// Affiliation selects which repositories of the user are listed
	Affiliation string `koanf:"affiliation" validate:"required"`

	// BaseURL points at a GitHub Enterprise API (optional)
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`

	LogLevel  string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"oneof=json console"`

	// Progress shows a progress bar on stderr
	Progress bool `koanf:"progress"`

	// Silent suppresses the banner and the summary
	Silent bool `koanf:"silent"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		MaxInactiveDays: 180,
		Affiliation:     "owner",
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

// Threshold returns MaxInactiveDays as a duration.
func (c Config) Threshold() time.Duration {
	return time.Duration(c.MaxInactiveDays) * 24 * time.Hour
}

// Load reads the configuration from the environment. Variables in the given
// dotenv files (".env" when none is given) are added unless already set.
func Load(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	k := koanf.New(".")
	provider := env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
		},
	})
	if err := k.Load(provider, nil); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.resolveToken(); err != nil {
		return Config{}, err
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// resolveToken falls back to the token file and then to GITHUB_TOKEN.
func (c *Config) resolveToken() error {
	if c.Token != "" {
		return nil
	}

	if c.TokenFile != "" {
		data, err := os.ReadFile(c.TokenFile)
		if err != nil {
			return fmt.Errorf("failed to read token file: %w", err)
		}
		c.Token = strings.TrimSpace(string(data))
		return nil
	}

	c.Token = os.Getenv("GITHUB_TOKEN")
	return nil
}
