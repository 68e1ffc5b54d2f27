package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	HTTPAddr  string         `mapstructure:"http_addr" json:"http_addr" validate:"required"`
	PublicURL string         `mapstructure:"public_url" json:"public_url" validate:"required,url"`
	AssetsDir string         `mapstructure:"assets_dir" json:"assets_dir"`
	Neynar    NeynarConfig   `mapstructure:"neynar" json:"neynar"`
	Image     ImageConfig    `mapstructure:"image" json:"image"`
	Log       LogConfig      `mapstructure:"log" json:"log"`
	Manifest  ManifestConfig `mapstructure:"manifest" json:"manifest"`
}

// NeynarConfig configures the user directory client. An empty APIKey is allowed at
// startup; lookups then fail with a configuration error.
type NeynarConfig struct {
	APIKey      string        `mapstructure:"api_key" json:"-"`
	BaseURL     string        `mapstructure:"base_url" json:"base_url" validate:"required,url"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout" validate:"gt=0"`
	SearchLimit int           `mapstructure:"search_limit" json:"search_limit" validate:"min=1,max=10"`
}

type ImageConfig struct {
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout" validate:"gt=0"`
	MaxBytes    int64         `mapstructure:"max_bytes" json:"max_bytes" validate:"gt=0"`
	JPEGQuality int           `mapstructure:"jpeg_quality" json:"jpeg_quality" validate:"min=1,max=100"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format" validate:"oneof=console json"`
}

// ManifestConfig is the pre-signed account association for the mini-app manifest.
type ManifestConfig struct {
	Header    string `mapstructure:"header" json:"header"`
	Payload   string `mapstructure:"payload" json:"payload"`
	Signature string `mapstructure:"signature" json:"signature"`
}

const (
	defaultHeader    = "eyJmaWQiOjg2OTk5OSwidHlwZSI6ImN1c3RvZHkiLCJrZXkiOiIweDc2ZDUwQjBFMTQ3OWE5QmEyYkQ5MzVGMUU5YTI3QzBjNjQ5QzhDMTIifQ"
	defaultPayload   = "eyJkb21haW4iOiJhbGV4cGFkZW4tZmFydGNhc3Rlci52ZXJjZWwuYXBwIn0"
	defaultSignature = "MHhjYzA3NDlhZWZlMzA5YzFmNWM2NzZhZDZiNDVlMDhkZjg1MjIyOGUxYTMwYWI4NWY2ZTAxN2ViNGZhNDkyMWMxMmJhNzNkYTgyODk5ZTQ3ZjUxNmU3MDRlMTRiM2NlOGUyMWZjYWIyYzgxMDIyY2Q2NjRmZTZiN2ZjYmI0ZDI5YjFj"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_addr", ":8080")
	if port := os.Getenv("PORT"); port != "" {
		v.SetDefault("http_addr", ":"+port)
	}
	v.SetDefault("public_url", "https://localhost:3000")
	v.SetDefault("assets_dir", "")

	v.SetDefault("neynar.api_key", "")
	v.SetDefault("neynar.base_url", "https://api.neynar.com")
	v.SetDefault("neynar.timeout", 10*time.Second)
	v.SetDefault("neynar.search_limit", 5)

	v.SetDefault("image.timeout", 10*time.Second)
	v.SetDefault("image.max_bytes", 10<<20)
	v.SetDefault("image.jpeg_quality", 95)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("manifest.header", defaultHeader)
	v.SetDefault("manifest.payload", defaultPayload)
	v.SetDefault("manifest.signature", defaultSignature)
}

// Load reads configuration from defaults, a .env file, the environment, an optional
// config file and, when flags is non-nil, the "addr" flag.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on environment variables")
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("public_url", "NEXT_PUBLIC_URL", "PUBLIC_URL"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("manifest.header", "FARCASTER_HEADER"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("manifest.payload", "FARCASTER_PAYLOAD"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("manifest.signature", "FARCASTER_SIGNATURE"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		if f := flags.Lookup("addr"); f != nil {
			if err := v.BindPFlag("http_addr", f); err != nil {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// HasAPIKey reports whether the directory credential is configured.
func (c *Config) HasAPIKey() bool {
	return c.Neynar.APIKey != ""
}
