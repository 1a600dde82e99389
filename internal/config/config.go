// Package config loads contractgen settings from YAML with CONTRACTGEN_* env
// overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contractgen/pkg/contract"
	"github.com/goliatone/go-contractgen/pkg/numbering"
	"github.com/goliatone/go-contractgen/pkg/rendering"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CONTRACTGEN_"

// Config is the full runtime configuration.
type Config struct {
	Endpoints EndpointsConfig `yaml:"endpoints"`
	Variant   string          `yaml:"variant"`

	// RequestTimeout bounds each remote call, e.g. "30s".
	RequestTimeout string `yaml:"request_timeout"`

	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// EndpointsConfig holds the three remote services.
type EndpointsConfig struct {
	Render     string `yaml:"render"`
	Upload     string `yaml:"upload"`
	NextNumber string `yaml:"next_number"`
}

type ServerConfig struct {
	Listen        string `yaml:"listen"`
	MaxCoverBytes int64  `yaml:"max_cover_bytes"`
}

// DatabaseConfig is only needed by the counter endpoint.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Endpoints: EndpointsConfig{
			Render:     rendering.DefaultRenderEndpoint,
			Upload:     rendering.DefaultUploadEndpoint,
			NextNumber: numbering.DefaultEndpoint,
		},
		Variant:        string(contract.VariantFull),
		RequestTimeout: "30s",
		Server: ServerConfig{
			Listen:        ":8080",
			MaxCoverBytes: 10 << 20,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file is not an error; an empty
// path skips the file entirely. Env overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	set := func(name string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set("RENDER_URL", &c.Endpoints.Render)
	set("UPLOAD_URL", &c.Endpoints.Upload)
	set("NEXT_NUMBER_URL", &c.Endpoints.NextNumber)
	set("VARIANT", &c.Variant)
	set("REQUEST_TIMEOUT", &c.RequestTimeout)
	set("LISTEN", &c.Server.Listen)
	set("DATABASE_URL", &c.Database.URL)
	set("LOG_LEVEL", &c.Logging.Level)
}

// Validate checks endpoints, variant, timeout and log level.
func (c *Config) Validate() error {
	var errs []error
	for name, raw := range map[string]string{
		"endpoints.render":      c.Endpoints.Render,
		"endpoints.upload":      c.Endpoints.Upload,
		"endpoints.next_number": c.Endpoints.NextNumber,
	} {
		if err := checkURL(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if _, err := contract.ParseVariant(c.Variant); err != nil {
		errs = append(errs, fmt.Errorf("variant: %w", err))
	}
	if _, err := c.Timeout(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	if c.Server.MaxCoverBytes < 0 {
		errs = append(errs, errors.New("server.max_cover_bytes: must not be negative"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Timeout parses RequestTimeout. Zero disables the per-request bound.
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(c.RequestTimeout))
	if err != nil {
		return 0, fmt.Errorf("request_timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("request_timeout: must not be negative, got %s", d)
	}
	return d, nil
}

// ContractVariant returns the parsed variant. Call after Validate.
func (c *Config) ContractVariant() contract.Variant {
	v, err := contract.ParseVariant(c.Variant)
	if err != nil {
		return contract.VariantFull
	}
	return v
}

func checkURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("expected an http(s) URL, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
