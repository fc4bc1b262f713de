package booksclient

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const defaultTimeout = 30 * time.Second

var validate = validator.New()

// Config configures a Connection.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// LegacyBaseURL is the base URL for the legacy disconnect/reconnect
	// endpoints. Defaults to BaseURL.
	LegacyBaseURL string `yaml:"legacy_base_url" mapstructure:"legacy_base_url" validate:"omitempty,url"`

	// Timeout is the request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are merged over the connection's built-in default headers.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Verbose installs the detailed request/response logger as the
	// outermost middleware layer.
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`

	// StrictDecode surfaces response parse/extraction failures as errors
	// instead of returning a degraded best-effort Result.
	StrictDecode bool `yaml:"strict_decode" mapstructure:"strict_decode"`

	// Logger is the structured logging sink. Defaults to a no-op logger.
	Logger *zerolog.Logger `yaml:"-" mapstructure:"-" validate:"-"`

	// Transport overrides the base network transport. Defaults to a clone
	// of http.DefaultTransport.
	Transport http.RoundTripper `yaml:"-" mapstructure:"-" validate:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.LegacyBaseURL == "" {
		c.LegacyBaseURL = c.BaseURL
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return NewConfigurationError(fmt.Sprintf("invalid config: %v", err))
	}
	if c.Timeout <= 0 {
		return NewConfigurationError("timeout must be positive")
	}
	return nil
}

// LoadConfig reads a Config from a YAML file, with BOOKSCLIENT_* environment
// variables overriding file values.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("BOOKSCLIENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("booksclient: read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("booksclient: unmarshal config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
