package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/vvka-141/mztabm/internal/diag"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

// ErrConfigNotFound is returned when an explicitly named config file does
// not exist. It is always wrapped together with mztab.ErrInvalidConfig.
var ErrConfigNotFound = errors.New("config file not found")

const (
	ConfigName = "mztabm"
	EnvPrefix  = "MZTABM"
)

// Ontology back-end names.
const (
	BackendNone     = "none"
	BackendOBO      = "obo"
	BackendOLS      = "ols"
	BackendPostgres = "postgres"
)

var backends = []string{BackendNone, BackendOBO, BackendOLS, BackendPostgres}

type RetryConfig struct {
	MaxAttempts  int           `mapstructure:"max_attempts"`
	InitialDelay time.Duration `mapstructure:"initial_delay"`
	MaxDelay     time.Duration `mapstructure:"max_delay"`
}

type OntologyConfig struct {
	Backend  string        `mapstructure:"backend"`
	OBO      string        `mapstructure:"obo"`
	OLSURL   string        `mapstructure:"ols_url"`
	DSN      string        `mapstructure:"dsn"`
	Redis    string        `mapstructure:"redis"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	Retry    RetryConfig   `mapstructure:"retry"`
}

type Config struct {
	Level       string         `mapstructure:"level"`
	MaxErrors   int            `mapstructure:"max_errors"`
	Encoding    string         `mapstructure:"encoding"`
	Timeout     time.Duration  `mapstructure:"timeout"`
	Concurrency int            `mapstructure:"concurrency"`
	Mapping     string         `mapstructure:"mapping"`
	JSON        bool           `mapstructure:"json"`
	Verbose     bool           `mapstructure:"verbose"`
	Ontology    OntologyConfig `mapstructure:"ontology"`
}

// LoadOptions names the optional inputs of Load.
type LoadOptions struct {
	// ConfigFile is an explicit config path. Empty means ./mztabm.yaml if present.
	ConfigFile string
	// EnvFiles are loaded with godotenv; variables already set win.
	EnvFiles []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("level", mztab.DefaultLevel)
	v.SetDefault("max_errors", mztab.DefaultMaxErrorCount)
	v.SetDefault("encoding", mztab.DefaultEncoding)
	v.SetDefault("timeout", mztab.DefaultTimeout)
	v.SetDefault("concurrency", mztab.DefaultConcurrency)
	v.SetDefault("mapping", "")
	v.SetDefault("json", false)
	v.SetDefault("verbose", false)
	v.SetDefault("ontology.backend", BackendNone)
	v.SetDefault("ontology.obo", "")
	v.SetDefault("ontology.ols_url", "https://www.ebi.ac.uk/ols4")
	v.SetDefault("ontology.dsn", "")
	v.SetDefault("ontology.redis", "")
	v.SetDefault("ontology.cache_ttl", mztab.DefaultCacheTTL)
	v.SetDefault("ontology.retry.max_attempts", mztab.DefaultRetryMaxAttempts)
	v.SetDefault("ontology.retry.initial_delay", mztab.DefaultRetryInitialDelay)
	v.SetDefault("ontology.retry.max_delay", mztab.DefaultRetryMaxDelay)
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := decode(v)
	if err != nil {
		panic(fmt.Sprintf("config: built-in defaults do not decode: %v", err))
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", mztab.ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// Load builds the effective configuration. It does not validate; call
// Validate after applying flag overrides.
func Load(opts LoadOptions) (*Config, error) {
	for _, f := range opts.EnvFiles {
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("%w: env file %s: %w", mztab.ErrInvalidConfig, f, err)
		}
	}

	v := newViper()
	v.SetConfigType("yaml")
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, fmt.Errorf("%w: %w: %s", mztab.ErrInvalidConfig, ErrConfigNotFound, opts.ConfigFile)
		}
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %w", mztab.ErrInvalidConfig, err)
		}
	}
	return decode(v)
}

// ParsedLevel returns the reporting level. Call Validate first.
func (c *Config) ParsedLevel() diag.Level {
	l, _ := diag.ParseLevel(c.Level)
	return l
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{mztab.ErrInvalidConfig}, args...)...))
	}

	if _, err := diag.ParseLevel(c.Level); err != nil {
		bad("level: %v", err)
	}
	if c.MaxErrors < 0 {
		bad("max_errors must not be negative, got %d", c.MaxErrors)
	}
	if enc, err := ianaindex.IANA.Encoding(c.Encoding); err != nil || enc == nil {
		bad("encoding %q is not a supported IANA character set", c.Encoding)
	}
	if c.Timeout <= 0 {
		bad("timeout must be positive, got %s", c.Timeout)
	}
	if c.Concurrency < 1 {
		bad("concurrency must be at least 1, got %d", c.Concurrency)
	}

	o := c.Ontology
	switch o.Backend {
	case BackendNone:
	case BackendOBO:
		if o.OBO == "" {
			bad("ontology.obo is required for the %s backend", o.Backend)
		}
	case BackendOLS:
		if u, err := url.Parse(o.OLSURL); err != nil || u.Scheme == "" || u.Host == "" {
			bad("ontology.ols_url %q is not an absolute URL", o.OLSURL)
		}
	case BackendPostgres:
		if o.DSN == "" {
			bad("ontology.dsn is required for the %s backend", o.Backend)
		}
	default:
		bad("ontology.backend %q must be one of %s", o.Backend, strings.Join(backends, ", "))
	}
	if o.CacheTTL < 0 {
		bad("ontology.cache_ttl must not be negative, got %s", o.CacheTTL)
	}
	if o.Retry.MaxAttempts < 0 {
		bad("ontology.retry.max_attempts must not be negative, got %d", o.Retry.MaxAttempts)
	}
	if o.Retry.InitialDelay <= 0 || o.Retry.MaxDelay < o.Retry.InitialDelay {
		bad("ontology.retry delays must satisfy 0 < initial_delay <= max_delay, got %s and %s", o.Retry.InitialDelay, o.Retry.MaxDelay)
	}
	return errors.Join(errs...)
}
