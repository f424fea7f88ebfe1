package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/manifest-network/sebakscan/internal/fault"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "SEBAKSCAN"

	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "sebakscan"
	DefaultPageLimit = 10

	OutputTable = "table"
	OutputJSON  = "json"
)

// Viper keys.
const (
	KeyAPIURL          = "api.url"
	KeyClientTimeout   = "client.timeout"
	KeyClientUserAgent = "client.user_agent"
	KeyPF00StartHeight = "inflation.pf00_start_height"
	KeyPageLimit       = "page.limit"
	KeyPageReverse     = "page.reverse"
	KeyOutputFormat    = "output.format"
	KeyMetricsAddr     = "metrics.addr"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
)

// ClientConfig configures the HTTP transport.
type ClientConfig struct {
	URL       string
	Timeout   time.Duration
	UserAgent string
}

// InflationConfig holds the inflation schedule inputs that are not fixed
// constants. PF00StartHeight is nil until the start height is configured.
type InflationConfig struct {
	PF00StartHeight *uint64
}

// ExploreConfig is the configuration of every explorer command.
type ExploreConfig struct {
	Client       ClientConfig
	Inflation    InflationConfig
	PageLimit    uint
	Reverse      bool
	OutputFormat string
	MetricsAddr  string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyClientTimeout, DefaultTimeout)
	v.SetDefault(KeyClientUserAgent, DefaultUserAgent)
	v.SetDefault(KeyPageLimit, DefaultPageLimit)
	v.SetDefault(KeyPageReverse, true)
	v.SetDefault(KeyOutputFormat, OutputTable)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
}

// LoadExploreConfig reads the explorer configuration from v and validates it.
func LoadExploreConfig(v *viper.Viper) (ExploreConfig, error) {
	cfg := ExploreConfig{
		Client: ClientConfig{
			URL:       v.GetString(KeyAPIURL),
			Timeout:   v.GetDuration(KeyClientTimeout),
			UserAgent: v.GetString(KeyClientUserAgent),
		},
		PageLimit:    v.GetUint(KeyPageLimit),
		Reverse:      v.GetBool(KeyPageReverse),
		OutputFormat: v.GetString(KeyOutputFormat),
		MetricsAddr:  v.GetString(KeyMetricsAddr),
	}

	if s := v.GetString(KeyPF00StartHeight); s != "" {
		height, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return ExploreConfig{}, errors.WithMessagef(fault.ErrConfig, "invalid %s %q", KeyPF00StartHeight, s)
		}
		cfg.Inflation.PF00StartHeight = &height
	}

	if err := cfg.Validate(); err != nil {
		return ExploreConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the explorer cannot run with.
func (c ExploreConfig) Validate() error {
	if c.Client.URL == "" {
		return errors.WithMessage(fault.ErrConfig, "api url is required")
	}
	u, err := url.Parse(c.Client.URL)
	if err != nil {
		return errors.WithMessage(fault.ErrConfig, fmt.Sprintf("invalid api url: %v", err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.WithMessagef(fault.ErrConfig, "api url scheme must be http or https, got %q", u.Scheme)
	}
	if c.Client.Timeout <= 0 {
		return errors.WithMessage(fault.ErrConfig, "client timeout must be positive")
	}
	switch c.OutputFormat {
	case OutputTable, OutputJSON:
	default:
		return errors.WithMessagef(fault.ErrConfig, "unknown output format %q", c.OutputFormat)
	}
	return nil
}
