package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	AnomalyLevelWarn  = "warn"
	AnomalyLevelError = "error"
)

type DiagnosticsConfig struct {
	// AnomalyLevel is the log level used when a response is dropped for a
	// missing token secret. Protocol violations always log at error.
	AnomalyLevel string `koanf:"anomaly_level" mapstructure:"anomaly_level"`
}

type CacheConfig struct {
	Enabled bool          `koanf:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `koanf:"ttl" mapstructure:"ttl"`
}

type Config struct {
	ServiceName string            `koanf:"service_name" mapstructure:"service_name"`
	Diagnostics DiagnosticsConfig `koanf:"diagnostics" mapstructure:"diagnostics"`
	Cache       CacheConfig       `koanf:"cache" mapstructure:"cache"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "oauth1",
		Diagnostics: DiagnosticsConfig{
			AnomalyLevel: AnomalyLevelWarn,
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     30 * time.Second,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	switch strings.ToLower(strings.TrimSpace(c.Diagnostics.AnomalyLevel)) {
	case "", AnomalyLevelWarn, AnomalyLevelError:
	default:
		return fmt.Errorf("core: invalid diagnostics.anomaly_level %q", c.Diagnostics.AnomalyLevel)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("core: invalid cache.ttl %s", c.Cache.TTL)
	}
	return nil
}
