// Package config provides configuration loading, defaults, and validation
// for the recommendation service.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all service settings.
const envPrefix = "MIRACLE"

// newViper builds a pre-configured Viper instance with the service's
// standard settings: YAML file type, MIRACLE_ env prefix, automatic env
// binding, and a key replacer that maps "." → "_" so nested keys like
// "database.host" resolve to "MIRACLE_DATABASE_HOST".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerKeys(v)
	return v
}

// registerKeys declares every configuration key to Viper.  AutomaticEnv
// only resolves keys Viper already knows about, so without this block
// environment-only settings would be invisible to Unmarshal.  Defaults here
// are zero values; real defaults are applied by ApplyDefaults afterwards.
func registerKeys(v *viper.Viper) {
	keys := []string{
		"server.port", "server.mode", "server.read_timeout",
		"server.write_timeout", "server.idle_timeout",
		"server.max_body_size", "server.shutdown_timeout",

		"database.host", "database.port", "database.user",
		"database.password", "database.db_name", "database.ssl_mode",
		"database.max_conns", "database.min_conns",
		"database.conn_max_lifetime", "database.conn_max_idle_time",
		"database.migration_path",

		"redis.enabled", "redis.addr", "redis.password", "redis.db",
		"redis.pool_size", "redis.min_idle_conns", "redis.dial_timeout",
		"redis.read_timeout", "redis.write_timeout", "redis.default_ttl",
		"redis.key_prefix",

		"kafka.enabled", "kafka.brokers", "kafka.topic",
		"kafka.batch_size", "kafka.batch_timeout", "kafka.write_timeout",
		"kafka.max_retries",

		"catalog.source", "catalog.path", "catalog.watch_file",
		"catalog.cache_ttl",

		"climate.uv_index", "climate.temperature", "climate.humidity",

		"log.level", "log.format", "log.output_paths",
		"log.error_output_paths",
	}
	for _, k := range keys {
		v.SetDefault(k, nil)
	}
}

// Load reads the YAML file at configPath, merges MIRACLE_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from MIRACLE_* environment variables
// with no config file required, the preferred strategy for containerised
// deployments.
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	// Environment values arrive as strings; weak typing lets them decode
	// into ints, bools, and durations.
	weakly := func(dc *mapstructure.DecoderConfig) { dc.WeaklyTypedInput = true }
	if err := v.Unmarshal(cfg, weakly); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  Intended for
// hot-reloading non-critical settings such as the log level; callers apply
// only the safe subset of changes at runtime.  If the changed file fails to
// parse or validate, onChange is not called.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read; callers should have called Load first.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}
