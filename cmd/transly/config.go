package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/ZaguanLabs/transly"
)

// settings is the merged view of flags, environment and config file.
type settings struct {
	Lang       string
	Source     string
	CacheFile  string
	RedisURL   string
	MaxEntries int
	TTL        time.Duration

	Engine           string
	ProviderURL      string
	APIKey           string
	Model            string
	Timeout          time.Duration
	RPM              int
	Burst            int
	BreakerThreshold int
	BreakerCooldown  time.Duration

	Concurrency   int
	CacheFallback bool
	CSVHeader     bool
	DryRun        bool
	Quiet         bool
	MetricsFile   string
	LogLevel      string
}

// initConfig loads the config file and environment into the viper instance.
// A config file named with --config must exist; the default one is optional.
func (a *app) initConfig() error {
	v := a.v
	setDefaults(v)

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".transly")
	}

	v.SetEnvPrefix("TRANSLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := transly.DefaultConfig()
	v.SetDefault("source", d.SourceLang)
	v.SetDefault("cache.file", d.CacheFile)
	v.SetDefault("cache.max_entries", d.MaxEntries)
	v.SetDefault("cache.ttl", d.TTL)
	v.SetDefault("cache.fallback", d.CacheFallback)
	v.SetDefault("provider.engine", "google")
	v.SetDefault("provider.timeout", d.ProviderTimeout)
	v.SetDefault("provider.rpm", d.RequestsPerMinute)
	v.SetDefault("provider.burst", d.Burst)
	v.SetDefault("provider.breaker_threshold", d.BreakerThreshold)
	v.SetDefault("provider.breaker_cooldown", d.BreakerCooldown)
	v.SetDefault("concurrency", d.Concurrency)
	v.SetDefault("log_level", "warn")
}

func (a *app) settings() settings {
	v := a.v
	return settings{
		Lang:       v.GetString("lang"),
		Source:     v.GetString("source"),
		CacheFile:  v.GetString("cache.file"),
		RedisURL:   v.GetString("cache.redis_url"),
		MaxEntries: v.GetInt("cache.max_entries"),
		TTL:        v.GetDuration("cache.ttl"),

		Engine:           v.GetString("provider.engine"),
		ProviderURL:      v.GetString("provider.url"),
		APIKey:           v.GetString("provider.api_key"),
		Model:            v.GetString("provider.model"),
		Timeout:          v.GetDuration("provider.timeout"),
		RPM:              v.GetInt("provider.rpm"),
		Burst:            v.GetInt("provider.burst"),
		BreakerThreshold: v.GetInt("provider.breaker_threshold"),
		BreakerCooldown:  v.GetDuration("provider.breaker_cooldown"),

		Concurrency:   v.GetInt("concurrency"),
		CacheFallback: v.GetBool("cache.fallback"),
		CSVHeader:     v.GetBool("csv_header"),
		DryRun:        v.GetBool("dry_run"),
		Quiet:         v.GetBool("quiet"),
		MetricsFile:   v.GetString("metrics_file"),
		LogLevel:      v.GetString("log_level"),
	}
}

// config converts the settings into the library configuration.
func (s settings) config() transly.Config {
	return transly.Config{
		SourceLang:        s.Source,
		MaxEntries:        s.MaxEntries,
		TTL:               s.TTL,
		CacheFile:         s.CacheFile,
		ProviderTimeout:   s.Timeout,
		RequestsPerMinute: s.RPM,
		Burst:             s.Burst,
		Concurrency:       s.Concurrency,
		BreakerThreshold:  s.BreakerThreshold,
		BreakerCooldown:   s.BreakerCooldown,
		CacheFallback:     s.CacheFallback,
	}.WithDefaults()
}

func (a *app) newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(a.stderr)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return logger, nil
}
