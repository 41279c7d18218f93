package transly

import (
	"context"
	"time"
)

// Record is one unit of source text plus its stable identifier.
type Record struct {
	ID   string // Unique within one run (e.g. "line_0" or a JSON object key)
	Text string // Source text
}

// Result is the translated counterpart of a Record.
type Result struct {
	ID       string
	Text     string // Translated text, or the source text on fallback
	Cached   bool   // Served from the cache without a provider call
	Fallback bool   // Provider failed and the source text was substituted
}

// RecordSource produces the ordered records of one run.
type RecordSource interface {
	Records(ctx context.Context) ([]Record, error)
}

// ResultWriter receives the ordered results of one run.
type ResultWriter interface {
	WriteResults(ctx context.Context, results []Result) error
}

// Persister flushes the cache to durable storage at the end of a run.
type Persister interface {
	Persist(ctx context.Context) error
}

// ProgressFunc is called once per processed record with the running count.
type ProgressFunc func(done, total int)

// Cache is the store the pipeline consults before calling the gateway.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) (string, bool)
	Put(key string, value string) error
}

// RunStats summarizes a pipeline run. Every record is counted in exactly one
// of Translated, Cached, Fallbacks, Duplicates or Skipped.
type RunStats struct {
	Total      int           // Records processed
	Translated int           // Distinct texts translated by the provider
	Cached     int           // Distinct texts served from the cache
	Fallbacks  int           // Distinct texts that fell back to the source text
	Duplicates int           // Records that reused a result computed earlier in the same run
	Skipped    int           // Blank records, or every record when source and target languages match
	Elapsed    time.Duration // Wall time of the translation pass
}

// Report is the outcome of Pipeline.Process.
type Report struct {
	RunID      string
	Results    []Result
	Stats      RunStats
	PersistErr error // Non-nil when the cache could not be saved; output was still written
}

// Config holds the tunables of a run. Zero values are replaced by DefaultConfig values.
type Config struct {
	SourceLang        string        // Source language code (default: "en")
	MaxEntries        int           // Cache capacity (default: 100)
	TTL               time.Duration // Cache entry lifetime (default: 30 days)
	CacheFile         string        // Snapshot path (default: "translation_cache.json")
	ProviderTimeout   time.Duration // Per-call provider timeout (default: 30s)
	RequestsPerMinute int           // Provider throttle (default: 120, <0 disables)
	Burst             int           // Throttle burst size (default: 10)
	Concurrency       int           // Parallel provider calls (default: 1, sequential)
	BreakerThreshold  int           // Consecutive failures that open the breaker (default: 5, <0 disables)
	BreakerCooldown   time.Duration // Time the breaker stays open (default: 30s)
	CacheFallback     bool          // Cache the source text when the provider fails
}

const (
	// DefaultSourceLang is the source language used when none is given.
	DefaultSourceLang = "en"
	// DefaultMaxEntries is the cache capacity.
	DefaultMaxEntries = 100
	// DefaultTTL is the cache entry lifetime.
	DefaultTTL = 30 * 24 * time.Hour
	// DefaultCacheFile is the snapshot file, relative to the working directory.
	DefaultCacheFile = "translation_cache.json"
	// DefaultProviderTimeout bounds a single provider round trip.
	DefaultProviderTimeout = 30 * time.Second
)

// DefaultConfig returns the configuration used by the command line tool.
func DefaultConfig() Config {
	return Config{
		SourceLang:        DefaultSourceLang,
		MaxEntries:        DefaultMaxEntries,
		TTL:               DefaultTTL,
		CacheFile:         DefaultCacheFile,
		ProviderTimeout:   DefaultProviderTimeout,
		RequestsPerMinute: 120,
		Burst:             10,
		Concurrency:       1,
		BreakerThreshold:  5,
		BreakerCooldown:   30 * time.Second,
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.SourceLang == "" {
		c.SourceLang = d.SourceLang
	}
	if c.MaxEntries <= 0 {
		c.MaxEntries = d.MaxEntries
	}
	if c.TTL <= 0 {
		c.TTL = d.TTL
	}
	if c.CacheFile == "" {
		c.CacheFile = d.CacheFile
	}
	if c.ProviderTimeout <= 0 {
		c.ProviderTimeout = d.ProviderTimeout
	}
	if c.RequestsPerMinute == 0 {
		c.RequestsPerMinute = d.RequestsPerMinute
	}
	if c.Burst <= 0 {
		c.Burst = d.Burst
	}
	if c.Concurrency <= 0 {
		c.Concurrency = d.Concurrency
	}
	if c.BreakerThreshold == 0 {
		c.BreakerThreshold = d.BreakerThreshold
	}
	if c.BreakerCooldown <= 0 {
		c.BreakerCooldown = d.BreakerCooldown
	}
	return c
}
