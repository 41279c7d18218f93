package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/transly"
	"github.com/ZaguanLabs/transly/cache"
	"github.com/ZaguanLabs/transly/output"
	"github.com/ZaguanLabs/transly/provider"
	"github.com/ZaguanLabs/transly/source"
)

func (a *app) createTranslateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate <file>",
		Short: "Translate a file to a specified language (supports JSON, CSV, TXT)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.translate(cmd.Context(), args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringP("lang", "l", "", "Target language for translation")
	flags.StringP("source", "s", transly.DefaultSourceLang, "Source language for translation")
	flags.String("engine", "google", "Translation engine: google, libretranslate, openai or mock")
	flags.String("provider-url", "", "Override the translation engine endpoint")
	flags.String("api-key", "", "API key for the translation engine")
	flags.String("model", "", "Model name for the openai engine")
	flags.Duration("timeout", transly.DefaultProviderTimeout, "Timeout for a single translation request")
	flags.Int("rpm", transly.DefaultConfig().RequestsPerMinute, "Maximum provider requests per minute (-1 disables throttling)")
	flags.IntP("concurrency", "c", 1, "Number of texts translated in parallel")
	flags.String("redis-url", "", "Use a Redis server as the translation cache")
	flags.Bool("cache-fallback", false, "Cache the source text when a translation fails")
	flags.Bool("csv-header", false, "Treat the first CSV row as a header")
	flags.Bool("dry-run", false, "Show what would be translated without calling the engine")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file after the run")
	flags.BoolP("quiet", "q", false, "Suppress progress and statistics")

	a.bindTranslateFlags(cmd)

	return cmd
}

func (a *app) bindTranslateFlags(cmd *cobra.Command) {
	a.v.BindPFlag("lang", cmd.Flags().Lookup("lang"))
	a.v.BindPFlag("source", cmd.Flags().Lookup("source"))
	a.v.BindPFlag("provider.engine", cmd.Flags().Lookup("engine"))
	a.v.BindPFlag("provider.url", cmd.Flags().Lookup("provider-url"))
	a.v.BindPFlag("provider.api_key", cmd.Flags().Lookup("api-key"))
	a.v.BindPFlag("provider.model", cmd.Flags().Lookup("model"))
	a.v.BindPFlag("provider.timeout", cmd.Flags().Lookup("timeout"))
	a.v.BindPFlag("provider.rpm", cmd.Flags().Lookup("rpm"))
	a.v.BindPFlag("concurrency", cmd.Flags().Lookup("concurrency"))
	a.v.BindPFlag("cache.redis_url", cmd.Flags().Lookup("redis-url"))
	a.v.BindPFlag("cache.fallback", cmd.Flags().Lookup("cache-fallback"))
	a.v.BindPFlag("csv_header", cmd.Flags().Lookup("csv-header"))
	a.v.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))
	a.v.BindPFlag("metrics_file", cmd.Flags().Lookup("metrics-file"))
	a.v.BindPFlag("quiet", cmd.Flags().Lookup("quiet"))
}

func (a *app) translate(ctx context.Context, file string) error {
	if _, err := source.ForPath(file); err != nil {
		var unsupported *transly.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			fmt.Fprintf(a.stderr, "error: %v\n", err)
			return nil
		}
		return err
	}

	s := a.settings()
	if s.Lang == "" {
		return errors.New("target language is required (use -l/--lang)")
	}
	cfg := s.config()

	logger, err := a.newLogger(s.LogLevel)
	if err != nil {
		return err
	}

	store, persister, closeStore, err := a.openCache(ctx, s, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	src := source.File(file, source.WithCSVHeader(s.CSVHeader))

	if s.DryRun {
		return a.dryRun(ctx, src, s.Lang, cfg.SourceLang, store)
	}

	engine, err := provider.ParseEngine(s.Engine)
	if err != nil {
		return err
	}
	p, err := provider.New(provider.Config{
		Engine:  engine,
		BaseURL: s.ProviderURL,
		APIKey:  s.APIKey,
		Model:   s.Model,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	if hc, ok := p.(interface{ CheckHealth(context.Context) error }); ok {
		if err := hc.CheckHealth(ctx); err != nil {
			logger.WithError(err).Warn("Translation engine health check failed")
		}
	}

	if cfg.RequestsPerMinute > 0 {
		p = transly.NewRateLimitedProvider(p, transly.RateLimitConfig{
			RequestsPerMinute: cfg.RequestsPerMinute,
			Burst:             cfg.Burst,
		})
	}

	metrics := transly.NewMetrics(nil)
	gateway := transly.NewGateway(p,
		transly.WithTimeout(cfg.ProviderTimeout),
		transly.WithBreaker(cfg.BreakerThreshold, cfg.BreakerCooldown),
		transly.WithGatewayLogger(logger),
		transly.WithGatewayMetrics(metrics),
	)

	opts := []transly.PipelineOption{
		transly.WithSourceLang(cfg.SourceLang),
		transly.WithCache(store),
		transly.WithPersister(persister),
		transly.WithLogger(logger),
		transly.WithConcurrency(cfg.Concurrency),
		transly.WithCacheFallback(cfg.CacheFallback),
		transly.WithMetrics(metrics),
	}
	var bar *progressBar
	if !s.Quiet {
		bar = newProgressBar(a.stderr)
		opts = append(opts, transly.WithProgress(bar.Update))
	}

	pipeline := transly.NewPipeline(s.Lang, gateway, opts...)
	writer := output.NewJSONFile(output.PathFor(s.Lang, file))

	report, err := pipeline.Process(ctx, src, writer)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Translation completed and saved to %s\n", writer.Path())

	if report.PersistErr != nil {
		fmt.Fprintf(a.stderr, "warning: translation cache was not saved: %v\n", report.PersistErr)
	}
	if !s.Quiet {
		printStats(a.stderr, report.Stats)
	}

	if s.MetricsFile != "" {
		if err := metrics.WriteTextfile(s.MetricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	return nil
}

// openCache returns the translation store and the persister flushed after the run.
func (a *app) openCache(ctx context.Context, s settings, cfg transly.Config, logger *logrus.Logger) (transly.Cache, transly.Persister, func(), error) {
	if s.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			URL: s.RedisURL,
			TTL: cfg.TTL,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		rc.WithLogger(logger)
		logger.WithField("url", s.RedisURL).Debug("Using Redis translation cache")
		return rc, rc, func() { rc.Close() }, nil
	}

	store := cache.NewLRUCache(cfg.MaxEntries, cfg.TTL)
	snap := cache.SnapshotFor(cfg.CacheFile)
	n, err := cache.Restore(ctx, store, snap)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.WithFields(logrus.Fields{
		"location": snap.Location(),
		"entries":  n,
	}).Debug("Translation cache loaded")

	return store, cache.NewPersister(store, snap), func() {}, nil
}

func (a *app) dryRun(ctx context.Context, src transly.RecordSource, targetLang, sourceLang string, store transly.Cache) error {
	records, err := src.Records(ctx)
	if err != nil {
		return err
	}

	pipeline := transly.NewPipeline(targetLang, nil,
		transly.WithSourceLang(sourceLang),
		transly.WithCache(store),
	)
	plan := pipeline.Plan(records)
	stats := plan.Stats()

	fmt.Fprintf(a.stdout, "Records:    %d\n", len(records))
	fmt.Fprintf(a.stdout, "Cached:     %d\n", stats.Cached)
	fmt.Fprintf(a.stdout, "Pending:    %d\n", stats.Pending)
	fmt.Fprintf(a.stdout, "Duplicates: %d\n", stats.Duplicates)
	fmt.Fprintf(a.stdout, "Skipped:    %d\n", stats.Skipped)
	if !plan.HasWork() {
		fmt.Fprintln(a.stdout, "Nothing to translate")
		return nil
	}
	for _, r := range plan.Pending {
		fmt.Fprintf(a.stdout, "  %s: %s\n", r.ID, r.Text)
	}
	return nil
}

func printStats(w io.Writer, stats transly.RunStats) {
	fmt.Fprintf(w, "\nStats:\n")
	fmt.Fprintf(w, "  Records:    %d\n", stats.Total)
	fmt.Fprintf(w, "  Translated: %d\n", stats.Translated)
	fmt.Fprintf(w, "  Cached:     %d\n", stats.Cached)
	fmt.Fprintf(w, "  Fallbacks:  %d\n", stats.Fallbacks)
	fmt.Fprintf(w, "  Duplicates: %d\n", stats.Duplicates)
	fmt.Fprintf(w, "  Skipped:    %d\n", stats.Skipped)
	fmt.Fprintf(w, "  Time:       %s\n", stats.Elapsed.Round(time.Millisecond))
}
