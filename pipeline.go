package transly

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Pipeline drives translation runs: cache lookup, gateway call on miss,
// ordered results, progress, and cache persistence at the end of Process.
type Pipeline struct {
	targetLang    string
	sourceLang    string
	gateway       *Gateway
	cache         Cache
	persister     Persister
	logger        *logrus.Logger
	progress      ProgressFunc
	concurrency   int
	cacheFallback bool
	metrics       *Metrics
}

// PipelineOption is a functional option for configuring the Pipeline.
type PipelineOption func(*Pipeline)

// WithSourceLang sets the source language.
func WithSourceLang(lang string) PipelineOption {
	return func(p *Pipeline) {
		p.sourceLang = lang
	}
}

// WithCache sets the translation cache.
func WithCache(cache Cache) PipelineOption {
	return func(p *Pipeline) {
		p.cache = cache
	}
}

// WithPersister sets what Process flushes after the output is written.
func WithPersister(persister Persister) PipelineOption {
	return func(p *Pipeline) {
		p.persister = persister
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *logrus.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithProgress registers a callback invoked once per processed record.
// Calls are serialized.
func WithProgress(fn ProgressFunc) PipelineOption {
	return func(p *Pipeline) {
		p.progress = fn
	}
}

// WithConcurrency sets how many provider calls may be in flight at once.
// Values below 2 keep the run strictly sequential.
func WithConcurrency(n int) PipelineOption {
	return func(p *Pipeline) {
		p.concurrency = n
	}
}

// WithCacheFallback makes the pipeline cache the source text when the
// provider fails. Off by default, so a later run retries the provider.
func WithCacheFallback(enabled bool) PipelineOption {
	return func(p *Pipeline) {
		p.cacheFallback = enabled
	}
}

// WithMetrics records cache and run metrics.
func WithMetrics(m *Metrics) PipelineOption {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// NewPipeline creates a Pipeline translating into targetLang through gateway.
func NewPipeline(targetLang string, gateway *Gateway, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		targetLang:  targetLang,
		sourceLang:  DefaultSourceLang,
		gateway:     gateway,
		concurrency: 1,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = logrus.New()
	}

	return p
}

// TargetLang returns the target language.
func (p *Pipeline) TargetLang() string {
	return p.targetLang
}

// SourceLang returns the source language.
func (p *Pipeline) SourceLang() string {
	return p.sourceLang
}

// IsSourceLang reports whether source and target share a base language, in
// which case records pass through untranslated.
func (p *Pipeline) IsSourceLang() bool {
	return BaseLanguage(p.targetLang) == BaseLanguage(p.sourceLang)
}

// Run translates records and returns one result per record, in input order.
// Provider failures degrade single results to their source text; the only
// error Run returns is the context's.
func (p *Pipeline) Run(ctx context.Context, records []Record) ([]Result, RunStats, error) {
	return p.run(ctx, records, logrus.NewEntry(p.logger))
}

// Process reads records from src, translates them, writes the results to w
// and then persists the cache. A persistence failure is logged and reported in
// Report.PersistErr; the output has already been written by then.
func (p *Pipeline) Process(ctx context.Context, src RecordSource, w ResultWriter) (*Report, error) {
	runID := uuid.NewString()
	log := p.logger.WithFields(logrus.Fields{
		"run_id":      runID,
		"source_lang": p.sourceLang,
		"target_lang": p.targetLang,
	})

	records, err := src.Records(ctx)
	if err != nil {
		log.WithError(err).Error("Reading records failed")
		return nil, err
	}
	log.WithField("records", len(records)).Info("Run started")

	results, stats, err := p.run(ctx, records, log)
	if err != nil {
		return nil, err
	}

	if err := w.WriteResults(ctx, results); err != nil {
		log.WithError(err).Error("Writing results failed")
		return nil, fmt.Errorf("writing results: %w", err)
	}

	report := &Report{
		RunID:   runID,
		Results: results,
		Stats:   stats,
	}

	if p.persister != nil {
		if err := p.persister.Persist(ctx); err != nil {
			log.WithError(err).Warn("Cache persistence failed, output was kept")
			report.PersistErr = err
		}
	}

	log.WithFields(logrus.Fields{
		"translated": stats.Translated,
		"cached":     stats.Cached,
		"fallbacks":  stats.Fallbacks,
		"duplicates": stats.Duplicates,
		"skipped":    stats.Skipped,
		"elapsed":    stats.Elapsed,
	}).Info("Run finished")

	return report, nil
}

func (p *Pipeline) run(ctx context.Context, records []Record, log *logrus.Entry) ([]Result, RunStats, error) {
	start := time.Now()
	results := make([]Result, len(records))
	stats := RunStats{Total: len(records)}
	tracker := &progressTracker{fn: p.progress, total: len(records)}

	if p.IsSourceLang() {
		log.Debug("Source and target language match, passing records through")
		for i, r := range records {
			results[i] = Result{ID: r.ID, Text: r.Text}
			tracker.advance(1)
		}
		stats.Skipped = len(records)
		stats.Elapsed = time.Since(start)
		p.metrics.recordRun(len(records), stats.Elapsed.Seconds())
		return results, stats, nil
	}

	jobs, blank := groupRecords(records, p.sourceLang, p.targetLang)

	for _, i := range blank {
		results[i] = Result{ID: records[i].ID, Text: records[i].Text}
		stats.Skipped++
		tracker.advance(1)
	}

	err := p.dispatch(ctx, jobs, func(j *job) {
		tracker.advance(len(j.indexes))
	})
	if err != nil {
		log.WithError(err).Warn("Run interrupted")
		return nil, stats, err
	}

	for _, j := range jobs {
		for n, i := range j.indexes {
			results[i] = Result{
				ID:       records[i].ID,
				Text:     j.res.text,
				Cached:   j.res.cached,
				Fallback: j.res.fallback,
			}
			switch {
			case n > 0:
				stats.Duplicates++
			case j.res.cached:
				stats.Cached++
			case j.res.fallback:
				stats.Fallbacks++
			default:
				stats.Translated++
			}
		}
	}

	stats.Elapsed = time.Since(start)
	p.metrics.recordRun(len(records), stats.Elapsed.Seconds())
	return results, stats, nil
}

// resolve produces the translation for one distinct cache key.
func (p *Pipeline) resolve(ctx context.Context, j *job) resolution {
	if p.cache != nil {
		if cached, ok := p.cache.Get(j.key); ok {
			p.metrics.recordCacheLookup(true)
			return resolution{text: cached, cached: true}
		}
		p.metrics.recordCacheLookup(false)
	}

	out := p.gateway.Translate(ctx, j.text, p.sourceLang, p.targetLang)
	if out.Fallback() {
		p.metrics.recordFallback(p.targetLang)
		if !p.cacheFallback || ctx.Err() != nil {
			return resolution{text: out.Text, fallback: true}
		}
	}

	if p.cache != nil {
		if err := p.cache.Put(j.key, out.Text); err != nil {
			p.logger.WithError(err).Warn("Cache write failed")
		}
	}

	return resolution{text: out.Text, fallback: out.Fallback()}
}
