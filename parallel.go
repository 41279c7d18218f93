package transly

import (
	"context"
	"strings"
	"sync"
)

// job is one distinct cache key of a run and every record that shares it.
type job struct {
	key     string
	text    string
	indexes []int // record positions, in input order
	res     resolution
}

type resolution struct {
	text     string
	cached   bool
	fallback bool
}

// groupRecords deduplicates records by cache key, keeping first-occurrence
// order. Blank records are returned separately and never reach the provider.
func groupRecords(records []Record, sourceLang, targetLang string) ([]*job, []int) {
	var jobs []*job
	var blank []int
	byKey := make(map[string]*job)

	for i, r := range records {
		if strings.TrimSpace(r.Text) == "" {
			blank = append(blank, i)
			continue
		}

		key := CacheKey(r.Text, sourceLang, targetLang)
		if j, ok := byKey[key]; ok {
			j.indexes = append(j.indexes, i)
			continue
		}

		j := &job{key: key, text: r.Text, indexes: []int{i}}
		byKey[key] = j
		jobs = append(jobs, j)
	}

	return jobs, blank
}

// dispatch resolves every job, sequentially or with a bounded pool of workers.
// Each job is resolved exactly once, so the provider sees at most one call per
// key. done is called after each job, never concurrently.
func (p *Pipeline) dispatch(ctx context.Context, jobs []*job, done func(*job)) error {
	workers := p.concurrency
	if workers > len(jobs) {
		workers = len(jobs)
	}

	if workers <= 1 {
		for _, j := range jobs {
			if err := ctx.Err(); err != nil {
				return err
			}
			j.res = p.resolve(ctx, j)
			done(j)
		}
		return ctx.Err()
	}

	queue := make(chan *job)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				j.res = p.resolve(ctx, j)
				mu.Lock()
				done(j)
				mu.Unlock()
			}
		}()
	}

feed:
	for _, j := range jobs {
		select {
		case <-ctx.Done():
			break feed
		case queue <- j:
		}
	}
	close(queue)
	wg.Wait()

	return ctx.Err()
}

// progressTracker serializes progress callbacks and counts records.
type progressTracker struct {
	mu    sync.Mutex
	fn    ProgressFunc
	done  int
	total int
}

func (t *progressTracker) advance(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := 0; i < n; i++ {
		t.done++
		if t.fn != nil {
			t.fn(t.done, t.total)
		}
	}
}
