package transly

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestGroupRecords(t *testing.T) {
	recs := records("a", "b", "a", " ", "c", "b")

	jobs, blank := groupRecords(recs, "en", "fr")

	if len(jobs) != 3 {
		t.Fatalf("got %d jobs, want 3", len(jobs))
	}
	wantText := []string{"a", "b", "c"}
	wantIdx := [][]int{{0, 2}, {1, 5}, {4}}
	for i, j := range jobs {
		if j.text != wantText[i] {
			t.Errorf("jobs[%d].text = %q, want %q", i, j.text, wantText[i])
		}
		if fmt.Sprint(j.indexes) != fmt.Sprint(wantIdx[i]) {
			t.Errorf("jobs[%d].indexes = %v, want %v", i, j.indexes, wantIdx[i])
		}
		if j.key != CacheKey(j.text, "en", "fr") {
			t.Errorf("jobs[%d].key = %q", i, j.key)
		}
	}
	if len(blank) != 1 || blank[0] != 3 {
		t.Errorf("blank = %v, want [3]", blank)
	}
}

func TestPipeline_Concurrent_PreservesOrder(t *testing.T) {
	stub := newStubProvider(nil)
	stub.delay = 5 * time.Millisecond
	p := newTestPipeline(stub, WithConcurrency(4))

	texts := make([]string, 40)
	for i := range texts {
		texts[i] = fmt.Sprintf("text %d", i)
	}

	results, stats, err := p.Run(context.Background(), records(texts...))
	if err != nil {
		t.Fatal(err)
	}

	for i, r := range results {
		want := "[fr] " + texts[i]
		if r.Text != want {
			t.Errorf("results[%d] = %q, want %q", i, r.Text, want)
		}
	}
	if stats.Translated != 40 {
		t.Errorf("Translated = %d, want 40", stats.Translated)
	}

	stub.mu.Lock()
	maxInFlight := stub.maxInFlight
	stub.mu.Unlock()
	if maxInFlight > 4 {
		t.Errorf("max in-flight calls = %d, exceeds concurrency 4", maxInFlight)
	}
	if maxInFlight < 2 {
		t.Errorf("max in-flight calls = %d, expected parallel dispatch", maxInFlight)
	}
}

func TestPipeline_Concurrent_OneCallPerKey(t *testing.T) {
	stub := newStubProvider(nil)
	stub.delay = 2 * time.Millisecond
	cache := newMapCache()
	p := newTestPipeline(stub, WithConcurrency(8), WithCache(cache))

	var texts []string
	for i := 0; i < 50; i++ {
		texts = append(texts, fmt.Sprintf("word %d", i%5))
	}

	results, stats, err := p.Run(context.Background(), records(texts...))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		text := fmt.Sprintf("word %d", i)
		if got := stub.callsFor(text); got != 1 {
			t.Errorf("provider calls for %q = %d, want 1", text, got)
		}
	}
	if len(results) != 50 || stats.Duplicates != 45 {
		t.Errorf("got %d results and %d duplicates", len(results), stats.Duplicates)
	}
	if cache.Len() != 5 {
		t.Errorf("cache entries = %d, want 5", cache.Len())
	}
}

func TestPipeline_Concurrent_ProgressIsSerialized(t *testing.T) {
	stub := newStubProvider(nil)
	var mu sync.Mutex
	inside := false
	overlap := false
	last := 0

	p := newTestPipeline(stub, WithConcurrency(4), WithProgress(func(done, total int) {
		mu.Lock()
		if inside {
			overlap = true
		}
		inside = true
		mu.Unlock()

		if done != last+1 {
			overlap = true
		}
		last = done
		time.Sleep(time.Millisecond)

		mu.Lock()
		inside = false
		mu.Unlock()
	}))

	texts := make([]string, 20)
	for i := range texts {
		texts[i] = fmt.Sprintf("t%d", i)
	}
	if _, _, err := p.Run(context.Background(), records(texts...)); err != nil {
		t.Fatal(err)
	}

	if overlap {
		t.Error("progress callbacks overlapped or skipped counts")
	}
	if last != 20 {
		t.Errorf("final progress = %d, want 20", last)
	}
}

func TestPipeline_Concurrent_Cancelled(t *testing.T) {
	stub := newStubProvider(nil)
	stub.delay = 50 * time.Millisecond
	p := newTestPipeline(stub, WithConcurrency(2))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	texts := make([]string, 20)
	for i := range texts {
		texts[i] = fmt.Sprintf("t%d", i)
	}

	_, _, err := p.Run(ctx, records(texts...))
	if err == nil {
		t.Fatal("expected the run to stop on cancellation")
	}
	if stub.totalCalls() >= 20 {
		t.Errorf("cancelled run still dispatched %d calls", stub.totalCalls())
	}
}
