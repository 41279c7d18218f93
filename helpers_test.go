package transly

import (
	"context"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// stubProvider translates from a fixed table and can be told to fail.
type stubProvider struct {
	mu           sync.Mutex
	translations map[string]string
	failing      map[string]bool
	failAll      bool
	delay        time.Duration
	calls        map[string]int
	total        int
	inFlight     int
	maxInFlight  int
}

func newStubProvider(translations map[string]string) *stubProvider {
	return &stubProvider{
		translations: translations,
		failing:      make(map[string]bool),
		calls:        make(map[string]int),
	}
}

func (s *stubProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	s.mu.Lock()
	s.calls[text]++
	s.total++
	s.inFlight++
	if s.inFlight > s.maxInFlight {
		s.maxInFlight = s.inFlight
	}
	delay, fail := s.delay, s.failAll || s.failing[text]
	translated, known := s.translations[text]
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return "", &ProviderError{Message: "request aborted", Cause: ctx.Err()}
		case <-time.After(delay):
		}
	}

	if fail {
		return "", &ProviderError{Message: "stub failure", StatusCode: 503}
	}
	if known {
		return translated, nil
	}
	return "[" + targetLang + "] " + text, nil
}

func (s *stubProvider) Name() string {
	return "stub"
}

func (s *stubProvider) callsFor(text string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[text]
}

func (s *stubProvider) totalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// mapCache is an unbounded Cache for tests.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]string
	putErr  error
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]string)}
}

func (c *mapCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *mapCache) Put(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.putErr != nil {
		return c.putErr
	}
	c.entries[key] = value
	return nil
}

func (c *mapCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func records(texts ...string) []Record {
	out := make([]Record, len(texts))
	for i, text := range texts {
		out[i] = Record{ID: "line_" + strconv.Itoa(i), Text: text}
	}
	return out
}

// cancellingProvider cancels the run while its call is in flight, then
// waits for the cancellation to reach it.
type cancellingProvider struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	calls  int
}

func (p *cancellingProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	p.cancel()
	<-ctx.Done()
	return "", &ProviderError{Message: "request aborted", Cause: ctx.Err()}
}
