package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/ZaguanLabs/transly"
)

func TestMockProvider(t *testing.T) {
	m := NewMockProvider()
	ctx := context.Background()

	got, err := m.Translate(ctx, "Hello", "en", "fr")
	if err != nil || got != "Bonjour" {
		t.Errorf("Translate(Hello) = %q, %v", got, err)
	}

	got, err = m.Translate(ctx, "Unknown text", "en", "es")
	if err != nil || got != "[es] Unknown text" {
		t.Errorf("Translate(Unknown text) = %q, %v", got, err)
	}

	if m.CallCount() != 2 {
		t.Errorf("Expected CallCount 2, got %d", m.CallCount())
	}

	m.Reset()
	if m.CallCount() != 0 {
		t.Error("Reset should clear the call count")
	}
}

func TestMockProvider_Failures(t *testing.T) {
	m := NewMockProvider()
	m.Failing["c d"] = true

	if _, err := m.Translate(context.Background(), "a b", "en", "fr"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	_, err := m.Translate(context.Background(), "c d", "en", "fr")
	var perr *transly.ProviderError
	if !errors.As(err, &perr) {
		t.Errorf("expected ProviderError, got %v", err)
	}

	m.FailAll = true
	if _, err := m.Translate(context.Background(), "Hello", "en", "fr"); err == nil {
		t.Error("FailAll should fail every call")
	}
}
