package provider

import (
	"testing"

	"github.com/ZaguanLabs/transly"
)

func TestNew(t *testing.T) {
	tests := []struct {
		cfg      Config
		wantName string
	}{
		{Config{}, "google"},
		{Config{Engine: EngineGoogle}, "google"},
		{Config{Engine: EngineLibreTranslate, BaseURL: "http://lt:5000"}, "libretranslate"},
		{Config{Engine: EngineOpenAI, APIKey: "sk-test"}, "openai"},
		{Config{Engine: EngineMock}, "mock"},
	}

	for _, tt := range tests {
		t.Run(string(tt.cfg.Engine), func(t *testing.T) {
			p, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if got := transly.ProviderName(p); got != tt.wantName {
				t.Errorf("provider name = %q, want %q", got, tt.wantName)
			}
		})
	}
}

func TestNew_OpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := New(Config{Engine: EngineOpenAI}); err == nil {
		t.Error("expected error without an API key")
	}

	t.Setenv("OPENAI_API_KEY", "sk-env")
	if _, err := New(Config{Engine: EngineOpenAI}); err != nil {
		t.Errorf("OPENAI_API_KEY should be used: %v", err)
	}
}

func TestNew_UnknownEngine(t *testing.T) {
	if _, err := New(Config{Engine: "babelfish"}); err == nil {
		t.Error("expected error for unknown engine")
	}
}

func TestParseEngine(t *testing.T) {
	tests := []struct {
		input   string
		want    Engine
		wantErr bool
	}{
		{"google", EngineGoogle, false},
		{"LibreTranslate", EngineLibreTranslate, false},
		{" OPENAI ", EngineOpenAI, false},
		{"", EngineGoogle, false},
		{"argos", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEngine(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEngine(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseEngine(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
