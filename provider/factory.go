package provider

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Engine names a translation backend.
type Engine string

const (
	// EngineGoogle scrapes the mobile Google Translate page (the default).
	EngineGoogle Engine = "google"
	// EngineLibreTranslate uses a LibreTranslate server.
	EngineLibreTranslate Engine = "libretranslate"
	// EngineOpenAI uses an OpenAI-compatible chat completion API.
	EngineOpenAI Engine = "openai"
	// EngineMock uses MockProvider; no network access.
	EngineMock Engine = "mock"
)

// Engines lists the supported engines.
var Engines = []Engine{EngineGoogle, EngineLibreTranslate, EngineOpenAI, EngineMock}

// Config holds configuration for creating a provider.
type Config struct {
	// Engine selects the backend (default: google).
	Engine Engine
	// BaseURL overrides the backend endpoint.
	BaseURL string
	// APIKey authenticates against the backend. For openai, OPENAI_API_KEY is
	// used when empty.
	APIKey string
	// Model selects the openai model.
	Model string
	// HTTPClient is used by the HTTP scraping and REST backends.
	HTTPClient *http.Client
	// Logger is the logger instance to use. If nil, a default logger is created.
	Logger *logrus.Logger
}

// New creates the provider selected by cfg.Engine.
func New(cfg Config) (Provider, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.Engine == "" {
		cfg.Engine = EngineGoogle
	}

	cfg.Logger.WithFields(logrus.Fields{
		"engine":   cfg.Engine,
		"base_url": cfg.BaseURL,
	}).Debug("Creating translation provider")

	switch cfg.Engine {
	case EngineGoogle:
		return NewGoogleProvider(GoogleConfig{
			BaseURL:    cfg.BaseURL,
			HTTPClient: cfg.HTTPClient,
			Logger:     cfg.Logger,
		}), nil
	case EngineLibreTranslate:
		return NewLibreTranslateProvider(LibreTranslateConfig{
			BaseURL:    cfg.BaseURL,
			APIKey:     cfg.APIKey,
			HTTPClient: cfg.HTTPClient,
			Logger:     cfg.Logger,
		}), nil
	case EngineOpenAI:
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("openai engine requires an API key (--api-key or OPENAI_API_KEY)")
		}
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:  apiKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		}), nil
	case EngineMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown translation engine: %s", cfg.Engine)
	}
}

// ParseEngine parses an engine name, case-insensitively.
func ParseEngine(s string) (Engine, error) {
	name := Engine(strings.ToLower(strings.TrimSpace(s)))
	if name == "" {
		return EngineGoogle, nil
	}
	for _, e := range Engines {
		if e == name {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown engine %q (supported: google, libretranslate, openai, mock)", s)
}
