package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZaguanLabs/transly"
	"github.com/sirupsen/logrus"
)

// DefaultLibreTranslateURL is the default base URL for the LibreTranslate API.
const DefaultLibreTranslateURL = "http://localhost:5000"

// LibreTranslateProvider translates through a self-hosted LibreTranslate server.
type LibreTranslateProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// LibreTranslateConfig holds configuration for the LibreTranslate provider.
type LibreTranslateConfig struct {
	BaseURL    string // Server URL (default: DefaultLibreTranslateURL)
	APIKey     string // Optional API key for servers that require one
	HTTPClient *http.Client
	Logger     *logrus.Logger
}

// NewLibreTranslateProvider creates a new LibreTranslate provider.
func NewLibreTranslateProvider(cfg LibreTranslateConfig) *LibreTranslateProvider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultLibreTranslateURL
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	return &LibreTranslateProvider{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: client,
		logger:     logger,
	}
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

// Name implements transly.Named.
func (p *LibreTranslateProvider) Name() string {
	return "libretranslate"
}

// Translate implements transly.Provider.
func (p *LibreTranslateProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(&libreRequest{
		Q:      text,
		Source: transly.BaseLanguage(sourceLang),
		Target: transly.BaseLanguage(targetLang),
		Format: "text",
		APIKey: p.apiKey,
	}); err != nil {
		return "", &transly.ProviderError{Message: "encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/translate", buf)
	if err != nil {
		return "", &transly.ProviderError{Message: "create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", transly.UserAgent())

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &transly.ProviderError{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	p.logger.WithFields(logrus.Fields{
		"status_code": resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("LibreTranslate request completed")

	if resp.StatusCode != http.StatusOK {
		var body libreResponse
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := "unexpected response"
		if json.Unmarshal(data, &body) == nil && body.Error != "" {
			msg = body.Error
		}
		return "", &transly.ProviderError{Message: msg, StatusCode: resp.StatusCode}
	}

	var out libreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &transly.ProviderError{Message: "decode response", Cause: err}
	}

	return out.TranslatedText, nil
}

// CheckHealth verifies that the server answers on its /languages endpoint.
func (p *LibreTranslateProvider) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/languages", nil)
	if err != nil {
		return &transly.ProviderError{Message: "create health check request", Cause: err}
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return &transly.ProviderError{Message: "health check failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &transly.ProviderError{Message: "health check failed", StatusCode: resp.StatusCode}
	}
	return nil
}

var (
	_ Provider      = (*LibreTranslateProvider)(nil)
	_ transly.Named = (*LibreTranslateProvider)(nil)
)
