package provider

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/transly"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
)

// DefaultGoogleURL is the mobile Google Translate page scraped by GoogleProvider.
const DefaultGoogleURL = "https://translate.google.com/m"

// resultSelector locates the translated text on the mobile page.
const resultSelector = "div.result-container"

// GoogleProvider translates by fetching the mobile Google Translate page and
// reading the result container out of the HTML.
type GoogleProvider struct {
	baseURL string
	client  *http.Client
	logger  *logrus.Logger
}

// GoogleConfig holds configuration for the Google provider.
type GoogleConfig struct {
	BaseURL    string       // Page URL (default: DefaultGoogleURL)
	HTTPClient *http.Client // Client to use (default: http.DefaultClient)
	Logger     *logrus.Logger
}

// NewGoogleProvider creates a new Google provider.
func NewGoogleProvider(cfg GoogleConfig) *GoogleProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultGoogleURL
	}

	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	return &GoogleProvider{
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}
}

// Name implements transly.Named.
func (p *GoogleProvider) Name() string {
	return "google"
}

// Translate implements transly.Provider.
func (p *GoogleProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return "", &transly.ProviderError{Message: "invalid base URL", Cause: err}
	}
	q := u.Query()
	q.Set("sl", sourceLang)
	q.Set("tl", targetLang)
	q.Set("q", text)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", &transly.ProviderError{Message: "create request", Cause: err}
	}
	req.Header.Set("User-Agent", transly.UserAgent())

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &transly.ProviderError{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	p.logger.WithFields(logrus.Fields{
		"status_code": resp.StatusCode,
		"target_lang": targetLang,
	}).Debug("Google Translate responded")

	if resp.StatusCode != http.StatusOK {
		return "", &transly.ProviderError{
			Message:    "unexpected response",
			StatusCode: resp.StatusCode,
		}
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", &transly.ProviderError{Message: "decode response", Cause: err}
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", &transly.ProviderError{Message: "parse response", Cause: err}
	}

	result := doc.Find(resultSelector)
	if result.Length() == 0 {
		return "", &transly.ProviderError{Message: "no translation in response"}
	}

	return strings.TrimSpace(result.First().Text()), nil
}

var (
	_ Provider      = (*GoogleProvider)(nil)
	_ transly.Named = (*GoogleProvider)(nil)
)
