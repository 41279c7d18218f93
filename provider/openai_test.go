package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ZaguanLabs/transly"
)

func TestBuildSystemPrompt(t *testing.T) {
	prompt := buildSystemPrompt("en", "pt_BR")

	if !strings.Contains(prompt, "English") {
		t.Error("Prompt should contain source language name")
	}
	if !strings.Contains(prompt, "Portuguese (Brazil)") {
		t.Error("Prompt should contain target language name")
	}
	if !strings.Contains(prompt, "%s") {
		t.Error("Prompt should list printf placeholders literally")
	}
}

func newChatServer(t *testing.T, status int, body string, check func(map[string]interface{})) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if check != nil {
			var payload map[string]interface{}
			json.NewDecoder(r.Body).Decode(&payload)
			check(payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestOpenAIProvider_Translate(t *testing.T) {
	srv := newChatServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "  Bonjour  "}, "finish_reason": "stop"}]
	}`, func(payload map[string]interface{}) {
		if payload["model"] != "gpt-test" {
			t.Errorf("model = %v", payload["model"])
		}
		messages, _ := payload["messages"].([]interface{})
		if len(messages) != 2 {
			t.Errorf("expected system and user messages, got %d", len(messages))
			return
		}
		user, _ := messages[1].(map[string]interface{})
		if user["content"] != "Hello" {
			t.Errorf("user content = %v", user["content"])
		}
	})
	defer srv.Close()

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test", Model: "gpt-test", BaseURL: srv.URL + "/v1"})

	got, err := p.Translate(context.Background(), "Hello", "en", "fr")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "Bonjour" {
		t.Errorf("got %q, want Bonjour", got)
	}
}

func TestOpenAIProvider_APIError(t *testing.T) {
	srv := newChatServer(t, http.StatusTooManyRequests,
		`{"error": {"message": "Rate limit reached", "type": "rate_limit_error"}}`, nil)
	defer srv.Close()

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test", BaseURL: srv.URL + "/v1"})

	_, err := p.Translate(context.Background(), "Hello", "en", "fr")
	var perr *transly.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if perr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", perr.StatusCode)
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	srv := newChatServer(t, http.StatusOK, `{"id": "x", "choices": []}`, nil)
	defer srv.Close()

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test", BaseURL: srv.URL + "/v1"})

	if _, err := p.Translate(context.Background(), "Hello", "en", "fr"); err == nil {
		t.Error("expected error for empty choices")
	}
}
