package transly

import (
	"errors"
	"strings"
	"testing"
)

func TestUnsupportedFormatError(t *testing.T) {
	err := &UnsupportedFormatError{Path: "data.xml", Ext: "xml"}

	if !strings.Contains(err.Error(), "only JSON, CSV and TXT are supported") {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}

func TestRecordSourceError(t *testing.T) {
	cause := errors.New("no such file")
	err := &RecordSourceError{Path: "in.json", Message: "opening file", Cause: cause}

	if err.Error() != "record source in.json: opening file: no such file" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}

	err2 := &RecordSourceError{Path: "in.json", Message: "empty"}
	if err2.Error() != "record source in.json: empty" {
		t.Errorf("unexpected error message: %s", err2.Error())
	}
}

func TestProviderError(t *testing.T) {
	err := &ProviderError{Message: "bad response", StatusCode: 429}

	if err.Error() != "provider error: bad response (status 429)" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	err2 := &ProviderError{Message: "request failed", Cause: errors.New("dial tcp")}
	if err2.Error() != "provider error: request failed: dial tcp" {
		t.Errorf("unexpected error message: %s", err2.Error())
	}
}

func TestGatewayError(t *testing.T) {
	cause := &ProviderError{Message: "timeout"}
	err := &GatewayError{Provider: "google", Message: "translation failed", Cause: cause}

	if err.Error() != "gateway error (google): translation failed: provider error: timeout" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Error("errors.As should find the ProviderError")
	}
}

func TestCachePersistenceError(t *testing.T) {
	err := &CachePersistenceError{Path: "cache.json", Op: "load", Message: "invalid JSON"}

	if err.Error() != "cache load cache.json: invalid JSON" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}
