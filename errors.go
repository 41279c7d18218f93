package transly

import "fmt"

// UnsupportedFormatError indicates an input file whose extension is not json, csv or txt.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q for %s: only JSON, CSV and TXT are supported", e.Ext, e.Path)
}

// RecordSourceError indicates an input file that is missing, unreadable or malformed.
type RecordSourceError struct {
	Path    string
	Message string
	Cause   error
}

func (e *RecordSourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("record source %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("record source %s: %s", e.Path, e.Message)
}

func (e *RecordSourceError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates a failed round trip to a translation provider.
type ProviderError struct {
	Message    string
	Cause      error
	StatusCode int // HTTP status when the provider answered, 0 otherwise
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", msg)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// GatewayError is reported when a translation could not be obtained for one
// record. The gateway recovers from it by returning the source text.
type GatewayError struct {
	Provider string
	Message  string
	Cause    error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gateway error (%s): %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("gateway error (%s): %s", e.Provider, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// CachePersistenceError indicates a cache snapshot that could not be loaded or saved.
type CachePersistenceError struct {
	Path    string
	Op      string // "load" or "save"
	Message string
	Cause   error
}

func (e *CachePersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache %s %s: %s: %v", e.Op, e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("cache %s %s: %s", e.Op, e.Path, e.Message)
}

func (e *CachePersistenceError) Unwrap() error {
	return e.Cause
}
