// Package jsonmap reads and writes flat JSON objects of string values while
// keeping key order. encoding/json maps lose insertion order, which matters
// both for output files (records stay in input order) and for cache snapshots
// (recency order survives a restart).
package jsonmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Pair is one key/value member of a flat JSON object.
type Pair struct {
	Key   string
	Value string
}

// Decode reads a JSON object whose values must all be strings.
// Duplicate keys keep the position of their first occurrence and the value of
// their last, which is what JSON.parse-style readers do.
func Decode(r io.Reader) ([]Pair, error) {
	return decode(r, stringValue)
}

// DecodeScalars reads a JSON object whose values may be strings, numbers or
// booleans. Numbers and booleans are returned as their literal JSON text.
// Objects, arrays and null are rejected.
func DecodeScalars(r io.Reader) ([]Pair, error) {
	return decode(r, scalarValue)
}

func decode(r io.Reader, conv func(key string, raw json.RawMessage) (string, error)) ([]Pair, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	pairs := []Pair{}
	index := make(map[string]int)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("value for key %q: %w", key, err)
		}
		value, err := conv(key, raw)
		if err != nil {
			return nil, err
		}

		if i, dup := index[key]; dup {
			pairs[i].Value = value
			continue
		}
		index[key] = len(pairs)
		pairs = append(pairs, Pair{Key: key, Value: value})
	}

	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON object")
	}

	return pairs, nil
}

func stringValue(key string, raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("value for key %q is not a string", key)
	}
	return s, nil
}

func scalarValue(key string, raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("value for key %q is empty", key)
	}

	switch c := trimmed[0]; {
	case c == '"':
		return stringValue(key, trimmed)
	case c == 't' || c == 'f' || c == '-' || (c >= '0' && c <= '9'):
		return string(trimmed), nil
	default:
		return "", fmt.Errorf("value for key %q must be a string, number or boolean", key)
	}
}

// Encode writes pairs as a JSON object indented with two spaces, in the order
// given, followed by a newline. HTML characters are not escaped.
func Encode(w io.Writer, pairs []Pair) error {
	var buf bytes.Buffer

	if len(pairs) == 0 {
		buf.WriteString("{}\n")
		_, err := w.Write(buf.Bytes())
		return err
	}

	buf.WriteString("{\n")
	for i, p := range pairs {
		k, err := marshalString(p.Key)
		if err != nil {
			return err
		}
		v, err := marshalString(p.Value)
		if err != nil {
			return err
		}

		buf.WriteString("  ")
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
		if i < len(pairs)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
