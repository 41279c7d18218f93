package transly

import (
	"errors"
	"strconv"
	"strings"
)

// CacheKey composes the cache identity of a (text, sourceLang, targetLang) request.
//
// The language codes are length-prefixed ("2:en|2:fr|hello") so that no text,
// whatever separators it contains, can make two different requests share a key.
func CacheKey(text, sourceLang, targetLang string) string {
	var b strings.Builder
	b.Grow(len(text) + len(sourceLang) + len(targetLang) + 8)
	writeField(&b, sourceLang)
	writeField(&b, targetLang)
	b.WriteString(text)
	return b.String()
}

func writeField(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
	b.WriteByte('|')
}

// ErrMalformedKey is returned by ParseCacheKey for strings CacheKey cannot produce.
var ErrMalformedKey = errors.New("malformed cache key")

// ParseCacheKey splits a key produced by CacheKey back into its parts.
func ParseCacheKey(key string) (text, sourceLang, targetLang string, err error) {
	rest := key
	if sourceLang, rest, err = readField(rest); err != nil {
		return "", "", "", err
	}
	if targetLang, rest, err = readField(rest); err != nil {
		return "", "", "", err
	}
	return rest, sourceLang, targetLang, nil
}

func readField(s string) (field, rest string, err error) {
	colon := strings.IndexByte(s, ':')
	if colon <= 0 {
		return "", "", ErrMalformedKey
	}
	n, convErr := strconv.Atoi(s[:colon])
	if convErr != nil || n < 0 {
		return "", "", ErrMalformedKey
	}
	s = s[colon+1:]
	if len(s) < n+1 || s[n] != '|' {
		return "", "", ErrMalformedKey
	}
	return s[:n], s[n+1:], nil
}
