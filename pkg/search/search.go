// Package search fetches recent news for a topic from an external provider.
// Provider failures are returned as errors and never panic, the caller turns them into data.
package search

import (
	"errors"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultCount is the number of articles fetched when the caller gives no count
const DefaultCount = 5

// MaxCount is the largest number of articles a single fetch returns
const MaxCount = 10

// ErrMissingKey reports that no Exa credential is configured
var ErrMissingKey = errors.New("Missing EXA_API_KEY") //nolint:staticcheck // shown verbatim to the user

// TransportError wraps a network, status or decoding failure of a provider call
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// ClampCount maps a requested result count into [1, MaxCount], zero or negative means DefaultCount
func ClampCount(count int) int {
	switch {
	case count <= 0:
		return DefaultCount
	case count > MaxCount:
		return MaxCount
	}
	return count
}

// Query builds the natural-language search query for a topic
func Query(topic string) string {
	return "latest news about " + topic
}

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

// plainText strips html markup returned by providers and unescapes entities
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}
