package summarizer

import (
	"errors"
	"fmt"
)

// ErrNoSections indicates the provider response contained none of the
// expected section labels, i.e. the format instruction was ignored.
var ErrNoSections = errors.New("summarizer: no recognizable sections in response")

// ErrNoSummary indicates the response was labeled but its SUMMARY section
// is absent or empty. The parser never fabricates a summary.
var ErrNoSummary = errors.New("summarizer: response has no usable summary section")

// ErrorKind classifies provider failures for retry purposes.
type ErrorKind int

const (
	// KindTransient covers rate limits, timeouts and momentary outages.
	KindTransient ErrorKind = iota
	// KindFatal covers invalid credentials, malformed requests and
	// content-policy rejections. Fatal for the call, not for the batch.
	KindFatal
)

// ProviderError is a typed provider failure carrying its retry classification.
type ProviderError struct {
	Kind     ErrorKind
	Provider string
	Status   int
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Transient reports whether the failure is worth retrying. Implements the
// retry package's Classifier interface.
func (e *ProviderError) Transient() bool { return e.Kind == KindTransient }

// classifyStatus maps an HTTP status code to an error kind. Rate limits and
// server-side failures are transient; everything else in the 4xx range is a
// problem with the request itself.
func classifyStatus(status int) ErrorKind {
	if status == 429 || status >= 500 {
		return KindTransient
	}
	return KindFatal
}
