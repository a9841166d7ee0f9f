package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Markers classify pipeline failures. Callers match them with errors.Is.
var (
	// ErrValidation covers bad caller input: empty text, no segments, a
	// missing media file.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration covers out-of-range settings.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalTool covers ffmpeg or WhisperX failing or being absent.
	ErrExternalTool  = errors.New("external tool error")
	ErrModelNotReady = errors.New("model not ready")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrTransient     = errors.New("transient failure")
)

// Wrap tags err with marker and prefixes it with the non-blank parts of
// stage, operation and message. A nil marker means ErrTransient; a nil err
// yields a leaf error.
func Wrap(marker error, stage, operation, message string, err error) error {
	if marker == nil {
		marker = ErrTransient
	}
	detail := joinNonBlank(stage, operation, message)
	if detail == "" {
		detail = "service failure"
	}
	if err == nil {
		return fmt.Errorf("%w: %s", marker, detail)
	}
	return fmt.Errorf("%w: %s: %w", marker, detail, err)
}

var markerStatus = []struct {
	marker error
	status int
}{
	{ErrValidation, http.StatusBadRequest},
	{ErrNotFound, http.StatusNotFound},
	{ErrConfiguration, http.StatusUnprocessableEntity},
	{ErrModelNotReady, http.StatusServiceUnavailable},
	{ErrTimeout, http.StatusGatewayTimeout},
}

// HTTPStatus maps err to the API status code. Unclassified errors are 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	for _, m := range markerStatus {
		if errors.Is(err, m.marker) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

func joinNonBlank(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ": ")
}
