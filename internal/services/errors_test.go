package services_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"scribe/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "transcription", "extract audio", "ffmpeg failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"transcription", "extract audio", "ffmpeg failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, " ", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{services.Wrap(services.ErrValidation, "text", "validate", "text is empty", nil), http.StatusBadRequest},
		{services.Wrap(services.ErrNotFound, "transcription", "stat", "missing", nil), http.StatusNotFound},
		{services.Wrap(services.ErrConfiguration, "text", "settings", "bad", nil), http.StatusUnprocessableEntity},
		{services.Wrap(services.ErrModelNotReady, "transcription", "recognize", "uvx missing", nil), http.StatusServiceUnavailable},
		{services.Wrap(services.ErrTimeout, "transcription", "extract", "too slow", nil), http.StatusGatewayTimeout},
		{fmt.Errorf("outer: %w", services.Wrap(services.ErrExternalTool, "", "", "", nil)), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := services.HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
