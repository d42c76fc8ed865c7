package errors_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/chalix/coursehub/internal/app/features/errors"
)

// render runs an error handler and returns the status code. The
// template engine is not booted in tests, so the body render is
// allowed to panic after the status is written.
func render(t *testing.T, fn http.HandlerFunc) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/some/page", nil)
	rec := httptest.NewRecorder()
	func() {
		defer func() { recover() }()
		fn(rec, req)
	}()
	return rec.Code
}

func TestNotFoundStatus(t *testing.T) {
	h := uierrors.NewHandler()
	if code := render(t, h.NotFound); code != http.StatusNotFound {
		t.Errorf("NotFound wrote status %d, want 404", code)
	}
}

func TestForbiddenStatus(t *testing.T) {
	// Installed as the CSRF failure handler; a rejected post must come
	// back as a 403 page.
	h := uierrors.NewHandler()
	if code := render(t, h.Forbidden); code != http.StatusForbidden {
		t.Errorf("Forbidden wrote status %d, want 403", code)
	}
}
