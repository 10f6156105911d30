package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func sanitizeOKHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func newSanitizeEcho() *echo.Echo {
	e := echo.New()
	logger := zerolog.New(os.Stderr).With().Logger()
	e.Use(SanitizeWithLogger(logger))
	e.GET("/*", sanitizeOKHandler)
	e.POST("/*", sanitizeOKHandler)
	return e
}

func assertErrorBody(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected an error reason in the response body")
	}
}

func TestSanitize_PathTraversal_DotDot(t *testing.T) {
	e := newSanitizeEcho()

	req := httptest.NewRequest(http.MethodGet, "/../../etc/passwd", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	assertErrorBody(t, rec)
}

func TestSanitize_PathTraversal_EncodedDotDot(t *testing.T) {
	e := newSanitizeEcho()

	req := httptest.NewRequest(http.MethodGet, "/%2e%2e/%2e%2e/etc/passwd", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	assertErrorBody(t, rec)
}

func TestSanitize_NullByte_InQueryParam(t *testing.T) {
	e := newSanitizeEcho()

	req := httptest.NewRequest(http.MethodGet, "/test?name=foo%00bar", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	assertErrorBody(t, rec)
}

func TestSanitize_HeaderInjection_Newline(t *testing.T) {
	e := newSanitizeEcho()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Custom", "value\r\nInjected: header")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	assertErrorBody(t, rec)
}

func TestSanitize_ScriptInjection_InQueryParam(t *testing.T) {
	e := newSanitizeEcho()

	req := httptest.NewRequest(http.MethodGet, "/test?q=%3Cscript%3Ealert(1)%3C/script%3E", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	assertErrorBody(t, rec)
}

func TestSanitize_CleanRequestPassesThrough(t *testing.T) {
	e := newSanitizeEcho()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients?name=Rex&limit=20", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"with\x00null", "withnull"},
		{"keep\nnewlines\tand tabs", "keep\nnewlines\tand tabs"},
		{"bell\x07char", "bellchar"},
	}
	for _, tc := range tests {
		if got := SanitizeString(tc.in); got != tc.want {
			t.Errorf("SanitizeString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
