package httpmetrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"":                    "/",
		"/":                   "/",
		"/health":             "/health",
		"/auth/login":         "/auth/login",
		"/users":              "/users",
		"/users/alice":        "/users/{username}",
		"/users/alice/to":     "/users/{username}/to",
		"/users/bob/from":     "/users/{username}/from",
		"/messages/42":        "/messages/{id}",
		"/messages/42/read":   "/messages/{id}/read",
		"/messages/abc":       "/messages/{param}",
		"/users/a/b/c/d/e/f":  "/users/{username}/b/{rest}",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizePath(in), in)
	}
}

func TestCollector_PassesStatusThrough(t *testing.T) {
	h := New().Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/alice", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
