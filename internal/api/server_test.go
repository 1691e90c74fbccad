package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{"valid token", "Bearer secret-key", http.StatusOK, true},
		{"missing header", "", http.StatusUnauthorized, false},
		{"wrong token", "Bearer wrong-key", http.StatusUnauthorized, false},
		{"basic scheme", "Basic secret-key", http.StatusUnauthorized, false},
		{"bare token", "secret-key", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			requireAuth("secret-key", next).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}

func TestRouterWithoutSnapshots(t *testing.T) {
	router := NewRouter("verus", Deps{Namespaces: &mockNamespaces{}, Health: &mockHeight{height: 1}}, "")

	for _, path := range []string{"/api/v1/snapshots/latest", "/api/v1/snapshots"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterProtectsGenerate(t *testing.T) {
	snaps := &mockSnapshots{}
	router := NewRouter("verus", Deps{Namespaces: &mockNamespaces{}, Snapshots: snaps}, "admin")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/snapshots/generate", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, snaps.generated)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/snapshots/generate", nil)
	req.Header.Set("Authorization", "Bearer admin")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, snaps.generated)
}

func TestNewServerAddr(t *testing.T) {
	srv := NewServer("9090", "verus", Deps{Namespaces: &mockNamespaces{}}, "")
	assert.Equal(t, ":9090", srv.Addr)
	assert.NotNil(t, srv.Handler)
}
