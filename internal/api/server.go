package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"
)

// Deps are the services behind the HTTP API. Snapshots may be nil, in which
// case the snapshot routes are not registered. A zero CurrencyCacheTTL turns
// off caching of single currency lookups.
type Deps struct {
	Namespaces       NamespaceService
	Snapshots        SnapshotService
	Health           HeightSource
	CurrencyCacheTTL time.Duration
}

// NewServer creates an HTTP server with all routes configured.
func NewServer(port, chain string, deps Deps, adminAPIKey string) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(chain, deps, adminAPIKey),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewRouter builds the API routes.
func NewRouter(chain string, deps Deps, adminAPIKey string) http.Handler {
	handler := NewHandler(chain, deps.Namespaces, deps.Health)
	if deps.CurrencyCacheTTL > 0 {
		handler.details = newDetailCache(deps.CurrencyCacheTTL)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Health)
	mux.HandleFunc("GET /api/v1/namespaces", handler.ListNamespaces)
	mux.HandleFunc("GET /api/v1/namespaces/root/{chain}", handler.GetRootNamespace)
	mux.HandleFunc("GET /api/v1/currencies/{name}", handler.GetCurrency)

	if deps.Snapshots != nil {
		snapHandler := NewSnapshotHandler(chain, deps.Snapshots)
		mux.HandleFunc("GET /api/v1/snapshots/latest", snapHandler.GetLatestSnapshot)
		mux.HandleFunc("GET /api/v1/snapshots", snapHandler.ListSnapshots)

		generateHandler := http.HandlerFunc(snapHandler.GenerateSnapshot)
		if adminAPIKey != "" {
			mux.Handle("POST /api/v1/snapshots/generate", requireAuth(adminAPIKey, generateHandler))
		} else {
			mux.Handle("POST /api/v1/snapshots/generate", generateHandler)
		}
	}

	return mux
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
