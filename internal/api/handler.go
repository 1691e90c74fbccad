package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mtlprog/verusns/internal/domain"
	"github.com/mtlprog/verusns/internal/namespace"
	"github.com/mtlprog/verusns/internal/verusd"
)

// rpcInvalidAddressOrKey is the daemon error code for an unknown currency.
const rpcInvalidAddressOrKey = -5

// NamespaceService defines the live discovery operations.
type NamespaceService interface {
	DiscoverNamespaces(ctx context.Context) ([]domain.NamespaceOption, error)
	ResolveRootCurrency(ctx context.Context, chainID string) (domain.NamespaceOption, error)
	GetCurrencyDetail(ctx context.Context, nameOrID string) (domain.CurrencyDetail, error)
}

// HeightSource reports the daemon's block height.
type HeightSource interface {
	GetBlockCount(ctx context.Context) (int64, error)
}

// Handler provides HTTP endpoints for live namespace discovery.
type Handler struct {
	chain      string
	namespaces NamespaceService
	health     HeightSource
	details    *detailCache
}

// NewHandler creates a new API handler.
func NewHandler(chain string, namespaces NamespaceService, health HeightSource) *Handler {
	return &Handler{chain: chain, namespaces: namespaces, health: health}
}

type namespacesResponse struct {
	Chain      string                   `json:"chain"`
	Count      int                      `json:"count"`
	Namespaces []domain.NamespaceOption `json:"namespaces"`
}

// ListNamespaces handles GET /api/v1/namespaces.
func (h *Handler) ListNamespaces(w http.ResponseWriter, r *http.Request) {
	options, err := h.namespaces.DiscoverNamespaces(r.Context())
	if err != nil {
		slog.Error("failed to discover namespaces", "error", err)
		writeError(w, http.StatusBadGateway, "currency catalog unavailable")
		return
	}
	writeJSON(w, http.StatusOK, namespacesResponse{Chain: h.chain, Count: len(options), Namespaces: options})
}

// GetRootNamespace handles GET /api/v1/namespaces/root/{chain}.
func (h *Handler) GetRootNamespace(w http.ResponseWriter, r *http.Request) {
	chain := r.PathValue("chain")
	option, err := h.namespaces.ResolveRootCurrency(r.Context(), chain)
	if err != nil {
		if errors.Is(err, namespace.ErrUnsupportedChain) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to resolve root currency", "chain", chain, "error", err)
		writeError(w, http.StatusBadGateway, "root currency lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, option)
}

// GetCurrency handles GET /api/v1/currencies/{name}.
func (h *Handler) GetCurrency(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if detail, ok := h.details.get(name); ok {
		writeJSON(w, http.StatusOK, detail)
		return
	}

	detail, err := h.namespaces.GetCurrencyDetail(r.Context(), name)
	if err != nil {
		var rpcErr *verusd.RPCError
		if errors.As(err, &rpcErr) && rpcErr.Code == rpcInvalidAddressOrKey {
			writeError(w, http.StatusNotFound, "currency not found")
			return
		}
		slog.Error("failed to get currency", "name", name, "error", err)
		writeError(w, http.StatusBadGateway, "currency lookup failed")
		return
	}
	h.details.set(name, detail)
	writeJSON(w, http.StatusOK, detail)
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	height, err := h.health.GetBlockCount(r.Context())
	if err != nil {
		slog.Warn("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "daemon unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "chain": h.chain, "blocks": height})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
