package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mtlprog/verusns/internal/domain"
	"github.com/mtlprog/verusns/internal/snapshot"
)

// SnapshotService defines snapshot storage operations.
type SnapshotService interface {
	Generate(ctx context.Context, chain string) (domain.NamespaceSnapshot, error)
	GetLatest(ctx context.Context, chain string) (*snapshot.Snapshot, error)
	List(ctx context.Context, chain string, limit int) ([]snapshot.Snapshot, error)
}

// latestSnapshotResponse is a stored snapshot with its namespaces decoded.
type latestSnapshotResponse struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	domain.NamespaceSnapshot
}

// SnapshotHandler provides HTTP endpoints for stored snapshots.
type SnapshotHandler struct {
	chain     string
	snapshots SnapshotService
}

// NewSnapshotHandler creates a new snapshot handler.
func NewSnapshotHandler(chain string, snapshots SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{chain: chain, snapshots: snapshots}
}

// GetLatestSnapshot handles GET /api/v1/snapshots/latest.
func (h *SnapshotHandler) GetLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	s, err := h.snapshots.GetLatest(r.Context(), h.chain)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no snapshots found")
			return
		}
		slog.Error("failed to get latest snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	snap, err := s.Decode()
	if err != nil {
		slog.Error("failed to decode latest snapshot", "id", s.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, latestSnapshotResponse{ID: s.ID, CreatedAt: s.CreatedAt, NamespaceSnapshot: snap})
}

// ListSnapshots handles GET /api/v1/snapshots.
func (h *SnapshotHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	const maxLimit = 365
	limit := 30
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = min(n, maxLimit)
		}
	}

	snapshots, err := h.snapshots.List(r.Context(), h.chain, limit)
	if err != nil {
		slog.Error("failed to list snapshots", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if snapshots == nil {
		snapshots = []snapshot.Snapshot{}
	}
	writeJSON(w, http.StatusOK, snapshots)
}

// GenerateSnapshot handles POST /api/v1/snapshots/generate.
func (h *SnapshotHandler) GenerateSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshots.Generate(r.Context(), h.chain)
	if err != nil {
		slog.Error("failed to generate snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate snapshot")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
