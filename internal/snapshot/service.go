package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mtlprog/verusns/internal/domain"
)

// ErrNoRepository is returned by storage operations of a Service built without a Repository.
var ErrNoRepository = errors.New("snapshot storage not configured")

// Discoverer defines the namespace discovery interface.
type Discoverer interface {
	DiscoverNamespaces(ctx context.Context) ([]domain.NamespaceOption, error)
	ResolveRootCurrency(ctx context.Context, chainID string) (domain.NamespaceOption, error)
}

// Service takes and stores discovery snapshots.
type Service struct {
	discoverer Discoverer
	repo       Repository
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source for TakenAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a snapshot Service. repo may be nil, in which case only Take works.
func NewService(discoverer Discoverer, repo Repository, opts ...Option) *Service {
	if discoverer == nil {
		panic("snapshot.NewService: discoverer is nil")
	}
	s := &Service{
		discoverer: discoverer,
		repo:       repo,
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Take runs discovery for chain without storing the result. A failing root
// currency lookup is logged and leaves Root empty.
func (s *Service) Take(ctx context.Context, chain string) (domain.NamespaceSnapshot, error) {
	takenAt := s.now().UTC()

	namespaces, err := s.discoverer.DiscoverNamespaces(ctx)
	if err != nil {
		return domain.NamespaceSnapshot{}, fmt.Errorf("discovering namespaces: %w", err)
	}

	snap := domain.NamespaceSnapshot{
		Chain:      chain,
		TakenAt:    takenAt,
		Namespaces: namespaces,
	}

	root, err := s.discoverer.ResolveRootCurrency(ctx, chain)
	if err != nil {
		s.logger.Warn("root currency unavailable for snapshot", "chain", chain, "error", err)
	} else {
		snap.Root = &root
	}

	return snap, nil
}

// Generate takes a snapshot for chain and stores it.
func (s *Service) Generate(ctx context.Context, chain string) (domain.NamespaceSnapshot, error) {
	if s.repo == nil {
		return domain.NamespaceSnapshot{}, ErrNoRepository
	}

	snap, err := s.Take(ctx, chain)
	if err != nil {
		return domain.NamespaceSnapshot{}, err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return domain.NamespaceSnapshot{}, fmt.Errorf("marshaling snapshot: %w", err)
	}

	id, err := s.repo.Save(ctx, chain, snap.TakenAt, len(snap.Namespaces), data)
	if err != nil {
		return domain.NamespaceSnapshot{}, fmt.Errorf("saving snapshot: %w", err)
	}

	s.logger.Info("snapshot stored", "id", id, "chain", chain, "namespaces", len(snap.Namespaces))
	return snap, nil
}

// GetLatest retrieves the most recent snapshot for chain.
func (s *Service) GetLatest(ctx context.Context, chain string) (*Snapshot, error) {
	if s.repo == nil {
		return nil, ErrNoRepository
	}
	return s.repo.GetLatest(ctx, chain)
}

// List retrieves up to limit snapshots for chain, newest first.
func (s *Service) List(ctx context.Context, chain string, limit int) ([]Snapshot, error) {
	if s.repo == nil {
		return nil, ErrNoRepository
	}
	return s.repo.List(ctx, chain, limit)
}
