// Package namespace discovers the currencies under which identities can be
// registered and resolves which currency each one charges its fee in.
package namespace

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mtlprog/verusns/internal/batch"
	"github.com/mtlprog/verusns/internal/domain"
)

// CatalogClient defines the daemon lookups discovery needs.
type CatalogClient interface {
	ListCurrencies(ctx context.Context) ([]domain.CurrencyInfo, error)
	GetCurrency(ctx context.Context, nameOrID string) (domain.CurrencyDetail, error)
	GetRootCurrency(ctx context.Context, ticker string) (domain.RootCurrency, error)
}

// Service runs namespace discovery against a CatalogClient.
type Service struct {
	catalog CatalogClient
	batch   batch.Options
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithBatchSize sets how many fee currency lookups run at once.
func WithBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batch.GroupSize = n
		}
	}
}

// WithBatchPause sets the delay between two groups of lookups.
func WithBatchPause(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.batch.Pause = d
		}
	}
}

// WithLogger sets the logger for discovery progress and dropped namespaces.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a discovery Service. catalog is required.
func NewService(catalog CatalogClient, opts ...Option) *Service {
	if catalog == nil {
		panic("namespace.NewService: catalog is nil")
	}
	s := &Service{
		catalog: catalog,
		batch:   batch.DefaultOptions(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.batch.Logger = s.logger
	return s
}

// DiscoverNamespaces fetches the currency catalog, keeps the eligible namespaces and
// resolves the fee currency of each. Namespaces whose lookup fails are left out; an
// empty result is not an error. Only a catalog failure fails the call.
func (s *Service) DiscoverNamespaces(ctx context.Context) ([]domain.NamespaceOption, error) {
	catalog, err := s.catalog.ListCurrencies(ctx)
	if err != nil {
		return nil, &StageError{Stage: StageCatalog, Err: err}
	}

	candidates := admitted(catalog)
	s.logger.Info("namespace candidates admitted",
		"catalog", len(catalog),
		"admitted", len(candidates),
		"groups", batch.Groups(len(candidates), s.batch.GroupSize),
	)
	if s.logger.Enabled(ctx, slog.LevelDebug) {
		for _, info := range catalog {
			if reason := RejectReason(info); reason != "" {
				s.logger.Debug("currency rejected", "name", info.Definition.Name, "reason", reason)
			}
		}
	}

	results := batch.Run(ctx, candidates, s.batch, s.resolveNamespace)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discovering namespaces: %w", err)
	}

	options := collect(s.logger, candidates, results)
	s.logger.Info("namespaces discovered", "count", len(options), "dropped", len(candidates)-len(options))
	return options, nil
}

func (s *Service) resolveNamespace(ctx context.Context, def domain.CurrencyDefinition) (domain.NamespaceOption, error) {
	detail, err := s.catalog.GetCurrency(ctx, def.CurrencyID)
	if err != nil {
		return domain.NamespaceOption{}, fmt.Errorf("looking up %s: %w", def.Name, err)
	}

	fee := ResolveFeeCurrency(def, detail)
	if fee.Miss != nil {
		s.logger.Warn("fee currency unresolved, keeping placeholder",
			"name", def.Name,
			"reserve_index", fee.ReserveIndex,
			"fee_currency", fee.Name,
			"error", fee.Miss,
		)
	} else {
		s.logger.Debug("fee currency resolved", "name", def.Name, "fee_currency", fee.Name, "reserve_index", fee.ReserveIndex)
	}

	return domain.NamespaceOption{
		Name:               def.Name,
		CurrencyID:         def.CurrencyID,
		RegistrationFee:    def.IDRegistrationFees,
		FullyQualifiedName: def.FullyQualifiedName,
		FeeCurrencyName:    fee.Name,
		Options:            def.Options,
		IDReferralLevels:   def.IDReferralLevels,
	}, nil
}

// ResolveRootCurrency returns the native currency of chainID as a namespace option.
// Root currencies pay fees in themselves and are treated as referral capable.
func (s *Service) ResolveRootCurrency(ctx context.Context, chainID string) (domain.NamespaceOption, error) {
	ticker, ok := domain.RootCurrencyTicker(chainID)
	if !ok {
		return domain.NamespaceOption{}, fmt.Errorf("%w: %q (known: %v)", ErrUnsupportedChain, chainID, domain.SupportedChains())
	}

	root, err := s.catalog.GetRootCurrency(ctx, ticker)
	if err != nil {
		return domain.NamespaceOption{}, fmt.Errorf("resolving root currency of %s: %w", chainID, err)
	}

	s.logger.Debug("root currency resolved", "chain", chainID, "name", root.Name, "fee", root.IDRegistrationFees)
	return domain.NamespaceOption{
		Name:               root.Name,
		CurrencyID:         root.CurrencyID,
		RegistrationFee:    root.IDRegistrationFees,
		FullyQualifiedName: root.Name,
		FeeCurrencyName:    root.Name,
		Options:            domain.OptionsReferralToken,
		IDReferralLevels:   root.IDReferralLevels,
	}, nil
}

// GetCurrencyDetail looks up a single currency without filtering or fee resolution.
func (s *Service) GetCurrencyDetail(ctx context.Context, nameOrID string) (domain.CurrencyDetail, error) {
	detail, err := s.catalog.GetCurrency(ctx, nameOrID)
	if err != nil {
		return domain.CurrencyDetail{}, fmt.Errorf("getting currency detail: %w", err)
	}
	return detail, nil
}
