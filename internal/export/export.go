package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/verusns/internal/domain"
)

// Sheet names used by every writer.
const (
	NamespacesSheet = "NAMESPACES"
	HistorySheet    = "HISTORY"
)

var namespaceHeaders = []any{
	"Name", "Fully Qualified Name", "Currency ID", "Registration Fee",
	"Fee Currency", "Options", "Referral Levels", "Root",
}

var historyHeaders = []any{"Taken At", "Chain", "Namespaces", "Reserve Fee Namespaces", "Root Currency"}

// Report is one snapshot laid out as spreadsheet rows.
type Report struct {
	Chain   string
	TakenAt time.Time
	// Namespaces replaces the NAMESPACES sheet. The first row is the header.
	Namespaces [][]any
	// History is appended to the HISTORY sheet below historyHeaders.
	History []any
}

// SheetWriter writes a report to a spreadsheet destination.
type SheetWriter interface {
	Write(ctx context.Context, report Report) error
}

// MultiWriter writes to every writer and joins their errors.
type MultiWriter []SheetWriter

func (m MultiWriter) Write(ctx context.Context, report Report) error {
	var errs []error
	for _, w := range m {
		if err := w.Write(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Service turns snapshots into reports and delegates writing to a SheetWriter.
type Service struct {
	writer SheetWriter
}

// NewService creates a new export Service.
func NewService(writer SheetWriter) *Service {
	if writer == nil {
		panic("export.NewService: writer is nil")
	}
	return &Service{writer: writer}
}

// Export writes snap to the configured destinations.
// Implements worker.AfterSnapshotHook.
func (s *Service) Export(ctx context.Context, snap domain.NamespaceSnapshot) error {
	report := BuildReport(snap)
	if err := s.writer.Write(ctx, report); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	slog.Debug("export: report written", "chain", snap.Chain, "rows", len(report.Namespaces)-1)
	return nil
}

// BuildReport lays out snap as rows: the root currency first, then the
// namespaces in snapshot order.
func BuildReport(snap domain.NamespaceSnapshot) Report {
	rows := make([][]any, 0, len(snap.Namespaces)+2)
	rows = append(rows, namespaceHeaders)

	rootName := ""
	if snap.Root != nil {
		rootName = snap.Root.Name
		rows = append(rows, namespaceRow(*snap.Root, true))
	}
	for _, ns := range snap.Namespaces {
		rows = append(rows, namespaceRow(ns, false))
	}

	reserveFee := lo.CountBy(snap.Namespaces, func(ns domain.NamespaceOption) bool {
		return ns.FeeCurrencyName != ns.Name
	})

	return Report{
		Chain:      snap.Chain,
		TakenAt:    snap.TakenAt,
		Namespaces: rows,
		History: []any{
			snap.TakenAt.UTC().Format(time.DateTime),
			snap.Chain,
			len(snap.Namespaces),
			reserveFee,
			rootName,
		},
	}
}

func namespaceRow(ns domain.NamespaceOption, root bool) []any {
	rootFlag := 0
	if root {
		rootFlag = 1
	}
	return []any{
		ns.Name,
		ns.FullyQualifiedName,
		ns.CurrencyID,
		toFloat(ns.RegistrationFee),
		ns.FeeCurrencyName,
		int(ns.Options),
		ns.IDReferralLevels,
		rootFlag,
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
