package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pacpro-api/internal/application/event"
	"github.com/pacpro-api/internal/domain"
	"github.com/pacpro-api/internal/infrastructure/dynamo"
	"go.uber.org/zap"
)

type Service interface {
	MonthlyTotals(ctx context.Context, storeID, yearMonth string) (*domain.MonthlyTotals, error)
	RecomputeStoreMonth(ctx context.Context, storeID string, month, year int) (*domain.MonthlyTotals, error)
	Backfill(ctx context.Context, storeID string) (int, error)
	HandleInvoiceWrite(ctx context.Context, ev event.Event) error
}

type invoiceStore interface {
	ListByStoreMonth(ctx context.Context, storeID string, month, year int) ([]domain.Invoice, error)
	ScanStoreMonths(ctx context.Context, storeID string) ([]dynamo.StoreMonth, error)
}

type totalsStore interface {
	Put(ctx context.Context, t *domain.MonthlyTotals) error
	Get(ctx context.Context, storeMonth string) (*domain.MonthlyTotals, error)
}

type service struct {
	invoices invoiceStore
	totals   totalsStore
	log      *zap.Logger
}

func NewService(invoices invoiceStore, totals totalsStore, log *zap.Logger) Service {
	return &service{invoices: invoices, totals: totals, log: log}
}

// ParseYearMonth validates a YYYYMM path segment.
func ParseYearMonth(yearMonth string) (month, year int, err error) {
	if len(yearMonth) != 6 {
		return 0, 0, fmt.Errorf("period must be YYYYMM: %w", domain.ErrBadRequest)
	}
	year, err = strconv.Atoi(yearMonth[:4])
	if err != nil {
		return 0, 0, fmt.Errorf("period must be YYYYMM: %w", domain.ErrBadRequest)
	}
	month, err = strconv.Atoi(yearMonth[4:])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("period month out of range: %w", domain.ErrBadRequest)
	}
	return month, year, nil
}

func (s *service) MonthlyTotals(ctx context.Context, storeID, yearMonth string) (*domain.MonthlyTotals, error) {
	month, year, err := ParseYearMonth(yearMonth)
	if err != nil {
		return nil, err
	}
	return s.totals.Get(ctx, domain.StoreMonthKey(storeID, month, year))
}

// RecomputeStoreMonth rebuilds one totals document from the month's invoices.
// Every canonical category appears in the result, zero when no invoice hit
// it, so the report grid never has holes.
func (s *service) RecomputeStoreMonth(ctx context.Context, storeID string, month, year int) (*domain.MonthlyTotals, error) {
	invoices, err := s.invoices.ListByStoreMonth(ctx, storeID, month, year)
	if err != nil {
		return nil, err
	}
	totals := make(map[string]float64, len(domain.InvoiceCategoryIDs))
	for _, category := range domain.InvoiceCategoryIDs {
		totals[category] = 0
	}
	for _, inv := range invoices {
		for category, amounts := range inv.Categories {
			for _, amount := range amounts {
				totals[category] += amount
			}
		}
	}
	doc := &domain.MonthlyTotals{
		StoreMonth:  domain.StoreMonthKey(storeID, month, year),
		StoreID:     storeID,
		TargetMonth: month,
		TargetYear:  year,
		Totals:      totals,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.totals.Put(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Backfill recomputes every store-month that has at least one invoice.
// storeID narrows the scan when non-empty. Returns the number of totals
// documents rebuilt.
func (s *service) Backfill(ctx context.Context, storeID string) (int, error) {
	months, err := s.invoices.ScanStoreMonths(ctx, storeID)
	if err != nil {
		return 0, err
	}
	for _, m := range months {
		if _, err := s.RecomputeStoreMonth(ctx, m.StoreID, m.TargetMonth, m.TargetYear); err != nil {
			return 0, fmt.Errorf("recompute %s %d-%02d: %w", m.StoreID, m.TargetYear, m.TargetMonth, err)
		}
	}
	return len(months), nil
}

// HandleInvoiceWrite keeps the monthly totals current: any invoice create or
// delete recomputes that invoice's store-month.
func (s *service) HandleInvoiceWrite(ctx context.Context, ev event.Event) error {
	inv := ev.Invoice
	if inv == nil {
		return fmt.Errorf("invoice event %s has no invoice snapshot", ev.ID)
	}
	if _, err := s.RecomputeStoreMonth(ctx, inv.StoreID, inv.TargetMonth, inv.TargetYear); err != nil {
		return err
	}
	s.log.Debug("monthly totals recomputed",
		zap.String("storeID", inv.StoreID),
		zap.Int("month", inv.TargetMonth),
		zap.Int("year", inv.TargetYear))
	return nil
}
