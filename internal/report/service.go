package report

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Service binds the pure aggregation functions to the transaction store
// and a clock.
type Service struct {
	txs *transaction.Service
	now func() time.Time
}

func NewService(txSvc *transaction.Service) *Service {
	return &Service{txs: txSvc, now: time.Now}
}

// Dashboard is the full payload the dashboard renders from.
type Dashboard struct {
	Year      int
	Summary   AnnualSummary
	Monthly   []MonthlyTotal
	Breakdown map[transaction.Category]int64
	Years     []int
}

func (s *Service) Dashboard(ctx context.Context, year int) (*Dashboard, error) {
	txs, err := s.txs.List(ctx, transaction.ListFilter{})
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Year:      year,
		Summary:   Summarize(txs, year, s.now()),
		Monthly:   MonthlyTotals(txs, year),
		Breakdown: CategoryBreakdown(txs, year, nil),
		Years:     AvailableYears(txs, s.now()),
	}, nil
}

func (s *Service) MonthlyTotals(ctx context.Context, year int) ([]MonthlyTotal, error) {
	txs, err := s.txs.List(ctx, transaction.ListFilter{})
	if err != nil {
		return nil, err
	}

	return MonthlyTotals(txs, year), nil
}

func (s *Service) CategoryBreakdown(ctx context.Context, year int, month *time.Month) (map[transaction.Category]int64, error) {
	txs, err := s.txs.List(ctx, transaction.ListFilter{})
	if err != nil {
		return nil, err
	}

	return CategoryBreakdown(txs, year, month), nil
}

func (s *Service) AnnualSummary(ctx context.Context, year int) (AnnualSummary, error) {
	txs, err := s.txs.List(ctx, transaction.ListFilter{})
	if err != nil {
		return AnnualSummary{}, err
	}

	return Summarize(txs, year, s.now()), nil
}

// CurrentYear reports the year the dashboard defaults to.
func (s *Service) CurrentYear() int {
	return s.now().Year()
}
