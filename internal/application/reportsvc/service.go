package reportsvc

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rml/bookkeeper/internal/application/datacache"
	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/rml/bookkeeper/internal/domain/report"
	"github.com/rml/bookkeeper/internal/domain/shared"
	"github.com/rml/bookkeeper/internal/infrastructure/config"
	"github.com/rml/bookkeeper/internal/infrastructure/printing"
	"go.uber.org/zap"
)

// Result is a rendered report ready to send to the client
type Result struct {
	Filename string
	Data     []byte
}

// Service aggregates the cached books and renders report documents. Rendering
// is single-flight per process: a request arriving while another report is
// rendering is rejected rather than queued.
type Service struct {
	caches     *datacache.Manager
	cfg        config.ReportConfig
	log        *zap.Logger
	generating atomic.Bool
	clock      func() time.Time
}

// NewService creates the report service
func NewService(caches *datacache.Manager, cfg config.ReportConfig, log *zap.Logger) *Service {
	return &Service{
		caches: caches,
		cfg:    cfg,
		log:    log.Named("reports"),
		clock:  time.Now,
	}
}

// filename follows <Subject>_Report_<yyyy-MM-dd>_<OrgSuffix>.pdf
func (s *Service) filename(subject string, now time.Time) string {
	return fmt.Sprintf("%s_Report_%s_%s.pdf", subject, now.Format("2006-01-02"), s.cfg.OrgSuffix)
}

func (s *Service) acquire() error {
	if !s.generating.CompareAndSwap(false, true) {
		return shared.ErrReportInFlight
	}
	return nil
}

// renderContext bounds one report generation by the configured render timeout
func (s *Service) renderContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.RenderTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.RenderTimeout)
}

// DebtsReport renders the outstanding debts document
func (s *Service) DebtsReport(ctx context.Context, userID string, filter report.DateFilter) (*Result, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.generating.Store(false)

	ctx, cancel := s.renderContext(ctx)
	defer cancel()

	cache := s.caches.Acquire(ctx, userID)
	debts, err := cache.Debts()
	if err != nil {
		return nil, err
	}
	products, err := cache.Products()
	if err != nil {
		return nil, err
	}

	now := s.clock()
	data := report.BuildDebtsReport(debts, products, filter, now)
	pdf, err := printing.RenderDebtsReport(s.cfg, data, s.logo(ctx))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.log.Info("debts report rendered",
		zap.String("period", filter.Label()),
		zap.Int("sections", len(data.Sections)))
	return &Result{Filename: s.filename("Outstanding_Debts", now), Data: pdf}, nil
}

// ExpensesReport renders the expenses document
func (s *Service) ExpensesReport(ctx context.Context, userID string, filter report.DateFilter) (*Result, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.generating.Store(false)

	ctx, cancel := s.renderContext(ctx)
	defer cancel()

	cache := s.caches.Acquire(ctx, userID)
	expenses, err := cache.Expenses()
	if err != nil {
		return nil, err
	}
	categories, err := cache.Categories()
	if err != nil {
		return nil, err
	}

	now := s.clock()
	data := report.BuildExpensesReport(expenses, categories, filter, now)
	pdf, err := printing.RenderExpensesReport(s.cfg, data, s.logo(ctx))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.log.Info("expenses report rendered",
		zap.String("period", filter.Label()),
		zap.Int("rows", len(data.Rows)))
	return &Result{Filename: s.filename("Expenses", now), Data: pdf}, nil
}

// SuppliesReport renders the supplies reconciliation document
func (s *Service) SuppliesReport(ctx context.Context, userID string, filter report.DateFilter) (*Result, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.generating.Store(false)

	ctx, cancel := s.renderContext(ctx)
	defer cancel()

	cache := s.caches.Acquire(ctx, userID)
	supplies, err := cache.Supplies()
	if err != nil {
		return nil, err
	}
	sales, err := cache.Sales()
	if err != nil {
		return nil, err
	}
	products, err := cache.Products()
	if err != nil {
		return nil, err
	}

	now := s.clock()
	data := report.BuildSupplyRollup(supplies, sales, products, filter, now)
	pdf, err := printing.RenderSuppliesReport(s.cfg, data, s.logo(ctx))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.log.Info("supplies report rendered",
		zap.String("period", filter.Label()),
		zap.Int("rows", len(data.Rows)))
	return &Result{Filename: s.filename("Supplies", now), Data: pdf}, nil
}

// QuickStats computes the dashboard headline from the cached books
func (s *Service) QuickStats(ctx context.Context, userID string, filter report.DateFilter) (report.QuickStats, error) {
	cache := s.caches.Acquire(ctx, userID)
	sales, err := cache.Sales()
	if err != nil {
		return report.QuickStats{}, err
	}
	expenses, err := cache.Expenses()
	if err != nil {
		return report.QuickStats{}, err
	}
	debts, err := cache.Debts()
	if err != nil {
		return report.QuickStats{}, err
	}
	clients, err := cache.Clients()
	if err != nil {
		return report.QuickStats{}, err
	}
	products, err := cache.Products()
	if err != nil {
		return report.QuickStats{}, err
	}
	return report.BuildQuickStats(sales, expenses, debts, clients, products, filter, s.clock()), nil
}

// CategoryBreakdown totals the cached expenses by category
func (s *Service) CategoryBreakdown(ctx context.Context, userID string, filter report.DateFilter) ([]report.CategoryTotal, error) {
	cache := s.caches.Acquire(ctx, userID)
	expenses, err := cache.Expenses()
	if err != nil {
		return nil, err
	}
	categories, err := cache.Categories()
	if err != nil {
		return nil, err
	}
	return report.ExpensesByCategory(expenses, categories, filter, s.clock()), nil
}

// DebtSummary computes the debt metrics for the debts dashboard
func (s *Service) DebtSummary(ctx context.Context, userID string, filter report.DateFilter) (report.DebtSummary, error) {
	cache := s.caches.Acquire(ctx, userID)
	debts, err := cache.Debts()
	if err != nil {
		return report.DebtSummary{}, err
	}
	now := s.clock()
	filtered := report.FilterByDate(debts, func(d ledger.Debt) (time.Time, bool) {
		return d.CreatedAt, !d.CreatedAt.IsZero()
	}, filter, now)
	return report.SummarizeDebts(filtered, now), nil
}

func (s *Service) logo(ctx context.Context) []byte {
	return printing.FetchLogo(ctx, s.cfg.LogoURL, s.cfg.LogoTimeout, s.log)
}
