package service

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"taraas/config"
	"taraas/internal/clock"
	"taraas/internal/domain"
	"taraas/internal/models"
	"taraas/internal/repository"

	"go.uber.org/zap"
)

var ErrInvalidBillingMonth = errors.New("billing month must be in YYYY-MM format")

// MonthWindow converts a YYYY-MM billing month into its window: the first
// instant of the month through the last second of its final day, in UTC.
func MonthWindow(billingMonth string) (start, end time.Time, err error) {
	t, err := time.Parse("2006-01", billingMonth)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidBillingMonth
	}
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end, nil
}

// PreviousMonth formats the calendar month before now as YYYY-MM.
func PreviousMonth(now time.Time) string {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, -1, 0).Format("2006-01")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SettlementService computes monthly commission statements from completed
// transactions and marks them billed exactly once. One provider's failure
// never aborts the batch.
type SettlementService struct {
	providers    *repository.ProviderRepository
	transactions *repository.TransactionRepository
	statements   *repository.StatementRepository
	cfg          config.CommissionConfig
	clock        clock.Clock
	log          *zap.Logger

	// Serializes whole runs: two concurrent forced runs for the same month
	// would otherwise race the idempotency guard.
	mu sync.Mutex
}

func NewSettlementService(
	providers *repository.ProviderRepository,
	transactions *repository.TransactionRepository,
	statements *repository.StatementRepository,
	cfg config.CommissionConfig,
	clk clock.Clock,
	log *zap.Logger,
) *SettlementService {
	return &SettlementService{
		providers:    providers,
		transactions: transactions,
		statements:   statements,
		cfg:          cfg,
		clock:        clk,
		log:          log.Named("settlement"),
	}
}

// SettleMonth runs settlement for every provider for the given billing month.
// Returns per-provider success and failure counts. A non-nil error is only
// returned when the run cannot start at all (bad month, provider scan failed).
func (s *SettlementService) SettleMonth(billingMonth string, forceRecalculate bool, actor string) (successCount, failureCount int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start, end, err := MonthWindow(billingMonth)
	if err != nil {
		return 0, 0, err
	}

	providerIDs, err := s.providers.ListIDs()
	if err != nil {
		return 0, 0, fmt.Errorf("list providers: %w", err)
	}

	s.log.Info("settlement run started",
		zap.String("billing_month", billingMonth),
		zap.Bool("force", forceRecalculate),
		zap.String("actor", actor),
		zap.Int("providers", len(providerIDs)),
	)

	for _, providerID := range providerIDs {
		settled, perr := s.settleProvider(providerID, billingMonth, start, end, forceRecalculate, actor)
		if perr != nil {
			failureCount++
			s.log.Error("provider settlement failed",
				zap.Uint("provider_id", providerID),
				zap.String("billing_month", billingMonth),
				zap.Error(perr),
			)
			continue
		}
		if settled {
			successCount++
		}
	}

	s.log.Info("settlement run finished",
		zap.String("billing_month", billingMonth),
		zap.Int("success", successCount),
		zap.Int("failures", failureCount),
	)
	return successCount, failureCount, nil
}

// SettlePreviousMonth is the scheduled entry point: previous calendar month,
// no forced recomputation, attributed to SYSTEM.
func (s *SettlementService) SettlePreviousMonth() (int, int, error) {
	return s.SettleMonth(PreviousMonth(s.clock.Now()), false, domain.ActorSystem)
}

// settleProvider is one isolated unit of work. Returns settled=false when the
// provider was skipped (already settled, or no eligible transactions).
func (s *SettlementService) settleProvider(providerID uint, billingMonth string, start, end time.Time, force bool, actor string) (settled bool, err error) {
	exists, err := s.statements.ExistsForProviderMonth(providerID, billingMonth)
	if err != nil {
		return false, fmt.Errorf("idempotency check: %w", err)
	}
	if exists && !force {
		return false, nil
	}

	txs, err := s.transactions.FindBillable(providerID, start, end)
	if err != nil {
		return false, fmt.Errorf("fetch billable transactions: %w", err)
	}
	if len(txs) == 0 {
		return false, nil
	}

	var confirmedTotal float64
	for _, tx := range txs {
		confirmedTotal += tx.Amount
	}
	commissionAmount := round2(confirmedTotal * s.cfg.Percentage / 100)

	// Re-check right before the write: another run may have settled this
	// provider since the first check.
	exists, err = s.statements.ExistsForProviderMonth(providerID, billingMonth)
	if err != nil {
		return false, fmt.Errorf("idempotency recheck: %w", err)
	}
	if exists && !force {
		return false, nil
	}

	statement := &models.Statement{
		ProviderID:           providerID,
		BillingMonth:         billingMonth,
		BillingStartDate:     start,
		BillingEndDate:       end,
		ConfirmedTotal:       confirmedTotal,
		CommissionPercentage: s.cfg.Percentage,
		CommissionAmount:     commissionAmount,
		Status:               domain.StatementUnpaid,
		GeneratedAt:          s.clock.Now(),
		GeneratedBy:          actor,
	}
	if err := s.statements.Create(statement); err != nil {
		return false, fmt.Errorf("persist statement: %w", err)
	}

	for i := range txs {
		if err := s.transactions.MarkBilled(&txs[i]); err != nil {
			return false, fmt.Errorf("mark transaction %d billed: %w", txs[i].ID, err)
		}
	}
	return true, nil
}
