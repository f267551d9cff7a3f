package service

import (
	"fmt"
	"testing"
	"time"

	"taraas/config"
	"taraas/internal/clock"
	"taraas/internal/domain"
	"taraas/internal/models"
	"taraas/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestMonthWindow(t *testing.T) {
	start, end, err := MonthWindow("2025-06")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC), end)

	// leap February
	start, end, err = MonthWindow("2024-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), end)

	for _, bad := range []string{"", "2025", "2025-6", "2025-13", "June 2025"} {
		_, _, err := MonthWindow(bad)
		assert.ErrorIs(t, err, ErrInvalidBillingMonth, "input %q", bad)
	}
}

func TestPreviousMonth(t *testing.T) {
	assert.Equal(t, "2024-12", PreviousMonth(time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-02", PreviousMonth(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
}

type settlementFixture struct {
	svc      *SettlementService
	db       *gorm.DB
	clk      *clock.Fake
	customer models.Customer
}

func newSettlementFixture(t *testing.T) *settlementFixture {
	t.Helper()
	db := newTestDB(t)
	clk := clock.NewFake(time.Date(2025, 7, 1, 2, 0, 0, 0, time.UTC))
	svc := NewSettlementService(
		repository.NewProviderRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewStatementRepository(db),
		config.CommissionConfig{Percentage: 5.0},
		clk,
		zap.NewNop(),
	)
	customer := models.Customer{Name: "Asha", Email: "asha@example.com", Role: domain.RoleCustomer}
	require.NoError(t, db.Create(&customer).Error)
	return &settlementFixture{svc: svc, db: db, clk: clk, customer: customer}
}

func (f *settlementFixture) addProvider(t *testing.T, name string) models.Provider {
	t.Helper()
	p := models.Provider{Name: name, DeliveryType: domain.DeliveryLocal}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

func (f *settlementFixture) addTx(t *testing.T, providerID uint, amount float64, status string, createdAt time.Time) models.Transaction {
	t.Helper()
	tx := models.Transaction{
		Reference:  fmt.Sprintf("ref-%d-%s-%d", providerID, status, time.Now().UnixNano()),
		ProviderID: providerID,
		CustomerID: f.customer.ID,
		Amount:     amount,
		Status:     status,
		CreatedAt:  createdAt,
	}
	require.NoError(t, f.db.Create(&tx).Error)
	return tx
}

func (f *settlementFixture) statements(t *testing.T, providerID uint, month string) []models.Statement {
	t.Helper()
	var out []models.Statement
	require.NoError(t, f.db.Where("provider_id = ? AND billing_month = ?", providerID, month).Find(&out).Error)
	return out
}

func TestSettleMonthCreatesStatement(t *testing.T) {
	f := newSettlementFixture(t)
	p := f.addProvider(t, "Plumber")

	june := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	tx1 := f.addTx(t, p.ID, 1000, domain.TxCompleted, june)
	tx2 := f.addTx(t, p.ID, 500, domain.TxCompleted, june.Add(48*time.Hour))
	pending := f.addTx(t, p.ID, 900, domain.TxInitiated, june)
	julyTx := f.addTx(t, p.ID, 700, domain.TxCompleted, time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC))

	success, failures, err := f.svc.SettleMonth("2025-06", false, domain.ActorAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, success)
	assert.Zero(t, failures)

	stmts := f.statements(t, p.ID, "2025-06")
	require.Len(t, stmts, 1)
	s := stmts[0]
	assert.InDelta(t, 1500.0, s.ConfirmedTotal, 0.0001)
	assert.InDelta(t, 5.0, s.CommissionPercentage, 0.0001)
	assert.InDelta(t, 75.0, s.CommissionAmount, 0.0001)
	assert.Equal(t, domain.StatementUnpaid, s.Status)
	assert.Equal(t, domain.ActorAdmin, s.GeneratedBy)
	assert.WithinDuration(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), s.BillingStartDate, time.Second)
	assert.WithinDuration(t, f.clk.Now(), s.GeneratedAt, time.Second)

	for _, id := range []uint{tx1.ID, tx2.ID} {
		var tx models.Transaction
		require.NoError(t, f.db.First(&tx, id).Error)
		assert.True(t, tx.Billed, "transaction %d", id)
	}
	for _, id := range []uint{pending.ID, julyTx.ID} {
		var tx models.Transaction
		require.NoError(t, f.db.First(&tx, id).Error)
		assert.False(t, tx.Billed, "transaction %d", id)
	}
}

func TestSettleMonthIsIdempotent(t *testing.T) {
	f := newSettlementFixture(t)
	p := f.addProvider(t, "Plumber")
	f.addTx(t, p.ID, 1000, domain.TxCompleted, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC))

	success, _, err := f.svc.SettleMonth("2025-06", false, domain.ActorSystem)
	require.NoError(t, err)
	assert.Equal(t, 1, success)

	success, failures, err := f.svc.SettleMonth("2025-06", false, domain.ActorSystem)
	require.NoError(t, err)
	assert.Zero(t, success)
	assert.Zero(t, failures)
	assert.Len(t, f.statements(t, p.ID, "2025-06"), 1)
}

func TestSettleMonthSkipsInactiveProvider(t *testing.T) {
	f := newSettlementFixture(t)
	active := f.addProvider(t, "Active")
	idle := f.addProvider(t, "Idle")
	f.addTx(t, active.ID, 200, domain.TxCompleted, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC))

	success, failures, err := f.svc.SettleMonth("2025-06", false, domain.ActorSystem)
	require.NoError(t, err)
	assert.Equal(t, 1, success)
	assert.Zero(t, failures)
	assert.Empty(t, f.statements(t, idle.ID, "2025-06"))
}

func TestSettleMonthForceRecalculate(t *testing.T) {
	f := newSettlementFixture(t)
	p := f.addProvider(t, "Plumber")
	f.addTx(t, p.ID, 1000, domain.TxCompleted, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC))

	_, _, err := f.svc.SettleMonth("2025-06", false, domain.ActorSystem)
	require.NoError(t, err)

	// A late-arriving completed transaction for the same month.
	f.addTx(t, p.ID, 400, domain.TxCompleted, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC))

	success, _, err := f.svc.SettleMonth("2025-06", true, domain.ActorAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, success)

	// Forced runs append a second statement covering only transactions that
	// were still unbilled.
	stmts := f.statements(t, p.ID, "2025-06")
	require.Len(t, stmts, 2)
	assert.InDelta(t, 400.0, stmts[1].ConfirmedTotal, 0.0001)
	assert.InDelta(t, 20.0, stmts[1].CommissionAmount, 0.0001)
}

func TestSettleMonthRoundsCommission(t *testing.T) {
	f := newSettlementFixture(t)
	p := f.addProvider(t, "Plumber")
	f.addTx(t, p.ID, 333.33, domain.TxCompleted, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC))

	_, _, err := f.svc.SettleMonth("2025-06", false, domain.ActorSystem)
	require.NoError(t, err)

	stmts := f.statements(t, p.ID, "2025-06")
	require.Len(t, stmts, 1)
	// 333.33 * 5% = 16.6665, rounded to cents
	assert.InDelta(t, 16.67, stmts[0].CommissionAmount, 0.0001)
}

func TestSettleMonthIsolatesProviderFailure(t *testing.T) {
	f := newSettlementFixture(t)
	good := f.addProvider(t, "Good")
	bad := f.addProvider(t, "Bad")
	june := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	f.addTx(t, good.ID, 1000, domain.TxCompleted, june)
	f.addTx(t, bad.ID, 500, domain.TxCompleted, june)

	// Fail the statement insert for one provider only.
	err := f.db.Callback().Create().Before("gorm:create").Register("fail_bad_provider", func(tx *gorm.DB) {
		if s, ok := tx.Statement.Dest.(*models.Statement); ok && s.ProviderID == bad.ID {
			tx.AddError(assert.AnError)
		}
	})
	require.NoError(t, err)

	success, failures, err := f.svc.SettleMonth("2025-06", false, domain.ActorSystem)
	require.NoError(t, err)
	assert.Equal(t, 1, success)
	assert.Equal(t, 1, failures)
	assert.Len(t, f.statements(t, good.ID, "2025-06"), 1)
	assert.Empty(t, f.statements(t, bad.ID, "2025-06"))
}

func TestSettleMonthRejectsBadMonth(t *testing.T) {
	f := newSettlementFixture(t)
	_, _, err := f.svc.SettleMonth("not-a-month", false, domain.ActorAdmin)
	assert.ErrorIs(t, err, ErrInvalidBillingMonth)
}

func TestSettlePreviousMonth(t *testing.T) {
	f := newSettlementFixture(t)
	p := f.addProvider(t, "Plumber")
	f.addTx(t, p.ID, 1000, domain.TxCompleted, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))

	// Clock is 2025-07-01 02:00 UTC, so the scheduled run settles June.
	success, failures, err := f.svc.SettlePreviousMonth()
	require.NoError(t, err)
	assert.Equal(t, 1, success)
	assert.Zero(t, failures)

	stmts := f.statements(t, p.ID, "2025-06")
	require.Len(t, stmts, 1)
	assert.Equal(t, domain.ActorSystem, stmts[0].GeneratedBy)
}
