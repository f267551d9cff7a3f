package repository

import (
	"time"

	"taraas/internal/domain"
	"taraas/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(tx *models.Transaction) error {
	return r.db.Create(tx).Error
}

func (r *TransactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.First(&tx, id).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *TransactionRepository) Update(tx *models.Transaction) error {
	return r.db.Save(tx).Error
}

func (r *TransactionRepository) ListByCustomer(customerID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&txs).Error
	return txs, err
}

func (r *TransactionRepository) ListByProvider(providerID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.Where("provider_id = ?", providerID).Order("created_at DESC").Find(&txs).Error
	return txs, err
}

// CountCompletedByProviderIDs batch-counts COMPLETED transactions per
// provider for the trust metrics join.
func (r *TransactionRepository) CountCompletedByProviderIDs(providerIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(providerIDs))
	if len(providerIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		ProviderID uint
		Count      int64
	}
	err := r.db.Model(&models.Transaction{}).
		Select("provider_id, COUNT(*) AS count").
		Where("provider_id IN ? AND status = ?", providerIDs, domain.TxCompleted).
		Group("provider_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ProviderID] = row.Count
	}
	return counts, nil
}

// FindBillable returns COMPLETED, not-yet-billed transactions for a provider
// created within [start, end]. This is the settlement eligibility filter.
func (r *TransactionRepository) FindBillable(providerID uint, start, end time.Time) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.
		Where("provider_id = ? AND status = ? AND billed = ?", providerID, domain.TxCompleted, false).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Find(&txs).Error
	return txs, err
}

// MarkBilled flips the billed flag on a single transaction.
func (r *TransactionRepository) MarkBilled(tx *models.Transaction) error {
	tx.Billed = true
	return r.db.Model(tx).Update("billed", true).Error
}

// FindCompletedInRange powers the insights turnover metrics, regardless of
// billing state.
func (r *TransactionRepository) FindCompletedInRange(providerID uint, start, end time.Time) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.
		Where("provider_id = ? AND status = ?", providerID, domain.TxCompleted).
		Where("created_at >= ? AND created_at < ?", start, end).
		Find(&txs).Error
	return txs, err
}

// SumCompletedByCustomerSince totals a customer's COMPLETED spend after the
// cutoff, for buyer tier computation.
func (r *TransactionRepository) SumCompletedByCustomerSince(customerID uint, since time.Time) (float64, error) {
	var total *float64
	err := r.db.Model(&models.Transaction{}).
		Select("SUM(amount)").
		Where("customer_id = ? AND status = ? AND created_at > ?", customerID, domain.TxCompleted, since).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
