package handler

import (
	"net/http"
	"strconv"

	"taraas/internal/domain"
	"taraas/internal/middleware"
	"taraas/internal/models"
	"taraas/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	txRepo       *repository.TransactionRepository
	providerRepo *repository.ProviderRepository
	customerRepo *repository.CustomerRepository
}

func NewTransactionHandler(txRepo *repository.TransactionRepository, providerRepo *repository.ProviderRepository, customerRepo *repository.CustomerRepository) *TransactionHandler {
	return &TransactionHandler{txRepo: txRepo, providerRepo: providerRepo, customerRepo: customerRepo}
}

type initiateRequest struct {
	ProviderID uint    `json:"provider_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	Note       string  `json:"note"`
}

// Initiate opens a transaction in INITIATED state with a fresh reference.
func (h *TransactionHandler) Initiate(c *gin.Context) {
	var req initiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}
	provider, err := h.providerRepo.GetByID(req.ProviderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
		return
	}
	customerID := middleware.GetCustomerID(c)
	cust, err := h.customerRepo.GetByID(customerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	tx := &models.Transaction{
		Reference:    uuid.NewString(),
		ProviderID:   provider.ID,
		ProviderName: provider.Name,
		CustomerID:   cust.ID,
		CustomerName: cust.Name,
		Amount:       req.Amount,
		Status:       domain.TxInitiated,
		Note:         req.Note,
		Billed:       false,
	}
	if err := h.txRepo.Create(tx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "transaction failed"})
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// ConfirmPayment moves INITIATED -> CUSTOMER_CONFIRMED. Only the customer who
// opened the transaction may confirm it.
func (h *TransactionHandler) ConfirmPayment(c *gin.Context) {
	tx, ok := h.loadTransaction(c)
	if !ok {
		return
	}
	if tx.CustomerID != middleware.GetCustomerID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your transaction"})
		return
	}
	if tx.Status != domain.TxInitiated {
		c.JSON(http.StatusConflict, gin.H{"error": "transaction is not awaiting confirmation"})
		return
	}
	tx.Status = domain.TxCustomerConfirmed
	tx.Progress = 50
	if err := h.txRepo.Update(tx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, tx)
}

// Verify moves CUSTOMER_CONFIRMED -> COMPLETED. Completion is what makes the
// transaction count toward trust metrics and commission settlement.
func (h *TransactionHandler) Verify(c *gin.Context) {
	tx, ok := h.loadTransaction(c)
	if !ok {
		return
	}
	if tx.Status != domain.TxCustomerConfirmed {
		c.JSON(http.StatusConflict, gin.H{"error": "transaction is not awaiting verification"})
		return
	}
	tx.Status = domain.TxCompleted
	tx.Progress = 100
	if err := h.txRepo.Update(tx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, tx)
}

type rejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Reject terminates a transaction that has not completed. Rejected
// transactions never settle.
func (h *TransactionHandler) Reject(c *gin.Context) {
	tx, ok := h.loadTransaction(c)
	if !ok {
		return
	}
	if tx.Status == domain.TxCompleted || tx.Status == domain.TxRejected {
		c.JSON(http.StatusConflict, gin.H{"error": "transaction already finalized"})
		return
	}
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tx.Status = domain.TxRejected
	tx.RejectionReason = req.Reason
	if err := h.txRepo.Update(tx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) ListMine(c *gin.Context) {
	customerID := middleware.GetCustomerID(c)
	txs, err := h.txRepo.ListByCustomer(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

func (h *TransactionHandler) ListByProvider(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}
	txs, err := h.txRepo.ListByProvider(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

func (h *TransactionHandler) loadTransaction(c *gin.Context) (*models.Transaction, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return nil, false
	}
	tx, err := h.txRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return nil, false
	}
	return tx, true
}
