package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/services"
	"facilicar_backend/pkg/utils"
)

// FinanceHandler exposes the financial ledger and payment method endpoints.
type FinanceHandler struct {
	financeService *services.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler.
func NewFinanceHandler(financeService *services.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// GetTransactions handles GET /transactions?tipo=&from=&to=.
func (h *FinanceHandler) GetTransactions(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}

	filters := models.TransactionFilters{EstablishmentID: establishmentID}
	if tipo := c.Query("tipo"); tipo != "" {
		if !models.IsValidTransactionType(tipo) {
			utils.RespondValidationFailed(c, "tipo must be receita or despesa")
			return
		}
		filters.Type = &tipo
	}
	var ok2 bool
	if filters.DateFrom, filters.DateTo, ok2 = dateRangeQuery(c); !ok2 {
		return
	}

	transactions, err := h.financeService.GetTransactions(filters)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// CreateTransaction handles POST /transactions (manual entries only).
func (h *FinanceHandler) CreateTransaction(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	var transaction models.FinancialTransaction
	if err := c.ShouldBindJSON(&transaction); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	transaction.EstablishmentID = establishmentID
	transaction.CreatedBy = currentUserID(c)
	if err := h.financeService.CreateTransaction(&transaction); err != nil {
		h.respondFinanceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT /transactions/:id.
func (h *FinanceHandler) UpdateTransaction(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var transaction models.FinancialTransaction
	if err := c.ShouldBindJSON(&transaction); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	transaction.ID = id
	transaction.EstablishmentID = establishmentID
	if err := h.financeService.UpdateTransaction(&transaction); err != nil {
		h.respondFinanceError(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE /transactions/:id.
func (h *FinanceHandler) DeleteTransaction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.financeService.DeleteTransaction(id); err != nil {
		h.respondFinanceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPaymentMethods handles GET /payment-methods?active=.
func (h *FinanceHandler) GetPaymentMethods(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	methods, err := h.financeService.GetPaymentMethods(establishmentID, c.Query("active") == "true")
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, methods)
}

// CreatePaymentMethod handles POST /payment-methods.
func (h *FinanceHandler) CreatePaymentMethod(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	var method models.PaymentMethod
	if err := c.ShouldBindJSON(&method); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	method.EstablishmentID = establishmentID
	method.Active = true
	if err := h.financeService.CreatePaymentMethod(&method); err != nil {
		h.respondFinanceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, method)
}

// UpdatePaymentMethod handles PUT /payment-methods/:id.
func (h *FinanceHandler) UpdatePaymentMethod(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var method models.PaymentMethod
	if err := c.ShouldBindJSON(&method); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	method.ID = id
	method.EstablishmentID = establishmentID
	if err := h.financeService.UpdatePaymentMethod(&method); err != nil {
		h.respondFinanceError(c, err)
		return
	}
	c.JSON(http.StatusOK, method)
}

// DeletePaymentMethod handles DELETE /payment-methods/:id.
func (h *FinanceHandler) DeletePaymentMethod(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.financeService.DeletePaymentMethod(id); err != nil {
		h.respondFinanceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FinanceHandler) respondFinanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTransactionNotFound), errors.Is(err, services.ErrPaymentMethodNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
	case errors.Is(err, services.ErrLedgerEntryLocked):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
	case errors.Is(err, services.ErrPaymentMethodNameTaken):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Payment method name already exists", ""))
	case errors.Is(err, services.ErrInvalidTransactionType),
		errors.Is(err, services.ErrNegativeAmount),
		errors.Is(err, services.ErrTransactionDescMissing),
		errors.Is(err, services.ErrPaymentMethodNameBlank):
		utils.RespondValidationFailed(c, err.Error())
	default:
		respondInternalError(c, err)
	}
}
