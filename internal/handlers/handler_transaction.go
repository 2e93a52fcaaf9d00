package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/emprestafacil/loan_ledger_app/internal/core/ports/services"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
	"github.com/emprestafacil/loan_ledger_app/internal/middleware"
	"github.com/emprestafacil/loan_ledger_app/internal/validation"

	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to cash movements.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// RegisterTransactionRoutes registers all movement-related routes.
func RegisterTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.POST("", h.createTransaction)
		transactions.GET("/summary/overview", h.summary)
		transactions.GET("/export/csv", h.exportCSV)
		transactions.GET("/:id", h.getTransaction)
		transactions.PUT("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
	}
}

// buildFilter translates the query parameters into a repository filter.
func buildFilter(txnType, category, startDate, endDate string) (portsrepo.TransactionFilter, error) {
	var filter portsrepo.TransactionFilter

	if txnType != "" {
		if txnType != string(domain.Income) && txnType != string(domain.Expense) {
			return filter, apperrors.NewBadRequestError("Tipo deve ser 'income' ou 'expense'")
		}
		filter.Type = domain.TransactionType(txnType)
	}
	filter.Category = category

	if startDate != "" {
		t, err := validation.ParseDate(startDate)
		if err != nil {
			return filter, apperrors.NewBadRequestError("Data inicial inválida")
		}
		filter.StartDate = &t
	}
	if endDate != "" {
		t, err := validation.ParseDate(endDate)
		if err != nil {
			return filter, apperrors.NewBadRequestError("Data final inválida")
		}
		// End dates are inclusive calendar days.
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &t
	}
	return filter, nil
}

// listTransactions godoc
// @Summary List cash movements
// @Description Lists the caller's movements, newest first, with pagination and optional type/category/date filters.
// @Tags transactions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(50)
// @Param type query string false "Movement type" Enums(income, expense)
// @Param category query string false "Category"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.Envelope{data=[]dto.TransactionResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, apperrors.NewBadRequestError("Parâmetros de consulta inválidos"))
		return
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 500 {
		params.Limit = 50
	}

	filter, err := buildFilter(params.Type, params.Category, params.StartDate, params.EndDate)
	if err != nil {
		respondError(c, err)
		return
	}
	filter.Limit = params.Limit
	filter.Offset = (params.Page - 1) * params.Limit

	txns, total, err := h.transactionService.ListTransactions(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	pages := (total + params.Limit - 1) / params.Limit
	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Data:    dto.ToTransactionResponses(txns),
		Pagination: &dto.Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
			Pages: pages,
		},
	})
}

// getTransaction godoc
// @Summary Get a cash movement
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.Envelope{data=dto.TransactionResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToTransactionResponse(txn)))
}

// createTransaction godoc
// @Summary Create a cash movement
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.SaveTransactionRequest true "Movement details"
// @Success 201 {object} dto.Envelope{data=dto.TransactionResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	var req dto.SaveTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewBadRequestError("Formato de requisição inválido"))
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OKMessage(dto.ToTransactionResponse(txn), "Transação registrada com sucesso"))
}

// updateTransaction godoc
// @Summary Update a cash movement
// @Description Updates a manual movement. Loan-linked movements are immutable.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body dto.SaveTransactionRequest true "Movement details"
// @Success 200 {object} dto.Envelope{data=dto.TransactionResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	var req dto.SaveTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewBadRequestError("Formato de requisição inválido"))
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage(dto.ToTransactionResponse(txn), "Transação atualizada com sucesso"))
}

// deleteTransaction godoc
// @Summary Delete a cash movement
// @Description Removes a manual movement. Loan-linked movements only go away with their loan.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.ErrorResponse "Movement is linked to a loan"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage(nil, "Transação excluída com sucesso"))
}

// summary godoc
// @Summary Movement overview
// @Description Computes income/expense totals, the net amount and per-category totals over an optional date range.
// @Tags transactions
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.Envelope{data=domain.TransactionSummary}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/summary/overview [get]
func (h *transactionHandler) summary(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, apperrors.NewBadRequestError("Parâmetros de consulta inválidos"))
		return
	}

	filter, err := buildFilter("", "", params.StartDate, params.EndDate)
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.transactionService.Summarize(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(summary))
}

// exportCSV godoc
// @Summary Export movements as CSV
// @Description Renders the movements matching the optional date range as a CSV download.
// @Tags transactions
// @Produce text/csv
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {string} string "CSV document"
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/export/csv [get]
func (h *transactionHandler) exportCSV(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, apperrors.NewBadRequestError("Parâmetros de consulta inválidos"))
		return
	}

	filter, err := buildFilter("", "", params.StartDate, params.EndDate)
	if err != nil {
		respondError(c, err)
		return
	}

	csvBytes, err := h.transactionService.ExportCSV(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("transacoes_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csvBytes)
}
