package handlers

import (
	"net/http"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	portssvc "github.com/emprestafacil/loan_ledger_app/internal/core/ports/services"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
	"github.com/emprestafacil/loan_ledger_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// loanHandler handles HTTP requests related to loans.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

func newLoanHandler(ls portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{loanService: ls}
}

// registerLoanRoutes registers all loan-related routes.
func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade) {
	h := newLoanHandler(loanService)

	loans := rg.Group("/loans")
	{
		loans.GET("", h.listLoans)
		loans.POST("", h.createLoan)
		loans.GET("/status/:status", h.listLoansByStatus)
		loans.GET("/:id", h.getLoan)
		loans.PUT("/:id", h.updateLoan)
		loans.DELETE("/:id", h.deleteLoan)
		loans.PATCH("/:id/pay", h.payLoan)
		loans.PATCH("/:id/cancel", h.cancelLoan)
	}
}

// listLoans godoc
// @Summary List loans
// @Description Lists the caller's loans, most recent first, enriched with the client summary.
// @Tags loans
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]dto.LoanResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	loans, err := h.loanService.ListLoans(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKList(dto.ToLoanResponses(loans), len(loans)))
}

// listLoansByStatus godoc
// @Summary List loans by status
// @Tags loans
// @Produce json
// @Param status path string true "Loan status" Enums(active, paid, overdue, cancelled)
// @Success 200 {object} dto.Envelope{data=[]dto.LoanResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Security BearerAuth
// @Router /loans/status/{status} [get]
func (h *loanHandler) listLoansByStatus(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	status := c.Param("status")
	if !domain.ValidLoanStatus(status) {
		respondError(c, apperrors.NewBadRequestError("Status de empréstimo inválido"))
		return
	}

	loans, err := h.loanService.ListLoansByStatus(c.Request.Context(), userID, domain.LoanStatus(status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKList(dto.ToLoanResponses(loans), len(loans)))
}

// getLoan godoc
// @Summary Get a loan
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} dto.Envelope{data=dto.LoanResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans/{id} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	loan, err := h.loanService.GetLoanByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToLoanResponse(loan)))
}

// createLoan godoc
// @Summary Create a loan
// @Description Creates an active loan and books the linked disbursement movement. Rejected when the principal exceeds the current cash balance.
// @Tags loans
// @Accept json
// @Produce json
// @Param loan body dto.SaveLoanRequest true "Loan details"
// @Success 201 {object} dto.Envelope{data=dto.LoanResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failure or insufficient funds"
// @Failure 404 {object} dto.ErrorResponse "Client not found"
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) createLoan(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	var req dto.SaveLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewBadRequestError("Formato de requisição inválido"))
		return
	}

	loan, err := h.loanService.CreateLoan(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OKMessage(dto.ToLoanResponse(loan), "Empréstimo criado com sucesso"))
}

// updateLoan godoc
// @Summary Update a loan
// @Description Updates an active loan, recomputing the final amount and patching the linked movement.
// @Tags loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Param loan body dto.SaveLoanRequest true "Loan details"
// @Success 200 {object} dto.Envelope{data=dto.LoanResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans/{id} [put]
func (h *loanHandler) updateLoan(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	var req dto.SaveLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewBadRequestError("Formato de requisição inválido"))
		return
	}

	loan, err := h.loanService.UpdateLoan(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage(dto.ToLoanResponse(loan), "Empréstimo atualizado com sucesso"))
}

// payLoan godoc
// @Summary Pay off a loan
// @Description Settles an active loan and books the linked payment movement. The payment amount defaults to the computed payoff.
// @Tags loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Param payment body dto.PayLoanRequest false "Optional payment override"
// @Success 200 {object} dto.Envelope{data=dto.LoanResponse}
// @Failure 400 {object} dto.ErrorResponse "Loan is not active"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans/{id}/pay [patch]
func (h *loanHandler) payLoan(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	var req dto.PayLoanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperrors.NewBadRequestError("Formato de requisição inválido"))
			return
		}
	}

	loan, err := h.loanService.PayLoan(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage(dto.ToLoanResponse(loan), "Empréstimo quitado com sucesso"))
}

// cancelLoan godoc
// @Summary Cancel a loan
// @Description Moves an active loan to cancelled. No cash movement is booked.
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} dto.Envelope{data=dto.LoanResponse}
// @Failure 400 {object} dto.ErrorResponse "Loan is not active"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans/{id}/cancel [patch]
func (h *loanHandler) cancelLoan(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	loan, err := h.loanService.CancelLoan(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage(dto.ToLoanResponse(loan), "Empréstimo cancelado com sucesso"))
}

// deleteLoan godoc
// @Summary Delete a loan
// @Description Removes a settled loan together with its linked movements. Active loans cannot be deleted.
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.ErrorResponse "Loan is still active"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans/{id} [delete]
func (h *loanHandler) deleteLoan(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	if err := h.loanService.DeleteLoan(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage(nil, "Empréstimo excluído com sucesso"))
}
