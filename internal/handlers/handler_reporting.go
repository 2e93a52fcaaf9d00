package handlers

import (
	"net/http"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	portssvc "github.com/emprestafacil/loan_ledger_app/internal/core/ports/services"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
	"github.com/emprestafacil/loan_ledger_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.dashboard)
	}
}

// dashboard godoc
// @Summary Dashboard aggregates
// @Description Returns the running balance, receivables, portfolio counts and interest figures in one shot.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.Envelope{data=dto.DashboardResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) dashboard(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	summary, err := h.reportingService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToDashboardResponse(summary)))
}
