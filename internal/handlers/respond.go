package handlers

import (
	"errors"
	"net/http"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// respondError translates a service failure into the HTTP error payload.
// AppErrors carry their own status code; anything else is a 500.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, dto.ErrorResponse{Error: http.StatusText(appErr.Code), Message: appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   http.StatusText(http.StatusInternalServerError),
		Message: "Erro interno do servidor",
	})
}
