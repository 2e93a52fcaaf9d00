package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	portssvc "github.com/emprestafacil/loan_ledger_app/internal/core/ports/services"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
	"github.com/emprestafacil/loan_ledger_app/internal/middleware"
	"github.com/emprestafacil/loan_ledger_app/internal/platform/config"

	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler handles the authorization-code flow used by the front
// end: the browser obtains a code from Google and posts it here.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	cfg                *config.Config
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
	cfg *config.Config,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
		cfg:                cfg,
	}
}

// ExchangeCodeRequest is the JSON body of /google/exchange-code.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// registerGoogleOAuthRoutes registers the Google OAuth routes under the
// public auth group.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, cfg *config.Config) {
	h := NewGoogleOAuthHandler(services.GoogleOAuthHandler, services.User, services.TokenService, cfg)
	googleRoutes := rg.Group("/google")
	{
		googleRoutes.POST("/exchange-code", h.ExchangeCodeGoogle)
	}
}

// ExchangeCodeGoogle godoc
// @Summary Exchange a Google authorization code for an application token
// @Description Exchanges the code for Google tokens, validates the ID token, creates or links the user and returns an application JWT.
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.Envelope{data=dto.LoginResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid authorization code"
// @Failure 401 {object} dto.ErrorResponse "Invalid Google ID token"
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewBadRequestError("Código de autorização é obrigatório"))
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") || strings.Contains(strings.ToLower(err.Error()), "bad request") {
			respondError(c, apperrors.NewBadRequestError("Código de autorização inválido ou expirado"))
			return
		}
		respondError(c, apperrors.NewGatewayTimeoutError("Falha na comunicação com o Google"))
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		respondError(c, apperrors.NewInternalServerError("Falha ao obter token de identidade do Google"))
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Error("Google ID token validation failed", slog.String("error", err.Error()))
		respondError(c, apperrors.NewUnauthorizedError("Token de identidade do Google inválido"))
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)
	providerUserID := payload.Subject

	if email == "" || providerUserID == "" {
		logger.Error("Essential claims missing from Google ID token payload")
		respondError(c, apperrors.NewInternalServerError("Informações essenciais ausentes no token do Google"))
		return
	}

	user, err := h.userService.CreateOAuthUser(ctx, name, email, string(domain.ProviderGoogle), providerUserID, emailVerified)
	if err != nil {
		logger.Error("Failed to create or link OAuth user", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		respondError(c, apperrors.NewInternalServerError("Falha ao gerar token de acesso"))
		return
	}

	logger.Info("User authenticated via Google OAuth", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.OK(dto.LoginResponse{Token: accessToken, User: dto.ToUserResponse(user)}))
}
