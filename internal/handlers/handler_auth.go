package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	portssvc "github.com/emprestafacil/loan_ledger_app/internal/core/ports/services"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
	"github.com/emprestafacil/loan_ledger_app/internal/middleware"
	"github.com/emprestafacil/loan_ledger_app/internal/platform/config"
	"github.com/emprestafacil/loan_ledger_app/internal/validation"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes. Login is rate
// limited per IP to slow down credential stuffing.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.TokenService, cfg)

	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(limitermemory.NewStore(), rate)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}

	registerGoogleOAuthRoutes(auth, services, cfg)
}

// setRefreshCookie stores the refresh token in an HTTP-only cookie scoped to
// the auth endpoints. The value carries the user ID so /refresh can look up
// the stored hash without an access token.
func (h *AuthHandler) setRefreshCookie(c *gin.Context, userID, rawToken string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		h.cfg.RefreshTokenCookieName,
		userID+"."+rawToken,
		maxAge,
		h.cfg.RefreshTokenCookiePath,
		"",
		h.cfg.IsProduction,
		true,
	)
}

// issueTokens generates the access/refresh pair and sets the refresh cookie.
func (h *AuthHandler) issueTokens(c *gin.Context, userID string) (string, error) {
	ctx := c.Request.Context()

	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return "", err
	}

	rawRefreshToken, _, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		return "", err
	}
	h.setRefreshCookie(c, user.UserID, rawRefreshToken, int(h.cfg.RefreshTokenExpiryDuration.Seconds()))

	return accessToken, nil
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token plus a refresh cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.Envelope{data=dto.LoginResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewBadRequestError("Email e senha são obrigatórios"))
		return
	}
	if err := validation.Login(req); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	accessToken, err := h.issueTokens(c, user.UserID)
	if err != nil {
		logger.Error("Failed to issue tokens on login", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		respondError(c, apperrors.NewInternalServerError("Falha ao gerar token de acesso"))
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.LoginResponse{Token: accessToken, User: dto.ToUserResponse(user)}))
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user account with local credentials.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.Envelope{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewBadRequestError("Formato de requisição inválido"))
		return
	}

	newUser, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OKMessage(dto.ToUserResponse(newUser), "Usuário cadastrado com sucesso"))
}

// Refresh godoc
// @Summary Refresh access token
// @Description Rotates the refresh token cookie and returns a new access token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Envelope{data=dto.LoginResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil {
		respondError(c, apperrors.NewUnauthorizedError("Sessão expirada, faça login novamente"))
		return
	}
	userID, rawToken, found := strings.Cut(cookie, ".")
	if !found || userID == "" || rawToken == "" {
		respondError(c, apperrors.NewUnauthorizedError("Sessão expirada, faça login novamente"))
		return
	}

	user, err := h.tokenService.ValidateRefreshToken(c.Request.Context(), userID, rawToken)
	if err != nil {
		h.setRefreshCookie(c, "", "", -1)
		respondError(c, apperrors.NewUnauthorizedError("Sessão expirada, faça login novamente"))
		return
	}

	// Rotate: every refresh invalidates the previous token.
	accessToken, err := h.issueTokens(c, user.UserID)
	if err != nil {
		logger.Error("Failed to rotate tokens", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		respondError(c, apperrors.NewInternalServerError("Falha ao renovar token de acesso"))
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.LoginResponse{Token: accessToken, User: dto.ToUserResponse(user)}))
}

// Logout godoc
// @Summary User logout
// @Description Clears the refresh cookie and invalidates the stored refresh token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName); err == nil {
		if userID, _, found := strings.Cut(cookie, "."); found && userID != "" {
			// Best effort: the cookie is cleared regardless.
			_ = h.userService.ClearRefreshToken(c.Request.Context(), userID)
		}
	}
	h.setRefreshCookie(c, "", "", -1)

	c.JSON(http.StatusOK, dto.OKMessage(nil, "Logout realizado com sucesso"))
}
