package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/classboard/classboard/internal/app/models/dto"
	"github.com/classboard/classboard/internal/app/services"
	"github.com/classboard/classboard/internal/middleware"
)

const stateCookieName = "oauth_state"

// AuthController handles GitHub OAuth sign-in and profile retrieval
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login starts the GitHub OAuth flow
// @Summary Start GitHub sign-in
// @Description Returns the GitHub authorize URL and sets the anti-forgery state cookie
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.LoginRedirectResponse} "Authorize URL"
// @Router /auth/github/login [get]
func (c *AuthController) Login(ctx *gin.Context) {
	state := uuid.NewString()
	ctx.SetCookie(stateCookieName, state, 600, "/", "", false, true)

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.LoginRedirectResponse{AuthorizeURL: c.authService.LoginURL(state)},
		Timestamp: time.Now(),
	})
}

// Callback completes the GitHub OAuth flow
// @Summary Complete GitHub sign-in
// @Description Exchanges the authorization code for a session token
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code from GitHub"
// @Param state query string true "Anti-forgery state"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Session token"
// @Failure 400 {object} dto.ErrorResponse "Missing code or state mismatch"
// @Failure 401 {object} dto.ErrorResponse "Code exchange failed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/github/callback [get]
func (c *AuthController) Callback(ctx *gin.Context) {
	code := ctx.Query("code")
	if code == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing authorization code")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	expectedState, err := ctx.Cookie(stateCookieName)
	if err != nil || expectedState == "" || ctx.Query("state") != expectedState {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "State mismatch")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	ctx.SetCookie(stateCookieName, "", -1, "/", "", false, true)

	token, err := c.authService.HandleCallback(ctx, code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      token,
		Timestamp: time.Now(),
	})
}

// Me returns the authenticated user's profile
// @Summary Get current user
// @Description Retrieves the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, err := c.authService.GetProfile(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      user,
		Timestamp: time.Now(),
	})
}
