// Package api provides REST handlers for login reconciliation and the
// dailies review queue.
package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dkestel/practice-hub/internal/auth"
	"github.com/dkestel/practice-hub/internal/models"
	"github.com/dkestel/practice-hub/internal/service/dailies"
	"github.com/dkestel/practice-hub/internal/service/identity"
	"github.com/dkestel/practice-hub/pkg/logger"
)

const stateCookie = "oauth_state"

// IdentityService interface for login reconciliation.
type IdentityService interface {
	ReconcileGithub(ctx context.Context, assertion identity.Assertion) (*models.User, error)
}

// DailiesService interface for review-queue operations.
type DailiesService interface {
	Dailies(ctx context.Context, userID uint) ([]models.Submission, error)
	DailyCount(ctx context.Context, userID uint) (int, error)
	DailiesAvailable(ctx context.Context, userID uint) (bool, error)
	IncrementFiveADay(ctx context.Context, userID uint) error
}

// OAuthProvider interface for the GitHub code exchange.
type OAuthProvider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*auth.GithubUser, error)
}

// Handler handles API requests.
type Handler struct {
	identityService IdentityService
	dailiesService  DailiesService
	provider        OAuthProvider
	log             *logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(identityService *identity.Service, dailiesService *dailies.Service, provider *auth.GithubProvider, log *logger.Logger) *Handler {
	return &Handler{
		identityService: identityService,
		dailiesService:  dailiesService,
		provider:        provider,
		log:             log,
	}
}

// NewHandlerWithInterfaces creates a new API handler with interface
// dependencies (useful for testing).
func NewHandlerWithInterfaces(identityService IdentityService, dailiesService DailiesService, provider OAuthProvider, log *logger.Logger) *Handler {
	return &Handler{
		identityService: identityService,
		dailiesService:  dailiesService,
		provider:        provider,
		log:             log,
	}
}

// BeginGithubLogin redirects the browser to GitHub's authorization page.
// GET /auth/github.
func (h *Handler) BeginGithubLogin(c *gin.Context) {
	state := newState()
	c.SetCookie(stateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.provider.AuthURL(state))
}

// GithubCallback completes the OAuth flow and reconciles the login.
// GET /auth/github/callback?code=...&state=...
func (h *Handler) GithubCallback(c *gin.Context) {
	expected, err := c.Cookie(stateCookie)
	if err != nil || expected == "" || c.Query("state") != expected {
		h.errorResponse(c, http.StatusBadRequest, "Invalid OAuth state")
		return
	}

	code := c.Query("code")
	if code == "" {
		h.errorResponse(c, http.StatusBadRequest, "Missing authorization code")
		return
	}

	ghUser, err := h.provider.Exchange(c.Request.Context(), code)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to exchange OAuth code")
		h.errorResponse(c, http.StatusBadGateway, "GitHub login failed")
		return
	}

	user, err := h.identityService.ReconcileGithub(c.Request.Context(), assertionFrom(ghUser))
	if err != nil {
		h.log.Error().Err(err).Int64("github_id", ghUser.ID).Msg("Failed to reconcile login")
		h.errorResponse(c, http.StatusInternalServerError, "Login reconciliation failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetDailies returns the user's current review queue.
// GET /api/v1/users/:id/dailies.
func (h *Handler) GetDailies(c *gin.Context) {
	userID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	queue, err := h.dailiesService.Dailies(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("Failed to compute dailies")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to retrieve dailies")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dailies": queue,
		"total":   len(queue),
	})
}

// GetDailyCount returns the user's consumed review count and whether
// allowance remains.
// GET /api/v1/users/:id/dailies/count.
func (h *Handler) GetDailyCount(c *gin.Context) {
	userID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	count, err := h.dailiesService.DailyCount(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("Failed to get daily count")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to retrieve daily count")
		return
	}

	available, err := h.dailiesService.DailiesAvailable(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("Failed to check dailies availability")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to retrieve daily count")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     count,
		"available": available,
	})
}

// IncrementDailies records one performed review against the user's allowance.
// POST /api/v1/users/:id/dailies/increment.
func (h *Handler) IncrementDailies(c *gin.Context) {
	userID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	if err := h.dailiesService.IncrementFiveADay(c.Request.Context(), userID); err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("Failed to increment daily counter")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to record review")
		return
	}

	count, err := h.dailiesService.DailyCount(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("Failed to get daily count")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to record review")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// parseUserID extracts the :id path parameter, writing a 400 on failure.
func (h *Handler) parseUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid user id")
		return 0, false
	}
	return uint(id), true
}

// errorResponse writes a JSON error body.
func (h *Handler) errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// assertionFrom maps a GitHub profile onto a login assertion. Empty provider
// fields become nil so reconciliation leaves the stored values untouched.
func assertionFrom(ghUser *auth.GithubUser) identity.Assertion {
	assertion := identity.Assertion{GithubID: ghUser.ID}
	if ghUser.Login != "" {
		login := ghUser.Login
		assertion.Username = &login
	}
	if ghUser.Email != "" {
		email := ghUser.Email
		assertion.Email = &email
	}
	if ghUser.AvatarURL != "" {
		avatar := ghUser.AvatarURL
		assertion.AvatarURL = &avatar
	}
	return assertion
}

func newState() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
