// Package dependent implements the SSO surface of a service that trusts
// tokens minted by the Token Authority: the callback endpoint that exchanges
// a token for a local session, and the session-backed routes behind it.
package dependent

import (
	"context"
	"log"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vantagesuite/vantage/internal/config"
	"github.com/vantagesuite/vantage/internal/domain"
	"github.com/vantagesuite/vantage/internal/handler"
	"github.com/vantagesuite/vantage/pkg/sessions"
)

// Error codes carried on the login redirect when the callback fails.
const (
	ErrCodeMissingToken    = "missing_token"
	ErrCodeInvalidToken    = "invalid_token"
	ErrCodeNoUserData      = "no_user_data"
	ErrCodeValidationError = "validation_error"
)

// TokenValidator is the one capability the callback endpoint needs from the
// authority.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*domain.ValidationResult, error)
}

// CallbackHandler is the trust boundary where a token minted by the authority
// becomes a local session. It never trusts the token's claims without the
// remote validation round-trip.
type CallbackHandler struct {
	validator    TokenValidator
	sessionStore *sessions.Store
	cfg          *config.Config
}

func NewCallbackHandler(validator TokenValidator, sessionStore *sessions.Store, cfg *config.Config) *CallbackHandler {
	return &CallbackHandler{
		validator:    validator,
		sessionStore: sessionStore,
		cfg:          cfg,
	}
}

// Callback receives the token and optional intended URL from the authority's
// redirect, validates the token remotely and establishes the local session.
// GET /auth/callback
func (h *CallbackHandler) Callback(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		log.Printf("[CALLBACK] Missing token parameter")
		return h.failRedirect(c, ErrCodeMissingToken, "")
	}

	result, err := h.validator.ValidateToken(c.Context(), token)
	if err != nil {
		// Network failure vs explicit rejection stays in the logs only
		log.Printf("[CALLBACK] Validation call failed: %v", err)
		return h.failRedirect(c, ErrCodeInvalidToken, "")
	}

	if !result.Valid {
		log.Printf("[CALLBACK] Authority rejected token")
		return h.failRedirect(c, ErrCodeInvalidToken, "")
	}

	if result.User == nil {
		// Valid-but-empty is a failure, not a degraded success
		log.Printf("[CALLBACK] Authority returned valid token without user data")
		return h.failRedirect(c, ErrCodeNoUserData, "")
	}

	if err := h.establishSession(c, result.User, token); err != nil {
		log.Printf("[CALLBACK] Failed to establish session for %s: %v", result.User.ID, err)
		return h.failRedirect(c, ErrCodeValidationError, "could not establish session")
	}

	handler.SetTokenCookie(c, &h.cfg.Cookie, token)

	log.Printf("[CALLBACK] Session established for %s (%s)", result.User.Email, result.User.ID)

	if intended := c.Query("intended"); intended != "" {
		return c.Redirect(intended, fiber.StatusFound)
	}
	return c.Redirect(h.cfg.SSO.DashboardURL(), fiber.StatusFound)
}

// Logout drops the local session and token cookie. The token itself is
// revoked at the authority by its own logout endpoint.
// POST /logout
func (h *CallbackHandler) Logout(c *fiber.Ctx) error {
	if sessionID := c.Cookies(sessions.CookieName); sessionID != "" {
		if err := h.sessionStore.Delete(c.Context(), sessionID); err != nil {
			log.Printf("[CALLBACK] Failed to delete session %s: %v", sessionID, err)
		}
	}

	handler.ClearCookie(c, h.cfg.Cookie.Name)
	handler.ClearCookie(c, sessions.CookieName)

	return c.Redirect(h.cfg.SSO.LoginURL(), fiber.StatusFound)
}

func (h *CallbackHandler) establishSession(c *fiber.Ctx, user *domain.PrincipalSummary, token string) error {
	sessionID := uuid.New().String()

	data := &domain.SessionData{
		User:      user,
		Token:     token,
		CreatedAt: time.Now(),
	}
	if err := h.sessionStore.Put(c.Context(), sessionID, data); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessions.CookieName,
		Value:    sessionID,
		Expires:  time.Now().Add(h.cfg.SSO.SessionTTL),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
	})

	return nil
}

// failRedirect sends the browser to the local login page with a short
// machine-readable error code. No failure path leaves the browser on a blank
// or unhandled-exception page.
func (h *CallbackHandler) failRedirect(c *fiber.Ctx, code, message string) error {
	target := h.cfg.SSO.LoginURL() + "?error=" + code
	if message != "" {
		target += "&message=" + url.QueryEscape(message)
	}
	return c.Redirect(target, fiber.StatusFound)
}
