package handler

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vantagesuite/vantage/internal/config"
	"github.com/vantagesuite/vantage/internal/domain"
	"github.com/vantagesuite/vantage/internal/service"
	"github.com/vantagesuite/vantage/internal/sso"
	"github.com/vantagesuite/vantage/pkg/sessions"
	"github.com/vantagesuite/vantage/pkg/validator"
)

type AuthHandler struct {
	authService  *service.AuthService
	sessionStore *sessions.Store
	intentSigner *sso.IntentSigner
	validator    *validator.Validator
	cfg          *config.Config
}

func NewAuthHandler(
	authService *service.AuthService,
	sessionStore *sessions.Store,
	intentSigner *sso.IntentSigner,
	validator *validator.Validator,
	cfg *config.Config,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessionStore: sessionStore,
		intentSigner: intentSigner,
		validator:    validator,
		cfg:          cfg,
	}
}

// Login authenticates credentials, mints a token and hands the browser off to
// the dependent service's callback endpoint.
// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		var fe validator.FieldErrors
		if errors.As(err, &fe) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Validation failed",
				"fields": fe,
			})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := h.authService.Login(c.Context(), req, deviceName(c, req.DeviceName))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}
		log.Printf("[AUTH_HANDLER] Login failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	// Same-origin session so later requests to the authority skip credentials
	if err := h.establishSession(c, result); err != nil {
		log.Printf("[AUTH_HANDLER] Failed to establish session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	intent := sso.ResolveIntent(req.RedirectTo, h.readPendingIntent(c), &h.cfg.SSO)
	redirectURL := sso.BuildRedirectURL(intent.Target, result.Token, intent.Intended)

	// Dual-channel delivery: cookie for same-origin reuse, URL for the hop
	SetTokenCookie(c, &h.cfg.Cookie, result.Token)

	if wantsJSON(c) {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"token":        result.Token,
			"user":         result.User.Summary(),
			"redirect_url": redirectURL,
		})
	}

	return c.Redirect(redirectURL, fiber.StatusFound)
}

// Logout revokes the presented token and tears down the local session.
// POST /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		token = c.Cookies(h.cfg.Cookie.Name)
	}
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing token",
		})
	}

	if err := h.authService.Logout(c.Context(), token); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid token",
		})
	}

	if sessionID := c.Cookies(sessions.CookieName); sessionID != "" {
		if err := h.sessionStore.Delete(c.Context(), sessionID); err != nil {
			log.Printf("[AUTH_HANDLER] Failed to delete session %s: %v", sessionID, err)
		}
	}

	ClearCookie(c, h.cfg.Cookie.Name)
	ClearCookie(c, sessions.CookieName)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

func (h *AuthHandler) establishSession(c *fiber.Ctx, result *service.LoginResult) error {
	sessionID := uuid.New().String()

	data := &domain.SessionData{
		User:      result.User.Summary(),
		Token:     result.Token,
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

// readPendingIntent consumes the signed intent cookie: one read, then the
// cookie is cleared so a later login cannot replay a stale target.
func (h *AuthHandler) readPendingIntent(c *fiber.Ctx) *sso.Intent {
	raw := c.Cookies(sso.IntentCookieName)
	if raw == "" {
		return nil
	}

	ClearCookie(c, sso.IntentCookieName)

	intent, err := h.intentSigner.Read(raw)
	if err != nil {
		log.Printf("[AUTH_HANDLER] Discarding unreadable intent cookie: %v", err)
		return nil
	}
	return intent
}
