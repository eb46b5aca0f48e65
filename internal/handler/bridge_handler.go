package handler

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vantagesuite/vantage/internal/config"
	"github.com/vantagesuite/vantage/internal/service"
	"github.com/vantagesuite/vantage/internal/sso"
	"github.com/vantagesuite/vantage/pkg/sessions"
)

// BridgeHandler hop-starts a browser that already holds an authenticated
// session at the authority toward a dependent service: it mints a fresh token
// and performs the same redirect construction as the login endpoint.
type BridgeHandler struct {
	authService  *service.AuthService
	sessionStore *sessions.Store
	intentSigner *sso.IntentSigner
	cfg          *config.Config
}

func NewBridgeHandler(
	authService *service.AuthService,
	sessionStore *sessions.Store,
	intentSigner *sso.IntentSigner,
	cfg *config.Config,
) *BridgeHandler {
	return &BridgeHandler{
		authService:  authService,
		sessionStore: sessionStore,
		intentSigner: intentSigner,
		cfg:          cfg,
	}
}

// Redirect bridges an authenticated session to a dependent service.
// GET /sso/redirect
func (h *BridgeHandler) Redirect(c *fiber.Ctx) error {
	sessionID := c.Cookies(sessions.CookieName)
	if sessionID == "" {
		return h.toLogin(c)
	}

	session, err := h.sessionStore.Get(c.Context(), sessionID)
	if err != nil {
		log.Printf("[SSO_BRIDGE] No session for %s: %v", sessionID, err)
		return h.toLogin(c)
	}

	token, err := h.authService.MintForPrincipal(c.Context(), session.User, "sso-bridge")
	if err != nil {
		log.Printf("[SSO_BRIDGE] Failed to mint token for %s: %v", session.User.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	// Pending intent is consumed here; a second call without a fresh intent
	// falls back to the service default.
	pending := h.readPendingIntent(c)
	intent := sso.ResolveIntent(c.Query("redirect_to"), pending, &h.cfg.SSO)

	SetTokenCookie(c, &h.cfg.Cookie, token)

	return c.Redirect(sso.BuildRedirectURL(intent.Target, token, intent.Intended), fiber.StatusFound)
}

// toLogin sends an unauthenticated browser to the login page, preserving the
// requested destination as a signed pending intent so login can resume the hop.
func (h *BridgeHandler) toLogin(c *fiber.Ctx) error {
	if target := c.Query("redirect_to"); target != "" {
		signed, err := h.intentSigner.Issue(sso.Intent{Target: target})
		if err != nil {
			log.Printf("[SSO_BRIDGE] Failed to sign intent: %v", err)
		} else {
			c.Cookie(&fiber.Cookie{
				Name:     sso.IntentCookieName,
				Value:    signed,
				Expires:  time.Now().Add(h.cfg.SSO.IntentTTL),
				Secure:   h.cfg.Cookie.Secure,
				HTTPOnly: true,
				SameSite: h.cfg.Cookie.SameSite,
			})
		}
	}

	return c.Redirect(h.cfg.SSO.AuthorityURL+"/login", fiber.StatusFound)
}

func (h *BridgeHandler) readPendingIntent(c *fiber.Ctx) *sso.Intent {
	raw := c.Cookies(sso.IntentCookieName)
	if raw == "" {
		return nil
	}

	ClearCookie(c, sso.IntentCookieName)

	intent, err := h.intentSigner.Read(raw)
	if err != nil {
		log.Printf("[SSO_BRIDGE] Discarding unreadable intent cookie: %v", err)
		return nil
	}
	return intent
}
