// Package sso implements the cross-service handoff: redirect target
// resolution, token-carrying URL construction, and the signed redirect-intent
// state passed between the login endpoint and the bridge.
package sso

import (
	"net/url"
	"strings"

	"github.com/vantagesuite/vantage/internal/config"
)

// Intent is where the browser should end up after the cross-service hop.
// Target is the next redirect (normally a callback endpoint); Intended is the
// final destination the dependent service forwards to after validating.
type Intent struct {
	Target   string `json:"target"`
	Intended string `json:"intended,omitempty"`
}

// BuildRedirectURL appends the token, and the intended URL when present, to
// the target as query parameters. The token is appended with '&' when the
// target already carries a query string and '?' otherwise; the intended URL is
// always url-encoded.
func BuildRedirectURL(target, token, intended string) string {
	var b strings.Builder
	b.WriteString(target)

	if strings.Contains(target, "?") {
		b.WriteString("&token=")
	} else {
		b.WriteString("?token=")
	}
	b.WriteString(token)

	if intended != "" {
		b.WriteString("&intended=")
		b.WriteString(url.QueryEscape(intended))
	}

	return b.String()
}

// ResolveIntent picks the redirect target with precedence explicit parameter >
// pending intent > configured default, then applies the dashboard rewrite.
func ResolveIntent(explicit string, pending *Intent, cfg *config.SSOConfig) Intent {
	intent := Intent{Target: cfg.DefaultRedirect}

	if pending != nil && pending.Target != "" {
		intent = *pending
	}
	if explicit != "" {
		intent = Intent{Target: explicit}
	}

	return rewriteDashboard(intent, cfg)
}

// rewriteDashboard enforces the invariant that a dependent service's dashboard
// is never reached directly: when the target is a known dashboard URL the
// redirect goes to that service's callback endpoint instead, with the original
// dashboard URL preserved as the intended destination. Skipping this would let
// a token land on a page that never validated it.
func rewriteDashboard(intent Intent, cfg *config.SSOConfig) Intent {
	for _, svc := range cfg.DependentServices {
		if intent.Target == svc.Dashboard {
			return Intent{Target: svc.Callback, Intended: svc.Dashboard}
		}
	}
	return intent
}
