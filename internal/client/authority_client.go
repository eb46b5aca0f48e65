// Package client implements the dependent-service side of the validation
// contract: the synchronous call that asks the Token Authority whether a
// token received on the callback endpoint is genuine.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vantagesuite/vantage/internal/domain"
)

// ErrAuthorityUnreachable covers transport failures and timeouts talking to
// the authority. Callers log it in detail but surface the same user-facing
// error as an explicit rejection.
var ErrAuthorityUnreachable = errors.New("token authority unreachable")

// AuthorityClient calls the Token Authority's validation endpoint. One
// attempt, bounded timeout; the callback endpoint has no local fallback.
type AuthorityClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAuthorityClient(baseURL string, timeout time.Duration) *AuthorityClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AuthorityClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ValidateToken presents the token as a bearer credential and returns the
// authority's verdict. A non-2xx status with a decodable body is an explicit
// rejection, not an error; transport failures and garbage responses are
// errors.
func (c *AuthorityClient) ValidateToken(ctx context.Context, token string) (*domain.ValidationResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/auth/validate", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build validation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthorityUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrAuthorityUnreachable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusUnauthorized:
		var result domain.ValidationResult
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("authority returned undecodable body (status %d): %w", resp.StatusCode, err)
		}
		return &result, nil
	default:
		return nil, fmt.Errorf("authority returned unexpected status %d", resp.StatusCode)
	}
}
