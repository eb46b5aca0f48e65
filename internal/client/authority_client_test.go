package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateToken(t *testing.T) {
	ctx := context.Background()
	principalID := uuid.New()

	t.Run("valid token with user payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/auth/validate", r.URL.Path)
			assert.Equal(t, "Bearer vgt_good", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"valid":true,"user":{"id":"` + principalID.String() + `","name":"Ada","email":"a@b.com","roles":["admin"]}}`))
		}))
		defer srv.Close()

		c := NewAuthorityClient(srv.URL, time.Second)
		result, err := c.ValidateToken(ctx, "vgt_good")
		require.NoError(t, err)
		assert.True(t, result.Valid)
		require.NotNil(t, result.User)
		assert.Equal(t, principalID, result.User.ID)
		assert.Equal(t, "a@b.com", result.User.Email)
	})

	t.Run("explicit rejection is a result, not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"valid":false}`))
		}))
		defer srv.Close()

		c := NewAuthorityClient(srv.URL, time.Second)
		result, err := c.ValidateToken(ctx, "vgt_bad")
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Nil(t, result.User)
	})

	t.Run("valid but no user payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"valid":true}`))
		}))
		defer srv.Close()

		c := NewAuthorityClient(srv.URL, time.Second)
		result, err := c.ValidateToken(ctx, "vgt_odd")
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Nil(t, result.User)
	})

	t.Run("server error status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := NewAuthorityClient(srv.URL, time.Second)
		_, err := c.ValidateToken(ctx, "vgt_any")
		assert.Error(t, err)
	})

	t.Run("undecodable body is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>not json</html>`))
		}))
		defer srv.Close()

		c := NewAuthorityClient(srv.URL, time.Second)
		_, err := c.ValidateToken(ctx, "vgt_any")
		assert.Error(t, err)
	})

	t.Run("unreachable authority", func(t *testing.T) {
		c := NewAuthorityClient("http://127.0.0.1:1", time.Second)
		_, err := c.ValidateToken(ctx, "vgt_any")
		assert.ErrorIs(t, err, ErrAuthorityUnreachable)
	})

	t.Run("timeout is treated as unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`{"valid":true}`))
		}))
		defer srv.Close()

		c := NewAuthorityClient(srv.URL, 50*time.Millisecond)
		_, err := c.ValidateToken(ctx, "vgt_any")
		assert.ErrorIs(t, err, ErrAuthorityUnreachable)
	})
}
