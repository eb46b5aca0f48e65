package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deviceNameFor(t *testing.T, userAgent, supplied string) string {
	t.Helper()

	app := fiber.New()
	var got string
	app.Get("/", func(c *fiber.Ctx) error {
		got = deviceName(c, supplied)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if userAgent != "" {
		req.Header.Set(fiber.HeaderUserAgent, userAgent)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	return got
}

func TestDeviceName(t *testing.T) {
	t.Run("supplied name wins", func(t *testing.T) {
		assert.Equal(t, "my-laptop", deviceNameFor(t, "Mozilla/5.0", "my-laptop"))
	})

	t.Run("falls back to user agent", func(t *testing.T) {
		assert.Equal(t, "Mozilla/5.0", deviceNameFor(t, "Mozilla/5.0", ""))
	})

	t.Run("no user agent", func(t *testing.T) {
		assert.Equal(t, "unknown-device", deviceNameFor(t, "", ""))
	})

	t.Run("long user agent is truncated", func(t *testing.T) {
		got := deviceNameFor(t, strings.Repeat("a", 300), "")
		assert.Len(t, got, 255)
	})

	t.Run("truncation never splits a rune", func(t *testing.T) {
		// A two-byte rune straddling the cut point must be dropped whole
		ua := strings.Repeat("a", 254) + "é" + strings.Repeat("b", 40)
		got := deviceNameFor(t, ua, "")

		assert.True(t, utf8.ValidString(got))
		assert.LessOrEqual(t, len(got), 255)
		assert.Equal(t, strings.Repeat("a", 254), got)
	})
}
