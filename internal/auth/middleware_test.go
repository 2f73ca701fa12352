package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedContext(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/tiny-homes", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireAdmin_MissingHeader(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)
	m := NewMiddleware(ts)

	invoked := false
	handler := func(c echo.Context) error {
		invoked = true
		return c.String(http.StatusOK, "ok")
	}

	c, rec := newGuardedContext(t, "")
	err := m.RequireAdmin()(handler)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, invoked, "handler must not run without a token")
}

func TestRequireAdmin_MalformedHeader(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)
	m := NewMiddleware(ts)

	invoked := false
	handler := func(c echo.Context) error {
		invoked = true
		return nil
	}

	for _, header := range []string{"Basic abc", "Bearer", "Bearer a b"} {
		c, rec := newGuardedContext(t, header)
		err := m.RequireAdmin()(handler)(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
	assert.False(t, invoked)
}

func TestRequireAdmin_InvalidToken(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)
	m := NewMiddleware(ts)

	invoked := false
	handler := func(c echo.Context) error {
		invoked = true
		return nil
	}

	c, rec := newGuardedContext(t, "Bearer not-a-token")
	err := m.RequireAdmin()(handler)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, invoked)
}

func TestRequireAdmin_ExpiredToken(t *testing.T) {
	expired := NewTokenService(testSecret, -time.Minute)
	token, err := expired.Issue("admin@calmicasa.com", true)
	require.NoError(t, err)

	m := NewMiddleware(NewTokenService(testSecret, time.Hour))

	invoked := false
	handler := func(c echo.Context) error {
		invoked = true
		return nil
	}

	c, rec := newGuardedContext(t, "Bearer "+token)
	require.NoError(t, m.RequireAdmin()(handler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, invoked)
}

func TestRequireAdmin_NonAdminToken(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)
	token, err := ts.Issue("visitor@example.com", false)
	require.NoError(t, err)

	m := NewMiddleware(ts)

	invoked := false
	handler := func(c echo.Context) error {
		invoked = true
		return nil
	}

	c, rec := newGuardedContext(t, "Bearer "+token)
	require.NoError(t, m.RequireAdmin()(handler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, invoked, "a valid token without the admin claim must be rejected")
}

func TestRequireAdmin_ValidAdminToken(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)
	token, err := ts.Issue("admin@calmicasa.com", true)
	require.NoError(t, err)

	m := NewMiddleware(ts)

	var seenEmail string
	handler := func(c echo.Context) error {
		seenEmail = AdminEmail(c)
		return c.String(http.StatusOK, "ok")
	}

	c, rec := newGuardedContext(t, "Bearer "+token)
	require.NoError(t, m.RequireAdmin()(handler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin@calmicasa.com", seenEmail)
}

func TestBearerToken(t *testing.T) {
	e := echo.New()

	cases := map[string]string{
		"":               "",
		"Bearer abc":     "abc",
		"bearer abc":     "abc",
		"BEARER abc":     "abc",
		"Basic abc":      "",
		"Bearer":         "",
		"Bearer a extra": "",
	}

	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		c := e.NewContext(req, httptest.NewRecorder())
		assert.Equal(t, want, BearerToken(c), "header %q", header)
	}
}
