package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/rentnest/rentnest/internal/models"
	"github.com/rentnest/rentnest/internal/token"
)

var testSecret = []byte("test-secret")

func run(t *testing.T, mw echo.MiddlewareFunc, header string, prep func(echo.Context)) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if prep != nil {
		prep(c)
	}

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, called
}

func TestRequireAuthMissingHeader(t *testing.T) {
	rec, called := run(t, RequireAuth(testSecret), "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
	require.Contains(t, rec.Body.String(), "unauthenticated")
}

func TestRequireAuthBadToken(t *testing.T) {
	rec, called := run(t, RequireAuth(testSecret), "Bearer not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
	require.Contains(t, rec.Body.String(), "invalid_token")
}

func TestRequireAuthWrongSecret(t *testing.T) {
	signed, err := token.Sign("u1", models.RoleRenter, []byte("other-secret"))
	require.NoError(t, err)

	rec, called := run(t, RequireAuth(testSecret), "Bearer "+signed, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  "u1",
		"role": models.RoleRenter,
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	rec, called := run(t, RequireAuth(testSecret), "Bearer "+expired, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
}

func TestRequireAuthSetsIdentity(t *testing.T) {
	signed, err := token.Sign("u1", models.RoleOwner, testSecret)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireAuth(testSecret)(func(c echo.Context) error {
		require.Equal(t, "u1", c.Get(ContextUserID))
		require.Equal(t, models.RoleOwner, c.Get(ContextRole))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	rec, called := run(t, RequireRole(models.RoleOwner, models.RoleAdmin), "", func(c echo.Context) {
		c.Set(ContextRole, models.RoleRenter)
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.False(t, called)

	rec, called = run(t, RequireRole(models.RoleOwner, models.RoleAdmin), "", func(c echo.Context) {
		c.Set(ContextRole, models.RoleAdmin)
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, called)
}
