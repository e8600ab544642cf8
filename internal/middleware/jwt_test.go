package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsab/complaint-desk/internal/token"
)

const testSecret = "middleware-test-secret"

func runGate(t *testing.T, svc *token.Service, authHeader string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	revoked := token.NewRevocationList(nil, time.Hour)
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := JWTAuth(svc, revoked)(next)(c)
	return rec, c, err
}

func TestJWTAuthMissingHeader(t *testing.T) {
	t.Parallel()

	svc := token.New(testSecret, 30, 7)
	rec, _, err := runGate(t, svc, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	t.Parallel()

	svc := token.New(testSecret, 30, 7)
	for _, header := range []string{"Token abc", "Bearer", "Bearer "} {
		rec, _, err := runGate(t, svc, header)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	t.Parallel()

	svc := token.New(testSecret, 30, 7)
	rec, _, err := runGate(t, svc, "Bearer not-a-real-token")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestJWTAuthExpiredToken(t *testing.T) {
	t.Parallel()

	expiredSvc := token.New(testSecret, -60, 7)
	raw, err := expiredSvc.IssueAccess(5, "user")
	require.NoError(t, err)

	svc := token.New(testSecret, 30, 7)
	rec, _, err := runGate(t, svc, "Bearer "+raw)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token expired")
}

func TestJWTAuthWrongSecret(t *testing.T) {
	t.Parallel()

	raw, err := token.New("some-other-secret", 30, 7).IssueAccess(5, "user")
	require.NoError(t, err)

	svc := token.New(testSecret, 30, 7)
	rec, _, err := runGate(t, svc, "Bearer "+raw)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuthAttachesIdentity(t *testing.T) {
	t.Parallel()

	svc := token.New(testSecret, 30, 7)
	raw, err := svc.IssueAccess(9, "staff")
	require.NoError(t, err)

	rec, c, err := runGate(t, svc, "Bearer "+raw)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(9), c.Get(CtxUserID))
	assert.Equal(t, "staff", c.Get(CtxRole))
}
