package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-signing-key")

func signedToken(t *testing.T, key []byte, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		Username: "punter",
		UserHash: UserHashFromUsername("punter", key),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := JWT(testKey)(next)(c)
	return rec, err
}

func TestJWTAcceptsValidToken(t *testing.T) {
	token := signedToken(t, testKey, time.Now().Add(time.Hour))

	rec, err := runJWT(t, token)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAcceptsBearerPrefix(t *testing.T) {
	token := signedToken(t, testKey, time.Now().Add(time.Hour))

	rec, err := runJWT(t, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTRejectsMissingHeader(t *testing.T) {
	_, err := runJWT(t, "")
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	token := signedToken(t, testKey, time.Now().Add(-time.Hour))

	_, err := runJWT(t, token)
	assert.Error(t, err)
}

func TestJWTRejectsWrongKey(t *testing.T) {
	token := signedToken(t, []byte("some-other-key"), time.Now().Add(time.Hour))

	_, err := runJWT(t, token)
	assert.Error(t, err)
}

func TestUserHashIsDeterministicAndNormalised(t *testing.T) {
	assert.Equal(t,
		UserHashFromUsername("Punter", testKey),
		UserHashFromUsername("  punter ", testKey))
	assert.NotEqual(t,
		UserHashFromUsername("punter", testKey),
		UserHashFromUsername("punter", []byte("other")))
}
