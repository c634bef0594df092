package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spizarnia/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubValidator struct {
	claims *types.TokenClaims
	err    error
}

func (s *stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	return s.claims, s.err
}

func authTestRouter(validator TokenValidator) *gin.Engine {
	router := gin.New()
	router.GET("/protected", AuthMiddleware(validator), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func doAuthRequest(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	userID := uuid.New()
	router := authTestRouter(&stubValidator{claims: &types.TokenClaims{
		UserID:   userID,
		Username: "anna_k",
	}})

	recorder := doAuthRequest(router, "Bearer dobry-token")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), userID.String())
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := authTestRouter(&stubValidator{})

	recorder := doAuthRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := authTestRouter(&stubValidator{})

	for _, header := range []string{"dobry-token", "Basic dobry-token", "Bearer a b"} {
		recorder := doAuthRequest(router, header)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "header %q", header)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router := authTestRouter(&stubValidator{err: errors.New("invalid token")})

	recorder := doAuthRequest(router, "Bearer zly-token")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
