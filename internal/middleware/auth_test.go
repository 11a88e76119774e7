package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"Fishing_Forum/internal/pkg"
	"Fishing_Forum/internal/repository/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	pkg.SetSecrets("access-test", "refresh-test")
}

type activeFunc func(ctx context.Context, id uint64) (bool, error)

func (f activeFunc) IsActive(ctx context.Context, id uint64) (bool, error) { return f(ctx, id) }

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint64(ContextUserIDKey)})
	})
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	r := newEngine(Auth(new(mocks.TokenStore)))

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer not-a-jwt").Code)
}

func TestAuthSingleSession(t *testing.T) {
	pair, err := pkg.GeneratePair(7)
	require.NoError(t, err)

	tokens := new(mocks.TokenStore)
	tokens.On("Get", mock.Anything, uint64(7)).Return("another-login", nil).Once()
	r := newEngine(Auth(tokens))
	w := do(r, "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "logging elsewhere")

	tokens.On("Get", mock.Anything, uint64(7)).Return(pair.AccessToken, nil).Once()
	tokens.On("Extend", mock.Anything, uint64(7)).Return(nil).Once()
	w = do(r, "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7}`, w.Body.String())
	tokens.AssertExpectations(t)
}

func TestOptionalAuthAnonymous(t *testing.T) {
	r := newEngine(OptionalAuth(new(mocks.TokenStore)))
	w := do(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0}`, w.Body.String())

	for _, header := range []string{"Bearer broken", "Token abc"} {
		w = do(r, header)
		assert.Equal(t, http.StatusOK, w.Code, header)
		assert.JSONEq(t, `{"user_id":0}`, w.Body.String())
	}
}

func TestOptionalAuthStaleSessionIsAnonymous(t *testing.T) {
	pair, err := pkg.GeneratePair(4)
	require.NoError(t, err)
	tokens := new(mocks.TokenStore)
	tokens.On("Get", mock.Anything, uint64(4)).Return("newer-login", nil).Once()

	w := do(newEngine(OptionalAuth(tokens)), "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0}`, w.Body.String())
	tokens.AssertNotCalled(t, "Extend", mock.Anything, mock.Anything)
}

func TestRequireActive(t *testing.T) {
	pair, err := pkg.GeneratePair(3)
	require.NoError(t, err)
	tokens := new(mocks.TokenStore)
	tokens.On("Get", mock.Anything, uint64(3)).Return(pair.AccessToken, nil)
	tokens.On("Extend", mock.Anything, uint64(3)).Return(nil)

	inactive := newEngine(Auth(tokens), RequireActive(activeFunc(func(context.Context, uint64) (bool, error) {
		return false, nil
	})))
	w := do(inactive, "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "account is not activated")

	broken := newEngine(Auth(tokens), RequireActive(activeFunc(func(context.Context, uint64) (bool, error) {
		return false, errors.New("db down")
	})))
	assert.Equal(t, http.StatusInternalServerError, do(broken, "Bearer "+pair.AccessToken).Code)

	active := newEngine(Auth(tokens), RequireActive(activeFunc(func(context.Context, uint64) (bool, error) {
		return true, nil
	})))
	assert.Equal(t, http.StatusOK, do(active, "Bearer "+pair.AccessToken).Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(*gin.Context) { panic("boom") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"msg":"internal server error"}`, w.Body.String())
}
