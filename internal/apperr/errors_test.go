package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrValidation:         http.StatusBadRequest,
		ErrInvalidCredentials: http.StatusBadRequest,
		ErrUnauthorized:       http.StatusUnauthorized,
		ErrForbidden:          http.StatusForbidden,
		ErrResourceNotFound:   http.StatusNotFound,
		ErrInternal:           http.StatusInternalServerError,
		ErrorCode(9999):       http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, Status(code), "code %d", code)
	}
}

func TestAsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("Not found."))
	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, ErrResourceNotFound, appErr.Code)
	assert.True(t, Is(err, ErrResourceNotFound))
	assert.False(t, Is(errors.New("plain"), ErrResourceNotFound))
}

type bindReq struct {
	Email    string `validate:"required,email"`
	Password string `validate:"min=6"`
}

func TestFromBinding(t *testing.T) {
	v := validator.New()
	err := v.Struct(bindReq{Email: "nope", Password: "123"})
	require.Error(t, err)

	appErr := FromBinding(err)
	assert.Equal(t, ErrValidation, appErr.Code)
	assert.Equal(t, "Enter a valid email address.", appErr.Fields["Email"])
	assert.Equal(t, "Ensure this field has at least 6 characters.", appErr.Fields["Password"])

	plain := FromBinding(errors.New("unexpected EOF"))
	assert.Equal(t, ErrBadRequest, plain.Code)
	assert.Equal(t, "invalid params", plain.Message)
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleError(c, Field("email", "user with this email already exists."))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user with this email already exists.", body["msg"])
	assert.Equal(t, map[string]any{"email": "user with this email already exists."}, body["errors"])

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	HandleError(c, errors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"msg":"internal server error"}`, w.Body.String())
}
