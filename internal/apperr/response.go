package apperr

import (
	"net/http"

	"Fishing_Forum/internal/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errorStatusMap = map[ErrorCode]int{
	ErrInternal: http.StatusInternalServerError,
	ErrDatabase: http.StatusInternalServerError,
	ErrCache:    http.StatusInternalServerError,
	ErrBroker:   http.StatusInternalServerError,
	ErrStorage:  http.StatusInternalServerError,

	ErrUnauthorized:       http.StatusUnauthorized,
	ErrForbidden:          http.StatusForbidden,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrInvalidCredentials: http.StatusBadRequest, // 登录失败沿用 400
	ErrInactiveAccount:    http.StatusForbidden,

	ErrBadRequest:       http.StatusBadRequest,
	ErrValidation:       http.StatusBadRequest,
	ErrResourceNotFound: http.StatusNotFound,
	ErrResourceConflict: http.StatusConflict,
	ErrInvalidPage:      http.StatusNotFound,
}

// Status 错误码对应的 HTTP 状态
func Status(code ErrorCode) int {
	if s, ok := errorStatusMap[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// HandleError 统一写错误响应，非 AppError 按 500 处理并记录日志
func HandleError(c *gin.Context, err error) {
	appErr, ok := As(err)
	if !ok {
		pkg.Logger.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "internal server error"})
		return
	}

	status := Status(appErr.Code)
	if status >= http.StatusInternalServerError {
		pkg.Logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Int("code", int(appErr.Code)),
			zap.Error(appErr.Err))
		c.AbortWithStatusJSON(status, gin.H{"msg": appErr.Message})
		return
	}

	body := gin.H{"msg": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	c.AbortWithStatusJSON(status, body)
}
