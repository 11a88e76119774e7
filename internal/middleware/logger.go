package middleware

import (
	"runtime/debug"
	"time"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger 每个请求一条访问日志
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if id := c.GetUint64(ContextUserIDKey); id != 0 {
			fields = append(fields, zap.Uint64("user_id", id))
		}
		if c.Writer.Status() >= 500 {
			pkg.Logger.Error("request", fields...)
			return
		}
		pkg.Logger.Info("request", fields...)
	}
}

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				// 记录堆栈信息
				pkg.Logger.Error("panic recovered",
					zap.Any("error", r),
					zap.String("stack", string(debug.Stack())))
				apperr.HandleError(c, apperr.New(apperr.ErrInternal, "internal server error"))
			}
		}()
		c.Next()
	}
}
