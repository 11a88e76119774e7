package middleware

import (
	"context"
	"strings"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/pkg"
	"Fishing_Forum/internal/repository/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ContextUserIDKey = "user_id"

// ActiveChecker 查询账号是否已激活
type ActiveChecker interface {
	IsActive(ctx context.Context, userID uint64) (bool, error)
}

// Auth 必须登录；token 需与 redis 中保存的一致，校验通过后续期
func Auth(tokens interfaces.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := authenticate(c, tokens)
		if err != nil {
			apperr.HandleError(c, err)
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth 校验通过时写入用户 id，没有头或校验失败都以匿名身份放行，由后续权限规则拒绝
func OptionalAuth(tokens interfaces.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		userID, err := authenticate(c, tokens)
		if err != nil {
			pkg.Logger.Debug("optional auth fell back to anonymous", zap.Error(err))
			c.Next()
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// RequireActive 未激活账号不能写入，需放在 Auth 之后
func RequireActive(checker ActiveChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint64(ContextUserIDKey)
		if userID == 0 {
			c.Next()
			return
		}
		active, err := checker.IsActive(c.Request.Context(), userID)
		if err != nil {
			apperr.HandleError(c, err)
			return
		}
		if !active {
			apperr.HandleError(c, apperr.New(apperr.ErrInactiveAccount, "account is not activated"))
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, tokens interfaces.TokenStore) (uint64, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, apperr.Unauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, apperr.Unauthorized("invalid authorization format")
	}
	tokenStr := parts[1]

	claims, err := pkg.ParseAccess(tokenStr)
	if err != nil {
		return 0, apperr.New(apperr.ErrInvalidToken, "invalid or expired token")
	}

	// redis校验是否是正确的token
	origin, err := tokens.Get(c.Request.Context(), claims.UserID)
	if err != nil || origin != tokenStr {
		return 0, apperr.New(apperr.ErrInvalidToken, "Account has been logging elsewhere")
	}

	// 校验通过后更新过期时间
	if err = tokens.Extend(c.Request.Context(), claims.UserID); err != nil {
		pkg.Logger.Warn("extend token ttl", zap.Uint64("user_id", claims.UserID), zap.Error(err))
	}
	return claims.UserID, nil
}
