package handler

import (
	"net/http"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/service"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	svc *service.AccountService
}

// RegisterReq 注册请求体
type RegisterReq struct {
	Email           string `json:"email" form:"email" binding:"required,email"`
	Password        string `json:"password" form:"password" binding:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm" binding:"required,min=6"`
}

type LoginReq struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type ChangePasswordReq struct {
	OldPassword string `json:"old_password" form:"old_password" binding:"required"`
	NewPassword string `json:"new_password" form:"new_password" binding:"required"`
}

// ResetReq 忘记密码请求体
type ResetReq struct {
	Email string `json:"email" form:"email" binding:"required,email"`
}

type ResetConfirmReq struct {
	Token    string `json:"token" form:"token" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

func NewAccountHandler(svc *service.AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// Register 注册接口
func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterReq
	if !bind(c, &req) {
		return
	}
	if err := h.svc.Register(c.Request.Context(), req.Email, req.Password, req.PasswordConfirm); err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, "Successfully signed up!")
}

func (h *AccountHandler) Activate(c *gin.Context) {
	if err := h.svc.Activate(c.Request.Context(), c.Param("code")); err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, "Your account successfully activated")
}

// Login 登录接口
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginReq
	if !bind(c, &req) {
		return
	}
	pair, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// TokenRefresh 利用refresh来更新access
func (h *AccountHandler) TokenRefresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" form:"refresh_token" binding:"required"`
	}
	if !bind(c, &req) {
		return
	}
	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *AccountHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), userID(c)); err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, "Successfully logged out")
}

func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordReq
	if !bind(c, &req) {
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), userID(c), req.OldPassword, req.NewPassword); err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"code":    http.StatusOK,
		"message": "Your password successfully changed",
		"data":    []any{},
	})
}

// PasswordReset 不论邮箱是否存在都返回成功
func (h *AccountHandler) PasswordReset(c *gin.Context) {
	var req ResetReq
	if !bind(c, &req) {
		return
	}
	if err := h.svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (h *AccountHandler) PasswordResetConfirm(c *gin.Context) {
	var req ResetConfirmReq
	if !bind(c, &req) {
		return
	}
	if err := h.svc.ConfirmPasswordReset(c.Request.Context(), req.Token, req.Password); err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
