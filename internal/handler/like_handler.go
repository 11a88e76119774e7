package handler

import (
	"net/http"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/service"
	"Fishing_Forum/internal/view"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	svc *service.LikeService
}

type LikeReq struct {
	Post uint64 `json:"post" form:"post" binding:"required"`
}

type LikeUpdateReq struct {
	Likes *bool `json:"likes" form:"likes" binding:"required"`
}

func NewLikeHandler(svc *service.LikeService) *LikeHandler {
	return &LikeHandler{svc: svc}
}

func (h *LikeHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Likes(list))
}

// Create 点赞或取消点赞
func (h *LikeHandler) Create(c *gin.Context) {
	var req LikeReq
	if !bind(c, &req) {
		return
	}
	l, err := h.svc.Toggle(c.Request.Context(), userID(c), req.Post)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view.Like(*l))
}

func (h *LikeHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	l, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Like(*l))
}

func (h *LikeHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req LikeUpdateReq
	if !bind(c, &req) {
		return
	}
	l, err := h.svc.Update(c.Request.Context(), userID(c), id, *req.Likes)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Like(*l))
}

func (h *LikeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID(c), id); err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
