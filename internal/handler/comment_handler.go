package handler

import (
	"net/http"
	"strconv"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/service"
	"Fishing_Forum/internal/view"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.CommentService
}

type CommentReq struct {
	Post uint64 `json:"post" form:"post" binding:"required"`
	Body string `json:"body" form:"body" binding:"required"`
}

type CommentUpdateReq struct {
	Body string `json:"body" form:"body" binding:"required"`
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// List ?post= 只看某个帖子的评论
func (h *CommentHandler) List(c *gin.Context) {
	var postID uint64
	if raw := c.Query("post"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apperr.HandleError(c, apperr.Field("post", "A valid integer is required."))
			return
		}
		postID = id
	}
	list, err := h.svc.List(c.Request.Context(), postID)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Comments(list))
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req CommentReq
	if !bind(c, &req) {
		return
	}
	cm, err := h.svc.Create(c.Request.Context(), userID(c), req.Post, req.Body)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, cm.ID)
}

func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respond(c, http.StatusOK, id)
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req CommentUpdateReq
	if !bind(c, &req) {
		return
	}
	cm, err := h.svc.Update(c.Request.Context(), userID(c), id, req.Body)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Comment(*cm))
}

func (h *CommentHandler) Delete(c *gin.Context) {
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

// respond 重新读取以带上作者邮箱
func (h *CommentHandler) respond(c *gin.Context, status int, id uint64) {
	cm, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(status, view.Comment(*cm))
}
