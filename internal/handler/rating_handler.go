package handler

import (
	"context"
	"net/http"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/service"
	"Fishing_Forum/internal/view"

	"github.com/gin-gonic/gin"
)

// ViewerLookup 读模型里展示当前用户邮箱
type ViewerLookup interface {
	Email(ctx context.Context, userID uint64) (string, error)
}

type RatingHandler struct {
	svc    *service.RatingService
	viewer ViewerLookup
}

type RatingReq struct {
	Post   uint64 `json:"post" form:"post" binding:"required"`
	Text   string `json:"text" form:"text"`
	Rating *int   `json:"rating" form:"rating" binding:"required"`
}

type RatingUpdateReq struct {
	Text   *string `json:"text" form:"text"`
	Rating *int    `json:"rating" form:"rating"`
}

func NewRatingHandler(svc *service.RatingService, viewer ViewerLookup) *RatingHandler {
	return &RatingHandler{svc: svc, viewer: viewer}
}

func (h *RatingHandler) List(c *gin.Context) {
	email, ok := h.viewerEmail(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Ratings(list, email))
}

// Create 同一用户对同一帖子重复评分时覆盖
func (h *RatingHandler) Create(c *gin.Context) {
	var req RatingReq
	if !bind(c, &req) {
		return
	}
	r, err := h.svc.Create(c.Request.Context(), userID(c), req.Post, req.Text, *req.Rating)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, r.ID)
}

func (h *RatingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respond(c, http.StatusOK, id)
}

func (h *RatingHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req RatingUpdateReq
	if !bind(c, &req) {
		return
	}
	if c.Request.Method == http.MethodPut && req.Rating == nil {
		apperr.HandleError(c, apperr.Field("rating", "This field is required."))
		return
	}
	r, err := h.svc.Update(c.Request.Context(), userID(c), id, req.Text, req.Rating)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	h.respond(c, http.StatusOK, r.ID)
}

func (h *RatingHandler) Delete(c *gin.Context) {
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

func (h *RatingHandler) respond(c *gin.Context, status int, id uint64) {
	email, ok := h.viewerEmail(c)
	if !ok {
		return
	}
	r, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(status, view.Rating(*r, email))
}

// viewerEmail 匿名访问返回空串
func (h *RatingHandler) viewerEmail(c *gin.Context) (string, bool) {
	id := userID(c)
	if id == 0 {
		return "", true
	}
	email, err := h.viewer.Email(c.Request.Context(), id)
	if err != nil {
		apperr.HandleError(c, err)
		return "", false
	}
	return email, true
}
