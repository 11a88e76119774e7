package handler

import (
	"net/http"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/service"
	"Fishing_Forum/internal/view"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	svc *service.FavoriteService
}

type FavoriteReq struct {
	Post uint64 `json:"post" form:"post" binding:"required"`
}

type FavoriteUpdateReq struct {
	Favorite *bool `json:"favorite" form:"favorite" binding:"required"`
}

func NewFavoriteHandler(svc *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{svc: svc}
}

func (h *FavoriteHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Favorites(list))
}

func (h *FavoriteHandler) Create(c *gin.Context) {
	var req FavoriteReq
	if !bind(c, &req) {
		return
	}
	f, err := h.svc.Toggle(c.Request.Context(), userID(c), req.Post)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view.Favorite(*f))
}

func (h *FavoriteHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	f, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Favorite(*f))
}

func (h *FavoriteHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req FavoriteUpdateReq
	if !bind(c, &req) {
		return
	}
	f, err := h.svc.Update(c.Request.Context(), userID(c), id, *req.Favorite)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Favorite(*f))
}

func (h *FavoriteHandler) Delete(c *gin.Context) {
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

// Mine 当前用户的收藏
func (h *FavoriteHandler) Mine(c *gin.Context) {
	list, err := h.svc.ByUser(c.Request.Context(), userID(c))
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Favorites(list))
}

// AddFavorites 路径中的 id 为帖子 id
func (h *FavoriteHandler) AddFavorites(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	f, err := h.svc.Toggle(c.Request.Context(), userID(c), id)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.ToggleMessage(f))
}
