package handler

import (
	"net/http"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/service"
	"Fishing_Forum/internal/view"

	"github.com/gin-gonic/gin"
)

type ThemeHandler struct {
	svc *service.ThemeService
}

func NewThemeHandler(svc *service.ThemeService) *ThemeHandler {
	return &ThemeHandler{svc: svc}
}

func (h *ThemeHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Themes(list))
}

// Posts 版块页，?filter= 按帖子状态过滤
func (h *ThemeHandler) Posts(c *gin.Context) {
	list, err := h.svc.Posts(c.Request.Context(), c.Param("slug"), c.Query("filter"))
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.ThemePosts(list))
}
