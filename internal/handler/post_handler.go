package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/service"
	"Fishing_Forum/internal/storage"
	"Fishing_Forum/internal/view"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc       *service.PostService
	favorites *service.FavoriteService
	store     storage.FileStore
}

// CreatePostReq 支持 json 和 multipart，图片字段为 images
type CreatePostReq struct {
	Title  string `json:"title" form:"title" binding:"required,max=200"`
	Text   string `json:"text" form:"text" binding:"required"`
	Theme  string `json:"theme" form:"theme" binding:"required"`
	Status string `json:"status" form:"status" binding:"omitempty,oneof=open closed"`
}

// UpdatePostReq PUT 需要完整字段，PATCH 只改传入的字段
type UpdatePostReq struct {
	Title  *string `json:"title" form:"title" binding:"omitempty,max=200"`
	Text   *string `json:"text" form:"text"`
	Theme  *string `json:"theme" form:"theme"`
	Status *string `json:"status" form:"status" binding:"omitempty,oneof=open closed"`
}

type AddImageReq struct {
	Post uint64 `json:"post" form:"post" binding:"required"`
}

func NewPostHandler(svc *service.PostService, favorites *service.FavoriteService, store storage.FileStore) *PostHandler {
	return &PostHandler{svc: svc, favorites: favorites, store: store}
}

// Summaries 公开的帖子列表，只有概要字段
func (h *PostHandler) Summaries(c *gin.Context) {
	list, err := h.svc.Summaries(c.Request.Context())
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.PostSummaries(list))
}

// List 分页列表，?page= 页码，?week= 最近几周
func (h *PostHandler) List(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			apperr.HandleError(c, apperr.New(apperr.ErrInvalidPage, "Invalid page."))
			return
		}
		page = n
	}
	week, ok := queryInt(c, "week", 0)
	if !ok {
		return
	}
	list, stats, count, err := h.svc.Page(c.Request.Context(), page, week)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	results := view.PreviewPosts(view.Posts(list, stats, absoluteURL(c, h.store)))
	c.JSON(http.StatusOK, view.NewPage(c.Request, count, page, service.PageSize, results))
}

func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostReq
	if !bind(c, &req) {
		return
	}
	files, ok := h.images(c)
	if !ok {
		return
	}
	p, err := h.svc.Create(c.Request.Context(), userID(c), service.PostInput{
		Title:  req.Title,
		Text:   req.Text,
		Theme:  req.Theme,
		Status: req.Status,
	}, files)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	h.respondDetail(c, http.StatusCreated, p.ID)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respondDetail(c, http.StatusOK, id)
}

// Update PUT 与 PATCH 共用；multipart 请求时用 images 整体替换原有图片
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdatePostReq
	if !bind(c, &req) {
		return
	}
	if c.Request.Method == http.MethodPut {
		if err := requireFull(req); err != nil {
			apperr.HandleError(c, err)
			return
		}
	}
	files, ok := h.images(c)
	if !ok {
		return
	}
	patch := service.PostPatch{Title: req.Title, Text: req.Text, Theme: req.Theme, Status: req.Status}
	p, err := h.svc.Update(c.Request.Context(), userID(c), id, patch, files, isMultipart(c))
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	h.respondDetail(c, http.StatusOK, p.ID)
}

func (h *PostHandler) Delete(c *gin.Context) {
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

// Own 当前用户的帖子
func (h *PostHandler) Own(c *gin.Context) {
	week, ok := queryInt(c, "week", 0)
	if !ok {
		return
	}
	list, stats, err := h.svc.Own(c.Request.Context(), userID(c), week)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Posts(list, stats, absoluteURL(c, h.store)))
}

func (h *PostHandler) Search(c *gin.Context) {
	week, ok := queryInt(c, "week", 0)
	if !ok {
		return
	}
	list, stats, err := h.svc.Search(c.Request.Context(), c.Query("q"), week)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Posts(list, stats, absoluteURL(c, h.store)))
}

// Favorites 当前用户的收藏
func (h *PostHandler) Favorites(c *gin.Context) {
	list, err := h.favorites.ByUser(c.Request.Context(), userID(c))
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Favorites(list))
}

// AddFavorite 收藏或取消收藏
func (h *PostHandler) AddFavorite(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	f, err := h.favorites.Toggle(c.Request.Context(), userID(c), id)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.ToggleMessage(f))
}

func (h *PostHandler) ListImages(c *gin.Context) {
	list, err := h.svc.Images(c.Request.Context())
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Images(list, absoluteURL(c, h.store)))
}

// AddImage multipart 字段 post、image
func (h *PostHandler) AddImage(c *gin.Context) {
	var req AddImageReq
	if !bind(c, &req) {
		return
	}
	file, _ := c.FormFile("image")
	img, err := h.svc.AddImage(c.Request.Context(), userID(c), req.Post, file)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view.Image(*img, absoluteURL(c, h.store)))
}

func (h *PostHandler) respondDetail(c *gin.Context, status int, id uint64) {
	p, stats, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(status, view.Post(*p, stats, absoluteURL(c, h.store)))
}

// images multipart 中的 images 文件，json 请求返回空
func (h *PostHandler) images(c *gin.Context) ([]*multipart.FileHeader, bool) {
	if !isMultipart(c) {
		return nil, true
	}
	form, err := c.MultipartForm()
	if err != nil {
		apperr.HandleError(c, apperr.Wrap(apperr.ErrBadRequest, "invalid multipart form", err))
		return nil, false
	}
	return form.File["images"], true
}

func requireFull(req UpdatePostReq) error {
	fields := map[string]string{}
	if req.Title == nil {
		fields["title"] = "This field is required."
	}
	if req.Text == nil {
		fields["text"] = "This field is required."
	}
	if req.Theme == nil {
		fields["theme"] = "This field is required."
	}
	if len(fields) > 0 {
		return apperr.ValidationFields(fields)
	}
	return nil
}
