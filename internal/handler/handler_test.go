package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"Fishing_Forum/internal/middleware"
	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/repository/interfaces"
	"Fishing_Forum/internal/repository/mocks"
	"Fishing_Forum/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// as 模拟已登录用户
func as(id uint64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id != 0 {
			c.Set(middleware.ContextUserIDKey, id)
		}
		c.Next()
	}
}

func request(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errBody struct {
	Msg    string            `json:"msg"`
	Errors map[string]string `json:"errors"`
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) errBody {
	t.Helper()
	var b errBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b
}

func accountEngine(users *mocks.UserRepository) *gin.Engine {
	svc := service.NewAccountService(users, new(mocks.TokenStore), new(mocks.ResetCodeStore), new(mocks.OutboxRepository))
	h := NewAccountHandler(svc)
	r := gin.New()
	r.POST("/register/", h.Register)
	r.GET("/activate/:code/", h.Activate)
	return r
}

func TestRegisterPasswordMismatch(t *testing.T) {
	users := new(mocks.UserRepository)
	w := request(accountEngine(users), http.MethodPost, "/register/",
		`{"email":"angler@lake.io","password":"secret1","password_confirm":"secret2"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "passwords do not match", decodeErr(t, w).Msg)
	users.AssertNotCalled(t, "CreateWithOutbox", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterFieldErrors(t *testing.T) {
	w := request(accountEngine(new(mocks.UserRepository)), http.MethodPost, "/register/",
		`{"email":"not-an-email","password":"123","password_confirm":"123"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	b := decodeErr(t, w)
	assert.Equal(t, "Enter a valid email address.", b.Errors["email"])
	assert.Equal(t, "Ensure this field has at least 6 characters.", b.Errors["password"])
}

func TestRegisterMalformedJSON(t *testing.T) {
	w := request(accountEngine(new(mocks.UserRepository)), http.MethodPost, "/register/", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid params", decodeErr(t, w).Msg)
}

func TestActivateUnknownCode(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("FindByActivationCode", mock.Anything, "nope").Return(nil, errNotFound)
	w := request(accountEngine(users), http.MethodGet, "/activate/nope/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type postDeps struct {
	posts   *mocks.PostRepository
	images  *mocks.PostImageRepository
	themes  *mocks.ThemeRepository
	likes   *mocks.LikeRepository
	ratings *mocks.RatingRepository
	favs    *mocks.FavoriteRepository
	store   *mocks.FileStore
}

func postEngine(actor uint64) (*gin.Engine, postDeps) {
	d := postDeps{
		posts:   new(mocks.PostRepository),
		images:  new(mocks.PostImageRepository),
		themes:  new(mocks.ThemeRepository),
		likes:   new(mocks.LikeRepository),
		ratings: new(mocks.RatingRepository),
		favs:    new(mocks.FavoriteRepository),
		store:   new(mocks.FileStore),
	}
	svc := service.NewPostService(d.posts, d.images, d.themes, d.likes, d.ratings, nil, d.store)
	h := NewPostHandler(svc, service.NewFavoriteService(d.favs, d.posts), d.store)
	r := gin.New()
	r.Use(as(actor))
	r.GET("/post/", h.List)
	r.GET("/post/search/", h.Search)
	r.PUT("/post/:id/", h.Update)
	r.PATCH("/post/:id/", h.Update)
	r.DELETE("/post/:id/", h.Delete)
	r.POST("/post/:id/add_favorites/", h.AddFavorite)
	return r, d
}

func TestUpdatePostNonAuthorForbidden(t *testing.T) {
	r, d := postEngine(6)
	d.posts.On("FindByID", mock.Anything, uint64(1)).Return(&model.Post{ID: 1, AuthorID: 5}, nil)

	w := request(r, http.MethodPatch, "/post/1/", `{"title":"mine"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(r, http.MethodDelete, "/post/1/", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	d.posts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdatePostAnonymousForbidden(t *testing.T) {
	r, d := postEngine(0)
	d.posts.On("FindByID", mock.Anything, uint64(1)).Return(&model.Post{ID: 1, AuthorID: 5}, nil)
	w := request(r, http.MethodPatch, "/post/1/", `{"title":"mine"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPutPostRequiresAllFields(t *testing.T) {
	r, _ := postEngine(5)
	w := request(r, http.MethodPut, "/post/1/", `{"title":"only title"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	b := decodeErr(t, w)
	assert.Contains(t, b.Errors, "text")
	assert.Contains(t, b.Errors, "theme")
}

func TestPostListInvalidPage(t *testing.T) {
	r, _ := postEngine(1)
	w := request(r, http.MethodGet, "/post/?page=abc", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Invalid page.", decodeErr(t, w).Msg)
}

func TestPostListBadWeek(t *testing.T) {
	r, _ := postEngine(1)
	w := request(r, http.MethodGet, "/post/?week=soon", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeErr(t, w).Errors, "week")
}

func TestAddFavoriteMessage(t *testing.T) {
	r, d := postEngine(2)
	d.posts.On("FindByID", mock.Anything, uint64(9)).Return(&model.Post{ID: 9}, nil)
	d.favs.On("GetOrCreate", mock.Anything, uint64(2), uint64(9)).Return(&model.Favorite{ID: 1, UserID: 2, PostID: 9, Favorite: true}, true, nil)
	d.favs.On("FindByID", mock.Anything, uint64(1)).Return(&model.Favorite{ID: 1, UserID: 2, PostID: 9, Favorite: true}, nil)

	w := request(r, http.MethodPost, "/post/9/add_favorites/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"Successfully added to favorites !"`, w.Body.String())
}

func TestRatingCreateOutOfRange(t *testing.T) {
	ratings := new(mocks.RatingRepository)
	posts := new(mocks.PostRepository)
	users := new(mocks.UserRepository)
	accounts := service.NewAccountService(users, new(mocks.TokenStore), new(mocks.ResetCodeStore), new(mocks.OutboxRepository))
	h := NewRatingHandler(service.NewRatingService(ratings, posts), accounts)
	r := gin.New()
	r.Use(as(3))
	r.POST("/rating/", h.Create)

	w := request(r, http.MethodPost, "/rating/", `{"post":1,"rating":6}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Rating must be between 1 and 5.", decodeErr(t, w).Errors["rating"])

	w = request(r, http.MethodPost, "/rating/", `{"post":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "This field is required.", decodeErr(t, w).Errors["rating"])
	ratings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestConversationForbiddenForOutsider(t *testing.T) {
	msgs := new(mocks.MessageRepository)
	h := NewChatHandler(service.NewChatService(msgs, new(mocks.UserRepository)))
	r := gin.New()
	r.Use(as(3))
	r.GET("/chat/messages/:sender/:receiver/", h.Conversation)

	w := request(r, http.MethodGet, "/chat/messages/1/2/", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(r, http.MethodGet, "/chat/messages/x/2/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// stubDetail 让更新后的详情回读成功
func (d postDeps) stubDetail(p *model.Post) {
	d.posts.On("FindDetail", mock.Anything, p.ID).Return(p, nil)
	d.likes.On("CountByPosts", mock.Anything, []uint64{p.ID}).Return(map[uint64]int64{}, nil)
	d.ratings.On("AverageByPosts", mock.Anything, []uint64{p.ID}).Return(map[uint64]float64{}, nil)
}

func ownPost() *model.Post {
	return &model.Post{ID: 1, AuthorID: 5, Title: "t", Text: "x", ThemeSlug: "lakes", Status: model.PostStatusOpen}
}

func TestPatchPostJSONKeepsImages(t *testing.T) {
	r, d := postEngine(5)
	d.posts.On("FindByID", mock.Anything, uint64(1)).Return(ownPost(), nil)
	d.themes.On("FindBySlug", mock.Anything, "lakes").Return(&model.Theme{Slug: "lakes"}, nil)
	d.posts.On("Update", mock.Anything, mock.Anything).Return(nil)
	d.stubDetail(ownPost())

	w := request(r, http.MethodPatch, "/post/1/", `{"title":"renamed"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	d.images.AssertNotCalled(t, "ReplaceForPost", mock.Anything, mock.Anything, mock.Anything)
}

// multipart 更新即整体替换；不带 images 时清空原有图片
func TestPatchPostMultipartWithoutImagesClearsThem(t *testing.T) {
	r, d := postEngine(5)
	d.posts.On("FindByID", mock.Anything, uint64(1)).Return(ownPost(), nil)
	d.themes.On("FindBySlug", mock.Anything, "lakes").Return(&model.Theme{Slug: "lakes"}, nil)
	d.posts.On("Update", mock.Anything, mock.Anything).Return(nil)
	d.images.On("ReplaceForPost", mock.Anything, uint64(1), []model.PostImage{}).
		Return([]model.PostImage{{ID: 3, PostID: 1, Image: "posts/old.png"}}, nil).Once()
	d.store.On("Delete", mock.Anything, "posts/old.png").Return(nil).Once()
	d.stubDetail(ownPost())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("title", "renamed"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPatch, "/post/1/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	d.images.AssertExpectations(t)
	d.store.AssertExpectations(t)
}

func TestSearchPassesPlainQuery(t *testing.T) {
	r, d := postEngine(2)
	q := `bob's & "pike"`
	found := model.Post{ID: 4, AuthorID: 1, Title: `Bob's & "Pike"`, Text: "2 < 3 casts", ThemeSlug: "lakes"}
	d.posts.On("ListDetail", mock.Anything, mock.MatchedBy(func(f interfaces.PostFilter) bool {
		return f.Query == q
	})).Return([]model.Post{found}, nil).Once()
	d.likes.On("CountByPosts", mock.Anything, []uint64{4}).Return(map[uint64]int64{4: 1}, nil)
	d.ratings.On("AverageByPosts", mock.Anything, []uint64{4}).Return(map[uint64]float64{}, nil)

	w := request(r, http.MethodGet, "/post/search/?q="+url.QueryEscape(q), "")
	require.Equal(t, http.StatusOK, w.Code)
	var got []struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, `Bob's & "Pike"`, got[0].Title)
	assert.Equal(t, "2 < 3 casts", got[0].Text)
	d.posts.AssertExpectations(t)
}

var errNotFound = gorm.ErrRecordNotFound
