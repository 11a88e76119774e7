package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/repository/interfaces"
	"Fishing_Forum/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type postFixture struct {
	svc     *PostService
	posts   *mocks.PostRepository
	images  *mocks.PostImageRepository
	themes  *mocks.ThemeRepository
	likes   *mocks.LikeRepository
	ratings *mocks.RatingRepository
	counts  *mocks.LikeCountCache
	store   *mocks.FileStore
}

func newPostFixture() *postFixture {
	f := &postFixture{
		posts:   new(mocks.PostRepository),
		images:  new(mocks.PostImageRepository),
		themes:  new(mocks.ThemeRepository),
		likes:   new(mocks.LikeRepository),
		ratings: new(mocks.RatingRepository),
		counts:  new(mocks.LikeCountCache),
		store:   new(mocks.FileStore),
	}
	f.svc = NewPostService(f.posts, f.images, f.themes, f.likes, f.ratings, f.counts, f.store)
	return f
}

func TestPageOutOfRange(t *testing.T) {
	f := newPostFixture()
	f.posts.On("Count", mock.Anything, interfaces.PostFilter{}).Return(int64(3), nil)

	_, _, _, err := f.svc.Page(context.Background(), 2, 0)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ErrInvalidPage))

	_, _, _, err = f.svc.Page(context.Background(), 0, 0)
	assert.True(t, apperr.Is(err, apperr.ErrInvalidPage))
}

func TestPageUsesFixedSizeAndWeekFilter(t *testing.T) {
	f := newPostFixture()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }
	since := now.Add(-14 * 24 * time.Hour)

	f.posts.On("Count", mock.Anything, interfaces.PostFilter{Since: since}).Return(int64(7), nil)
	f.posts.On("ListDetail", mock.Anything, interfaces.PostFilter{Since: since, Offset: 3, Limit: 3}).
		Return([]model.Post{{ID: 4}, {ID: 5}, {ID: 6}}, nil)
	f.counts.On("GetMany", mock.Anything, []uint64{4, 5, 6}).Return(map[uint64]int64{4: 1}, []uint64{5, 6}, nil)
	f.likes.On("CountByPosts", mock.Anything, []uint64{5, 6}).Return(map[uint64]int64{5: 2}, nil)
	f.counts.On("SetMany", mock.Anything, map[uint64]int64{5: 2, 6: 0}).Return(nil)
	f.ratings.On("AverageByPosts", mock.Anything, []uint64{4, 5, 6}).Return(map[uint64]float64{6: 4}, nil)

	list, stats, count, err := f.svc.Page(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.EqualValues(t, 7, count)
	assert.Equal(t, map[uint64]int64{4: 1, 5: 2, 6: 0}, stats.Likes)
	assert.Equal(t, 4.0, stats.Rating[6])
	_, rated := stats.Rating[4]
	assert.False(t, rated)
	f.counts.AssertExpectations(t)
}

func TestUpdatePostForbiddenForNonAuthor(t *testing.T) {
	f := newPostFixture()
	f.posts.On("FindByID", mock.Anything, uint64(1)).Return(&model.Post{ID: 1, AuthorID: 5}, nil)

	title := "mine now"
	_, err := f.svc.Update(context.Background(), 6, 1, PostPatch{Title: &title}, nil, false)
	assert.True(t, apperr.Is(err, apperr.ErrForbidden))

	_, err = f.svc.Update(context.Background(), 0, 1, PostPatch{Title: &title}, nil, false)
	assert.True(t, apperr.Is(err, apperr.ErrForbidden))

	assert.True(t, apperr.Is(f.svc.Delete(context.Background(), 6, 1), apperr.ErrForbidden))
	f.posts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.posts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUpdatePostReplacesImages(t *testing.T) {
	f := newPostFixture()
	f.posts.On("FindByID", mock.Anything, uint64(1)).Return(&model.Post{ID: 1, AuthorID: 5, Title: "t", Text: "x", ThemeSlug: "lakes", Status: model.PostStatusOpen}, nil)
	f.themes.On("FindBySlug", mock.Anything, "lakes").Return(&model.Theme{Slug: "lakes"}, nil)
	f.posts.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.images.On("ReplaceForPost", mock.Anything, uint64(1), []model.PostImage{}).
		Return([]model.PostImage{{ID: 1, Image: "posts/old.png"}}, nil)
	f.store.On("Delete", mock.Anything, "posts/old.png").Return(nil).Once()

	text := "<b>new</b> text & more"
	p, err := f.svc.Update(context.Background(), 5, 1, PostPatch{Text: &text}, nil, true)
	require.NoError(t, err)
	assert.Equal(t, "new text & more", p.Text)
	f.store.AssertExpectations(t)
}

func TestCreatePostValidation(t *testing.T) {
	f := newPostFixture()
	f.themes.On("FindBySlug", mock.Anything, "nowhere").Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.Create(context.Background(), 1, PostInput{Title: "", Text: "x", Theme: "nowhere", Status: "archived"}, nil)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "title")
	assert.Contains(t, appErr.Fields, "theme")
	assert.Contains(t, appErr.Fields, "status")
	f.posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePostDefaultsStatus(t *testing.T) {
	f := newPostFixture()
	f.themes.On("FindBySlug", mock.Anything, "lakes").Return(&model.Theme{Slug: "lakes"}, nil)
	f.posts.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
		return p.Status == model.PostStatusOpen && p.AuthorID == 3 && p.Title == "Pike"
	})).Return(nil).Once()

	p, err := f.svc.Create(context.Background(), 3, PostInput{Title: "<i>Pike</i>", Text: "big one", Theme: "lakes"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Pike", p.Title)
	f.posts.AssertExpectations(t)
}

func TestCreatePostStoresPlainText(t *testing.T) {
	f := newPostFixture()
	f.themes.On("FindBySlug", mock.Anything, "lakes").Return(&model.Theme{Slug: "lakes"}, nil)
	f.posts.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
		return p.Title == "Bob's Lake & Chips" && p.Text == `He said "pike" 2 < 3`
	})).Return(nil).Once()

	_, err := f.svc.Create(context.Background(), 3, PostInput{
		Title: "Bob's Lake & Chips",
		Text:  `He said "pike" 2 < 3`,
		Theme: "lakes",
	}, nil)
	require.NoError(t, err)
	f.posts.AssertExpectations(t)
}

func TestCreatePostTitleLengthCountsStoredText(t *testing.T) {
	f := newPostFixture()
	f.themes.On("FindBySlug", mock.Anything, "lakes").Return(&model.Theme{Slug: "lakes"}, nil)
	f.posts.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	title := strings.Repeat("'", 200)
	p, err := f.svc.Create(context.Background(), 3, PostInput{Title: title, Text: "x", Theme: "lakes"}, nil)
	require.NoError(t, err)
	assert.Equal(t, title, p.Title)
}

func TestSearchRequiresQuery(t *testing.T) {
	f := newPostFixture()
	_, _, err := f.svc.Search(context.Background(), "", 0)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "q")
}
