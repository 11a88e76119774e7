package service

import (
	"context"
	"testing"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/repository/interfaces"
	"Fishing_Forum/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestThemeListCached(t *testing.T) {
	themes := new(mocks.ThemeRepository)
	themes.On("List", mock.Anything).Return([]model.Theme{{Slug: "lakes", Name: "Lakes"}}, nil).Once()
	svc := NewThemeService(themes, new(mocks.PostRepository))

	for i := 0; i < 3; i++ {
		list, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}
	themes.AssertNumberOfCalls(t, "List", 1)

	// 新建后缓存失效
	themes.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	themes.On("List", mock.Anything).Return([]model.Theme{{Slug: "lakes"}, {Slug: "rivers"}}, nil).Once()
	_, err := svc.Create(context.Background(), "rivers", "Rivers")
	require.NoError(t, err)
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestThemeCreateRejectsBadSlug(t *testing.T) {
	svc := NewThemeService(new(mocks.ThemeRepository), new(mocks.PostRepository))
	_, err := svc.Create(context.Background(), "sea fishing", "Sea")
	assert.True(t, apperr.Is(err, apperr.ErrValidation))
}

func TestThemePosts(t *testing.T) {
	themes := new(mocks.ThemeRepository)
	posts := new(mocks.PostRepository)
	svc := NewThemeService(themes, posts)

	themes.On("FindBySlug", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
	_, err := svc.Posts(context.Background(), "ghost", "")
	assert.True(t, apperr.Is(err, apperr.ErrResourceNotFound))

	themes.On("FindBySlug", mock.Anything, "lakes").Return(&model.Theme{Slug: "lakes"}, nil)
	posts.On("List", mock.Anything, interfaces.PostFilter{ThemeSlug: "lakes", Status: "closed"}).
		Return([]model.Post{{ID: 1, Title: "Ice"}}, nil).Once()
	list, err := svc.Posts(context.Background(), "lakes", "closed")
	require.NoError(t, err)
	assert.Equal(t, "Ice", list[0].Title)
}
