package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/repository/interfaces"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"gorm.io/gorm"
)

const (
	themeCacheKey = "themes:all"
	themeCacheTTL = 60 * time.Second
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

type ThemeService struct {
	themes interfaces.ThemeRepository
	posts  interfaces.PostRepository
	cache  *expirable.LRU[string, []model.Theme]
}

func NewThemeService(themes interfaces.ThemeRepository, posts interfaces.PostRepository) *ThemeService {
	return &ThemeService{
		themes: themes,
		posts:  posts,
		cache:  expirable.NewLRU[string, []model.Theme](8, nil, themeCacheTTL),
	}
}

// List 公开接口，版块变动很少，缓存 60 秒
func (s *ThemeService) List(ctx context.Context) ([]model.Theme, error) {
	if list, ok := s.cache.Get(themeCacheKey); ok {
		return list, nil
	}
	list, err := s.themes.List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	s.cache.Add(themeCacheKey, list)
	return list, nil
}

// Posts 版块下的帖子，status 为空时不过滤
func (s *ThemeService) Posts(ctx context.Context, slug, status string) ([]model.Post, error) {
	if _, err := s.themes.FindBySlug(ctx, slug); err != nil {
		return nil, notFoundOr(err, msgNotFound)
	}
	list, err := s.posts.List(ctx, interfaces.PostFilter{ThemeSlug: slug, Status: status})
	if err != nil {
		return nil, internal(err)
	}
	return list, nil
}

func (s *ThemeService) Create(ctx context.Context, slug, name string) (*model.Theme, error) {
	slug = strings.TrimSpace(slug)
	name = strings.TrimSpace(name)
	if !slugPattern.MatchString(slug) || len(slug) > 100 {
		return nil, apperr.Field("slug", "Enter a valid slug consisting of letters, numbers, underscores or hyphens.")
	}
	if name == "" || len(name) > 100 {
		return nil, apperr.Field("name", "Ensure this field has no more than 100 characters.")
	}
	t := &model.Theme{Slug: slug, Name: name}
	if err := s.themes.Create(ctx, t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.ErrResourceConflict, "theme with this slug or name already exists.")
		}
		return nil, internal(err)
	}
	s.cache.Remove(themeCacheKey)
	return t, nil
}

// Delete 级联删除版块下所有帖子
func (s *ThemeService) Delete(ctx context.Context, slug string) error {
	n, err := s.themes.Delete(ctx, slug)
	if err != nil {
		return internal(err)
	}
	if n == 0 {
		return apperr.NotFound(msgNotFound)
	}
	s.cache.Remove(themeCacheKey)
	return nil
}
