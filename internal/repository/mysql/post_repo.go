package mysql

import (
	"context"
	"strings"

	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/repository/interfaces"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, id).Error
	return &post, err
}

func (r *PostRepository) FindDetail(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.preloadDetail(r.DB.WithContext(ctx)).First(&post, id).Error
	return &post, err
}

// List 基础列表，固定按 id 升序保证分页稳定
func (r *PostRepository) List(ctx context.Context, f interfaces.PostFilter) ([]model.Post, error) {
	var list []model.Post
	q := r.page(r.filter(r.DB.WithContext(ctx).Model(&model.Post{}), f), f)
	err := q.Preload("Theme").Order("id ASC").Find(&list).Error
	return list, err
}

func (r *PostRepository) ListDetail(ctx context.Context, f interfaces.PostFilter) ([]model.Post, error) {
	var list []model.Post
	q := r.page(r.filter(r.DB.WithContext(ctx).Model(&model.Post{}), f), f)
	err := r.preloadDetail(q).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *PostRepository) Count(ctx context.Context, f interfaces.PostFilter) (int64, error) {
	var n int64
	err := r.filter(r.DB.WithContext(ctx).Model(&model.Post{}), f).Count(&n).Error
	return n, err
}

// Update 只更新帖子本身的字段，关联由各自仓储维护
func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Model(post).Omit(clause.Associations).
		Select("title", "text", "theme_slug", "status").
		Updates(post).Error
}

// Delete 图片、评论、点赞、评分、收藏由外键级联删除
func (r *PostRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Delete(&model.Post{}, id).Error
}

func (r *PostRepository) preloadDetail(q *gorm.DB) *gorm.DB {
	return q.Preload("Author").
		Preload("Theme").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Comments.Author")
}

func (r *PostRepository) filter(q *gorm.DB, f interfaces.PostFilter) *gorm.DB {
	if f.ThemeSlug != "" {
		q = q.Where("theme_slug = ?", f.ThemeSlug)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.AuthorID > 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if !f.Since.IsZero() {
		q = q.Where("created_at >= ?", f.Since)
	}
	if len(f.PostIDs) > 0 {
		q = q.Where("id IN ?", f.PostIDs)
	}
	if f.Query != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.Query)) + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(text) LIKE ?)", pattern, pattern)
	}
	return q
}

func (r *PostRepository) page(q *gorm.DB, f interfaces.PostFilter) *gorm.DB {
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	return q
}

// escapeLike 转义 LIKE 通配符，MySQL 默认转义符是反斜杠
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
