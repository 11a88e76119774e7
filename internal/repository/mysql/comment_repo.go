package mysql

import (
	"context"

	"Fishing_Forum/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Preload("Author").First(c, c.ID).Error
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint64) (*model.Comment, error) {
	var c model.Comment
	err := r.DB.WithContext(ctx).Preload("Author").First(&c, id).Error
	return &c, err
}

// List postID 为 0 时返回全部
func (r *CommentRepository) List(ctx context.Context, postID uint64) ([]model.Comment, error) {
	var list []model.Comment
	q := r.DB.WithContext(ctx).Preload("Author")
	if postID > 0 {
		q = q.Where("post_id = ?", postID)
	}
	err := q.Order("id ASC").Find(&list).Error
	return list, err
}

func (r *CommentRepository) Update(ctx context.Context, c *model.Comment) error {
	return r.DB.WithContext(ctx).Model(c).Omit(clause.Associations).Update("body", c.Body).Error
}

func (r *CommentRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Delete(&model.Comment{}, id).Error
}
