package mysql

import (
	"context"

	"Fishing_Forum/internal/model"

	"gorm.io/gorm"
)

type ThemeRepository struct {
	DB *gorm.DB
}

func NewThemeRepository(db *gorm.DB) *ThemeRepository {
	return &ThemeRepository{DB: db}
}

func (r *ThemeRepository) Create(ctx context.Context, t *model.Theme) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *ThemeRepository) List(ctx context.Context) ([]model.Theme, error) {
	var list []model.Theme
	err := r.DB.WithContext(ctx).Order("slug ASC").Find(&list).Error
	return list, err
}

func (r *ThemeRepository) FindBySlug(ctx context.Context, slug string) (*model.Theme, error) {
	var t model.Theme
	err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&t).Error
	return &t, err
}

// Delete 版块下的帖子由外键级联删除
func (r *ThemeRepository) Delete(ctx context.Context, slug string) (int64, error) {
	res := r.DB.WithContext(ctx).Where("slug = ?", slug).Delete(&model.Theme{})
	return res.RowsAffected, res.Error
}
