package mysql

import (
	"context"

	"Fishing_Forum/internal/model"

	"gorm.io/gorm"
)

type PostImageRepository struct {
	DB *gorm.DB
}

func NewPostImageRepository(db *gorm.DB) *PostImageRepository {
	return &PostImageRepository{DB: db}
}

func (r *PostImageRepository) Create(ctx context.Context, img *model.PostImage) error {
	return r.DB.WithContext(ctx).Create(img).Error
}

func (r *PostImageRepository) List(ctx context.Context) ([]model.PostImage, error) {
	var list []model.PostImage
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *PostImageRepository) ListByPost(ctx context.Context, postID uint64) ([]model.PostImage, error) {
	var list []model.PostImage
	err := r.DB.WithContext(ctx).Where("post_id = ?", postID).Order("id ASC").Find(&list).Error
	return list, err
}

// ReplaceForPost 整体替换帖子图片，返回旧记录供调用方清理文件
func (r *PostImageRepository) ReplaceForPost(ctx context.Context, postID uint64, images []model.PostImage) ([]model.PostImage, error) {
	var old []model.PostImage
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Find(&old).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.PostImage{}).Error; err != nil {
			return err
		}
		if len(images) == 0 {
			return nil
		}
		for i := range images {
			images[i].PostID = postID
		}
		return tx.Create(&images).Error
	})
	return old, err
}
