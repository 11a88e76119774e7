package mysql

import (
	"context"
	"errors"

	"Fishing_Forum/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	DB *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{DB: db}
}

// GetOrCreate 唯一 (post_id, author_id)；并发插入撞唯一键时回读已存在的行
func (r *LikeRepository) GetOrCreate(ctx context.Context, authorID, postID uint64) (*model.Like, bool, error) {
	db := r.DB.WithContext(ctx)
	var l model.Like
	err := db.Where("post_id = ? AND author_id = ?", postID, authorID).First(&l).Error
	if err == nil {
		return &l, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	l = model.Like{PostID: postID, AuthorID: authorID, Likes: true}
	if err = db.Omit(clause.Associations).Create(&l).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, err
		}
		if err = db.Where("post_id = ? AND author_id = ?", postID, authorID).First(&l).Error; err != nil {
			return nil, false, err
		}
		return &l, false, nil
	}
	return &l, true, nil
}

// Save 不加锁，后写覆盖
func (r *LikeRepository) Save(ctx context.Context, l *model.Like) error {
	return r.DB.WithContext(ctx).Model(&model.Like{}).Where("id = ?", l.ID).Update("likes", l.Likes).Error
}

func (r *LikeRepository) FindByID(ctx context.Context, id uint64) (*model.Like, error) {
	var l model.Like
	err := r.DB.WithContext(ctx).Preload("Author").First(&l, id).Error
	return &l, err
}

func (r *LikeRepository) List(ctx context.Context) ([]model.Like, error) {
	var list []model.Like
	err := r.DB.WithContext(ctx).Preload("Author").Order("id ASC").Find(&list).Error
	return list, err
}

func (r *LikeRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Delete(&model.Like{}, id).Error
}

type postCount struct {
	PostID uint64
	N      int64
}

func (r *LikeRepository) CountByPosts(ctx context.Context, postIDs []uint64) (map[uint64]int64, error) {
	out := make(map[uint64]int64, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	var rows []postCount
	err := r.DB.WithContext(ctx).Model(&model.Like{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ? AND likes = ?", postIDs, true).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PostID] = row.N
	}
	return out, nil
}
