package mysql

import (
	"context"
	"errors"

	"Fishing_Forum/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	DB *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{DB: db}
}

func (r *FavoriteRepository) GetOrCreate(ctx context.Context, userID, postID uint64) (*model.Favorite, bool, error) {
	db := r.DB.WithContext(ctx)
	var f model.Favorite
	err := db.Where("post_id = ? AND user_id = ?", postID, userID).First(&f).Error
	if err == nil {
		return &f, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	f = model.Favorite{PostID: postID, UserID: userID, Favorite: true}
	if err = db.Omit(clause.Associations).Create(&f).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, err
		}
		if err = db.Where("post_id = ? AND user_id = ?", postID, userID).First(&f).Error; err != nil {
			return nil, false, err
		}
		return &f, false, nil
	}
	return &f, true, nil
}

func (r *FavoriteRepository) Save(ctx context.Context, f *model.Favorite) error {
	return r.DB.WithContext(ctx).Model(&model.Favorite{}).Where("id = ?", f.ID).Update("favorite", f.Favorite).Error
}

func (r *FavoriteRepository) FindByID(ctx context.Context, id uint64) (*model.Favorite, error) {
	var f model.Favorite
	err := r.DB.WithContext(ctx).Preload("Post").First(&f, id).Error
	return &f, err
}

func (r *FavoriteRepository) List(ctx context.Context) ([]model.Favorite, error) {
	var list []model.Favorite
	err := r.DB.WithContext(ctx).Preload("Post").Order("id ASC").Find(&list).Error
	return list, err
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uint64) ([]model.Favorite, error) {
	var list []model.Favorite
	err := r.DB.WithContext(ctx).Preload("Post").Where("user_id = ?", userID).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *FavoriteRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Delete(&model.Favorite{}, id).Error
}
