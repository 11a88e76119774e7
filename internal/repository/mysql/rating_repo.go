package mysql

import (
	"context"

	"Fishing_Forum/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

// Upsert 同一用户对同一帖子重复评分时覆盖 text/rating
func (r *RatingRepository) Upsert(ctx context.Context, rt *model.Rating) error {
	db := r.DB.WithContext(ctx)
	err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "author_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"text", "rating", "updated_at"}),
	}).Create(rt).Error
	if err != nil {
		return err
	}
	// ON DUPLICATE KEY UPDATE 后自增 id 不可靠，回读
	var saved model.Rating
	if err = db.Preload("Post").Preload("Author").
		Where("post_id = ? AND author_id = ?", rt.PostID, rt.AuthorID).
		First(&saved).Error; err != nil {
		return err
	}
	*rt = saved
	return nil
}

func (r *RatingRepository) FindByID(ctx context.Context, id uint64) (*model.Rating, error) {
	var rt model.Rating
	err := r.DB.WithContext(ctx).Preload("Post").Preload("Author").First(&rt, id).Error
	return &rt, err
}

func (r *RatingRepository) List(ctx context.Context) ([]model.Rating, error) {
	var list []model.Rating
	err := r.DB.WithContext(ctx).Preload("Post").Preload("Author").Order("id ASC").Find(&list).Error
	return list, err
}

func (r *RatingRepository) Update(ctx context.Context, rt *model.Rating) error {
	return r.DB.WithContext(ctx).Model(rt).Omit(clause.Associations).
		Select("text", "rating").
		Updates(rt).Error
}

func (r *RatingRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Delete(&model.Rating{}, id).Error
}

type postAvg struct {
	PostID uint64
	Avg    float64
}

func (r *RatingRepository) AverageByPosts(ctx context.Context, postIDs []uint64) (map[uint64]float64, error) {
	out := make(map[uint64]float64, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	var rows []postAvg
	err := r.DB.WithContext(ctx).Model(&model.Rating{}).
		Select("post_id, AVG(rating) AS avg").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PostID] = row.Avg
	}
	return out, nil
}
