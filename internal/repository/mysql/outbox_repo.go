package mysql

import (
	"context"

	"Fishing_Forum/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{DB: db}
}

func (r *OutboxRepository) Create(ctx context.Context, ob *model.EmailOutbox) error {
	return r.DB.WithContext(ctx).Create(ob).Error
}

// ListPending outbox查询
func (r *OutboxRepository) ListPending(ctx context.Context, batchSize int) ([]model.EmailOutbox, error) {
	var list []model.EmailOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = ?", model.OutboxPending).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.EmailOutbox{}).Where("id = ?", id).
		Update("status", model.OutboxSent).Error
}

// MarkRetry 投递失败重试计数，达到 maxRetry 后不再投递
func (r *OutboxRepository) MarkRetry(ctx context.Context, id uint64, maxRetry int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.EmailOutbox{}).Where("id = ?", id).
			UpdateColumn("retry", gorm.Expr("retry + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&model.EmailOutbox{}).
			Where("id = ? AND retry >= ?", id, maxRetry).
			UpdateColumn("status", model.OutboxFailed).Error
	})
}
