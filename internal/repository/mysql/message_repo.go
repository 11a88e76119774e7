package mysql

import (
	"context"

	"Fishing_Forum/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *model.Message) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(m).Error
}

func (r *MessageRepository) Conversation(ctx context.Context, senderID, receiverID uint64) ([]model.Message, error) {
	var list []model.Message
	err := r.DB.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Order("timestamp ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *MessageRepository) Involving(ctx context.Context, userID uint64) ([]model.Message, error) {
	var list []model.Message
	err := r.DB.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("timestamp ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *MessageRepository) MarkReceived(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&model.Message{}).
		Where("id IN ? AND is_received = ?", ids, false).
		Update("is_received", true).Error
}
