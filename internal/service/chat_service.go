package service

import (
	"context"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/pkg"
	"Fishing_Forum/internal/repository/interfaces"

	"go.uber.org/zap"
)

type ChatService struct {
	messages interfaces.MessageRepository
	users    interfaces.UserRepository
}

func NewChatService(messages interfaces.MessageRepository, users interfaces.UserRepository) *ChatService {
	return &ChatService{messages: messages, users: users}
}

// Conversation 只有会话双方可以读取；发给读者的消息标记为已读
func (s *ChatService) Conversation(ctx context.Context, actorID, senderID, receiverID uint64) ([]model.Message, error) {
	if actorID != senderID && actorID != receiverID {
		return nil, apperr.Forbidden("You do not have permission to perform this action.")
	}
	list, err := s.messages.Conversation(ctx, senderID, receiverID)
	if err != nil {
		return nil, internal(err)
	}
	s.markReceived(ctx, actorID, list)
	return list, nil
}

// Inbox 当前用户参与的全部消息
func (s *ChatService) Inbox(ctx context.Context, actorID uint64) ([]model.Message, error) {
	list, err := s.messages.Involving(ctx, actorID)
	if err != nil {
		return nil, internal(err)
	}
	s.markReceived(ctx, actorID, list)
	return list, nil
}

func (s *ChatService) Send(ctx context.Context, actorID, receiverID uint64, text string) (*model.Message, error) {
	if receiverID == 0 {
		return nil, apperr.Field("receiver", "This field is required.")
	}
	if receiverID == actorID {
		return nil, apperr.Field("receiver", "You cannot send a message to yourself.")
	}
	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		return nil, notFoundOr(err, msgNotFound)
	}
	m := &model.Message{SenderID: actorID, ReceiverID: receiverID, Message: pkg.SanitizeText(text)}
	if m.Message == "" {
		return nil, apperr.Field("message", "This field may not be blank.")
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, internal(err)
	}
	return m, nil
}

// Users 除自己外的用户目录
func (s *ChatService) Users(ctx context.Context, actorID uint64) ([]model.User, error) {
	list, err := s.users.ListExcept(ctx, actorID)
	if err != nil {
		return nil, internal(err)
	}
	return list, nil
}

func (s *ChatService) markReceived(ctx context.Context, actorID uint64, list []model.Message) {
	var ids []uint64
	for i := range list {
		if list[i].ReceiverID == actorID && !list[i].IsReceived {
			ids = append(ids, list[i].ID)
			list[i].IsReceived = true
		}
	}
	if len(ids) == 0 {
		return
	}
	if err := s.messages.MarkReceived(ctx, ids); err != nil {
		pkg.Logger.Warn("mark messages received", zap.Uint64("user_id", actorID), zap.Error(err))
	}
}
