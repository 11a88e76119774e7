package service

import (
	"context"
	"testing"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestConversationParticipantsOnly(t *testing.T) {
	msgs := new(mocks.MessageRepository)
	svc := NewChatService(msgs, new(mocks.UserRepository))

	_, err := svc.Conversation(context.Background(), 3, 1, 2)
	assert.True(t, apperr.Is(err, apperr.ErrForbidden))
	msgs.AssertNotCalled(t, "Conversation", mock.Anything, mock.Anything, mock.Anything)
}

func TestConversationMarksReceived(t *testing.T) {
	msgs := new(mocks.MessageRepository)
	msgs.On("Conversation", mock.Anything, uint64(1), uint64(2)).Return([]model.Message{
		{ID: 1, SenderID: 1, ReceiverID: 2},
		{ID: 2, SenderID: 1, ReceiverID: 2, IsReceived: true},
	}, nil).Once()
	msgs.On("MarkReceived", mock.Anything, []uint64{1}).Return(nil).Once()
	svc := NewChatService(msgs, new(mocks.UserRepository))

	list, err := svc.Conversation(context.Background(), 2, 1, 2)
	require.NoError(t, err)
	assert.True(t, list[0].IsReceived)
	msgs.AssertExpectations(t)

	// 发送方读取不改变状态
	msgs.On("Conversation", mock.Anything, uint64(1), uint64(2)).Return([]model.Message{{ID: 3, SenderID: 1, ReceiverID: 2}}, nil)
	list, err = svc.Conversation(context.Background(), 1, 1, 2)
	require.NoError(t, err)
	assert.False(t, list[0].IsReceived)
	msgs.AssertNumberOfCalls(t, "MarkReceived", 1)
}

func TestSend(t *testing.T) {
	msgs := new(mocks.MessageRepository)
	users := new(mocks.UserRepository)
	svc := NewChatService(msgs, users)

	_, err := svc.Send(context.Background(), 1, 1, "hi")
	assert.True(t, apperr.Is(err, apperr.ErrValidation))

	users.On("FindByID", mock.Anything, uint64(42)).Return(nil, gorm.ErrRecordNotFound)
	_, err = svc.Send(context.Background(), 1, 42, "hi")
	assert.True(t, apperr.Is(err, apperr.ErrResourceNotFound))

	users.On("FindByID", mock.Anything, uint64(2)).Return(&model.User{ID: 2}, nil)
	msgs.On("Create", mock.Anything, mock.AnythingOfType("*model.Message")).Return(nil).Once()
	m, err := svc.Send(context.Background(), 1, 2, "bite at dawn")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), m.SenderID)
	assert.Equal(t, "bite at dawn", m.Message)
}
