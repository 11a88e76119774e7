package task

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"Fishing_Forum/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func TestNewOutboxPayload(t *testing.T) {
	ob, err := NewOutbox(model.EmailKindActivation, "a@b.c", "abc123")
	require.NoError(t, err)
	assert.Equal(t, model.OutboxPending, ob.Status)

	var task EmailTask
	require.NoError(t, json.Unmarshal([]byte(ob.Payload), &task))
	assert.Equal(t, "a@b.c", task.Email)
	assert.Equal(t, "abc123", task.Code)
	assert.Equal(t, model.EmailKindActivation, task.Kind)
}

func TestRender(t *testing.T) {
	subject, body, err := Render(EmailTask{Kind: model.EmailKindActivation, Code: "c0de"}, "http://localhost:8000")
	require.NoError(t, err)
	assert.Equal(t, "Activate your account", subject)
	assert.Contains(t, body, "Thank you for signing up.")
	assert.Contains(t, body, "Activation link: http://localhost:8000/v1/api/account/activate/c0de/")

	subject, body, err = Render(EmailTask{Kind: model.EmailKindReset, Code: "123456"}, "")
	require.NoError(t, err)
	assert.Equal(t, "Reset your password", subject)
	assert.Contains(t, body, "Activation code: 123456")

	_, _, err = Render(EmailTask{Kind: "digest"}, "")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestEmailHandler(t *testing.T) {
	mailer := new(mockMailer)
	h := NewEmailHandler(mailer, "http://api")

	payload, err := EmailTask{Kind: model.EmailKindReset, Email: "a@b.c", Code: "111111"}.Encode()
	require.NoError(t, err)

	mailer.On("Send", "a@b.c", "Reset your password", mock.Anything).Return(nil).Once()
	assert.NoError(t, h.Handle(context.Background(), nil, payload))

	mailer.On("Send", "a@b.c", "Reset your password", mock.Anything).Return(errors.New("smtp down")).Once()
	err = h.Handle(context.Background(), nil, payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")

	assert.Error(t, h.Handle(context.Background(), nil, []byte("{not json")))
	mailer.AssertExpectations(t)
}
