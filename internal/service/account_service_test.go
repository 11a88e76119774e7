package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/repository/mocks"
	"Fishing_Forum/internal/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type accountFixture struct {
	svc    *AccountService
	users  *mocks.UserRepository
	tokens *mocks.TokenStore
	codes  *mocks.ResetCodeStore
	outbox *mocks.OutboxRepository
}

func newAccountFixture() *accountFixture {
	f := &accountFixture{
		users:  new(mocks.UserRepository),
		tokens: new(mocks.TokenStore),
		codes:  new(mocks.ResetCodeStore),
		outbox: new(mocks.OutboxRepository),
	}
	f.svc = NewAccountService(f.users, f.tokens, f.codes, f.outbox)
	f.svc.cost = bcrypt.MinCost
	return f
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	f := newAccountFixture()

	err := f.svc.Register(context.Background(), "a@b.c", "secret1", "secret2")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ErrValidation))
	assert.Contains(t, err.Error(), "passwords do not match")
	f.users.AssertNotCalled(t, "CreateWithOutbox", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAccountFixture()
	f.users.On("ExistsByEmail", mock.Anything, "a@b.c").Return(true, nil)

	err := f.svc.Register(context.Background(), "A@b.c ", "secret1", "secret1")
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "email")
	f.users.AssertNotCalled(t, "CreateWithOutbox", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterWritesUserAndActivationTask(t *testing.T) {
	f := newAccountFixture()
	f.users.On("ExistsByEmail", mock.Anything, "a@b.c").Return(false, nil)

	var saved *model.User
	var ob *model.EmailOutbox
	f.users.On("CreateWithOutbox", mock.Anything, mock.AnythingOfType("*model.User"), mock.AnythingOfType("*model.EmailOutbox")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*model.User)
			ob = args.Get(2).(*model.EmailOutbox)
		}).Return(nil)

	require.NoError(t, f.svc.Register(context.Background(), "a@b.c", "secret1", "secret1"))
	require.NotNil(t, saved)
	assert.False(t, saved.IsActive)
	assert.Len(t, saved.ActivationCode, 32)
	assert.NotContains(t, saved.ActivationCode, "-")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("secret1")))

	assert.Equal(t, model.EmailKindActivation, ob.Kind)
	var payload task.EmailTask
	require.NoError(t, json.Unmarshal([]byte(ob.Payload), &payload))
	assert.Equal(t, saved.ActivationCode, payload.Code)
	assert.Equal(t, "a@b.c", payload.Email)
}

func TestActivate(t *testing.T) {
	f := newAccountFixture()
	f.users.On("FindByActivationCode", mock.Anything, "bad").Return(nil, gorm.ErrRecordNotFound)
	f.users.On("FindByActivationCode", mock.Anything, "good").Return(&model.User{ID: 3, ActivationCode: "good"}, nil).Once()
	f.users.On("Activate", mock.Anything, uint64(3)).Return(nil).Once()

	assert.True(t, apperr.Is(f.svc.Activate(context.Background(), "bad"), apperr.ErrResourceNotFound))
	assert.NoError(t, f.svc.Activate(context.Background(), "good"))
	f.users.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	f := newAccountFixture()
	user := &model.User{ID: 5, Email: "a@b.c", Password: hashed(t, "secret1")}
	f.users.On("FindByEmail", mock.Anything, "a@b.c").Return(user, nil)
	f.users.On("FindByEmail", mock.Anything, "nobody@b.c").Return(nil, gorm.ErrRecordNotFound)
	f.tokens.On("Add", mock.Anything, uint64(5), mock.AnythingOfType("string")).Return(nil).Once()

	_, err := f.svc.Login(context.Background(), "a@b.c", "wrong")
	assert.True(t, apperr.Is(err, apperr.ErrInvalidCredentials))
	assert.Contains(t, err.Error(), "Unable to log in with provided credentials")

	_, err = f.svc.Login(context.Background(), "nobody@b.c", "secret1")
	assert.True(t, apperr.Is(err, apperr.ErrInvalidCredentials))

	pair, err := f.svc.Login(context.Background(), "a@b.c", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	f.tokens.AssertExpectations(t)
}

func TestChangePassword(t *testing.T) {
	f := newAccountFixture()
	user := &model.User{ID: 5, Password: hashed(t, "secret1")}
	f.users.On("FindByID", mock.Anything, uint64(5)).Return(user, nil)

	err := f.svc.ChangePassword(context.Background(), 5, "nope", "secret2")
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "old_password")

	err = f.svc.ChangePassword(context.Background(), 5, "secret1", "secret1")
	assert.True(t, apperr.Is(err, apperr.ErrValidation))

	err = f.svc.ChangePassword(context.Background(), 5, "secret1", "123")
	assert.True(t, apperr.Is(err, apperr.ErrValidation))

	f.users.On("UpdatePassword", mock.Anything, uint64(5), mock.AnythingOfType("string")).Return(nil).Once()
	f.tokens.On("Delete", mock.Anything, uint64(5)).Return(nil).Once()
	require.NoError(t, f.svc.ChangePassword(context.Background(), 5, "secret1", "secret2"))
	f.users.AssertExpectations(t)
	f.tokens.AssertExpectations(t)
}

func TestRequestPasswordReset(t *testing.T) {
	f := newAccountFixture()
	f.users.On("FindByEmail", mock.Anything, "ghost@b.c").Return(nil, gorm.ErrRecordNotFound)
	f.users.On("FindByEmail", mock.Anything, "a@b.c").Return(&model.User{ID: 1, Email: "a@b.c"}, nil)

	// 不存在的邮箱同样成功，不写任务
	require.NoError(t, f.svc.RequestPasswordReset(context.Background(), "ghost@b.c"))
	f.outbox.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	var code string
	f.codes.On("Save", mock.Anything, mock.AnythingOfType("string"), "a@b.c").
		Run(func(args mock.Arguments) { code = args.String(1) }).
		Return(nil).Once()
	f.outbox.On("Create", mock.Anything, mock.MatchedBy(func(ob *model.EmailOutbox) bool {
		return ob.Kind == model.EmailKindReset && ob.Email == "a@b.c"
	})).Return(nil).Once()

	require.NoError(t, f.svc.RequestPasswordReset(context.Background(), "a@b.c"))
	assert.Len(t, code, ResetCodeLength)
	f.outbox.AssertExpectations(t)
}

func TestRequestPasswordResetRetriesCodeCollision(t *testing.T) {
	f := newAccountFixture()
	f.users.On("FindByEmail", mock.Anything, "a@b.c").Return(&model.User{ID: 1, Email: "a@b.c"}, nil)
	f.codes.On("Save", mock.Anything, mock.Anything, "a@b.c").Return(errors.New("exists")).Once()
	f.codes.On("Save", mock.Anything, mock.Anything, "a@b.c").Return(nil).Once()
	f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, f.svc.RequestPasswordReset(context.Background(), "a@b.c"))
	f.codes.AssertNumberOfCalls(t, "Save", 2)
}

func TestRequestPasswordResetRevokesCodeWhenOutboxFails(t *testing.T) {
	f := newAccountFixture()
	f.users.On("FindByEmail", mock.Anything, "a@b.c").Return(&model.User{ID: 1, Email: "a@b.c"}, nil)
	var code string
	f.codes.On("Save", mock.Anything, mock.AnythingOfType("string"), "a@b.c").
		Run(func(args mock.Arguments) { code = args.String(1) }).
		Return(nil).Once()
	f.outbox.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	f.codes.On("Consume", mock.Anything, mock.AnythingOfType("string")).Return("a@b.c", nil).Once()

	err := f.svc.RequestPasswordReset(context.Background(), "a@b.c")
	require.Error(t, err)
	f.codes.AssertCalled(t, "Consume", mock.Anything, code)
	f.codes.AssertExpectations(t)
}

func TestConfirmPasswordReset(t *testing.T) {
	f := newAccountFixture()
	f.codes.On("Peek", mock.Anything, "000000").Return("", errors.New("missing"))
	err := f.svc.ConfirmPasswordReset(context.Background(), "000000", "newpass")
	assert.True(t, apperr.Is(err, apperr.ErrResourceNotFound))

	f.codes.On("Peek", mock.Anything, "123456").Return("a@b.c", nil)
	f.codes.On("Consume", mock.Anything, "123456").Return("a@b.c", nil).Once()
	f.users.On("FindByEmail", mock.Anything, "a@b.c").Return(&model.User{ID: 9}, nil)
	f.users.On("UpdatePassword", mock.Anything, uint64(9), mock.AnythingOfType("string")).Return(nil).Once()
	f.tokens.On("Delete", mock.Anything, uint64(9)).Return(nil).Once()

	require.NoError(t, f.svc.ConfirmPasswordReset(context.Background(), "123456", "newpass"))
	f.users.AssertExpectations(t)
	f.codes.AssertExpectations(t)
}
