package service

import (
	"context"
	"errors"
	"strings"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/pkg"
	"Fishing_Forum/internal/repository/interfaces"
	"Fishing_Forum/internal/task"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	MinPasswordLength = 6
	ResetCodeLength   = 6

	msgBadCredentials = "Unable to log in with provided credentials"
)

type AccountService struct {
	users  interfaces.UserRepository
	tokens interfaces.TokenStore
	codes  interfaces.ResetCodeStore
	outbox interfaces.OutboxRepository
	cost   int
}

func NewAccountService(users interfaces.UserRepository, tokens interfaces.TokenStore,
	codes interfaces.ResetCodeStore, outbox interfaces.OutboxRepository) *AccountService {
	return &AccountService{
		users:  users,
		tokens: tokens,
		codes:  codes,
		outbox: outbox,
		cost:   bcrypt.DefaultCost,
	}
}

// Register 写入未激活用户，激活邮件通过 outbox 异步发送
func (s *AccountService) Register(ctx context.Context, email, password, confirm string) error {
	email = normalizeEmail(email)
	if password != confirm {
		return apperr.Validation("passwords do not match")
	}
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return internal(err)
	}
	if exists {
		return apperr.Field("email", "user with this email already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return apperr.Internal(err)
	}
	user := &model.User{
		Email:          email,
		Password:       string(hash),
		IsActive:       false,
		ActivationCode: strings.ReplaceAll(uuid.NewString(), "-", ""),
	}
	ob, err := task.NewOutbox(model.EmailKindActivation, email, user.ActivationCode)
	if err != nil {
		return apperr.Internal(err)
	}
	if err = s.users.CreateWithOutbox(ctx, user, ob); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Field("email", "user with this email already exists.")
		}
		return internal(err)
	}
	pkg.Logger.Info("user registered", zap.Uint64("user_id", user.ID))
	return nil
}

// Activate 激活码只能使用一次
func (s *AccountService) Activate(ctx context.Context, code string) error {
	user, err := s.users.FindByActivationCode(ctx, code)
	if err != nil {
		return notFoundOr(err, msgNotFound)
	}
	if err = s.users.Activate(ctx, user.ID); err != nil {
		return internal(err)
	}
	return nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*pkg.Pair, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.ErrInvalidCredentials, msgBadCredentials)
		}
		return nil, internal(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperr.New(apperr.ErrInvalidCredentials, msgBadCredentials)
	}
	return s.issue(ctx, user.ID)
}

// Refresh 用 refresh token 换新的一对，旧 access 随即失效
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*pkg.Pair, error) {
	claims, err := pkg.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidToken, "invalid or expired refresh token", err)
	}
	if _, err = s.users.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.ErrInvalidToken, "invalid or expired refresh token")
		}
		return nil, internal(err)
	}
	return s.issue(ctx, claims.UserID)
}

func (s *AccountService) Logout(ctx context.Context, userID uint64) error {
	if err := s.tokens.Delete(ctx, userID); err != nil {
		return apperr.Wrap(apperr.ErrCache, "logout failed", err)
	}
	return nil
}

// ChangePassword 修改成功后当前会话失效
func (s *AccountService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return notFoundOr(err, msgNotFound)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return apperr.Field("old_password", "Incorrect password.")
	}
	if len(newPassword) < MinPasswordLength {
		return apperr.Field("new_password", "Ensure this field has at least 6 characters.")
	}
	if newPassword == oldPassword {
		return apperr.Field("new_password", "New password must differ from the old one.")
	}
	if err = s.setPassword(ctx, userID, newPassword); err != nil {
		return err
	}
	return s.Logout(ctx, userID)
}

// RequestPasswordReset 邮箱不存在也返回成功，避免枚举账号
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return internal(err)
	}

	var code string
	var err error
	for i := 0; i < 3; i++ {
		if code, err = pkg.RandDigits(ResetCodeLength); err != nil {
			return apperr.Internal(err)
		}
		if err = s.codes.Save(ctx, code, email); err == nil {
			break
		}
	}
	if err != nil {
		return apperr.Wrap(apperr.ErrCache, "internal server error", err)
	}

	ob, err := task.NewOutbox(model.EmailKindReset, email, code)
	if err == nil {
		err = s.outbox.Create(ctx, ob)
	}
	if err != nil {
		// 邮件任务没写进去，作废验证码
		if _, rerr := s.codes.Consume(ctx, code); rerr != nil {
			pkg.Logger.Warn("revoke reset code", zap.String("email", email), zap.Error(rerr))
		}
		return internal(err)
	}
	return nil
}

func (s *AccountService) ConfirmPasswordReset(ctx context.Context, code, password string) error {
	if len(password) < MinPasswordLength {
		return apperr.Field("password", "Ensure this field has at least 6 characters.")
	}
	email, err := s.codes.Peek(ctx, code)
	if err != nil {
		return apperr.NotFound("The OTP password entered is not valid. Please check and try again.")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return notFoundOr(err, msgNotFound)
	}
	// 先消费，防止并发重复使用
	if _, err = s.codes.Consume(ctx, code); err != nil {
		return apperr.NotFound("The OTP password entered is not valid. Please check and try again.")
	}
	if err = s.setPassword(ctx, user.ID, password); err != nil {
		return err
	}
	if err = s.tokens.Delete(ctx, user.ID); err != nil {
		pkg.Logger.Warn("drop session after reset", zap.Uint64("user_id", user.ID), zap.Error(err))
	}
	return nil
}

func (s *AccountService) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgNotFound)
	}
	return user, nil
}

// Email 读模型中展示的当前用户邮箱
func (s *AccountService) Email(ctx context.Context, id uint64) (string, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Email, nil
}

// IsActive 供中间件判断写接口权限
func (s *AccountService) IsActive(ctx context.Context, id uint64) (bool, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return false, err
	}
	return user.IsActive, nil
}

func (s *AccountService) issue(ctx context.Context, userID uint64) (*pkg.Pair, error) {
	pair, err := pkg.GeneratePair(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	// 将token写入redis，同一用户只保留最新会话
	if err = s.tokens.Add(ctx, userID, pair.AccessToken); err != nil {
		return nil, apperr.Wrap(apperr.ErrCache, "internal server error", err)
	}
	return pair, nil
}

func (s *AccountService) setPassword(ctx context.Context, userID uint64, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return apperr.Internal(err)
	}
	if err = s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return internal(err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
