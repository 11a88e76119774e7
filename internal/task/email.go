// Package task 邮件异步任务：负载定义、渲染以及 worker 端处理
package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/pkg"

	"go.uber.org/zap"
)

var ErrUnknownKind = errors.New("unknown email kind")

// EmailTask 经 Kafka 投递的消息体
type EmailTask struct {
	Kind      string    `json:"kind"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

func (t EmailTask) Encode() ([]byte, error) {
	return json.Marshal(t)
}

func Decode(b []byte) (EmailTask, error) {
	var t EmailTask
	if err := json.Unmarshal(b, &t); err != nil {
		return t, err
	}
	if t.Email == "" {
		return t, errors.New("email task without recipient")
	}
	return t, nil
}

// NewOutbox 构造和业务写入同一事务的 outbox 行
func NewOutbox(kind, email, code string) (*model.EmailOutbox, error) {
	payload, err := EmailTask{Kind: kind, Email: email, Code: code, CreatedAt: time.Now().UTC()}.Encode()
	if err != nil {
		return nil, err
	}
	return &model.EmailOutbox{
		Kind:    kind,
		Email:   email,
		Payload: string(payload),
		Status:  model.OutboxPending,
	}, nil
}

// Render 生成邮件主题和正文
func Render(t EmailTask, backendURL string) (subject, body string, err error) {
	switch t.Kind {
	case model.EmailKindActivation:
		link := fmt.Sprintf("%s/v1/api/account/activate/%s/", backendURL, t.Code)
		return "Activate your account",
			"Thank you for signing up.\nPlease, activate your account.\nActivation link: " + link + "\n", nil
	case model.EmailKindReset:
		return "Reset your password", "Activation code: " + t.Code + "\n", nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownKind, t.Kind)
	}
}

// EmailHandler worker 端消息处理，失败只记录日志不重试
type EmailHandler struct {
	mailer     pkg.Mailer
	backendURL string
}

func NewEmailHandler(mailer pkg.Mailer, backendURL string) *EmailHandler {
	return &EmailHandler{mailer: mailer, backendURL: backendURL}
}

func (h *EmailHandler) Handle(_ context.Context, _, value []byte) error {
	t, err := Decode(value)
	if err != nil {
		return fmt.Errorf("decode email task: %w", err)
	}
	subject, body, err := Render(t, h.backendURL)
	if err != nil {
		return err
	}
	if err = h.mailer.Send(t.Email, subject, body); err != nil {
		return fmt.Errorf("send %s email to %s: %w", t.Kind, t.Email, err)
	}
	pkg.Logger.Info("email sent", zap.String("kind", t.Kind), zap.String("email", t.Email))
	return nil
}

// LogFailure 作为 consumer 的 onError
func LogFailure(err error) {
	pkg.Logger.Error("email task failed", zap.Error(err))
}
