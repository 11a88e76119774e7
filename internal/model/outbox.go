package model

import "time"

const (
	EmailKindActivation = "activation"
	EmailKindReset      = "reset"
)

const (
	OutboxPending int8 = 0
	OutboxSent    int8 = 1
	OutboxFailed  int8 = 2
)

// EmailOutbox 邮件任务投递表，和业务写入同一个事务
type EmailOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	Kind      string `gorm:"size:16;not null"` // activation / reset
	Email     string `gorm:"size:254;not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;index;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EmailOutbox) TableName() string { return "email_outbox" }
