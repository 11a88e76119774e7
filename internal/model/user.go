package model

import "time"

type User struct {
	ID             uint64 `gorm:"primaryKey"`
	Email          string `gorm:"uniqueIndex;size:254;not null"`
	Password       string `gorm:"size:255;not null"`
	IsActive       bool   `gorm:"not null;default:false"`
	ActivationCode string `gorm:"size:64;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasActivationCode 未激活账号持有一次性激活码
func (u *User) HasActivationCode() bool {
	return u.ActivationCode != ""
}
