package model

import "time"

type Message struct {
	ID         uint64    `gorm:"primaryKey"`
	SenderID   uint64    `gorm:"not null;index:idx_msg_pair,priority:1"`
	Sender     User      `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE;"`
	ReceiverID uint64    `gorm:"not null;index:idx_msg_pair,priority:2;index"`
	Receiver   User      `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE;"`
	Message    string    `gorm:"type:text;not null"`
	Timestamp  time.Time `gorm:"autoCreateTime;index"`
	IsReceived bool      `gorm:"not null;default:false"`
}

func (m *Message) OwnerID() uint64 { return m.SenderID }

// Involves 判断用户是否为会话参与方
func (m *Message) Involves(userID uint64) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}
