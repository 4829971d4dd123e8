package models

import (
	"time"
)

type Message struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	SenderID   uint      `gorm:"not null;index:idx_messages_pair" json:"senderId"`
	ReceiverID uint      `gorm:"not null;index:idx_messages_pair;index:idx_messages_unread" json:"receiverId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsRead     bool      `gorm:"not null;default:false;index:idx_messages_unread" json:"isRead"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`

	Sender   *UserProfile `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
	Receiver *UserProfile `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"receiver,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}
