package models

import "time"

// Message is a direct chat message between two users. IsRead flips when
// the receiver acknowledges the message (read receipt).
type Message struct {
	ID         string `gorm:"primaryKey;size:36"`
	SenderID   string `gorm:"size:36;not null;index:idx_sender_receiver"`
	ReceiverID string `gorm:"size:36;not null;index:idx_sender_receiver"`
	Body       string `gorm:"type:text;not null"`
	Files      string `gorm:"type:json"` // JSON array of attachment URLs
	IsRead     bool   `gorm:"default:false;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Sender   User `gorm:"foreignKey:SenderID"`
	Receiver User `gorm:"foreignKey:ReceiverID"`
}
