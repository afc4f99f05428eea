package models

import "time"

// Interaction statuses. Accepted is terminal; active and rejected
// interactions may still be deleted by their sender.
const (
	StatusActive   = "active"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Interaction is an application by Sender to collaborate on Getter's order.
// The getter (the order owner) decides accept or reject.
type Interaction struct {
	ID        string `gorm:"primaryKey;size:36"`
	SenderID  string `gorm:"size:36;not null;index"`
	GetterID  string `gorm:"size:36;not null;index"`
	OrderID   string `gorm:"size:36;not null;index"`
	Status    string `gorm:"size:16;default:active;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Sender User  `gorm:"foreignKey:SenderID"`
	Getter User  `gorm:"foreignKey:GetterID"`
	Order  Order `gorm:"foreignKey:OrderID"`
}
