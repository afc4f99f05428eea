package models

import "time"

// Order is a project request published by its owner. It accepts new
// interactions only while IsActive is true; the interaction engine flips
// the flag to false exactly once, when an application is accepted.
type Order struct {
	ID                 string `gorm:"primaryKey;size:36"`
	OwnerID            string `gorm:"size:36;not null;index"`
	Title              string `gorm:"size:255;not null"`
	Image              string `gorm:"size:512"`
	SkillID            string `gorm:"size:36;index"`
	TaskDescription    string `gorm:"type:text"`
	ProjectDescription string `gorm:"type:text"`
	Experience         string `gorm:"size:16"`
	StartsAt           *time.Time
	EndsAt             *time.Time
	Files              string `gorm:"type:json"` // JSON array of file URLs
	IsActive           bool   `gorm:"default:true;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Owner        User          `gorm:"foreignKey:OwnerID"`
	Skill        Skill         `gorm:"foreignKey:SkillID"`
	Tools        []OrderTool   `gorm:"foreignKey:OrderID"`
	Interactions []Interaction `gorm:"foreignKey:OrderID"`
}

// OrderTool joins an order to a tool from the catalog.
type OrderTool struct {
	OrderID string `gorm:"primaryKey;size:36"`
	ToolID  string `gorm:"primaryKey;size:36"`

	Order Order `gorm:"foreignKey:OrderID"`
	Tool  Tool  `gorm:"foreignKey:ToolID"`
}
