package models

import "time"

// PortfolioProject is a finished piece of work a freelancer showcases on
// their profile. Unlike orders it has no lifecycle: the owner curates the
// list freely, and each project is mirrored by a portfolio tab row.
type PortfolioProject struct {
	ID          string `gorm:"primaryKey;size:36"`
	UserID      string `gorm:"size:36;not null;index"`
	Name        string `gorm:"size:255;not null"`
	Image       string `gorm:"size:512"`
	Description string `gorm:"type:text"`
	Files       string `gorm:"type:json"` // JSON array of file URLs
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"foreignKey:UserID"`
}
