package models

import "time"

// Tab kinds. A (user, project) pair can hold several kinds at once.
const (
	TabActive         = "active"
	TabFavorite       = "favorite"
	TabCollaborations = "collaborations"
	TabPortfolio      = "portfolio"
)

// Tab is a per-user bucket membership row linking a user to a project
// under a named view. "active" rows are written when an order is created,
// "favorite" rows by explicit user action, "collaborations" rows only by
// the acceptance cascade.
type Tab struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"size:36;not null;index:idx_user_kind"`
	ProjectID string `gorm:"size:36;not null;index"`
	Kind      string `gorm:"size:16;not null;index:idx_user_kind"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}
