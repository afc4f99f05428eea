package models

import "time"

// User is a marketplace member. A user can publish orders, apply to other
// users' orders, and chat with matched collaborators.
type User struct {
	ID          string `gorm:"primaryKey;size:36"`
	Email       string `gorm:"size:255;not null;uniqueIndex"`
	Name        string `gorm:"size:128"`
	Surname     string `gorm:"size:128"`
	Description string `gorm:"type:text"`
	Photo       string `gorm:"size:512"`
	Cover       string `gorm:"size:512"`
	Searchable  bool   `gorm:"default:true"`
	Experience  string `gorm:"size:16"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Credentials []AuthCredential `gorm:"foreignKey:UserID"`
	Providers   []AuthProvider   `gorm:"foreignKey:UserID"`
	Orders      []Order          `gorm:"foreignKey:OwnerID"`
	Skills      []UserSkill      `gorm:"foreignKey:UserID"`
	Tools       []UserTool       `gorm:"foreignKey:UserID"`
}

// AuthCredential stores a bcrypt password hash for password login.
type AuthCredential struct {
	ID           string `gorm:"primaryKey;size:36"`
	UserID       string `gorm:"size:36;not null;index"`
	PasswordHash string `gorm:"size:128;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	User User `gorm:"foreignKey:UserID"`
}

// AuthProvider links a user to an external OAuth identity (e.g. github).
type AuthProvider struct {
	ID          string `gorm:"primaryKey;size:36"`
	UserID      string `gorm:"size:36;not null;index"`
	Provider    string `gorm:"size:32;not null;index:idx_provider_login"`
	Login       string `gorm:"size:128;index:idx_provider_login"`
	AccessToken string `gorm:"size:512"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"foreignKey:UserID"`
}

// UserSkill joins a user to a skill from the catalog. Primary marks the
// skill shown first on the profile.
type UserSkill struct {
	UserID  string `gorm:"primaryKey;size:36"`
	SkillID string `gorm:"primaryKey;size:36"`
	Primary bool   `gorm:"default:false"`

	User  User  `gorm:"foreignKey:UserID"`
	Skill Skill `gorm:"foreignKey:SkillID"`
}

// UserTool joins a user to a tool from the catalog.
type UserTool struct {
	UserID string `gorm:"primaryKey;size:36"`
	ToolID string `gorm:"primaryKey;size:36"`

	User User `gorm:"foreignKey:UserID"`
	Tool Tool `gorm:"foreignKey:ToolID"`
}
