package models

// Skill is a catalog entry with localized names. Orders reference exactly
// one skill; users may hold several.
type Skill struct {
	ID     string `gorm:"primaryKey;size:36"`
	NameEn string `gorm:"size:128;not null;uniqueIndex"`
	NameRu string `gorm:"size:128"`
}

// Tool is a catalog entry (software, framework, instrument) referenced by
// orders and user profiles.
type Tool struct {
	ID   string `gorm:"primaryKey;size:36"`
	Name string `gorm:"size:128;not null;uniqueIndex"`
}
