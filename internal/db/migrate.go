package db

import (
	"fmt"

	"github.com/gigbridge/gigbridge/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.AuthCredential{},
		&models.AuthProvider{},
		&models.Skill{},
		&models.Tool{},
		&models.UserSkill{},
		&models.UserTool{},
		&models.Order{},
		&models.OrderTool{},
		&models.Interaction{},
		&models.Tab{},
		&models.Message{},
		&models.PortfolioProject{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// CatalogSkill is a skill entry to seed into the catalog.
type CatalogSkill struct {
	NameEn string
	NameRu string
}

// SeedSkills upserts Skill rows by English name.
func SeedSkills(db *gorm.DB, skills []CatalogSkill) error {
	for _, s := range skills {
		skill := models.Skill{
			ID:     uuid.NewString(),
			NameEn: s.NameEn,
			NameRu: s.NameRu,
		}
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name_en"}},
			DoUpdates: clause.AssignmentColumns([]string{"name_ru"}),
		}).Create(&skill)
		if result.Error != nil {
			return fmt.Errorf("db: seed skill %q: %w", s.NameEn, result.Error)
		}
	}
	return nil
}

// SeedTools upserts Tool rows by name.
func SeedTools(db *gorm.DB, names []string) error {
	for _, name := range names {
		tool := models.Tool{
			ID:   uuid.NewString(),
			Name: name,
		}
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&tool)
		if result.Error != nil {
			return fmt.Errorf("db: seed tool %q: %w", name, result.Error)
		}
	}
	return nil
}
