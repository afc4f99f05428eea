// Package user provides profile maintenance and the public freelancer
// search. Profile edits rewrite the skill and tool joins wholesale; the
// search only surfaces users who opted into being searchable.
package user

import (
	"errors"
	"fmt"

	"github.com/gigbridge/gigbridge/internal/fault"
	"github.com/gigbridge/gigbridge/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UpdateOpts holds the optional profile fields. Empty strings leave the
// corresponding column unchanged; nil slices leave the joins unchanged;
// a nil Searchable leaves the flag unchanged.
type UpdateOpts struct {
	Email       string
	Name        string
	Surname     string
	Description string
	Photo       string
	Cover       string
	Experience  string
	Searchable  *bool
	Password    string
	Skills      []string // catalog skill names, English or Russian; first is primary
	Tools       []string // catalog tool names
}

// SearchFilters holds optional filters for the freelancer listing.
type SearchFilters struct {
	SkillID    string
	ToolIDs    []string
	Experience string
}

// Update applies a partial profile edit in one transaction. A new
// password is re-hashed into the stored credential; skill and tool name
// lists replace the existing joins entirely.
func Update(db *gorm.DB, userID string, opts UpdateOpts) (*models.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("user: userID is required: %w", fault.ErrValidation)
	}

	var usr models.User
	if err := db.Where("id = ?", userID).First(&usr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user: %s: %w", userID, fault.ErrNotFound)
		}
		return nil, fmt.Errorf("user: load %s: %w", userID, err)
	}

	if opts.Email != "" {
		usr.Email = opts.Email
	}
	if opts.Name != "" {
		usr.Name = opts.Name
	}
	if opts.Surname != "" {
		usr.Surname = opts.Surname
	}
	if opts.Description != "" {
		usr.Description = opts.Description
	}
	if opts.Photo != "" {
		usr.Photo = opts.Photo
	}
	if opts.Cover != "" {
		usr.Cover = opts.Cover
	}
	if opts.Experience != "" {
		usr.Experience = opts.Experience
	}
	if opts.Searchable != nil {
		usr.Searchable = *opts.Searchable
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&usr).Error; err != nil {
			return fmt.Errorf("save user: %w", err)
		}

		if opts.Password != "" {
			var cred models.AuthCredential
			if err := tx.Where("user_id = ?", userID).First(&cred).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("no password credential: %w", fault.ErrNotFound)
				}
				return fmt.Errorf("load credential: %w", err)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			cred.PasswordHash = string(hash)
			if err := tx.Save(&cred).Error; err != nil {
				return fmt.Errorf("save credential: %w", err)
			}
		}

		if opts.Skills != nil {
			if err := tx.Where("user_id = ?", userID).Delete(&models.UserSkill{}).Error; err != nil {
				return fmt.Errorf("clear skill joins: %w", err)
			}
			for i, name := range opts.Skills {
				var skill models.Skill
				if err := tx.Where("name_en = ? OR name_ru = ?", name, name).First(&skill).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("skill %q: %w", name, fault.ErrValidation)
					}
					return fmt.Errorf("look up skill %q: %w", name, err)
				}
				join := models.UserSkill{UserID: userID, SkillID: skill.ID, Primary: i == 0}
				if err := tx.Create(&join).Error; err != nil {
					return fmt.Errorf("create skill join: %w", err)
				}
			}
		}

		if opts.Tools != nil {
			if err := tx.Where("user_id = ?", userID).Delete(&models.UserTool{}).Error; err != nil {
				return fmt.Errorf("clear tool joins: %w", err)
			}
			if len(opts.Tools) > 0 {
				var tools []models.Tool
				if err := tx.Where("name IN ?", opts.Tools).Find(&tools).Error; err != nil {
					return fmt.Errorf("look up tools: %w", err)
				}
				joins := make([]models.UserTool, len(tools))
				for i, tool := range tools {
					joins[i] = models.UserTool{UserID: userID, ToolID: tool.ID}
				}
				if len(joins) > 0 {
					if err := tx.Create(&joins).Error; err != nil {
						return fmt.Errorf("create tool joins: %w", err)
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("user: update %s: %w", userID, err)
	}
	return &usr, nil
}

// Search returns searchable users matching the filters, newest first.
func Search(db *gorm.DB, filters SearchFilters) ([]models.User, error) {
	q := db.Model(&models.User{}).Where("searchable = ?", true)

	if filters.Experience != "" {
		q = q.Where("experience = ?", filters.Experience)
	}
	if filters.SkillID != "" {
		skillSub := db.Model(&models.UserSkill{}).Select("user_id").Where("skill_id = ?", filters.SkillID)
		q = q.Where("id IN (?)", skillSub)
	}
	if len(filters.ToolIDs) > 0 {
		toolSub := db.Model(&models.UserTool{}).Select("user_id").Where("tool_id IN ?", filters.ToolIDs)
		q = q.Where("id IN (?)", toolSub)
	}

	var users []models.User
	if err := q.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("user: search: %w", err)
	}
	return users, nil
}
