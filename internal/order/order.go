// Package order provides order lifecycle operations. Orders are created
// active; only the interaction engine ever flips them inactive.
package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gigbridge/gigbridge/internal/fault"
	"github.com/gigbridge/gigbridge/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for publishing a new order.
type CreateOpts struct {
	OwnerID            string
	Title              string
	Image              string
	Skill              string // catalog skill name, English or Russian
	Tools              []string
	TaskDescription    string
	ProjectDescription string
	Experience         string
	StartsAt           *time.Time
	EndsAt             *time.Time
	Files              []string
}

// SearchFilters holds optional filters for the public order listing.
type SearchFilters struct {
	SkillID    string
	ToolIDs    []string
	Experience string
}

// Create publishes a new order: the order row, its tool joins, and the
// owner's "active" tab row are written in one transaction.
func Create(db *gorm.DB, opts CreateOpts) (*models.Order, error) {
	if opts.OwnerID == "" {
		return nil, fmt.Errorf("order: ownerID is required: %w", fault.ErrValidation)
	}
	if opts.Title == "" {
		return nil, fmt.Errorf("order: title is required: %w", fault.ErrValidation)
	}

	var skill models.Skill
	if err := db.Where("name_en = ? OR name_ru = ?", opts.Skill, opts.Skill).First(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order: skill %q: %w", opts.Skill, fault.ErrValidation)
		}
		return nil, fmt.Errorf("order: look up skill %q: %w", opts.Skill, err)
	}

	files, err := json.Marshal(opts.Files)
	if err != nil {
		return nil, fmt.Errorf("order: marshal files: %w", err)
	}
	if opts.Files == nil {
		files = []byte("[]")
	}

	ord := models.Order{
		ID:                 uuid.NewString(),
		OwnerID:            opts.OwnerID,
		Title:              opts.Title,
		Image:              opts.Image,
		SkillID:            skill.ID,
		TaskDescription:    opts.TaskDescription,
		ProjectDescription: opts.ProjectDescription,
		Experience:         opts.Experience,
		StartsAt:           opts.StartsAt,
		EndsAt:             opts.EndsAt,
		Files:              string(files),
		IsActive:           true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ord).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if len(opts.Tools) > 0 {
			var tools []models.Tool
			if err := tx.Where("name IN ?", opts.Tools).Find(&tools).Error; err != nil {
				return fmt.Errorf("look up tools: %w", err)
			}
			joins := make([]models.OrderTool, len(tools))
			for i, tool := range tools {
				joins[i] = models.OrderTool{OrderID: ord.ID, ToolID: tool.ID}
			}
			if len(joins) > 0 {
				if err := tx.Create(&joins).Error; err != nil {
					return fmt.Errorf("create tool joins: %w", err)
				}
			}
		}

		tab := models.Tab{
			ID:        uuid.NewString(),
			UserID:    opts.OwnerID,
			ProjectID: ord.ID,
			Kind:      models.TabActive,
		}
		if err := tx.Create(&tab).Error; err != nil {
			return fmt.Errorf("create active tab row: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("order: %w", err)
	}
	return &ord, nil
}

// Get retrieves an order by ID.
func Get(db *gorm.DB, orderID string) (*models.Order, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order: orderID is required: %w", fault.ErrValidation)
	}
	var ord models.Order
	if err := db.Where("id = ?", orderID).First(&ord).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order: %s: %w", orderID, fault.ErrNotFound)
		}
		return nil, fmt.Errorf("order: get %s: %w", orderID, err)
	}
	return &ord, nil
}

// ListByOwner returns all orders owned by the user, newest first.
func ListByOwner(db *gorm.DB, ownerID string) ([]models.Order, error) {
	var orders []models.Order
	if err := db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("order: list by owner %s: %w", ownerID, err)
	}
	return orders, nil
}

// Search returns active orders matching the filters, newest first.
func Search(db *gorm.DB, filters SearchFilters) ([]models.Order, error) {
	q := db.Model(&models.Order{}).Where("is_active = ?", true)

	if filters.SkillID != "" {
		q = q.Where("skill_id = ?", filters.SkillID)
	}
	if filters.Experience != "" {
		q = q.Where("experience = ?", filters.Experience)
	}
	if len(filters.ToolIDs) > 0 {
		toolSub := db.Model(&models.OrderTool{}).Select("order_id").Where("tool_id IN ?", filters.ToolIDs)
		q = q.Where("id IN (?)", toolSub)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("order: search: %w", err)
	}
	return orders, nil
}

// Delete removes an order together with its interactions, tool joins and
// tab rows. Only the owner may delete.
func Delete(db *gorm.DB, orderID, ownerID string) error {
	ord, err := Get(db, orderID)
	if err != nil {
		return err
	}
	if ord.OwnerID != ownerID {
		return fmt.Errorf("order: only the owner may delete: %w", fault.ErrUnauthorized)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.Interaction{}).Error; err != nil {
			return fmt.Errorf("delete interactions: %w", err)
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderTool{}).Error; err != nil {
			return fmt.Errorf("delete tool joins: %w", err)
		}
		if err := tx.Where("project_id = ?", orderID).Delete(&models.Tab{}).Error; err != nil {
			return fmt.Errorf("delete tab rows: %w", err)
		}
		if err := tx.Delete(&models.Order{}, "id = ?", orderID).Error; err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("order: delete %s: %w", orderID, err)
	}
	return nil
}
