// Package portfolio manages the showcase projects a freelancer curates on
// their profile. Each project is mirrored by a portfolio tab row so the
// tab views can list it alongside the other buckets.
package portfolio

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gigbridge/gigbridge/internal/fault"
	"github.com/gigbridge/gigbridge/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for adding a project to a portfolio.
type CreateOpts struct {
	UserID      string
	Name        string
	Image       string
	Description string
	Files       []string
}

// UpdateOpts holds the replacement fields for an existing project.
type UpdateOpts struct {
	Name        string
	Image       string
	Description string
	Files       []string
}

// Create stores a new project and its portfolio tab row in one
// transaction.
func Create(db *gorm.DB, opts CreateOpts) (*models.PortfolioProject, error) {
	if opts.UserID == "" {
		return nil, fmt.Errorf("portfolio: userID is required: %w", fault.ErrValidation)
	}
	if opts.Name == "" {
		return nil, fmt.Errorf("portfolio: name is required: %w", fault.ErrValidation)
	}

	files, err := json.Marshal(opts.Files)
	if err != nil {
		return nil, fmt.Errorf("portfolio: marshal files: %w", err)
	}
	if opts.Files == nil {
		files = []byte("[]")
	}

	project := models.PortfolioProject{
		ID:          uuid.NewString(),
		UserID:      opts.UserID,
		Name:        opts.Name,
		Image:       opts.Image,
		Description: opts.Description,
		Files:       string(files),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return fmt.Errorf("create project: %w", err)
		}
		tab := models.Tab{
			ID:        uuid.NewString(),
			UserID:    opts.UserID,
			ProjectID: project.ID,
			Kind:      models.TabPortfolio,
		}
		if err := tx.Create(&tab).Error; err != nil {
			return fmt.Errorf("create portfolio tab row: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("portfolio: %w", err)
	}
	return &project, nil
}

// Get retrieves a project by ID.
func Get(db *gorm.DB, projectID string) (*models.PortfolioProject, error) {
	if projectID == "" {
		return nil, fmt.Errorf("portfolio: projectID is required: %w", fault.ErrValidation)
	}
	var project models.PortfolioProject
	if err := db.Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("portfolio: %s: %w", projectID, fault.ErrNotFound)
		}
		return nil, fmt.Errorf("portfolio: get %s: %w", projectID, err)
	}
	return &project, nil
}

// ListByUser returns the user's projects, newest first.
func ListByUser(db *gorm.DB, userID string) ([]models.PortfolioProject, error) {
	var projects []models.PortfolioProject
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("portfolio: list for %s: %w", userID, err)
	}
	return projects, nil
}

// Update rewrites a project's fields. Only the owner may update; empty
// strings leave the corresponding field unchanged, a nil Files slice
// leaves the files unchanged.
func Update(db *gorm.DB, projectID, userID string, opts UpdateOpts) (*models.PortfolioProject, error) {
	project, err := Get(db, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, fmt.Errorf("portfolio: only the owner may update: %w", fault.ErrUnauthorized)
	}

	if opts.Name != "" {
		project.Name = opts.Name
	}
	if opts.Image != "" {
		project.Image = opts.Image
	}
	if opts.Description != "" {
		project.Description = opts.Description
	}
	if opts.Files != nil {
		files, err := json.Marshal(opts.Files)
		if err != nil {
			return nil, fmt.Errorf("portfolio: marshal files: %w", err)
		}
		project.Files = string(files)
	}

	if err := db.Save(project).Error; err != nil {
		return nil, fmt.Errorf("portfolio: update %s: %w", projectID, err)
	}
	return project, nil
}

// Delete removes a project together with its tab rows. Only the owner
// may delete.
func Delete(db *gorm.DB, projectID, userID string) error {
	project, err := Get(db, projectID)
	if err != nil {
		return err
	}
	if project.UserID != userID {
		return fmt.Errorf("portfolio: only the owner may delete: %w", fault.ErrUnauthorized)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Tab{}).Error; err != nil {
			return fmt.Errorf("delete tab rows: %w", err)
		}
		if err := tx.Delete(&models.PortfolioProject{}, "id = ?", projectID).Error; err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("portfolio: delete %s: %w", projectID, err)
	}
	return nil
}
