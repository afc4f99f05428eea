// Package tab provides the per-user bucket views: active orders,
// favorites, collaborations and portfolio. Favorite rows are managed
// here; "active" rows come from order creation, "collaborations" rows
// only from the interaction engine's acceptance cascade, and
// "portfolio" rows from the portfolio project lifecycle.
package tab

import (
	"errors"
	"fmt"

	"github.com/gigbridge/gigbridge/internal/fault"
	"github.com/gigbridge/gigbridge/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddFavorite marks an order as a favorite for the user. Adding the same
// favorite twice is a no-op.
func AddFavorite(db *gorm.DB, userID, orderID string) error {
	if userID == "" || orderID == "" {
		return fmt.Errorf("tab: userID and orderID are required: %w", fault.ErrValidation)
	}

	var ord models.Order
	if err := db.Where("id = ?", orderID).First(&ord).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("tab: order %s: %w", orderID, fault.ErrNotFound)
		}
		return fmt.Errorf("tab: load order %s: %w", orderID, err)
	}

	var existing models.Tab
	err := db.Where("user_id = ? AND project_id = ? AND kind = ?", userID, orderID, models.TabFavorite).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("tab: check favorite row: %w", err)
	}

	row := models.Tab{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProjectID: orderID,
		Kind:      models.TabFavorite,
	}
	if err := db.Create(&row).Error; err != nil {
		return fmt.Errorf("tab: add favorite row: %w", err)
	}
	return nil
}

// RemoveFavorite deletes the user's favorite row for the order.
func RemoveFavorite(db *gorm.DB, userID, orderID string) error {
	result := db.Where("user_id = ? AND project_id = ? AND kind = ?", userID, orderID, models.TabFavorite).
		Delete(&models.Tab{})
	if result.Error != nil {
		return fmt.Errorf("tab: remove favorite row: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("tab: favorite row not found: %w", fault.ErrNotFound)
	}
	return nil
}

// ActiveOrders returns the user's own orders still accepting applicants.
func ActiveOrders(db *gorm.DB, userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := db.Where("owner_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("tab: active orders for %s: %w", userID, err)
	}
	return orders, nil
}

// Collaborations returns the orders the user collaborates on, as written
// by the acceptance cascade.
func Collaborations(db *gorm.DB, userID string) ([]models.Order, error) {
	return ordersByKind(db, userID, models.TabCollaborations)
}

// Favorites returns the orders the user has marked as favorite.
func Favorites(db *gorm.DB, userID string) ([]models.Order, error) {
	return ordersByKind(db, userID, models.TabFavorite)
}

// Portfolio returns the showcase projects the user's portfolio rows
// point at.
func Portfolio(db *gorm.DB, userID string) ([]models.PortfolioProject, error) {
	sub := db.Model(&models.Tab{}).Select("project_id").
		Where("user_id = ? AND kind = ?", userID, models.TabPortfolio)

	var projects []models.PortfolioProject
	if err := db.Where("id IN (?)", sub).
		Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("tab: portfolio projects for %s: %w", userID, err)
	}
	return projects, nil
}

func ordersByKind(db *gorm.DB, userID, kind string) ([]models.Order, error) {
	sub := db.Model(&models.Tab{}).Select("project_id").
		Where("user_id = ? AND kind = ?", userID, kind)

	var orders []models.Order
	if err := db.Where("id IN (?)", sub).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("tab: %s orders for %s: %w", kind, userID, err)
	}
	return orders, nil
}
