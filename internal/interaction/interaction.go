// Package interaction implements the application lifecycle: a user sends
// an interaction against another user's order, and the order owner (the
// getter) accepts or rejects it. Accepting closes the order and rewrites
// tab membership for both parties.
package interaction

import (
	"errors"
	"fmt"

	"github.com/gigbridge/gigbridge/internal/fault"
	"github.com/gigbridge/gigbridge/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for creating a new interaction. The getter
// is derived from the order's owner, never trusted from the client.
type CreateOpts struct {
	SenderID string
	OrderID  string
}

// Create persists a new interaction with status active. The referenced
// order must exist and still be accepting applications. Duplicate
// applications by the same sender are allowed.
func Create(db *gorm.DB, opts CreateOpts) (*models.Interaction, error) {
	if opts.SenderID == "" {
		return nil, fmt.Errorf("interaction: senderID is required: %w", fault.ErrValidation)
	}
	if opts.OrderID == "" {
		return nil, fmt.Errorf("interaction: orderID is required: %w", fault.ErrValidation)
	}

	var order models.Order
	if err := db.Where("id = ?", opts.OrderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interaction: order %s: %w", opts.OrderID, fault.ErrNotFound)
		}
		return nil, fmt.Errorf("interaction: load order %s: %w", opts.OrderID, err)
	}
	if !order.IsActive {
		return nil, fmt.Errorf("interaction: order %s is closed: %w", opts.OrderID, fault.ErrConflict)
	}

	inter := models.Interaction{
		ID:       uuid.NewString(),
		SenderID: opts.SenderID,
		GetterID: order.OwnerID,
		OrderID:  order.ID,
		Status:   models.StatusActive,
	}
	if err := db.Create(&inter).Error; err != nil {
		return nil, fmt.Errorf("interaction: create: %w", err)
	}
	return &inter, nil
}

// Reject marks an interaction as rejected. Only the stored getter may
// reject, and accepted is terminal: an accepted interaction has already
// run its cascade and cannot be laundered back out of that state. The
// referenced order and tab rows are never touched.
func Reject(db *gorm.DB, interactionID, getterID string) error {
	inter, err := Get(db, interactionID)
	if err != nil {
		return err
	}
	if inter.GetterID != getterID {
		return fmt.Errorf("interaction: only the getter may reject: %w", fault.ErrUnauthorized)
	}
	result := db.Model(&models.Interaction{}).
		Where("id = ? AND status != ?", interactionID, models.StatusAccepted).
		Update("status", models.StatusRejected)
	if result.Error != nil {
		return fmt.Errorf("interaction: reject %s: %w", interactionID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("interaction: %s is already accepted: %w", interactionID, fault.ErrConflict)
	}
	return nil
}

// Delete removes an interaction. Only the stored sender may delete, and
// only while the interaction is active or rejected: an accepted
// interaction has already closed its order and cannot be unwound.
func Delete(db *gorm.DB, interactionID, senderID string) error {
	inter, err := Get(db, interactionID)
	if err != nil {
		return err
	}
	if inter.SenderID != senderID {
		return fmt.Errorf("interaction: only the sender may delete: %w", fault.ErrUnauthorized)
	}
	if inter.Status != models.StatusActive && inter.Status != models.StatusRejected {
		return fmt.Errorf("interaction: cannot delete %s interaction: %w", inter.Status, fault.ErrUnauthorized)
	}
	if err := db.Delete(&models.Interaction{}, "id = ?", interactionID).Error; err != nil {
		return fmt.Errorf("interaction: delete %s: %w", interactionID, err)
	}
	return nil
}

// Get retrieves an interaction by ID.
func Get(db *gorm.DB, interactionID string) (*models.Interaction, error) {
	if interactionID == "" {
		return nil, fmt.Errorf("interaction: interactionID is required: %w", fault.ErrValidation)
	}
	var inter models.Interaction
	if err := db.Where("id = ?", interactionID).First(&inter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interaction: %s: %w", interactionID, fault.ErrNotFound)
		}
		return nil, fmt.Errorf("interaction: get %s: %w", interactionID, err)
	}
	return &inter, nil
}

// Sent returns all interactions where the user is the sender.
func Sent(db *gorm.DB, userID string) ([]models.Interaction, error) {
	var inters []models.Interaction
	if err := db.Where("sender_id = ?", userID).
		Order("created_at ASC").Find(&inters).Error; err != nil {
		return nil, fmt.Errorf("interaction: sent by %s: %w", userID, err)
	}
	return inters, nil
}

// Received returns all interactions where the user is the getter.
func Received(db *gorm.DB, userID string) ([]models.Interaction, error) {
	var inters []models.Interaction
	if err := db.Where("getter_id = ?", userID).
		Order("created_at ASC").Find(&inters).Error; err != nil {
		return nil, fmt.Errorf("interaction: received by %s: %w", userID, err)
	}
	return inters, nil
}

// ForUser returns all interactions where the user is sender or getter.
func ForUser(db *gorm.DB, userID string) ([]models.Interaction, error) {
	var inters []models.Interaction
	if err := db.Where("sender_id = ? OR getter_id = ?", userID, userID).
		Order("created_at ASC").Find(&inters).Error; err != nil {
		return nil, fmt.Errorf("interaction: for user %s: %w", userID, err)
	}
	return inters, nil
}

// OnOwnedOrders returns all interactions on orders owned by the user:
// the applications received across the user's own postings.
func OnOwnedOrders(db *gorm.DB, ownerID string) ([]models.Interaction, error) {
	ownedSub := db.Model(&models.Order{}).Select("id").Where("owner_id = ?", ownerID)

	var inters []models.Interaction
	if err := db.Where("order_id IN (?)", ownedSub).
		Order("created_at ASC").Find(&inters).Error; err != nil {
		return nil, fmt.Errorf("interaction: on orders owned by %s: %w", ownerID, err)
	}
	return inters, nil
}

// OnOwnedOrdersAsSender returns interactions the user sent against their
// own orders.
func OnOwnedOrdersAsSender(db *gorm.DB, userID string) ([]models.Interaction, error) {
	ownedSub := db.Model(&models.Order{}).Select("id").Where("owner_id = ?", userID)

	var inters []models.Interaction
	if err := db.Where("sender_id = ? AND order_id IN (?)", userID, ownedSub).
		Order("created_at ASC").Find(&inters).Error; err != nil {
		return nil, fmt.Errorf("interaction: sent on own orders by %s: %w", userID, err)
	}
	return inters, nil
}
