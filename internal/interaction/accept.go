package interaction

import (
	"errors"
	"fmt"

	"github.com/gigbridge/gigbridge/internal/fault"
	"github.com/gigbridge/gigbridge/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Accept marks an interaction as accepted and closes out its order in a
// single transaction:
//
//  1. the order's active flag flips to false,
//  2. the interaction flips to accepted (only from active),
//  3. every competing interaction on the order is deleted,
//  4. both parties gain a "collaborations" tab row for the order,
//  5. all "active" tab rows for the order are removed.
//
// The order's active flag doubles as the concurrency token: the flip uses
// a conditional update, so of N concurrent accepts on the same order
// exactly one commits and the rest fail with fault.ErrConflict. The order
// row is written first so every accept on one order serializes on that
// row lock before touching any interaction rows; losers then see the
// closed order instead of deadlocking against the winner's sibling
// purge. Any step failing rolls back the whole cascade.
func Accept(db *gorm.DB, interactionID, getterID string) (*models.Interaction, error) {
	if interactionID == "" {
		return nil, fmt.Errorf("interaction: interactionID is required: %w", fault.ErrValidation)
	}

	var accepted models.Interaction

	err := db.Transaction(func(tx *gorm.DB) error {
		var inter models.Interaction
		if err := tx.Where("id = ?", interactionID).First(&inter).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("interaction: %s: %w", interactionID, fault.ErrNotFound)
			}
			return fmt.Errorf("interaction: load %s: %w", interactionID, err)
		}
		if inter.GetterID != getterID {
			return fmt.Errorf("interaction: only the getter may accept: %w", fault.ErrUnauthorized)
		}

		// Close the order first. The conditional update on is_active is the
		// concurrency gate, and taking this row lock before any interaction
		// row keeps concurrent accepts on one order in a single lock queue.
		result := tx.Model(&models.Order{}).
			Where("id = ? AND is_active = ?", inter.OrderID, true).
			Update("is_active", false)
		if result.Error != nil {
			return fmt.Errorf("interaction: close order %s: %w", inter.OrderID, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("interaction: order %s already closed: %w", inter.OrderID, fault.ErrConflict)
		}

		// Flip the interaction, but only out of the active state. Accepting
		// a rejected or already-accepted interaction conflicts and rolls
		// the order close back.
		result = tx.Model(&models.Interaction{}).
			Where("id = ? AND status = ?", interactionID, models.StatusActive).
			Update("status", models.StatusAccepted)
		if result.Error != nil {
			return fmt.Errorf("interaction: accept %s: %w", interactionID, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("interaction: %s is already %s: %w", interactionID, inter.Status, fault.ErrConflict)
		}

		// Purge competing applications outright.
		if err := tx.Where("order_id = ? AND id != ?", inter.OrderID, interactionID).
			Delete(&models.Interaction{}).Error; err != nil {
			return fmt.Errorf("interaction: purge siblings of %s: %w", interactionID, err)
		}

		// Both parties now see the order under "collaborations".
		tabs := []models.Tab{
			{ID: uuid.NewString(), UserID: inter.SenderID, ProjectID: inter.OrderID, Kind: models.TabCollaborations},
			{ID: uuid.NewString(), UserID: inter.GetterID, ProjectID: inter.OrderID, Kind: models.TabCollaborations},
		}
		if err := tx.Create(&tabs).Error; err != nil {
			return fmt.Errorf("interaction: add collaboration tabs for order %s: %w", inter.OrderID, err)
		}

		// The order no longer accepts applicants; drop it from "active" views.
		if err := tx.Where("project_id = ? AND kind = ?", inter.OrderID, models.TabActive).
			Delete(&models.Tab{}).Error; err != nil {
			return fmt.Errorf("interaction: remove active tabs for order %s: %w", inter.OrderID, err)
		}

		inter.Status = models.StatusAccepted
		accepted = inter
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &accepted, nil
}
