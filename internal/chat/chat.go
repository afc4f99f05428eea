// Package chat provides direct messaging between users with read
// receipts and best-effort live delivery over websockets. Nothing in the
// interaction engine depends on it.
package chat

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gigbridge/gigbridge/internal/fault"
	"github.com/gigbridge/gigbridge/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SendOpts holds optional parameters for sending a message.
type SendOpts struct {
	Files []string
}

// Send persists a new unread message from one user to another.
func Send(db *gorm.DB, senderID, receiverID, body string, opts SendOpts) (*models.Message, error) {
	if senderID == "" {
		return nil, fmt.Errorf("chat: senderID is required: %w", fault.ErrValidation)
	}
	if receiverID == "" {
		return nil, fmt.Errorf("chat: receiverID is required: %w", fault.ErrValidation)
	}
	if body == "" {
		return nil, fmt.Errorf("chat: body is required: %w", fault.ErrValidation)
	}

	files := "[]"
	if len(opts.Files) > 0 {
		data, err := json.Marshal(opts.Files)
		if err != nil {
			return nil, fmt.Errorf("chat: marshal files: %w", err)
		}
		files = string(data)
	}

	msg := models.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
		Files:      files,
		IsRead:     false,
	}
	if err := db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("chat: send: %w", err)
	}
	return &msg, nil
}

// Between returns a page of the conversation between two users in
// chronological order. Offset and limit page from the newest message
// backwards.
func Between(db *gorm.DB, userA, userB string, offset, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 50
	}

	var msgs []models.Message
	err := db.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userA, userB, userB, userA).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("chat: conversation %s/%s: %w", userA, userB, err)
	}

	// Newest-first page, flipped to reading order.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// Get retrieves a message by ID.
func Get(db *gorm.DB, messageID string) (*models.Message, error) {
	var msg models.Message
	if err := db.Where("id = ?", messageID).First(&msg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("chat: message %s: %w", messageID, fault.ErrNotFound)
		}
		return nil, fmt.Errorf("chat: get %s: %w", messageID, err)
	}
	return &msg, nil
}

// MarkRead flags a message as read. Only the receiver may acknowledge.
func MarkRead(db *gorm.DB, messageID, readerID string) error {
	msg, err := Get(db, messageID)
	if err != nil {
		return err
	}
	if msg.ReceiverID != readerID {
		return fmt.Errorf("chat: only the receiver may mark read: %w", fault.ErrUnauthorized)
	}
	if err := db.Model(&models.Message{}).Where("id = ?", messageID).
		Update("is_read", true).Error; err != nil {
		return fmt.Errorf("chat: mark read %s: %w", messageID, err)
	}
	return nil
}

// Unread counts messages the user has not yet read.
func Unread(db *gorm.DB, userID string) (int64, error) {
	var count int64
	if err := db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("chat: unread count for %s: %w", userID, err)
	}
	return count, nil
}

// Update rewrites a message body. Only its sender may edit.
func Update(db *gorm.DB, messageID, senderID, body string) (*models.Message, error) {
	if body == "" {
		return nil, fmt.Errorf("chat: body is required: %w", fault.ErrValidation)
	}
	msg, err := Get(db, messageID)
	if err != nil {
		return nil, err
	}
	if msg.SenderID != senderID {
		return nil, fmt.Errorf("chat: only the sender may edit: %w", fault.ErrUnauthorized)
	}
	if err := db.Model(&models.Message{}).Where("id = ?", messageID).
		Update("body", body).Error; err != nil {
		return nil, fmt.Errorf("chat: update %s: %w", messageID, err)
	}
	msg.Body = body
	return msg, nil
}

// Delete removes a message. Only its sender may delete.
func Delete(db *gorm.DB, messageID, senderID string) error {
	msg, err := Get(db, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != senderID {
		return fmt.Errorf("chat: only the sender may delete: %w", fault.ErrUnauthorized)
	}
	if err := db.Delete(&models.Message{}, "id = ?", messageID).Error; err != nil {
		return fmt.Errorf("chat: delete %s: %w", messageID, err)
	}
	return nil
}
