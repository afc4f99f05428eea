// Package auth provides registration, password and OAuth login, and JWT
// issuance for the API layer.
package auth

import (
	"errors"
	"fmt"

	"github.com/gigbridge/gigbridge/internal/fault"
	"github.com/gigbridge/gigbridge/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterOpts holds parameters for password registration.
type RegisterOpts struct {
	Email    string
	Password string
	Name     string
	Surname  string
}

// Register creates a user with a bcrypt credential. The email must be
// unused.
func Register(db *gorm.DB, opts RegisterOpts) (*models.User, error) {
	if opts.Email == "" {
		return nil, fmt.Errorf("auth: email is required: %w", fault.ErrValidation)
	}
	if opts.Password == "" {
		return nil, fmt.Errorf("auth: password is required: %w", fault.ErrValidation)
	}

	var existing models.User
	err := db.Where("email = ?", opts.Email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("auth: email %s already registered: %w", opts.Email, fault.ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("auth: check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	user := models.User{
		ID:         uuid.NewString(),
		Email:      opts.Email,
		Name:       opts.Name,
		Surname:    opts.Surname,
		Searchable: true,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		cred := models.AuthCredential{
			ID:           uuid.NewString(),
			UserID:       user.ID,
			PasswordHash: string(hash),
		}
		if err := tx.Create(&cred).Error; err != nil {
			return fmt.Errorf("create credential: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth: register: %w", err)
	}
	return &user, nil
}

// Login verifies an email/password pair and returns the user. The same
// error is returned for an unknown email and a wrong password.
func Login(db *gorm.DB, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("auth: email and password are required: %w", fault.ErrValidation)
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("auth: bad credentials: %w", fault.ErrUnauthorized)
		}
		return nil, fmt.Errorf("auth: load user: %w", err)
	}

	var cred models.AuthCredential
	if err := db.Where("user_id = ?", user.ID).First(&cred).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("auth: bad credentials: %w", fault.ErrUnauthorized)
		}
		return nil, fmt.Errorf("auth: load credential: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("auth: bad credentials: %w", fault.ErrUnauthorized)
	}
	return &user, nil
}
