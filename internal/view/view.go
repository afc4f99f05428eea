// Package view assembles denormalized read models for API responses:
// interactions joined with sender, getter, order, skill and tool
// projections. It only reads state the engine and stores persist.
package view

import (
	"errors"
	"fmt"

	"github.com/gigbridge/gigbridge/internal/fault"
	"github.com/gigbridge/gigbridge/internal/models"
	"gorm.io/gorm"
)

// SkillName is a localized skill projection for profiles and orders.
type SkillName struct {
	NameEn  string `json:"nameEn"`
	NameRu  string `json:"nameRu"`
	Primary bool   `json:"primary,omitempty"`
}

// UserProfile is a public user projection with skills and tool names.
type UserProfile struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Surname     string      `json:"surname"`
	Description string      `json:"description"`
	Photo       string      `json:"photo"`
	Cover       string      `json:"cover"`
	Experience  string      `json:"experience"`
	Skills      []SkillName `json:"skills"`
	Tools       []string    `json:"tools"`
}

// FullOrder is an order projection with its skill and tool names resolved.
type FullOrder struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Image              string     `json:"image"`
	TaskDescription    string     `json:"taskDescription"`
	ProjectDescription string     `json:"projectDescription"`
	Experience         string     `json:"experience"`
	IsActive           bool       `json:"isActive"`
	Skill              *SkillName `json:"skill,omitempty"`
	Tools              []string   `json:"tools"`
}

// FullInteraction joins an interaction with both user profiles and the
// full order projection.
type FullInteraction struct {
	ID     string      `json:"id"`
	Sender UserProfile `json:"sender"`
	Getter UserProfile `json:"getter"`
	Order  FullOrder   `json:"order"`
	Status string      `json:"status"`
}

// Profile loads the public projection for one user.
func Profile(db *gorm.DB, userID string) (*UserProfile, error) {
	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("view: user %s: %w", userID, fault.ErrNotFound)
		}
		return nil, fmt.Errorf("view: load user %s: %w", userID, err)
	}

	var userSkills []models.UserSkill
	if err := db.Preload("Skill").Where("user_id = ?", userID).Find(&userSkills).Error; err != nil {
		return nil, fmt.Errorf("view: load skills for %s: %w", userID, err)
	}
	skills := make([]SkillName, len(userSkills))
	for i, us := range userSkills {
		skills[i] = SkillName{NameEn: us.Skill.NameEn, NameRu: us.Skill.NameRu, Primary: us.Primary}
	}

	var userTools []models.UserTool
	if err := db.Preload("Tool").Where("user_id = ?", userID).Find(&userTools).Error; err != nil {
		return nil, fmt.Errorf("view: load tools for %s: %w", userID, err)
	}
	tools := make([]string, len(userTools))
	for i, ut := range userTools {
		tools[i] = ut.Tool.Name
	}

	return &UserProfile{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Surname:     user.Surname,
		Description: user.Description,
		Photo:       user.Photo,
		Cover:       user.Cover,
		Experience:  user.Experience,
		Skills:      skills,
		Tools:       tools,
	}, nil
}

// Order loads the full projection for one order.
func Order(db *gorm.DB, orderID string) (*FullOrder, error) {
	var ord models.Order
	if err := db.Where("id = ?", orderID).First(&ord).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("view: order %s: %w", orderID, fault.ErrNotFound)
		}
		return nil, fmt.Errorf("view: load order %s: %w", orderID, err)
	}

	full := FullOrder{
		ID:                 ord.ID,
		Title:              ord.Title,
		Image:              ord.Image,
		TaskDescription:    ord.TaskDescription,
		ProjectDescription: ord.ProjectDescription,
		Experience:         ord.Experience,
		IsActive:           ord.IsActive,
		Tools:              []string{},
	}

	if ord.SkillID != "" {
		var skill models.Skill
		if err := db.Where("id = ?", ord.SkillID).First(&skill).Error; err == nil {
			full.Skill = &SkillName{NameEn: skill.NameEn, NameRu: skill.NameRu}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("view: load skill for order %s: %w", orderID, err)
		}
	}

	var joins []models.OrderTool
	if err := db.Preload("Tool").Where("order_id = ?", orderID).Find(&joins).Error; err != nil {
		return nil, fmt.Errorf("view: load tools for order %s: %w", orderID, err)
	}
	for _, j := range joins {
		full.Tools = append(full.Tools, j.Tool.Name)
	}

	return &full, nil
}

// Interaction assembles the full projection for one interaction.
func Interaction(db *gorm.DB, inter *models.Interaction) (*FullInteraction, error) {
	sender, err := Profile(db, inter.SenderID)
	if err != nil {
		return nil, err
	}
	getter, err := Profile(db, inter.GetterID)
	if err != nil {
		return nil, err
	}
	ord, err := Order(db, inter.OrderID)
	if err != nil {
		return nil, err
	}
	return &FullInteraction{
		ID:     inter.ID,
		Sender: *sender,
		Getter: *getter,
		Order:  *ord,
		Status: inter.Status,
	}, nil
}

// Interactions assembles full projections for a list of interactions.
func Interactions(db *gorm.DB, inters []models.Interaction) ([]FullInteraction, error) {
	full := make([]FullInteraction, 0, len(inters))
	for i := range inters {
		fi, err := Interaction(db, &inters[i])
		if err != nil {
			return nil, err
		}
		full = append(full, *fi)
	}
	return full, nil
}
