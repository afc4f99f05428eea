package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gigbridge/gigbridge/internal/auth"
	"github.com/gigbridge/gigbridge/internal/models"
	"github.com/gigbridge/gigbridge/internal/user"
	"github.com/gigbridge/gigbridge/internal/view"
)

func (a *api) handleMe(c *gin.Context) {
	profile, err := view.Profile(a.db, auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (a *api) handleGetProfile(c *gin.Context) {
	profile, err := view.Profile(a.db, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type updateProfileRequest struct {
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Surname     string   `json:"surname"`
	Description string   `json:"description"`
	Photo       string   `json:"photo"`
	Cover       string   `json:"cover"`
	Experience  string   `json:"experience"`
	Searchable  *bool    `json:"searchable"`
	Password    string   `json:"password"`
	Skills      []string `json:"skills"`
	Tools       []string `json:"tools"`
}

func (a *api) handleUpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	userID := auth.UserID(c)
	if _, err := user.Update(a.db, userID, user.UpdateOpts{
		Email:       req.Email,
		Name:        req.Name,
		Surname:     req.Surname,
		Description: req.Description,
		Photo:       req.Photo,
		Cover:       req.Cover,
		Experience:  req.Experience,
		Searchable:  req.Searchable,
		Password:    req.Password,
		Skills:      req.Skills,
		Tools:       req.Tools,
	}); err != nil {
		writeError(c, err)
		return
	}
	profile, err := view.Profile(a.db, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (a *api) handleSearchUsers(c *gin.Context) {
	filters := user.SearchFilters{
		SkillID:    c.Query("skill"),
		ToolIDs:    c.QueryArray("tool"),
		Experience: c.Query("experience"),
	}
	users, err := user.Search(a.db, filters)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]view.UserProfile, 0, len(users))
	for _, u := range users {
		profile, err := view.Profile(a.db, u.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		out = append(out, *profile)
	}
	c.JSON(http.StatusOK, out)
}

type skillResponse struct {
	ID     string `json:"id"`
	NameEn string `json:"nameEn"`
	NameRu string `json:"nameRu"`
}

type toolResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (a *api) handleListSkills(c *gin.Context) {
	var skills []models.Skill
	if err := a.db.Order("name_en").Find(&skills).Error; err != nil {
		writeError(c, err)
		return
	}
	out := make([]skillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, skillResponse{ID: s.ID, NameEn: s.NameEn, NameRu: s.NameRu})
	}
	c.JSON(http.StatusOK, out)
}

func (a *api) handleListTools(c *gin.Context) {
	var tools []models.Tool
	if err := a.db.Order("name").Find(&tools).Error; err != nil {
		writeError(c, err)
		return
	}
	out := make([]toolResponse, 0, len(tools))
	for _, t := range tools {
		out = append(out, toolResponse{ID: t.ID, Name: t.Name})
	}
	c.JSON(http.StatusOK, out)
}
