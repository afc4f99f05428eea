package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gigbridge/gigbridge/internal/auth"
	"github.com/gigbridge/gigbridge/internal/models"
	"github.com/gigbridge/gigbridge/internal/portfolio"
)

type projectRequest struct {
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Files       []string `json:"files"`
}

type projectResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Files       []string  `json:"files"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toProjectResponse(p *models.PortfolioProject) projectResponse {
	files := []string{}
	if p.Files != "" {
		json.Unmarshal([]byte(p.Files), &files)
	}
	return projectResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Image:       p.Image,
		Description: p.Description,
		Files:       files,
		CreatedAt:   p.CreatedAt,
	}
}

func writeProjects(c *gin.Context, projects []models.PortfolioProject) {
	out := make([]projectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, toProjectResponse(&projects[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (a *api) handleCreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	project, err := portfolio.Create(a.db, portfolio.CreateOpts{
		UserID:      auth.UserID(c),
		Name:        req.Name,
		Image:       req.Image,
		Description: req.Description,
		Files:       req.Files,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProjectResponse(project))
}

func (a *api) handleGetProject(c *gin.Context) {
	project, err := portfolio.Get(a.db, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (a *api) handleUpdateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	project, err := portfolio.Update(a.db, c.Param("id"), auth.UserID(c), portfolio.UpdateOpts{
		Name:        req.Name,
		Image:       req.Image,
		Description: req.Description,
		Files:       req.Files,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (a *api) handleDeleteProject(c *gin.Context) {
	if err := portfolio.Delete(a.db, c.Param("id"), auth.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) handleUserPortfolio(c *gin.Context) {
	projects, err := portfolio.ListByUser(a.db, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeProjects(c, projects)
}
