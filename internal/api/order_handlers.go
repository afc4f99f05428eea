package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gigbridge/gigbridge/internal/auth"
	"github.com/gigbridge/gigbridge/internal/models"
	"github.com/gigbridge/gigbridge/internal/notify"
	"github.com/gigbridge/gigbridge/internal/order"
	"github.com/gigbridge/gigbridge/internal/view"
)

type createOrderRequest struct {
	Title              string     `json:"title"`
	Image              string     `json:"image"`
	Skill              string     `json:"skill"`
	Tools              []string   `json:"tools"`
	TaskDescription    string     `json:"taskDescription"`
	ProjectDescription string     `json:"projectDescription"`
	Experience         string     `json:"experience"`
	StartsAt           *time.Time `json:"startsAt"`
	EndsAt             *time.Time `json:"endsAt"`
	Files              []string   `json:"files"`
}

func (a *api) handleCreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	ownerID := auth.UserID(c)
	created, err := order.Create(a.db, order.CreateOpts{
		OwnerID:            ownerID,
		Title:              req.Title,
		Image:              req.Image,
		Skill:              req.Skill,
		Tools:              req.Tools,
		TaskDescription:    req.TaskDescription,
		ProjectDescription: req.ProjectDescription,
		Experience:         req.Experience,
		StartsAt:           req.StartsAt,
		EndsAt:             req.EndsAt,
		Files:              req.Files,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	var owner models.User
	if a.db.First(&owner, "id = ?", ownerID).Error == nil {
		a.notifier.Notify(c.Request.Context(), notify.OrderPublished(created.Title, owner.Email))
	}

	full, err := view.Order(a.db, created.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, full)
}

func (a *api) handleSearchOrders(c *gin.Context) {
	filters := order.SearchFilters{
		SkillID:    c.Query("skill"),
		ToolIDs:    c.QueryArray("tool"),
		Experience: c.Query("experience"),
	}
	orders, err := order.Search(a.db, filters)
	if err != nil {
		writeError(c, err)
		return
	}
	a.writeOrders(c, orders)
}

func (a *api) handleGetOrder(c *gin.Context) {
	full, err := view.Order(a.db, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, full)
}

func (a *api) handleMyOrders(c *gin.Context) {
	orders, err := order.ListByOwner(a.db, auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	a.writeOrders(c, orders)
}

func (a *api) handleDeleteOrder(c *gin.Context) {
	if err := order.Delete(a.db, c.Param("id"), auth.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeOrders resolves each order into its full projection.
func (a *api) writeOrders(c *gin.Context, orders []models.Order) {
	out := make([]view.FullOrder, 0, len(orders))
	for _, o := range orders {
		full, err := view.Order(a.db, o.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		out = append(out, *full)
	}
	c.JSON(http.StatusOK, out)
}
