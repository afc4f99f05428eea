package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gigbridge/gigbridge/internal/auth"
	"github.com/gigbridge/gigbridge/internal/interaction"
	"github.com/gigbridge/gigbridge/internal/models"
	"github.com/gigbridge/gigbridge/internal/notify"
	"github.com/gigbridge/gigbridge/internal/view"
)

type createInteractionRequest struct {
	OrderID string `json:"orderId"`
}

func (a *api) handleCreateInteraction(c *gin.Context) {
	var req createInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := interaction.Create(a.db, interaction.CreateOpts{
		SenderID: auth.UserID(c),
		OrderID:  req.OrderID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	full, err := view.Interaction(a.db, created)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, full)
}

func (a *api) handleAcceptInteraction(c *gin.Context) {
	accepted, err := interaction.Accept(a.db, c.Param("id"), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	full, err := view.Interaction(a.db, accepted)
	if err != nil {
		writeError(c, err)
		return
	}
	a.notifier.Notify(c.Request.Context(),
		notify.CollaborationStarted(full.Order.Title, full.Sender.Email, full.Getter.Email))
	c.JSON(http.StatusOK, full)
}

func (a *api) handleRejectInteraction(c *gin.Context) {
	if err := interaction.Reject(a.db, c.Param("id"), auth.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) handleDeleteInteraction(c *gin.Context) {
	if err := interaction.Delete(a.db, c.Param("id"), auth.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) handleListInteractions(c *gin.Context) {
	a.writeInteractions(c, interaction.ForUser)
}

func (a *api) handleSentInteractions(c *gin.Context) {
	a.writeInteractions(c, interaction.Sent)
}

func (a *api) handleReceivedInteractions(c *gin.Context) {
	a.writeInteractions(c, interaction.Received)
}

func (a *api) handleOwnedInteractions(c *gin.Context) {
	a.writeInteractions(c, interaction.OnOwnedOrders)
}

func (a *api) handleOwnedSentInteractions(c *gin.Context) {
	a.writeInteractions(c, interaction.OnOwnedOrdersAsSender)
}

// writeInteractions runs one of the interaction query surfaces for the
// caller and resolves the results into full projections.
func (a *api) writeInteractions(c *gin.Context, query func(*gorm.DB, string) ([]models.Interaction, error)) {
	inters, err := query(a.db, auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	full, err := view.Interactions(a.db, inters)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, full)
}
