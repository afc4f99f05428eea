package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gigbridge/gigbridge/internal/auth"
	"github.com/gigbridge/gigbridge/internal/tab"
)

func (a *api) handleActiveTab(c *gin.Context) {
	orders, err := tab.ActiveOrders(a.db, auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	a.writeOrders(c, orders)
}

func (a *api) handleFavoritesTab(c *gin.Context) {
	orders, err := tab.Favorites(a.db, auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	a.writeOrders(c, orders)
}

func (a *api) handleCollaborationsTab(c *gin.Context) {
	orders, err := tab.Collaborations(a.db, auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	a.writeOrders(c, orders)
}

func (a *api) handlePortfolioTab(c *gin.Context) {
	projects, err := tab.Portfolio(a.db, auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	writeProjects(c, projects)
}

func (a *api) handleAddFavorite(c *gin.Context) {
	if err := tab.AddFavorite(a.db, auth.UserID(c), c.Param("orderId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) handleRemoveFavorite(c *gin.Context) {
	if err := tab.RemoveFavorite(a.db, auth.UserID(c), c.Param("orderId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
