// Package api exposes the marketplace over HTTP: auth, profiles,
// catalog, orders, interactions, tabs and chat. Handlers translate
// request payloads into service calls and fault sentinels into HTTP
// statuses.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gigbridge/gigbridge/internal/auth"
	"github.com/gigbridge/gigbridge/internal/chat"
	"github.com/gigbridge/gigbridge/internal/notify"
)

// StartOpts holds configuration for the API server.
type StartOpts struct {
	DB       *gorm.DB
	Port     int
	Issuer   *auth.TokenIssuer
	GitHub   *auth.GitHubAuthenticator
	Notifier notify.Notifier
	Out      io.Writer
}

// Start launches the HTTP server. It blocks until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	router, err := NewRouter(opts)
	if err != nil {
		return err
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "API listening on http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(opts StartOpts) (*gin.Engine, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("api: db is required")
	}
	if opts.Issuer == nil {
		return nil, fmt.Errorf("api: token issuer is required")
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	a := &api{
		db:       opts.DB,
		issuer:   opts.Issuer,
		github:   opts.GitHub,
		notifier: opts.Notifier,
		hub:      chat.NewHub(),
	}
	a.registerRoutes(router)
	return router, nil
}

// api bundles the dependencies the handlers share.
type api struct {
	db       *gorm.DB
	issuer   *auth.TokenIssuer
	github   *auth.GitHubAuthenticator
	notifier notify.Notifier
	hub      *chat.Hub
}

// registerRoutes sets up all API routes on the gin router.
func (a *api) registerRoutes(router *gin.Engine) {
	pub := router.Group("/api")
	pub.POST("/auth/register", a.handleRegister)
	pub.POST("/auth/login", a.handleLogin)
	if a.github != nil {
		pub.GET("/auth/github", a.handleGitHubStart)
		pub.GET("/auth/github/callback", a.handleGitHubCallback)
	}
	pub.GET("/skills", a.handleListSkills)
	pub.GET("/tools", a.handleListTools)
	pub.GET("/orders", a.handleSearchOrders)
	pub.GET("/orders/:id", a.handleGetOrder)
	pub.GET("/users", a.handleSearchUsers)
	pub.GET("/users/:id", a.handleGetProfile)
	pub.GET("/users/:id/portfolio", a.handleUserPortfolio)

	priv := router.Group("/api", auth.Middleware(a.issuer))
	priv.GET("/me", a.handleMe)
	priv.PUT("/me", a.handleUpdateMe)

	priv.POST("/orders", a.handleCreateOrder)
	priv.GET("/orders/mine", a.handleMyOrders)
	priv.DELETE("/orders/:id", a.handleDeleteOrder)

	priv.POST("/interactions", a.handleCreateInteraction)
	priv.GET("/interactions", a.handleListInteractions)
	priv.GET("/interactions/sent", a.handleSentInteractions)
	priv.GET("/interactions/received", a.handleReceivedInteractions)
	priv.GET("/interactions/owned", a.handleOwnedInteractions)
	priv.GET("/interactions/owned/sent", a.handleOwnedSentInteractions)
	priv.POST("/interactions/:id/accept", a.handleAcceptInteraction)
	priv.POST("/interactions/:id/reject", a.handleRejectInteraction)
	priv.DELETE("/interactions/:id", a.handleDeleteInteraction)

	priv.GET("/tabs/active", a.handleActiveTab)
	priv.GET("/tabs/favorites", a.handleFavoritesTab)
	priv.GET("/tabs/collaborations", a.handleCollaborationsTab)
	priv.GET("/tabs/portfolio", a.handlePortfolioTab)
	priv.POST("/tabs/favorites/:orderId", a.handleAddFavorite)
	priv.DELETE("/tabs/favorites/:orderId", a.handleRemoveFavorite)

	priv.POST("/portfolio", a.handleCreateProject)
	priv.GET("/portfolio/:id", a.handleGetProject)
	priv.PUT("/portfolio/:id", a.handleUpdateProject)
	priv.DELETE("/portfolio/:id", a.handleDeleteProject)

	priv.POST("/messages", a.handleSendMessage)
	priv.PATCH("/messages/:id", a.handleEditMessage)
	priv.GET("/messages/unread", a.handleUnreadCount)
	priv.GET("/messages/with/:userId", a.handleConversation)
	priv.POST("/messages/:id/read", a.handleMarkRead)
	priv.DELETE("/messages/:id", a.handleDeleteMessage)
	priv.GET("/ws", a.handleWebsocket)
}
