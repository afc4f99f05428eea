package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gigbridge/gigbridge/internal/auth"
	"github.com/gigbridge/gigbridge/internal/notify"
	"github.com/gigbridge/gigbridge/internal/view"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse pairs a signed token with the caller's profile.
type tokenResponse struct {
	Token string            `json:"token"`
	User  *view.UserProfile `json:"user"`
}

func (a *api) issueFor(c *gin.Context, status int, userID string) {
	token, err := a.issuer.Issue(userID)
	if err != nil {
		writeError(c, err)
		return
	}
	profile, err := view.Profile(a.db, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, tokenResponse{Token: token, User: profile})
}

func (a *api) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := auth.Register(a.db, auth.RegisterOpts{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Surname:  req.Surname,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	a.notifier.Notify(c.Request.Context(), notify.UserSignedUp(user.Email))
	a.issueFor(c, http.StatusCreated, user.ID)
}

func (a *api) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := auth.Login(a.db, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	a.issueFor(c, http.StatusOK, user.ID)
}

func (a *api) handleGitHubStart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"url": a.github.AuthURL(uuid.NewString())})
}

func (a *api) handleGitHubCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}
	user, err := a.github.Login(c.Request.Context(), a.db, code)
	if err != nil {
		writeError(c, err)
		return
	}
	a.issueFor(c, http.StatusOK, user.ID)
}
