package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/gigbridge/gigbridge/internal/auth"
	"github.com/gigbridge/gigbridge/internal/chat"
	"github.com/gigbridge/gigbridge/internal/models"
)

type sendMessageRequest struct {
	ReceiverID string   `json:"receiverId"`
	Body       string   `json:"body"`
	Files      []string `json:"files"`
}

type messageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Body       string    `json:"body"`
	Files      []string  `json:"files"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toMessageResponse(m *models.Message) messageResponse {
	files := []string{}
	if m.Files != "" {
		json.Unmarshal([]byte(m.Files), &files)
	}
	return messageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Body:       m.Body,
		Files:      files,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
}

func (a *api) handleSendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	msg, err := chat.Send(a.db, auth.UserID(c), req.ReceiverID, req.Body, chat.SendOpts{Files: req.Files})
	if err != nil {
		writeError(c, err)
		return
	}
	a.hub.Deliver(msg)
	c.JSON(http.StatusCreated, toMessageResponse(msg))
}

func (a *api) handleConversation(c *gin.Context) {
	offset, _ := strconv.Atoi(c.Query("offset"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	msgs, err := chat.Between(a.db, auth.UserID(c), c.Param("userId"), offset, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]messageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, toMessageResponse(&msgs[i]))
	}
	c.JSON(http.StatusOK, out)
}

type editMessageRequest struct {
	Body string `json:"body"`
}

func (a *api) handleEditMessage(c *gin.Context) {
	var req editMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	msg, err := chat.Update(a.db, c.Param("id"), auth.UserID(c), req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMessageResponse(msg))
}

func (a *api) handleMarkRead(c *gin.Context) {
	if err := chat.MarkRead(a.db, c.Param("id"), auth.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) handleUnreadCount(c *gin.Context) {
	count, err := chat.Unread(a.db, auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (a *api) handleDeleteMessage(c *gin.Context) {
	if err := chat.Delete(a.db, c.Param("id"), auth.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is token-authenticated, not cookie-authenticated, so
	// cross-origin upgrades are safe to allow.
	CheckOrigin: func(*http.Request) bool { return true },
}

// handleWebsocket upgrades the connection and registers it with the
// hub so new messages can be pushed to the caller. The read loop only
// watches for the close.
func (a *api) handleWebsocket(c *gin.Context) {
	userID := auth.UserID(c)
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		return
	}
	a.hub.Connect(userID, conn)
	defer func() {
		a.hub.Disconnect(userID, conn)
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
