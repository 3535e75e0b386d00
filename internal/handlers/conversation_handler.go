package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ConversationHandler handles conversation and messaging HTTP requests
type ConversationHandler struct {
	conversations *services.ConversationService
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(conversations *services.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

// RegisterConversationRoutes registers conversation-related routes
func (h *ConversationHandler) RegisterConversationRoutes(g *echo.Group) {
	g.POST("/conversations", h.StartConversation)
	g.GET("/conversations", h.ListConversations)
	g.GET("/conversations/:id", h.GetConversation)
	g.POST("/conversations/:id/participants", h.AddParticipant)
	g.DELETE("/conversations/:id/participants/:userId", h.RemoveParticipant)
	g.POST("/conversations/:id/messages", h.SendMessage)
	g.GET("/conversations/:id/messages", h.ListMessages)
	g.GET("/conversations/:id/unread-count", h.GetUnreadCount)
	g.POST("/messages/:id/read", h.MarkMessageRead)
	g.GET("/messages/unread-count", h.GetTotalUnreadCount)
}

// StartConversation starts a direct conversation or creates a group one
func (h *ConversationHandler) StartConversation(c echo.Context) error {
	claims := getClaims(c)

	var req models.StartConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.IsGroup {
		conv, err := h.conversations.CreateGroup(claims.UserID, req.Name, req.ParticipantIDs)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusCreated, conv)
	}

	if len(req.ParticipantIDs) != 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "Direct conversations take exactly one other participant")
	}
	conv, err := h.conversations.StartDirect(claims.UserID, req.ParticipantIDs[0])
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, conv)
}

// ListConversations lists the caller's conversations with summaries
func (h *ConversationHandler) ListConversations(c echo.Context) error {
	claims := getClaims(c)
	summaries, err := h.conversations.ListConversations(claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, summaries)
}

// GetConversation retrieves a conversation and marks its messages read
func (h *ConversationHandler) GetConversation(c echo.Context) error {
	claims := getClaims(c)
	conv, err := h.conversations.GetConversation(c.Param("id"), claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, conv)
}

// AddParticipant adds a user to a group conversation
func (h *ConversationHandler) AddParticipant(c echo.Context) error {
	var req models.ParticipantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	conv, err := h.conversations.AddParticipant(c.Param("id"), req.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, conv)
}

// RemoveParticipant removes a user from a group conversation
func (h *ConversationHandler) RemoveParticipant(c echo.Context) error {
	conv, err := h.conversations.RemoveParticipant(c.Param("id"), c.Param("userId"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, conv)
}

// SendMessage appends a message to a conversation
func (h *ConversationHandler) SendMessage(c echo.Context) error {
	claims := getClaims(c)

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	msg, err := h.conversations.SendMessage(c.Param("id"), claims.UserID, req.Content)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, msg)
}

// ListMessages retrieves a page of a conversation's messages
func (h *ConversationHandler) ListMessages(c echo.Context) error {
	claims := getClaims(c)
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	msgs, err := h.conversations.ListMessages(c.Param("id"), claims.UserID, page, limit)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, msgs)
}

// GetUnreadCount counts the caller's unread messages in one conversation
func (h *ConversationHandler) GetUnreadCount(c echo.Context) error {
	claims := getClaims(c)
	count, err := h.conversations.UnreadCount(c.Param("id"), claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

// MarkMessageRead records the caller's read acknowledgement on a message
func (h *ConversationHandler) MarkMessageRead(c echo.Context) error {
	claims := getClaims(c)
	if err := h.conversations.MarkRead(c.Param("id"), claims.UserID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Message marked as read"})
}

// GetTotalUnreadCount counts the caller's unread messages everywhere
func (h *ConversationHandler) GetTotalUnreadCount(c echo.Context) error {
	claims := getClaims(c)
	count, err := h.conversations.TotalUnread(claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}
