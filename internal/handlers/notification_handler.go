package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/internal/repositories"
	"github.com/anonto42/socialhub/backend/pkg/timeago"
	"github.com/labstack/echo/v4"
)

// EnrichedNotification is a notification with the actor resolved and the
// created time rendered as a relative label.
type EnrichedNotification struct {
	models.Notification
	Actor   *models.UserCompact `json:"actor,omitempty"`
	TimeAgo string              `json:"time_ago"`
}

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notificationRepo, userRepository: userRepo}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.ListNotifications)
	g.GET("/notifications/unread", h.ListUnread)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.POST("/notifications/:id/read", h.MarkAsRead)
	g.POST("/notifications/read-all", h.MarkAllAsRead)
}

// ListNotifications retrieves a page of the caller's notifications, newest first
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	claims := getClaims(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 20
	}

	items, total, err := h.notificationRepository.ListByRecipient(claims.UserID, page, limit)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"notifications": h.enrich(items),
		"total":         total,
		"page":          page,
		"limit":         limit,
	})
}

// ListUnread retrieves the caller's unread notifications
func (h *NotificationHandler) ListUnread(c echo.Context) error {
	claims := getClaims(c)
	items, err := h.notificationRepository.ListUnread(claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, h.enrich(items))
}

// GetUnreadCount counts the caller's unread notifications
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	claims := getClaims(c)
	count, err := h.notificationRepository.UnreadCount(claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

// MarkAsRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	claims := getClaims(c)
	if err := h.notificationRepository.MarkAsRead(c.Param("id"), claims.UserID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}

// MarkAllAsRead marks all of the caller's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	claims := getClaims(c)
	if err := h.notificationRepository.MarkAllAsRead(claims.UserID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All notifications marked as read"})
}

// enrich resolves actors and relative timestamps. Actor lookups are cached
// per call since fan-out batches often share one actor.
func (h *NotificationHandler) enrich(items []models.Notification) []EnrichedNotification {
	now := time.Now()
	actors := make(map[string]*models.UserCompact)
	enriched := make([]EnrichedNotification, 0, len(items))
	for i := range items {
		e := EnrichedNotification{
			Notification: items[i],
			TimeAgo:      timeago.Format(items[i].CreatedAt, now),
		}
		if items[i].ActorID != nil {
			id := *items[i].ActorID
			compact, seen := actors[id]
			if !seen {
				if user, err := h.userRepository.GetByID(id); err == nil {
					c := user.ToCompact()
					compact = &c
				}
				actors[id] = compact
			}
			e.Actor = compact
		}
		enriched = append(enriched, e)
	}
	return enriched
}
