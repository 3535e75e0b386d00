package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles friend request and friendship HTTP requests
type FriendshipHandler struct {
	friendships *services.FriendshipService
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendships *services.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendships: friendships}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/friend-requests", h.SendFriendRequest)
	g.GET("/friend-requests/pending", h.ListPendingRequests)
	g.GET("/friend-requests/sent", h.ListSentRequests)
	g.POST("/friend-requests/:id/accept", h.AcceptFriendRequest)
	g.POST("/friend-requests/:id/reject", h.RejectFriendRequest)
	g.GET("/friends", h.ListFriends)
	g.DELETE("/friends/:id", h.Unfriend)
	g.GET("/friends/suggestions", h.GetSuggestions)
}

// SendFriendRequest sends a friend request to another end-user
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	claims := getClaims(c)

	var req models.CreateFriendRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	request, err := h.friendships.SendRequest(claims.UserID, req.ReceiverID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, request)
}

// ListPendingRequests lists pending requests addressed to the caller
func (h *FriendshipHandler) ListPendingRequests(c echo.Context) error {
	claims := getClaims(c)
	requests, err := h.friendships.ListReceivedPending(claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

// ListSentRequests lists requests the caller has sent
func (h *FriendshipHandler) ListSentRequests(c echo.Context) error {
	claims := getClaims(c)
	requests, err := h.friendships.ListSent(claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

// AcceptFriendRequest accepts a pending request addressed to the caller
func (h *FriendshipHandler) AcceptFriendRequest(c echo.Context) error {
	claims := getClaims(c)
	edge, err := h.friendships.AcceptRequest(c.Param("id"), claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, edge)
}

// RejectFriendRequest rejects a pending request addressed to the caller
func (h *FriendshipHandler) RejectFriendRequest(c echo.Context) error {
	claims := getClaims(c)
	if err := h.friendships.RejectRequest(c.Param("id"), claims.UserID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Friend request rejected"})
}

// ListFriends lists the caller's friends
func (h *FriendshipHandler) ListFriends(c echo.Context) error {
	claims := getClaims(c)
	friends, err := h.friendships.ListFriends(claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, friends)
}

// Unfriend removes the friendship between the caller and another user
func (h *FriendshipHandler) Unfriend(c echo.Context) error {
	claims := getClaims(c)
	if err := h.friendships.Unfriend(claims.UserID, c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Friend removed"})
}

// GetSuggestions lists end-users the caller might want to befriend
func (h *FriendshipHandler) GetSuggestions(c echo.Context) error {
	claims := getClaims(c)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	users, err := h.friendships.Suggest(claims.UserID, limit)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, users)
}
