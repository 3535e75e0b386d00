package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles post, comment and reaction HTTP requests
type PostHandler struct {
	content *services.ContentService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(content *services.ContentService) *PostHandler {
	return &PostHandler{content: content}
}

// RegisterPostRoutes registers content-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetFeed)
	g.GET("/posts/mine", h.GetMyPosts)
	g.GET("/posts/trending", h.GetTrending)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.POST("/posts/:id/archive", h.ArchivePost)
	g.POST("/posts/:id/comments", h.CreateComment)
	g.GET("/posts/:id/comments", h.ListComments)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.POST("/posts/:id/reactions", h.ReactToPost)
	g.DELETE("/posts/:id/reactions", h.UnreactToPost)
	g.GET("/posts/:id/reactions", h.ListPostReactions)
	g.POST("/comments/:id/reactions", h.ReactToComment)
	g.DELETE("/comments/:id/reactions", h.UnreactToComment)
	g.GET("/comments/:id/reactions", h.ListCommentReactions)
}

// CreatePost creates a post authored by the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	claims := getClaims(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	post, err := h.content.CreatePost(claims.UserID, req.Content, isPublic)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetFeed retrieves a page of posts visible to the caller
func (h *PostHandler) GetFeed(c echo.Context) error {
	claims := getClaims(c)
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	posts, err := h.content.ListFeed(claims.UserID, page, limit)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetMyPosts retrieves the caller's own posts, newest first
func (h *PostHandler) GetMyPosts(c echo.Context) error {
	claims := getClaims(c)
	posts, err := h.content.ListByAuthor(claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetTrending retrieves the current trending posts
func (h *PostHandler) GetTrending(c echo.Context) error {
	claims := getClaims(c)
	posts, err := h.content.Trending(claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost retrieves one post the caller may see
func (h *PostHandler) GetPost(c echo.Context) error {
	claims := getClaims(c)
	post, err := h.content.GetPost(c.Param("id"), claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// UpdatePost applies content/visibility changes to the caller's post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	claims := getClaims(c)

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.content.UpdatePost(c.Param("id"), claims.UserID, req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// ArchivePost hides the caller's post from every listing
func (h *PostHandler) ArchivePost(c echo.Context) error {
	claims := getClaims(c)
	if err := h.content.ArchivePost(c.Param("id"), claims.UserID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post archived"})
}

// CreateComment comments on a post, optionally replying to another comment
func (h *PostHandler) CreateComment(c echo.Context) error {
	claims := getClaims(c)

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.content.AddComment(c.Param("id"), claims.UserID, req.Content, req.ParentID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// ListComments retrieves a post's comments, oldest first
func (h *PostHandler) ListComments(c echo.Context) error {
	claims := getClaims(c)
	comments, err := h.content.ListComments(c.Param("id"), claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// DeleteComment soft-deletes the caller's comment
func (h *PostHandler) DeleteComment(c echo.Context) error {
	claims := getClaims(c)
	if err := h.content.DeleteComment(c.Param("id"), claims.UserID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted"})
}

// ReactToPost adds or updates the caller's reaction on a post
func (h *PostHandler) ReactToPost(c echo.Context) error {
	return h.react(c, models.ReactionTargetPost)
}

// ReactToComment adds or updates the caller's reaction on a comment
func (h *PostHandler) ReactToComment(c echo.Context) error {
	return h.react(c, models.ReactionTargetComment)
}

func (h *PostHandler) react(c echo.Context, targetType models.ReactionTargetType) error {
	claims := getClaims(c)

	var req models.ReactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.content.React(claims.UserID, targetType, c.Param("id"), req.ReactionType)
	if err != nil {
		return toHTTPError(err)
	}
	status := http.StatusCreated
	if updated {
		status = http.StatusOK
	}
	return c.JSON(status, echo.Map{"reaction_type": req.ReactionType, "updated": updated})
}

// UnreactToPost removes the caller's reaction from a post
func (h *PostHandler) UnreactToPost(c echo.Context) error {
	return h.unreact(c, models.ReactionTargetPost)
}

// UnreactToComment removes the caller's reaction from a comment
func (h *PostHandler) UnreactToComment(c echo.Context) error {
	return h.unreact(c, models.ReactionTargetComment)
}

func (h *PostHandler) unreact(c echo.Context, targetType models.ReactionTargetType) error {
	claims := getClaims(c)
	if err := h.content.Unreact(claims.UserID, targetType, c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Reaction removed"})
}

// ListPostReactions lists reactions on a post
func (h *PostHandler) ListPostReactions(c echo.Context) error {
	return h.listReactions(c, models.ReactionTargetPost)
}

// ListCommentReactions lists reactions on a comment
func (h *PostHandler) ListCommentReactions(c echo.Context) error {
	return h.listReactions(c, models.ReactionTargetComment)
}

func (h *PostHandler) listReactions(c echo.Context, targetType models.ReactionTargetType) error {
	typeFilter := models.ReactionType(c.QueryParam("type"))
	if typeFilter != "" && !models.ValidReactionType(typeFilter) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid reaction type filter")
	}
	reactions, err := h.content.ListReactions(targetType, c.Param("id"), typeFilter)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, reactions)
}
