package handlers

import (
	"net/http"
	"strings"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler handles user directory HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/me", h.GetMe)
	g.PUT("/me", h.UpdateMe)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users", h.ListEndUsers)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/admins", h.ListAdmins)
	g.POST("/admins", h.CreateAdmin)
}

// GetMe returns the authenticated user's record with its profile
func (h *UserHandler) GetMe(c echo.Context) error {
	claims := getClaims(c)
	user, err := h.userRepository.GetByID(claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe applies partial updates to the authenticated end-user and profile
func (h *UserHandler) UpdateMe(c echo.Context) error {
	claims := getClaims(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetByID(claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if err := h.userRepository.Update(user); err != nil {
		return toHTTPError(err)
	}

	if user.EndUserProfile != nil && (req.Bio != nil || req.Location != nil || req.Website != nil) {
		profile := user.EndUserProfile
		if req.Bio != nil {
			profile.Bio = *req.Bio
		}
		if req.Location != nil {
			profile.Location = *req.Location
		}
		if req.Website != nil {
			profile.Website = *req.Website
		}
		if err := h.userRepository.UpdateEndUserProfile(profile); err != nil {
			return toHTTPError(err)
		}
	}

	return c.JSON(http.StatusOK, user)
}

// GetUser returns a user by ID
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userRepository.GetByID(c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ListEndUsers lists all end-users
func (h *UserHandler) ListEndUsers(c echo.Context) error {
	users, err := h.userRepository.ListByType(models.UserTypeEndUser)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// ListAdmins lists all administrators; admin callers only
func (h *UserHandler) ListAdmins(c echo.Context) error {
	claims := getClaims(c)
	if claims.UserType != models.UserTypeAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
	}
	users, err := h.userRepository.ListByType(models.UserTypeAdmin)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// CreateAdmin creates an administrator account; admin callers only
func (h *UserHandler) CreateAdmin(c echo.Context) error {
	claims := getClaims(c)
	if claims.UserType != models.UserTypeAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
	}

	var req models.CreateAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := models.NewAdminUser(req.Email, req.Username)
	user.Password = string(hashed)
	profile := &models.AdminProfile{
		Role:             req.Role,
		AssignedSections: req.AssignedSections,
		IsActive:         true,
	}
	if err := h.userRepository.CreateAdminUser(user, profile); err != nil {
		return toHTTPError(err)
	}
	user.AdminProfile = profile
	return c.JSON(http.StatusCreated, user)
}

// SearchUsers searches users by username or name fragment
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Query parameter 'q' is required")
	}
	users, err := h.userRepository.Search(query)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, users)
}
