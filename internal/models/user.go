package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// UserType discriminates the two user kinds sharing one auth identity
type UserType string

const (
	UserTypeAdmin   UserType = "ADMIN"
	UserTypeEndUser UserType = "END_USER"
)

// AdminRole is the role of an administrator
type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "SUPER_ADMIN"
	AdminRoleModerator  AdminRole = "MODERATOR"
)

// EndUserStatus is the account standing of an end-user
type EndUserStatus string

const (
	EndUserStatusActive   EndUserStatus = "ACTIVE"
	EndUserStatusInactive EndUserStatus = "INACTIVE"
	EndUserStatusBanned   EndUserStatus = "BANNED"
)

// User is the shared identity record. The specialization lives in the
// one-to-one profile row matching UserType.
type User struct {
	Base
	Email      string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Username   string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	FirstName  string    `json:"first_name" gorm:"size:150"`
	LastName   string    `json:"last_name" gorm:"size:150"`
	Password   string    `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	UserType   UserType  `json:"user_type" gorm:"size:20;index;not null"`
	IsVerified bool      `json:"is_verified" gorm:"default:false"`
	JoinedAt   time.Time `json:"joined_at" gorm:"autoCreateTime"`

	AdminProfile   *AdminProfile   `json:"admin_profile,omitempty" gorm:"foreignKey:UserID"`
	EndUserProfile *EndUserProfile `json:"end_user_profile,omitempty" gorm:"foreignKey:UserID"`
}

// AdminProfile carries the administrator specialization
type AdminProfile struct {
	Base
	UserID           string    `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Role             AdminRole `json:"role" gorm:"size:50;not null"`
	AssignedSections []string  `json:"assigned_sections" gorm:"serializer:json"`
	IsActive         bool      `json:"is_active" gorm:"default:true"`
}

// EndUserProfile carries the end-user specialization
type EndUserProfile struct {
	Base
	UserID   string        `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Bio      string        `json:"bio" gorm:"type:text"`
	Location string        `json:"location" gorm:"size:255"`
	Website  string        `json:"website" gorm:"size:255"`
	Status   EndUserStatus `json:"status" gorm:"size:20;default:'ACTIVE'"`
}

// NewAdminUser builds a user whose discriminator is forced to ADMIN.
func NewAdminUser(email, username string) *User {
	return &User{
		Email:    NormalizeEmail(email),
		Username: username,
		UserType: UserTypeAdmin,
	}
}

// NewEndUser builds a user whose discriminator is forced to END_USER.
func NewEndUser(email, username string) *User {
	return &User{
		Email:    NormalizeEmail(email),
		Username: username,
		UserType: UserTypeEndUser,
	}
}

// NormalizeEmail lowercases an address for the unique index
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FullName returns "first last", falling back to the username.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// IsEndUser reports whether the user is an end-user
func (u *User) IsEndUser() bool {
	return u.UserType == UserTypeEndUser
}

// UserCompact is the minimal user representation embedded in other payloads
type UserCompact struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ToCompact converts a User to its compact representation
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// RegisterRequest defines the request body for end-user registration
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=150"`
	FirstName string `json:"first_name" validate:"omitempty,max=150"`
	LastName  string `json:"last_name" validate:"omitempty,max=150"`
	Password  string `json:"password" validate:"required,min=8"`
	Bio       string `json:"bio,omitempty"`
	Location  string `json:"location,omitempty" validate:"omitempty,max=255"`
	Website   string `json:"website,omitempty" validate:"omitempty,url"`
}

// CreateAdminRequest defines the request body for creating an administrator
type CreateAdminRequest struct {
	Email            string    `json:"email" validate:"required,email"`
	Username         string    `json:"username" validate:"required,min=3,max=150"`
	Password         string    `json:"password" validate:"required,min=8"`
	Role             AdminRole `json:"role" validate:"required,oneof=SUPER_ADMIN MODERATOR"`
	AssignedSections []string  `json:"assigned_sections,omitempty"`
}

// SignInRequest defines the request body for signing in
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for updating an end-user profile
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	Bio       *string `json:"bio,omitempty"`
	Location  *string `json:"location,omitempty" validate:"omitempty,max=255"`
	Website   *string `json:"website,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   string   `json:"user_id"`
	Email    string   `json:"email"`
	UserType UserType `json:"user_type"`
	jwt.RegisteredClaims
}
