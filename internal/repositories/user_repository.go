package repositories

import (
	"errors"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/pkg/errs"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateEndUser(user *models.User, profile *models.EndUserProfile) error
	CreateAdminUser(user *models.User, profile *models.AdminProfile) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdateEndUserProfile(profile *models.EndUserProfile) error
	ListByType(userType models.UserType) ([]models.User, error)
	ListEndUsersExcluding(excludeIDs []string, limit int) ([]models.User, error)
	Search(query string) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateEndUser creates a user row together with its end-user profile
func (r *PostgresUserRepository) CreateEndUser(user *models.User, profile *models.EndUserProfile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errs.Validation("a user with this email or username already exists")
			}
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
}

// CreateAdminUser creates a user row together with its admin profile
func (r *PostgresUserRepository) CreateAdminUser(user *models.User, profile *models.AdminProfile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errs.Validation("a user with this email or username already exists")
			}
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
}

// GetByID retrieves a user and its specialization profile
func (r *PostgresUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("AdminProfile").Preload("EndUserProfile").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by normalized email
func (r *PostgresUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("AdminProfile").Preload("EndUserProfile").
		First(&user, "email = ?", models.NormalizeEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// Update saves changes to a user row
func (r *PostgresUserRepository) Update(user *models.User) error {
	return r.db.Omit("AdminProfile", "EndUserProfile").Save(user).Error
}

// UpdateEndUserProfile saves changes to an end-user profile
func (r *PostgresUserRepository) UpdateEndUserProfile(profile *models.EndUserProfile) error {
	return r.db.Save(profile).Error
}

// ListByType retrieves all users of one kind
func (r *PostgresUserRepository) ListByType(userType models.UserType) ([]models.User, error) {
	var users []models.User
	q := r.db.Where("user_type = ?", userType)
	if userType == models.UserTypeAdmin {
		q = q.Preload("AdminProfile")
	} else {
		q = q.Preload("EndUserProfile")
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListEndUsersExcluding retrieves end-users outside the given id set, in
// store order. Used for friend suggestions.
func (r *PostgresUserRepository) ListEndUsersExcluding(excludeIDs []string, limit int) ([]models.User, error) {
	var users []models.User
	q := r.db.Where("user_type = ?", models.UserTypeEndUser)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	if err := q.Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Search searches for users by username or email (case-insensitive)
func (r *PostgresUserRepository) Search(query string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + query + "%"
	err := r.db.Where("LOWER(username) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
