package repositories

import (
	"errors"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/pkg/errs"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id string) (*models.Comment, error)
	ListByPost(postID string) ([]models.Comment, error)
	SoftDelete(id string) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// Create creates a new comment
func (r *PostgresCommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetByID(id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("comment not found")
		}
		return nil, err
	}
	return &comment, nil
}

// ListByPost retrieves the comments of a post in creation order
func (r *PostgresCommentRepository) ListByPost(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// SoftDelete flags the comment deleted and replaces its content with a
// placeholder. Replies and reactions stay in place.
func (r *PostgresCommentRepository) SoftDelete(id string) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"content":    models.DeletedCommentPlaceholder,
		}).Error
}
