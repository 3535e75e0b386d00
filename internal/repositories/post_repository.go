package repositories

import (
	"errors"
	"time"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/pkg/errs"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	Update(post *models.Post) error
	ListVisible(viewerID string, friendIDs []string, page, limit int) ([]models.Post, error)
	ListByAuthor(authorID string) ([]models.Post, error)
	Trending(viewerID string, friendIDs []string, since time.Time, limit int) ([]models.Post, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// Create creates a new post
func (r *PostgresPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetByID retrieves a post with its author
func (r *PostgresPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("post not found")
		}
		return nil, err
	}
	return &post, nil
}

// Update saves changes to a post
func (r *PostgresPostRepository) Update(post *models.Post) error {
	return r.db.Omit("Author").Save(post).Error
}

// visibleScope filters to posts the viewer may see: public posts, private
// posts of current friends, and the viewer's own posts. Archived posts are
// excluded everywhere. Recomputed per query against the live friendship set.
func (r *PostgresPostRepository) visibleScope(viewerID string, friendIDs []string) *gorm.DB {
	visibility := r.db.Where("posts.is_public = ?", true).
		Or("posts.author_id = ?", viewerID)
	if len(friendIDs) > 0 {
		visibility = visibility.Or("posts.is_public = ? AND posts.author_id IN ?", false, friendIDs)
	}
	return r.db.Model(&models.Post{}).
		Where("posts.is_archived = ?", false).
		Where(visibility)
}

// ListVisible retrieves a page of visible posts, newest first
func (r *PostgresPostRepository) ListVisible(viewerID string, friendIDs []string, page, limit int) ([]models.Post, error) {
	var posts []models.Post
	offset := (page - 1) * limit
	err := r.visibleScope(viewerID, friendIDs).
		Preload("Author").
		Order("posts.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByAuthor retrieves the author's non-archived posts, newest first
func (r *PostgresPostRepository) ListByAuthor(authorID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("author_id = ? AND is_archived = ?", authorID, false).
		Order("created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Trending ranks visible posts created since the cutoff by reaction count,
// then comment count.
func (r *PostgresPostRepository) Trending(viewerID string, friendIDs []string, since time.Time, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.visibleScope(viewerID, friendIDs).
		Select("posts.*, " +
			"(SELECT COUNT(*) FROM reactions WHERE reactions.target_type = 'POST' AND reactions.target_id = posts.id) AS reaction_count, " +
			"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count").
		Where("posts.created_at >= ?", since).
		Preload("Author").
		Order("reaction_count DESC, comment_count DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
