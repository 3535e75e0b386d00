package repositories

import (
	"errors"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/pkg/errs"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	Get(userID string, targetType models.ReactionTargetType, targetID string) (*models.Reaction, error)
	Upsert(reaction *models.Reaction) (bool, error)
	Delete(userID string, targetType models.ReactionTargetType, targetID string) error
	ListByTarget(targetType models.ReactionTargetType, targetID string, typeFilter models.ReactionType) ([]models.Reaction, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// Get retrieves the user's reaction on a target
func (r *PostgresReactionRepository) Get(userID string, targetType models.ReactionTargetType, targetID string) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("no reaction found")
		}
		return nil, err
	}
	return &reaction, nil
}

// Upsert creates the reaction or, when the user already reacted to the
// target, updates the existing row's type. Returns true when a row was
// created. A concurrent create loses the unique-index race and falls back
// to updating the winner's row.
func (r *PostgresReactionRepository) Upsert(reaction *models.Reaction) (bool, error) {
	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.Where("user_id = ? AND target_type = ? AND target_id = ?",
			reaction.UserID, reaction.TargetType, reaction.TargetID).
			First(&existing).Error
		if err == nil {
			return tx.Model(&existing).Update("type", reaction.Type).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(reaction).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return tx.Model(&models.Reaction{}).
					Where("user_id = ? AND target_type = ? AND target_id = ?",
						reaction.UserID, reaction.TargetType, reaction.TargetID).
					Update("type", reaction.Type).Error
			}
			return err
		}
		created = true
		return nil
	})
	return created, err
}

// Delete removes the user's reaction on a target
func (r *PostgresReactionRepository) Delete(userID string, targetType models.ReactionTargetType, targetID string) error {
	res := r.db.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Delete(&models.Reaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("no reaction found")
	}
	return nil
}

// ListByTarget retrieves all reactions on a target, optionally filtered by type
func (r *PostgresReactionRepository) ListByTarget(targetType models.ReactionTargetType, targetID string, typeFilter models.ReactionType) ([]models.Reaction, error) {
	var reactions []models.Reaction
	q := r.db.Preload("User").Where("target_type = ? AND target_id = ?", targetType, targetID)
	if typeFilter != "" {
		q = q.Where("type = ?", typeFilter)
	}
	if err := q.Find(&reactions).Error; err != nil {
		return nil, err
	}
	return reactions, nil
}
