package repositories

import (
	"errors"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/pkg/errs"
	"gorm.io/gorm"
)

// ConversationRepository defines the interface for conversation data operations
type ConversationRepository interface {
	GetOrCreateDirect(userA, userB *models.User) (*models.Conversation, bool, error)
	CreateGroup(conv *models.Conversation, participants []models.User) error
	GetByID(id string) (*models.Conversation, error)
	ListForUser(userID string) ([]models.Conversation, error)
	AddParticipant(conv *models.Conversation, user *models.User) error
	RemoveParticipant(conv *models.Conversation, userID string) error
}

// PostgresConversationRepository implements ConversationRepository for PostgreSQL
type PostgresConversationRepository struct {
	db *gorm.DB
}

// NewPostgresConversationRepository creates a new PostgresConversationRepository
func NewPostgresConversationRepository(db *gorm.DB) *PostgresConversationRepository {
	return &PostgresConversationRepository{db: db}
}

// GetOrCreateDirect finds the direct conversation between two users or
// creates it. The lookup filters on both memberships and then requires
// exactly two participants: a group that happens to contain both users must
// not match. The whole lookup-then-create runs in one transaction.
func (r *PostgresConversationRepository) GetOrCreateDirect(userA, userB *models.User) (*models.Conversation, bool, error) {
	var result *models.Conversation
	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var candidates []models.Conversation
		err := tx.Preload("Participants").
			Joins("JOIN conversation_participants cp1 ON cp1.conversation_id = conversations.id AND cp1.user_id = ?", userA.ID).
			Joins("JOIN conversation_participants cp2 ON cp2.conversation_id = conversations.id AND cp2.user_id = ?", userB.ID).
			Where("conversations.is_group = ?", false).
			Find(&candidates).Error
		if err != nil {
			return err
		}
		for i := range candidates {
			if len(candidates[i].Participants) == 2 {
				result = &candidates[i]
				return nil
			}
		}

		conv := &models.Conversation{IsGroup: false}
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		if err := tx.Model(conv).Association("Participants").Append(userA, userB); err != nil {
			return err
		}
		result = conv
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if created {
		// reload with participants in deterministic state
		reloaded, err := r.GetByID(result.ID)
		if err != nil {
			return nil, false, err
		}
		return reloaded, true, nil
	}
	return result, false, nil
}

// CreateGroup creates a named group conversation with its initial participants
func (r *PostgresConversationRepository) CreateGroup(conv *models.Conversation, participants []models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		conv.IsGroup = true
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		return tx.Model(conv).Association("Participants").Append(&participants)
	})
}

// GetByID retrieves a conversation with its participants
func (r *PostgresConversationRepository) GetByID(id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.Preload("Participants").First(&conv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("conversation not found")
		}
		return nil, err
	}
	return &conv, nil
}

// ListForUser retrieves the user's conversations, newest first
func (r *PostgresConversationRepository) ListForUser(userID string) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := r.db.Preload("Participants").
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id AND cp.user_id = ?", userID).
		Order("conversations.created_at DESC").
		Find(&convs).Error
	if err != nil {
		return nil, err
	}
	return convs, nil
}

// AddParticipant adds a user to a conversation
func (r *PostgresConversationRepository) AddParticipant(conv *models.Conversation, user *models.User) error {
	return r.db.Model(conv).Association("Participants").Append(user)
}

// RemoveParticipant removes a user from a conversation
func (r *PostgresConversationRepository) RemoveParticipant(conv *models.Conversation, userID string) error {
	return r.db.Model(conv).Association("Participants").Delete(&models.User{Base: models.Base{ID: userID}})
}
