package repositories

import (
	"errors"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/pkg/errs"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	Create(msg *models.Message) error
	GetByID(id string) (*models.Message, error)
	ListByConversation(convID string, page, pageSize int) ([]models.Message, error)
	ListUnread(convID, userID string) ([]models.Message, error)
	AddRead(messageID, userID string) (int64, error)
	SetRead(messageID string) error
	UnreadCount(convID, userID string) (int64, error)
	TotalUnreadCount(userID string) (int64, error)
	LastMessage(convID string) (*models.Message, error)
}

type messageRead struct {
	MessageID string `gorm:"primaryKey;type:uuid"`
	UserID    string `gorm:"primaryKey;type:uuid"`
}

func (messageRead) TableName() string { return "message_reads" }

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// Create appends a message to a conversation
func (r *PostgresMessageRepository) Create(msg *models.Message) error {
	return r.db.Create(msg).Error
}

// GetByID retrieves a message with sender and read-by set
func (r *PostgresMessageRepository) GetByID(id string) (*models.Message, error) {
	var msg models.Message
	err := r.db.Preload("Sender").Preload("ReadBy").First(&msg, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("message not found")
		}
		return nil, err
	}
	return &msg, nil
}

// ListByConversation retrieves a page of messages, newest first
func (r *PostgresMessageRepository) ListByConversation(convID string, page, pageSize int) ([]models.Message, error) {
	var messages []models.Message
	offset := (page - 1) * pageSize
	err := r.db.Preload("Sender").Preload("ReadBy").
		Where("conversation_id = ?", convID).
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ListUnread retrieves messages in the conversation the user has neither
// sent nor acknowledged
func (r *PostgresMessageRepository) ListUnread(convID, userID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.unreadQuery(convID, userID).Order("created_at ASC").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// AddRead records the user's acknowledgement and returns the resulting
// read-by count. Duplicate acknowledgements are ignored.
func (r *PostgresMessageRepository) AddRead(messageID, userID string) (int64, error) {
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&messageRead{MessageID: messageID, UserID: userID}).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return 0, err
	}
	var count int64
	err = r.db.Model(&messageRead{}).Where("message_id = ?", messageID).Count(&count).Error
	return count, err
}

// SetRead marks the message fully read
func (r *PostgresMessageRepository) SetRead(messageID string) error {
	return r.db.Model(&models.Message{}).Where("id = ?", messageID).
		Update("is_read", true).Error
}

// UnreadCount counts messages in a conversation the user has not read
func (r *PostgresMessageRepository) UnreadCount(convID, userID string) (int64, error) {
	var count int64
	err := r.unreadQuery(convID, userID).Count(&count).Error
	return count, err
}

// TotalUnreadCount counts unread messages across every conversation the
// user participates in
func (r *PostgresMessageRepository) TotalUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Joins("JOIN conversation_participants cp ON cp.conversation_id = messages.conversation_id AND cp.user_id = ?", userID).
		Where("messages.sender_id <> ?", userID).
		Where("messages.id NOT IN (?)",
			r.db.Model(&messageRead{}).Select("message_id").Where("user_id = ?", userID)).
		Count(&count).Error
	return count, err
}

// LastMessage retrieves the newest message of a conversation, nil if empty
func (r *PostgresMessageRepository) LastMessage(convID string) (*models.Message, error) {
	var msg models.Message
	err := r.db.Preload("Sender").
		Where("conversation_id = ?", convID).
		Order("created_at DESC").First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

func (r *PostgresMessageRepository) unreadQuery(convID, userID string) *gorm.DB {
	return r.db.Model(&models.Message{}).
		Where("conversation_id = ?", convID).
		Where("sender_id <> ?", userID).
		Where("id NOT IN (?)",
			r.db.Model(&messageRead{}).Select("message_id").Where("user_id = ?", userID))
}
