package repositories

import (
	"errors"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/pkg/errs"
	"gorm.io/gorm"
)

// FriendRepository defines the interface for friend request and friendship
// data operations
type FriendRepository interface {
	CreateRequest(req *models.FriendRequest) error
	GetRequestByID(id string) (*models.FriendRequest, error)
	GetRequestBetween(senderID, receiverID string) (*models.FriendRequest, error)
	ListReceivedPending(userID string) ([]models.FriendRequest, error)
	ListSent(userID string) ([]models.FriendRequest, error)
	ReopenRequest(id string) error
	SettleRequest(id string, status models.FriendRequestStatus) error
	AcceptRequest(req *models.FriendRequest) (*models.Friendship, error)
	GetFriendship(userA, userB string) (*models.Friendship, error)
	DeleteFriendship(id string) error
	ListFriendIDs(userID string) ([]string, error)
	ListFriends(userID string) ([]models.User, error)
}

// PostgresFriendRepository implements FriendRepository for PostgreSQL
type PostgresFriendRepository struct {
	db *gorm.DB
}

// NewPostgresFriendRepository creates a new PostgresFriendRepository
func NewPostgresFriendRepository(db *gorm.DB) *PostgresFriendRepository {
	return &PostgresFriendRepository{db: db}
}

// CreateRequest creates a new pending friend request
func (r *PostgresFriendRepository) CreateRequest(req *models.FriendRequest) error {
	req.Status = models.FriendRequestPending
	if err := r.db.Create(req).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Validation("friend request already sent")
		}
		return err
	}
	return nil
}

// GetRequestByID retrieves a friend request by ID
func (r *PostgresFriendRepository) GetRequestByID(id string) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.Preload("Sender").Preload("Receiver").First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("friend request not found")
		}
		return nil, err
	}
	return &req, nil
}

// GetRequestBetween retrieves the request for an ordered (sender, receiver) pair
func (r *PostgresFriendRepository) GetRequestBetween(senderID, receiverID string) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("friend request not found")
		}
		return nil, err
	}
	return &req, nil
}

// ListReceivedPending retrieves pending requests addressed to the user
func (r *PostgresFriendRepository) ListReceivedPending(userID string) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.Preload("Sender").
		Where("receiver_id = ? AND status = ?", userID, models.FriendRequestPending).
		Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ListSent retrieves all requests the user has sent
func (r *PostgresFriendRepository) ListSent(userID string) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.Preload("Receiver").
		Where("sender_id = ?", userID).
		Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ReopenRequest flips a settled request back to pending. Re-sending after a
// rejection or an unfriend reuses the row because the (sender, receiver)
// pair is unique.
func (r *PostgresFriendRepository) ReopenRequest(id string) error {
	return r.db.Model(&models.FriendRequest{}).Where("id = ?", id).
		Update("status", models.FriendRequestPending).Error
}

// SettleRequest sets the final status of a request
func (r *PostgresFriendRepository) SettleRequest(id string, status models.FriendRequestStatus) error {
	return r.db.Model(&models.FriendRequest{}).Where("id = ?", id).
		Update("status", status).Error
}

// AcceptRequest settles the request and creates the friendship edge in one
// transaction. A concurrent accept loses the insert race on the unique pair
// index and reads back the edge the winner created.
func (r *PostgresFriendRepository) AcceptRequest(req *models.FriendRequest) (*models.Friendship, error) {
	user1, user2 := models.NormalizePair(req.SenderID, req.ReceiverID)
	var edge models.Friendship
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.FriendRequest{}).Where("id = ?", req.ID).
			Update("status", models.FriendRequestAccepted).Error; err != nil {
			return err
		}
		err := tx.Where("user1_id = ? AND user2_id = ?", user1, user2).
			FirstOrCreate(&edge, models.Friendship{User1ID: user1, User2ID: user2}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return tx.First(&edge, "user1_id = ? AND user2_id = ?", user1, user2).Error
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

// GetFriendship retrieves the edge between two users regardless of order
func (r *PostgresFriendRepository) GetFriendship(userA, userB string) (*models.Friendship, error) {
	user1, user2 := models.NormalizePair(userA, userB)
	var edge models.Friendship
	err := r.db.Where("user1_id = ? AND user2_id = ?", user1, user2).First(&edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("friendship not found")
		}
		return nil, err
	}
	return &edge, nil
}

// DeleteFriendship removes a friendship edge
func (r *PostgresFriendRepository) DeleteFriendship(id string) error {
	return r.db.Delete(&models.Friendship{}, "id = ?", id).Error
}

// ListFriendIDs returns the ids of everyone connected to the user
func (r *PostgresFriendRepository) ListFriendIDs(userID string) ([]string, error) {
	var edges []models.Friendship
	err := r.db.Where("user1_id = ? OR user2_id = ?", userID, userID).Find(&edges).Error
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(edges))
	for i := range edges {
		ids = append(ids, edges[i].OtherUser(userID))
	}
	return ids, nil
}

// ListFriends retrieves the user records on the far side of every edge
func (r *PostgresFriendRepository) ListFriends(userID string) ([]models.User, error) {
	ids, err := r.ListFriendIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var friends []models.User
	if err := r.db.Where("id IN ?", ids).Find(&friends).Error; err != nil {
		return nil, err
	}
	return friends, nil
}
