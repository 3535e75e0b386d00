package models

// FriendRequestStatus tracks the lifecycle of a friend request. Rows are
// never deleted; accept and reject settle the status.
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "PENDING"
	FriendRequestAccepted FriendRequestStatus = "ACCEPTED"
	FriendRequestRejected FriendRequestStatus = "REJECTED"
)

// FriendRequest represents a friend request between two end-users
type FriendRequest struct {
	Base
	SenderID   string              `json:"sender_id" gorm:"type:uuid;index;uniqueIndex:idx_sender_receiver;not null"`
	ReceiverID string              `json:"receiver_id" gorm:"type:uuid;index;uniqueIndex:idx_sender_receiver;not null"`
	Status     FriendRequestStatus `json:"status" gorm:"size:20;default:'PENDING'"`

	Sender   *User `json:"sender_details,omitempty" gorm:"foreignKey:SenderID"`
	Receiver *User `json:"receiver_details,omitempty" gorm:"foreignKey:ReceiverID"`
}

// Friendship is a symmetric edge between two end-users. The pair is stored
// in normalized order (User1ID < User2ID) so the unique index covers both
// orderings.
type Friendship struct {
	Base
	User1ID string `json:"user1_id" gorm:"type:uuid;index;uniqueIndex:idx_friend_pair;not null"`
	User2ID string `json:"user2_id" gorm:"type:uuid;index;uniqueIndex:idx_friend_pair;not null"`
}

// NormalizePair orders two user IDs for friendship storage
func NormalizePair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

// OtherUser resolves the friend on the far side of the edge.
func (f *Friendship) OtherUser(userID string) string {
	if f.User1ID == userID {
		return f.User2ID
	}
	return f.User1ID
}

// CreateFriendRequestRequest defines the request body for sending a friend request
type CreateFriendRequestRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required,uuid"`
}

// UnfriendRequest defines the request body for removing a friendship
type UnfriendRequest struct {
	FriendID string `json:"friend_id" validate:"required,uuid"`
}
