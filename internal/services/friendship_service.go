package services

import (
	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/internal/repositories"
	"github.com/anonto42/socialhub/backend/pkg/errs"
)

// DefaultSuggestionLimit caps friend suggestions per request.
const DefaultSuggestionLimit = 10

// FriendshipService implements the friend request lifecycle and the
// friendship graph operations.
type FriendshipService struct {
	users    repositories.UserRepository
	friends  repositories.FriendRepository
	notifier *NotificationService
}

// NewFriendshipService creates a new FriendshipService
func NewFriendshipService(userRepo repositories.UserRepository, friendRepo repositories.FriendRepository, notifier *NotificationService) *FriendshipService {
	return &FriendshipService{users: userRepo, friends: friendRepo, notifier: notifier}
}

// SendRequest creates a pending friend request from sender to receiver.
// A request row settled by an earlier reject or unfriend is reopened instead
// of duplicated, since the (sender, receiver) pair is unique.
func (s *FriendshipService) SendRequest(senderID, receiverID string) (*models.FriendRequest, error) {
	if senderID == receiverID {
		return nil, errs.Validation("you cannot send a friend request to yourself")
	}

	sender, err := s.users.GetByID(senderID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.users.GetByID(receiverID)
	if err != nil {
		return nil, err
	}
	if !sender.IsEndUser() || !receiver.IsEndUser() {
		return nil, errs.Validation("friend requests are only available between end-users")
	}

	if _, err := s.friends.GetFriendship(senderID, receiverID); err == nil {
		return nil, errs.Validation("you are already friends with this user")
	} else if !errs.IsNotFound(err) {
		return nil, err
	}

	if reverse, err := s.friends.GetRequestBetween(receiverID, senderID); err == nil {
		if reverse.Status == models.FriendRequestPending {
			return nil, errs.Validation("this user has already sent you a friend request")
		}
	} else if !errs.IsNotFound(err) {
		return nil, err
	}

	existing, err := s.friends.GetRequestBetween(senderID, receiverID)
	switch {
	case err == nil:
		if existing.Status == models.FriendRequestPending {
			return nil, errs.Validation("friend request already sent")
		}
		if err := s.friends.ReopenRequest(existing.ID); err != nil {
			return nil, err
		}
		existing.Status = models.FriendRequestPending
		s.notifier.FriendRequestCreated(receiver, sender, existing)
		return existing, nil
	case !errs.IsNotFound(err):
		return nil, err
	}

	req := &models.FriendRequest{SenderID: senderID, ReceiverID: receiverID}
	if err := s.friends.CreateRequest(req); err != nil {
		return nil, err
	}
	s.notifier.FriendRequestCreated(receiver, sender, req)
	return req, nil
}

// AcceptRequest settles a pending request and creates the friendship edge.
// Accepting twice cannot produce a second edge.
func (s *FriendshipService) AcceptRequest(requestID, actorID string) (*models.Friendship, error) {
	req, err := s.friends.GetRequestByID(requestID)
	if err != nil {
		return nil, err
	}
	if req.ReceiverID != actorID {
		return nil, errs.Permission("you can only accept requests sent to you")
	}
	if req.Status != models.FriendRequestPending {
		return nil, errs.State("this request has already been processed")
	}

	edge, err := s.friends.AcceptRequest(req)
	if err != nil {
		return nil, err
	}

	acceptor, err := s.users.GetByID(actorID)
	if err == nil && req.Sender != nil {
		s.notifier.FriendRequestAccepted(req.Sender, acceptor, edge)
	}
	return edge, nil
}

// RejectRequest settles a pending request as rejected. No edge is created.
func (s *FriendshipService) RejectRequest(requestID, actorID string) error {
	req, err := s.friends.GetRequestByID(requestID)
	if err != nil {
		return err
	}
	if req.ReceiverID != actorID {
		return errs.Permission("you can only reject requests sent to you")
	}
	if req.Status != models.FriendRequestPending {
		return errs.State("this request has already been processed")
	}
	return s.friends.SettleRequest(req.ID, models.FriendRequestRejected)
}

// ListFriends returns everyone connected to the user by a friendship edge
func (s *FriendshipService) ListFriends(userID string) ([]models.User, error) {
	return s.friends.ListFriends(userID)
}

// AreFriends reports whether an edge exists between the two users, in
// either stored order.
func (s *FriendshipService) AreFriends(userA, userB string) (bool, error) {
	_, err := s.friends.GetFriendship(userA, userB)
	if err != nil {
		if errs.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Unfriend deletes the friendship edge. Re-friending requires a new request
// cycle.
func (s *FriendshipService) Unfriend(userID, friendID string) error {
	edge, err := s.friends.GetFriendship(userID, friendID)
	if err != nil {
		if errs.IsNotFound(err) {
			return errs.NotFound("you are not friends with this user")
		}
		return err
	}
	return s.friends.DeleteFriendship(edge.ID)
}

// Suggest returns up to limit end-users who are neither the user nor a
// current friend. Store default ordering, deliberately unranked.
func (s *FriendshipService) Suggest(userID string, limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	friendIDs, err := s.friends.ListFriendIDs(userID)
	if err != nil {
		return nil, err
	}
	exclude := append(friendIDs, userID)
	return s.users.ListEndUsersExcluding(exclude, limit)
}

// ListReceivedPending returns pending requests addressed to the user
func (s *FriendshipService) ListReceivedPending(userID string) ([]models.FriendRequest, error) {
	return s.friends.ListReceivedPending(userID)
}

// ListSent returns all requests the user has sent
func (s *FriendshipService) ListSent(userID string) ([]models.FriendRequest, error) {
	return s.friends.ListSent(userID)
}
