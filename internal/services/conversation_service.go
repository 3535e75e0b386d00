package services

import (
	"strings"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/internal/repositories"
	"github.com/anonto42/socialhub/backend/pkg/errs"
)

// DefaultMessagePageSize is the message page size when the caller gives none.
const DefaultMessagePageSize = 20

// ConversationSummary is a conversation enriched with the viewer-dependent
// fields a listing needs.
type ConversationSummary struct {
	Conversation models.Conversation `json:"conversation"`
	DisplayName  string              `json:"display_name"`
	LastMessage  *models.Message     `json:"last_message,omitempty"`
	UnreadCount  int64               `json:"unread_count"`
}

// ConversationService implements direct/group conversations, messaging and
// per-message read tracking.
type ConversationService struct {
	convs    repositories.ConversationRepository
	msgs     repositories.MessageRepository
	users    repositories.UserRepository
	notifier *NotificationService
}

// NewConversationService creates a new ConversationService
func NewConversationService(convRepo repositories.ConversationRepository, msgRepo repositories.MessageRepository, userRepo repositories.UserRepository, notifier *NotificationService) *ConversationService {
	return &ConversationService{convs: convRepo, msgs: msgRepo, users: userRepo, notifier: notifier}
}

// StartDirect finds or creates the direct conversation between the actor
// and one other user. Calling it twice, in either order, yields the same
// conversation.
func (s *ConversationService) StartDirect(actorID, otherID string) (*models.Conversation, error) {
	if actorID == otherID {
		return nil, errs.Validation("you cannot start a conversation with yourself")
	}
	actor, err := s.users.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	other, err := s.users.GetByID(otherID)
	if err != nil {
		return nil, err
	}
	conv, _, err := s.convs.GetOrCreateDirect(actor, other)
	return conv, err
}

// CreateGroup creates a named group conversation. The actor is always a
// participant.
func (s *ConversationService) CreateGroup(actorID, name string, participantIDs []string) (*models.Conversation, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.Validation("group conversations require a name")
	}

	ids := participantIDs
	if !containsID(ids, actorID) {
		ids = append(ids, actorID)
	}
	participants := make([]models.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.GetByID(id)
		if err != nil {
			return nil, err
		}
		participants = append(participants, *user)
	}

	conv := &models.Conversation{IsGroup: true, Name: name}
	if err := s.convs.CreateGroup(conv, participants); err != nil {
		return nil, err
	}
	return s.convs.GetByID(conv.ID)
}

// AddParticipant adds a user to a group conversation
func (s *ConversationService) AddParticipant(convID, userID string) (*models.Conversation, error) {
	conv, err := s.convs.GetByID(convID)
	if err != nil {
		return nil, err
	}
	if !conv.IsGroup {
		return nil, errs.Validation("participants can only be added to group conversations")
	}
	if conv.HasParticipant(userID) {
		return conv, nil
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if err := s.convs.AddParticipant(conv, user); err != nil {
		return nil, err
	}
	return s.convs.GetByID(convID)
}

// RemoveParticipant removes a user from a group conversation. The last
// participant cannot be removed.
func (s *ConversationService) RemoveParticipant(convID, userID string) (*models.Conversation, error) {
	conv, err := s.convs.GetByID(convID)
	if err != nil {
		return nil, err
	}
	if !conv.IsGroup {
		return nil, errs.Validation("participants can only be removed from group conversations")
	}
	if !conv.HasParticipant(userID) {
		return nil, errs.NotFound("user is not a participant in this conversation")
	}
	if len(conv.Participants) <= 1 {
		return nil, errs.Validation("cannot remove the last participant from a conversation")
	}
	if err := s.convs.RemoveParticipant(conv, userID); err != nil {
		return nil, err
	}
	return s.convs.GetByID(convID)
}

// SendMessage appends a message and fans out one notification per other
// participant.
func (s *ConversationService) SendMessage(convID, senderID, content string) (*models.Message, error) {
	conv, err := s.convs.GetByID(convID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(senderID) {
		return nil, errs.Permission("you are not a participant in this conversation")
	}

	var sender *models.User
	for i := range conv.Participants {
		if conv.Participants[i].ID == senderID {
			sender = &conv.Participants[i]
			break
		}
	}

	msg := &models.Message{ConversationID: convID, SenderID: senderID, Content: content}
	if err := s.msgs.Create(msg); err != nil {
		return nil, err
	}

	for i := range conv.Participants {
		s.notifier.MessageSent(conv.Participants[i].ID, sender, conv, msg)
	}
	return msg, nil
}

// MarkRead records the reader's acknowledgement. It is a no-op when the
// reader is the sender or not a participant. The message flips to read once
// everyone but the sender has acknowledged it.
func (s *ConversationService) MarkRead(messageID, readerID string) error {
	msg, err := s.msgs.GetByID(messageID)
	if err != nil {
		return err
	}
	conv, err := s.convs.GetByID(msg.ConversationID)
	if err != nil {
		return err
	}
	return s.markReadLoaded(msg, conv, readerID)
}

func (s *ConversationService) markReadLoaded(msg *models.Message, conv *models.Conversation, readerID string) error {
	if readerID == msg.SenderID || !conv.HasParticipant(readerID) {
		return nil
	}
	count, err := s.msgs.AddRead(msg.ID, readerID)
	if err != nil {
		return err
	}
	if !msg.IsRead && count >= int64(len(conv.Participants)-1) {
		return s.msgs.SetRead(msg.ID)
	}
	return nil
}

// GetConversation retrieves a conversation for a participant and marks its
// unread messages read.
func (s *ConversationService) GetConversation(convID, viewerID string) (*models.Conversation, error) {
	conv, err := s.convs.GetByID(convID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(viewerID) {
		return nil, errs.Permission("you are not a participant in this conversation")
	}
	unread, err := s.msgs.ListUnread(convID, viewerID)
	if err != nil {
		return nil, err
	}
	for i := range unread {
		if err := s.markReadLoaded(&unread[i], conv, viewerID); err != nil {
			return nil, err
		}
	}
	return conv, nil
}

// ListMessages retrieves a page of a conversation's messages, newest first
func (s *ConversationService) ListMessages(convID, viewerID string, page, pageSize int) ([]models.Message, error) {
	conv, err := s.convs.GetByID(convID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(viewerID) {
		return nil, errs.Permission("you are not a participant in this conversation")
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultMessagePageSize
	}
	return s.msgs.ListByConversation(convID, page, pageSize)
}

// UnreadCount counts messages in the conversation the user has not read
func (s *ConversationService) UnreadCount(convID, userID string) (int64, error) {
	return s.msgs.UnreadCount(convID, userID)
}

// TotalUnread counts unread messages across all of the user's conversations
func (s *ConversationService) TotalUnread(userID string) (int64, error) {
	return s.msgs.TotalUnreadCount(userID)
}

// ListConversations summarizes the user's conversations, newest first
func (s *ConversationService) ListConversations(userID string) ([]ConversationSummary, error) {
	convs, err := s.convs.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]ConversationSummary, 0, len(convs))
	for i := range convs {
		last, err := s.msgs.LastMessage(convs[i].ID)
		if err != nil {
			return nil, err
		}
		unread, err := s.msgs.UnreadCount(convs[i].ID, userID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ConversationSummary{
			Conversation: convs[i],
			DisplayName:  convs[i].DisplayName(userID),
			LastMessage:  last,
			UnreadCount:  unread,
		})
	}
	return summaries, nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
