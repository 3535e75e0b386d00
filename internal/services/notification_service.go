package services

import (
	"encoding/json"
	"fmt"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/internal/repositories"
	"go.uber.org/zap"
)

// NotificationService derives notification records from domain events. It is
// invoked by the other services right after their mutation commits; creation
// is best-effort and a failure is logged, never propagated, so a broken
// notification write cannot roll back a friend-accept or a message send.
type NotificationService struct {
	notifications repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifRepo}
}

// FriendRequestCreated notifies the receiver of a new friend request
func (s *NotificationService) FriendRequestCreated(recipient, sender *models.User, req *models.FriendRequest) {
	s.create(&models.Notification{
		RecipientID: recipient.ID,
		ActorID:     &sender.ID,
		Type:        models.NotificationFriendRequest,
		Title:       fmt.Sprintf("%s sent you a friend request", sender.FullName()),
		RefType:     models.RefFriendRequest,
		RefID:       req.ID,
	})
}

// FriendRequestAccepted notifies the original sender that the request was accepted
func (s *NotificationService) FriendRequestAccepted(recipient, acceptor *models.User, friendship *models.Friendship) {
	s.create(&models.Notification{
		RecipientID: recipient.ID,
		ActorID:     &acceptor.ID,
		Type:        models.NotificationFriendAccept,
		Title:       fmt.Sprintf("%s accepted your friend request", acceptor.FullName()),
		RefType:     models.RefFriendship,
		RefID:       friendship.ID,
	})
}

// PostReacted notifies the post author of a reaction. Reacting to your own
// post produces nothing.
func (s *NotificationService) PostReacted(post *models.Post, reactor *models.User, reactionType models.ReactionType) {
	if post.AuthorID == reactor.ID {
		return
	}
	s.create(&models.Notification{
		RecipientID: post.AuthorID,
		ActorID:     &reactor.ID,
		Type:        models.NotificationPostLike,
		Title:       fmt.Sprintf("%s reacted with %s to your post", reactor.FullName(), lower(reactionType)),
		RefType:     models.RefPost,
		RefID:       post.ID,
		ExtraData:   mustJSON(map[string]string{"reaction_type": string(reactionType)}),
	})
}

// CommentReacted notifies the comment author of a reaction
func (s *NotificationService) CommentReacted(comment *models.Comment, reactor *models.User, reactionType models.ReactionType) {
	if comment.AuthorID == reactor.ID {
		return
	}
	s.create(&models.Notification{
		RecipientID: comment.AuthorID,
		ActorID:     &reactor.ID,
		Type:        models.NotificationCommentLike,
		Title:       fmt.Sprintf("%s reacted with %s to your comment", reactor.FullName(), lower(reactionType)),
		RefType:     models.RefComment,
		RefID:       comment.ID,
		ExtraData:   mustJSON(map[string]string{"reaction_type": string(reactionType), "post_id": comment.PostID}),
	})
}

// PostCommented notifies the post author of a new top-level comment
func (s *NotificationService) PostCommented(post *models.Post, commenter *models.User, comment *models.Comment) {
	if post.AuthorID == commenter.ID {
		return
	}
	s.create(&models.Notification{
		RecipientID: post.AuthorID,
		ActorID:     &commenter.ID,
		Type:        models.NotificationPostComment,
		Title:       fmt.Sprintf("%s commented on your post", commenter.FullName()),
		Message:     fmt.Sprintf("%s commented: '%s' on your post", commenter.FullName(), preview(comment.Content)),
		RefType:     models.RefComment,
		RefID:       comment.ID,
		ExtraData:   mustJSON(map[string]string{"post_id": post.ID}),
	})
}

// CommentReplied notifies the parent comment author of a reply
func (s *NotificationService) CommentReplied(parent *models.Comment, replier *models.User, reply *models.Comment) {
	if parent.AuthorID == replier.ID {
		return
	}
	s.create(&models.Notification{
		RecipientID: parent.AuthorID,
		ActorID:     &replier.ID,
		Type:        models.NotificationCommentReply,
		Title:       fmt.Sprintf("%s replied to your comment", replier.FullName()),
		Message:     fmt.Sprintf("%s replied: '%s' to your comment", replier.FullName(), preview(reply.Content)),
		RefType:     models.RefComment,
		RefID:       reply.ID,
		ExtraData:   mustJSON(map[string]string{"post_id": reply.PostID}),
	})
}

// MessageSent notifies one conversation participant of a new message
func (s *NotificationService) MessageSent(recipientID string, sender *models.User, conv *models.Conversation, msg *models.Message) {
	if recipientID == sender.ID {
		return
	}
	title := fmt.Sprintf("New message from %s", sender.FullName())
	if conv.IsGroup && conv.Name != "" {
		title = fmt.Sprintf("New message in %s", conv.Name)
	}
	s.create(&models.Notification{
		RecipientID: recipientID,
		ActorID:     &sender.ID,
		Type:        models.NotificationMessage,
		Title:       title,
		Message:     fmt.Sprintf("%s: %s", sender.FullName(), preview(msg.Content)),
		RefType:     models.RefMessage,
		RefID:       msg.ID,
		ExtraData:   mustJSON(map[string]string{"conversation_id": conv.ID}),
	})
}

func (s *NotificationService) create(n *models.Notification) {
	if n.Message == "" {
		n.Message = n.Title
	}
	if err := s.notifications.Create(n); err != nil {
		zap.L().Error("notification delivery failed",
			zap.String("type", string(n.Type)),
			zap.String("recipient_id", n.RecipientID),
			zap.Error(err))
	}
}

func preview(content string) string {
	const max = 50
	if len(content) > max {
		return content[:max] + "..."
	}
	return content
}

func lower(t models.ReactionType) string {
	b := []byte(t)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
