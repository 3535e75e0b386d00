package services

import (
	"time"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/internal/repositories"
	"github.com/anonto42/socialhub/backend/pkg/errs"
)

const (
	// TrendingWindow is the lookback for the trending ranking.
	TrendingWindow = 7 * 24 * time.Hour
	// TrendingLimit caps the trending listing.
	TrendingLimit = 10
	// DefaultFeedPageSize is the feed page size when the caller gives none.
	DefaultFeedPageSize = 20
)

// ContentService implements posts, threaded comments and typed reactions.
type ContentService struct {
	posts     repositories.PostRepository
	comments  repositories.CommentRepository
	reactions repositories.ReactionRepository
	friends   repositories.FriendRepository
	users     repositories.UserRepository
	notifier  *NotificationService
}

// NewContentService creates a new ContentService
func NewContentService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, reactionRepo repositories.ReactionRepository, friendRepo repositories.FriendRepository, userRepo repositories.UserRepository, notifier *NotificationService) *ContentService {
	return &ContentService{
		posts:     postRepo,
		comments:  commentRepo,
		reactions: reactionRepo,
		friends:   friendRepo,
		users:     userRepo,
		notifier:  notifier,
	}
}

// CreatePost creates a post for an end-user author
func (s *ContentService) CreatePost(authorID, content string, isPublic bool) (*models.Post, error) {
	author, err := s.users.GetByID(authorID)
	if err != nil {
		return nil, err
	}
	if !author.IsEndUser() {
		return nil, errs.Permission("only end-users can create posts")
	}
	post := &models.Post{AuthorID: authorID, Content: content, IsPublic: isPublic}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies content/visibility changes; author only
func (s *ContentService) UpdatePost(postID, actorID string, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, errs.Permission("only the author can modify a post")
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.IsPublic != nil {
		post.IsPublic = *req.IsPublic
	}
	if err := s.posts.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// ArchivePost soft-hides a post from every listing; author only
func (s *ContentService) ArchivePost(postID, actorID string) error {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return errs.Permission("only the author can archive a post")
	}
	if post.IsArchived {
		return errs.State("post is already archived")
	}
	post.IsArchived = true
	return s.posts.Update(post)
}

// GetPost retrieves a post the viewer is allowed to see. Archived posts and
// private posts of non-friends are reported as absent, not forbidden.
func (s *ContentService) GetPost(postID, viewerID string) (*models.Post, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}
	visible, err := s.canView(post, viewerID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, errs.NotFound("post not found")
	}
	return post, nil
}

// canView recomputes visibility against the live friendship graph: public,
// or own, or private-from-a-friend.
func (s *ContentService) canView(post *models.Post, viewerID string) (bool, error) {
	if post.IsArchived {
		return false, nil
	}
	if post.IsPublic || post.AuthorID == viewerID {
		return true, nil
	}
	_, err := s.friends.GetFriendship(post.AuthorID, viewerID)
	if err != nil {
		if errs.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListFeed retrieves a page of posts visible to the viewer, newest first
func (s *ContentService) ListFeed(viewerID string, page, limit int) ([]models.Post, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultFeedPageSize
	}
	friendIDs, err := s.friends.ListFriendIDs(viewerID)
	if err != nil {
		return nil, err
	}
	return s.posts.ListVisible(viewerID, friendIDs, page, limit)
}

// ListByAuthor retrieves the author's own non-archived posts, newest first
func (s *ContentService) ListByAuthor(authorID string) ([]models.Post, error) {
	return s.posts.ListByAuthor(authorID)
}

// Trending ranks posts from the last seven days by reactions, then
// comments, top ten. Ties fall back to store order.
func (s *ContentService) Trending(viewerID string) ([]models.Post, error) {
	friendIDs, err := s.friends.ListFriendIDs(viewerID)
	if err != nil {
		return nil, err
	}
	since := time.Now().Add(-TrendingWindow)
	return s.posts.Trending(viewerID, friendIDs, since, TrendingLimit)
}

// AddComment adds a comment, optionally as a reply. The parent must belong
// to the same post.
func (s *ContentService) AddComment(postID, authorID, content string, parentID *string) (*models.Comment, error) {
	post, err := s.GetPost(postID, authorID)
	if err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(authorID)
	if err != nil {
		return nil, err
	}
	if !author.IsEndUser() {
		return nil, errs.Permission("only end-users can comment")
	}

	var parent *models.Comment
	if parentID != nil {
		parent, err = s.comments.GetByID(*parentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, errs.Validation("parent comment does not belong to this post")
		}
	}

	comment := &models.Comment{PostID: postID, AuthorID: authorID, Content: content, ParentID: parentID}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}

	if parent != nil {
		s.notifier.CommentReplied(parent, author, comment)
	} else {
		s.notifier.PostCommented(post, author, comment)
	}
	return comment, nil
}

// DeleteComment soft-deletes a comment; author only. Replies and reactions
// survive, pointing at the placeholder.
func (s *ContentService) DeleteComment(commentID, actorID string) error {
	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID {
		return errs.Permission("only the author can delete a comment")
	}
	if comment.IsDeleted {
		return errs.State("comment is already deleted")
	}
	return s.comments.SoftDelete(commentID)
}

// ListComments retrieves a post's comments, oldest first, for a viewer
// allowed to see the post
func (s *ContentService) ListComments(postID, viewerID string) ([]models.Comment, error) {
	if _, err := s.GetPost(postID, viewerID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(postID)
}

// React adds or updates the actor's reaction on a post or comment. Returns
// true when an existing reaction was updated in place.
func (s *ContentService) React(actorID string, targetType models.ReactionTargetType, targetID string, reactionType models.ReactionType) (bool, error) {
	if !models.ValidReactionType(reactionType) {
		return false, errs.Validation("invalid reaction type")
	}
	actor, err := s.users.GetByID(actorID)
	if err != nil {
		return false, err
	}

	var post *models.Post
	var comment *models.Comment
	switch targetType {
	case models.ReactionTargetPost:
		post, err = s.GetPost(targetID, actorID)
	case models.ReactionTargetComment:
		comment, err = s.comments.GetByID(targetID)
	default:
		return false, errs.Validation("reaction target must be a post or a comment")
	}
	if err != nil {
		return false, err
	}

	reaction := &models.Reaction{
		UserID:     actorID,
		TargetType: targetType,
		TargetID:   targetID,
		Type:       reactionType,
	}
	created, err := s.reactions.Upsert(reaction)
	if err != nil {
		return false, err
	}

	// only the first reaction on a target notifies; type changes are silent
	if created {
		if post != nil {
			s.notifier.PostReacted(post, actor, reactionType)
		} else if comment != nil {
			s.notifier.CommentReacted(comment, actor, reactionType)
		}
	}
	return !created, nil
}

// Unreact removes the actor's reaction from a target
func (s *ContentService) Unreact(actorID string, targetType models.ReactionTargetType, targetID string) error {
	return s.reactions.Delete(actorID, targetType, targetID)
}

// ListReactions retrieves reactions on a target, optionally filtered by type
func (s *ContentService) ListReactions(targetType models.ReactionTargetType, targetID string, typeFilter models.ReactionType) ([]models.Reaction, error) {
	return s.reactions.ListByTarget(targetType, targetID, typeFilter)
}
