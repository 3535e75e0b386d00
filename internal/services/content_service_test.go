package services

import (
	"testing"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contentFixture struct {
	svc           *ContentService
	friendships   *FriendshipService
	users         *fakeUserRepo
	reactions     *fakeReactionRepo
	notifications *fakeNotificationRepo
}

func newContentFixture() *contentFixture {
	users := newFakeUserRepo()
	friends := newFakeFriendRepo(users)
	posts := newFakePostRepo()
	comments := newFakeCommentRepo()
	reactions := newFakeReactionRepo()
	notifications := newFakeNotificationRepo()
	notifier := NewNotificationService(notifications)
	return &contentFixture{
		svc:           NewContentService(posts, comments, reactions, friends, users, notifier),
		friendships:   NewFriendshipService(users, friends, notifier),
		users:         users,
		reactions:     reactions,
		notifications: notifications,
	}
}

func (f *contentFixture) befriend(t *testing.T, a, b *models.User) {
	t.Helper()
	req, err := f.friendships.SendRequest(a.ID, b.ID)
	require.NoError(t, err)
	_, err = f.friendships.AcceptRequest(req.ID, b.ID)
	require.NoError(t, err)
}

func TestCreatePostAdminRejected(t *testing.T) {
	f := newContentFixture()
	admin := f.users.addAdmin("root")

	_, err := f.svc.CreatePost(admin.ID, "hello", true)
	assert.Equal(t, errs.KindPermission, errs.KindOf(err))
}

func TestPrivatePostVisibility(t *testing.T) {
	f := newContentFixture()
	alice := f.users.addEndUser("alice")
	bob := f.users.addEndUser("bob")
	carol := f.users.addEndUser("carol")
	f.befriend(t, alice, bob)

	post, err := f.svc.CreatePost(alice.ID, "friends only", false)
	require.NoError(t, err)

	// author and friend see it
	_, err = f.svc.GetPost(post.ID, alice.ID)
	assert.NoError(t, err)
	_, err = f.svc.GetPost(post.ID, bob.ID)
	assert.NoError(t, err)

	// a stranger gets not-found, not forbidden
	_, err = f.svc.GetPost(post.ID, carol.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestUnfriendRevokesPrivateVisibility(t *testing.T) {
	f := newContentFixture()
	alice := f.users.addEndUser("alice")
	bob := f.users.addEndUser("bob")
	f.befriend(t, alice, bob)

	post, err := f.svc.CreatePost(alice.ID, "friends only", false)
	require.NoError(t, err)

	_, err = f.svc.GetPost(post.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, f.friendships.Unfriend(alice.ID, bob.ID))

	_, err = f.svc.GetPost(post.ID, bob.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestArchivedPostHiddenFromEveryone(t *testing.T) {
	f := newContentFixture()
	alice := f.users.addEndUser("alice")

	post, err := f.svc.CreatePost(alice.ID, "soon gone", true)
	require.NoError(t, err)
	require.NoError(t, f.svc.ArchivePost(post.ID, alice.ID))

	_, err = f.svc.GetPost(post.ID, alice.ID)
	assert.True(t, errs.IsNotFound(err))

	err = f.svc.ArchivePost(post.ID, alice.ID)
	assert.Equal(t, errs.KindState, errs.KindOf(err))
}

func TestUpdatePostAuthorOnly(t *testing.T) {
	f := newContentFixture()
	alice := f.users.addEndUser("alice")
	bob := f.users.addEndUser("bob")

	post, err := f.svc.CreatePost(alice.ID, "mine", true)
	require.NoError(t, err)

	content := "edited"
	_, err = f.svc.UpdatePost(post.ID, bob.ID, models.UpdatePostRequest{Content: &content})
	assert.Equal(t, errs.KindPermission, errs.KindOf(err))

	updated, err := f.svc.UpdatePost(post.ID, alice.ID, models.UpdatePostRequest{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestFeedFiltersByVisibility(t *testing.T) {
	f := newContentFixture()
	alice := f.users.addEndUser("alice")
	bob := f.users.addEndUser("bob")

	_, err := f.svc.CreatePost(alice.ID, "public", true)
	require.NoError(t, err)
	_, err = f.svc.CreatePost(alice.ID, "private", false)
	require.NoError(t, err)

	feed, err := f.svc.ListFeed(bob.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "public", feed[0].Content)

	f.befriend(t, alice, bob)
	feed, err = f.svc.ListFeed(bob.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, feed, 2)
}

func TestCommentOnVisiblePostNotifiesAuthor(t *testing.T) {
	f := newContentFixture()
	alice := f.users.addEndUser("alice")
	bob := f.users.addEndUser("bob")

	post, err := f.svc.CreatePost(alice.ID, "public", true)
	require.NoError(t, err)

	_, err = f.svc.AddComment(post.ID, bob.ID, "nice one", nil)
	require.NoError(t, err)

	got := f.notifications.forRecipient(alice.ID)
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationPostComment, got[0].Type)
}

func TestReplyMustShareParentPost(t *testing.T) {
	f := newContentFixture()
	alice := f.users.addEndUser("alice")

	postA, err := f.svc.CreatePost(alice.ID, "first", true)
	require.NoError(t, err)
	postB, err := f.svc.CreatePost(alice.ID, "second", true)
	require.NoError(t, err)

	parent, err := f.svc.AddComment(postA.ID, alice.ID, "on A", nil)
	require.NoError(t, err)

	_, err = f.svc.AddComment(postB.ID, alice.ID, "misfiled reply", &parent.ID)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestReplyNotifiesParentAuthor(t *testing.T) {
	f := newContentFixture()
	alice := f.users.addEndUser("alice")
	bob := f.users.addEndUser("bob")

	post, err := f.svc.CreatePost(alice.ID, "public", true)
	require.NoError(t, err)
	parent, err := f.svc.AddComment(post.ID, bob.ID, "first!", nil)
	require.NoError(t, err)

	_, err = f.svc.AddComment(post.ID, alice.ID, "thanks", &parent.ID)
	require.NoError(t, err)

	got := f.notifications.forRecipient(bob.ID)
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationCommentReply, got[0].Type)
}

func TestDeleteCommentSoftDeletes(t *testing.T) {
	f := newContentFixture()
	alice := f.users.addEndUser("alice")
	bob := f.users.addEndUser("bob")

	post, err := f.svc.CreatePost(alice.ID, "public", true)
	require.NoError(t, err)
	comment, err := f.svc.AddComment(post.ID, bob.ID, "rude remark", nil)
	require.NoError(t, err)

	err = f.svc.DeleteComment(comment.ID, alice.ID)
	assert.Equal(t, errs.KindPermission, errs.KindOf(err))

	require.NoError(t, f.svc.DeleteComment(comment.ID, bob.ID))

	comments, err := f.svc.ListComments(post.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.True(t, comments[0].IsDeleted)
	assert.Equal(t, models.DeletedCommentPlaceholder, comments[0].Content)

	err = f.svc.DeleteComment(comment.ID, bob.ID)
	assert.Equal(t, errs.KindState, errs.KindOf(err))
}

func TestReactUpsertsSingleRow(t *testing.T) {
	f := newContentFixture()
	alice := f.users.addEndUser("alice")
	bob := f.users.addEndUser("bob")

	post, err := f.svc.CreatePost(alice.ID, "public", true)
	require.NoError(t, err)

	updated, err := f.svc.React(bob.ID, models.ReactionTargetPost, post.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.False(t, updated)

	updated, err = f.svc.React(bob.ID, models.ReactionTargetPost, post.ID, models.ReactionLove)
	require.NoError(t, err)
	assert.True(t, updated)

	// one row, latest type
	listed, err := f.svc.ListReactions(models.ReactionTargetPost, post.ID, "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, models.ReactionLove, listed[0].Type)

	// only the first reaction notified
	assert.Len(t, f.notifications.forRecipient(alice.ID), 1)
}

func TestReactInvalidType(t *testing.T) {
	f := newContentFixture()
	alice := f.users.addEndUser("alice")

	post, err := f.svc.CreatePost(alice.ID, "public", true)
	require.NoError(t, err)

	_, err = f.svc.React(alice.ID, models.ReactionTargetPost, post.ID, models.ReactionType("GRUMPY"))
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestUnreactWithoutReaction(t *testing.T) {
	f := newContentFixture()
	alice := f.users.addEndUser("alice")

	post, err := f.svc.CreatePost(alice.ID, "public", true)
	require.NoError(t, err)

	err = f.svc.Unreact(alice.ID, models.ReactionTargetPost, post.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestReactToCommentNotifiesCommentAuthor(t *testing.T) {
	f := newContentFixture()
	alice := f.users.addEndUser("alice")
	bob := f.users.addEndUser("bob")

	post, err := f.svc.CreatePost(alice.ID, "public", true)
	require.NoError(t, err)
	comment, err := f.svc.AddComment(post.ID, bob.ID, "hot take", nil)
	require.NoError(t, err)

	_, err = f.svc.React(alice.ID, models.ReactionTargetComment, comment.ID, models.ReactionLaugh)
	require.NoError(t, err)

	got := f.notifications.forRecipient(bob.ID)
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationCommentLike, got[0].Type)
}

func TestListReactionsFilterByType(t *testing.T) {
	f := newContentFixture()
	alice := f.users.addEndUser("alice")
	bob := f.users.addEndUser("bob")
	carol := f.users.addEndUser("carol")

	post, err := f.svc.CreatePost(alice.ID, "public", true)
	require.NoError(t, err)

	_, err = f.svc.React(bob.ID, models.ReactionTargetPost, post.ID, models.ReactionLike)
	require.NoError(t, err)
	_, err = f.svc.React(carol.ID, models.ReactionTargetPost, post.ID, models.ReactionWow)
	require.NoError(t, err)

	likes, err := f.svc.ListReactions(models.ReactionTargetPost, post.ID, models.ReactionLike)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, bob.ID, likes[0].UserID)
}

func TestTrendingExcludesInvisiblePosts(t *testing.T) {
	f := newContentFixture()
	alice := f.users.addEndUser("alice")
	bob := f.users.addEndUser("bob")

	_, err := f.svc.CreatePost(alice.ID, "public", true)
	require.NoError(t, err)
	_, err = f.svc.CreatePost(alice.ID, "private", false)
	require.NoError(t, err)

	trending, err := f.svc.Trending(bob.ID)
	require.NoError(t, err)
	require.Len(t, trending, 1)
	assert.Equal(t, "public", trending[0].Content)
}
