package services

import (
	"sort"
	"strings"
	"time"

	"github.com/anonto42/socialhub/backend/internal/models"
	"github.com/anonto42/socialhub/backend/pkg/errs"
	"github.com/google/uuid"
)

// In-memory repository fakes. They reproduce the store-level guarantees the
// services rely on: unique constraints, normalized friendship pairs and
// deterministic ordering.

func newID() string { return uuid.NewString() }

func stamp(b *models.Base) {
	if b.ID == "" {
		b.ID = newID()
	}
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) addEndUser(name string) *models.User {
	user := models.NewEndUser(name+"@example.com", name)
	user.FirstName = name
	stamp(&user.Base)
	user.EndUserProfile = &models.EndUserProfile{UserID: user.ID, Status: models.EndUserStatusActive}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) addAdmin(name string) *models.User {
	user := models.NewAdminUser(name+"@example.com", name)
	stamp(&user.Base)
	user.AdminProfile = &models.AdminProfile{UserID: user.ID, Role: models.AdminRoleModerator, IsActive: true}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) CreateEndUser(user *models.User, profile *models.EndUserProfile) error {
	stamp(&user.Base)
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return errs.Validation("a user with this email or username already exists")
		}
	}
	profile.UserID = user.ID
	stamp(&profile.Base)
	user.EndUserProfile = profile
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) CreateAdminUser(user *models.User, profile *models.AdminProfile) error {
	stamp(&user.Base)
	profile.UserID = user.ID
	stamp(&profile.Base)
	user.AdminProfile = profile
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errs.NotFound("user not found")
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == models.NormalizeEmail(email) {
			return u, nil
		}
	}
	return nil, errs.NotFound("user not found")
}

func (r *fakeUserRepo) Update(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return errs.NotFound("user not found")
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateEndUserProfile(profile *models.EndUserProfile) error {
	user, ok := r.users[profile.UserID]
	if !ok {
		return errs.NotFound("user not found")
	}
	user.EndUserProfile = profile
	return nil
}

func (r *fakeUserRepo) ListByType(userType models.UserType) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.UserType == userType {
			out = append(out, *u)
		}
	}
	sortUsers(out)
	return out, nil
}

func (r *fakeUserRepo) ListEndUsersExcluding(excludeIDs []string, limit int) ([]models.User, error) {
	excluded := map[string]bool{}
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var out []models.User
	for _, u := range r.users {
		if u.UserType == models.UserTypeEndUser && !excluded[u.ID] {
			out = append(out, *u)
		}
	}
	sortUsers(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeUserRepo) Search(query string) ([]models.User, error) {
	q := strings.ToLower(query)
	var out []models.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.FirstName), q) ||
			strings.Contains(strings.ToLower(u.LastName), q) {
			out = append(out, *u)
		}
	}
	sortUsers(out)
	return out, nil
}

func sortUsers(users []models.User) {
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
}

type fakeFriendRepo struct {
	requests map[string]*models.FriendRequest
	edges    map[string]*models.Friendship
	users    *fakeUserRepo
}

func newFakeFriendRepo(users *fakeUserRepo) *fakeFriendRepo {
	return &fakeFriendRepo{
		requests: map[string]*models.FriendRequest{},
		edges:    map[string]*models.Friendship{},
		users:    users,
	}
}

func (r *fakeFriendRepo) CreateRequest(req *models.FriendRequest) error {
	for _, existing := range r.requests {
		if existing.SenderID == req.SenderID && existing.ReceiverID == req.ReceiverID {
			return errs.Validation("friend request already exists")
		}
	}
	stamp(&req.Base)
	if req.Status == "" {
		req.Status = models.FriendRequestPending
	}
	req.Sender = r.users.users[req.SenderID]
	req.Receiver = r.users.users[req.ReceiverID]
	r.requests[req.ID] = req
	return nil
}

func (r *fakeFriendRepo) GetRequestByID(id string) (*models.FriendRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, errs.NotFound("friend request not found")
	}
	return req, nil
}

func (r *fakeFriendRepo) GetRequestBetween(senderID, receiverID string) (*models.FriendRequest, error) {
	for _, req := range r.requests {
		if req.SenderID == senderID && req.ReceiverID == receiverID {
			return req, nil
		}
	}
	return nil, errs.NotFound("friend request not found")
}

func (r *fakeFriendRepo) ListReceivedPending(userID string) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	for _, req := range r.requests {
		if req.ReceiverID == userID && req.Status == models.FriendRequestPending {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeFriendRepo) ListSent(userID string) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	for _, req := range r.requests {
		if req.SenderID == userID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeFriendRepo) ReopenRequest(id string) error {
	req, ok := r.requests[id]
	if !ok {
		return errs.NotFound("friend request not found")
	}
	req.Status = models.FriendRequestPending
	return nil
}

func (r *fakeFriendRepo) SettleRequest(id string, status models.FriendRequestStatus) error {
	req, ok := r.requests[id]
	if !ok {
		return errs.NotFound("friend request not found")
	}
	req.Status = status
	return nil
}

func (r *fakeFriendRepo) AcceptRequest(req *models.FriendRequest) (*models.Friendship, error) {
	stored, ok := r.requests[req.ID]
	if !ok {
		return nil, errs.NotFound("friend request not found")
	}
	stored.Status = models.FriendRequestAccepted

	u1, u2 := models.NormalizePair(req.SenderID, req.ReceiverID)
	for _, edge := range r.edges {
		if edge.User1ID == u1 && edge.User2ID == u2 {
			return edge, nil
		}
	}
	edge := &models.Friendship{User1ID: u1, User2ID: u2}
	stamp(&edge.Base)
	r.edges[edge.ID] = edge
	return edge, nil
}

func (r *fakeFriendRepo) GetFriendship(userA, userB string) (*models.Friendship, error) {
	u1, u2 := models.NormalizePair(userA, userB)
	for _, edge := range r.edges {
		if edge.User1ID == u1 && edge.User2ID == u2 {
			return edge, nil
		}
	}
	return nil, errs.NotFound("friendship not found")
}

func (r *fakeFriendRepo) DeleteFriendship(id string) error {
	if _, ok := r.edges[id]; !ok {
		return errs.NotFound("friendship not found")
	}
	delete(r.edges, id)
	return nil
}

func (r *fakeFriendRepo) ListFriendIDs(userID string) ([]string, error) {
	var out []string
	for _, edge := range r.edges {
		if edge.User1ID == userID || edge.User2ID == userID {
			out = append(out, edge.OtherUser(userID))
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeFriendRepo) ListFriends(userID string) ([]models.User, error) {
	ids, _ := r.ListFriendIDs(userID)
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeConversationRepo struct {
	convs map[string]*models.Conversation
	order []string
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{convs: map[string]*models.Conversation{}}
}

func (r *fakeConversationRepo) GetOrCreateDirect(userA, userB *models.User) (*models.Conversation, bool, error) {
	for _, conv := range r.convs {
		if !conv.IsGroup && len(conv.Participants) == 2 &&
			conv.HasParticipant(userA.ID) && conv.HasParticipant(userB.ID) {
			return conv, false, nil
		}
	}
	conv := &models.Conversation{Participants: []models.User{*userA, *userB}}
	stamp(&conv.Base)
	r.convs[conv.ID] = conv
	r.order = append(r.order, conv.ID)
	return conv, true, nil
}

func (r *fakeConversationRepo) CreateGroup(conv *models.Conversation, participants []models.User) error {
	stamp(&conv.Base)
	conv.Participants = participants
	r.convs[conv.ID] = conv
	r.order = append(r.order, conv.ID)
	return nil
}

func (r *fakeConversationRepo) GetByID(id string) (*models.Conversation, error) {
	conv, ok := r.convs[id]
	if !ok {
		return nil, errs.NotFound("conversation not found")
	}
	return conv, nil
}

func (r *fakeConversationRepo) ListForUser(userID string) ([]models.Conversation, error) {
	var out []models.Conversation
	for i := len(r.order) - 1; i >= 0; i-- {
		conv := r.convs[r.order[i]]
		if conv.HasParticipant(userID) {
			out = append(out, *conv)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) AddParticipant(conv *models.Conversation, user *models.User) error {
	stored := r.convs[conv.ID]
	stored.Participants = append(stored.Participants, *user)
	return nil
}

func (r *fakeConversationRepo) RemoveParticipant(conv *models.Conversation, userID string) error {
	stored := r.convs[conv.ID]
	kept := stored.Participants[:0]
	for _, p := range stored.Participants {
		if p.ID != userID {
			kept = append(kept, p)
		}
	}
	stored.Participants = kept
	return nil
}

type fakeMessageRepo struct {
	msgs  map[string]*models.Message
	order []string
	reads map[string]map[string]bool
	convs *fakeConversationRepo
}

func newFakeMessageRepo(convs *fakeConversationRepo) *fakeMessageRepo {
	return &fakeMessageRepo{
		msgs:  map[string]*models.Message{},
		reads: map[string]map[string]bool{},
		convs: convs,
	}
}

func (r *fakeMessageRepo) Create(msg *models.Message) error {
	stamp(&msg.Base)
	r.msgs[msg.ID] = msg
	r.order = append(r.order, msg.ID)
	return nil
}

func (r *fakeMessageRepo) GetByID(id string) (*models.Message, error) {
	msg, ok := r.msgs[id]
	if !ok {
		return nil, errs.NotFound("message not found")
	}
	return msg, nil
}

func (r *fakeMessageRepo) ListByConversation(convID string, page, pageSize int) ([]models.Message, error) {
	var all []models.Message
	for i := len(r.order) - 1; i >= 0; i-- {
		if r.msgs[r.order[i]].ConversationID == convID {
			all = append(all, *r.msgs[r.order[i]])
		}
	}
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *fakeMessageRepo) ListUnread(convID, userID string) ([]models.Message, error) {
	var out []models.Message
	for _, id := range r.order {
		msg := r.msgs[id]
		if msg.ConversationID == convID && msg.SenderID != userID && !r.reads[id][userID] {
			out = append(out, *msg)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) AddRead(messageID, userID string) (int64, error) {
	if r.reads[messageID] == nil {
		r.reads[messageID] = map[string]bool{}
	}
	r.reads[messageID][userID] = true
	return int64(len(r.reads[messageID])), nil
}

func (r *fakeMessageRepo) SetRead(messageID string) error {
	msg, ok := r.msgs[messageID]
	if !ok {
		return errs.NotFound("message not found")
	}
	msg.IsRead = true
	return nil
}

func (r *fakeMessageRepo) UnreadCount(convID, userID string) (int64, error) {
	msgs, _ := r.ListUnread(convID, userID)
	return int64(len(msgs)), nil
}

func (r *fakeMessageRepo) TotalUnreadCount(userID string) (int64, error) {
	var total int64
	for id, conv := range r.convs.convs {
		if conv.HasParticipant(userID) {
			n, _ := r.UnreadCount(id, userID)
			total += n
		}
	}
	return total, nil
}

func (r *fakeMessageRepo) LastMessage(convID string) (*models.Message, error) {
	for i := len(r.order) - 1; i >= 0; i-- {
		if r.msgs[r.order[i]].ConversationID == convID {
			return r.msgs[r.order[i]], nil
		}
	}
	return nil, nil
}

type fakePostRepo struct {
	posts map[string]*models.Post
	order []string
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*models.Post{}}
}

func (r *fakePostRepo) Create(post *models.Post) error {
	stamp(&post.Base)
	r.posts[post.ID] = post
	r.order = append(r.order, post.ID)
	return nil
}

func (r *fakePostRepo) GetByID(id string) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, errs.NotFound("post not found")
	}
	return post, nil
}

func (r *fakePostRepo) Update(post *models.Post) error {
	if _, ok := r.posts[post.ID]; !ok {
		return errs.NotFound("post not found")
	}
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) visible(post *models.Post, viewerID string, friendIDs []string) bool {
	if post.IsArchived {
		return false
	}
	if post.IsPublic || post.AuthorID == viewerID {
		return true
	}
	for _, id := range friendIDs {
		if id == post.AuthorID {
			return true
		}
	}
	return false
}

func (r *fakePostRepo) ListVisible(viewerID string, friendIDs []string, page, limit int) ([]models.Post, error) {
	var all []models.Post
	for i := len(r.order) - 1; i >= 0; i-- {
		post := r.posts[r.order[i]]
		if r.visible(post, viewerID, friendIDs) {
			all = append(all, *post)
		}
	}
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *fakePostRepo) ListByAuthor(authorID string) ([]models.Post, error) {
	var out []models.Post
	for i := len(r.order) - 1; i >= 0; i-- {
		if r.posts[r.order[i]].AuthorID == authorID {
			out = append(out, *r.posts[r.order[i]])
		}
	}
	return out, nil
}

func (r *fakePostRepo) Trending(viewerID string, friendIDs []string, since time.Time, limit int) ([]models.Post, error) {
	var out []models.Post
	for i := len(r.order) - 1; i >= 0; i-- {
		post := r.posts[r.order[i]]
		if post.CreatedAt.Before(since) {
			continue
		}
		if r.visible(post, viewerID, friendIDs) {
			out = append(out, *post)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCommentRepo struct {
	comments map[string]*models.Comment
	order    []string
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[string]*models.Comment{}}
}

func (r *fakeCommentRepo) Create(comment *models.Comment) error {
	stamp(&comment.Base)
	r.comments[comment.ID] = comment
	r.order = append(r.order, comment.ID)
	return nil
}

func (r *fakeCommentRepo) GetByID(id string) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, errs.NotFound("comment not found")
	}
	return comment, nil
}

func (r *fakeCommentRepo) ListByPost(postID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, id := range r.order {
		if r.comments[id].PostID == postID {
			out = append(out, *r.comments[id])
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) SoftDelete(id string) error {
	comment, ok := r.comments[id]
	if !ok {
		return errs.NotFound("comment not found")
	}
	comment.IsDeleted = true
	comment.Content = models.DeletedCommentPlaceholder
	return nil
}

type reactionKey struct {
	userID     string
	targetType models.ReactionTargetType
	targetID   string
}

type fakeReactionRepo struct {
	reactions map[reactionKey]*models.Reaction
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{reactions: map[reactionKey]*models.Reaction{}}
}

func (r *fakeReactionRepo) Get(userID string, targetType models.ReactionTargetType, targetID string) (*models.Reaction, error) {
	reaction, ok := r.reactions[reactionKey{userID, targetType, targetID}]
	if !ok {
		return nil, errs.NotFound("no reaction found")
	}
	return reaction, nil
}

func (r *fakeReactionRepo) Upsert(reaction *models.Reaction) (bool, error) {
	key := reactionKey{reaction.UserID, reaction.TargetType, reaction.TargetID}
	if existing, ok := r.reactions[key]; ok {
		existing.Type = reaction.Type
		*reaction = *existing
		return false, nil
	}
	stamp(&reaction.Base)
	r.reactions[key] = reaction
	return true, nil
}

func (r *fakeReactionRepo) Delete(userID string, targetType models.ReactionTargetType, targetID string) error {
	key := reactionKey{userID, targetType, targetID}
	if _, ok := r.reactions[key]; !ok {
		return errs.NotFound("no reaction found")
	}
	delete(r.reactions, key)
	return nil
}

func (r *fakeReactionRepo) ListByTarget(targetType models.ReactionTargetType, targetID string, typeFilter models.ReactionType) ([]models.Reaction, error) {
	var out []models.Reaction
	for key, reaction := range r.reactions {
		if key.targetType != targetType || key.targetID != targetID {
			continue
		}
		if typeFilter != "" && reaction.Type != typeFilter {
			continue
		}
		out = append(out, *reaction)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type fakeNotificationRepo struct {
	items   []*models.Notification
	failing bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(n *models.Notification) error {
	if r.failing {
		return errs.Internal(nil, "store unavailable")
	}
	stamp(&n.Base)
	r.items = append(r.items, n)
	return nil
}

func (r *fakeNotificationRepo) ListByRecipient(recipientID string, page, limit int) ([]models.Notification, int64, error) {
	var all []models.Notification
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].RecipientID == recipientID {
			all = append(all, *r.items[i])
		}
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeNotificationRepo) ListUnread(recipientID string) ([]models.Notification, error) {
	var out []models.Notification
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].RecipientID == recipientID && !r.items[i].IsRead {
			out = append(out, *r.items[i])
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) UnreadCount(recipientID string) (int64, error) {
	var count int64
	for _, n := range r.items {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(notificationID, recipientID string) error {
	for _, n := range r.items {
		if n.ID == notificationID && n.RecipientID == recipientID {
			n.IsRead = true
			return nil
		}
	}
	return errs.NotFound("notification not found")
}

func (r *fakeNotificationRepo) MarkAllAsRead(recipientID string) error {
	for _, n := range r.items {
		if n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) forRecipient(recipientID string) []*models.Notification {
	var out []*models.Notification
	for _, n := range r.items {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out
}
