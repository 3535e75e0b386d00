package models

import "encoding/json"

// NotificationType enumerates the events a notification can describe
type NotificationType string

const (
	NotificationFriendRequest NotificationType = "FRIEND_REQUEST"
	NotificationFriendAccept  NotificationType = "FRIEND_ACCEPT"
	NotificationPostLike      NotificationType = "POST_LIKE"
	NotificationPostComment   NotificationType = "POST_COMMENT"
	NotificationCommentReply  NotificationType = "COMMENT_REPLY"
	NotificationCommentLike   NotificationType = "COMMENT_LIKE"
	NotificationMessage       NotificationType = "MESSAGE"
	NotificationMention       NotificationType = "MENTION"
	NotificationSystem        NotificationType = "SYSTEM"
)

// NotificationRefType is the closed set of entities a notification may link to
type NotificationRefType string

const (
	RefFriendRequest NotificationRefType = "FRIEND_REQUEST"
	RefFriendship    NotificationRefType = "FRIENDSHIP"
	RefPost          NotificationRefType = "POST"
	RefComment       NotificationRefType = "COMMENT"
	RefMessage       NotificationRefType = "MESSAGE"
)

// Notification is written by the fan-out service in reaction to domain
// events, never directly by a handler.
type Notification struct {
	Base
	RecipientID string              `json:"recipient_id" gorm:"type:uuid;index;not null"`
	ActorID     *string             `json:"actor_id,omitempty" gorm:"type:uuid;index"`
	Type        NotificationType    `json:"notification_type" gorm:"size:20;index;not null"`
	Title       string              `json:"title" gorm:"size:255;not null"`
	Message     string              `json:"message" gorm:"type:text"`
	IsRead      bool                `json:"is_read" gorm:"default:false;index"`
	RefType     NotificationRefType `json:"ref_type,omitempty" gorm:"size:20"`
	RefID       string              `json:"ref_id,omitempty" gorm:"type:uuid"`
	ExtraData   json.RawMessage     `json:"extra_data,omitempty" gorm:"type:jsonb"`
}
