package models

// ReactionTargetType tags the single target of a reaction
type ReactionTargetType string

const (
	ReactionTargetPost    ReactionTargetType = "POST"
	ReactionTargetComment ReactionTargetType = "COMMENT"
)

// ReactionType is the fixed set of reactions
type ReactionType string

const (
	ReactionLike  ReactionType = "LIKE"
	ReactionLove  ReactionType = "LOVE"
	ReactionLaugh ReactionType = "LAUGH"
	ReactionWow   ReactionType = "WOW"
	ReactionSad   ReactionType = "SAD"
	ReactionAngry ReactionType = "ANGRY"
)

// ValidReactionType reports whether t is one of the fixed reaction types.
func ValidReactionType(t ReactionType) bool {
	switch t {
	case ReactionLike, ReactionLove, ReactionLaugh, ReactionWow, ReactionSad, ReactionAngry:
		return true
	}
	return false
}

// Reaction targets exactly one post or one comment. The unique index keeps a
// single row per (user, target); re-reacting updates ReactionType in place.
type Reaction struct {
	Base
	UserID     string             `json:"user_id" gorm:"type:uuid;index;uniqueIndex:idx_user_target;not null"`
	TargetType ReactionTargetType `json:"target_type" gorm:"size:10;uniqueIndex:idx_user_target;not null"`
	TargetID   string             `json:"target_id" gorm:"type:uuid;index;uniqueIndex:idx_user_target;not null"`
	Type       ReactionType       `json:"reaction_type" gorm:"size:10;not null;default:'LIKE'"`

	User *User `json:"user_details,omitempty" gorm:"foreignKey:UserID"`
}

// ReactRequest defines the request body for reacting to a post or comment
type ReactRequest struct {
	ReactionType ReactionType `json:"reaction_type" validate:"required,oneof=LIKE LOVE LAUGH WOW SAD ANGRY"`
}
