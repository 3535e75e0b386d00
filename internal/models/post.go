package models

// Post is authored by an end-user. Private posts are only visible to the
// author and the author's friends; archived posts disappear from listings.
type Post struct {
	Base
	AuthorID   string `json:"author_id" gorm:"type:uuid;index;not null"`
	Content    string `json:"content" gorm:"type:text;not null"`
	IsPublic   bool   `json:"is_public" gorm:"default:true"`
	IsArchived bool   `json:"is_archived" gorm:"default:false"`

	Author *User `json:"author_details,omitempty" gorm:"foreignKey:AuthorID"`
}

// DeletedCommentPlaceholder replaces the content of soft-deleted comments.
const DeletedCommentPlaceholder = "[deleted]"

// Comment belongs to a post, optionally replying to a parent comment on the
// same post. Deletion is soft so replies keep a resolvable parent.
type Comment struct {
	Base
	PostID    string  `json:"post_id" gorm:"type:uuid;index;not null"`
	AuthorID  string  `json:"author_id" gorm:"type:uuid;index;not null"`
	Content   string  `json:"content" gorm:"type:text;not null"`
	ParentID  *string `json:"parent_id,omitempty" gorm:"type:uuid;index"`
	IsDeleted bool    `json:"is_deleted" gorm:"default:false"`

	Author *User `json:"author_details,omitempty" gorm:"foreignKey:AuthorID"`
}

// CreatePostRequest defines the request body for creating a post
type CreatePostRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=5000"`
	IsPublic *bool  `json:"is_public,omitempty"`
}

// UpdatePostRequest defines the request body for updating a post
type UpdatePostRequest struct {
	Content  *string `json:"content,omitempty" validate:"omitempty,min=1,max=5000"`
	IsPublic *bool   `json:"is_public,omitempty"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Content  string  `json:"content" validate:"required,min=1,max=2000"`
	ParentID *string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
}
