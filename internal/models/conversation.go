package models

// Conversation groups messages between a set of end-users. Direct
// conversations have exactly two participants and no name; group
// conversations are named and may grow or shrink.
type Conversation struct {
	Base
	IsGroup      bool   `json:"is_group" gorm:"default:false"`
	Name         string `json:"name" gorm:"size:255"`
	Participants []User `json:"participants,omitempty" gorm:"many2many:conversation_participants"`
}

// DisplayName resolves the name shown to a viewer: the group name, or the
// other participant of a direct conversation.
func (c *Conversation) DisplayName(viewerID string) string {
	if c.IsGroup {
		if c.Name != "" {
			return c.Name
		}
		return "Group Chat"
	}
	for i := range c.Participants {
		if c.Participants[i].ID != viewerID {
			return c.Participants[i].FullName()
		}
	}
	return "Chat"
}

// HasParticipant reports whether the user belongs to the conversation.
// Participants must be loaded.
func (c *Conversation) HasParticipant(userID string) bool {
	for i := range c.Participants {
		if c.Participants[i].ID == userID {
			return true
		}
	}
	return false
}

// Message belongs to one conversation. ReadBy tracks acknowledgements from
// participants other than the sender; IsRead flips once everyone but the
// sender has read it.
type Message struct {
	Base
	ConversationID string `json:"conversation_id" gorm:"type:uuid;index;not null"`
	SenderID       string `json:"sender_id" gorm:"type:uuid;index;not null"`
	Content        string `json:"content" gorm:"type:text;not null"`
	IsRead         bool   `json:"is_read" gorm:"default:false"`
	ReadBy         []User `json:"read_by,omitempty" gorm:"many2many:message_reads"`

	Sender *User `json:"sender_details,omitempty" gorm:"foreignKey:SenderID"`
}

// StartConversationRequest defines the request body for starting a conversation
type StartConversationRequest struct {
	ParticipantIDs []string `json:"participants" validate:"required,min=1,dive,uuid"`
	IsGroup        bool     `json:"is_group"`
	Name           string   `json:"name,omitempty" validate:"omitempty,max=255"`
}

// ParticipantRequest defines the request body for adding/removing a participant
type ParticipantRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// SendMessageRequest defines the request body for sending a message
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}
