package domain

// SenderSelf marks messages written by the owner of the inbox.
const SenderSelf = "me"

type ChatMessage struct {
	ID        string `json:"id" yaml:"id"`
	SenderID  string `json:"senderId" yaml:"senderId"`
	Text      string `json:"text" yaml:"text"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Read      bool   `json:"read" yaml:"read"`
}

type ChatConversation struct {
	ID                string        `json:"id" yaml:"id"`
	ParticipantID     string        `json:"participantId" yaml:"participantId"`
	ParticipantName   string        `json:"participantName" yaml:"participantName"`
	ParticipantAvatar string        `json:"participantAvatar" yaml:"participantAvatar"`
	ParticipantRole   string        `json:"participantRole" yaml:"participantRole"`
	LastMessage       string        `json:"lastMessage" yaml:"lastMessage"`
	LastMessageTime   string        `json:"lastMessageTime" yaml:"lastMessageTime"`
	UnreadCount       int           `json:"unreadCount" yaml:"unreadCount"`
	Messages          []ChatMessage `json:"messages" yaml:"messages"`
}

func (c ChatConversation) Clone() ChatConversation {
	out := c
	out.Messages = append([]ChatMessage(nil), c.Messages...)
	return out
}
