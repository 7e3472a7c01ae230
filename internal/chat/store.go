package chat

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"backend-alpsconnect/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrUnknownAudience      = errors.New("unknown chat audience")
)

// Audience selects whose inbox is addressed.
type Audience string

const (
	AudienceGuide  Audience = "guide"
	AudienceClient Audience = "client"
)

func ParseAudience(s string) (Audience, error) {
	switch a := Audience(s); a {
	case AudienceGuide, AudienceClient:
		return a, nil
	}
	return "", ErrUnknownAudience
}

type Notifier interface {
	Broadcast(topic string, payload []byte)
}

type Event struct {
	Type           string             `json:"type"`
	Audience       Audience           `json:"audience"`
	ConversationID string             `json:"conversation_id"`
	Message        domain.ChatMessage `json:"message"`
}

const EventMessageSent = "message_sent"

// Topic is the stream topic carrying events of one conversation.
func Topic(aud Audience, convID string) string {
	return string(aud) + "-" + convID
}

type Store struct {
	mu       sync.RWMutex
	inboxes  map[Audience][]domain.ChatConversation
	notifier Notifier
	now      func() time.Time
}

func NewStore(notifier Notifier) *Store {
	return &Store{
		inboxes: map[Audience][]domain.ChatConversation{
			AudienceGuide:  {},
			AudienceClient: {},
		},
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *Store) Replace(guide, client []domain.ChatConversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inboxes[AudienceGuide] = cloneAll(guide)
	s.inboxes[AudienceClient] = cloneAll(client)
}

func (s *Store) List(aud Audience) ([]domain.ChatConversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	convs, ok := s.inboxes[aud]
	if !ok {
		return nil, ErrUnknownAudience
	}
	return cloneAll(convs), nil
}

func (s *Store) Get(aud Audience, convID string) (domain.ChatConversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, err := s.locate(aud, convID)
	if err != nil {
		return domain.ChatConversation{}, err
	}
	return s.inboxes[aud][idx].Clone(), nil
}

// Send appends a message. Messages from anyone but the inbox owner count as
// unread until MarkRead.
func (s *Store) Send(aud Audience, convID, senderID, text string) (domain.ChatMessage, error) {
	if senderID == "" {
		senderID = domain.SenderSelf
	}
	msg := domain.ChatMessage{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		Text:      text,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Read:      senderID == domain.SenderSelf,
	}

	s.mu.Lock()
	idx, err := s.locate(aud, convID)
	if err != nil {
		s.mu.Unlock()
		return domain.ChatMessage{}, err
	}
	conv := s.inboxes[aud][idx].Clone()
	conv.Messages = append(conv.Messages, msg)
	conv.LastMessage = msg.Text
	conv.LastMessageTime = msg.Timestamp
	if !msg.Read {
		conv.UnreadCount++
	}
	s.inboxes[aud][idx] = conv
	s.mu.Unlock()

	s.publish(Event{Type: EventMessageSent, Audience: aud, ConversationID: convID, Message: msg})
	return msg, nil
}

func (s *Store) MarkRead(aud Audience, convID string) (domain.ChatConversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.locate(aud, convID)
	if err != nil {
		return domain.ChatConversation{}, err
	}
	conv := s.inboxes[aud][idx].Clone()
	for i := range conv.Messages {
		conv.Messages[i].Read = true
	}
	conv.UnreadCount = 0
	s.inboxes[aud][idx] = conv
	return conv.Clone(), nil
}

// locate requires mu to be held.
func (s *Store) locate(aud Audience, convID string) (int, error) {
	convs, ok := s.inboxes[aud]
	if !ok {
		return -1, ErrUnknownAudience
	}
	for i := range convs {
		if convs[i].ID == convID {
			return i, nil
		}
	}
	return -1, ErrConversationNotFound
}

func (s *Store) publish(ev Event) {
	if s.notifier == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("chat event encode error: %v", err)
		return
	}
	s.notifier.Broadcast(Topic(ev.Audience, ev.ConversationID), payload)
}

func cloneAll(convs []domain.ChatConversation) []domain.ChatConversation {
	out := make([]domain.ChatConversation, len(convs))
	for i, c := range convs {
		out[i] = c.Clone()
	}
	return out
}
