package trip

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"backend-alpsconnect/internal/domain"
)

// Store is the in-memory trip list. Every mutator builds a new list and swaps
// it in under the lock, so readers never observe a half-applied change.
type Store struct {
	mu       sync.RWMutex
	trips    []domain.Trip
	texts    Texts
	policy   JoinPolicy
	notifier Notifier
}

func NewStore(policy JoinPolicy, notifier Notifier) *Store {
	if policy == "" {
		policy = JoinReject
	}
	return &Store{
		trips:    []domain.Trip{},
		texts:    englishTexts{},
		policy:   policy,
		notifier: notifier,
	}
}

func (s *Store) Policy() JoinPolicy {
	return s.policy
}

// Replace swaps the whole list, as happens when the language changes.
func (s *Store) Replace(trips []domain.Trip, texts Texts) {
	next := make([]domain.Trip, len(trips))
	for i, t := range trips {
		next[i] = t.Clone()
	}
	if texts == nil {
		texts = englishTexts{}
	}

	s.mu.Lock()
	s.trips = next
	s.texts = texts
	s.mu.Unlock()

	s.publish(TopicAll, Event{Type: EventTripsReplaced, Count: len(next)})
}

// DefaultEquipment is the kit list for activity in the current language.
func (s *Store) DefaultEquipment(activity domain.ActivityType) []string {
	s.mu.RLock()
	texts := s.texts
	s.mu.RUnlock()
	return texts.Equipment(activity)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trips)
}

// All returns detached copies of every trip in store order.
func (s *Store) All() []domain.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Trip, len(s.trips))
	for i, t := range s.trips {
		out[i] = t.Clone()
	}
	return out
}

func (s *Store) Get(id string) (domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Trip{}, ErrTripNotFound
	}
	return s.trips[idx].Clone(), nil
}

// AddTrip appends a trip as given. Field consistency is the caller's job;
// only id uniqueness is enforced.
func (s *Store) AddTrip(t domain.Trip) (domain.Trip, error) {
	t = t.Clone()
	if t.EnrolledClients == nil {
		t.EnrolledClients = []domain.Client{}
	}
	if t.PendingRequests == nil {
		t.PendingRequests = []domain.Client{}
	}

	s.mu.Lock()
	if s.indexOf(t.ID) >= 0 {
		s.mu.Unlock()
		return domain.Trip{}, fmt.Errorf("%w: %s", ErrTripExists, t.ID)
	}
	next := make([]domain.Trip, len(s.trips), len(s.trips)+1)
	copy(next, s.trips)
	s.trips = append(next, t)
	s.mu.Unlock()

	out := t.Clone()
	s.publish(t.ID, Event{Type: EventTripAdded, TripID: t.ID, Trip: &out})
	return t.Clone(), nil
}

// RequestJoin queues the requester, plus one entry per friend id cloned from
// the requester's profile, on the trip's pending list.
func (s *Store) RequestJoin(req JoinRequest) (JoinResult, error) {
	s.mu.Lock()
	idx := s.indexOf(req.TripID)
	if idx < 0 {
		s.mu.Unlock()
		return JoinResult{}, ErrTripNotFound
	}
	texts := s.texts

	entries := make([]domain.Client, 0, 1+len(req.FriendIDs))
	entries = append(entries, req.Requester.WithRequestedDate(req.Date))
	for i, id := range req.FriendIDs {
		friend := req.Requester.WithRequestedDate(req.Date)
		friend.ID = id
		friend.Name = texts.FriendName(i + 1)
		entries = append(entries, friend)
	}

	current := s.trips[idx]
	added, err := applyPolicy(s.policy, current, entries)
	if err != nil {
		s.mu.Unlock()
		return JoinResult{}, err
	}

	updated := current.Clone()
	updated.PendingRequests = append(updated.PendingRequests, added...)
	s.swap(idx, updated)
	s.mu.Unlock()

	result := JoinResult{
		Trip:    updated.Clone(),
		Added:   added,
		Message: texts.JoinConfirmation(countFriends(added, req.Requester.ID)),
	}
	s.publish(updated.ID, Event{Type: EventJoinRequested, TripID: updated.ID, ClientID: req.Requester.ID, Count: len(added)})
	return result, nil
}

// ApproveRequest drops every pending entry for client.ID and enrolls client.
func (s *Store) ApproveRequest(tripID string, client domain.Client) (domain.Trip, error) {
	s.mu.Lock()
	idx := s.indexOf(tripID)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Trip{}, ErrTripNotFound
	}

	current := s.trips[idx]
	pending := make([]domain.Client, 0, len(current.PendingRequests))
	for _, c := range current.PendingRequests {
		if c.ID != client.ID {
			pending = append(pending, c.Clone())
		}
	}
	if len(pending) == len(current.PendingRequests) {
		s.mu.Unlock()
		return domain.Trip{}, fmt.Errorf("%w: %s", ErrRequestNotFound, client.ID)
	}

	updated := current.Clone()
	updated.PendingRequests = pending
	if !containsClient(updated.EnrolledClients, client.ID) {
		updated.EnrolledClients = append(updated.EnrolledClients, client.Clone())
	}
	s.swap(idx, updated)
	s.mu.Unlock()

	s.publish(updated.ID, Event{Type: EventRequestApproved, TripID: updated.ID, ClientID: client.ID})
	return updated.Clone(), nil
}

// swap replaces one element in a fresh copy of the list. Callers hold mu.
func (s *Store) swap(idx int, t domain.Trip) {
	next := make([]domain.Trip, len(s.trips))
	copy(next, s.trips)
	next[idx] = t
	s.trips = next
}

func (s *Store) indexOf(id string) int {
	for i := range s.trips {
		if s.trips[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) publish(topic string, ev Event) {
	if s.notifier == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("trip event encode error: %v", err)
		return
	}
	if topic != TopicAll {
		s.notifier.Broadcast(topic, payload)
	}
	s.notifier.Broadcast(TopicAll, payload)
}

func applyPolicy(policy JoinPolicy, t domain.Trip, entries []domain.Client) ([]domain.Client, error) {
	if policy == JoinAllow {
		return entries, nil
	}

	taken := map[string]bool{}
	for _, c := range t.PendingRequests {
		taken[c.ID] = true
	}
	for _, c := range t.EnrolledClients {
		taken[c.ID] = true
	}

	out := make([]domain.Client, 0, len(entries))
	for _, c := range entries {
		if taken[c.ID] {
			if policy == JoinReject {
				return nil, fmt.Errorf("%w: %s", ErrAlreadyRequested, c.ID)
			}
			continue
		}
		taken[c.ID] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, ErrAlreadyRequested
	}
	return out, nil
}

// countFriends counts added entries other than the requester, who may have
// been dropped by the dedupe policy.
func countFriends(added []domain.Client, requesterID string) int {
	n := 0
	for _, c := range added {
		if c.ID != requesterID {
			n++
		}
	}
	return n
}

func containsClient(list []domain.Client, id string) bool {
	for _, c := range list {
		if c.ID == id {
			return true
		}
	}
	return false
}

type englishTexts struct{}

func (englishTexts) FriendName(n int) string { return fmt.Sprintf("Friend %d", n) }

func (englishTexts) JoinConfirmation(friends int) string {
	if friends > 0 {
		return fmt.Sprintf("Request sent for you and %d friends!", friends)
	}
	return "Request sent successfully!"
}

func (englishTexts) Equipment(domain.ActivityType) []string { return []string{} }
