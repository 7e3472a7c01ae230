package trip

import (
	"errors"

	"backend-alpsconnect/internal/domain"
)

var (
	ErrTripNotFound     = errors.New("trip not found")
	ErrTripExists       = errors.New("trip already exists")
	ErrRequestNotFound  = errors.New("pending request not found")
	ErrAlreadyRequested = errors.New("client already requested or enrolled")
)

// Texts supplies the localized strings used by the store.
type Texts interface {
	FriendName(n int) string
	JoinConfirmation(friends int) string
	Equipment(activity domain.ActivityType) []string
}

// Notifier receives a JSON payload for every store mutation.
type Notifier interface {
	Broadcast(topic string, payload []byte)
}

// JoinPolicy decides what happens when a join request names a client that is
// already pending or enrolled on the trip.
type JoinPolicy string

const (
	JoinReject JoinPolicy = "reject"
	JoinDedupe JoinPolicy = "dedupe"
	JoinAllow  JoinPolicy = "allow"
)

func ParseJoinPolicy(s string) (JoinPolicy, error) {
	switch p := JoinPolicy(s); p {
	case JoinReject, JoinDedupe, JoinAllow:
		return p, nil
	case "":
		return JoinReject, nil
	}
	return "", errors.New("unknown join policy: " + s)
}

type JoinRequest struct {
	TripID    string
	Requester domain.Client
	Date      string
	FriendIDs []string
}

type JoinResult struct {
	Trip    domain.Trip     `json:"trip"`
	Added   []domain.Client `json:"added"`
	Message string          `json:"message"`
}

// Event is published on the hub after each mutation.
type Event struct {
	Type     string       `json:"type"`
	TripID   string       `json:"trip_id"`
	ClientID string       `json:"client_id,omitempty"`
	Count    int          `json:"count,omitempty"`
	Trip     *domain.Trip `json:"trip,omitempty"`
}

const (
	EventTripAdded       = "trip_added"
	EventJoinRequested   = "join_requested"
	EventRequestApproved = "request_approved"
	EventTripsReplaced   = "trips_replaced"
)

// TopicAll receives every trip event in addition to the per-trip topic.
const TopicAll = "trips"
