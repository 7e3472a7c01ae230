package domain

type Difficulty string

const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyModerate Difficulty = "Moderate"
	DifficultyHard     Difficulty = "Hard"
	DifficultyExpert   Difficulty = "Expert"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyHard, DifficultyExpert:
		return true
	}
	return false
}

type ActivityType string

const (
	ActivitySkiTouring     ActivityType = "SkiTouring"
	ActivityClimbing       ActivityType = "Climbing"
	ActivityMountaineering ActivityType = "Mountaineering"
	ActivityFreeride       ActivityType = "Freeride"
	ActivityIceClimbing    ActivityType = "IceClimbing"
	ActivityCanyoning      ActivityType = "Canyoning"
	ActivityHiking         ActivityType = "Hiking"
)

func (a ActivityType) Valid() bool {
	switch a {
	case ActivitySkiTouring, ActivityClimbing, ActivityMountaineering, ActivityFreeride,
		ActivityIceClimbing, ActivityCanyoning, ActivityHiking:
		return true
	}
	return false
}

type TripStatus string

const (
	StatusUpcoming  TripStatus = "upcoming"
	StatusCompleted TripStatus = "completed"
	StatusCancelled TripStatus = "cancelled"
)

func (s TripStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentDeposit PaymentStatus = "deposit"
	PaymentPaid    PaymentStatus = "paid"
	PaymentBalance PaymentStatus = "balance"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentDeposit, PaymentPaid, PaymentBalance:
		return true
	}
	return false
}

type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Trip is a bookable guided outing. Dates are calendar dates (YYYY-MM-DD).
type Trip struct {
	ID              string        `json:"id" yaml:"id"`
	Title           string        `json:"title" yaml:"title"`
	Location        string        `json:"location" yaml:"location"`
	Coordinates     Coordinates   `json:"coordinates" yaml:"coordinates"`
	Date            string        `json:"date" yaml:"date"`
	AvailableFrom   string        `json:"availableFrom" yaml:"availableFrom"`
	AvailableTo     string        `json:"availableTo" yaml:"availableTo"`
	DurationDays    int           `json:"durationDays" yaml:"durationDays"`
	Price           int           `json:"price" yaml:"price"`
	Difficulty      Difficulty    `json:"difficulty" yaml:"difficulty"`
	ActivityType    ActivityType  `json:"activityType" yaml:"activityType"`
	Description     string        `json:"description" yaml:"description"`
	Equipment       []string      `json:"equipment" yaml:"equipment"`
	GuideID         string        `json:"guideId" yaml:"guideId"`
	GuideName       string        `json:"guideName" yaml:"guideName"`
	GuideAvatar     string        `json:"guideAvatar" yaml:"guideAvatar"`
	GuideRating     float64       `json:"guideRating" yaml:"guideRating"`
	MaxParticipants int           `json:"maxParticipants" yaml:"maxParticipants"`
	EnrolledClients []Client      `json:"enrolledClients" yaml:"enrolledClients"`
	PendingRequests []Client      `json:"pendingRequests" yaml:"pendingRequests"`
	Image           string        `json:"image" yaml:"image"`
	Status          TripStatus    `json:"status" yaml:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus" yaml:"paymentStatus"`
}

// Clone returns a copy that shares no slices with t.
func (t Trip) Clone() Trip {
	out := t
	out.Equipment = append([]string(nil), t.Equipment...)
	out.EnrolledClients = cloneClients(t.EnrolledClients)
	out.PendingRequests = cloneClients(t.PendingRequests)
	return out
}

// SpotsLeft is capacity minus enrolled clients, never negative.
func (t Trip) SpotsLeft() int {
	left := t.MaxParticipants - len(t.EnrolledClients)
	if left < 0 {
		return 0
	}
	return left
}

func cloneClients(in []Client) []Client {
	out := make([]Client, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
