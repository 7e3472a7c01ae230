package mockdata

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"backend-alpsconnect/internal/domain"
)

// DateLayout is the calendar-date format used for every trip and request date.
const DateLayout = "2006-01-02"

// Clients groups the three mock client profiles.
type Clients struct {
	Main   domain.Client `json:"main" yaml:"main"`
	Second domain.Client `json:"second" yaml:"second"`
	Third  domain.Client `json:"third" yaml:"third"`
}

// All returns the clients in id order.
func (c Clients) All() []domain.Client {
	return []domain.Client{c.Main, c.Second, c.Third}
}

// Snapshot is one complete generation of mock data for a language.
type Snapshot struct {
	Lang        string                    `json:"lang" yaml:"lang"`
	Trips       []domain.Trip             `json:"trips" yaml:"trips"`
	Clients     Clients                   `json:"clients" yaml:"clients"`
	Guide       domain.Guide              `json:"guide" yaml:"guide"`
	GuideChats  []domain.ChatConversation `json:"guideChats" yaml:"guideChats"`
	ClientChats []domain.ChatConversation `json:"clientChats" yaml:"clientChats"`
	Locale      *Locale                   `json:"-" yaml:"-"`
}

type Option func(*Generator)

// WithSeed makes every random field reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.rng = rand.New(rand.NewSource(seed)) }
}

func WithSource(src rand.Source) Option {
	return func(g *Generator) { g.rng = rand.New(src) }
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// Generator fabricates trips, clients, the guide profile and chat threads.
// Text depends only on the language; random fields come from the injected source.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func New(opts ...Option) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RelativeDate returns the calendar date days away from now.
func RelativeDate(now time.Time, days int) string {
	return now.AddDate(0, 0, days).Format(DateLayout)
}

func (g *Generator) Generate(lang string) (Snapshot, error) {
	loc, err := LookupLocale(lang)
	if err != nil {
		return Snapshot{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	clients := buildClients(loc, now)
	guideChats, clientChats := buildChats(loc, now)

	return Snapshot{
		Lang:        loc.Lang,
		Trips:       g.buildTrips(loc, now, clients),
		Clients:     clients,
		Guide:       buildGuide(loc),
		GuideChats:  guideChats,
		ClientChats: clientChats,
		Locale:      loc,
	}, nil
}

func (g *Generator) buildTrips(loc *Locale, now time.Time, clients Clients) []domain.Trip {
	rel := func(days int) string { return RelativeDate(now, days) }

	trips := baseTrips(loc, rel, clients)

	for i := 0; i < GeneratedTrips; i++ {
		place := locations[i%len(locations)]
		act := activities[i%len(activities)]
		guideIdx := i % len(guides)

		offset := g.rng.Intn(MaxOffsetDays-MinOffsetDays+1) + MinOffsetDays
		date := rel(offset)

		status := domain.StatusUpcoming
		payment := domain.PaymentPending
		if offset < 0 {
			status = domain.StatusCompleted
			if g.rng.Float64() < cancelProbability {
				status = domain.StatusCancelled
			}
			payment = domain.PaymentDeposit
			if status == domain.StatusCompleted {
				payment = domain.PaymentPaid
			}
		} else if g.rng.Float64() < depositProbability {
			payment = domain.PaymentDeposit
		}

		lat := place.Lat + (g.rng.Float64()*2-1)*CoordinateJitter
		lng := place.Lng + (g.rng.Float64()*2-1)*CoordinateJitter
		duration := g.rng.Intn(MaxDurationDays-MinDurationDays+1) + MinDurationDays
		price := act.Price + g.rng.Intn(MaxPriceMarkup+1)
		rating := MinGuideRating + g.rng.Float64()*(MaxGuideRating-MinGuideRating)
		capacity := MinParticipants + g.rng.Intn(MaxParticipants-MinParticipants+1)

		enrolled := []domain.Client{}
		if g.rng.Float64() < enrolledProbability {
			enrolled = append(enrolled, clients.Second.WithRequestedDate(date))
		}
		pending := []domain.Client{}
		if g.rng.Float64() < pendingProbability {
			pending = append(pending, clients.Main.WithRequestedDate(date))
		}

		town, _, _ := strings.Cut(place.Name, ",")
		trips = append(trips, domain.Trip{
			ID:              fmt.Sprintf("gen-%d", i),
			Title:           fmt.Sprintf("%s @ %s", loc.Activities[act.Type], town),
			Location:        place.Name,
			Coordinates:     domain.Coordinates{Lat: lat, Lng: lng},
			Date:            date,
			AvailableFrom:   rel(offset - 2),
			AvailableTo:     rel(offset + 5),
			DurationDays:    duration,
			Price:           price,
			Difficulty:      act.Difficulty,
			ActivityType:    act.Type,
			Description:     fmt.Sprintf(loc.Generated.Description, act.Type, place.Name),
			Equipment:       loc.Equipment(act.Type),
			GuideID:         fmt.Sprintf("g-%d", guideIdx),
			GuideName:       guides[guideIdx].Name,
			GuideAvatar:     guides[guideIdx].Avatar,
			GuideRating:     rating,
			MaxParticipants: capacity,
			EnrolledClients: enrolled,
			PendingRequests: pending,
			Image:           place.Image,
			Status:          status,
			PaymentStatus:   payment,
		})
	}

	for i := 0; i < FutureGuideTrips; i++ {
		act := activities[i%len(activities)]
		place := locations[i%len(locations)]
		trips = append(trips, guideTrip(loc, act, place, domain.Trip{
			ID:              fmt.Sprintf("g1-future-%d", i),
			Title:           fmt.Sprintf("%s - %s %d", loc.Activities[act.Type], loc.Generated.Group, i+1),
			Date:            rel(3 + i),
			AvailableFrom:   rel(1 + i),
			AvailableTo:     rel(10 + i),
			Description:     loc.Generated.FutureDescription,
			MaxParticipants: 6,
			EnrolledClients: []domain.Client{},
			PendingRequests: []domain.Client{},
			Status:          domain.StatusUpcoming,
			PaymentStatus:   domain.PaymentPending,
		}))
	}

	for i := 0; i < PastGuideTrips; i++ {
		act := activities[(i+2)%len(activities)]
		place := locations[(i+2)%len(locations)]
		trips = append(trips, guideTrip(loc, act, place, domain.Trip{
			ID:              fmt.Sprintf("g1-past-%d", i),
			Title:           fmt.Sprintf("%s - %s %d", loc.Activities[act.Type], loc.Generated.Session, i+1),
			Date:            rel(-10 - i*2),
			AvailableFrom:   rel(-15 - i*2),
			AvailableTo:     rel(-5 - i*2),
			Description:     loc.Generated.PastDescription,
			MaxParticipants: 4,
			EnrolledClients: []domain.Client{clients.Main.Clone(), clients.Second.Clone()},
			PendingRequests: []domain.Client{},
			Status:          domain.StatusCompleted,
			PaymentStatus:   domain.PaymentPaid,
		}))
	}

	sort.SliceStable(trips, func(i, j int) bool { return trips[i].Date < trips[j].Date })
	return trips
}

// guideTrip fills the fields shared by every trip of the logged-in guide.
func guideTrip(loc *Locale, act activity, place location, t domain.Trip) domain.Trip {
	t.Location = place.Name
	t.Coordinates = domain.Coordinates{Lat: place.Lat, Lng: place.Lng}
	t.DurationDays = 1
	t.Price = act.Price
	t.Difficulty = act.Difficulty
	t.ActivityType = act.Type
	t.Equipment = loc.Equipment(act.Type)
	t.GuideID = MainGuideID
	t.GuideName = mainGuideName
	t.GuideAvatar = mainGuideAvatar
	t.GuideRating = mainGuideRating
	t.Image = place.Image
	return t
}

func baseTrips(loc *Locale, rel func(int) string, clients Clients) []domain.Trip {
	text := func(id string) tripText {
		tt := loc.BaseTrips[id]
		tt.Equipment = append([]string(nil), tt.Equipment...)
		return tt
	}
	mk := func(id string, t domain.Trip) domain.Trip {
		tt := text(id)
		t.ID = id
		t.Title = tt.Title
		t.Description = tt.Description
		t.Equipment = tt.Equipment
		if t.EnrolledClients == nil {
			t.EnrolledClients = []domain.Client{}
		}
		if t.PendingRequests == nil {
			t.PendingRequests = []domain.Client{}
		}
		return t
	}

	return []domain.Trip{
		mk("t1", domain.Trip{
			Location:        "Courmayeur, AO",
			Coordinates:     domain.Coordinates{Lat: 45.7969, Lng: 6.9672},
			Date:            rel(2),
			AvailableFrom:   rel(-2),
			AvailableTo:     rel(25),
			DurationDays:    1,
			Price:           350,
			Difficulty:      domain.DifficultyHard,
			ActivityType:    domain.ActivitySkiTouring,
			GuideID:         MainGuideID,
			GuideName:       mainGuideName,
			GuideAvatar:     mainGuideAvatar,
			GuideRating:     mainGuideRating,
			MaxParticipants: 4,
			EnrolledClients: []domain.Client{clients.Second.WithRequestedDate(rel(1))},
			PendingRequests: []domain.Client{clients.Main.WithRequestedDate(rel(2))},
			Image:           "https://images.unsplash.com/photo-1551698618-1dfe5d97d256?q=80&w=1000&auto=format&fit=crop",
			Status:          domain.StatusUpcoming,
			PaymentStatus:   domain.PaymentDeposit,
		}),
		mk("t2", domain.Trip{
			Location:        "Arco, TN",
			Coordinates:     domain.Coordinates{Lat: 45.9177, Lng: 10.8867},
			Date:            rel(10),
			AvailableFrom:   rel(5),
			AvailableTo:     rel(60),
			DurationDays:    3,
			Price:           360,
			Difficulty:      domain.DifficultyEasy,
			ActivityType:    domain.ActivityClimbing,
			GuideID:         "g2",
			GuideName:       "Sara Conti",
			GuideAvatar:     "https://ui-avatars.com/api/?name=Sara+Conti&background=ec4899&color=fff",
			GuideRating:     4.8,
			MaxParticipants: 6,
			Image:           "https://images.unsplash.com/photo-1522690984813-f9a882d92176?q=80&w=1000&auto=format&fit=crop",
			Status:          domain.StatusUpcoming,
			PaymentStatus:   domain.PaymentPending,
		}),
		mk("t3", domain.Trip{
			Location:        "Cogne, AO",
			Coordinates:     domain.Coordinates{Lat: 45.6083, Lng: 7.3556},
			Date:            rel(5),
			AvailableFrom:   rel(3),
			AvailableTo:     rel(12),
			DurationDays:    2,
			Price:           400,
			Difficulty:      domain.DifficultyModerate,
			ActivityType:    domain.ActivityIceClimbing,
			GuideID:         MainGuideID,
			GuideName:       mainGuideName,
			GuideAvatar:     mainGuideAvatar,
			GuideRating:     mainGuideRating,
			MaxParticipants: 4,
			EnrolledClients: []domain.Client{clients.Second.WithRequestedDate(rel(5))},
			Image:           "https://images.unsplash.com/photo-1516550893923-42d28e5677af?q=80&w=1000&auto=format&fit=crop",
			Status:          domain.StatusUpcoming,
			PaymentStatus:   domain.PaymentPending,
		}),
		mk("t4", domain.Trip{
			Location:        "Chamonix, FR",
			Coordinates:     domain.Coordinates{Lat: 45.9237, Lng: 6.8694},
			Date:            rel(20),
			AvailableFrom:   rel(18),
			AvailableTo:     rel(25),
			DurationDays:    6,
			Price:           1200,
			Difficulty:      domain.DifficultyExpert,
			ActivityType:    domain.ActivitySkiTouring,
			GuideID:         MainGuideID,
			GuideName:       mainGuideName,
			GuideAvatar:     mainGuideAvatar,
			GuideRating:     mainGuideRating,
			MaxParticipants: 6,
			PendingRequests: []domain.Client{clients.Main.WithRequestedDate(rel(20))},
			Image:           "https://images.unsplash.com/photo-1483728642387-6c3bdd6c93e5?q=80&w=1000&auto=format&fit=crop",
			Status:          domain.StatusUpcoming,
			PaymentStatus:   domain.PaymentPending,
		}),
		mk("t7", domain.Trip{
			Location:        "Valsavarenche, AO",
			Coordinates:     domain.Coordinates{Lat: 45.5204, Lng: 7.2662},
			Date:            rel(1),
			AvailableFrom:   rel(0),
			AvailableTo:     rel(15),
			DurationDays:    2,
			Price:           450,
			Difficulty:      domain.DifficultyHard,
			ActivityType:    domain.ActivityMountaineering,
			GuideID:         MainGuideID,
			GuideName:       mainGuideName,
			GuideAvatar:     mainGuideAvatar,
			GuideRating:     mainGuideRating,
			MaxParticipants: 4,
			EnrolledClients: []domain.Client{clients.Third.WithRequestedDate(rel(1))},
			Image:           "https://images.unsplash.com/photo-1605540436563-5bca919bdd35?q=80&w=1000&auto=format&fit=crop",
			Status:          domain.StatusUpcoming,
			PaymentStatus:   domain.PaymentPaid,
		}),
	}
}
