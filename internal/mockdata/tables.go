package mockdata

import "backend-alpsconnect/internal/domain"

type location struct {
	Name  string
	Lat   float64
	Lng   float64
	Image string
}

var locations = []location{
	{"Courmayeur, AO", 45.7969, 6.9672, "https://images.unsplash.com/photo-1551698618-1dfe5d97d256?q=80&w=1000"},
	{"Dolomiti, TN", 46.4102, 11.8440, "https://images.unsplash.com/photo-1464822759023-fed622ff2c3b?q=80&w=1000"},
	{"Cervinia, AO", 45.9336, 7.6310, "https://images.unsplash.com/photo-1518182170546-07fa6ee06940?q=80&w=1000"},
	{"Gran Sasso, AQ", 42.4529, 13.5574, "https://images.unsplash.com/photo-1662973767675-eb7ac8c3a276?q=80&w=1000"},
	{"Finale Ligure, SV", 44.1706, 8.3435, "https://images.unsplash.com/photo-1522690984813-f9a882d92176?q=80&w=1000"},
	{"Etna, CT", 37.7510, 14.9934, "https://images.unsplash.com/photo-1454496522488-7a8e488e8606?q=80&w=1000"},
	{"Val di Mello, SO", 46.2084, 9.6322, "https://images.unsplash.com/photo-1483728642387-6c3bdd6c93e5?q=80&w=1000"},
	{"Adamello, BS", 46.1500, 10.5000, "https://images.unsplash.com/photo-1519681393784-d120267933ba?q=80&w=1000"},
}

type activity struct {
	Type       domain.ActivityType
	Difficulty domain.Difficulty
	Price      int
}

var activities = []activity{
	{domain.ActivitySkiTouring, domain.DifficultyHard, 350},
	{domain.ActivityClimbing, domain.DifficultyModerate, 300},
	{domain.ActivityMountaineering, domain.DifficultyExpert, 450},
	{domain.ActivityFreeride, domain.DifficultyHard, 380},
	{domain.ActivityHiking, domain.DifficultyEasy, 150},
	{domain.ActivityCanyoning, domain.DifficultyModerate, 200},
}

type guideRef struct {
	Name   string
	Avatar string
}

var guides = []guideRef{
	{"Jean-Pierre Luc", "https://ui-avatars.com/api/?name=Jean+Pierre&background=0d9488&color=fff"},
	{"Sara Conti", "https://ui-avatars.com/api/?name=Sara+Conti&background=ec4899&color=fff"},
	{"Marco Belli", "https://ui-avatars.com/api/?name=Marco+Belli&background=f59e0b&color=fff"},
	{"Luca Ferrari", "https://ui-avatars.com/api/?name=Luca+Ferrari&background=3b82f6&color=fff"},
	{"Giulia Bianchi", "https://ui-avatars.com/api/?name=Giulia+Bianchi&background=8b5cf6&color=fff"},
}

const (
	MainGuideID     = "g1"
	mainGuideName   = "Jean-Pierre Luc"
	mainGuideAvatar = "https://ui-avatars.com/api/?name=Jean+Pierre&background=0d9488&color=fff"
	mainGuideRating = 4.9

	MainClientID   = "client-1"
	SecondClientID = "client-2"
	ThirdClientID  = "client-3"
)

// Bounds of the procedurally generated trips.
const (
	GeneratedTrips      = 80
	FutureGuideTrips    = 15
	PastGuideTrips      = 10
	MinOffsetDays       = -20
	MaxOffsetDays       = 59
	CoordinateJitter    = 0.025
	MinDurationDays     = 1
	MaxDurationDays     = 3
	MaxPriceMarkup      = 49
	MinGuideRating      = 4.5
	MaxGuideRating      = 5.0
	MinParticipants     = 4
	MaxParticipants     = 7
	enrolledProbability = 0.5
	pendingProbability  = 0.3
	cancelProbability   = 0.2
	depositProbability  = 0.5
)

// Role names carried by demo identities.
const (
	RoleGuide  = "guide"
	RoleClient = "client"
)

// Identity is a fixed demo login.
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// Identities lists the demo accounts that exist in every generated snapshot.
func Identities() []Identity {
	return []Identity{
		{ID: MainGuideID, Name: mainGuideName, Email: "jp.luc@guidealpine.it", Role: RoleGuide},
		{ID: MainClientID, Name: "Marco Rossi", Email: "marco@test.com", Role: RoleClient},
		{ID: SecondClientID, Name: "Elena Bianchi", Email: "elena@test.com", Role: RoleClient},
		{ID: ThirdClientID, Name: "Roberto Verdi", Email: "rob@test.com", Role: RoleClient},
	}
}
