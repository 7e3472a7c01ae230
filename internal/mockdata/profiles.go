package mockdata

import (
	"time"

	"backend-alpsconnect/internal/domain"
)

func buildReviews(loc *Locale) []domain.Review {
	return []domain.Review{
		{ID: "r1", AuthorName: "Guida Alpina Marco", Rating: 5, Comment: loc.Client.Reviews["r1"], Date: "2023-08-10", Role: "Guide"},
		{ID: "r2", AuthorName: "Guida Luca B.", Rating: 4, Comment: loc.Client.Reviews["r2"], Date: "2023-02-15", Role: "Guide"},
	}
}

func buildClients(loc *Locale, now time.Time) Clients {
	tx := loc.Client.Transactions
	main := domain.Client{
		ID:    MainClientID,
		Name:  "Marco Rossi",
		Email: "marco@test.com",
		Passport: domain.SportsPassport{
			Level:           loc.Client.Levels.Main,
			Verified:        true,
			YearsExperience: 5,
			LastAscents:     []string{"Gran Paradiso", "Breithorn Occidentale", "Piz Palü"},
			FitnessScore:    85,
			TechnicalScore:  65,
		},
		BillingInfo: &domain.BillingInfo{
			Address: "Via delle Alpi 12",
			City:    "Milano",
			ZipCode: "20100",
			Country: loc.Client.Country,
			TaxID:   "RSSMRC80A01H501U",
		},
		Reviews: buildReviews(loc),
		Transactions: []domain.Transaction{
			{ID: "tx-001", Date: "2023-12-15", Description: tx["tx-001"], Amount: 150, Type: "deposit", Status: "completed", GuideName: "Jean-Pierre Luc", TripTitle: "Freeride a Courmayeur", Method: "Credit Card"},
			{ID: "tx-002", Date: RelativeDate(now, -1), Description: tx["tx-002"], Amount: 200, Type: "balance", Status: "pending", GuideName: "Jean-Pierre Luc", TripTitle: "Freeride a Courmayeur", Method: "Bank Transfer"},
			{ID: "tx-003", Date: "2023-11-20", Description: tx["tx-003"], Amount: 360, Type: "full_payment", Status: "completed", GuideName: "Sara Conti", TripTitle: loc.Client.ClimbingCourse, Method: "Apple Pay"},
			{ID: "tx-004", Date: "2023-10-05", Description: tx["tx-004"], Amount: 120, Type: "refund", Status: "completed", GuideName: "Marco Belli", TripTitle: "Canyoning Val Bodengo", Method: "Credit Card"},
		},
	}

	derive := func(id, name, email, level string, years, requestedIn int) domain.Client {
		c := domain.Client{
			ID:            id,
			Name:          name,
			Email:         email,
			Passport:      main.Clone().Passport,
			Reviews:       []domain.Review{},
			Transactions:  []domain.Transaction{},
			RequestedDate: RelativeDate(now, requestedIn),
		}
		c.Passport.Level = level
		c.Passport.YearsExperience = years
		return c
	}

	return Clients{
		Main:   main,
		Second: derive(SecondClientID, "Elena Bianchi", "elena@test.com", loc.Client.Levels.Second, 8, 2),
		Third:  derive(ThirdClientID, "Roberto Verdi", "rob@test.com", loc.Client.Levels.Third, 1, 5),
	}
}

func buildGuide(loc *Locale) domain.Guide {
	amounts := []float64{3200, 4500, 3800, 2100, 1500, 4200, 5100, 4800, 3000, 1800, 1200, 2900}
	counts := []int{8, 12, 10, 5, 4, 11, 14, 13, 7, 4, 3, 8}
	earnings := make([]domain.MonthlyEarning, 0, len(amounts))
	for i, amount := range amounts {
		month := ""
		if i < len(loc.Guide.Months) {
			month = loc.Guide.Months[i]
		}
		earnings = append(earnings, domain.MonthlyEarning{Month: month, Amount: amount, TripsCount: counts[i]})
	}

	perf := []domain.ActivityPerformance{
		{Revenue: 90, Demand: 85, Satisfaction: 95},
		{Revenue: 80, Demand: 70, Satisfaction: 88},
		{Revenue: 60, Demand: 50, Satisfaction: 92},
		{Revenue: 75, Demand: 65, Satisfaction: 90},
		{Revenue: 40, Demand: 30, Satisfaction: 85},
		{Revenue: 55, Demand: 40, Satisfaction: 98},
	}
	for i := range perf {
		if i < len(loc.Guide.Performance) {
			perf[i].Activity = loc.Guide.Performance[i]
		}
	}

	return domain.Guide{
		ID:          MainGuideID,
		Name:        mainGuideName,
		Email:       "jp.luc@guidealpine.it",
		PhoneNumber: "+39 333 1234567",
		Avatar:      mainGuideAvatar,
		AlboNumber:  "IT-AO-1234",
		Bio:         loc.Guide.Bio,
		Reviews: []domain.Review{
			{ID: "gr1", AuthorName: "Paolo V.", Rating: 5, Comment: loc.Guide.Reviews["gr1"], Date: "2023-04-12", Role: "Client"},
			{ID: "gr2", AuthorName: "Anna S.", Rating: 5, Comment: loc.Guide.Reviews["gr2"], Date: "2023-08-20", Role: "Client"},
			{ID: "gr3", AuthorName: "Mark D.", Rating: 4, Comment: loc.Guide.Reviews["gr3"], Date: "2023-02-10", Role: "Client"},
		},
		EarningsHistory: earnings,
		MarketTrends: []domain.MarketTrend{
			{Activity: "Ski Touring", Demand: 85},
			{Activity: "Freeride", Demand: 60},
			{Activity: "Ice Climbing", Demand: 30},
			{Activity: loc.Guide.Mountaineering, Demand: 75},
		},
		ClientOrigins: []domain.RegionCount{
			{Region: "Lombardia", Count: 45},
			{Region: "Piemonte", Count: 20},
			{Region: "Veneto", Count: 15},
			{Region: loc.Guide.AbroadEU, Count: 12},
			{Region: loc.Guide.AbroadNonEU, Count: 8},
		},
		ClientDemographics: []domain.AgeRangeCount{
			{Range: "16-25", Count: 12},
			{Range: "26-40", Count: 45},
			{Range: "41-55", Count: 28},
			{Range: "55-70", Count: 10},
			{Range: "Over 70", Count: 5},
		},
		ActivityPerformance: perf,
		Invoices: []domain.Invoice{
			{ID: "INV-001", ClientName: "Mario Rossi", Date: "2024-02-10", Amount: 350, Status: "Paid"},
			{ID: "INV-002", ClientName: "Giulia Bianchi", Date: "2024-02-15", Amount: 400, Status: "Pending"},
			{ID: "INV-003", ClientName: "Team RedBull", Date: "2024-01-20", Amount: 1200, Status: "Paid"},
		},
	}
}

func buildChats(loc *Locale, now time.Time) (guideChats, clientChats []domain.ChatConversation) {
	ago := func(d time.Duration) string { return now.Add(-d).Format(time.RFC3339) }
	g := loc.Chats.Guide
	c := loc.Chats.Client

	guideChats = []domain.ChatConversation{
		{
			ID:                "c1",
			ParticipantID:     MainClientID,
			ParticipantName:   "Marco Rossi",
			ParticipantAvatar: "https://ui-avatars.com/api/?name=Marco+Rossi&background=random",
			ParticipantRole:   "Client",
			LastMessage:       g["m3"],
			LastMessageTime:   ago(30 * time.Minute),
			UnreadCount:       1,
			Messages: []domain.ChatMessage{
				{ID: "m1", SenderID: MainClientID, Text: g["m1"], Timestamp: ago(2 * time.Hour), Read: true},
				{ID: "m2", SenderID: domain.SenderSelf, Text: g["m2"], Timestamp: ago(90 * time.Minute), Read: true},
				{ID: "m3", SenderID: MainClientID, Text: g["m3"], Timestamp: ago(30 * time.Minute), Read: false},
			},
		},
		{
			ID:                "c2",
			ParticipantID:     SecondClientID,
			ParticipantName:   "Elena Bianchi",
			ParticipantAvatar: "https://ui-avatars.com/api/?name=Elena+Bianchi&background=random",
			ParticipantRole:   "Client",
			LastMessage:       g["m5"],
			LastMessageTime:   ago(24 * time.Hour),
			UnreadCount:       0,
			Messages: []domain.ChatMessage{
				{ID: "m4", SenderID: domain.SenderSelf, Text: g["m4"], Timestamp: ago(25 * time.Hour), Read: true},
				{ID: "m5", SenderID: SecondClientID, Text: g["m5"], Timestamp: ago(24 * time.Hour), Read: true},
			},
		},
	}

	clientChats = []domain.ChatConversation{
		{
			ID:                "c1",
			ParticipantID:     MainGuideID,
			ParticipantName:   mainGuideName,
			ParticipantAvatar: mainGuideAvatar,
			ParticipantRole:   "Guide",
			LastMessage:       c["m3"],
			LastMessageTime:   ago(5 * time.Minute),
			UnreadCount:       0,
			Messages: []domain.ChatMessage{
				{ID: "m1", SenderID: domain.SenderSelf, Text: c["m1"], Timestamp: ago(time.Hour), Read: true},
				{ID: "m2", SenderID: MainGuideID, Text: c["m2"], Timestamp: ago(10 * time.Minute), Read: true},
				{ID: "m3", SenderID: MainGuideID, Text: c["m3"], Timestamp: ago(5 * time.Minute), Read: true},
			},
		},
	}
	return guideChats, clientChats
}
