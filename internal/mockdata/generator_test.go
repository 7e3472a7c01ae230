package mockdata

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"backend-alpsconnect/internal/domain"
)

var fixedNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestGenerator(seed int64) *Generator {
	return New(WithSeed(seed), WithClock(func() time.Time { return fixedNow }))
}

func TestGenerateTripCountAndOrder(t *testing.T) {
	snap, err := newTestGenerator(1).Generate(LangEnglish)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := 5 + GeneratedTrips + FutureGuideTrips + PastGuideTrips
	if len(snap.Trips) != want {
		t.Fatalf("expected %d trips, got %d", want, len(snap.Trips))
	}
	for i := 1; i < len(snap.Trips); i++ {
		if snap.Trips[i-1].Date > snap.Trips[i].Date {
			t.Fatalf("trips not sorted by date at %d", i)
		}
	}
}

func TestGenerateTripsWellFormed(t *testing.T) {
	snap, err := newTestGenerator(2).Generate(LangItalian)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	seen := map[string]bool{}
	for _, trip := range snap.Trips {
		if seen[trip.ID] {
			t.Fatalf("duplicate trip id %s", trip.ID)
		}
		seen[trip.ID] = true
		if !trip.Status.Valid() || !trip.PaymentStatus.Valid() {
			t.Fatalf("trip %s has invalid status %q/%q", trip.ID, trip.Status, trip.PaymentStatus)
		}
		if !trip.Difficulty.Valid() || !trip.ActivityType.Valid() {
			t.Fatalf("trip %s has invalid difficulty or activity", trip.ID)
		}
		if trip.EnrolledClients == nil || trip.PendingRequests == nil {
			t.Fatalf("trip %s has nil client lists", trip.ID)
		}
		for _, c := range append(append([]domain.Client{}, trip.EnrolledClients...), trip.PendingRequests...) {
			if c.ID == "" || c.Name == "" || c.Email == "" {
				t.Fatalf("trip %s has malformed client %+v", trip.ID, c)
			}
		}
		if _, err := time.Parse(DateLayout, trip.Date); err != nil {
			t.Fatalf("trip %s has bad date %q", trip.ID, trip.Date)
		}
		if len(trip.Equipment) == 0 {
			t.Fatalf("trip %s has no equipment", trip.ID)
		}
	}
}

func TestGeneratedTripRules(t *testing.T) {
	snap, err := newTestGenerator(3).Generate(LangEnglish)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	today := fixedNow.Format(DateLayout)
	for _, trip := range snap.Trips {
		if !strings.HasPrefix(trip.ID, "gen-") {
			continue
		}
		if trip.Date < today {
			if trip.Status == domain.StatusUpcoming {
				t.Fatalf("past trip %s marked upcoming", trip.ID)
			}
			if trip.Status == domain.StatusCompleted && trip.PaymentStatus != domain.PaymentPaid {
				t.Fatalf("completed trip %s not paid", trip.ID)
			}
			if trip.Status == domain.StatusCancelled && trip.PaymentStatus != domain.PaymentDeposit {
				t.Fatalf("cancelled trip %s should keep deposit", trip.ID)
			}
		} else {
			if trip.Status != domain.StatusUpcoming {
				t.Fatalf("future trip %s not upcoming", trip.ID)
			}
			if trip.PaymentStatus != domain.PaymentPending && trip.PaymentStatus != domain.PaymentDeposit {
				t.Fatalf("future trip %s has payment %q", trip.ID, trip.PaymentStatus)
			}
		}
	}
}

func TestLanguageSwitchKeepsShapeAndBounds(t *testing.T) {
	it, err := newTestGenerator(42).Generate(LangItalian)
	if err != nil {
		t.Fatalf("generate it: %v", err)
	}
	en, err := newTestGenerator(42).Generate(LangEnglish)
	if err != nil {
		t.Fatalf("generate en: %v", err)
	}
	if len(it.Trips) != len(en.Trips) {
		t.Fatalf("cardinality differs: %d vs %d", len(it.Trips), len(en.Trips))
	}

	byID := map[string]domain.Trip{}
	for _, trip := range it.Trips {
		byID[trip.ID] = trip
	}
	differs := false
	for _, trip := range en.Trips {
		other, ok := byID[trip.ID]
		if !ok {
			t.Fatalf("trip %s missing in it snapshot", trip.ID)
		}
		if other.Description != trip.Description {
			differs = true
		}
		assertGeneratedBounds(t, trip)
		assertGeneratedBounds(t, other)
	}
	if !differs {
		t.Fatalf("expected localized descriptions to differ")
	}
	if it.Guide.Bio == en.Guide.Bio {
		t.Fatalf("expected localized guide bio")
	}
}

func assertGeneratedBounds(t *testing.T, trip domain.Trip) {
	t.Helper()
	if !strings.HasPrefix(trip.ID, "gen-") {
		return
	}
	if trip.DurationDays < MinDurationDays || trip.DurationDays > MaxDurationDays {
		t.Fatalf("trip %s duration %d out of bounds", trip.ID, trip.DurationDays)
	}
	if trip.MaxParticipants < MinParticipants || trip.MaxParticipants > MaxParticipants {
		t.Fatalf("trip %s capacity %d out of bounds", trip.ID, trip.MaxParticipants)
	}
	if trip.GuideRating < MinGuideRating || trip.GuideRating >= MaxGuideRating {
		t.Fatalf("trip %s rating %v out of bounds", trip.ID, trip.GuideRating)
	}
	var base *activity
	for i := range activities {
		if activities[i].Type == trip.ActivityType {
			base = &activities[i]
		}
	}
	if base == nil || trip.Price < base.Price || trip.Price > base.Price+MaxPriceMarkup {
		t.Fatalf("trip %s price %d out of bounds", trip.ID, trip.Price)
	}
	var place *location
	for i := range locations {
		if locations[i].Name == trip.Location {
			place = &locations[i]
		}
	}
	if place == nil {
		t.Fatalf("trip %s has unknown location %q", trip.ID, trip.Location)
	}
	if d := trip.Coordinates.Lat - place.Lat; d < -CoordinateJitter || d > CoordinateJitter {
		t.Fatalf("trip %s latitude out of bounds", trip.ID)
	}
	if d := trip.Coordinates.Lng - place.Lng; d < -CoordinateJitter || d > CoordinateJitter {
		t.Fatalf("trip %s longitude out of bounds", trip.ID)
	}
}

func TestSeedIsReproducible(t *testing.T) {
	a, _ := newTestGenerator(7).Generate(LangEnglish)
	b, _ := newTestGenerator(7).Generate(LangEnglish)
	if !reflect.DeepEqual(a.Trips, b.Trips) {
		t.Fatalf("expected identical trips for identical seeds")
	}
}

func TestGenerateUnsupportedLanguage(t *testing.T) {
	_, err := New().Generate("de")
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("expected unsupported language, got %v", err)
	}
}

func TestGenerateNormalizesLanguage(t *testing.T) {
	snap, err := newTestGenerator(1).Generate(" EN ")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if snap.Lang != LangEnglish {
		t.Fatalf("expected en, got %q", snap.Lang)
	}
}

func TestProfilesAndChats(t *testing.T) {
	snap, err := newTestGenerator(1).Generate(LangItalian)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if snap.Clients.Main.ID != MainClientID || snap.Clients.Main.BillingInfo == nil {
		t.Fatalf("unexpected main client")
	}
	if snap.Clients.Second.Passport.Level != "Esperto" || snap.Clients.Second.Passport.YearsExperience != 8 {
		t.Fatalf("unexpected second client passport")
	}
	if snap.Clients.Third.RequestedDate != RelativeDate(fixedNow, 5) {
		t.Fatalf("unexpected third client requested date")
	}
	if len(snap.Guide.EarningsHistory) != 12 || snap.Guide.EarningsHistory[4].Month != "Mag" {
		t.Fatalf("unexpected earnings history")
	}
	if len(snap.GuideChats) != 2 || len(snap.ClientChats) != 1 {
		t.Fatalf("unexpected chat counts")
	}
	c1 := snap.GuideChats[0]
	if c1.LastMessage != c1.Messages[len(c1.Messages)-1].Text || c1.UnreadCount != 1 {
		t.Fatalf("unexpected last message preview")
	}
}

func TestRelativeDate(t *testing.T) {
	if got := RelativeDate(fixedNow, -10); got != "2026-02-28" {
		t.Fatalf("unexpected date %s", got)
	}
	if got := RelativeDate(fixedNow, 0); got != "2026-03-10" {
		t.Fatalf("unexpected date %s", got)
	}
}
