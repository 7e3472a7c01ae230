package demo

import (
	"log"
	"sync"

	"backend-alpsconnect/internal/chat"
	"backend-alpsconnect/internal/mockdata"
	"backend-alpsconnect/internal/profile"
	"backend-alpsconnect/internal/trip"
)

// Environment owns the generated demo world. Loading a language rebuilds it
// from scratch and discards every mutation made since the previous load.
type Environment struct {
	mu        sync.RWMutex
	generator *mockdata.Generator
	trips     *trip.Store
	chats     *chat.Store
	profiles  *profile.Store
	snapshot  mockdata.Snapshot
}

func NewEnvironment(gen *mockdata.Generator, trips *trip.Store, chats *chat.Store, profiles *profile.Store) *Environment {
	return &Environment{
		generator: gen,
		trips:     trips,
		chats:     chats,
		profiles:  profiles,
	}
}

func (e *Environment) Load(lang string) (mockdata.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.generator.Generate(lang)
	if err != nil {
		return mockdata.Snapshot{}, err
	}

	e.trips.Replace(snap.Trips, snap.Locale)
	e.chats.Replace(snap.GuideChats, snap.ClientChats)
	e.profiles.Replace(snap.Guide, snap.Clients.All())
	e.snapshot = snap

	log.Printf("demo data loaded: lang=%s trips=%d", snap.Lang, len(snap.Trips))
	return snap, nil
}

// Language is empty until the first successful Load.
func (e *Environment) Language() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot.Lang
}

// Snapshot returns the data as generated, without later store mutations.
func (e *Environment) Snapshot() mockdata.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}
