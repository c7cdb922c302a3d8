package adapter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// StubWatchlistLookup is a development/test adapter that answers watch-list
// screens from a fixed in-memory set of client IDs. It implements
// port.WatchlistLookup.
type StubWatchlistLookup struct {
	mu     sync.RWMutex
	listed map[string]struct{}
}

// NewStubWatchlistLookup creates a stub seeded with the given client IDs.
func NewStubWatchlistLookup(listedIDs ...string) *StubWatchlistLookup {
	listed := make(map[string]struct{}, len(listedIDs))
	for _, id := range listedIDs {
		listed[strings.TrimSpace(id)] = struct{}{}
	}
	return &StubWatchlistLookup{listed: listed}
}

// IsListed reports whether the client appears in the seeded set.
func (s *StubWatchlistLookup) IsListed(_ context.Context, clientID string, _ time.Time) (bool, error) {
	if clientID == "" {
		return false, fmt.Errorf("client ID is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.listed[clientID]
	return ok, nil
}
