package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/live-scoreboard/internal/domain/match"
)

// MatchRegistry keeps live matches in process memory.
//
// Every call is atomic on its own. List copies the map under a read lock, so
// one snapshot never mixes states, but two calls may observe different sets
// when writers run in between. Iteration order of List is not defined.
type MatchRegistry struct {
	mu      sync.RWMutex
	matches map[string]match.Match
}

func NewMatchRegistry() *MatchRegistry {
	return &MatchRegistry{matches: make(map[string]match.Match)}
}

func (r *MatchRegistry) Save(_ context.Context, item match.Match) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.matches[item.ID] = item
	return item, nil
}

func (r *MatchRegistry) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matches[matchID]
	return item, ok, nil
}

func (r *MatchRegistry) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	for _, item := range r.matches {
		out = append(out, item)
	}
	return out, nil
}

func (r *MatchRegistry) DeleteByID(_ context.Context, matchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.matches, matchID)
	return nil
}
