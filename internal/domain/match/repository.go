package match

import "context"

// Registry stores live matches keyed by id. It applies no business rules;
// a missing id is reported through the bool return, never as an error.
type Registry interface {
	Save(ctx context.Context, item Match) (Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	List(ctx context.Context) ([]Match, error)
	DeleteByID(ctx context.Context, matchID string) error
}
