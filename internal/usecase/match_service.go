package usecase

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/live-scoreboard/internal/domain/match"
	idgen "github.com/riskibarqy/live-scoreboard/internal/platform/id"
	"github.com/riskibarqy/live-scoreboard/internal/platform/logging"
)

// MatchService is the only entry point allowed to change live matches.
//
// Registry calls are atomic one by one. Every read-then-write sequence
// (start, score update, finish) runs under writeMu, so two starts sharing a
// team cannot both succeed and a finished match is never saved again.
type MatchService struct {
	registry match.Registry
	idGen    idgen.Generator
	logger   *logging.Logger
	now      func() time.Time
	sequence atomic.Uint64
	writeMu  sync.Mutex
}

func NewMatchService(registry match.Registry, idGen idgen.Generator, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		registry: registry,
		idGen:    idGen,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *MatchService) StartMatch(ctx context.Context, homeTeam, awayTeam string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.StartMatch",
		attrHomeTeam.String(homeTeam), attrAwayTeam.String(awayTeam))
	defer span.End()

	if err := validateTeams(homeTeam, awayTeam); err != nil {
		return match.Match{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	live, err := s.registry.List(ctx)
	if err != nil {
		return match.Match{}, errors.Wrap(err, "list live matches")
	}
	for _, item := range live {
		if item.Involves(homeTeam) || item.Involves(awayTeam) {
			return match.Match{}, errors.Wrapf(ErrConflict,
				"team already playing in match %s (%s vs %s)", item.ID, item.HomeTeam, item.AwayTeam)
		}
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, errors.Wrapf(ErrDependencyUnavailable, "generate match id: %v", err)
	}

	created, err := s.registry.Save(ctx, match.Match{
		ID:        matchID,
		HomeTeam:  homeTeam,
		AwayTeam:  awayTeam,
		StartedAt: s.now().UTC(),
		Sequence:  s.sequence.Add(1),
	})
	if err != nil {
		return match.Match{}, errors.Wrap(err, "save match")
	}

	s.logger.InfoContext(ctx, "match started",
		"match_id", created.ID,
		"home_team", created.HomeTeam,
		"away_team", created.AwayTeam,
	)

	return created, nil
}

func (s *MatchService) UpdateMatchScore(ctx context.Context, matchID string, homeScore, awayScore int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateMatchScore", attrMatchID.String(matchID))
	defer span.End()

	_, err := s.updateMatchScore(ctx, matchID, homeScore, awayScore)
	return err
}

func (s *MatchService) updateMatchScore(ctx context.Context, matchID string, homeScore, awayScore int) (match.Match, error) {
	if homeScore < 0 {
		return match.Match{}, errors.Wrapf(ErrInvalidInput, "home score cannot be negative, got %d", homeScore)
	}
	if awayScore < 0 {
		return match.Match{}, errors.Wrapf(ErrInvalidInput, "away score cannot be negative, got %d", awayScore)
	}
	if homeScore > match.MaxScore || awayScore > match.MaxScore {
		return match.Match{}, errors.Wrapf(ErrInvalidInput, "score cannot exceed %d, got %d-%d", match.MaxScore, homeScore, awayScore)
	}
	if err := validateMatchID(matchID); err != nil {
		return match.Match{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	updated, err := s.registry.Save(ctx, current.WithScore(homeScore, awayScore))
	if err != nil {
		return match.Match{}, errors.Wrapf(err, "save match %s", matchID)
	}

	s.logger.InfoContext(ctx, "match score updated",
		"match_id", updated.ID,
		"home_score", updated.HomeScore,
		"away_score", updated.AwayScore,
	)

	return updated, nil
}

func (s *MatchService) FinishMatch(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.FinishMatch", attrMatchID.String(matchID))
	defer span.End()

	if err := validateMatchID(matchID); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.getMatch(ctx, matchID)
	if err != nil {
		return err
	}

	if err := s.registry.DeleteByID(ctx, current.ID); err != nil {
		return errors.Wrapf(err, "delete match %s", current.ID)
	}

	s.logger.InfoContext(ctx, "match finished",
		"match_id", current.ID,
		"home_team", current.HomeTeam,
		"away_team", current.AwayTeam,
		"home_score", current.HomeScore,
		"away_score", current.AwayScore,
	)

	return nil
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch", attrMatchID.String(matchID))
	defer span.End()

	if err := validateMatchID(matchID); err != nil {
		return match.Match{}, err
	}

	return s.getMatch(ctx, matchID)
}

// ListLiveMatches returns live matches in scoreboard order.
func (s *MatchService) ListLiveMatches(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListLiveMatches")
	defer span.End()

	items, err := s.registry.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list live matches")
	}

	sort.SliceStable(items, func(i, j int) bool {
		return match.RanksBefore(items[i], items[j])
	})

	return items, nil
}

// GetMatchSummary renders the scoreboard, one line per live match:
// "{rank}. {home} {homeScore} - {away} {awayScore}".
func (s *MatchService) GetMatchSummary(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatchSummary")
	defer span.End()

	items, err := s.ListLiveMatches(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "formatting scoreboard", "matches", len(items))

	lines := make([]string, 0, len(items))
	for idx, item := range items {
		lines = append(lines, formatSummaryLine(idx+1, item))
	}

	return lines, nil
}

func (s *MatchService) getMatch(ctx context.Context, matchID string) (match.Match, error) {
	item, exists, err := s.registry.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, errors.Wrapf(err, "get match %s", matchID)
	}
	if !exists {
		return match.Match{}, errors.Wrapf(ErrNotFound, "match %s", matchID)
	}

	return item, nil
}

func formatSummaryLine(rank int, item match.Match) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(rank))
	b.WriteString(". ")
	b.WriteString(item.HomeTeam)
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(item.HomeScore))
	b.WriteString(" - ")
	b.WriteString(item.AwayTeam)
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(item.AwayScore))
	return b.String()
}

func validateTeams(homeTeam, awayTeam string) error {
	if strings.TrimSpace(homeTeam) == "" {
		return errors.Wrap(ErrInvalidInput, "home team is required")
	}
	if strings.TrimSpace(awayTeam) == "" {
		return errors.Wrap(ErrInvalidInput, "away team is required")
	}
	if strings.EqualFold(strings.TrimSpace(homeTeam), strings.TrimSpace(awayTeam)) {
		return errors.Wrapf(ErrInvalidInput, "home and away teams cannot be the same (%s)", homeTeam)
	}

	return nil
}

func validateMatchID(matchID string) error {
	if strings.TrimSpace(matchID) == "" {
		return errors.Wrap(ErrInvalidInput, "match id is required")
	}
	return nil
}
