package match

import (
	"strings"
	"time"
)

// MaxScore is the highest score accepted for either side.
const MaxScore = 999

// Match is one fixture currently in progress.
type Match struct {
	ID        string
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	StartedAt time.Time
	// Sequence is the creation ordinal, used as the last ordering tiebreak.
	Sequence uint64
}

func (m Match) TotalScore() int {
	return m.HomeScore + m.AwayScore
}

// WithScore returns a copy carrying the new scores. Identity fields are kept.
func (m Match) WithScore(homeScore, awayScore int) Match {
	m.HomeScore = homeScore
	m.AwayScore = awayScore
	return m
}

// Involves reports whether team plays on either side, ignoring case.
func (m Match) Involves(team string) bool {
	team = strings.TrimSpace(team)
	return strings.EqualFold(strings.TrimSpace(m.HomeTeam), team) ||
		strings.EqualFold(strings.TrimSpace(m.AwayTeam), team)
}

// RanksBefore orders matches for the summary: higher total first, then the
// most recently started, then the most recently created.
func RanksBefore(a, b Match) bool {
	if a.TotalScore() != b.TotalScore() {
		return a.TotalScore() > b.TotalScore()
	}
	if !a.StartedAt.Equal(b.StartedAt) {
		return a.StartedAt.After(b.StartedAt)
	}
	return a.Sequence > b.Sequence
}
