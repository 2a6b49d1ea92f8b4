package httpapi

import (
	"time"

	"github.com/riskibarqy/live-scoreboard/internal/domain/match"
)

type startMatchRequest struct {
	HomeTeam string `json:"home_team" validate:"required,max=100"`
	AwayTeam string `json:"away_team" validate:"required,max=100"`
}

// Scores are pointers so an omitted score is rejected instead of read as 0.
type updateScoreRequest struct {
	HomeScore *int `json:"home_score" validate:"required,min=0,max=999"`
	AwayScore *int `json:"away_score" validate:"required,min=0,max=999"`
}

type scoreBatchItemRequest struct {
	MatchID   string `json:"match_id" validate:"required"`
	HomeScore *int   `json:"home_score" validate:"required,max=999"`
	AwayScore *int   `json:"away_score" validate:"required,max=999"`
}

type scoreBatchRequest struct {
	Updates []scoreBatchItemRequest `json:"updates" validate:"required,min=1,dive"`
}

type matchDTO struct {
	ID         string `json:"id"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
	TotalScore int    `json:"total_score"`
	StartedAt  string `json:"started_at"`
}

type rankedMatchDTO struct {
	Rank int `json:"rank"`
	matchDTO
}

type summaryDTO struct {
	Lines []string `json:"lines"`
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:         v.ID,
		HomeTeam:   v.HomeTeam,
		AwayTeam:   v.AwayTeam,
		HomeScore:  v.HomeScore,
		AwayScore:  v.AwayScore,
		TotalScore: v.TotalScore(),
		StartedAt:  v.StartedAt.UTC().Format(time.RFC3339Nano),
	}
}
