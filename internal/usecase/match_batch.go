package usecase

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
)

const defaultScoreBatchWorkers = 4

const (
	scoreUpdateStatusApplied = "applied"
	scoreUpdateStatusFailed  = "failed"
)

type ScoreUpdate struct {
	MatchID   string
	HomeScore int
	AwayScore int
}

type ScoreUpdateResult struct {
	MatchID    string `json:"match_id"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
	// Err keeps the original failure so callers can classify it.
	Err error `json:"-"`
}

type BatchResult struct {
	TotalCount   int                 `json:"total_count"`
	AppliedCount int                 `json:"applied_count"`
	FailedCount  int                 `json:"failed_count"`
	WorkerCount  int                 `json:"worker_count"`
	Items        []ScoreUpdateResult `json:"items"`
}

// ApplyScoreUpdates runs score updates on a bounded worker pool. Updates for
// different matches run in parallel; updates sharing a match id run in input
// order on one worker. Items are reported in input order and a failed item
// never stops the rest.
func (s *MatchService) ApplyScoreUpdates(ctx context.Context, updates []ScoreUpdate, maxWorkers int) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ApplyScoreUpdates", attrBatchItems.Int(len(updates)))
	defer span.End()

	result := BatchResult{
		TotalCount: len(updates),
		Items:      make([]ScoreUpdateResult, len(updates)),
	}
	if len(updates) == 0 {
		return result, nil
	}

	groups := groupScoreUpdates(updates)

	workerCount := maxWorkers
	if workerCount <= 0 {
		workerCount = defaultScoreBatchWorkers
	}
	if workerCount > len(groups) {
		workerCount = len(groups)
	}
	result.WorkerCount = workerCount

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BatchResult{}, errors.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	var appliedCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, indexes := range groups {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			// Updates to one match run in input order so the last one wins.
			for _, idx := range indexes {
				update := updates[idx]
				start := time.Now()
				row := ScoreUpdateResult{MatchID: update.MatchID}

				_, updateErr := s.updateMatchScore(ctx, update.MatchID, update.HomeScore, update.AwayScore)
				if updateErr != nil {
					row.Status = scoreUpdateStatusFailed
					row.Message = updateErr.Error()
					row.Err = updateErr
					failedCount.Add(1)
				} else {
					row.Status = scoreUpdateStatusApplied
					appliedCount.Add(1)
				}
				row.DurationMs = time.Since(start).Milliseconds()

				result.Items[idx] = row
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return BatchResult{}, errors.Wrap(err, "submit score update to worker pool")
		}
	}

	workers.Wait()

	result.AppliedCount = int(appliedCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "score batch applied",
		"total", result.TotalCount,
		"applied", result.AppliedCount,
		"failed", result.FailedCount,
		"workers", result.WorkerCount,
	)

	return result, nil
}

// groupScoreUpdates buckets input indexes by match id, keeping first-seen
// order between buckets and input order inside each bucket.
func groupScoreUpdates(updates []ScoreUpdate) [][]int {
	positions := make(map[string]int, len(updates))
	groups := make([][]int, 0, len(updates))
	for idx, update := range updates {
		key := strings.TrimSpace(update.MatchID)
		pos, ok := positions[key]
		if !ok {
			pos = len(groups)
			positions[key] = pos
			groups = append(groups, nil)
		}
		groups[pos] = append(groups[pos], idx)
	}
	return groups
}
