// Package aggregate computes weighted totals and ranked results from score
// records and an event's criterion set.
//
// Everything here is a pure function of its inputs: no clock, no shared
// state, no randomness. The Results Cache memoizes these computations; its
// correctness contract is that enabling or disabling the cache never changes
// what this package returns.
package aggregate

import (
	"sort"

	"juryd/internal/domain/model"
)

// DefaultWeight is applied when a score entry references a criterion id that
// is not in the event's current criterion set. Historical scores survive
// criterion edits this way; the behavior is pinned by tests.
const DefaultWeight = 1.0

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithFallbackWeight overrides the weight used for orphaned criterion ids.
func WithFallbackWeight(w float64) Option {
	return func(e *Engine) {
		if w >= 0 {
			e.fallbackWeight = w
		}
	}
}

// Engine computes weighted totals and team rankings.
type Engine struct {
	fallbackWeight float64
}

// NewEngine creates an aggregation engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		fallbackWeight: DefaultWeight,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// weights indexes criterion weights by criterion id.
func weights(criteria []model.Criterion) map[string]float64 {
	m := make(map[string]float64, len(criteria))
	for _, c := range criteria {
		m[c.ID] = c.Weight
	}
	return m
}

// WeightedTotal computes the sum of raw scores multiplied by their criterion
// weights. Scores keyed by an id absent from criteria contribute
// raw_score x fallback weight.
func (e *Engine) WeightedTotal(scores map[string]float64, criteria []model.Criterion) float64 {
	return e.weightedTotal(scores, weights(criteria))
}

func (e *Engine) weightedTotal(scores map[string]float64, byID map[string]float64) float64 {
	var total float64
	for id, raw := range scores {
		w, ok := byID[id]
		if !ok {
			w = e.fallbackWeight
		}
		total += raw * w
	}
	return total
}

// Results builds the ranked result list for one event: per team, the
// per-judge breakdown and the combined weighted total across judges. Judges
// with no record for a team are listed with an empty score map and a zero
// total. Teams are ranked highest combined total first; ties keep the
// insertion order of teams (stable sort).
func (e *Engine) Results(
	teams []model.Team,
	judges []model.Judge,
	records []*model.ScoreRecord,
	criteria []model.Criterion,
) []model.AggregateResult {
	byID := weights(criteria)

	type key struct{ judgeID, teamID string }
	byPair := make(map[key]*model.ScoreRecord, len(records))
	for _, rec := range records {
		byPair[key{rec.JudgeID, rec.TeamID}] = rec
	}

	results := make([]model.AggregateResult, 0, len(teams))
	for _, team := range teams {
		row := model.AggregateResult{
			TeamID:      team.ID,
			TeamName:    team.Name,
			JudgeScores: make([]model.JudgeScore, 0, len(judges)),
		}
		for _, judge := range judges {
			js := model.JudgeScore{
				JudgeID:   judge.ID,
				JudgeName: judge.Name,
				Scores:    map[string]float64{},
			}
			if rec, ok := byPair[key{judge.ID, team.ID}]; ok {
				for id, raw := range rec.Scores {
					js.Scores[id] = raw
				}
				js.Total = e.weightedTotal(rec.Scores, byID)
			}
			row.TotalScore += js.Total
			row.JudgeScores = append(row.JudgeScores, js)
		}
		results = append(results, row)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})
	return results
}
