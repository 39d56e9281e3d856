package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"juryd/internal/adapters/audit"
	"juryd/internal/adapters/cache"
	"juryd/internal/adapters/directory"
	"juryd/internal/adapters/mq/queue"
	"juryd/internal/adapters/mq/worker"
	"juryd/internal/adapters/repository"
	"juryd/internal/domain/aggregate"
	"juryd/internal/domain/model"
	"juryd/internal/domain/scorecard"
	"juryd/pkg/logger"
	"juryd/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultAuditQueueSize   = 10000
	defaultAuditWorkerCount = 2
)

// Service is the scoring engine. It owns the score record store, the ranked
// results cache, and the audit pipeline, and composes them behind the
// operations the HTTP layer exposes.
//
// Mutations follow one discipline: validate, commit to the store, invalidate
// the event's cached results synchronously, then hand an audit entry to the
// queue without waiting for delivery.
type Service struct {
	store   repository.Store
	dir     directory.Directory
	results cache.ResultsCache
	agg     *aggregate.Engine

	auditQueue *queue.InMemoryQueue
	auditPool  *worker.Pool
	sink       audit.Sink

	logger logger.Logger
	now    func() time.Time

	cacheTTL         time.Duration
	cacheDisabled    bool
	auditQueueSize   int
	auditWorkerCount int
	shardCount       int
	fallbackWeight   float64

	mu      sync.Mutex
	started bool
}

// New creates a Service with configuration options. A directory must be
// provided; everything else defaults to in-memory components.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		now:              time.Now,
		cacheTTL:         cache.DefaultTTL,
		auditQueueSize:   defaultAuditQueueSize,
		auditWorkerCount: defaultAuditWorkerCount,
		fallbackWeight:   aggregate.DefaultWeight,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.dir == nil {
		return nil, errors.New("directory is required")
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("engine")
	}
	if s.store == nil {
		storeOpts := []repository.Option{repository.WithClock(s.now)}
		if s.shardCount > 0 {
			storeOpts = append(storeOpts, repository.WithShardCount(s.shardCount))
		}
		s.store = repository.NewMemStore(storeOpts...)
	}
	if s.results == nil && !s.cacheDisabled {
		s.results = cache.NewMemCache(cache.WithTTL(s.cacheTTL), cache.WithClock(s.now))
	}
	if s.cacheDisabled {
		s.results = nil
	}
	s.agg = aggregate.NewEngine(aggregate.WithFallbackWeight(s.fallbackWeight))
	if s.sink == nil {
		s.sink = audit.NewLogSink(s.logger.Named("audit"))
	}
	s.auditQueue = queue.NewInMemoryQueue(queue.WithCapacity(s.auditQueueSize))
	s.auditPool = worker.NewPool(s.auditWorkerCount, s.auditQueue, s.sink)

	return s, nil
}

// Start launches the audit workers. Operations work before Start, but audit
// entries only drain once workers run.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	s.auditPool.Start(ctx)
	s.started = true
	s.logger.Info(ctx, "engine started",
		logger.Int("audit_workers", s.auditWorkerCount),
		logger.Bool("results_cache", s.results != nil),
	)
	return nil
}

// Stop closes the audit queue and shuts the workers down, bounded by ctx.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil
	}
	_ = s.auditQueue.Close()
	s.auditPool.Stop(ctx)
	s.started = false
	s.logger.Info(ctx, "engine stopped")
	return nil
}

// SubmitOrUpdateScore creates a draft record for (judge, team) or updates the
// existing one. The judge and team must belong to the event, the scores must
// validate against the event's criteria, and a locked record rejects the
// update. Exactly one of two racing first submissions wins; the loser gets
// repository.ErrConflict.
func (s *Service) SubmitOrUpdateScore(
	ctx context.Context,
	judgeID, teamID, eventID string,
	scores map[string]float64,
	comments map[string]string,
	comment string,
) (*model.ScoreRecord, error) {
	if _, err := s.dir.Event(ctx, eventID); err != nil {
		return nil, err
	}
	judge, err := s.dir.Judge(ctx, judgeID)
	if err != nil {
		return nil, err
	}
	if judge.EventID != eventID {
		metrics.RecordValidationFailure()
		return nil, ErrEventMismatch
	}
	if err := s.teamInEvent(ctx, eventID, teamID); err != nil {
		return nil, err
	}

	criteria, err := s.dir.CriteriaForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := scorecard.ValidateScores(scores, criteria); err != nil {
		metrics.RecordValidationFailure()
		return nil, err
	}

	existing, err := s.store.GetByJudgeTeam(ctx, judgeID, teamID)
	switch {
	case err == nil:
		rec, err := s.store.Update(ctx, existing.ID, scores, comments, comment)
		if err != nil {
			if errors.Is(err, scorecard.ErrLocked) {
				metrics.RecordPermissionDenied()
			}
			return nil, err
		}
		metrics.RecordScoreUpdated()
		s.invalidate(ctx, eventID)
		s.notify(ctx, judgeID, model.AuditUpdate, rec.ID, map[string]any{
			"event_id": eventID,
			"team_id":  teamID,
			"scores":   rec.Scores,
		})
		return rec, nil

	case errors.Is(err, repository.ErrNotFound):
		rec, err := s.store.Create(ctx, &model.ScoreRecord{
			EventID:  eventID,
			JudgeID:  judgeID,
			TeamID:   teamID,
			Scores:   scores,
			Comments: comments,
			Comment:  comment,
		})
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				metrics.RecordScoreConflict()
			}
			return nil, err
		}
		metrics.RecordScoreCreated()
		metrics.UpdateRecordsTotal(s.store.Count(ctx))
		s.invalidate(ctx, eventID)
		s.notify(ctx, judgeID, model.AuditCreate, rec.ID, map[string]any{
			"event_id": eventID,
			"team_id":  teamID,
			"scores":   rec.Scores,
		})
		return rec, nil

	default:
		return nil, err
	}
}

// LockScore transitions a draft record to final, stamping submitted_at.
// Locking an already-final record fails with scorecard.ErrAlreadyLocked; two
// racing locks yield exactly one success.
func (s *Service) LockScore(ctx context.Context, recordID string) (*model.ScoreRecord, error) {
	rec, err := s.store.Lock(ctx, recordID)
	if err != nil {
		return nil, err
	}
	metrics.RecordScoreLocked()
	s.invalidate(ctx, rec.EventID)

	payload := map[string]any{"event_id": rec.EventID, "team_id": rec.TeamID}
	if rec.SubmittedAt != nil {
		payload["submitted_at"] = rec.SubmittedAt.UTC()
	}
	s.notify(ctx, rec.JudgeID, model.AuditLock, rec.ID, payload)
	return rec, nil
}

// ResetScore returns a record to an empty draft: scores and comments cleared,
// submitted_at removed, lock released. Admin only. The audit entry carries
// the pre-reset snapshot, since the reset destroys it.
func (s *Service) ResetScore(ctx context.Context, recordID string, actorIsAdmin bool) (*model.ScoreRecord, error) {
	if !actorIsAdmin {
		metrics.RecordPermissionDenied()
		return nil, ErrNotAdmin
	}
	before, after, err := s.store.Reset(ctx, recordID)
	if err != nil {
		return nil, err
	}
	metrics.RecordScoreReset()
	s.invalidate(ctx, after.EventID)

	payload := map[string]any{
		"event_id": before.EventID,
		"team_id":  before.TeamID,
		"judge_id": before.JudgeID,
		"scores":   before.Scores,
		"comments": before.Comments,
		"comment":  before.Comment,
		"locked":   before.Locked,
	}
	if before.SubmittedAt != nil {
		payload["submitted_at"] = before.SubmittedAt.UTC()
	}
	s.notify(ctx, "admin", model.AuditReset, after.ID, payload)
	return after, nil
}

// GetScore returns a record by id.
func (s *Service) GetScore(ctx context.Context, recordID string) (*model.ScoreRecord, error) {
	return s.store.Get(ctx, recordID)
}

// Results returns the event's ranked result list, serving from the cache
// when a fresh entry exists and recomputing otherwise. Output is identical
// with the cache disabled.
func (s *Service) Results(ctx context.Context, eventID string) ([]model.AggregateResult, error) {
	if _, err := s.dir.Event(ctx, eventID); err != nil {
		return nil, err
	}

	if s.results != nil {
		if cached, ok := s.results.Get(ctx, eventID); ok {
			metrics.RecordResultsCacheHit()
			return cached, nil
		}
		metrics.RecordResultsCacheMiss()
	}

	teams, err := s.dir.TeamsForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	judges, err := s.dir.JudgesForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	criteria, err := s.dir.CriteriaForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	records, err := s.store.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	computed := s.agg.Results(teams, judges, records, criteria)
	metrics.RecordResultsRebuildDuration(float64(time.Since(start).Milliseconds()))

	if s.results != nil {
		s.results.Set(ctx, eventID, computed)
	}
	return computed, nil
}

// CheckCompletion reports whether every (judge, team) pair of the event has a
// locked record. With zero teams or judges it reports all_complete=false.
func (s *Service) CheckCompletion(ctx context.Context, eventID string) (model.CompletionStatus, error) {
	teams, err := s.dir.TeamsForEvent(ctx, eventID)
	if err != nil {
		return model.CompletionStatus{}, err
	}
	judges, err := s.dir.JudgesForEvent(ctx, eventID)
	if err != nil {
		return model.CompletionStatus{}, err
	}

	status := model.CompletionStatus{
		TeamsCount:  len(teams),
		JudgesCount: len(judges),
	}
	if len(teams) == 0 || len(judges) == 0 {
		return status, nil
	}

	status.ScoresCount = s.store.CountLocked(ctx, eventID)
	status.RequiredScores = len(teams) * len(judges)
	status.AllComplete = status.ScoresCount >= status.RequiredScores
	return status, nil
}

// JuryProgress reports one judge's progress across their event's teams. A
// judge without an event assignment fails with directory.ErrJudgeUnassigned.
func (s *Service) JuryProgress(ctx context.Context, judgeID string) (model.JuryProgress, error) {
	judge, err := s.dir.Judge(ctx, judgeID)
	if err != nil {
		return model.JuryProgress{}, err
	}

	teams, err := s.dir.TeamsForEvent(ctx, judge.EventID)
	if err != nil {
		return model.JuryProgress{}, err
	}

	progress := model.JuryProgress{
		JudgeID:     judge.ID,
		JudgeName:   judge.Name,
		TeamsCount:  len(teams),
		ScoredCount: s.store.CountLockedByJudge(ctx, judgeID),
	}
	if progress.TeamsCount > 0 {
		progress.Percentage = int(math.Round(float64(progress.ScoredCount) / float64(progress.TeamsCount) * 100))
	}
	return progress, nil
}

// InvalidateResults drops the event's cached results. Called when something
// outside the engine changes aggregation inputs, criterion edits above all.
func (s *Service) InvalidateResults(ctx context.Context, eventID string) error {
	if _, err := s.dir.Event(ctx, eventID); err != nil {
		return err
	}
	s.invalidate(ctx, eventID)
	return nil
}

// Stats returns a snapshot of engine state for the /stats endpoint.
func (s *Service) Stats(ctx context.Context) map[string]any {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	return map[string]any{
		"started":        started,
		"records_total":  s.store.Count(ctx),
		"audit_queue":    s.auditQueue.Len(ctx),
		"audit_workers":  s.auditWorkerCount,
		"cache_enabled":  s.results != nil,
		"cache_ttl_ms":   s.cacheTTL.Milliseconds(),
		"default_weight": s.fallbackWeight,
	}
}

// teamInEvent verifies team membership in the event.
func (s *Service) teamInEvent(ctx context.Context, eventID, teamID string) error {
	teams, err := s.dir.TeamsForEvent(ctx, eventID)
	if err != nil {
		return err
	}
	for _, t := range teams {
		if t.ID == teamID {
			return nil
		}
	}
	metrics.RecordValidationFailure()
	return ErrEventMismatch
}

// invalidate removes the event's cached results before the mutation returns.
func (s *Service) invalidate(ctx context.Context, eventID string) {
	if s.results == nil {
		return
	}
	s.results.Delete(ctx, eventID)
	metrics.RecordResultsCacheInvalidation()
}

// notify enqueues a best-effort audit entry. A drop is logged and forgotten;
// the mutation it describes has already committed.
func (s *Service) notify(ctx context.Context, actor string, action model.AuditAction, targetID string, payload map[string]any) {
	ok := s.auditQueue.Enqueue(ctx, model.AuditEntry{
		Actor:      actor,
		Action:     action,
		TargetType: "score",
		TargetID:   targetID,
		Payload:    payload,
		At:         s.now(),
	})
	if !ok {
		s.logger.Warn(ctx, "audit entry dropped",
			logger.String("action", string(action)),
			logger.String("target", targetID),
		)
	}
}
