package repository

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"juryd/internal/domain/model"
	"juryd/internal/domain/scorecard"
	"juryd/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultShardCount = 8
)

// MemStore is an in-memory Store implementation sharded by event id, so all
// records of one event live in one shard and event-scoped reads take a
// single lock. A (judge, team) index inside each shard gives
// compare-and-insert semantics for the uniqueness invariant; judge and team
// belong to exactly one event, so the pair can never span shards.
type MemStore struct {
	shardCount int
	shards     []*shard
	now        func() time.Time

	// record id -> owning event id, for id-keyed lookups
	idMu sync.RWMutex
	ids  map[string]string

	total atomic.Int64
}

type shard struct {
	mu      sync.RWMutex
	records map[string]*model.ScoreRecord // record id -> record
	byPair  map[pairKey]string            // (judge, team) -> record id
	order   map[string][]string           // event id -> record ids, insertion order
}

type pairKey struct {
	judgeID string
	teamID  string
}

// NewMemStore creates a new in-memory score record store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		shardCount: defaultShardCount,
		now:        time.Now,
		ids:        make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{
			records: make(map[string]*model.ScoreRecord),
			byPair:  make(map[pairKey]string),
			order:   make(map[string][]string),
		}
	}
	return s
}

func (s *MemStore) shardFor(eventID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(eventID))
	return s.shards[h.Sum32()%uint32(s.shardCount)]
}

// eventOf resolves the owning event of a record id.
func (s *MemStore) eventOf(id string) (string, bool) {
	s.idMu.RLock()
	defer s.idMu.RUnlock()
	eventID, ok := s.ids[id]
	return eventID, ok
}

// Create inserts a new draft record. The (judge, team) index is checked
// under the same lock as the insert, so a racing duplicate create gets
// ErrConflict, never a silent overwrite.
func (s *MemStore) Create(_ context.Context, rec *model.ScoreRecord) (*model.ScoreRecord, error) {
	now := s.now()
	stored := rec.Clone()
	stored.ID = uuid.NewString()
	stored.Locked = false
	stored.SubmittedAt = nil
	stored.CreatedAt = now
	stored.UpdatedAt = now

	sh := s.shardFor(stored.EventID)
	sh.mu.Lock()
	key := pairKey{stored.JudgeID, stored.TeamID}
	if _, exists := sh.byPair[key]; exists {
		sh.mu.Unlock()
		return nil, ErrConflict
	}
	sh.records[stored.ID] = stored
	sh.byPair[key] = stored.ID
	sh.order[stored.EventID] = append(sh.order[stored.EventID], stored.ID)
	sh.mu.Unlock()

	s.idMu.Lock()
	s.ids[stored.ID] = stored.EventID
	s.idMu.Unlock()

	metrics.UpdateRecordsTotal(int(s.total.Add(1)))
	return stored.Clone(), nil
}

// Get returns the record by id.
func (s *MemStore) Get(_ context.Context, id string) (*model.ScoreRecord, error) {
	eventID, ok := s.eventOf(id)
	if !ok {
		return nil, ErrNotFound
	}
	sh := s.shardFor(eventID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	rec, ok := sh.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

// GetByJudgeTeam returns the record for a (judge, team) pair.
func (s *MemStore) GetByJudgeTeam(_ context.Context, judgeID, teamID string) (*model.ScoreRecord, error) {
	key := pairKey{judgeID, teamID}
	for _, sh := range s.shards {
		sh.mu.RLock()
		if id, ok := sh.byPair[key]; ok {
			rec := sh.records[id].Clone()
			sh.mu.RUnlock()
			return rec, nil
		}
		sh.mu.RUnlock()
	}
	return nil, ErrNotFound
}

// mutate runs fn on the live record under its shard's write lock.
func (s *MemStore) mutate(id string, fn func(rec *model.ScoreRecord) error) (*model.ScoreRecord, error) {
	eventID, ok := s.eventOf(id)
	if !ok {
		return nil, ErrNotFound
	}
	sh := s.shardFor(eventID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	rec, ok := sh.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := fn(rec); err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

// Update replaces the scores mapping and comments of a draft record.
func (s *MemStore) Update(_ context.Context, id string, scores map[string]float64, comments map[string]string, comment string) (*model.ScoreRecord, error) {
	return s.mutate(id, func(rec *model.ScoreRecord) error {
		return scorecard.ApplyUpdate(rec, scores, comments, comment, s.now())
	})
}

// Lock transitions a draft record to final. The precondition check runs
// under the shard lock, so concurrent locks yield one success and one
// scorecard.ErrAlreadyLocked.
func (s *MemStore) Lock(_ context.Context, id string) (*model.ScoreRecord, error) {
	return s.mutate(id, func(rec *model.ScoreRecord) error {
		return scorecard.Lock(rec, s.now())
	})
}

// Reset returns a record to an empty draft, handing back the pre-reset
// snapshot for audit logging.
func (s *MemStore) Reset(_ context.Context, id string) (*model.ScoreRecord, *model.ScoreRecord, error) {
	var before *model.ScoreRecord
	after, err := s.mutate(id, func(rec *model.ScoreRecord) error {
		before = rec.Clone()
		scorecard.Reset(rec, s.now())
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

// ListByEvent returns the event's records in insertion order.
func (s *MemStore) ListByEvent(_ context.Context, eventID string) ([]*model.ScoreRecord, error) {
	sh := s.shardFor(eventID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	ids := sh.order[eventID]
	out := make([]*model.ScoreRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, sh.records[id].Clone())
	}
	return out, nil
}

// CountLocked counts final records for an event.
func (s *MemStore) CountLocked(_ context.Context, eventID string) int {
	sh := s.shardFor(eventID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	count := 0
	for _, id := range sh.order[eventID] {
		if sh.records[id].Locked {
			count++
		}
	}
	return count
}

// CountLockedByJudge counts final records submitted by one judge.
func (s *MemStore) CountLockedByJudge(_ context.Context, judgeID string) int {
	count := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, rec := range sh.records {
			if rec.JudgeID == judgeID && rec.Locked {
				count++
			}
		}
		sh.mu.RUnlock()
	}
	return count
}

// Count returns the number of records tracked in the store.
func (s *MemStore) Count(_ context.Context) int {
	return int(s.total.Load())
}
