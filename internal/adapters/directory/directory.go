// Package directory supplies the read-only event, team, judge, and
// criterion listings the engine consumes. It stands in for the surrounding
// CRUD system: entities are seeded at boot and never mutated here, which is
// all the engine is allowed to assume about them.
package directory

import (
	"context"

	"github.com/google/uuid"

	"juryd/internal/domain/model"
)

// Directory is the narrow read interface consumed by the engine.
type Directory interface {
	// Event returns an event by id. Returns ErrNotFound if unknown.
	Event(ctx context.Context, eventID string) (model.Event, error)

	// CriteriaForEvent returns the event's current criterion set in seed order.
	CriteriaForEvent(ctx context.Context, eventID string) ([]model.Criterion, error)

	// TeamsForEvent returns the event's teams in insertion order. That order
	// is the tie-break for ranked results.
	TeamsForEvent(ctx context.Context, eventID string) ([]model.Team, error)

	// JudgesForEvent returns the event's judges in insertion order.
	JudgesForEvent(ctx context.Context, eventID string) ([]model.Judge, error)

	// Judge returns a jury-role user by id. Returns ErrNotFound if unknown
	// and ErrJudgeUnassigned if the judge has no event.
	Judge(ctx context.Context, judgeID string) (model.Judge, error)
}

// Seed describes the entities loaded at boot, normally from the YAML config.
type Seed struct {
	Events []EventSeed `koanf:"events"`

	// Judges listed outside any event. Kept so progress lookups for an
	// unassigned judge fail with ErrJudgeUnassigned, not silently.
	Judges []JudgeSeed `koanf:"judges"`
}

// EventSeed describes one event and everything scoped to it.
type EventSeed struct {
	ID       string          `koanf:"id"`
	Name     string          `koanf:"name"`
	Status   string          `koanf:"status"`
	Teams    []TeamSeed      `koanf:"teams"`
	Judges   []JudgeSeed     `koanf:"judges"`
	Criteria []CriterionSeed `koanf:"criteria"`
}

// TeamSeed describes one team.
type TeamSeed struct {
	ID          string `koanf:"id"`
	Name        string `koanf:"name"`
	Description string `koanf:"description"`
}

// JudgeSeed describes one jury-role user.
type JudgeSeed struct {
	ID   string `koanf:"id"`
	Name string `koanf:"name"`
}

// CriterionSeed describes one scoring criterion. A nil weight means the
// default of 1.0; an explicit 0 disables the criterion's contribution.
type CriterionSeed struct {
	ID            string   `koanf:"id"`
	Name          string   `koanf:"name"`
	MaxScore      int      `koanf:"max_score"`
	Weight        *float64 `koanf:"weight"`
	PriorityOrder int      `koanf:"priority_order"`
}

// InMemoryDirectory implements Directory over seed data.
type InMemoryDirectory struct {
	events     map[string]model.Event
	teams      map[string][]model.Team      // event id -> teams
	judges     map[string][]model.Judge     // event id -> judges
	criteria   map[string][]model.Criterion // event id -> criteria
	judgeIndex map[string]model.Judge       // judge id -> judge (assigned only)
	unassigned map[string]model.Judge       // judge id -> judge without event
}

// NewInMemoryDirectory builds a directory from seed data, assigning ids
// where omitted. Returns ErrInvalidSeed for criteria with max_score < 1 or
// a negative weight.
func NewInMemoryDirectory(seed Seed) (*InMemoryDirectory, error) {
	d := &InMemoryDirectory{
		events:     make(map[string]model.Event),
		teams:      make(map[string][]model.Team),
		judges:     make(map[string][]model.Judge),
		criteria:   make(map[string][]model.Criterion),
		judgeIndex: make(map[string]model.Judge),
		unassigned: make(map[string]model.Judge),
	}

	for _, es := range seed.Events {
		eventID := orNewID(es.ID)
		status := model.EventStatus(es.Status)
		if status == "" {
			status = model.EventUpcoming
		}
		d.events[eventID] = model.Event{ID: eventID, Name: es.Name, Status: status}

		for _, ts := range es.Teams {
			d.teams[eventID] = append(d.teams[eventID], model.Team{
				ID:          orNewID(ts.ID),
				EventID:     eventID,
				Name:        ts.Name,
				Description: ts.Description,
			})
		}
		for _, js := range es.Judges {
			judge := model.Judge{ID: orNewID(js.ID), EventID: eventID, Name: js.Name}
			d.judges[eventID] = append(d.judges[eventID], judge)
			d.judgeIndex[judge.ID] = judge
		}
		for _, cs := range es.Criteria {
			weight := 1.0
			if cs.Weight != nil {
				weight = *cs.Weight
			}
			if cs.MaxScore < 1 {
				return nil, errInvalidCriterion(cs.Name, "max_score must be >= 1")
			}
			if weight < 0 {
				return nil, errInvalidCriterion(cs.Name, "weight must be non-negative")
			}
			d.criteria[eventID] = append(d.criteria[eventID], model.Criterion{
				ID:            orNewID(cs.ID),
				EventID:       eventID,
				Name:          cs.Name,
				MaxScore:      cs.MaxScore,
				Weight:        weight,
				PriorityOrder: cs.PriorityOrder,
			})
		}
	}

	for _, js := range seed.Judges {
		judge := model.Judge{ID: orNewID(js.ID), Name: js.Name}
		d.unassigned[judge.ID] = judge
	}

	return d, nil
}

func orNewID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// Event returns an event by id.
func (d *InMemoryDirectory) Event(_ context.Context, eventID string) (model.Event, error) {
	ev, ok := d.events[eventID]
	if !ok {
		return model.Event{}, ErrNotFound
	}
	return ev, nil
}

// CriteriaForEvent returns the event's criterion set in seed order.
func (d *InMemoryDirectory) CriteriaForEvent(ctx context.Context, eventID string) ([]model.Criterion, error) {
	if _, err := d.Event(ctx, eventID); err != nil {
		return nil, err
	}
	return append([]model.Criterion(nil), d.criteria[eventID]...), nil
}

// TeamsForEvent returns the event's teams in insertion order.
func (d *InMemoryDirectory) TeamsForEvent(ctx context.Context, eventID string) ([]model.Team, error) {
	if _, err := d.Event(ctx, eventID); err != nil {
		return nil, err
	}
	return append([]model.Team(nil), d.teams[eventID]...), nil
}

// JudgesForEvent returns the event's judges in insertion order.
func (d *InMemoryDirectory) JudgesForEvent(ctx context.Context, eventID string) ([]model.Judge, error) {
	if _, err := d.Event(ctx, eventID); err != nil {
		return nil, err
	}
	return append([]model.Judge(nil), d.judges[eventID]...), nil
}

// Judge returns a jury-role user by id.
func (d *InMemoryDirectory) Judge(_ context.Context, judgeID string) (model.Judge, error) {
	if judge, ok := d.judgeIndex[judgeID]; ok {
		return judge, nil
	}
	if judge, ok := d.unassigned[judgeID]; ok {
		return judge, ErrJudgeUnassigned
	}
	return model.Judge{}, ErrNotFound
}
