package directory_test

import (
	"context"
	"errors"
	"testing"

	"juryd/internal/adapters/directory"
	"juryd/internal/domain/model"

	. "github.com/smartystreets/goconvey/convey"
)

func weight(w float64) *float64 { return &w }

func testSeed() directory.Seed {
	return directory.Seed{
		Events: []directory.EventSeed{
			{
				ID:     "ev-1",
				Name:   "Regional Final",
				Status: "ongoing",
				Teams: []directory.TeamSeed{
					{ID: "t1", Name: "Team Alpha"},
					{ID: "t2", Name: "Team Beta", Description: "returning champions"},
				},
				Judges: []directory.JudgeSeed{
					{ID: "j1", Name: "jury1"},
					{ID: "j2", Name: "jury2"},
				},
				Criteria: []directory.CriterionSeed{
					{ID: "c1", Name: "Innovation", MaxScore: 20, Weight: weight(1.0), PriorityOrder: 1},
					{ID: "c2", Name: "Technique", MaxScore: 20, Weight: weight(2.5), PriorityOrder: 2},
				},
			},
		},
		Judges: []directory.JudgeSeed{
			{ID: "j-floating", Name: "benched"},
		},
	}
}

func TestInMemoryDirectory(t *testing.T) {
	Convey("Given a directory built from seed data", t, func() {
		ctx := context.Background()
		dir, err := directory.NewInMemoryDirectory(testSeed())
		So(err, ShouldBeNil)

		Convey("When looking up the event", func() {
			ev, err := dir.Event(ctx, "ev-1")
			So(err, ShouldBeNil)
			So(ev.Name, ShouldEqual, "Regional Final")
			So(ev.Status, ShouldEqual, model.EventOngoing)
		})

		Convey("When looking up an unknown event", func() {
			_, err := dir.Event(ctx, "nope")
			So(errors.Is(err, directory.ErrNotFound), ShouldBeTrue)

			_, err = dir.TeamsForEvent(ctx, "nope")
			So(errors.Is(err, directory.ErrNotFound), ShouldBeTrue)
		})

		Convey("When listing teams", func() {
			teams, err := dir.TeamsForEvent(ctx, "ev-1")
			So(err, ShouldBeNil)
			So(teams, ShouldHaveLength, 2)
			So(teams[0].ID, ShouldEqual, "t1") // insertion order preserved
			So(teams[1].Description, ShouldEqual, "returning champions")
		})

		Convey("When listing criteria", func() {
			criteria, err := dir.CriteriaForEvent(ctx, "ev-1")
			So(err, ShouldBeNil)
			So(criteria, ShouldHaveLength, 2)
			So(criteria[1].Weight, ShouldEqual, 2.5)
		})

		Convey("When looking up judges", func() {
			judge, err := dir.Judge(ctx, "j1")
			So(err, ShouldBeNil)
			So(judge.EventID, ShouldEqual, "ev-1")

			_, err = dir.Judge(ctx, "stranger")
			So(errors.Is(err, directory.ErrNotFound), ShouldBeTrue)

			_, err = dir.Judge(ctx, "j-floating")
			So(errors.Is(err, directory.ErrJudgeUnassigned), ShouldBeTrue)
		})
	})

	Convey("Given seeds omitting optional fields", t, func() {
		dir, err := directory.NewInMemoryDirectory(directory.Seed{
			Events: []directory.EventSeed{
				{
					Name:     "No IDs Anywhere",
					Judges:   []directory.JudgeSeed{{ID: "j-known", Name: "only"}},
					Teams:    []directory.TeamSeed{{Name: "Solo"}},
					Criteria: []directory.CriterionSeed{{Name: "Design", MaxScore: 10}},
				},
			},
		})
		So(err, ShouldBeNil)

		Convey("Then ids should be generated and defaults applied", func() {
			ctx := context.Background()
			judge, err := dir.Judge(ctx, "j-known")
			So(err, ShouldBeNil)
			So(judge.EventID, ShouldNotBeEmpty) // generated event id

			criteria, err := dir.CriteriaForEvent(ctx, judge.EventID)
			So(err, ShouldBeNil)
			So(criteria[0].ID, ShouldNotBeEmpty)
			So(criteria[0].Weight, ShouldEqual, 1.0) // default weight

			teams, err := dir.TeamsForEvent(ctx, judge.EventID)
			So(err, ShouldBeNil)
			So(teams[0].ID, ShouldNotBeEmpty)

			ev, err := dir.Event(ctx, judge.EventID)
			So(err, ShouldBeNil)
			So(ev.Status, ShouldEqual, model.EventUpcoming) // default status
		})
	})

	Convey("Given invalid criterion seeds", t, func() {
		Convey("When max_score is below 1", func() {
			_, err := directory.NewInMemoryDirectory(directory.Seed{
				Events: []directory.EventSeed{
					{Name: "Bad", Criteria: []directory.CriterionSeed{{Name: "Broken", MaxScore: 0}}},
				},
			})
			So(errors.Is(err, directory.ErrInvalidSeed), ShouldBeTrue)
		})

		Convey("When weight is negative", func() {
			_, err := directory.NewInMemoryDirectory(directory.Seed{
				Events: []directory.EventSeed{
					{Name: "Bad", Criteria: []directory.CriterionSeed{{Name: "Broken", MaxScore: 10, Weight: weight(-1)}}},
				},
			})
			So(errors.Is(err, directory.ErrInvalidSeed), ShouldBeTrue)
		})
	})
}
