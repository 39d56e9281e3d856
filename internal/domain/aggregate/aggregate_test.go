package aggregate_test

import (
	"testing"

	"juryd/internal/domain/aggregate"
	"juryd/internal/domain/model"

	. "github.com/smartystreets/goconvey/convey"
)

func TestWeightedTotal(t *testing.T) {
	Convey("Given an engine and an event's criterion set", t, func() {
		eng := aggregate.NewEngine()
		criteria := []model.Criterion{
			{ID: "c1", Name: "Innovation", MaxScore: 20, Weight: 1.0},
			{ID: "c2", Name: "Technique", MaxScore: 20, Weight: 2.5},
		}

		Convey("When computing a total with heterogeneous weights", func() {
			total := eng.WeightedTotal(map[string]float64{"c1": 10, "c2": 12}, criteria)

			Convey("Then it should be the sum of raw x weight", func() {
				So(total, ShouldEqual, 40.0) // 10*1.0 + 12*2.5
			})
		})

		Convey("When a score references a criterion absent from the set", func() {
			total := eng.WeightedTotal(map[string]float64{"999": 10}, criteria)

			Convey("Then it should fall back to weight 1.0", func() {
				So(total, ShouldEqual, 10.0)
			})
		})

		Convey("When the scores map is empty", func() {
			So(eng.WeightedTotal(map[string]float64{}, criteria), ShouldEqual, 0.0)
		})

		Convey("When the engine is built with a custom fallback weight", func() {
			custom := aggregate.NewEngine(aggregate.WithFallbackWeight(2.0))
			total := custom.WeightedTotal(map[string]float64{"999": 10}, criteria)

			Convey("Then orphaned entries should use it", func() {
				So(total, ShouldEqual, 20.0)
			})
		})
	})
}

func TestResults(t *testing.T) {
	Convey("Given two teams, two judges and a criterion set", t, func() {
		eng := aggregate.NewEngine()
		teams := []model.Team{
			{ID: "t1", Name: "Team Alpha"},
			{ID: "t2", Name: "Team Beta"},
		}
		judges := []model.Judge{
			{ID: "j1", Name: "jury1"},
			{ID: "j2", Name: "jury2"},
		}
		criteria := []model.Criterion{
			{ID: "c1", Name: "Innovation", MaxScore: 20, Weight: 1.0},
			{ID: "c2", Name: "Technique", MaxScore: 20, Weight: 2.5},
		}

		Convey("When only some (judge, team) pairs have records", func() {
			records := []*model.ScoreRecord{
				{JudgeID: "j1", TeamID: "t1", Scores: map[string]float64{"c1": 10, "c2": 12}}, // 40
				{JudgeID: "j2", TeamID: "t2", Scores: map[string]float64{"c1": 20, "c2": 20}}, // 70
			}

			results := eng.Results(teams, judges, records, criteria)

			Convey("Then every team should list every judge", func() {
				So(results, ShouldHaveLength, 2)
				So(results[0].JudgeScores, ShouldHaveLength, 2)
				So(results[1].JudgeScores, ShouldHaveLength, 2)
			})

			Convey("And teams should be ranked by combined total, highest first", func() {
				So(results[0].TeamID, ShouldEqual, "t2")
				So(results[0].TotalScore, ShouldEqual, 70.0)
				So(results[1].TeamID, ShouldEqual, "t1")
				So(results[1].TotalScore, ShouldEqual, 40.0)
			})

			Convey("And judges without a record should contribute an empty map and zero", func() {
				var j2 model.JudgeScore
				for _, js := range results[1].JudgeScores {
					if js.JudgeID == "j2" {
						j2 = js
					}
				}
				So(j2.Scores, ShouldBeEmpty)
				So(j2.Total, ShouldEqual, 0.0)
			})
		})

		Convey("When two teams tie on the combined total", func() {
			records := []*model.ScoreRecord{
				{JudgeID: "j1", TeamID: "t1", Scores: map[string]float64{"c1": 10}},
				{JudgeID: "j1", TeamID: "t2", Scores: map[string]float64{"c1": 10}},
			}

			results := eng.Results(teams, judges, records, criteria)

			Convey("Then ties should keep team insertion order", func() {
				So(results[0].TeamID, ShouldEqual, "t1")
				So(results[1].TeamID, ShouldEqual, "t2")
			})
		})

		Convey("When called twice with the same inputs", func() {
			records := []*model.ScoreRecord{
				{JudgeID: "j1", TeamID: "t1", Scores: map[string]float64{"c1": 5, "c2": 3}},
			}

			first := eng.Results(teams, judges, records, criteria)
			second := eng.Results(teams, judges, records, criteria)

			Convey("Then the output should be identical", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When there are no teams", func() {
			So(eng.Results(nil, judges, nil, criteria), ShouldBeEmpty)
		})
	})
}
