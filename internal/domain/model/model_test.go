package model_test

import (
	"testing"
	"time"

	"juryd/internal/domain/model"

	. "github.com/smartystreets/goconvey/convey"
)

func TestScoreRecordClone(t *testing.T) {
	Convey("Given a locked score record", t, func() {
		at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		rec := &model.ScoreRecord{
			ID:          "rec-1",
			EventID:     "ev-1",
			JudgeID:     "judge-1",
			TeamID:      "team-1",
			Scores:      map[string]float64{"c1": 10, "c2": 12},
			Comments:    map[string]string{"c1": "solid"},
			Comment:     "overall good",
			Locked:      true,
			SubmittedAt: &at,
		}

		Convey("When cloning it", func() {
			cp := rec.Clone()

			Convey("Then the copy should carry the same values", func() {
				So(cp.ID, ShouldEqual, rec.ID)
				So(cp.Scores, ShouldResemble, rec.Scores)
				So(cp.Comments, ShouldResemble, rec.Comments)
				So(*cp.SubmittedAt, ShouldEqual, at)
			})

			Convey("And mutating the copy should not touch the original", func() {
				cp.Scores["c1"] = 99
				cp.Comments["c1"] = "changed"
				*cp.SubmittedAt = at.Add(time.Hour)

				So(rec.Scores["c1"], ShouldEqual, 10)
				So(rec.Comments["c1"], ShouldEqual, "solid")
				So(*rec.SubmittedAt, ShouldEqual, at)
			})
		})
	})
}
