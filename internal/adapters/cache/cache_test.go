package cache_test

import (
	"context"
	"testing"
	"time"

	"juryd/internal/adapters/cache"
	"juryd/internal/domain/model"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMemCache(t *testing.T) {
	Convey("Given a cache with a fake clock and a short TTL", t, func() {
		ctx := context.Background()
		clock := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
		c := cache.NewMemCache(
			cache.WithTTL(5*time.Minute),
			cache.WithClock(func() time.Time { return clock }),
		)
		results := []model.AggregateResult{
			{TeamID: "t1", TeamName: "Team Alpha", TotalScore: 40},
		}

		Convey("When nothing has been cached", func() {
			_, ok := c.Get(ctx, "ev-1")

			Convey("Then Get should miss", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When results are cached", func() {
			c.Set(ctx, "ev-1", results)

			Convey("Then Get should hit with the stored value", func() {
				got, ok := c.Get(ctx, "ev-1")
				So(ok, ShouldBeTrue)
				So(got, ShouldResemble, results)
			})

			Convey("And other events should still miss", func() {
				_, ok := c.Get(ctx, "ev-2")
				So(ok, ShouldBeFalse)
			})

			Convey("And advancing the clock past the TTL should expire it", func() {
				clock = clock.Add(5*time.Minute + time.Second)
				_, ok := c.Get(ctx, "ev-1")
				So(ok, ShouldBeFalse)
			})

			Convey("And advancing the clock within the TTL should not", func() {
				clock = clock.Add(4 * time.Minute)
				_, ok := c.Get(ctx, "ev-1")
				So(ok, ShouldBeTrue)
			})

			Convey("And Delete should invalidate immediately", func() {
				c.Delete(ctx, "ev-1")
				_, ok := c.Get(ctx, "ev-1")
				So(ok, ShouldBeFalse)
				So(c.Len(), ShouldEqual, 0)
			})
		})

		Convey("When deleting a key that was never set", func() {
			So(func() { c.Delete(ctx, "ev-9") }, ShouldNotPanic)
		})
	})
}
