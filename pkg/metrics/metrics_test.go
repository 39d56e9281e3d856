package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given metrics manager options", t, func() {
		Convey("When creating a manager with a fresh registry", func() {
			reg := prometheus.NewRegistry()
			m := NewManager(WithPrometheusRegistry(reg))

			Convey("Then the manager should be created with defaults", func() {
				So(m, ShouldNotBeNil)
				So(m.namespace, ShouldEqual, "juryd")
				So(m.subsystem, ShouldEqual, "engine")
				So(m.enabled, ShouldBeTrue)
			})
		})

		Convey("When overriding namespace and subsystem", func() {
			reg := prometheus.NewRegistry()
			m := NewManager(
				WithPrometheusRegistry(reg),
				WithNamespace("custom"),
				WithSubsystem("scores"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithMetricsEnabled(false),
			)

			Convey("Then the options should be applied", func() {
				So(m.namespace, ShouldEqual, "custom")
				So(m.subsystem, ShouldEqual, "scores")
				So(m.histogramBuckets, ShouldResemble, []float64{1, 5, 10})
				So(m.enabled, ShouldBeFalse)
			})
		})

		Convey("When options carry zero values", func() {
			reg := prometheus.NewRegistry()
			m := NewManager(
				WithPrometheusRegistry(reg),
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
			)

			Convey("Then defaults should be preserved", func() {
				So(m.namespace, ShouldEqual, "juryd")
				So(m.subsystem, ShouldEqual, "engine")
				So(m.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording score lifecycle metrics", func() {
			So(func() {
				RecordScoreCreated()
				RecordScoreUpdated()
				RecordScoreLocked()
				RecordScoreReset()
				RecordScoreConflict()
				RecordValidationFailure()
				RecordPermissionDenied()
				UpdateRecordsTotal(12)
			}, ShouldNotPanic)
		})

		Convey("When recording cache and audit metrics", func() {
			So(func() {
				RecordResultsCacheHit()
				RecordResultsCacheMiss()
				RecordResultsCacheInvalidation()
				RecordResultsRebuildDuration(3.5)
				RecordAuditPublished()
				RecordAuditDropped()
				RecordAuditSinkError()
				UpdateAuditQueueSize(4)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP and system metrics", func() {
			So(func() {
				RecordHTTPRequest("results", "GET", "200")
				RecordHTTPRequestDuration("results", "GET", "200", 1.25)
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
			}, ShouldNotPanic)
		})

		Convey("When serving the metrics endpoint", func() {
			So(Handler(), ShouldNotBeNil)
		})
	})
}
