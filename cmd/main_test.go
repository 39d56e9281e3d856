package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"juryd/internal/adapters/directory"
	"juryd/internal/adapters/http/api"
	"juryd/internal/adapters/http/swagger"
	app "juryd/internal/app"
	"juryd/internal/config"
	"juryd/pkg/logger"

	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func testDirectory() directory.Directory {
	weight := 1.0
	dir, err := directory.NewInMemoryDirectory(directory.Seed{
		Events: []directory.EventSeed{
			{
				ID:     "ev-1",
				Name:   "Finals",
				Teams:  []directory.TeamSeed{{ID: "t-1", Name: "Alpha"}},
				Judges: []directory.JudgeSeed{{ID: "j-1", Name: "Morgan"}},
				Criteria: []directory.CriterionSeed{
					{ID: "c-1", Name: "Design", MaxScore: 10, Weight: &weight},
				},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return dir
}

func TestMainWiring(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When loading configuration from env", func() {
			_ = os.Setenv("JURYD_ADDR", ":8080")
			_ = os.Setenv("JURYD_AUDIT_WORKER_COUNT", "4")
			defer func() {
				_ = os.Unsetenv("JURYD_ADDR")
				_ = os.Unsetenv("JURYD_AUDIT_WORKER_COUNT")
			}()

			cfg, err := config.Load(context.Background())

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.AuditWorkerCount, convey.ShouldEqual, 4)
		})

		convey.Convey("When creating the engine", func() {
			convey.Convey("Then it should fail without a directory", func() {
				_, err := app.New()
				convey.So(err, convey.ShouldNotBeNil)
			})

			convey.Convey("And it should start and stop cleanly with one", func() {
				svc, err := app.New(app.WithDirectory(testDirectory()))
				convey.So(err, convey.ShouldBeNil)

				ctx := context.Background()
				convey.So(svc.Start(ctx), convey.ShouldBeNil)

				stopCtx, cancel := context.WithTimeout(ctx, time.Second)
				defer cancel()
				convey.So(svc.Stop(stopCtx), convey.ShouldBeNil)
			})
		})

		convey.Convey("When registering HTTP routes", func() {
			svc, err := app.New(app.WithDirectory(testDirectory()))
			convey.So(err, convey.ShouldBeNil)

			ctx := context.Background()
			mux := http.NewServeMux()
			swagger.Register(ctx, mux)
			api.NewServer(svc, svc).Register(ctx, mux)

			convey.So(mux, convey.ShouldNotBeNil)
		})

		convey.Convey("When updating background metrics", func() {
			svc, err := app.New(app.WithDirectory(testDirectory()))
			convey.So(err, convey.ShouldBeNil)

			convey.So(func() {
				updateSystemMetrics()
				updateEngineMetrics(context.Background(), svc)
			}, convey.ShouldNotPanic)
		})
	})
}
