package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	repository "github.com/okian/chalk/internal/adapters/repository"
	service "github.com/okian/chalk/internal/app"
	division "github.com/okian/chalk/internal/domain/division"
	league "github.com/okian/chalk/internal/domain/league"
	ingest "github.com/okian/chalk/internal/ingest"
	"github.com/okian/chalk/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

const sampleResults = `Name,Sex,Age,Dots,Date,Meet
Ada,F,30,410.5,01/02/2025,Winter Open
Brie,F,28,395.2,01/02/2025,Winter Open
Jon,M,25,350,15/03/2025,Spring Clash
`

func TestService_New(t *testing.T) {
	convey.Convey("Given a new service with default options", t, func() {
		svc := service.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(svc, convey.ShouldNotBeNil)
			convey.So(svc.LeagueInfo().AppearanceCap, convey.ShouldEqual, 3)
		})
	})

	convey.Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithResultsPath("season.csv"),
			service.WithAppearanceCap(2),
			service.WithDivisionOrder([]division.Division{division.MastersWomen}),
		)

		convey.Convey("Then it should be created successfully", func() {
			convey.So(svc, convey.ShouldNotBeNil)
		})

		convey.Convey("And the league info reflects the effective cap", func() {
			convey.So(svc.LeagueInfo().AppearanceCap, convey.ShouldEqual, 2)
		})
	})
}

func TestService_Start(t *testing.T) {
	convey.Convey("Given a service pointed at a valid results file", t, func() {
		path := filepath.Join(t.TempDir(), "results.csv")
		writeResults(path, sampleResults)

		svc := service.New(service.WithResultsPath(path))
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		convey.Convey("When starting the service", func() {
			err := svc.Start(ctx)

			convey.Convey("Then it should start successfully", func() {
				convey.So(err, convey.ShouldBeNil)
			})

			convey.Convey("And it should be marked as started", func() {
				stats := svc.GetStats()
				convey.So(stats["started"], convey.ShouldEqual, true)
			})

			convey.Convey("And the first standings build is published", func() {
				convey.So(svc.LastBuildError(), convey.ShouldBeNil)

				entries, lbErr := svc.Leaderboard(ctx, "Open Women", 0)
				convey.So(lbErr, convey.ShouldBeNil)
				convey.So(entries, convey.ShouldHaveLength, 2)
				convey.So(entries[0].Name, convey.ShouldEqual, "Ada")
			})

			convey.Convey("And starting again is a no-op", func() {
				convey.So(svc.Start(ctx), convey.ShouldBeNil)
			})
		})
	})

	convey.Convey("Given a service pointed at a missing results file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "absent.csv")

		svc := service.New(service.WithResultsPath(path))
		defer svc.Stop()

		ctx := context.Background()

		convey.Convey("When starting the service", func() {
			err := svc.Start(ctx)

			convey.Convey("Then startup still succeeds", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(svc.GetStats()["started"], convey.ShouldEqual, true)
			})

			convey.Convey("And the failed build is reported", func() {
				convey.So(errors.Is(svc.LastBuildError(), ingest.ErrRead), convey.ShouldBeTrue)

				_, lbErr := svc.Leaderboard(ctx, "Open Men", 0)
				convey.So(errors.Is(lbErr, repository.ErrNoStandings), convey.ShouldBeTrue)
			})

			convey.Convey("And dropping the file in later recovers on reload", func() {
				writeResults(path, sampleResults)

				convey.So(svc.Reload(ctx), convey.ShouldBeNil)
				convey.So(svc.LastBuildError(), convey.ShouldBeNil)

				entries, lbErr := svc.Leaderboard(ctx, "Open Men", 0)
				convey.So(lbErr, convey.ShouldBeNil)
				convey.So(entries, convey.ShouldHaveLength, 1)
				convey.So(entries[0].Name, convey.ShouldEqual, "Jon")
			})
		})
	})
}

func TestService_Reload(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given a service that has not been started", t, func() {
		svc := service.New()

		convey.Convey("When reloading", func() {
			err := svc.Reload(ctx)

			convey.Convey("Then it reports the service is not started", func() {
				convey.So(errors.Is(err, service.ErrNotStarted), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a started service with published standings", t, func() {
		path := filepath.Join(t.TempDir(), "results.csv")
		writeResults(path, sampleResults)

		svc := service.New(service.WithResultsPath(path))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		convey.Convey("When the file changes and a reload fires", func() {
			writeResults(path, `Name,Sex,Age,Dots,Date,Meet
Ada,F,30,500,01/02/2025,Winter Open
`)
			err := svc.Reload(ctx)

			convey.Convey("Then the new standings replace the old", func() {
				convey.So(err, convey.ShouldBeNil)

				entries, lbErr := svc.Leaderboard(ctx, "Open Women", 0)
				convey.So(lbErr, convey.ShouldBeNil)
				convey.So(entries, convey.ShouldHaveLength, 1)
				convey.So(entries[0].Dots, convey.ShouldEqual, 500)
			})
		})

		convey.Convey("When the file becomes unreadable", func() {
			convey.So(os.Remove(path), convey.ShouldBeNil)
			err := svc.Reload(ctx)

			convey.Convey("Then the reload fails", func() {
				convey.So(errors.Is(err, ingest.ErrRead), convey.ShouldBeTrue)
				convey.So(svc.LastBuildError(), convey.ShouldNotBeNil)
			})

			convey.Convey("And the previous standings stay published", func() {
				entries, lbErr := svc.Leaderboard(ctx, "Open Women", 0)
				convey.So(lbErr, convey.ShouldBeNil)
				convey.So(entries, convey.ShouldHaveLength, 2)
			})
		})

		convey.Convey("When the file empties out to a bare header", func() {
			writeResults(path, "Name,Sex,Age,Dots,Date\n")
			err := svc.Reload(ctx)

			convey.Convey("Then the failure distinguishes an empty dataset", func() {
				convey.So(errors.Is(err, league.ErrNoResults), convey.ShouldBeTrue)
				convey.So(errors.Is(svc.LastBuildError(), league.ErrNoResults), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When no row in the file can be classified", func() {
			writeResults(path, `Name,Sex,Age,Dots,Date
Ghost,M,,400,01/02/2025
`)
			err := svc.Reload(ctx)

			convey.Convey("Then the failure distinguishes unclassifiable data", func() {
				convey.So(errors.Is(err, league.ErrNoQualifiers), convey.ShouldBeTrue)
				convey.So(errors.Is(err, league.ErrNoResults), convey.ShouldBeFalse)
			})
		})
	})
}

func TestService_Stop(t *testing.T) {
	convey.Convey("Given a started service", t, func() {
		path := filepath.Join(t.TempDir(), "results.csv")
		writeResults(path, sampleResults)

		svc := service.New(service.WithResultsPath(path))
		ctx := context.Background()
		convey.So(svc.Start(ctx), convey.ShouldBeNil)

		convey.Convey("When stopping the service", func() {
			svc.Stop()

			convey.Convey("Then it should be marked as stopped", func() {
				stats := svc.GetStats()
				convey.So(stats["started"], convey.ShouldEqual, false)
			})

			convey.Convey("And stopping again should not panic", func() {
				convey.So(svc.Stop, convey.ShouldNotPanic)
			})
		})
	})
}

func TestService_GetStats(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given a service that has not been started", t, func() {
		svc := service.New()

		convey.Convey("Then stats cover configuration only", func() {
			stats := svc.GetStats()
			convey.So(stats["started"], convey.ShouldEqual, false)
			convey.So(stats["appearanceCap"], convey.ShouldEqual, 3)
			_, ok := stats["lifters"]
			convey.So(ok, convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given a started service with standings", t, func() {
		path := filepath.Join(t.TempDir(), "results.csv")
		writeResults(path, sampleResults)

		svc := service.New(service.WithResultsPath(path))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		convey.Convey("Then stats include standings and cache counters", func() {
			stats := svc.GetStats()
			convey.So(stats["lifters"], convey.ShouldEqual, 3)
			convey.So(stats["divisions"], convey.ShouldEqual, 6)
			convey.So(stats["cachedDatasets"], convey.ShouldEqual, 1)
			convey.So(stats["lastBuildAt"], convey.ShouldNotBeNil)
			_, ok := stats["lastBuildError"]
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}

func TestService_DivisionOrder(t *testing.T) {
	convey.Convey("Given a service with a custom division order", t, func() {
		path := filepath.Join(t.TempDir(), "results.csv")
		writeResults(path, sampleResults)

		svc := service.New(
			service.WithResultsPath(path),
			service.WithDivisionOrder([]division.Division{
				division.OpenWomen,
				division.OpenMen,
			}),
		)
		ctx := context.Background()
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		convey.Convey("Then divisions are listed in that order", func() {
			convey.So(svc.Divisions(ctx), convey.ShouldResemble, []string{"Open Women", "Open Men"})
		})
	})
}

// writeResults writes a results CSV for tests, replacing any previous
// content at the path.
func writeResults(path, content string) {
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		panic(err)
	}
}
