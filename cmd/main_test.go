package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/okian/chalk/internal/adapters/http/api"
	"github.com/okian/chalk/internal/adapters/http/docs"
	"github.com/okian/chalk/internal/adapters/http/site"
	service "github.com/okian/chalk/internal/app"
	"github.com/okian/chalk/internal/config"
	"github.com/okian/chalk/internal/domain/division"
	"github.com/okian/chalk/pkg/logger"
	"github.com/okian/chalk/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("CHALK_ADDR", ":8080")
			_ = os.Setenv("CHALK_RESULTS_PATH", "archive/results.csv")
			_ = os.Setenv("CHALK_APPEARANCE_CAP", "4")
			defer func() {
				_ = os.Unsetenv("CHALK_ADDR")
				_ = os.Unsetenv("CHALK_RESULTS_PATH")
				_ = os.Unsetenv("CHALK_APPEARANCE_CAP")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.ResultsPath, convey.ShouldEqual, "archive/results.csv")
				convey.So(cfg.AppearanceCap, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := service.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := service.New(
					service.WithResultsPath("archive/results.csv"),
					service.WithAppearanceCap(4),
					service.WithDivisionOrder([]division.Division{division.OpenWomen, division.OpenMen}),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := service.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc, config.DefaultMaxLeaderboardLimit)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				registry := prometheus.NewRegistry()
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should stop when the context is cancelled", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given main application integration", t, func() {
		convey.Convey("When testing full application setup", func() {
			_ = os.Setenv("CHALK_ADDR", ":8080")
			_ = os.Setenv("CHALK_APPEARANCE_CAP", "3")
			defer func() {
				_ = os.Unsetenv("CHALK_ADDR")
				_ = os.Unsetenv("CHALK_APPEARANCE_CAP")
			}()

			convey.Convey("Then all components should work together", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				// Load configuration
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)

				order, err := cfg.Divisions()
				convey.So(err, convey.ShouldBeNil)

				// Create service (without starting, no results file is present)
				svc := service.New(
					service.WithResultsPath(cfg.ResultsPath),
					service.WithAppearanceCap(cfg.AppearanceCap),
					service.WithDivisionOrder(order),
					service.WithLeagueInfo(cfg.LeagueInfo()),
				)
				convey.So(svc, convey.ShouldNotBeNil)

				// Create HTTP server
				server := api.NewServer(svc, svc, cfg.MaxLeaderboardLimit)
				convey.So(server, convey.ShouldNotBeNil)

				// Create HTTP mux
				mux := http.NewServeMux()
				convey.So(mux, convey.ShouldNotBeNil)

				// Register routes
				site.Register(ctx, mux)
				docs.Register(ctx, mux)
				server.Register(ctx, mux)

				// Stop service
				svc.Stop()
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When testing invalid configuration", func() {
			_ = os.Setenv("CHALK_ADDR", "")
			defer func() { _ = os.Unsetenv("CHALK_ADDR") }()

			convey.Convey("Then configuration loading should fail", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When testing service creation with invalid options", func() {
			convey.Convey("Then service should ignore out of range values", func() {
				svc := service.New(
					service.WithAppearanceCap(0),
					service.WithDivisionOrder(nil),
					service.WithLogger(nil),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationPerformance(t *testing.T) {
	convey.Convey("Given main application performance", t, func() {
		convey.Convey("When testing component creation performance", func() {
			convey.Convey("Then service creation should be fast", func() {
				start := time.Now()
				svc := service.New()
				duration := time.Since(start)

				convey.So(svc, convey.ShouldNotBeNil)
				convey.So(duration, convey.ShouldBeLessThan, 100*time.Millisecond)
			})

			convey.Convey("And HTTP server creation should be fast", func() {
				svc := service.New()
				convey.So(svc, convey.ShouldNotBeNil)

				start := time.Now()
				server := api.NewServer(svc, svc, config.DefaultMaxLeaderboardLimit)
				duration := time.Since(start)

				convey.So(server, convey.ShouldNotBeNil)
				convey.So(duration, convey.ShouldBeLessThan, 100*time.Millisecond)
			})

			convey.Convey("And metrics manager creation should be fast", func() {
				start := time.Now()
				// Use a custom registry to avoid duplicate registration issues
				registry := prometheus.NewRegistry()
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))
				duration := time.Since(start)

				convey.So(manager, convey.ShouldNotBeNil)
				convey.So(duration, convey.ShouldBeLessThan, 100*time.Millisecond)
			})
		})
	})
}

func TestMainApplicationConcurrency(t *testing.T) {
	convey.Convey("Given main application concurrency", t, func() {
		convey.Convey("When testing concurrent component creation", func() {
			numGoroutines := 10
			done := make(chan bool, numGoroutines)

			for i := 0; i < numGoroutines; i++ {
				go func(id int) {
					defer func() {
						if r := recover(); r != nil {
							// Log the panic but don't fail the test
							t.Logf("Goroutine %d panicked: %v", id, r)
						}
						done <- true
					}()

					svc := service.New()
					server := api.NewServer(svc, svc, config.DefaultMaxLeaderboardLimit)
					_ = server
				}(i)
			}

			completed := 0
			timeout := time.After(5 * time.Second)
		wait:
			for completed < numGoroutines {
				select {
				case <-done:
					completed++
				case <-timeout:
					break wait
				}
			}

			convey.Convey("Then all goroutines should complete", func() {
				convey.So(completed, convey.ShouldEqual, numGoroutines)
			})
		})
	})
}
