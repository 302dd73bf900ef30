// Command seed-results writes a generated league results CSV, ready to
// be served by the standings service or dropped onto a watched path.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/okian/chalk/internal/seedcsv"
	"github.com/okian/chalk/pkg/logger"
)

func main() {
	var (
		out     = flag.String("out", "results.csv", "Output path for the generated results file")
		lifters = flag.Int("lifters", 0, "Number of lifters to generate (0 for the default)")
		meets   = flag.Int("meets", 0, "Number of meets across the season (0 for the default)")
		seed    = flag.Uint64("seed", 1, "Random seed; the same seed reproduces the same file")
		messy   = flag.Bool("messy", true, "Include rows that exercise skip and drop handling")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx := context.Background()
	log := logger.Get().Named("seed")

	stats, err := seedcsv.WriteFile(*out, seedcsv.Config{
		Lifters: *lifters,
		Meets:   *meets,
		Seed:    *seed,
		Messy:   *messy,
	})
	if err != nil {
		log.Error(ctx, "results generation failed", logger.Error(err))
		os.Exit(1)
	}

	log.Info(ctx, "results file written",
		logger.String("path", *out),
		logger.Int("lifters", stats.Lifters),
		logger.Int("meets", stats.Meets),
		logger.Int("rows", stats.Rows),
		logger.Int("dirty", stats.Dirty),
	)
}
