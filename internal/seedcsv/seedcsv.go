// Package seedcsv generates plausible league results files for local
// runs and demos. The same seed always produces the same file.
package seedcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"time"
)

// Generation defaults.
const (
	defaultLifters    = 48
	defaultMeets      = 5
	maxMeetsPerLifter = 6
)

// Dots score generation ranges.
const (
	baseDotsMin   = 250.0
	baseDotsRange = 270.0
	meetDotsSwing = 25.0
)

// Age generation range. Spans juniors through masters.
const (
	ageMin   = 16.0
	ageRange = 45.0
)

var firstNames = []string{
	"Ada", "Aisha", "Alfie", "Amelia", "Archie", "Brie", "Callum", "Cara",
	"Daniel", "Dec", "Eleanor", "Ellis", "Fatima", "Freya", "George",
	"Grace", "Harry", "Holly", "Imogen", "Jack", "Jess", "Jon", "Kasia",
	"Leah", "Lewis", "Maya", "Megan", "Niamh", "Ollie", "Priya", "Rhys",
	"Rosie", "Sam", "Siobhan", "Tom", "Zara",
}

var lastNames = []string{
	"Adams", "Barnes", "Clarke", "Davies", "Evans", "Foster", "Griffiths",
	"Hale", "Hughes", "Jenkins", "Kaur", "Lewis", "Morgan", "Nowak",
	"Okafor", "Price", "Quinn", "Reid", "Shaw", "Singh", "Taylor",
	"Walsh", "Webb", "Wright",
}

var meetNames = []string{
	"Nottingham Strong Novice",
	"Raw Strength Novice, Warrington",
	"349 Barbell Novice, Salisbury",
	"Iron Warehouse Novice, Great Yarmouth",
	"Forge Novice, Sheffield",
	"Anchor Novice, Plymouth",
}

// Config controls what the generator emits.
type Config struct {
	// Lifters is the number of distinct clean lifters. Capped at the
	// name pool size.
	Lifters int
	// Meets is the number of meets spread across the season.
	Meets int
	// Seed drives all randomness. The same seed reproduces the file.
	Seed uint64
	// Messy adds rows that exercise skip and drop handling: a missing
	// name, a missing score, an unknown age, an age straddling a
	// division boundary and an undated appearance over the cap.
	Messy bool
}

// Stats reports what a generation run wrote.
type Stats struct {
	Lifters int
	Meets   int
	Rows    int
	Dirty   int
}

func (c Config) withDefaults() Config {
	if c.Lifters <= 0 {
		c.Lifters = defaultLifters
	}
	if pool := len(firstNames) * len(lastNames); c.Lifters > pool {
		c.Lifters = pool
	}
	if c.Meets <= 0 {
		c.Meets = defaultMeets
	}
	return c
}

type meet struct {
	name string
	date string
}

type lifter struct {
	name  string
	sex   string
	age   string
	base  float64
	meets map[int]bool
}

// Write generates a results CSV and writes it to w.
func Write(w io.Writer, cfg Config) (Stats, error) {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))

	meets := buildMeets(rng, cfg.Meets)
	lifters := buildLifters(rng, cfg.Lifters, len(meets))

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Sex", "Age", "Dots", "Date", "Meet"}); err != nil {
		return Stats{}, fmt.Errorf("write header: %w", err)
	}

	stats := Stats{Lifters: len(lifters), Meets: len(meets)}

	// Emit grouped by meet, the way concatenated result sheets arrive.
	for mi, m := range meets {
		for _, lf := range lifters {
			if !lf.meets[mi] {
				continue
			}
			dots := lf.base + rng.Float64()*2*meetDotsSwing - meetDotsSwing
			row := []string{
				lf.name,
				lf.sex,
				lf.age,
				strconv.FormatFloat(dots, 'f', 2, 64),
				m.date,
				m.name,
			}
			if err := cw.Write(row); err != nil {
				return Stats{}, fmt.Errorf("write row: %w", err)
			}
			stats.Rows++
		}
	}

	if cfg.Messy {
		dirty := dirtyRows(meets)
		for _, row := range dirty {
			if err := cw.Write(row); err != nil {
				return Stats{}, fmt.Errorf("write row: %w", err)
			}
		}
		stats.Rows += len(dirty)
		stats.Dirty = len(dirty)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return Stats{}, fmt.Errorf("flush: %w", err)
	}
	return stats, nil
}

// WriteFile generates a results CSV at path, replacing any existing file.
func WriteFile(path string, cfg Config) (Stats, error) {
	f, err := os.Create(path)
	if err != nil {
		return Stats{}, fmt.Errorf("create %s: %w", path, err)
	}
	stats, err := Write(f, cfg)
	if cerr := f.Close(); err == nil && cerr != nil {
		return Stats{}, fmt.Errorf("close %s: %w", path, cerr)
	}
	return stats, err
}

// buildMeets spreads n meets over a season starting October 1st.
func buildMeets(rng *rand.Rand, n int) []meet {
	const seasonDays = 350
	start := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)

	meets := make([]meet, n)
	for i := range meets {
		day := i*seasonDays/n + rng.IntN(10)
		meets[i] = meet{
			name: meetNames[i%len(meetNames)],
			date: start.AddDate(0, 0, day).Format("02/01/2006"),
		}
	}
	return meets
}

func buildLifters(rng *rand.Rand, n, meetCount int) []lifter {
	names := namePool(rng)
	lifters := make([]lifter, 0, n)
	for i := 0; i < n; i++ {
		age := ageMin + rng.Float64()*ageRange
		ageStr := strconv.FormatFloat(roundTenth(age), 'f', -1, 64)
		if rng.IntN(3) == 0 {
			ageStr = strconv.Itoa(int(age))
		}

		sex := "F"
		if rng.IntN(2) == 0 {
			sex = "M"
		}
		// The classifier buckets on the first letter, so long-form
		// values should land in the same divisions.
		if rng.IntN(10) == 0 {
			if sex == "M" {
				sex = "Male"
			} else {
				sex = "Female"
			}
		}

		entered := 1 + rng.IntN(minInt(maxMeetsPerLifter, meetCount))
		in := make(map[int]bool, entered)
		for _, mi := range rng.Perm(meetCount)[:entered] {
			in[mi] = true
		}

		lifters = append(lifters, lifter{
			name:  names[i],
			sex:   sex,
			age:   ageStr,
			base:  baseDotsMin + rng.Float64()*baseDotsRange,
			meets: in,
		})
	}
	return lifters
}

// dirtyRows returns fixed rows that exercise the ingestion skip
// counters, the unclassifiable drop, division drift and the undated
// appearance policy.
func dirtyRows(meets []meet) [][]string {
	first := meets[0]
	last := meets[len(meets)-1]

	rows := [][]string{
		{"", "F", "29", "301.22", first.date, first.name},
		{"Casey Blank", "M", "31", "", last.date, last.name},
		{"Avery Noage", "F", "", "288.40", first.date, first.name},
		{"Jordan Drift", "M", "23.7", "310.10", first.date, first.name},
		{"Jordan Drift", "M", "24.2", "305.00", last.date, last.name},
		{"Riley Undated", "F", "27", "295.50", "", first.name},
	}
	// Riley's dated appearances fill the cap, so the undated row above
	// is the one that drops.
	for i, m := range meets {
		if i == 3 {
			break
		}
		rows = append(rows, []string{
			"Riley Undated", "F", "27", fmt.Sprintf("%.2f", 290.0+float64(i)), m.date, m.name,
		})
	}
	return rows
}

func namePool(rng *rand.Rand) []string {
	pool := make([]string, 0, len(firstNames)*len(lastNames))
	for _, f := range firstNames {
		for _, l := range lastNames {
			pool = append(pool, f+" "+l)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool
}

func roundTenth(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
