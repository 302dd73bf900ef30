package ingest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	model "github.com/okian/chalk/internal/domain/model"
	"github.com/okian/chalk/pkg/metrics"
)

// Loader reads and parses results files, memoizing datasets by the
// SHA256 of their content. Unchanged bytes come back as the same
// dataset, same ID; changed bytes parse fresh under a new ID. There is
// no TTL and no eviction, so the memoization never serves stale data
// for changed content.
//
// Returned datasets are shared cached instances and must not be
// mutated.
type Loader struct {
	cache   map[string]*model.Dataset // content hash -> parsed dataset
	cacheMu sync.RWMutex
	// sf collapses concurrent loads of identical content into one parse.
	sf  singleflight.Group
	now func() time.Time
}

// NewLoader creates a loader with an empty cache.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		cache: make(map[string]*model.Dataset),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads path, hashes the bytes and returns the memoized dataset
// for that content, parsing only when the hash is new. ctx is honored
// before the parse starts.
func (l *Loader) Load(ctx context.Context, path string) (*model.Dataset, error) {
	clean := filepath.Clean(path)

	data, err := os.ReadFile(clean)
	if err != nil {
		metrics.RecordDatasetLoadError()
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	if ds, ok := l.cached(hash); ok {
		metrics.RecordDatasetCacheHit()
		return ds, nil
	}

	v, err, _ := l.sf.Do(hash, func() (any, error) {
		// Re-check inside singleflight to close the race between the
		// cache miss above and group execution.
		if ds, ok := l.cached(hash); ok {
			return ds, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load cancelled: %w", err)
		}

		start := time.Now()
		ds, err := Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", clean, err)
		}
		ds.ID = uuid.NewString()
		ds.Hash = hash
		ds.Path = clean
		ds.LoadedAt = l.now()

		metrics.RecordDatasetLoad()
		metrics.RecordParseDuration(float64(time.Since(start).Milliseconds()))
		metrics.UpdateDatasetRows(len(ds.Records))
		metrics.RecordRowsSkipped("missing_name", ds.Skipped.MissingName)
		metrics.RecordRowsSkipped("missing_dots", ds.Skipped.MissingDots)

		l.store(hash, ds)
		return ds, nil
	})
	if err != nil {
		metrics.RecordDatasetLoadError()
		return nil, err
	}
	return v.(*model.Dataset), nil
}

// ClearCache drops every memoized dataset, forcing the next Load to
// parse from source.
func (l *Loader) ClearCache() {
	l.cacheMu.Lock()
	defer l.cacheMu.Unlock()
	l.cache = make(map[string]*model.Dataset)
}

// Size returns the number of distinct content versions memoized.
func (l *Loader) Size() int {
	l.cacheMu.RLock()
	defer l.cacheMu.RUnlock()
	return len(l.cache)
}

func (l *Loader) cached(hash string) (*model.Dataset, bool) {
	l.cacheMu.RLock()
	defer l.cacheMu.RUnlock()
	ds, ok := l.cache[hash]
	return ds, ok
}

func (l *Loader) store(hash string, ds *model.Dataset) {
	l.cacheMu.Lock()
	defer l.cacheMu.Unlock()
	l.cache[hash] = ds
}
