// Package ingest turns raw results CSVs into cleaned datasets and
// memoizes them by content hash.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	model "github.com/okian/chalk/internal/domain/model"
)

// Canonical column names, matched after trimming whitespace.
const (
	colName = "Name"
	colSex  = "Sex"
	colAge  = "Age"
	colDots = "Dots"
	colDate = "Date"
	colMeet = "Meet"
)

// dateLayouts are tried in order. Sheets in the wild write day-first
// dates, padded or not, with two or four digit years; ISO dates pass
// too.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"2/1/06",
	"2006-01-02",
}

// Parse reads a results CSV and returns the cleaned dataset. The first
// row must be a header carrying at least Name and Dots columns; header
// names are whitespace-trimmed and unknown columns are ignored. Rows
// without a name or a numeric DOTS value are skipped and counted by
// reason. Age and Date are optional per row; unparseable values leave
// AgeKnown false or the date unknown. A malformed row fails the whole
// parse.
//
// The returned dataset has no ID, hash or path; the Loader fills those.
func Parse(r io.Reader) (*model.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrRead, err)
	}

	cols := make(map[string]int, len(header))
	for i, cell := range header {
		cell = strings.TrimSpace(strings.TrimPrefix(cell, "\uFEFF"))
		if _, dup := cols[cell]; !dup {
			cols[cell] = i
		}
	}
	for _, required := range []string{colName, colDots} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	ds := &model.Dataset{}
	for row := 2; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrRead, row, err)
		}

		name := strings.TrimSpace(field(record, cols, colName))
		if name == "" {
			ds.Skipped.MissingName++
			continue
		}
		dots, ok := parseFloat(field(record, cols, colDots))
		if !ok {
			ds.Skipped.MissingDots++
			continue
		}

		result := model.Result{
			Name: name,
			Sex:  strings.TrimSpace(field(record, cols, colSex)),
			Dots: dots,
			Meet: strings.TrimSpace(field(record, cols, colMeet)),
			Row:  row,
		}
		if age, ok := parseFloat(field(record, cols, colAge)); ok {
			result.Age = age
			result.AgeKnown = true
		}
		result.EventDate = parseDate(field(record, cols, colDate))

		ds.Records = append(ds.Records, result)
	}
	return ds, nil
}

// field returns the named column's raw value, or "" when the column is
// absent or the row is short.
func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// parseFloat accepts a trimmed decimal value. NaN counts as missing.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// parseDate tries the supported day-first layouts and returns the zero
// time when none match.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
