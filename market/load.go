package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
)

// Load reads a close-price series from a CSV file with rows of
// "time,close". Time is RFC3339 or unix seconds. A header row is skipped
// if the first field does not parse as a time. Files ending in .xz are
// decompressed transparently.
//
// The returned series is validated: ordering errors are fatal here, not
// at simulation time.
func Load(path string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open series: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open xz reader: %w", err)
		}
		r = xr
	}

	s, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Read parses a "time,close" CSV stream into a validated Series.
func Read(r io.Reader) (Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	var s Series
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++

		if len(rec) < 2 {
			return nil, fmt.Errorf("line %d: want time,close got %d fields", line, len(rec))
		}

		ts, err := parseTime(rec[0])
		if err != nil {
			if line == 1 {
				// Header row.
				continue
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		closeV, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad close %q: %w", line, rec[1], err)
		}

		s = append(s, Bar{Time: ts, Close: closeV})
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseTime(field string) (time.Time, error) {
	field = strings.TrimSpace(field)

	if t, err := time.Parse(time.RFC3339, field); err == nil {
		return t, nil
	}
	if secs, err := strconv.ParseInt(field, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("bad time %q (want RFC3339 or unix seconds)", field)
}
