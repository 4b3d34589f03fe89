package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// LoadCSV reads minute bars from a CSV file with columns:
//
//	time,open,high,low,close,volume[,instrument_id]
//
// time is RFC3339 or a unix-seconds integer. When the optional
// instrument_id column is present, a bar whose id differs from the previous
// bar's is flagged IsRoll — the contract rolled somewhere before that bar.
// A header row is skipped if the first field is not parseable as a time.
func LoadCSV(path string) ([]Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var bars []Bar
	var prevID string
	line := 0

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read bars csv: %w", err)
		}
		line++

		if len(rec) < 6 {
			return nil, fmt.Errorf("bars csv line %d: want at least 6 fields, got %d", line, len(rec))
		}

		ts, err := parseTime(rec[0])
		if err != nil {
			if line == 1 {
				continue // header row
			}
			return nil, fmt.Errorf("bars csv line %d: %w", line, err)
		}

		var vals [5]float64
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseFloat(rec[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("bars csv line %d field %d: %w", line, i+2, err)
			}
			vals[i] = v
		}

		b := Bar{
			Time:   ts,
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
		}

		if len(rec) >= 7 {
			id := rec[6]
			if prevID != "" && id != prevID {
				b.IsRoll = true
			}
			prevID = id
		}

		bars = append(bars, b)
	}

	return bars, nil
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unparseable time %q", s)
}
