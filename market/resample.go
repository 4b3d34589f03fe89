package market

import (
	"fmt"
	"time"
)

// Resample aggregates fine-grained bars into fixed-width buckets:
// open=first, high=max, low=min, close=last, volume=sum. A bucket's IsRoll
// flag is the OR of its constituent bars' flags, so a roll anywhere inside
// the window marks the whole aggregate bar. Buckets with no bars are simply
// absent from the output. Signals are not aggregated; they are computed on
// the resampled series afterwards.
func Resample(bars []Bar, width time.Duration) ([]Bar, error) {
	if width <= 0 {
		return nil, fmt.Errorf("resample width must be positive, got %s", width)
	}
	if len(bars) == 0 {
		return nil, nil
	}

	var out []Bar
	var cur Bar
	var open bool

	flush := func() {
		if open {
			out = append(out, cur)
			open = false
		}
	}

	for _, b := range bars {
		bucket := b.Time.Truncate(width)

		if !open || !bucket.Equal(cur.Time) {
			flush()
			cur = Bar{
				Time:   bucket,
				Open:   b.Open,
				High:   b.High,
				Low:    b.Low,
				Close:  b.Close,
				Volume: b.Volume,
				IsRoll: b.IsRoll,
			}
			open = true
			continue
		}

		if b.High > cur.High {
			cur.High = b.High
		}
		if b.Low < cur.Low {
			cur.Low = b.Low
		}
		cur.Close = b.Close
		cur.Volume += b.Volume
		cur.IsRoll = cur.IsRoll || b.IsRoll
	}
	flush()

	return out, nil
}

// FilterSessionBreak removes bars whose local wall-clock time falls inside
// the daily [start, end] window (inclusive, "HH:MM" in loc). The exchange
// session break is filtered before resampling so that no aggregate bar
// spans two sessions.
func FilterSessionBreak(bars []Bar, loc *time.Location, start, end string) ([]Bar, error) {
	sm, err := parseMinuteOfDay(start)
	if err != nil {
		return nil, fmt.Errorf("session break start: %w", err)
	}
	em, err := parseMinuteOfDay(end)
	if err != nil {
		return nil, fmt.Errorf("session break end: %w", err)
	}

	out := make([]Bar, 0, len(bars))
	for _, b := range bars {
		lt := b.Time.In(loc)
		m := lt.Hour()*60 + lt.Minute()
		if m >= sm && m <= em {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func parseMinuteOfDay(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("want HH:MM, got %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
