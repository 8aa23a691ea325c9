// Package dateutil provides date stamps and day intervals for reports.
package dateutil

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/jinzhu/now"
)

// StampLayout is used for date stamped report filenames.
const StampLayout = "20060102"

// Interval groups start and end.
type Interval struct {
	Start time.Time
	End   time.Time
}

// String renders an interval.
func (iv Interval) String() string {
	return fmt.Sprintf("%s %s", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// Stamp returns the YYYYMMDD form of a date.
func Stamp(t time.Time) string {
	return t.Format(StampLayout)
}

// ParseStamp parses a YYYYMMDD stamp in local time.
func ParseStamp(s string) (time.Time, error) {
	return time.ParseInLocation(StampLayout, s, time.Local)
}

// Parse parses a date in local time. Report stamps (YYYYMMDD) are accepted
// as well as the common layouts, e.g. 2024-03-05.
func Parse(value string) (time.Time, error) {
	if len(value) == len(StampLayout) {
		if t, err := ParseStamp(value); err == nil {
			return t, nil
		}
	}
	return dateparse.ParseLocal(value)
}

// Daily chops up the span between start and end into day intervals, the
// first starting at start, the last ending before end.
func Daily(start, end time.Time) (result []Interval) {
	if !end.After(start) {
		return
	}
	end = end.Add(-1 * time.Second)
	var l = start
	for {
		r := now.With(l).EndOfDay()
		result = append(result, Interval{l, r})
		l = now.With(r.Add(1 * time.Second)).BeginningOfDay()
		if l.After(end) {
			break
		}
	}
	return result
}
