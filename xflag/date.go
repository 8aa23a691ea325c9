// Package xflag adds flag values not covered by the standard library.
package xflag

import (
	"time"

	"github.com/brain-image-library/bilkit/dateutil"
)

// Date can be used with flag.Var to parse dates in many layouts.
type Date struct {
	time.Time
}

// String renders the date as YYYY-MM-DD.
func (d *Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format("2006-01-02")
}

// Set parses a date value, cf. dateutil.Parse.
func (d *Date) Set(value string) error {
	t, err := dateutil.Parse(value)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// IsSet returns true, if a date has been given.
func (d *Date) IsSet() bool {
	return !d.Time.IsZero()
}
