// Package rollover decides which calendar day "now" belongs to.
//
// The app treats a day as lasting until a configurable early-morning hour
// (04:00 by default) for two purposes: locking habit entries and resetting
// the workout banner. Both use Policy; they differ only in which method they
// call.
package rollover

import (
	"fmt"
	"time"

	"github.com/julianstephens/stride/internal/constants"
)

// Clock supplies the current time. Tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns T.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }

// Policy holds the rollover hour and the location days are computed in.
type Policy struct {
	Hour int
	Loc  *time.Location
}

// Default returns a Policy with the default rollover hour in the local zone.
func Default() Policy {
	return Policy{Hour: constants.DefaultRolloverHour, Loc: time.Local}
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// New builds a Policy, validating the hour.
func New(hour int, timezone string) (Policy, error) {
	if hour < 0 || hour > 23 {
		return Policy{}, fmt.Errorf("rollover hour must be between 0 and 23, got %d", hour)
	}
	loc, err := LoadLocation(timezone)
	if err != nil {
		return Policy{}, err
	}
	return Policy{Hour: hour, Loc: loc}, nil
}

func (p Policy) loc() *time.Location {
	if p.Loc == nil {
		return time.Local
	}
	return p.Loc
}

// Midnight truncates t to the start of its calendar day in the policy location.
func (p Policy) Midnight(t time.Time) time.Time {
	t = t.In(p.loc())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.loc())
}

// EffectiveDate is the calendar day now belongs to: today, or yesterday
// while the clock is still before the rollover hour.
func (p Policy) EffectiveDate(now time.Time) time.Time {
	day := p.Midnight(now)
	if now.In(p.loc()).Hour() < p.Hour {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// EffectiveDay is EffectiveDate formatted as YYYY-MM-DD.
func (p Policy) EffectiveDay(now time.Time) string {
	return p.EffectiveDate(now).Format(constants.DateFormat)
}

// Today is the plain calendar date of now, with no rollover offset.
func (p Policy) Today(now time.Time) string {
	return now.In(p.loc()).Format(constants.DateFormat)
}

// SameDay reports whether a and b fall on the same calendar date.
func (p Policy) SameDay(a, b time.Time) bool {
	return p.Today(a) == p.Today(b)
}

// NextReset is the rollover hour on the calendar day after last.
func (p Policy) NextReset(last time.Time) time.Time {
	return p.Midnight(last).AddDate(0, 0, 1).Add(time.Duration(p.Hour) * time.Hour)
}

// ParseDate parses a YYYY-MM-DD date at midnight in the policy location, or
// an RFC 3339 timestamp.
func (p Policy) ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(constants.DateFormat, s, p.loc()); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

// AddDays returns the date n calendar days after now's date, as YYYY-MM-DD.
func (p Policy) AddDays(now time.Time, n int) string {
	return p.Midnight(now).AddDate(0, 0, n).Format(constants.DateFormat)
}

// WeekStart returns the Sunday that begins the week containing t.
func (p Policy) WeekStart(t time.Time) time.Time {
	day := p.Midnight(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// Weekday is the local weekday of t.
func (p Policy) Weekday(t time.Time) time.Weekday {
	return t.In(p.loc()).Weekday()
}
