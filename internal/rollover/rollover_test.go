package rollover

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func TestEffectiveDay(t *testing.T) {
	p := Policy{Hour: 4, Loc: time.UTC}

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"after rollover", at(2024, 3, 10, 4, 0), "2024-03-10"},
		{"just before rollover", at(2024, 3, 10, 3, 59), "2024-03-09"},
		{"midnight", at(2024, 3, 10, 0, 0), "2024-03-09"},
		{"late evening", at(2024, 3, 10, 23, 59), "2024-03-10"},
		{"year boundary", at(2024, 1, 1, 2, 0), "2023-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.EffectiveDay(tt.now))
		})
	}
}

func TestTodayIgnoresRollover(t *testing.T) {
	p := Policy{Hour: 4, Loc: time.UTC}
	assert.Equal(t, "2024-03-10", p.Today(at(2024, 3, 10, 1, 0)))
	assert.True(t, p.SameDay(at(2024, 3, 10, 0, 1), at(2024, 3, 10, 23, 0)))
	assert.False(t, p.SameDay(at(2024, 3, 9, 23, 59), at(2024, 3, 10, 0, 0)))
}

func TestNextReset(t *testing.T) {
	p := Policy{Hour: 4, Loc: time.UTC}
	assert.Equal(t, at(2024, 3, 11, 4, 0), p.NextReset(at(2024, 3, 10, 22, 15)))
	assert.Equal(t, at(2024, 3, 11, 4, 0), p.NextReset(at(2024, 3, 10, 0, 0)))
}

func TestParseDate(t *testing.T) {
	loc, err := LoadLocation("America/New_York")
	require.NoError(t, err)
	p := Policy{Hour: 4, Loc: loc}

	d, err := p.ParseDate("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), d)

	ts, err := p.ParseDate("2024-03-10T15:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 15, ts.UTC().Hour())

	_, err = p.ParseDate("10/03/2024")
	assert.Error(t, err)
}

func TestNewValidates(t *testing.T) {
	_, err := New(24, "UTC")
	assert.Error(t, err)
	_, err = New(4, "Not/AZone")
	assert.Error(t, err)
	p, err := New(4, "")
	require.NoError(t, err)
	assert.Equal(t, time.Local, p.Loc)
}

func TestWeekStartIsSunday(t *testing.T) {
	p := Policy{Hour: 4, Loc: time.UTC}
	// 2024-03-13 is a Wednesday
	assert.Equal(t, at(2024, 3, 10, 0, 0), p.WeekStart(at(2024, 3, 13, 12, 0)))
	assert.Equal(t, at(2024, 3, 10, 0, 0), p.WeekStart(at(2024, 3, 10, 0, 0)))
	assert.Equal(t, "2024-03-17", p.AddDays(at(2024, 3, 10, 9, 0), 7))
}
