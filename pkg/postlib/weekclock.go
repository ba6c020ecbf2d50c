package postlib

import "time"

// SecondsPerWeek is the length of the scheduling cycle: 7 days in seconds.
const SecondsPerWeek = 7 * 24 * 3600

// WeekPosition locates an instant inside the 7-day scheduling cycle with
// second granularity. Weekday uses the Monday=0 convention, matching the
// weekday numbers authored in the configuration.
type WeekPosition struct {
	Weekday int // 0 (Monday) .. 6 (Sunday)
	Hour    int // 0 .. 23
	Minute  int // 0 .. 59
	Second  int // 0 .. 59
}

// PositionOf projects a wall-clock timestamp onto its WeekPosition.
func PositionOf(t time.Time) WeekPosition {
	// time.Weekday is Sunday=0; shift to Monday=0.
	wday := (int(t.Weekday()) + 6) % 7
	return WeekPosition{
		Weekday: wday,
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
	}
}

// Seconds returns the absolute amount of seconds counted from
// Monday 00:00:00.
func (p WeekPosition) Seconds() int {
	return p.Weekday*3600*24 + p.Hour*3600 + p.Minute*60 + p.Second
}

// SecondsUntil returns the forward distance in seconds traveling from
// `from` to `to` around the weekly cycle. The result is always in
// [0, SecondsPerWeek-1]; zero means "exactly now". A raw negative
// difference wraps forward by one cycle, which is the only correct
// interpretation for an at-this-instant-or-future weekly trigger.
func SecondsUntil(from, to WeekPosition) int {
	d := to.Seconds() - from.Seconds()
	if d < 0 {
		d += SecondsPerWeek
	}
	return d
}
