package postlib

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/adhocore/gronx"
)

// TriggerFunc is the action invoked when a timer fires. Errors returned by
// the action are logged and swallowed; they never terminate the timer loop.
type TriggerFunc func() error

// Sleep intervals of the adaptive poll loop. The loop sleeps coarsely while
// the trigger is far away and drops to sub-second polls only inside the
// final minute, balancing wake-up precision against busy-polling cost.
const (
	rearmAfter = 3600 // seconds-to-trigger above which the fired flag resets

	farSleep  = 10 * time.Minute
	nearSleep = 10 * time.Second
	fineSleep = 200 * time.Millisecond

	// maxCronSleep caps a single cron-timer sleep so that NTP steps, DST
	// transitions and system suspend cannot overshoot the trigger by more
	// than one cap interval.
	maxCronSleep = 60 * time.Second
)

// Timer fires a callback once per weekly cycle when the current time reaches
// the configured trigger position.
//
// State machine: Waiting (d > rearmAfter, fired flag cleared) → Approaching
// (0 < d <= rearmAfter) → Fired (d == 0, at most once) → Waiting again once
// d has grown past rearmAfter on the following cycle.
type Timer struct {
	trigger WeekPosition
	action  TriggerFunc
	fired   bool
	l       *log.Logger

	// overridable for tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

// NewTimer creates a weekly timer firing on the given weekday (0=Monday ..
// 6=Sunday) at the time of day `at`, given as "H", "H:M" or "H:M:S" with
// missing components defaulting to 0. The logger may be nil.
func NewTimer(weekday int, at string, action TriggerFunc, l *log.Logger) (*Timer, error) {
	if weekday < 0 || weekday > 6 {
		return nil, fmt.Errorf("%w: weekday must be in range [0, 6], got %d", ErrInvalidTriggerSpec, weekday)
	}
	hour, minute, second, err := parseTimeOfDay(at)
	if err != nil {
		return nil, err
	}
	if action == nil {
		return nil, fmt.Errorf("%w: no action provided", ErrInvalidTriggerSpec)
	}
	if l == nil {
		l = log.Default()
	}
	return &Timer{
		trigger: WeekPosition{
			Weekday: weekday,
			Hour:    hour,
			Minute:  minute,
			Second:  second,
		},
		action: action,
		l:      l,
		now:    time.Now,
		sleep:  sleepCtx,
	}, nil
}

func parseTimeOfDay(at string) (hour, minute, second int, err error) {
	parts := strings.Split(at, ":")
	if len(parts) > 3 {
		err = fmt.Errorf("%w: time must be in H(:M(:S)) form, got %q", ErrInvalidTriggerSpec, at)
		return
	}
	vals := make([]int, len(parts))
	for i, p := range parts {
		vals[i], err = strconv.Atoi(p)
		if err != nil || vals[i] < 0 {
			err = fmt.Errorf("%w: time component %q is not a non-negative integer", ErrInvalidTriggerSpec, p)
			return
		}
	}
	hour = vals[0]
	if len(vals) > 1 {
		minute = vals[1]
	}
	if len(vals) > 2 {
		second = vals[2]
	}
	if hour > 23 || minute > 59 || second > 59 {
		err = fmt.Errorf("%w: time %q out of range", ErrInvalidTriggerSpec, at)
	}
	return
}

// Trigger returns the configured trigger position.
func (t *Timer) Trigger() WeekPosition {
	return t.trigger
}

// NextIn returns the duration until the next firing instant.
func (t *Timer) NextIn() time.Duration {
	d := SecondsUntil(PositionOf(t.now()), t.trigger)
	return time.Duration(d) * time.Second
}

// Run blocks, polling the clock and firing the action exactly once per
// weekly cycle. It returns only when ctx is cancelled. Pass a background
// context for a never-terminating loop.
func (t *Timer) Run(ctx context.Context) {
	for ctx.Err() == nil {
		t.sleep(ctx, t.tick())
	}
}

// tick performs one poll iteration and returns the duration to sleep before
// the next one. Firing happens inside tick so tests can drive the state
// machine without real sleeps.
func (t *Timer) tick() time.Duration {
	d := SecondsUntil(PositionOf(t.now()), t.trigger)
	switch {
	case d > rearmAfter:
		// The trigger instant is far away again: re-arm for the next cycle.
		t.fired = false
		return farSleep
	case d > 60:
		return nearSleep
	default:
		if d == 0 && !t.fired {
			t.fired = true
			t.invoke()
		}
		return fineSleep
	}
}

func (t *Timer) invoke() {
	defer func() {
		if r := recover(); r != nil {
			t.l.Printf("PANIC [trigger]: %v\n%s", r, debug.Stack())
		}
	}()
	if err := t.action(); err != nil {
		t.l.Printf("trigger action failed: %s", err.Error())
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// CronTimer fires a callback on a cron schedule instead of the fixed weekly
// trigger. It sleeps in capped intervals toward the next occurrence computed
// by gronx, so clock steps are picked up within one cap interval.
type CronTimer struct {
	expr   string
	action TriggerFunc
	l      *log.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

// NewCronTimer creates a timer driven by the given cron expression.
func NewCronTimer(expr string, action TriggerFunc, l *log.Logger) (*CronTimer, error) {
	if !gronx.New().IsValid(expr) {
		return nil, fmt.Errorf("%w: invalid cron expression %q", ErrInvalidTriggerSpec, expr)
	}
	if action == nil {
		return nil, fmt.Errorf("%w: no action provided", ErrInvalidTriggerSpec)
	}
	if l == nil {
		l = log.Default()
	}
	return &CronTimer{
		expr:   expr,
		action: action,
		l:      l,
		now:    time.Now,
		sleep:  sleepCtx,
	}, nil
}

// NextIn returns the duration until the next cron occurrence.
func (c *CronTimer) NextIn() time.Duration {
	next, err := gronx.NextTickAfter(c.expr, c.now(), false)
	if err != nil {
		return 0
	}
	return next.Sub(c.now())
}

// Run blocks, firing the action at every cron occurrence until ctx is
// cancelled.
func (c *CronTimer) Run(ctx context.Context) {
	for ctx.Err() == nil {
		next, err := gronx.NextTickAfter(c.expr, c.now(), false)
		if err != nil {
			c.l.Printf("cron schedule error: %s", err.Error())
			return
		}
		for ctx.Err() == nil {
			d := next.Sub(c.now())
			if d <= 0 {
				c.invoke()
				break
			}
			if d > maxCronSleep {
				d = maxCronSleep
			}
			c.sleep(ctx, d)
		}
	}
}

func (c *CronTimer) invoke() {
	defer func() {
		if r := recover(); r != nil {
			c.l.Printf("PANIC [trigger]: %v\n%s", r, debug.Stack())
		}
	}()
	if err := c.action(); err != nil {
		c.l.Printf("trigger action failed: %s", err.Error())
	}
}
