package postlib

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"
)

func TestNewTimerValidation(t *testing.T) {
	noop := func() error { return nil }

	tests := []struct {
		name    string
		weekday int
		at      string
		action  TriggerFunc
		wantErr bool
	}{
		{name: "valid full form", weekday: 4, at: "12:20:00", action: noop},
		{name: "valid hour only", weekday: 0, at: "9", action: noop},
		{name: "valid hour minute", weekday: 6, at: "23:59", action: noop},
		{name: "weekday too low", weekday: -1, at: "9:00", action: noop, wantErr: true},
		{name: "weekday too high", weekday: 7, at: "9:00", action: noop, wantErr: true},
		{name: "hour out of range", weekday: 0, at: "24:00", action: noop, wantErr: true},
		{name: "minute out of range", weekday: 0, at: "9:60", action: noop, wantErr: true},
		{name: "second out of range", weekday: 0, at: "9:00:60", action: noop, wantErr: true},
		{name: "too many components", weekday: 0, at: "9:00:00:00", action: noop, wantErr: true},
		{name: "non-numeric component", weekday: 0, at: "nine", action: noop, wantErr: true},
		{name: "negative component", weekday: 0, at: "9:-5", action: noop, wantErr: true},
		{name: "empty time", weekday: 0, at: "", action: noop, wantErr: true},
		{name: "nil action", weekday: 0, at: "9:00", action: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimer(tt.weekday, tt.at, tt.action, nil)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTriggerSpec) {
					t.Errorf("NewTimer(%d, %q) error = %v, want ErrInvalidTriggerSpec", tt.weekday, tt.at, err)
				}
				return
			}
			if err != nil {
				t.Errorf("NewTimer(%d, %q) unexpected error: %v", tt.weekday, tt.at, err)
			}
		})
	}
}

func TestTimerTriggerPosition(t *testing.T) {
	timer, err := NewTimer(4, "12:20:01", func() error { return nil }, nil)
	if err != nil {
		t.Fatalf("NewTimer: %v", err)
	}
	want := WeekPosition{Weekday: 4, Hour: 12, Minute: 20, Second: 1}
	if got := timer.Trigger(); got != want {
		t.Errorf("Trigger() = %+v, want %+v", got, want)
	}
}

func TestTimerTickSleepIntervals(t *testing.T) {
	// Friday 2024-01-05 in a week where trigger is Friday 12:00:00.
	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{
			name: "far from trigger",
			now:  time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC),
			want: farSleep,
		},
		{
			name: "within the final hour",
			now:  time.Date(2024, 1, 5, 11, 30, 0, 0, time.UTC),
			want: nearSleep,
		},
		{
			name: "within the final minute",
			now:  time.Date(2024, 1, 5, 11, 59, 30, 0, time.UTC),
			want: fineSleep,
		},
		{
			name: "just past the trigger",
			now:  time.Date(2024, 1, 5, 12, 0, 1, 0, time.UTC),
			want: farSleep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer, err := NewTimer(4, "12:00:00", func() error { return nil }, nil)
			if err != nil {
				t.Fatalf("NewTimer: %v", err)
			}
			timer.now = func() time.Time { return tt.now }
			if got := timer.tick(); got != tt.want {
				t.Errorf("tick() at %v = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestTimerFiresExactlyOncePerCycle(t *testing.T) {
	var fires int
	timer, err := NewTimer(4, "12:00:00", func() error {
		fires++
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("NewTimer: %v", err)
	}

	trigger := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	now := trigger
	timer.now = func() time.Time { return now }

	// Several polls landing on the trigger instant fire only once.
	for i := 0; i < 5; i++ {
		timer.tick()
	}
	if fires != 1 {
		t.Fatalf("fires = %d after repeated polls at trigger instant, want 1", fires)
	}

	// One second past the trigger the wrap-forward distance is nearly a
	// full cycle, so the flag re-arms without firing again.
	now = trigger.Add(time.Second)
	timer.tick()
	if timer.fired {
		t.Fatal("fired flag not cleared once the trigger instant passed")
	}
	if fires != 1 {
		t.Fatalf("fires = %d after passing the trigger instant, want 1", fires)
	}

	// The next cycle's trigger instant fires again.
	now = trigger.Add(7 * 24 * time.Hour)
	timer.tick()
	if fires != 2 {
		t.Errorf("fires = %d after next cycle's trigger instant, want 2", fires)
	}
}

func TestTimerSwallowsActionErrors(t *testing.T) {
	timer, err := NewTimer(0, "9", func() error {
		return errors.New("remote unavailable")
	}, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("NewTimer: %v", err)
	}
	timer.now = func() time.Time {
		return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) // Monday 09:00
	}
	timer.tick()
	if !timer.fired {
		t.Error("timer did not fire despite reaching trigger instant")
	}
}

func TestTimerRecoversFromActionPanic(t *testing.T) {
	timer, err := NewTimer(0, "9", func() error {
		panic("boom")
	}, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("NewTimer: %v", err)
	}
	timer.now = func() time.Time {
		return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	}
	timer.tick() // must not propagate the panic
	if !timer.fired {
		t.Error("timer did not mark itself fired after panicking action")
	}
}

func TestTimerRunStopsOnContextCancel(t *testing.T) {
	timer, err := NewTimer(0, "9", func() error { return nil }, nil)
	if err != nil {
		t.Fatalf("NewTimer: %v", err)
	}
	timer.sleep = func(ctx context.Context, d time.Duration) {}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		timer.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestNewCronTimerValidation(t *testing.T) {
	noop := func() error { return nil }
	if _, err := NewCronTimer("0 12 * * 5", noop, nil); err != nil {
		t.Errorf("valid expression rejected: %v", err)
	}
	if _, err := NewCronTimer("not a cron", noop, nil); !errors.Is(err, ErrInvalidTriggerSpec) {
		t.Errorf("invalid expression error = %v, want ErrInvalidTriggerSpec", err)
	}
	if _, err := NewCronTimer("0 12 * * 5", nil, nil); !errors.Is(err, ErrInvalidTriggerSpec) {
		t.Errorf("nil action error = %v, want ErrInvalidTriggerSpec", err)
	}
}
