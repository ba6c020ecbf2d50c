package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestStandardLoggerPrefixes(t *testing.T) {
	var buf bytes.Buffer
	l := NewStandardLogger(log.New(&buf, "", 0))

	l.Info("started on %s", "friday")
	l.Warning("retry %d", 2)
	l.Error("failed: %s", "boom")

	out := buf.String()
	for _, want := range []string{
		"[INFO] started on friday",
		"[WARNING] retry 2",
		"[ERROR] failed: boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestMultiLoggerBroadcasts(t *testing.T) {
	a := NewMockLogger()
	b := NewMockLogger()
	m := NewMultiLogger(a, b)

	m.Info("hello %s", "world")
	m.Warning("careful")
	m.Error("oops")

	for i, mock := range []*MockLogger{a, b} {
		if len(mock.InfoCalls) != 1 || mock.InfoCalls[0] != "hello world" {
			t.Errorf("backend %d info calls = %v", i, mock.InfoCalls)
		}
		if len(mock.WarningCalls) != 1 || len(mock.ErrorCalls) != 1 {
			t.Errorf("backend %d missed calls: %+v", i, mock)
		}
	}

	if err := m.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if !a.CloseCalled || !b.CloseCalled {
		t.Error("Close not propagated to all backends")
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Info("ignored")
	l.Warning("ignored")
	l.Error("ignored")
	if err := l.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
