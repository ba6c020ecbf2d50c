package queue

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestQueue(t *testing.T) *Queue {
	t.Helper()
	q, err := Open(filepath.Join(t.TempDir(), "queue.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { q.Close() })
	return q
}

func TestQueueFIFO(t *testing.T) {
	q := openTestQueue(t)

	first, err := q.Push("first", []string{"/a.png"})
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	second, err := q.Push("second", nil)
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	if second <= first {
		t.Errorf("ids not increasing: %d then %d", first, second)
	}

	if n, _ := q.Len(); n != 2 {
		t.Fatalf("Len() = %d, want 2", n)
	}

	entry, err := q.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if entry.Text != "first" {
		t.Errorf("Next popped %q, want \"first\"", entry.Text)
	}
	if len(entry.Media) != 1 || entry.Media[0] != "/a.png" {
		t.Errorf("popped media = %v", entry.Media)
	}
	if entry.AddedAt.IsZero() {
		t.Error("popped entry has zero added_at")
	}

	entry, err = q.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if entry.Text != "second" {
		t.Errorf("Next popped %q, want \"second\"", entry.Text)
	}

	if _, err = q.Next(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Next on empty queue = %v, want ErrEmpty", err)
	}
}

func TestQueueListAndRemove(t *testing.T) {
	q := openTestQueue(t)

	id1, _ := q.Push("one", nil)
	id2, _ := q.Push("two", nil)

	entries, err := q.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 || entries[0].Id != id1 || entries[1].Id != id2 {
		t.Fatalf("List() = %+v", entries)
	}

	removed, err := q.Remove(id1)
	if err != nil || !removed {
		t.Fatalf("Remove(%d) = %t, %v", id1, removed, err)
	}
	removed, err = q.Remove(id1)
	if err != nil {
		t.Fatalf("Remove again: %v", err)
	}
	if removed {
		t.Error("Remove of absent id reported true")
	}

	if n, _ := q.Len(); n != 1 {
		t.Errorf("Len() = %d after removal, want 1", n)
	}
}

func TestQueueSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.db")
	q, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err = q.Push("persisted", []string{"x.gif"}); err != nil {
		t.Fatalf("Push: %v", err)
	}
	q.Close()

	q, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer q.Close()

	entry, err := q.Next()
	if err != nil {
		t.Fatalf("Next after reopen: %v", err)
	}
	if entry.Text != "persisted" {
		t.Errorf("Next after reopen = %q", entry.Text)
	}
}
