// Package queue is the durable FIFO of pending posts. A queued entry takes
// precedence over the configured message and media pool when the weekly
// trigger fires.
package queue

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

// ErrEmpty is returned by Next when no posts are pending.
var ErrEmpty = errors.New("queue is empty")

const schema = `
CREATE TABLE IF NOT EXISTS pending (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	text     TEXT NOT NULL,
	media    TEXT NOT NULL DEFAULT '[]',
	added_at TEXT NOT NULL
);`

// Entry is one pending post.
type Entry struct {
	Id      int64
	Text    string
	Media   []string
	AddedAt time.Time
}

// Queue is a SQLite-backed FIFO. Safe for concurrent use; the database
// serializes access.
type Queue struct {
	db *sql.DB
}

// Open opens (and if needed creates) the queue database at path.
func Open(path string) (*Queue, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Queue{db: db}, nil
}

// Close releases the database handle.
func (q *Queue) Close() error {
	return q.db.Close()
}

// Push appends a pending post and returns its id.
func (q *Queue) Push(text string, media []string) (int64, error) {
	if media == nil {
		media = []string{}
	}
	mb, err := json.Marshal(media)
	if err != nil {
		return 0, err
	}
	res, err := q.db.Exec(
		`INSERT INTO pending (text, media, added_at) VALUES (?, ?, ?)`,
		text, string(mb), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Next pops the oldest pending post. The read and delete run in one
// transaction so a fired entry is consumed exactly once.
func (q *Queue) Next() (*Entry, error) {
	tx, err := q.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT id, text, media, added_at FROM pending ORDER BY id LIMIT 1`)
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, err
	}
	if _, err = tx.Exec(`DELETE FROM pending WHERE id = ?`, entry.Id); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns all pending posts in FIFO order.
func (q *Queue) List() ([]Entry, error) {
	rows, err := q.db.Query(`SELECT id, text, media, added_at FROM pending ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// Remove deletes a pending post by id, reporting whether it existed.
func (q *Queue) Remove(id int64) (bool, error) {
	res, err := q.db.Exec(`DELETE FROM pending WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Len returns the number of pending posts.
func (q *Queue) Len() (int, error) {
	var n int
	err := q.db.QueryRow(`SELECT COUNT(*) FROM pending`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var e Entry
	var media, addedAt string
	if err := row.Scan(&e.Id, &e.Text, &media, &addedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(media), &e.Media); err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, addedAt); err == nil {
		e.AddedAt = t
	}
	return &e, nil
}
