// Package pool manages the set of media references a scheduled post can
// attach. Entries come from the config: files, directories or remote URLs.
package pool

import (
	"math/rand"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// Pool indexes media references. Directory entries are expanded
// non-recursively at index time; URL entries pass through untouched and are
// resolved at upload time.
type Pool struct {
	fs      afero.Fs
	entries []string

	mu      sync.RWMutex
	indexed []string
}

// New creates a pool over the OS filesystem.
func New(entries []string) *Pool {
	return NewWithFs(afero.NewOsFs(), entries)
}

// NewWithFs creates a pool over the given filesystem; tests use a memfs.
func NewWithFs(fs afero.Fs, entries []string) *Pool {
	return &Pool{fs: fs, entries: entries}
}

// Index rebuilds the media index from the configured entries. Missing files
// and unreadable directories are skipped rather than failing the index; the
// pool reflects whatever is present at index time.
func (p *Pool) Index() error {
	var indexed []string
	for _, entry := range p.entries {
		if isURL(entry) {
			indexed = append(indexed, entry)
			continue
		}
		info, err := p.fs.Stat(entry)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			indexed = append(indexed, entry)
			continue
		}
		files, err := afero.ReadDir(p.fs, entry)
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			indexed = append(indexed, filepath.Join(entry, f.Name()))
		}
	}
	sort.Strings(indexed)

	p.mu.Lock()
	p.indexed = indexed
	p.mu.Unlock()
	return nil
}

// Len returns the number of indexed media references.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.indexed)
}

// Random returns a uniformly picked media reference, or "" when the pool is
// empty.
func (p *Pool) Random() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.indexed) == 0 {
		return ""
	}
	return p.indexed[rand.Intn(len(p.indexed))]
}

// List returns a copy of the indexed references.
func (p *Pool) List() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, len(p.indexed))
	copy(out, p.indexed)
	return out
}

func isURL(ref string) bool {
	i := strings.Index(ref, "://")
	if i <= 0 {
		return false
	}
	switch strings.ToLower(ref[:i]) {
	case "http", "https", "ftp", "ftps", "sftp":
		return true
	}
	return false
}
