// Package ttable implements the shared transposition cache: a sharded
// concurrent map from Zobrist key to a searched-subtree result. Entries
// are tagged Exact/Lower/Upper; a score produced by a cutoff is only a
// bound, and reusing it at a different window without the tag would cut
// incorrectly.
package ttable

import (
	"sync"
	"sync/atomic"

	"github.com/shrikechess/shrike/board"
	"github.com/shrikechess/shrike/score"
)

// Bound tags which side of the search window an Entry's Score is reliable
// on.
type Bound uint8

const (
	// Exact means the stored Score is the position's true minimax value.
	Exact Bound = iota
	// Lower means the true value is at least Score (a beta cutoff occurred;
	// the search never proved an upper bound).
	Lower
	// Upper means the true value is at most Score (every move failed low;
	// the search never proved a lower bound).
	Upper
)

// Entry is one transposition table slot: the score, the depth it was
// produced at, the principal variation from this node toward the leaf
// (stored leaf-first), and the bound it is tagged with. Entries are
// immutable once inserted: Insert replaces the whole entry rather than
// mutating fields, so readers never observe a torn mix of an old PV with
// a new score.
type Entry struct {
	Key   uint64
	Score score.Score
	Depth int
	PV    []board.Move
	Bound Bound
}

// Usable reports whether e's stored Score can be used directly to resolve
// a node being searched with window (alpha, beta) at a depth no greater
// than e.Depth (it is false otherwise): Exact entries always resolve
// the node; Lower entries resolve it only if Score already reaches beta;
// Upper entries resolve it only if Score already falls to alpha or below.
func (e Entry) Usable(depth int, alpha, beta score.Score) bool {
	if e.Depth < depth {
		return false
	}
	switch e.Bound {
	case Exact:
		return true
	case Lower:
		return !score.Less(e.Score, beta)
	default: // Upper
		return !score.Less(alpha, e.Score)
	}
}

const shardCount = 64

type shard struct {
	mu sync.RWMutex
	m  map[uint64]Entry
}

// Table is a concurrent transposition cache, safe for simultaneous probes
// and inserts from multiple search workers. It is sharded by hash key so
// that workers touching different positions rarely contend on the same
// lock.
type Table struct {
	shards   [shardCount]*shard
	capacity int64
	hits     atomic.Int64
	misses   atomic.Int64
	entries  atomic.Int64
}

// New returns an empty Table. capacity is the nominal entry count the
// fullness metric is reported against; the map itself grows past it
// freely.
func New(capacity int) *Table {
	t := &Table{capacity: int64(capacity)}
	for i := range t.shards {
		t.shards[i] = &shard{m: make(map[uint64]Entry)}
	}
	return t
}

func (t *Table) shardFor(key uint64) *shard {
	return t.shards[key%shardCount]
}

// Get looks up key, reporting (entry, true) on a hit.
func (t *Table) Get(key uint64) (Entry, bool) {
	sh := t.shardFor(key)
	sh.mu.RLock()
	e, ok := sh.m[key]
	sh.mu.RUnlock()
	if ok {
		t.hits.Add(1)
	} else {
		t.misses.Add(1)
	}
	return e, ok
}

// Insert stores e, replacing any existing entry for e.Key unconditionally.
func (t *Table) Insert(e Entry) {
	sh := t.shardFor(e.Key)
	sh.mu.Lock()
	_, existed := sh.m[e.Key]
	sh.m[e.Key] = e
	sh.mu.Unlock()
	if !existed {
		t.entries.Add(1)
	}
}

// Clear empties the table, used on ucinewgame.
func (t *Table) Clear() {
	for _, sh := range t.shards {
		sh.mu.Lock()
		sh.m = make(map[uint64]Entry)
		sh.mu.Unlock()
	}
	t.entries.Store(0)
	t.hits.Store(0)
	t.misses.Store(0)
}

// Len returns the number of entries currently stored.
func (t *Table) Len() int64 { return t.entries.Load() }

// Capacity returns the nominal entry count fullness is measured against.
func (t *Table) Capacity() int64 { return t.capacity }

// Permille returns table fullness in thousandths of capacity, the unit
// the UCI `info hashfull` field wants.
func (t *Table) Permille() int {
	if t.capacity <= 0 {
		return 0
	}
	p := t.Len() * 1000 / t.capacity
	if p > 1000 {
		p = 1000
	}
	return int(p)
}

// Hits and Misses report cumulative probe counts since the last Clear.
func (t *Table) Hits() int64   { return t.hits.Load() }
func (t *Table) Misses() int64 { return t.misses.Load() }
