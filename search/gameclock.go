package search

import (
	"time"

	"github.com/shrikechess/shrike/board"
)

// GameClock holds the four non-negative millisecond fields UCI's `go
// wtime ... btime ... winc ... binc ...` supplies.
type GameClock struct {
	WTimeMs, BTimeMs int64
	WIncMs, BIncMs   int64
}

// Budget computes the move-time budget for the side to move:
// own_time/20 + own_increment*3/4 milliseconds. Fixed-fraction, no
// move-count scaling or score-drop backoff.
func (c GameClock) Budget(toMove board.Color) time.Duration {
	t, inc := c.WTimeMs, c.WIncMs
	if toMove == board.Black {
		t, inc = c.BTimeMs, c.BIncMs
	}
	ms := t/20 + inc*3/4
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}

// DefaultWorkerCount returns the default worker counts: 4 for
// movetime/infinite searches, 2 for game-clock searches (where the
// per-move budget is tight and join latency matters more).
func DefaultWorkerCount(isGameClock bool) int {
	if isGameClock {
		return 2
	}
	return 4
}
