// Package engine wires board/score/eval/order/ttable/search into the
// single collaborator a UCI dispatcher drives: construct an Engine, feed
// it positions and search limits, get a move and a stream of progress
// snapshots back.
package engine

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/cpu"

	"github.com/shrikechess/shrike/board"
	"github.com/shrikechess/shrike/search"
	"github.com/shrikechess/shrike/ttable"
)

// entriesPerHashMB calibrates Hash (megabytes) to a cache entry count;
// the default Hash=64 lands at 1Mi entries.
const entriesPerHashMB = 1 << 20 / 64

// IntUciOption is a UCI `setoption` integer knob.
type IntUciOption struct {
	Name     string
	Min, Max int
	Val      int
}

// Limits describes one search command: infinite, movetime, a game clock,
// or a fixed depth ceiling. Zero values mean "no limit of that kind".
type Limits struct {
	Infinite    bool
	Depth       int
	MoveTimeMs  int64
	Clock       *search.GameClock
	WorkerCount int // 0 selects the Threads option, and if that is 0 too the default (4, or 2 under a game clock)
}

// Engine is the core's single external-facing type.
type Engine struct {
	Hash         IntUciOption
	Threads      IntUciOption
	MoveOverhead IntUciOption

	tt    *ttable.Table
	state search.State
}

// NewEngine returns an Engine with default option values, logs detected
// CPU features once, and allocates an empty transposition table sized
// from Hash.
func NewEngine() *Engine {
	logCPUFeatures()
	e := &Engine{
		Hash:         IntUciOption{Name: "Hash", Min: 1, Max: 4096, Val: 64},
		Threads:      IntUciOption{Name: "Threads", Min: 0, Max: runtime.NumCPU(), Val: 0},
		MoveOverhead: IntUciOption{Name: "Move Overhead", Min: 0, Max: 10000, Val: 50},
		state:        search.Idle,
	}
	e.resize()
	return e
}

func (e *Engine) resize() {
	e.tt = ttable.New(e.Hash.Val * entriesPerHashMB)
}

// SetHash applies a new Hash option value and reallocates the table.
func (e *Engine) SetHash(mb int) {
	e.Hash.Val = mb
	e.resize()
}

func (e *Engine) GetInfo() (name, version, author string) {
	return "Shrike", "0.1.0", "the shrikechess project"
}

func (e *Engine) GetOptions() []*IntUciOption {
	return []*IntUciOption{&e.Hash, &e.Threads, &e.MoveOverhead}
}

// NewGame clears the transposition table. Apart from this, the cache is
// dropped only when SetHash reallocates it and at process exit.
func (e *Engine) NewGame() {
	e.tt.Clear()
}

// State reports the engine's current place in the per-search state
// machine.
func (e *Engine) State() search.State { return e.state }

// Search runs the iterative deepening driver to completion or
// cancellation and returns the best move found (the null move if no depth
// ever completed). positions is the full game history ending at the
// position to search; only the last position is searched from. update,
// if non-nil, is called with each depth's progress snapshot; the caller
// turns that into a UCI `info` line.
func (e *Engine) Search(ctx context.Context, positions []board.Position, limits Limits, update func(search.Progress)) board.Move {
	root := &positions[len(positions)-1]

	searchCtx := ctx
	var cancel context.CancelFunc
	switch {
	case limits.Clock != nil:
		if budget := limits.Clock.Budget(root.ToMove); budget > 0 {
			searchCtx, cancel = context.WithTimeout(ctx, e.applyOverhead(budget))
		}
	case limits.MoveTimeMs > 0:
		budget := time.Duration(limits.MoveTimeMs) * time.Millisecond
		searchCtx, cancel = context.WithTimeout(ctx, e.applyOverhead(budget))
	}
	if cancel != nil {
		defer cancel()
	}

	workerCount := limits.WorkerCount
	if workerCount <= 0 {
		workerCount = e.Threads.Val
	}
	if workerCount <= 0 {
		workerCount = search.DefaultWorkerCount(limits.Clock != nil)
	}

	depthMax := limits.Depth
	if depthMax <= 0 {
		depthMax = 255
	}

	e.state = search.Searching
	outcome := search.Run(searchCtx, root, depthMax, workerCount, e.tt, func(p search.Progress) {
		log.Debug().Int("depth", p.Depth).Int64("nodes", p.Nodes).Str("score", p.Score.UCI()).Msg("engine: depth complete")
		if update != nil {
			update(p)
		}
	})
	e.state = search.Reporting
	e.state = search.Idle
	return outcome.BestMove
}

// applyOverhead shaves Move Overhead off a time budget, with a 1ms floor.
func (e *Engine) applyOverhead(budget time.Duration) time.Duration {
	budget -= time.Duration(e.MoveOverhead.Val) * time.Millisecond
	if budget < time.Millisecond {
		budget = time.Millisecond
	}
	return budget
}

func logCPUFeatures() {
	log.Debug().
		Bool("avx2", cpu.X86.HasAVX2).
		Bool("sse42", cpu.X86.HasSSE42).
		Bool("popcnt", cpu.X86.HasPOPCNT).
		Msg("engine: detected CPU features")
}
