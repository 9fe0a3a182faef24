package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/shrikechess/shrike/board"
	"github.com/shrikechess/shrike/engine"
	"github.com/shrikechess/shrike/search"
)

var errQuit = errors.New("quit")

// UCI dispatches protocol commands onto the engine. Search commands are
// serialized: go (like every other stateful command), stop and quit
// cancel the running search and wait for its bestmove before going on,
// so the core's assumption of one search at a time always holds.
type UCI struct {
	eng       *engine.Engine
	positions []board.Position

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func newUCI() *UCI {
	return &UCI{
		eng:       engine.NewEngine(),
		positions: []board.Position{board.InitialPosition()},
	}
}

func (u *UCI) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "uci":
		return u.uci()
	case "isready":
		fmt.Println("readyok")
		return nil
	case "stop":
		u.stop()
		return nil
	case "quit":
		u.stop()
		return errQuit
	}

	// The remaining commands expect an idle engine.
	u.stop()
	switch cmd {
	case "ucinewgame":
		u.eng.NewGame()
		return nil
	case "setoption":
		return u.setoption(args)
	case "position":
		return u.position(args)
	case "go":
		return u.go_(args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (u *UCI) uci() error {
	name, version, author := u.eng.GetInfo()
	fmt.Printf("id name %s %s\n", name, version)
	fmt.Printf("id author %s\n", author)
	for _, opt := range u.eng.GetOptions() {
		fmt.Printf("option name %s type spin default %d min %d max %d\n", opt.Name, opt.Val, opt.Min, opt.Max)
	}
	fmt.Println("uciok")
	return nil
}

func (u *UCI) setoption(args []string) error {
	// setoption name <id> value <x>
	var name, value string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "name":
			j := i + 1
			for j < len(args) && args[j] != "value" {
				j++
			}
			name = strings.Join(args[i+1:j], " ")
			i = j - 1
		case "value":
			if i+1 < len(args) {
				value = args[i+1]
			}
		}
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("setoption %q: bad value %q", name, value)
	}
	for _, opt := range u.eng.GetOptions() {
		if !strings.EqualFold(opt.Name, name) {
			continue
		}
		if n < opt.Min || n > opt.Max {
			return fmt.Errorf("setoption %q: value %d out of [%d, %d]", name, n, opt.Min, opt.Max)
		}
		if strings.EqualFold(opt.Name, "Hash") {
			u.eng.SetHash(n)
		} else {
			opt.Val = n
		}
		return nil
	}
	return fmt.Errorf("setoption: unknown option %q", name)
}

func (u *UCI) position(args []string) error {
	if len(args) == 0 {
		return errors.New("position: expected startpos or fen")
	}

	var pos board.Position
	i := 0
	switch args[i] {
	case "startpos":
		pos = board.InitialPosition()
		i++
	case "fen":
		j := i + 1
		for j < len(args) && args[j] != "moves" {
			j++
		}
		p, err := board.FromFEN(strings.Join(args[i+1:j], " "))
		if err != nil {
			return err
		}
		pos = p
		i = j
	default:
		return fmt.Errorf("position: unknown argument %q", args[i])
	}

	history := []board.Position{pos}
	if i < len(args) {
		if args[i] != "moves" {
			return fmt.Errorf("position: expected moves, got %q", args[i])
		}
		for _, name := range args[i+1:] {
			m, ok := findMove(&pos, name)
			if !ok {
				return fmt.Errorf("position: illegal move %q", name)
			}
			pos = pos.Apply(m)
			history = append(history, pos)
		}
	}
	u.positions = history
	return nil
}

// findMove resolves a long-algebraic move name against the legal moves of
// p; replaying through the rules library rather than decoding the string
// blindly, so a bad move from the GUI is caught here instead of corrupting
// the board.
func findMove(p *board.Position, name string) (board.Move, bool) {
	for _, m := range p.LegalMoves() {
		if m.String() == name {
			return m, true
		}
	}
	return board.Move{}, false
}

func (u *UCI) go_(args []string) error {
	var limits engine.Limits
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "infinite":
			limits.Infinite = true
		case "movetime":
			if n, ok := parseIntOption(args[i:], "movetime"); ok {
				limits.MoveTimeMs = n
			}
		case "depth":
			if n, ok := parseIntOption(args[i:], "depth"); ok {
				limits.Depth = int(n)
			}
		case "wtime", "btime", "winc", "binc":
			if limits.Clock == nil {
				limits.Clock = &search.GameClock{}
			}
		}
	}
	if limits.Clock != nil {
		if n, ok := parseIntOption(args, "wtime"); ok {
			limits.Clock.WTimeMs = n
		}
		if n, ok := parseIntOption(args, "btime"); ok {
			limits.Clock.BTimeMs = n
		}
		if n, ok := parseIntOption(args, "winc"); ok {
			limits.Clock.WIncMs = n
		}
		if n, ok := parseIntOption(args, "binc"); ok {
			limits.Clock.BIncMs = n
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	u.mu.Lock()
	u.cancel = cancel
	u.done = done
	u.mu.Unlock()

	positions := append([]board.Position(nil), u.positions...)
	go func() {
		defer close(done)
		best := u.eng.Search(ctx, positions, limits, printInfo)
		fmt.Printf("bestmove %s\n", best)
	}()
	return nil
}

// stop cancels any running search and waits for its bestmove line.
func (u *UCI) stop() {
	u.mu.Lock()
	cancel, done := u.cancel, u.done
	u.cancel, u.done = nil, nil
	u.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
}

// printInfo renders one per-depth progress snapshot as a UCI info line,
// with the PV in root-to-leaf order.
func printInfo(p search.Progress) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "info score %s depth %d nodes %d time %d nps %d hashfull %d",
		p.Score.UCI(), p.Depth, p.Nodes, p.Elapsed.Milliseconds(), p.NPS, p.HashPermille)
	if len(p.PV) > 0 {
		sb.WriteString(" pv")
		for _, m := range p.PV {
			sb.WriteByte(' ')
			sb.WriteString(m.String())
		}
	}
	fmt.Println(sb.String())
}
