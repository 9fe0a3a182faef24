// shrikeuci is the UCI front end for the shrike search core. It owns
// everything the core treats as external: reading commands from stdin,
// parsing position and go arguments, printing info and bestmove lines, and
// serializing search commands so the core never sees two at once.
package main

import (
	"bufio"
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	level := flag.String("loglevel", "warn", "diagnostic log level (trace, debug, info, warn, error)")
	flag.Parse()

	// Diagnostics go to stderr through zerolog; stdout carries only
	// protocol lines.
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	uci := newUCI()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := uci.Execute(scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			log.Warn().Err(err).Msg("uci: command failed")
		}
	}
	uci.stop()
	uci.eng.NewGame()
}

func parseIntOption(args []string, name string) (int64, bool) {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == name {
			n, err := strconv.ParseInt(args[i+1], 10, 64)
			if err == nil {
				return n, true
			}
		}
	}
	return 0, false
}
