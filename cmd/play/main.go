package main

import (
	"flag"
	"fmt"
	"os"

	"tictactoe-replay/internal/session"
	"tictactoe-replay/internal/tui"
)

func main() {
	mode := flag.String("mode", session.ModeHotseat, "game mode: hotseat or bot")
	difficulty := flag.String("difficulty", "easy", "bot difficulty: easy, medium or hard")
	flag.Parse()

	if err := tui.Run(tui.Options{Mode: *mode, Difficulty: *difficulty}); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
