// Command zivoctl is the CLI for zivo debugging and maintenance.
//
// Usage:
//
//	zivoctl                 Show help
//	zivoctl history         Recent watch history
//	zivoctl stats           Watch totals and reward balance
//	zivoctl events          JSONL event log viewer
package main

import (
	"fmt"
	"os"
)

const usage = `zivoctl — zivo debug & maintenance CLI

Usage:
  zivoctl <command> [flags]

Commands:
  history     Recent watch history for the configured user
  stats       Watch totals and accumulated reward balance
  events      JSONL event log viewer

Environment:
  ZIVO_API_URL   API base URL override
  ZIVO_USER_ID   User id override

Run 'zivoctl <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "history":
		runHistory()
	case "stats":
		runStats()
	case "events":
		runEvents()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "zivoctl: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
