package main

import (
	"flag"
	"fmt"
	"os"
)

func runHistory() {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("n", 25, "Number of watches to show")
	fs.Parse(os.Args[1:])

	cfg := loadConfig()
	userID := requireUserID(cfg)
	st := openHistory(cfg)
	defer st.Close()

	watches, err := st.Recent(userID, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if len(watches) == 0 {
		fmt.Println("No watches recorded yet. Run the zivo TUI first.")
		return
	}

	for _, w := range watches {
		ts := w.WatchedAt.Format("2006-01-02 15:04")
		fmt.Printf("%s  %-40s +%d\n", ts, truncate(w.MediaName, 40), w.Reward)
	}
}
