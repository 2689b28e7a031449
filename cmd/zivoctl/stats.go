package main

import (
	"flag"
	"fmt"
	"os"
)

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Parse(os.Args[1:])

	cfg := loadConfig()
	userID := requireUserID(cfg)
	st := openHistory(cfg)
	defer st.Close()

	stats, err := st.UserStats(userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User:            %s\n", userID)
	fmt.Printf("Watched:         %d\n", stats.Watched)
	fmt.Printf("Total reward:    %d zivos\n", stats.Reward)

	recent, err := st.Recent(userID, 1)
	if err == nil && len(recent) > 0 {
		fmt.Printf("Last watch:      %s (%s)\n",
			truncate(recent[0].MediaName, 40),
			recent[0].WatchedAt.Format("2006-01-02 15:04"))
	}
}
