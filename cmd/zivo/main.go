package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zivolabs/zivo/internal/api"
	"github.com/zivolabs/zivo/internal/config"
	"github.com/zivolabs/zivo/internal/feed"
	"github.com/zivolabs/zivo/internal/history"
	"github.com/zivolabs/zivo/internal/otel"
	"github.com/zivolabs/zivo/internal/playback"
	"github.com/zivolabs/zivo/internal/prefetch"
	"github.com/zivolabs/zivo/internal/ui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.API.UserID == "" {
		log.Fatal("No user id configured. Set ZIVO_USER_ID or edit ~/.zivo/config.json")
	}

	// Event log: structured JSONL, one file per install.
	logPath := cfg.EventLogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("Failed to open event log: %v", err)
	}
	defer logFile.Close()
	logger := otel.NewLogger(logFile)
	defer logger.Close()
	logger.Info(otel.KindStartup, "main", "zivo starting")

	hist, err := history.Open(cfg.HistoryDBPath())
	if err != nil {
		log.Fatalf("Failed to open history database: %v", err)
	}
	defer hist.Close()

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Token, cfg.API.UserID)
	warmer := prefetch.NewWarmer(cfg.Feed.PrefetchWorkers)
	player := playback.NewManager(playback.NewClip)

	tuning := ui.Tuning{
		VisibleRatio:   cfg.Feed.VisibleRatio,
		Dwell:          time.Duration(cfg.Feed.DwellMs) * time.Millisecond,
		WatchTimer:     time.Duration(cfg.Feed.WatchTimerS) * time.Second,
		SearchDebounce: time.Duration(cfg.Feed.SearchDebounceMs) * time.Millisecond,
	}

	// Command factories: the screen asks for side effects, these run them.
	cmds := ui.Cmds{
		FetchPage: func(intent feed.FetchIntent) tea.Cmd {
			return func() tea.Msg {
				start := time.Now()
				page, err := client.ListMedia(ctx, intent.Page, string(intent.Key))
				logger.Emit(otel.Event{
					Kind: otel.KindPageFetchApplied, Comp: "api",
					Page: intent.Page, Dur: time.Since(start),
				})
				return ui.PageFetched{Intent: intent, Page: page, Err: err}
			}
		},
		RecordWatch: func(item feed.Item, m *feed.WatchMutation) tea.Cmd {
			return func() tea.Msg {
				result, err := client.RecordWatch(ctx, item.ID, m.IdempotencyKey)
				return ui.WatchRecorded{ItemID: item.ID, Mutation: m, Result: result, Err: err}
			}
		},
		SubmitQuiz: func(quizID, answer string) tea.Cmd {
			return func() tea.Msg {
				outcome, err := client.SubmitQuizAnswer(ctx, quizID, answer)
				return ui.QuizAnswered{Outcome: outcome, Err: err}
			}
		},
		LoadHistory: func() tea.Cmd {
			return func() tea.Msg {
				watched, err := hist.WatchedSet(cfg.API.UserID)
				return ui.HistoryLoaded{Watched: watched, Err: err}
			}
		},
		SaveWatch: func(item feed.Item, reward int) tea.Cmd {
			return func() tea.Msg {
				_, err := hist.Record(history.Watch{
					MediaID:   item.ID,
					UserID:    cfg.API.UserID,
					MediaName: item.Name,
					Reward:    reward,
					WatchedAt: time.Now(),
				})
				if err != nil {
					logger.Error(otel.KindHistoryError, "history", err)
				}
				return nil
			}
		},
		WarmThumbnails: func(items []feed.Item) tea.Cmd {
			return func() tea.Msg {
				n := warmer.Warm(ctx, items)
				return ui.ThumbnailsWarmed{Count: n}
			}
		},
	}

	screen := ui.NewFeedScreen(cmds, tuning, player, logger)
	p := tea.NewProgram(screen, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error(otel.KindError, "main", err)
		log.Fatalf("Error running program: %v", err)
	}
}
