package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorReward    = lipgloss.Color("220") // Gold
)

// ActiveRow style for the row that owns playback.
var ActiveRow = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("#1f3a5f")).
	Padding(0, 1)

// NormalRow style for unwatched rows.
var NormalRow = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// WatchedRow style for rows whose watch is already recorded.
var WatchedRow = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// KindBadge style for the media type badge.
var KindBadge = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// TagPill style for catalog tags on the active row.
var TagPill = lipgloss.NewStyle().
	Foreground(lipgloss.Color("117")).
	Background(lipgloss.Color("237")).
	Padding(0, 1)

// RewardBadge style for the zivos reward amount.
var RewardBadge = lipgloss.NewStyle().
	Foreground(colorReward).
	Bold(true)

// WatchedCheck style for the recorded-watch marker.
var WatchedCheck = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Bold(true)

// MetaText style for view counts, uploader names, and playhead times.
var MetaText = lipgloss.NewStyle().
	Foreground(colorMuted)

// ProgressFilled and ProgressEmpty draw the playback position bar.
var (
	ProgressFilled = lipgloss.NewStyle().Foreground(colorHighlight)
	ProgressEmpty  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// SearchBar style for the search input row.
var SearchBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("240")).
	Padding(0, 1)

// QuizBanner style for the quiz invitation banner.
var QuizBanner = lipgloss.NewStyle().
	Foreground(lipgloss.Color("0")).
	Background(colorReward).
	Bold(true).
	Padding(0, 1)

// ErrorStyle for the non-fatal error notice.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// HelpStyle for empty states and hints.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// OverlayBox style for the expanded-item overlay.
var OverlayBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)
