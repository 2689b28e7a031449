package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/zivolabs/zivo/internal/feed"
)

// rowHeight is the rendered height of a collapsed feed row. The active row
// expands but visibility math works in collapsed units.
const rowHeight = 1

// activeRowHeight is the rendered height of the expanded active row.
const activeRowHeight = 4

// RenderRow renders one feed row. The active row expands to show the
// description, tags, uploader, and (for video) the playback position.
func RenderRow(item feed.Item, active bool, width int, playhead, duration time.Duration) string {
	badge := kindBadge(item.Kind)
	check := ""
	if item.HasWatched {
		check = WatchedCheck.Render(" ✓")
	}

	views := MetaText.Render(formatViews(item.ViewCount))
	reward := ""
	if item.Reward > 0 && !item.HasWatched {
		reward = RewardBadge.Render(fmt.Sprintf(" +%d", item.Reward))
	}

	nameWidth := width - lipgloss.Width(badge) - lipgloss.Width(views) - lipgloss.Width(check) - lipgloss.Width(reward) - 6
	if nameWidth < 16 {
		nameWidth = 16
	}
	name := runewidth.Truncate(item.Name, nameWidth, "…")

	var nameStyle lipgloss.Style
	switch {
	case active:
		nameStyle = ActiveRow
	case item.HasWatched:
		nameStyle = WatchedRow
	default:
		nameStyle = NormalRow
	}

	head := fmt.Sprintf("%s%s%s%s", badge, nameStyle.Render(name), check, reward)
	pad := width - lipgloss.Width(head) - lipgloss.Width(views) - 1
	if pad < 1 {
		pad = 1
	}
	line := head + strings.Repeat(" ", pad) + views

	if !active {
		return line
	}

	lines := []string{line}

	desc := strings.TrimSpace(item.Description)
	if desc != "" {
		lines = append(lines, "  "+MetaText.Render(runewidth.Truncate(desc, width-4, "…")))
	}

	meta := MetaText.Render("@" + item.UploaderUsername)
	if pills := renderTagPills(item.Tags, width-lipgloss.Width(meta)-6); pills != "" {
		meta = pills + " " + meta
	}
	lines = append(lines, "  "+meta)

	if item.Kind.TimeBased() {
		lines = append(lines, "  "+renderProgressBar(playhead, duration, width-4))
	} else {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func kindBadge(k feed.MediaKind) string {
	label := "IMG"
	if k.TimeBased() {
		label = "VID"
	}
	return KindBadge.Render(label)
}

// renderTagPills renders as many tag pills as fit in maxWidth.
func renderTagPills(tags []feed.Tag, maxWidth int) string {
	var pills []string
	used := 0
	for _, t := range tags {
		pill := TagPill.Render("#" + t.Slug)
		w := lipgloss.Width(pill) + 1
		if used+w > maxWidth {
			break
		}
		pills = append(pills, pill)
		used += w
	}
	return strings.Join(pills, " ")
}

// renderProgressBar draws the video playhead as a bar with times.
func renderProgressBar(pos, dur time.Duration, width int) string {
	times := fmt.Sprintf(" %s/%s", formatClock(pos), formatClock(dur))
	barWidth := width - runewidth.StringWidth(times)
	if barWidth < 10 {
		barWidth = 10
	}

	frac := 0.0
	if dur > 0 {
		frac = float64(pos) / float64(dur)
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(float64(barWidth) * frac)

	bar := ProgressFilled.Render(strings.Repeat("━", filled)) +
		ProgressEmpty.Render(strings.Repeat("╌", barWidth-filled))
	return bar + MetaText.Render(times)
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func formatViews(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM views", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk views", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d views", n)
	}
}

// RenderStatusBar renders the bottom status bar with key hints and position.
func RenderStatusBar(cursor, total int, width int, loading bool, balance int) string {
	var position string
	if loading {
		position = " Loading... "
	} else if total == 0 {
		position = " 0/0 "
	} else {
		position = fmt.Sprintf(" %d/%d ", cursor+1, total)
	}
	if balance > 0 {
		position += RewardBadge.Render(fmt.Sprintf("%d zivos ", balance))
	}

	keys := []string{
		StatusBarKey.Render("j/k") + StatusBarText.Render(":scroll"),
		StatusBarKey.Render("Enter") + StatusBarText.Render(":expand"),
		StatusBarKey.Render("/") + StatusBarText.Render(":search"),
		StatusBarKey.Render("r") + StatusBarText.Render(":refresh"),
		StatusBarKey.Render("q") + StatusBarText.Render(":quit"),
	}
	keyHints := strings.Join(keys, " ")

	leftWidth := lipgloss.Width(position)
	rightWidth := lipgloss.Width(keyHints)
	padding := width - leftWidth - rightWidth
	if padding < 0 {
		padding = 0
	}

	bar := position + strings.Repeat(" ", padding) + keyHints
	return StatusBar.Width(width).Render(bar)
}

// RenderSearchBar renders the live search input row.
func RenderSearchBar(input string, committed bool, matches int, width int) string {
	prompt := StatusBarKey.Render("/")
	text := input
	var status string
	if !committed {
		status = StatusBarText.Render(" ...")
	} else {
		status = StatusBarText.Render(fmt.Sprintf(" %d results", matches))
	}

	content := prompt + text + status
	padding := width - lipgloss.Width(content) - 2
	if padding < 0 {
		padding = 0
	}
	return SearchBar.Width(width).Render(content + strings.Repeat(" ", padding))
}
