package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/zivolabs/zivo/internal/feed"
	"github.com/zivolabs/zivo/internal/otel"
	"github.com/zivolabs/zivo/internal/playback"
)

// frameInterval drives the playback clock and the scroll animation.
const frameInterval = time.Second / 30

// loadMoreMargin is how close to the end of the list the cursor may get
// before the next page is requested.
const loadMoreMargin = 5

// Tuning carries the engine thresholds from config.
type Tuning struct {
	VisibleRatio   float64
	Dwell          time.Duration
	WatchTimer     time.Duration
	SearchDebounce time.Duration
}

// Cmds are the side-effecting command factories injected by the
// composition root. FeedScreen does NOT hold the HTTP client or the
// history store; it receives their results via messages.
type Cmds struct {
	FetchPage      func(intent feed.FetchIntent) tea.Cmd
	RecordWatch    func(item feed.Item, m *feed.WatchMutation) tea.Cmd
	SubmitQuiz     func(quizID, answer string) tea.Cmd
	LoadHistory    func() tea.Cmd
	SaveWatch      func(item feed.Item, reward int) tea.Cmd
	WarmThumbnails func(items []feed.Item) tea.Cmd
}

// FeedScreen is the root Bubble Tea model: the vertically scrolling media
// feed with single-active-item playback and watch completion.
type FeedScreen struct {
	cmds   Cmds
	tuning Tuning

	store     *feed.PageStore
	pager     *feed.Paginator
	vis       *feed.VisibilityTracker
	watch     *feed.WatchTracker
	mutations *feed.MutationCoordinator
	player    *playback.Manager
	logger    *otel.Logger

	items  []feed.Item
	cursor int

	// Ids the local history cache knows are watched; applied to every
	// page as it arrives so offline state survives restarts.
	localWatched map[string]bool

	searching bool
	search    textinput.Model
	searchGen int

	overlayOpen     bool
	overlayItem     feed.Item
	overlayOpenedAt time.Time

	quiz    *feed.QuizInvitation
	balance int
	notice  string

	spring       harmonica.Spring
	scrollPos    float64
	scrollVel    float64
	scrollTarget float64
	spinner      spinner.Model

	width  int
	height int
	ready  bool
}

// NewFeedScreen wires the engine state machines to the injected commands.
func NewFeedScreen(cmds Cmds, tuning Tuning, player *playback.Manager, logger *otel.Logger) FeedScreen {
	store := feed.NewPageStore()

	search := textinput.New()
	search.Placeholder = "search the catalog"
	search.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorHighlight)

	return FeedScreen{
		cmds:         cmds,
		tuning:       tuning,
		store:        store,
		pager:        feed.NewPaginator(store),
		vis:          feed.NewVisibilityTracker(tuning.VisibleRatio, tuning.Dwell),
		watch:        feed.NewWatchTracker(tuning.WatchTimer),
		mutations:    feed.NewMutationCoordinator(store),
		player:       player,
		logger:       logger,
		localWatched: make(map[string]bool),
		search:       search,
		spring:       harmonica.NewSpring(harmonica.FPS(30), 6.0, 0.8),
		spinner:      sp,
	}
}

// Init fetches the first page, loads the local watch history, and starts
// the frame clock.
func (s FeedScreen) Init() tea.Cmd {
	intent := s.pager.BeginRefresh()
	cmds := []tea.Cmd{
		s.cmds.FetchPage(intent),
		s.spinner.Tick,
		frameCmd(),
	}
	if s.cmds.LoadHistory != nil {
		cmds = append(cmds, s.cmds.LoadHistory())
	}
	s.emit(otel.Event{Kind: otel.KindPageFetchStart, Comp: "feed", Page: intent.Page, Gen: intent.Gen})
	return tea.Batch(cmds...)
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return PlaybackFrame{At: t}
	})
}

func resolveCmd(at time.Time) tea.Cmd {
	d := time.Until(at)
	if d < 0 {
		d = 0
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return VisibilityResolveTick{At: t}
	})
}

// Update handles messages and returns the updated model and any commands.
func (s FeedScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)

	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.ready = true
		return s, s.observeViewport(time.Now())

	case PageFetched:
		return s.handlePageFetched(msg)

	case SearchDebounceFired:
		return s.commitSearch(msg.Gen)

	case VisibilityResolveTick:
		return s.resolveVisibility(msg.At)

	case WatchTimerFired:
		if c, ok := s.watch.TimerFired(msg.Token); ok {
			return s, s.beginRecord(c.ItemID)
		}
		return s, nil

	case PlaybackFrame:
		return s.handleFrame(msg.At)

	case WatchRecorded:
		return s.handleWatchRecorded(msg)

	case HistoryLoaded:
		if msg.Err != nil {
			s.emit(otel.Event{Kind: otel.KindHistoryError, Level: otel.LevelWarn, Comp: "history", Err: msg.Err.Error()})
			return s, nil
		}
		s.localWatched = msg.Watched
		s.applyLocalWatched()
		s.refreshItems()
		return s, nil

	case QuizAnswered:
		if msg.Err != nil {
			s.notice = "quiz submit failed: " + msg.Err.Error()
			return s, nil
		}
		if msg.Outcome.Correct {
			s.balance += msg.Outcome.Reward
			s.notice = fmt.Sprintf("Correct! +%d zivos", msg.Outcome.Reward)
		} else {
			s.notice = "Not quite. Better luck next clip."
		}
		s.emit(otel.Event{Kind: otel.KindQuizAnswer, Comp: "feed", Reward: msg.Outcome.Reward})
		return s, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s FeedScreen) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if s.notice != "" && msg.String() != "q" && msg.String() != "ctrl+c" {
		s.notice = ""
	}

	// Quiz banner owns a/b/c/d while visible.
	if s.quiz != nil {
		switch msg.String() {
		case "a", "b", "c", "d":
			answer := msg.String()
			quizID := s.quiz.Question.ID
			s.quiz = nil
			if s.cmds.SubmitQuiz != nil {
				return s, s.cmds.SubmitQuiz(quizID, answer)
			}
			return s, nil
		case "esc":
			s.quiz = nil
			return s, nil
		}
	}

	if s.searching {
		return s.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		s.player.Release()
		s.emit(otel.Event{Kind: otel.KindShutdown, Comp: "ui"})
		return s, tea.Quit

	case "esc":
		if s.overlayOpen {
			return s.closeOverlay()
		}
		return s, nil

	case "j", "down":
		return s.moveCursor(1)

	case "k", "up":
		return s.moveCursor(-1)

	case "g", "home":
		return s.jumpCursor(0)

	case "G", "end":
		if len(s.items) > 0 {
			return s.jumpCursor(len(s.items) - 1)
		}
		return s, nil

	case "enter":
		if !s.overlayOpen && s.cursor < len(s.items) {
			return s.openOverlay(s.items[s.cursor])
		}
		return s, nil

	case "/":
		s.searching = true
		s.search.Focus()
		return s, textinput.Blink

	case "r":
		intent := s.pager.BeginRefresh()
		s.refreshItems()
		s.emit(otel.Event{Kind: otel.KindPageFetchStart, Comp: "feed", Page: 1, Gen: intent.Gen})
		return s, tea.Batch(s.cmds.FetchPage(intent), s.observeViewport(time.Now()))
	}

	return s, nil
}

func (s FeedScreen) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.searching = false
		s.search.Blur()
		s.search.SetValue("")
		gen := s.pager.SetSearch("")
		return s.commitSearch(gen)

	case "enter":
		s.searching = false
		s.search.Blur()
		return s.commitSearch(s.searchGen)
	}

	var cmd tea.Cmd
	before := s.search.Value()
	s.search, cmd = s.search.Update(msg)
	term := strings.TrimSpace(s.search.Value())
	if s.search.Value() == before {
		return s, cmd
	}

	s.searchGen = s.pager.SetSearch(term)
	gen := s.searchGen
	s.emit(otel.Event{Kind: otel.KindSearchDebounce, Comp: "feed", Query: term})
	debounce := tea.Tick(s.tuning.SearchDebounce, func(time.Time) tea.Msg {
		return SearchDebounceFired{Gen: gen}
	})
	return s, tea.Batch(cmd, debounce)
}

func (s FeedScreen) commitSearch(gen int) (tea.Model, tea.Cmd) {
	intent, ok := s.pager.CommitSearch(gen)
	if !ok {
		return s, nil
	}
	s.cursor = 0
	s.scrollTarget = 0
	s.refreshItems()
	s.emit(otel.Event{Kind: otel.KindSearchCommit, Comp: "feed", Query: string(intent.Key), Gen: intent.Gen})
	return s, tea.Batch(s.cmds.FetchPage(intent), s.observeViewport(time.Now()))
}

func (s FeedScreen) handlePageFetched(msg PageFetched) (tea.Model, tea.Cmd) {
	switch s.pager.CompleteFetch(msg.Intent, msg.Page, msg.Err) {
	case feed.FetchStale:
		s.emit(otel.Event{Kind: otel.KindPageFetchStale, Comp: "feed", Page: msg.Intent.Page, Gen: msg.Intent.Gen})
		return s, nil

	case feed.FetchFailed:
		s.notice = "fetch failed: " + msg.Err.Error()
		s.emit(otel.Event{Kind: otel.KindPageFetchError, Level: otel.LevelError, Comp: "feed", Page: msg.Intent.Page, Err: msg.Err.Error()})
		return s, nil
	}

	s.applyLocalWatched()
	s.refreshItems()
	s.emit(otel.Event{Kind: otel.KindPageFetchApplied, Comp: "feed", Page: msg.Intent.Page, Count: len(msg.Page.Items)})

	cmds := []tea.Cmd{s.observeViewport(time.Now())}
	if s.cmds.WarmThumbnails != nil && len(msg.Page.Items) > 0 {
		cmds = append(cmds, s.cmds.WarmThumbnails(msg.Page.Items))
	}
	return s, tea.Batch(cmds...)
}

func (s *FeedScreen) applyLocalWatched() {
	watched := true
	for id := range s.localWatched {
		s.store.PatchEverywhere(id, feed.ItemPatch{HasWatched: &watched})
	}
}

func (s *FeedScreen) refreshItems() {
	s.items = s.store.FlatList(s.pager.Key())
	if s.cursor >= len(s.items) && len(s.items) > 0 {
		s.cursor = len(s.items) - 1
		s.scrollTarget = float64(s.cursor)
	}
}

func (s FeedScreen) moveCursor(delta int) (tea.Model, tea.Cmd) {
	next := s.cursor + delta
	if next < 0 || next >= len(s.items) {
		return s, nil
	}
	return s.jumpCursor(next)
}

func (s FeedScreen) jumpCursor(idx int) (tea.Model, tea.Cmd) {
	s.cursor = idx
	s.scrollTarget = float64(idx)
	s.emit(otel.Event{Kind: otel.KindKeyPress, Level: otel.LevelDebug, Comp: "ui", Count: idx})

	cmds := []tea.Cmd{s.observeViewport(time.Now())}
	if intent, ok := s.maybeLoadNext(); ok {
		s.emit(otel.Event{Kind: otel.KindPageFetchStart, Comp: "feed", Page: intent.Page, Gen: intent.Gen})
		cmds = append(cmds, s.cmds.FetchPage(intent))
	}
	return s, tea.Batch(cmds...)
}

func (s *FeedScreen) maybeLoadNext() (feed.FetchIntent, bool) {
	if s.cursor < len(s.items)-loadMoreMargin {
		return feed.FetchIntent{}, false
	}
	return s.pager.BeginLoadNext()
}

// viewportEntries derives intersection ratios from the animated scroll
// position. Rows are one unit tall; the fractional overlap at the top and
// bottom edges is what makes the threshold meaningful mid-fling.
func (s FeedScreen) viewportEntries() []feed.ViewportEntry {
	if s.overlayOpen || len(s.items) == 0 || !s.ready {
		return nil
	}

	visible := float64(s.listHeight())
	top := s.scrollPos - visible/2
	if top < 0 {
		top = 0
	}
	if limit := float64(len(s.items)) - visible; limit > 0 && top > limit {
		top = limit
	}
	bottom := top + visible

	var entries []feed.ViewportEntry
	for i := range s.items {
		rowTop := float64(i)
		rowBottom := rowTop + 1
		overlap := min(rowBottom, bottom) - max(rowTop, top)
		if overlap <= 0 {
			continue
		}
		entries = append(entries, feed.ViewportEntry{Index: i, Ratio: overlap})
	}
	return entries
}

func (s *FeedScreen) observeViewport(now time.Time) tea.Cmd {
	wasActive := s.vis.Active()
	resolveAt, pending := s.vis.Observe(s.viewportEntries(), now)
	if wasActive != feed.ActiveNone && s.vis.Active() == feed.ActiveNone && !s.overlayOpen {
		// Empty viewport demotes synchronously, with no Resolve tick, so
		// the disarm has to happen here: drop the resource and cancel any
		// dwell timer the demoted row still carries.
		s.activateRow(feed.ActiveNone)
	}
	if !pending {
		return nil
	}
	return resolveCmd(resolveAt)
}

func (s FeedScreen) resolveVisibility(now time.Time) (tea.Model, tea.Cmd) {
	idx, changed := s.vis.Resolve(now)
	var cmds []tea.Cmd
	if at, pending := s.vis.Pending(); pending {
		cmds = append(cmds, resolveCmd(at))
	}
	if changed {
		cmds = append(cmds, s.activateRow(idx))
	}
	return s, tea.Batch(cmds...)
}

// activateRow swaps the playback resource and watch arming to the newly
// active row. Order matters: release first, then construct.
func (s *FeedScreen) activateRow(idx int) tea.Cmd {
	s.releasePlayback()

	if idx == feed.ActiveNone || idx >= len(s.items) {
		if id, ok := s.watch.Armed(); ok {
			s.watch.Deactivate(id)
		}
		s.emit(otel.Event{Kind: otel.KindActiveChange, Comp: "feed", Count: feed.ActiveNone})
		return nil
	}

	item := s.items[idx]
	s.emit(otel.Event{Kind: otel.KindActiveChange, Comp: "feed", Item: item.ID, Count: idx})

	if item.Kind.TimeBased() {
		src := playback.Source{ItemID: item.ID, URL: item.URL, Duration: 15 * time.Second}
		if err := s.player.SetActive(src, playback.LaneFeed); err != nil {
			// Degrade to a placeholder; the feed keeps working.
			s.notice = "playback unavailable: " + err.Error()
			s.emit(otel.Event{Kind: otel.KindPlaybackError, Level: otel.LevelError, Comp: "playback", Item: item.ID, Err: err.Error()})
		} else {
			s.emit(otel.Event{Kind: otel.KindPlaybackAcquire, Comp: "playback", Item: item.ID})
		}
	}

	tok, mode := s.watch.Activate(item)
	switch mode {
	case feed.ArmTimer:
		s.emit(otel.Event{Kind: otel.KindWatchArm, Comp: "feed", Item: item.ID})
		return watchTimerCmd(s.tuning.WatchTimer, tok)
	case feed.ArmStream:
		s.emit(otel.Event{Kind: otel.KindWatchArm, Comp: "feed", Item: item.ID})
	}
	return nil
}

func watchTimerCmd(d time.Duration, tok feed.ArmToken) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return WatchTimerFired{Token: tok}
	})
}

func (s *FeedScreen) releasePlayback() {
	if id, held := s.player.ActiveID(); held {
		s.player.Release()
		s.emit(otel.Event{Kind: otel.KindPlaybackRelease, Comp: "playback", Item: id})
	}
}

func (s FeedScreen) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{frameCmd()}

	// Scroll animation.
	wasScrolling := s.isScrolling()
	s.scrollPos, s.scrollVel = s.spring.Update(s.scrollPos, s.scrollVel, s.scrollTarget)
	if wasScrolling {
		if cmd := s.observeViewport(now); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	// Playback clock.
	for _, ev := range s.player.Tick(now) {
		switch ev.Kind {
		case playback.EventEnded:
			s.emit(otel.Event{Kind: otel.KindPlaybackEnded, Comp: "playback", Item: ev.ItemID})
			if c, ok := s.watch.StreamEnded(ev.ItemID); ok {
				cmds = append(cmds, s.beginRecord(c.ItemID))
			}
		case playback.EventError:
			s.notice = "playback failed"
			s.emit(otel.Event{Kind: otel.KindPlaybackError, Level: otel.LevelError, Comp: "playback", Item: ev.ItemID, Err: ev.Err.Error()})
		}
	}

	return s, tea.Batch(cmds...)
}

func (s FeedScreen) isScrolling() bool {
	d := s.scrollPos - s.scrollTarget
	return d > 0.01 || d < -0.01
}

// beginRecord runs the optimistic mutation for a freshly completed watch
// and issues the durable call.
func (s *FeedScreen) beginRecord(itemID string) tea.Cmd {
	item, ok := s.store.GetAny(itemID)
	if !ok {
		return nil
	}
	m, ok := s.mutations.Begin(item)
	if !ok {
		return nil
	}
	s.refreshItems()
	s.emit(otel.Event{Kind: otel.KindWatchComplete, Comp: "feed", Item: itemID})
	return s.cmds.RecordWatch(item, m)
}

func (s FeedScreen) handleWatchRecorded(msg WatchRecorded) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		s.mutations.Fail(msg.Mutation)
		s.refreshItems()
		s.notice = "couldn't record watch; it will count next time"
		s.emit(otel.Event{Kind: otel.KindWatchRollback, Level: otel.LevelWarn, Comp: "feed", Item: msg.ItemID, Err: msg.Err.Error()})
		return s, nil
	}

	s.mutations.Succeed(msg.Mutation)
	s.localWatched[msg.ItemID] = true
	s.balance += msg.Result.Reward
	s.emit(otel.Event{Kind: otel.KindWatchRecord, Comp: "feed", Item: msg.ItemID, Reward: msg.Result.Reward})

	var cmds []tea.Cmd
	if s.cmds.SaveWatch != nil {
		if item, ok := s.store.GetAny(msg.ItemID); ok {
			cmds = append(cmds, s.cmds.SaveWatch(item, msg.Result.Reward))
		}
	}
	if msg.Result.Quiz != nil {
		s.quiz = &feed.QuizInvitation{
			MediaID:  msg.ItemID,
			Reward:   msg.Result.Reward,
			Question: *msg.Result.Quiz,
		}
		s.emit(otel.Event{Kind: otel.KindQuizInvite, Comp: "feed", Item: msg.ItemID})
	}
	return s, tea.Batch(cmds...)
}

func (s FeedScreen) openOverlay(item feed.Item) (tea.Model, tea.Cmd) {
	s.overlayOpen = true
	s.overlayItem = item
	s.overlayOpenedAt = time.Now()

	// The viewport is now empty; the feed row's resource goes away before
	// the overlay's is built.
	s.vis.Observe(nil, time.Now())
	s.releasePlayback()
	s.watch.Deactivate(item.ID)

	var cmds []tea.Cmd
	if item.Kind.TimeBased() {
		src := playback.Source{ItemID: item.ID, URL: item.URL, Duration: 15 * time.Second}
		if err := s.player.SetActive(src, playback.LaneOverlay); err != nil {
			s.notice = "playback unavailable: " + err.Error()
			s.emit(otel.Event{Kind: otel.KindPlaybackError, Level: otel.LevelError, Comp: "playback", Item: item.ID, Err: err.Error()})
		} else {
			s.emit(otel.Event{Kind: otel.KindPlaybackAcquire, Comp: "playback", Item: item.ID})
		}
	}

	tok, mode := s.watch.Activate(item)
	if mode == feed.ArmTimer {
		cmds = append(cmds, watchTimerCmd(s.tuning.WatchTimer, tok))
	}
	return s, tea.Batch(cmds...)
}

func (s FeedScreen) closeOverlay() (tea.Model, tea.Cmd) {
	s.releasePlayback()
	s.watch.Deactivate(s.overlayItem.ID)
	s.overlayOpen = false
	s.overlayItem = feed.Item{}
	return s, s.observeViewport(time.Now())
}

func (s *FeedScreen) emit(e otel.Event) {
	if s.logger != nil {
		s.logger.Emit(e)
	}
}

func (s FeedScreen) listHeight() int {
	h := s.height - 1 // status bar
	if s.searching || s.search.Value() != "" {
		h--
	}
	if s.quiz != nil {
		h -= 2
	}
	if s.notice != "" {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the UI.
func (s FeedScreen) View() string {
	if !s.ready {
		return "Loading..."
	}
	if s.overlayOpen {
		return s.viewOverlay()
	}

	var b strings.Builder

	if s.searching || s.search.Value() != "" {
		committed := !s.searching || string(s.pager.Key()) == strings.TrimSpace(s.search.Value())
		b.WriteString(RenderSearchBar(s.search.View(), committed, len(s.items), s.width))
		b.WriteString("\n")
	}
	if s.quiz != nil {
		b.WriteString(s.viewQuizBanner())
	}

	b.WriteString(s.viewRows())

	if s.notice != "" {
		b.WriteString(ErrorStyle.Width(s.width).Render(s.notice))
		b.WriteString("\n")
	}
	b.WriteString(RenderStatusBar(s.cursor, len(s.items), s.width, s.pager.Loading(), s.balance))
	return b.String()
}

func (s FeedScreen) viewRows() string {
	if len(s.items) == 0 {
		if s.pager.Loading() {
			return HelpStyle.Render(s.spinner.View()+" Loading the feed...") + "\n"
		}
		return HelpStyle.Render("Nothing here. Press 'r' to refresh or '/' to search.") + "\n"
	}

	height := s.listHeight()
	active := s.vis.Active()

	// Window the list around the animated scroll position.
	top := int(s.scrollPos) - height/2
	if top < 0 {
		top = 0
	}

	var b strings.Builder
	rendered := 0
	for i := top; i < len(s.items) && rendered < height; i++ {
		isActive := i == active
		var pos, dur time.Duration
		if isActive {
			if p, ok := s.player.Position(time.Now()); ok {
				pos, dur = p, 15*time.Second
			}
		}
		row := RenderRow(s.items[i], isActive, s.width, pos, dur)
		rows := strings.Count(row, "\n") + 1
		if rendered+rows > height {
			break
		}
		cursorMark := " "
		if i == s.cursor {
			cursorMark = StatusBarKey.Render("▶")
		}
		lines := strings.Split(row, "\n")
		for j, l := range lines {
			if j == 0 {
				b.WriteString(cursorMark + l)
			} else {
				b.WriteString(" " + l)
			}
			b.WriteString("\n")
		}
		rendered += rows
	}
	for rendered < height {
		b.WriteString("\n")
		rendered++
	}
	return b.String()
}

func (s FeedScreen) viewQuizBanner() string {
	q := s.quiz.Question
	head := QuizBanner.Width(s.width).Render(fmt.Sprintf("Quiz! %s", q.Question))
	opts := MetaText.Render(fmt.Sprintf("  [a] %s  [b] %s  [c] %s  [d] %s  (esc to skip)",
		q.OptionA, q.OptionB, q.OptionC, q.OptionD))
	return head + "\n" + opts + "\n"
}

func (s FeedScreen) viewOverlay() string {
	item := s.overlayItem

	var b strings.Builder
	b.WriteString(item.Name + "\n\n")
	if item.Description != "" {
		b.WriteString(item.Description + "\n\n")
	}
	if item.Kind.TimeBased() {
		if pos, ok := s.player.Position(time.Now()); ok {
			b.WriteString(renderProgressBar(pos, 15*time.Second, s.width/2) + "\n")
		}
	} else if !item.HasWatched {
		// Countdown to the watch credit for static media.
		remaining := s.tuning.WatchTimer - time.Since(s.overlayOpenedAt)
		if remaining > 0 {
			b.WriteString(MetaText.Render(fmt.Sprintf("watch credit in %ds", int(remaining.Seconds())+1)) + "\n")
		}
	}
	b.WriteString(MetaText.Render(fmt.Sprintf("@%s · %s", item.UploaderUsername, formatViews(item.ViewCount))))
	if pills := renderTagPills(item.Tags, s.width/2); pills != "" {
		b.WriteString("\n" + pills)
	}
	b.WriteString("\n\n" + StatusBarText.Render("esc to close"))

	box := OverlayBox.Width(s.width * 3 / 4).Render(b.String())
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, box)
}

// Cursor returns the current cursor position (for testing).
func (s FeedScreen) Cursor() int { return s.cursor }

// Items returns the current flat list (for testing).
func (s FeedScreen) Items() []feed.Item { return s.items }

// Active returns the confirmed active index (for testing).
func (s FeedScreen) Active() int { return s.vis.Active() }

// Balance returns the session's accumulated zivos.
func (s FeedScreen) Balance() int { return s.balance }
