package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/navsurf/history"
	"github.com/vidyasagar/navsurf/internal/browser"
	"github.com/vidyasagar/navsurf/internal/logging"
	"github.com/vidyasagar/navsurf/internal/storage"
	"github.com/vidyasagar/navsurf/internal/theme"
	"github.com/vidyasagar/navsurf/internal/ui"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeNormal  Mode = iota
	ModeInsert       // path bar focused
	ModeCommand      // command bar active
	ModeFollow       // link follow mode
	ModeSearch       // journal search
	ModeSession      // session panel active
	ModeLeader       // leader key palette active
	ModeConfirm      // a transition waits for y/n
)

var modeNames = map[Mode]string{
	ModeNormal:  "NORMAL",
	ModeInsert:  "INSERT",
	ModeCommand: "COMMAND",
	ModeFollow:  "FOLLOW",
	ModeSearch:  "SEARCH",
	ModeSession: "SESSION",
	ModeLeader:  "LEADER",
	ModeConfirm: "CONFIRM",
}

func (m Mode) String() string {
	return modeNames[m]
}

const (
	fetchTimeout  = 5 * time.Second
	leaderTimeout = 2 * time.Second
)

// Options configures the application.
type Options struct {
	Config  *storage.Config
	Logger  *logging.Logger
	Journal *storage.Journal
}

// Model is the top-level bubbletea model for navsurf.
type Model struct {
	// UI components
	pathBar      ui.PathBar
	statusBar    ui.StatusBar
	commandBar   ui.CommandBar
	viewport     ui.PageViewport
	sessionPanel ui.SessionPanel
	leaderPanel  ui.LeaderPanel

	s      *session
	logger *logging.Logger
	page   *browser.RenderedPage // nil while a non-page view is shown

	keys     KeyMap
	mode     Mode
	width    int
	height   int
	lastGKey bool // for "gg" detection
	ready    bool
}

// pageLoadedMsg is sent when a page finishes loading.
type pageLoadedMsg struct {
	loc      history.Location
	width    int
	page     *browser.RenderedPage
	status   int
	duration time.Duration
	cached   bool
	err      error
}

// leaderTimeoutMsg is sent when the leader key palette times out.
type leaderTimeoutMsg struct{}

// New creates the Model and the history selected by the configuration.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		d := storage.DefaultConfig()
		cfg = &d
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.New(io.Discard, cfg.LogLevel)
	}

	s, err := newSession(cfg, logger.Logger, opts.Journal)
	if err != nil {
		return Model{}, err
	}
	if cfg.Theme != "" && !theme.Set(cfg.Theme) {
		logger.Warn("unknown theme, keeping default", "theme", cfg.Theme)
	}

	m := Model{
		pathBar:      ui.NewPathBar(),
		statusBar:    ui.NewStatusBar(),
		commandBar:   ui.NewCommandBar(commandNames...),
		viewport:     ui.NewPageViewport(),
		sessionPanel: ui.NewSessionPanel(),
		leaderPanel:  ui.NewLeaderPanel(),
		s:            s,
		logger:       logger,
		keys:         DefaultKeyMap(),
		mode:         ModeNormal,
	}
	m.statusBar.SetHistory(s.kind)
	m.syncStatusBar()
	m.syncSession()
	return m, nil
}

// Close detaches the history from the window.
func (m Model) Close() {
	m.s.close()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadPage(m.s.hist.Location())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		// Pages render to the viewport width.
		return m, m.loadPage(m.s.hist.Location())

	case pageLoadedMsg:
		return m.handlePageLoaded(msg)

	case leaderTimeoutMsg:
		if m.mode == ModeLeader {
			m.leaderPanel.Hide()
			m.setMode(ModeNormal)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	vp, cmd := m.viewport.Update(msg)
	m.viewport = *vp
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading navsurf..."
	}

	sections := []string{m.pathBar.View()}

	if m.sessionPanel.IsVisible() {
		t := theme.Current
		divider := lipgloss.NewStyle().
			Foreground(t.Border).
			Background(t.Background).
			Render(strings.TrimSuffix(strings.Repeat("│\n", m.contentHeight()), "\n"))
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			m.sessionPanel.View(),
			divider,
			m.viewport.View(),
		))
	} else {
		sections = append(sections, m.viewport.View())
	}

	sections = append(sections, m.statusBar.View())
	if m.commandBar.IsActive() {
		sections = append(sections, m.commandBar.View())
	}

	result := lipgloss.JoinVertical(lipgloss.Left, sections...)

	var overlay string
	switch {
	case m.s.confirm.IsOpen():
		overlay = m.s.confirm.View()
	case m.leaderPanel.IsVisible():
		overlay = m.leaderPanel.View()
	}
	if overlay != "" {
		result = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay,
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(theme.Current.Background),
		)
	}

	return result
}

// contentHeight is the height left for the viewport: the path bar takes 3
// lines with its border, the status bar 1 and the command bar 1 when open.
func (m *Model) contentHeight() int {
	h := m.height - 3 - 1
	if m.commandBar.IsActive() {
		h--
	}
	return max(h, 1)
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	m.pathBar.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.commandBar.SetWidth(m.width)
	m.s.confirm.SetWidth(m.width)
	m.leaderPanel.SetSize(m.width, m.height)

	height := m.contentHeight()
	width := m.width
	if m.sessionPanel.IsVisible() {
		panelWidth := max(m.width*35/100, 24)
		m.sessionPanel.SetSize(panelWidth, height)
		width = m.width - panelWidth - 1 // divider
	}
	m.viewport.SetSize(width, height)
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
	m.statusBar.SetMode(mode.String())
}

// handleKeyMsg processes key events based on current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Always allow Ctrl+C to quit.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeInsert:
		return m.handleInsertMode(msg)
	case ModeCommand, ModeSearch, ModeFollow:
		return m.handleCommandMode(msg)
	case ModeSession:
		return m.handleSessionMode(msg)
	case ModeLeader:
		return m.handleLeaderMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode processes keys in normal (browsing) mode.
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "g" {
		m.lastGKey = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Leader):
		m.leaderPanel.Show()
		m.setMode(ModeLeader)
		return m, tea.Tick(leaderTimeout, func(time.Time) tea.Msg {
			return leaderTimeoutMsg{}
		})

	// gg detection: first "g" sets flag, second "g" goes to top.
	case key.Matches(msg, m.keys.GotoTop):
		if m.lastGKey {
			m.lastGKey = false
			m.viewport.Move(ui.MotionTop)
			m.syncStatusBar()
			return m, nil
		}
		m.lastGKey = true
		return m, nil

	case key.Matches(msg, m.keys.GotoBottom):
		m.viewport.Move(ui.MotionBottom)
	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.Move(ui.MotionLineDown)
	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.Move(ui.MotionLineUp)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.Move(ui.MotionHalfDown)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.Move(ui.MotionHalfUp)

	case key.Matches(msg, m.keys.Push):
		return m.focusPathBar(ui.TargetPush)
	case key.Matches(msg, m.keys.Replace):
		return m.focusPathBar(ui.TargetReplace)
	case key.Matches(msg, m.keys.Back):
		return m.traverse(-1)
	case key.Matches(msg, m.keys.Forward):
		return m.traverse(1)
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	case key.Matches(msg, m.keys.FollowLink):
		return m.openCommandBar(ModeFollow, ui.CommandFollow)

	case key.Matches(msg, m.keys.ToggleBlock):
		return m.toggleBlock()

	case key.Matches(msg, m.keys.CommandMode):
		return m.openCommandBar(ModeCommand, ui.CommandEx)
	case key.Matches(msg, m.keys.SearchMode):
		return m.openCommandBar(ModeSearch, ui.CommandSearch)
	case key.Matches(msg, m.keys.SessionPanel):
		return m.toggleSessionPanel()
	case key.Matches(msg, m.keys.Journal):
		return m.showJournal(0)
	case key.Matches(msg, m.keys.Help):
		m.showHelp()
	}

	m.syncStatusBar()
	return m, nil
}

// handleConfirmMode answers a pending transition.
func (m Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Allow):
		m.s.confirm.Answer(true)
	case key.Matches(msg, m.keys.Refuse):
		m.s.confirm.Answer(false)
	default:
		return m, nil
	}
	m.setMode(ModeNormal)
	return m.afterTransition()
}

// handleInsertMode processes keys when the path bar is focused.
func (m Model) handleInsertMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.pathBar.Blur()
		m.setMode(ModeNormal)
		return m, nil

	case tea.KeyEnter:
		path := strings.TrimSpace(m.pathBar.Value())
		target := m.pathBar.Target()
		m.pathBar.Blur()
		m.setMode(ModeNormal)
		if path == "" {
			return m, nil
		}
		if target == ui.TargetReplace {
			return m.navigate(m.s.replace(path, nil))
		}
		return m.navigate(m.s.push(path, nil))
	}

	pb, cmd := m.pathBar.Update(msg)
	m.pathBar = *pb
	return m, cmd
}

func (m Model) focusPathBar(target ui.PathTarget) (tea.Model, tea.Cmd) {
	m.setMode(ModeInsert)
	prefill := ""
	if target == ui.TargetReplace {
		prefill = m.s.hist.Location().Path()
	}
	cmd := m.pathBar.Focus(target, prefill)
	return m, cmd
}

// handleCommandMode processes keys in command/search/follow mode.
func (m Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.commandBar.Close()
		m.setMode(ModeNormal)
		m.layout()
		return m, nil

	case tea.KeyEnter:
		result := m.commandBar.Submit()
		m.setMode(ModeNormal)
		m.layout()
		return m.handleCommandResult(result)
	}

	cb, cmd := m.commandBar.Update(msg)
	m.commandBar = *cb
	if !m.commandBar.IsActive() {
		m.setMode(ModeNormal)
		m.layout()
	}
	return m, cmd
}

func (m Model) openCommandBar(mode Mode, ct ui.CommandType) (tea.Model, tea.Cmd) {
	m.setMode(mode)
	cmd := m.commandBar.Open(ct)
	m.layout()
	return m, cmd
}

// handleCommandResult processes a submitted command.
func (m Model) handleCommandResult(result ui.CommandResult) (tea.Model, tea.Cmd) {
	switch result.Type {
	case ui.CommandEx:
		return m.executeCommand(result.Value)
	case ui.CommandSearch:
		return m.searchJournal(result.Value)
	case ui.CommandFollow:
		return m.followLink(result.Value)
	}
	return m, nil
}

// handleSessionMode processes keys when the session panel is active.
func (m Model) handleSessionMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "g" {
		m.sessionPanel.ResetGKey()
	}

	switch {
	case key.Matches(msg, m.keys.ScrollDown):
		m.sessionPanel.CursorDown()
	case key.Matches(msg, m.keys.ScrollUp):
		m.sessionPanel.CursorUp()
	case key.Matches(msg, m.keys.GotoTop):
		m.sessionPanel.HandleGKey()
	case key.Matches(msg, m.keys.GotoBottom):
		m.sessionPanel.GotoBottom()
	case key.Matches(msg, m.keys.Select):
		delta := m.sessionPanel.Delta()
		if delta == 0 {
			return m, nil
		}
		return m.traverse(delta)
	case key.Matches(msg, m.keys.Dismiss), key.Matches(msg, m.keys.SessionPanel):
		return m.toggleSessionPanel()
	}
	return m, nil
}

func (m Model) toggleSessionPanel() (tea.Model, tea.Cmd) {
	m.sessionPanel.Toggle()
	if m.sessionPanel.IsVisible() {
		m.syncSession()
		m.setMode(ModeSession)
	} else {
		m.setMode(ModeNormal)
	}
	m.layout()
	// The viewport width changed.
	return m, m.loadPage(m.s.hist.Location())
}

// handleLeaderMode runs the action bound to the key pressed after the
// leader, then returns to normal mode.
func (m Model) handleLeaderMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.leaderPanel.Hide()
	m.setMode(ModeNormal)

	switch msg.String() {
	case "o":
		return m.focusPathBar(ui.TargetPush)
	case "r":
		return m.focusPathBar(ui.TargetReplace)
	case "b":
		return m.traverse(-1)
	case "f":
		return m.traverse(1)
	case "l":
		return m.openCommandBar(ModeFollow, ui.CommandFollow)
	case "k":
		return m.toggleBlock()
	case "p":
		m.s.prompt("", true)
		m.statusBar.SetMessage("Prompting on POP")
	case "y", "n":
		if !m.s.confirm.IsOpen() {
			m.statusBar.SetMessage("Nothing is pending")
			return m, nil
		}
		m.s.confirm.Answer(msg.String() == "y")
		return m.afterTransition()
	case "s":
		return m.toggleSessionPanel()
	case "j":
		return m.showJournal(0)
	case "T":
		return m.cycleTheme()
	case ":":
		return m.openCommandBar(ModeCommand, ui.CommandEx)
	case "?":
		m.showHelp()
	}

	m.syncStatusBar()
	return m, nil
}

// cycleTheme switches to the next available theme.
func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	next := theme.Next()
	theme.Set(next)
	m.statusBar.SetMessage(fmt.Sprintf("Theme: %s", next))
	m.s.cache.Purge()
	return m, m.loadPage(m.s.hist.Location())
}

func (m Model) toggleBlock() (tea.Model, tea.Cmd) {
	if m.s.blocked() {
		m.s.clearGate()
		m.statusBar.SetMessage("Navigation unblocked")
	} else {
		m.s.prompt("", false)
		m.statusBar.SetMessage("Navigation prompts before leaving")
	}
	m.syncStatusBar()
	return m, nil
}

func (m Model) traverse(n int) (tea.Model, tea.Cmd) {
	return m.navigate(m.s.goTo(n))
}

// navigate reports the error of a history call, if any, then settles the
// window.
func (m Model) navigate(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.logger.Debug("transition refused", "err", err)
		m.statusBar.SetError(err)
	}
	return m.afterTransition()
}

// afterTransition delivers queued window events, enters confirm mode when
// a hook waits on the user and loads the page of a newly committed
// location.
func (m Model) afterTransition() (tea.Model, tea.Cmd) {
	c, changed := m.s.settle()

	if m.s.confirm.IsOpen() {
		m.setMode(ModeConfirm)
	} else if m.mode == ModeConfirm {
		m.setMode(ModeNormal)
	}
	m.syncSession()
	m.syncStatusBar()

	if !changed {
		return m, nil
	}
	m.statusBar.SetMessage("")
	m.statusBar.SetLoading(true)
	return m, m.loadPage(c.loc)
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	loc := m.s.hist.Location()
	m.s.cache.Remove(cacheKey(loc.Pathname, m.viewport.Width()))
	m.statusBar.SetLoading(true)
	return m, m.loadPage(loc)
}

// followLink pushes the target of the numbered link on the current page.
func (m Model) followLink(input string) (tea.Model, tea.Cmd) {
	if m.page == nil || len(m.page.Links) == 0 {
		m.statusBar.SetMessage("No links on this view")
		return m, nil
	}
	var n int
	if _, err := fmt.Sscanf(input, "%d", &n); err != nil || n < 1 || n > len(m.page.Links) {
		m.statusBar.SetMessage(fmt.Sprintf("Invalid link number: %s (1-%d)", input, len(m.page.Links)))
		return m, nil
	}
	link := m.page.Links[n-1]
	return m.navigate(m.s.push(link.URL, nil))
}

func cacheKey(pathname string, width int) string {
	return fmt.Sprintf("%s@%d", pathname, width)
}

// loadPage fetches, extracts and renders the page of loc off the update
// loop. Rendered pages are cached per width.
func (m Model) loadPage(loc history.Location) tea.Cmd {
	if !m.ready {
		return nil
	}
	width := m.viewport.Width()
	if page, ok := m.s.cache.Get(cacheKey(loc.Pathname, width)); ok {
		return func() tea.Msg {
			return pageLoadedMsg{loc: loc, width: width, page: page, cached: true}
		}
	}

	fetcher := m.s.fetcher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		res, err := fetcher.Fetch(ctx, loc.Pathname)
		if err != nil {
			return pageLoadedMsg{loc: loc, width: width, err: err}
		}
		article, err := browser.Extract(res)
		if err != nil {
			return pageLoadedMsg{loc: loc, width: width, err: err}
		}
		return pageLoadedMsg{
			loc:      loc,
			width:    width,
			page:     browser.Render(article, width),
			status:   res.StatusCode,
			duration: res.Duration,
		}
	}
}

// handlePageLoaded shows a loaded page unless the location moved on while
// it was loading.
func (m Model) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	current := m.s.hist.Location()
	if msg.loc.Pathname != current.Pathname || msg.width != m.viewport.Width() {
		return m, nil
	}
	m.statusBar.SetLoading(false)

	if msg.err != nil {
		m.logger.Error("loading page", "path", msg.loc.Pathname, "err", msg.err)
		m.statusBar.SetError(msg.err)

		errStyle := lipgloss.NewStyle().
			Foreground(theme.Current.Error).
			Bold(true).
			Padding(2, 4)
		detailStyle := lipgloss.NewStyle().
			Foreground(theme.Current.TextDim).
			Padding(0, 4)

		m.page = nil
		m.viewport.SetContent(errStyle.Render("Failed to load page") + "\n\n" +
			detailStyle.Render(fmt.Sprintf("Path: %s\nError: %s", msg.loc.Pathname, msg.err)))
		m.syncStatusBar()
		return m, nil
	}

	if !msg.cached && msg.status == 200 {
		m.s.cache.Add(cacheKey(msg.loc.Pathname, msg.width), msg.page)
	}
	if !msg.cached {
		m.logger.Debug("page loaded", "path", msg.loc.Pathname, "status", msg.status, "duration", msg.duration)
	}

	m.page = msg.page
	m.viewport.SetContent(msg.page.Content)
	if frag := strings.TrimPrefix(current.Hash, "#"); frag != "" {
		m.viewport.ScrollTo(strings.ReplaceAll(frag, "-", " "))
	}
	m.statusBar.SetTitle(msg.page.Title)
	if msg.status == 404 {
		m.statusBar.SetMessage(fmt.Sprintf("No page at %s", msg.loc.Pathname))
	}
	m.syncStatusBar()
	return m, nil
}

// syncStatusBar updates the path bar and status bar from the history.
func (m *Model) syncStatusBar() {
	loc := m.s.hist.Location()
	m.pathBar.SetHref(m.s.hist.CreateHref(loc))
	m.statusBar.SetTransition(string(m.s.hist.Action()), loc.Key)
	m.statusBar.SetPosition(m.s.position())
	m.statusBar.SetGate(m.s.blocked(), m.s.hist.Pending())
	m.statusBar.SetScrollInfo(m.viewport.ScrollInfo())
	if m.page != nil {
		m.statusBar.SetLinkCount(len(m.page.Links))
	} else {
		m.statusBar.SetLinkCount(0)
	}
}

// syncSession refreshes the session panel from the session stack.
func (m *Model) syncSession() {
	index, _ := m.s.position()
	m.sessionPanel.SetEntries(m.s.entries(), index)
}
