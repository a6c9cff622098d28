// Package ui provides the Bubble Tea shell for attest: view routing, the
// command palette, the dashboard search box, and the overlay stack.
package ui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/rlind/attest/internal/catalog"
	"github.com/rlind/attest/internal/search"
	"github.com/rlind/attest/internal/state"
	"github.com/rlind/attest/internal/veritas"
)

// focusArea identifies which surface currently receives keystrokes when no
// overlay is open.
type focusArea int

const (
	focusMain focusArea = iota
	focusSearchBox
	focusVerifyInput
)

const debounceDelay = 200 * time.Millisecond

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    veritas.API
	Store     *state.Store
	Catalog   *catalog.Catalog
	PollTick  time.Duration
	ThemeName string
	OnTheme   func(string) // remembers the theme for the settings saver
	Logger    logrus.FieldLogger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	client   veritas.API
	store    *state.Store
	cat      *catalog.Catalog
	log      logrus.FieldLogger
	onTheme  func(string)
	pollTick time.Duration

	// UI state
	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool
	focus  focusArea

	// Data state
	snap   state.Snapshot
	engine *search.Engine

	// Search surfaces
	palette   paletteState
	searchBox searchBoxState

	// Overlays
	overlay overlayState
	auth    authState

	// Verify view
	verifyInput textinput.Model
	verifying   bool
	lastResult  *state.Activity

	// History view
	historyViewport viewport.Model

	// Settings view
	settingsCursor int

	toast toastState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	cat := opts.Catalog
	if cat == nil {
		cat = catalog.New()
	}

	onTheme := opts.OnTheme
	if onTheme == nil {
		onTheme = func(string) {}
	}

	verifyInput := textinput.New()
	verifyInput.Placeholder = "Enter a claim to verify"
	verifyInput.CharLimit = 500

	m := Model{
		ctx:         ctx,
		client:      opts.Client,
		store:       opts.Store,
		cat:         cat,
		log:         log,
		onTheme:     onTheme,
		pollTick:    pollTick,
		theme:       GetTheme(themeName),
		keys:        DefaultKeyMap(),
		engine:      search.NewEngine(suggestionDocs(cat)),
		palette:     newPaletteState(),
		searchBox:   newSearchBoxState(),
		verifyInput: verifyInput,
	}
	if opts.Store != nil {
		m.snap = opts.Store.Snapshot()
		cat.SetActive(resolveViewID(m.snap.ActiveViewID))
	}
	return m
}

// suggestionDocs converts the catalog's curated prefix into search docs for
// the engine's fixed empty-query result.
func suggestionDocs(cat *catalog.Catalog) []search.Doc {
	entries := cat.Suggestions()
	docs := make([]search.Doc, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, search.Doc{ID: e.ID, Label: e.Label, Kind: search.KindCatalog})
	}
	return docs
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initHistoryViewport()
		}
		m.ready = true
		m.resizeComponents()
		m.updateHistoryViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snap = state.Snapshot(msg)
		if m.currentViewID() == "history" {
			m.updateHistoryViewport()
		}
		return m, nil

	case debounceMsg:
		m.handleDebounce(msg)
		return m, nil

	case verifyDoneMsg:
		return m.handleVerifyDone(msg)

	case connTestMsg:
		if msg.err != nil {
			cmd := m.showToast("Connection failed: "+msg.err.Error(), toastError)
			return m, cmd
		}
		cmd := m.showToast("Daemon reachable", toastSuccess)
		return m, cmd

	case toastExpireMsg:
		if msg.gen == m.toast.gen {
			m.toast.text = ""
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Starting attest..."
	}

	if m.overlay.kind != overlayNone {
		return m.renderOverlay()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// An open overlay intercepts all keyboard input.
	if m.overlay.kind != overlayNone {
		return m.handleOverlayKey(msg)
	}

	// Text-input surfaces swallow keystrokes, including the palette
	// shortcut, so typing is never interrupted.
	switch m.focus {
	case focusSearchBox:
		return m.handleSearchBoxKey(msg)
	case focusVerifyInput:
		return m.handleVerifyKey(msg)
	}

	switch msg.String() {
	case "e":
		return m, tea.Quit

	case "ctrl+k":
		m.openOverlay(overlayPalette)
		return m, nil

	case "?":
		m.openOverlay(overlayInfo)
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.onTheme(m.theme.Name)
		if m.store != nil {
			m.store.Persist()
		}
		return m, nil

	case "tab":
		return m, m.navigate(m.adjacentView(1))

	case "shift+tab":
		return m, m.navigate(m.adjacentView(-1))

	case "esc", "q":
		return m, m.navigate("dashboard")

	case "v":
		return m, m.navigate("verify")

	case "r":
		return m, m.navigate("history")

	case "a":
		return m, m.navigate("account")

	case "o":
		return m, m.navigate("settings")

	case "b":
		return m, m.navigate("about")

	case "/":
		var cmd tea.Cmd
		if m.currentViewID() != "dashboard" {
			cmd = m.navigate("dashboard")
		}
		m.openSearchBox()
		return m, cmd
	}

	// View-specific keys
	switch m.currentViewID() {
	case "history":
		return m.handleHistoryKey(msg)
	case "settings":
		return m.handleSettingsKey(msg)
	case "verify":
		if msg.String() == "enter" {
			m.focus = focusVerifyInput
			m.verifyInput.Focus()
		}
		return m, nil
	case "account":
		return m.handleAccountKey(msg)
	}

	return m, nil
}

// handleMouse dismisses the open overlay on clicks outside its bounds.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.overlay.kind == overlayNone {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	x, y, w, h := m.overlayBounds()
	if msg.X < x || msg.X >= x+w || msg.Y < y || msg.Y >= y+h {
		m.closeOverlay()
	}
	return m, nil
}

// handleVerifyKey processes keystrokes while the claim input is focused.
func (m Model) handleVerifyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.verifyInput.Blur()
		m.focus = focusMain
		return m, nil

	case "ctrl+k":
		// Reserved palette shortcut is ignored while typing.
		return m, nil

	case "enter":
		return m.submitVerify()
	}

	var cmd tea.Cmd
	m.verifyInput, cmd = m.verifyInput.Update(msg)
	return m, cmd
}

// handleHistoryKey processes keyboard input for the history view.
func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		if m.store != nil {
			m.store.Apply(state.Patch{ClearRecent: true})
			m.store.Persist()
			m.snap = m.store.Snapshot()
		}
		m.updateHistoryViewport()
		cmd := m.showToast("History cleared", toastInfo)
		return m, cmd

	case "g", "home":
		m.historyViewport.GotoTop()
		return m, nil

	case "G", "end":
		m.historyViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.historyViewport, cmd = m.historyViewport.Update(msg)
	return m, cmd
}

// handleSettingsKey processes keyboard input for the settings view.
func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.settingsCursor < len(preferenceItems)-1 {
			m.settingsCursor++
		}
	case "k", "up":
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case " ", "enter":
		item := preferenceItems[m.settingsCursor]
		if m.store != nil {
			current := m.snap.Preferences[item.key]
			m.store.Apply(state.Patch{Preferences: map[string]bool{item.key: !current}})
			m.store.Persist()
			m.snap = m.store.Snapshot()
		}
	case "t":
		return m, m.testConnection()
	}
	return m, nil
}

// handleAccountKey processes keyboard input for the account view.
func (m Model) handleAccountKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "i":
		m.openOverlay(overlayAuth)
		return m, nil

	case "u":
		m.openOverlay(overlayUpgrade)
		return m, nil

	case "x":
		if m.snap.Session == nil {
			return m, nil
		}
		if m.store != nil {
			m.store.Apply(state.Patch{ClearSession: true})
			m.store.Persist()
			m.snap = m.store.Snapshot()
		}
		m.cat.RecomputeLocked("")
		cmd := m.showToast("Signed out", toastInfo)
		return m, cmd
	}
	return m, nil
}

// handleTick refreshes the snapshot and schedules the next tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// handleDebounce runs a pending search if it is still the latest scheduled
// one for its surface. Superseded versions are dropped, which gives the
// single-flight guarantee per surface.
func (m *Model) handleDebounce(msg debounceMsg) {
	switch msg.surface {
	case surfacePalette:
		if msg.version != m.palette.version || m.overlay.kind != overlayPalette {
			return
		}
		m.palette.session.SetResults(
			m.engine.Search(m.palette.session.Query, m.searchCorpus(), search.PaletteLimit))

	case surfaceSearchBox:
		if msg.version != m.searchBox.version || !m.searchBox.session.Open {
			return
		}
		m.searchBox.session.SetResults(
			m.engine.Search(m.searchBox.session.Query, m.searchCorpus(), 0))
	}
}

// searchCorpus builds the combined corpus: catalog destinations plus recent
// verifications.
func (m Model) searchCorpus() []search.Doc {
	entries := m.cat.Entries()
	docs := make([]search.Doc, 0, len(entries)+len(m.snap.Recent))
	for _, e := range entries {
		docs = append(docs, search.Doc{ID: e.ID, Label: e.Label, Kind: search.KindCatalog})
	}
	for _, a := range m.snap.Recent {
		docs = append(docs, search.Doc{
			ID:    strconv.FormatInt(a.ID, 10),
			Label: a.Text,
			Kind:  search.KindHistory,
		})
	}
	return docs
}

// resolveSearchResult turns an accepted search result into a navigation.
// Catalog hits navigate to their view, except locked destinations which
// open the upgrade prompt instead; history hits open the history view.
func (m *Model) resolveSearchResult(r search.Result) tea.Cmd {
	if r.Kind == search.KindHistory {
		return m.navigate("history")
	}
	if entry, ok := m.cat.Lookup(r.SourceID); ok && entry.Locked {
		m.openOverlay(overlayUpgrade)
		return nil
	}
	return m.navigate(r.SourceID)
}

// submitVerify sends the claim to the daemon. The call runs asynchronously;
// navigation and search stay responsive while it is in flight.
func (m Model) submitVerify() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.verifyInput.Value())
	if text == "" || m.verifying {
		return m, nil
	}
	if !m.snap.APIReachable {
		cmd := m.showToast("Daemon offline: claim not submitted", toastWarn)
		return m, cmd
	}

	m.verifying = true
	client := m.client
	ctx := m.ctx
	verify := func() tea.Msg {
		cctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		res, err := client.Verify(cctx, text)
		if err != nil {
			return verifyDoneMsg{err: err}
		}
		now := time.Now()
		return verifyDoneMsg{activity: state.Activity{
			ID:        now.UnixNano(),
			Text:      text,
			Score:     res.Score,
			Verdict:   state.Verdict(res.Verdict),
			CreatedAt: now,
			Sources:   res.Sources,
		}}
	}
	return m, verify
}

// handleVerifyDone records a completed verification.
func (m Model) handleVerifyDone(msg verifyDoneMsg) (tea.Model, tea.Cmd) {
	m.verifying = false
	if msg.err != nil {
		m.log.WithError(msg.err).Warn("verify failed")
		cmd := m.showToast("Verification failed: "+msg.err.Error(), toastError)
		return m, cmd
	}

	activity := msg.activity
	m.lastResult = &activity
	if m.store != nil {
		m.store.Apply(state.Patch{AddRecent: []state.Activity{activity}})
		m.store.Persist()
		m.snap = m.store.Snapshot()
	}
	m.verifyInput.Reset()

	label := string(activity.Verdict)
	cmd := m.showToast("Verified: "+label+" ("+strconv.Itoa(activity.Score)+"/100)", toastSuccess)
	return m, cmd
}

// testConnection runs a one-off, user-initiated health probe.
func (m Model) testConnection() tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		return connTestMsg{err: client.Health(cctx)}
	}
}

// resizeComponents propagates the window size to inputs and viewports.
func (m *Model) resizeComponents() {
	inner := m.width - 8
	if inner < 20 {
		inner = 20
	}
	m.verifyInput.Width = inner
	m.palette.input.Width = paletteWidth - 6
	m.searchBox.input.Width = inner
	m.historyViewport.Width = m.width
	m.historyViewport.Height = m.contentHeight()
}

// contentHeight is the height left for the main view between the header,
// command bar, and status line.
func (m Model) contentHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) initHistoryViewport() {
	m.historyViewport = viewport.New(m.width, m.contentHeight())
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type verifyDoneMsg struct {
	activity state.Activity
	err      error
}

type connTestMsg struct {
	err error
}

// surface identifies a debounce owner.
type surface int

const (
	surfacePalette surface = iota
	surfaceSearchBox
)

type debounceMsg struct {
	surface surface
	version int
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func debounceCmd(s surface, version int) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceMsg{surface: s, version: version}
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
