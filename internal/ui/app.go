package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cardstock/internal/card"
	"github.com/five82/cardstock/internal/export"
	"github.com/five82/cardstock/internal/logger"
	"github.com/five82/cardstock/internal/prefs"
	"github.com/five82/cardstock/internal/preset"
	"github.com/five82/cardstock/internal/state"
)

// Editor is the editing surface the UI drives.
type Editor interface {
	RequestUpdate(p card.Patch, immediate bool) error
	Undo() card.Card
	Redo() card.Card
	Flush() bool
	Current() card.Card
	Preview() card.Card
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Editor    Editor
	Store     *state.Store
	Presets   *preset.Library
	ExportDir string
	Clipboard export.Clipboard
	ThemeName string
	Panel     string
	PrefsPath string
	Now       func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	editor    Editor
	store     *state.Store
	presets   *preset.Library
	exportDir string
	clipboard export.Clipboard
	prefsPath string
	now       func() time.Time

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	width    int
	height   int
	ready    bool
	showHelp bool
	modal    Modal

	// Panels
	panels    []panel
	panelIdx  int
	fieldIdx  []int // selected field per panel
	presetIdx int

	// Data state
	snapshot state.Snapshot

	// Status line
	flash    string
	flashErr bool
	flashAt  time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	clip := opts.Clipboard
	if clip == nil {
		clip = export.SystemClipboard{}
	}

	lib := opts.Presets
	if lib == nil {
		lib = preset.NewLibrary(preset.Builtins())
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	theme := GetTheme(themeName)
	panels := editorPanels()
	return Model{
		ctx:       ctx,
		editor:    opts.Editor,
		store:     store,
		presets:   lib,
		exportDir: opts.ExportDir,
		clipboard: clip,
		prefsPath: prefsPath,
		now:       now,
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      newHelp(theme),
		panels:    panels,
		panelIdx:  panelIndex(panels, opts.Panel),
		fieldIdx:  make([]int, len(panels)),
		snapshot:  store.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(DefaultUIInterval),
		fetchSnapshotCmd(m.store),
		waitForChangeCmd(m.ctx, m.store),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		if m.flash != "" && m.now().Sub(m.flashAt) > FlashDuration {
			m.flash = ""
			m.flashErr = false
		}
		return m, tickCmd(DefaultUIInterval)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case changedMsg:
		m.snapshot = state.Snapshot(msg)
		return m, waitForChangeCmd(m.ctx, m.store)

	case exportedMsg:
		if msg.err != nil {
			m.store.RecordError(msg.err)
			m.setFlash(fmt.Sprintf("Export failed: %v", msg.err), true)
		} else {
			m.store.RecordError(nil)
			m.setFlash("Exported to "+msg.path, false)
		}
		m.refresh()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.setFlash(fmt.Sprintf("Copy failed: %v", msg.err), true)
		} else {
			m.setFlash("Copied card JSON to clipboard", false)
		}
		return m, nil
	}

	if m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		return m.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.editor != nil && m.editor.Flush() {
			logger.Debugf("flushed pending update before quit")
		}
		m.savePrefs()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.help = newHelp(m.theme)
		m.help.Width = m.width
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		if m.editor == nil {
			return m, nil
		}
		if !m.snapshot.CanUndo && !m.snapshot.Pending {
			m.setFlash("Nothing to undo", false)
			return m, nil
		}
		m.editor.Undo()
		m.refresh()
		m.setFlash("Undo", false)
		return m, nil

	case key.Matches(msg, m.keys.Redo):
		if m.editor == nil {
			return m, nil
		}
		if !m.snapshot.CanRedo {
			m.setFlash("Nothing to redo", false)
			return m, nil
		}
		m.editor.Redo()
		m.refresh()
		m.setFlash("Redo", false)
		return m, nil

	case key.Matches(msg, m.keys.Export):
		if m.editor == nil {
			return m, nil
		}
		return m, exportCmd(m.exportDir, m.flushed(), m.now())

	case key.Matches(msg, m.keys.Copy):
		if m.editor == nil {
			return m, nil
		}
		return m, copyCmd(m.clipboard, m.flushed(), m.now())

	case key.Matches(msg, m.keys.NextPanel):
		m.panelIdx = (m.panelIdx + 1) % len(m.panels)
		return m, nil

	case key.Matches(msg, m.keys.PrevPanel):
		m.panelIdx = (m.panelIdx - 1 + len(m.panels)) % len(m.panels)
		return m, nil
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		if idx := int(s[0] - '1'); idx < len(m.panels) {
			m.panelIdx = idx
		}
		return m, nil
	}

	if m.currentPanel().name == presetsPanel {
		return m.handlePresetsKey(msg)
	}
	return m.handleFieldKey(msg)
}

// handleFieldKey edits the selected field of the current panel.
func (m Model) handleFieldKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := m.currentPanel().fields
	if len(fields) == 0 || m.editor == nil {
		return m, nil
	}
	idx := &m.fieldIdx[m.panelIdx]

	switch {
	case key.Matches(msg, m.keys.Up):
		if *idx > 0 {
			*idx--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if *idx < len(fields)-1 {
			*idx++
		}
		return m, nil
	}

	f := fields[*idx]
	step := 0
	switch {
	case key.Matches(msg, m.keys.Decrease):
		step = -1
	case key.Matches(msg, m.keys.Increase):
		step = 1
	case key.Matches(msg, m.keys.DecreaseMore):
		step = -10
	case key.Matches(msg, m.keys.IncreaseMore):
		step = 10
	case key.Matches(msg, m.keys.Activate):
		return m.activate(f)
	default:
		return m, nil
	}

	switch f.kind {
	case kindNumber:
		// Continuous input builds on what the user already sees.
		if p, ok := f.nudge(m.editor.Preview(), step); ok {
			m.request(p, false)
		}
	case kindChoice:
		dir := 1
		if step < 0 {
			dir = -1
		}
		if p, ok := f.cycle(m.editor.Current(), dir); ok {
			m.request(p, true)
		}
	case kindToggle:
		m.request(f.toggle(m.editor.Current()), true)
	}
	return m, nil
}

// activate handles enter/space on a field.
func (m Model) activate(f field) (tea.Model, tea.Cmd) {
	switch f.kind {
	case kindToggle:
		m.request(f.toggle(m.editor.Current()), true)
		m.setFlash(describeField(f, m.editor.Current()), false)
	case kindChoice:
		if p, ok := f.cycle(m.editor.Current(), 1); ok {
			m.request(p, true)
		}
	case kindText, kindColor:
		m.modal = newInputModal(f.label, f.text(m.editor.Current()), f.kind == kindColor)
		return m, textinput.Blink
	}
	return m, nil
}

// handleModalKey routes keys to the open modal and applies a confirmed edit.
func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd, closed := m.modal.Update(msg, m.keys)
	if !closed {
		m.modal = next
		return m, cmd
	}
	m.modal = nil

	im, ok := next.(*inputModal)
	if !ok || !im.confirmed || m.editor == nil {
		return m, cmd
	}
	f := m.currentField()
	if f == nil || f.setText == nil {
		return m, cmd
	}
	if f.text(m.editor.Current()) == im.Value() {
		return m, cmd
	}
	m.request(f.setText(m.editor.Current(), im.Value()), true)
	return m, cmd
}

// handlePresetsKey browses and applies presets.
func (m Model) handlePresetsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	all := m.presets.All()
	if len(all) == 0 {
		return m, nil
	}
	if m.presetIdx >= len(all) {
		m.presetIdx = len(all) - 1
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.presetIdx > 0 {
			m.presetIdx--
		}
	case key.Matches(msg, m.keys.Down):
		if m.presetIdx < len(all)-1 {
			m.presetIdx++
		}
	case key.Matches(msg, m.keys.Activate), key.Matches(msg, m.keys.Increase):
		if m.editor == nil {
			return m, nil
		}
		p := all[m.presetIdx]
		if m.request(p.Patch, true) {
			m.setFlash("Applied preset "+p.Name, false)
		}
	}
	return m, nil
}

// request forwards an update to the editor and reports whether it was
// accepted.
func (m *Model) request(p card.Patch, immediate bool) bool {
	if err := m.editor.RequestUpdate(p, immediate); err != nil {
		m.setFlash(err.Error(), true)
		return false
	}
	m.refresh()
	return true
}

// flushed commits any pending batch and returns the committed card, so an
// export always matches a history entry.
func (m *Model) flushed() card.Card {
	if m.editor.Flush() {
		m.refresh()
	}
	return m.editor.Current()
}

func (m *Model) refresh() {
	m.snapshot = m.store.Snapshot()
}

func (m *Model) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashErr = isErr
	m.flashAt = m.now()
}

func (m Model) currentPanel() panel {
	return m.panels[m.panelIdx]
}

func (m Model) currentField() *field {
	fields := m.currentPanel().fields
	if len(fields) == 0 {
		return nil
	}
	return &fields[m.fieldIdx[m.panelIdx]]
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Panel: m.currentPanel().name}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		logger.Warnf("save prefs: %v", err)
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	styles := m.theme.Styles()

	header := m.renderHeader(styles)
	tabs := m.renderTabs(styles)
	status := m.renderStatus(styles)
	footer := styles.Footer.Width(m.width).Render(m.help.View(m.keys))

	bodyHeight := max(3, m.height-chromeHeight)
	var body string
	if m.width < LayoutCompactWidth {
		panelView := m.renderPanel(styles, m.width-2)
		previewHeight := max(3, bodyHeight-lipgloss.Height(panelView))
		body = lipgloss.JoinVertical(lipgloss.Left, panelView, m.renderPreviewPane(styles, m.width, previewHeight))
	} else {
		panelView := m.renderPanel(styles, PanelWidth)
		previewWidth := max(12, m.width-lipgloss.Width(panelView)-2)
		body = lipgloss.JoinHorizontal(lipgloss.Top, panelView, "  ", m.renderPreviewPane(styles, previewWidth, bodyHeight))
	}

	return strings.Join([]string{header, tabs, body, status, footer}, "\n")
}

func (m Model) renderHeader(styles Styles) string {
	snap := m.snapshot
	parts := []string{styles.Logo.Render("cardstock")}
	parts = append(parts, styles.Badge("history").Render(fmt.Sprintf("%d/%d", snap.Cursor+1, max(1, snap.Entries))))
	if snap.Pending {
		parts = append(parts, styles.Badge("pending").Render("editing"))
	}
	if snap.LastError != nil {
		parts = append(parts, styles.Badge("error").Render("error"))
	}
	title := snap.Preview.Title
	if title == "" {
		title = "untitled"
	}
	parts = append(parts, styles.MutedText.Render(truncate(title, 30)))
	parts = append(parts, styles.FaintText.Render(m.theme.Name))
	return styles.Header.Width(m.width).Render(strings.Join(parts, " "))
}

func (m Model) renderTabs(styles Styles) string {
	tabs := make([]string, 0, len(m.panels))
	for i, p := range m.panels {
		label := fmt.Sprintf("%d %s", i+1, p.name)
		if i == m.panelIdx {
			tabs = append(tabs, styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderPanel(styles Styles, width int) string {
	p := m.currentPanel()
	c := m.snapshot.Preview

	var lines []string
	if p.name == presetsPanel {
		for i, pr := range m.presets.All() {
			line := padRight(truncate(pr.Name, 12), 12) + " " + styles.FaintText.Render(truncate(pr.Description, width-18))
			if i == m.presetIdx {
				line = styles.Selected.Render(padRight(truncate(pr.Name, 12), 12) + " " + truncate(pr.Description, width-18))
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			lines = append(lines, styles.FaintText.Render("No presets"))
		}
	} else {
		selected := m.fieldIdx[m.panelIdx]
		for i, f := range p.fields {
			value := truncate(f.value(c), width-20)
			if f.kind == kindColor {
				value = lipgloss.NewStyle().Background(lipgloss.Color(f.text(c))).Render("  ") + " " + value
			}
			if i == selected {
				lines = append(lines, styles.Selected.Render(padRight(f.label, 15))+" "+styles.FieldValue.Bold(true).Render(value))
				continue
			}
			lines = append(lines, styles.FieldLabel.Render(padRight(f.label, 15))+" "+styles.FieldValue.Render(value))
		}
	}

	content := styles.PanelTitle.Render(p.name) + "\n" + strings.Join(lines, "\n")
	return styles.Panel.
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Width(width).
		Render(content)
}

func (m Model) renderPreviewPane(styles Styles, width, height int) string {
	c := m.snapshot.Preview
	preview := renderPreview(c, m.theme.Background, width, max(3, height-1))
	info := styles.FaintText.Render(fmt.Sprintf("%d×%d px · rotate %d° · scale %.2f · skew %d/%d",
		c.Width, c.Height, c.Transform.Rotate, c.Transform.Scale, c.Transform.SkewX, c.Transform.SkewY))
	return lipgloss.JoinVertical(lipgloss.Left, preview, info)
}

func (m Model) renderStatus(styles Styles) string {
	bg := NewBgStyle(m.theme.Surface)
	var text string
	switch {
	case m.flash != "" && m.flashErr:
		text = bg.Render(m.flash, styles.DangerText)
	case m.flash != "":
		text = bg.Render(m.flash, styles.SuccessText)
	case m.snapshot.LastError != nil:
		text = bg.Render(m.snapshot.LastError.Error(), styles.DangerText)
	case !m.snapshot.LastCommit.IsZero():
		ago := m.now().Sub(m.snapshot.LastCommit).Round(time.Second)
		text = bg.Render(fmt.Sprintf("Last change %s ago", ago), styles.MutedText)
	default:
		text = bg.Render("No changes yet", styles.MutedText)
	}
	return bg.FillLine(bg.Space()+text, m.width)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// changedMsg is a snapshot delivered by the store's change channel.
type changedMsg state.Snapshot

type exportedMsg struct {
	path string
	err  error
}

type copiedMsg struct {
	err error
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

// waitForChangeCmd blocks until the store changes, so commits made by the
// debounce timer reach the screen without polling.
func waitForChangeCmd(ctx context.Context, store *state.Store) tea.Cmd {
	ch := store.Changes()
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-ch:
			return changedMsg(store.Snapshot())
		}
	}
}

func exportCmd(dir string, c card.Card, now time.Time) tea.Cmd {
	return func() tea.Msg {
		path, err := export.WriteFile(dir, c, now)
		if err != nil {
			logger.Errorf("export failed: %v", err)
		} else {
			logger.Infof("exported card %s to %s", c.ID, path)
		}
		return exportedMsg{path: path, err: err}
	}
}

func copyCmd(cb export.Clipboard, c card.Card, now time.Time) tea.Cmd {
	return func() tea.Msg {
		err := export.Copy(cb, c, now)
		if err != nil {
			logger.Warnf("clipboard copy failed: %v", err)
		}
		return copiedMsg{err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
