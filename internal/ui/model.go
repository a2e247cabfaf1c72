// Package ui is the interactive viewer: a tree pane, an editor pane and an
// optional raw source pane, driven by one root model that owns the loaded
// session and routes input by mode and focus.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jsonexplorer/internal/document"
	"github.com/oakwood-commons/jsonexplorer/internal/editor"
	"github.com/oakwood-commons/jsonexplorer/internal/navigator"
	"github.com/oakwood-commons/jsonexplorer/internal/session"
	"github.com/oakwood-commons/jsonexplorer/internal/ui/editors"
	"github.com/oakwood-commons/jsonexplorer/internal/ui/rawview"
	"github.com/oakwood-commons/jsonexplorer/internal/ui/theme"
	"github.com/oakwood-commons/jsonexplorer/internal/ui/treeview"
	"github.com/oakwood-commons/jsonexplorer/internal/watch"
	"github.com/oakwood-commons/jsonexplorer/pkg/logger"
)

// Mode controls how key presses are routed.
type Mode int

const (
	// NormalMode sends keys to the global bindings, then the focused pane.
	NormalMode Mode = iota
	// PromptMode sends keys to the open-file or go-to-path prompt.
	PromptMode
	// HelpMode shows the help overlay until it is dismissed.
	HelpMode
)

// promptKind says what a submitted prompt does.
type promptKind int

const (
	promptOpen promptKind = iota
	promptGoto
)

func (m Mode) String() string {
	switch m {
	case NormalMode:
		return "normal"
	case PromptMode:
		return "prompt"
	case HelpMode:
		return "help"
	default:
		return "unknown"
	}
}

// Options configures a Model.
type Options struct {
	// Path is loaded on start when set.
	Path string
	// Session holds the loaded document; a default one is created if nil.
	Session     *session.Session
	Theme       theme.Theme
	ExpandDepth int
	ShowRaw     bool
	// Watch reloads the current file when it changes on disk.
	Watch    bool
	Debounce time.Duration
	// Width and Height force the window size; zero detects it.
	Width     int
	Height    int
	StartKeys []string
}

// Model is the root model.
type Model struct {
	ctx  context.Context
	mode Mode
	sess *session.Session
	snap *session.Snapshot
	path string

	tree   *treeview.Model
	editor *editors.Model
	raw    *rawview.Model
	prompt textinput.Model
	asking promptKind
	help   help.Model
	keys   KeyMap
	status StatusModel
	theme  theme.Theme

	focus       PaneID
	selPath     string
	showRaw     bool
	expandDepth int

	watchEnabled bool
	debounce     time.Duration
	watcher      *watch.Watcher

	// syncLoads applies loads inline instead of returning a command. Used
	// while replaying startup keys and rendering snapshots.
	syncLoads bool
	// loadSeq numbers load requests; only the latest one may commit.
	loadSeq uint64

	width    int
	height   int
	quitting bool
}

// New builds the root model. Nothing is loaded until Init or Preload.
func New(ctx context.Context, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	sess := opts.Session
	if sess == nil {
		sess = session.New()
	}

	ti := textinput.New()
	ti.SetWidth(60)

	m := &Model{
		ctx:          ctx,
		sess:         sess,
		path:         strings.TrimSpace(opts.Path),
		tree:         treeview.New(opts.Theme),
		editor:       editors.New(opts.Theme),
		raw:          rawview.New(opts.Theme),
		prompt:       ti,
		help:         help.New(),
		keys:         DefaultKeyMap(),
		showRaw:      opts.ShowRaw,
		expandDepth:  opts.ExpandDepth,
		watchEnabled: opts.Watch,
		debounce:     opts.Debounce,
		width:        80,
		height:       24,
	}
	m.applyTheme(opts.Theme)
	m.editor.Unbind("No document loaded")
	m.tree.Focus()
	m.layout()
	return m
}

func (m *Model) applyTheme(th theme.Theme) {
	m.theme = th
	m.tree.SetTheme(th)
	m.editor.SetTheme(th)
	m.raw.SetTheme(th)

	styles := help.Styles{}
	if !th.NoColor {
		styles.ShortKey = theme.Fg(th.HelpKey)
		styles.ShortDesc = theme.Fg(th.HelpValue)
		styles.ShortSeparator = theme.Fg(th.Guide)
		styles.FullKey = theme.Fg(th.HelpKey)
		styles.FullDesc = theme.Fg(th.HelpValue)
		styles.FullSeparator = theme.Fg(th.Guide)
		styles.Ellipsis = theme.Fg(th.Guide)
	}
	m.help.Styles = styles
}

// Mode returns the current input mode.
func (m *Model) Mode() Mode { return m.mode }

// Focus returns the focused pane.
func (m *Model) Focus() PaneID { return m.focus }

// Snapshot returns the displayed document, if any.
func (m *Model) Snapshot() *session.Snapshot { return m.snap }

// Status returns the status bar text.
func (m *Model) Status() string { return m.status.Text }

// Tree returns the tree pane.
func (m *Model) Tree() *treeview.Model { return m.tree }

// Editor returns the editor pane.
func (m *Model) Editor() *editors.Model { return m.editor }

// ShowRaw reports whether the raw pane is visible.
func (m *Model) ShowRaw() bool { return m.showRaw }

// Preload loads the start path synchronously, so the first frame already
// shows the document.
func (m *Model) Preload() {
	if m.path == "" || m.snap != nil {
		return
	}
	prev := m.syncLoads
	m.syncLoads = true
	m.load(m.path, false)
	m.syncLoads = prev
}

// Init starts the initial load unless Preload already ran, and the file
// watcher when enabled.
func (m *Model) Init() tea.Cmd {
	if m.snap == nil && m.path != "" {
		return m.load(m.path, false)
	}
	return m.waitForChange()
}

// Update handles messages and routes them by mode and focus.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case docLoadedMsg:
		return m, m.onLoaded(msg)

	case loadFailedMsg:
		return m, m.onLoadFailed(msg)

	case fileChangedMsg:
		return m, m.onFileChanged(msg)

	case clearStatusMsg:
		m.status.Clear(msg)
		return m, nil

	case editors.OpenRefMsg:
		if m.tree.SelectRef(msg.Ref) {
			cmd := m.setFocus(TreePane)
			m.onSelect()
			return m, cmd
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	// Everything else (cursor blink and the like) goes to whichever input
	// is active.
	var cmd tea.Cmd
	if m.mode == PromptMode {
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	if m.focus == EditorPane {
		_, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.mode {
	case HelpMode:
		if key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Quit) {
			m.mode = NormalMode
			m.help.ShowAll = false
		}
		return m, nil

	case PromptMode:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.closePrompt()
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			input := strings.TrimSpace(m.prompt.Value())
			m.closePrompt()
			if m.asking == promptGoto {
				return m, m.gotoPath(input)
			}
			if input == "" {
				return m, nil
			}
			return m, m.load(input, false)
		}
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	// Text fields in the editor swallow printable keys, so only the
	// non-printing globals apply while one has focus.
	typing := m.editorCapturesText()

	switch {
	case key.Matches(msg, m.keys.NextPane):
		return m, m.cycleFocus(1)
	case key.Matches(msg, m.keys.PrevPane):
		return m, m.cycleFocus(-1)
	case key.Matches(msg, m.keys.Reload):
		if m.path == "" {
			return m, m.status.Set(StatusInfo, "Nothing to reload")
		}
		return m, m.load(m.path, true)
	case key.Matches(msg, m.keys.Cancel):
		if m.focus != TreePane {
			return m, m.setFocus(TreePane)
		}
		return m, nil
	}

	if !typing {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Open):
			return m, m.openPrompt(promptOpen)
		case key.Matches(msg, m.keys.Goto):
			return m, m.openPrompt(promptGoto)
		case key.Matches(msg, m.keys.ToggleRaw):
			m.toggleRaw()
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			return m, m.copySelected()
		case key.Matches(msg, m.keys.CopyPath):
			return m, m.copyPath()
		case key.Matches(msg, m.keys.Help):
			m.mode = HelpMode
			m.help.ShowAll = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case TreePane:
		before := m.tree.Selected()
		_, cmd = m.tree.Update(msg)
		if m.tree.Selected() != before {
			m.onSelect()
		}
	case EditorPane:
		_, cmd = m.editor.Update(msg)
	case RawPane:
		_, cmd = m.raw.Update(msg)
	}
	return m, cmd
}

func (m *Model) editorCapturesText() bool {
	if m.focus != EditorPane || !m.editor.Bound() {
		return false
	}
	slot := m.editor.Active()
	return slot == editor.SlotNumber || slot == editor.SlotString
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.closeWatcher()
	return m, tea.Quit
}

func (m *Model) openPrompt(kind promptKind) tea.Cmd {
	m.mode = PromptMode
	m.asking = kind
	if kind == promptGoto {
		m.prompt.Prompt = "Go to: "
		m.prompt.Placeholder = "$.items[0].name"
		m.prompt.SetValue(m.selPath)
	} else {
		m.prompt.Prompt = "Open: "
		m.prompt.Placeholder = "path/to/file.json"
		m.prompt.SetValue(m.path)
	}
	m.layout()
	m.prompt.CursorEnd()
	return m.prompt.Focus()
}

func (m *Model) closePrompt() {
	m.mode = NormalMode
	m.prompt.Blur()
}

func (m *Model) toggleRaw() {
	m.showRaw = !m.showRaw
	if !m.showRaw && m.focus == RawPane {
		m.setFocus(TreePane)
	}
	m.layout()
}

// panes lists the focus cycle in order. The raw pane takes part only while
// visible.
func (m *Model) panes() []PaneID {
	if m.showRaw {
		return []PaneID{TreePane, EditorPane, RawPane}
	}
	return []PaneID{TreePane, EditorPane}
}

func (m *Model) pane(id PaneID) Pane {
	switch id {
	case EditorPane:
		return m.editor
	case RawPane:
		return m.raw
	default:
		return m.tree
	}
}

func (m *Model) cycleFocus(step int) tea.Cmd {
	order := m.panes()
	idx := 0
	for i, id := range order {
		if id == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + step + len(order)) % len(order)
	return m.setFocus(order[idx])
}

func (m *Model) setFocus(id PaneID) tea.Cmd {
	for _, p := range []PaneID{TreePane, EditorPane, RawPane} {
		if p != id {
			m.pane(p).Blur()
		}
	}
	m.focus = id
	return m.pane(id).Focus()
}

// onSelect binds the editor to the node under the tree cursor.
func (m *Model) onSelect() {
	n := m.tree.Selected()
	m.selPath = ""
	if n == nil {
		m.editor.Unbind("No document loaded")
		return
	}
	if steps, err := navigator.StepsFor(m.sess, m.tree.Trail()); err == nil {
		m.selPath = navigator.Format(steps)
	}
	v, err := m.sess.Resolve(n.Ref)
	if err != nil {
		logger.FromContext(m.ctx).Error(err, "resolving selection failed", "ref", n.Ref.String())
		m.editor.Unbind("Selection is out of date")
		return
	}
	if err := m.editor.Bind(v, n.Label); err != nil {
		logger.FromContext(m.ctx).V(1).Info("no editor for selection", "kind", v.Kind().String())
	}
}

func (m *Model) copySelected() tea.Cmd {
	n := m.tree.Selected()
	if n == nil {
		return m.status.Set(StatusInfo, "Nothing to copy")
	}
	v, err := m.sess.Resolve(n.Ref)
	if err != nil {
		return m.status.Set(StatusError, "Copy failed: "+err.Error())
	}
	data, err := document.Marshal(v, "  ")
	if err != nil {
		return m.status.Set(StatusError, "Copy failed: "+err.Error())
	}
	if err := CopyToClipboard(string(data)); err != nil {
		logger.FromContext(m.ctx).Error(err, "clipboard write failed")
		return m.status.Set(StatusError, "Copy failed: "+err.Error())
	}
	return m.status.Set(StatusSuccess, fmt.Sprintf("Copied %s (%d bytes)", n.Label, len(data)))
}

// gotoPath selects the value at a path typed into the prompt.
func (m *Model) gotoPath(input string) tea.Cmd {
	if m.snap == nil {
		return m.status.Set(StatusInfo, "No document loaded")
	}
	steps, err := navigator.ParsePath(input)
	if err != nil {
		return m.status.Set(StatusError, err.Error())
	}
	v, err := navigator.Resolve(m.snap.Document.Root(), steps)
	if err != nil {
		return m.status.Set(StatusError, err.Error())
	}
	if !m.tree.SelectRef(v.Ref()) {
		return m.status.Set(StatusError, "Selection is out of date")
	}
	cmd := m.setFocus(TreePane)
	m.onSelect()
	return tea.Batch(cmd, m.status.Set(StatusInfo, "At "+m.selPath))
}

func (m *Model) copyPath() tea.Cmd {
	if m.tree.Selected() == nil || m.selPath == "" {
		return m.status.Set(StatusInfo, "Nothing to copy")
	}
	if err := CopyToClipboard(m.selPath); err != nil {
		logger.FromContext(m.ctx).Error(err, "clipboard write failed")
		return m.status.Set(StatusError, "Copy failed: "+err.Error())
	}
	return m.status.Set(StatusSuccess, "Copied path "+m.selPath)
}

// SelectedPath returns the path of the selected value, "" when nothing is
// selected.
func (m *Model) SelectedPath() string { return m.selPath }

// View renders the whole screen in the alternate buffer.
func (m *Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}
