package ui

import (
	"errors"
	"fmt"
	"path/filepath"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jsonexplorer/internal/session"
	"github.com/oakwood-commons/jsonexplorer/internal/watch"
	"github.com/oakwood-commons/jsonexplorer/pkg/logger"
)

// docLoadedMsg carries a prepared, not yet committed, snapshot.
type docLoadedMsg struct {
	seq    uint64
	snap   *session.Snapshot
	reload bool
}

// loadFailedMsg reports a load that left the current document in place.
type loadFailedMsg struct {
	seq  uint64
	path string
	err  error
}

// fileChangedMsg is sent by the watcher.
type fileChangedMsg struct {
	path string
}

// loadCmd reads and parses path off the update loop. The session is only
// changed when the result arrives back in Update. Each request takes the
// next sequence number; results of superseded requests are dropped.
func (m *Model) loadCmd(path string, reload bool) tea.Cmd {
	m.loadSeq++
	seq := m.loadSeq
	ctx := m.ctx
	sess := m.sess
	return func() tea.Msg {
		snap, err := sess.Prepare(ctx, path)
		if err != nil {
			return loadFailedMsg{seq: seq, path: path, err: err}
		}
		return docLoadedMsg{seq: seq, snap: snap, reload: reload}
	}
}

// stale reports whether a newer load was requested after seq.
func (m *Model) stale(seq uint64, path string) bool {
	if seq == m.loadSeq {
		return false
	}
	logger.FromContext(m.ctx).V(1).Info("dropping superseded load", logger.PathKey, path)
	return true
}

// load starts a load, or performs it inline when syncLoads is set.
func (m *Model) load(path string, reload bool) tea.Cmd {
	cmd := m.loadCmd(path, reload)
	if !m.syncLoads {
		return cmd
	}
	switch msg := cmd().(type) {
	case docLoadedMsg:
		return m.onLoaded(msg)
	case loadFailedMsg:
		return m.onLoadFailed(msg)
	}
	return nil
}

func (m *Model) onLoaded(msg docLoadedMsg) tea.Cmd {
	if m.stale(msg.seq, msg.snap.Path) {
		return nil
	}
	snap := m.sess.Commit(msg.snap)
	m.snap = snap
	m.path = snap.Path

	m.tree.SetRoot(snap.Root, m.expandDepth)
	m.raw.SetContent(snap.Raw)
	m.onSelect()

	verb := "Loaded"
	if msg.reload {
		verb = "Reloaded"
	}
	cmds := []tea.Cmd{
		m.status.Set(StatusSuccess, fmt.Sprintf("%s %s (%d nodes)", verb, snap.Path, snap.Root.Count())),
	}
	if cmd := m.ensureWatcher(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) onLoadFailed(msg loadFailedMsg) tea.Cmd {
	if m.stale(msg.seq, msg.path) {
		return nil
	}
	lgr := logger.FromContext(m.ctx)
	var le *session.LoadError
	if errors.As(msg.err, &le) {
		lgr.V(1).Info("load rejected", logger.PathKey, msg.path, logger.ErrorKind, string(le.Kind))
	} else {
		lgr.Error(msg.err, "load failed", logger.PathKey, msg.path)
	}
	return m.status.Set(StatusError, session.UserMessage(msg.err))
}

func (m *Model) onFileChanged(msg fileChangedMsg) tea.Cmd {
	if m.watcher == nil || msg.path != m.watcher.Path() {
		// from a watcher that has since been replaced
		return nil
	}
	return tea.Batch(m.load(m.path, true), m.waitForChange())
}

// ensureWatcher points the watcher at the current path, returning the
// command that waits for its first change when a new watcher was started.
func (m *Model) ensureWatcher() tea.Cmd {
	if !m.watchEnabled || m.path == "" {
		return nil
	}
	abs, err := filepath.Abs(m.path)
	if err == nil && m.watcher != nil && m.watcher.Path() == filepath.Clean(abs) {
		return nil
	}
	m.closeWatcher()
	w, err := watch.New(m.ctx, m.path, m.debounce)
	if err != nil {
		logger.FromContext(m.ctx).Error(err, "starting file watcher failed", logger.PathKey, m.path)
		return m.status.Set(StatusError, "Watch failed: "+err.Error())
	}
	m.watcher = w
	if m.syncLoads {
		// Init picks up the first wait once the program runs.
		return nil
	}
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	w := m.watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-w.Changes()
		if !ok {
			return nil
		}
		return fileChangedMsg{path: path}
	}
}

func (m *Model) closeWatcher() {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Close(); err != nil {
		logger.FromContext(m.ctx).V(1).Info("closing file watcher", "error", err.Error())
	}
	m.watcher = nil
}
