// Package app contains the root Bubble Tea model of the terminal host and
// the session that stands in for a native window.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/menubar/internal/cachemanager"
	"github.com/zjrosen/menubar/internal/config"
	"github.com/zjrosen/menubar/internal/keys"
	"github.com/zjrosen/menubar/internal/log"
	"github.com/zjrosen/menubar/internal/menu"
	"github.com/zjrosen/menubar/internal/menufile"
	"github.com/zjrosen/menubar/internal/pubsub"
	"github.com/zjrosen/menubar/internal/ui/menubar"
	"github.com/zjrosen/menubar/internal/ui/overlay"
	"github.com/zjrosen/menubar/internal/ui/styles"
	"github.com/zjrosen/menubar/internal/watcher"
)

const historySize = 6

// ReloadEvent is published after every template reload attempt.
type ReloadEvent struct {
	Path  string
	Items int
	Err   error
}

// reloadRequestMsg asks the model to recompile the template.
type reloadRequestMsg struct {
	flushCache bool
	reason     string
}

// templateChangedMsg is sent when the watcher reports a change.
type templateChangedMsg struct{}

// Deps are the collaborators the model drives.
type Deps struct {
	Session    *Session
	Compiler   *menu.Compiler
	Dispatcher *menu.Dispatcher
	// AccelCache is flushed by force reload. May be nil.
	AccelCache cachemanager.CacheManager[string, string]
	// Watcher reports template changes. May be nil.
	Watcher *watcher.Watcher
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string

	session    *Session
	compiler   *menu.Compiler
	dispatcher *menu.Dispatcher
	accelCache cachemanager.CacheManager[string, string]
	bar        menubar.Model

	width, height int
	status        string
	statusErr     bool
	history       []string

	ctx             context.Context
	cancel          context.CancelFunc
	commandListener *pubsub.ContinuousListener[menu.CommandEvent]
	reloads         *pubsub.Broker[ReloadEvent]
	reloadListener  *pubsub.ContinuousListener[ReloadEvent]
	requests        chan reloadRequestMsg
	watcher         *watcher.Watcher
	watchCh         <-chan struct{}
}

// New builds the root model around an already compiled menu.
func New(cfg config.Config, configPath string, root *menu.Menu, deps Deps) Model {
	ctx, cancel := context.WithCancel(context.Background())
	reloads := pubsub.NewBroker[ReloadEvent]()

	m := Model{
		cfg:             cfg,
		configPath:      configPath,
		session:         deps.Session,
		compiler:        deps.Compiler,
		dispatcher:      deps.Dispatcher,
		accelCache:      deps.AccelCache,
		bar:             menubar.New(root, deps.Dispatcher).SetShowAccelerators(cfg.UI.ShowAccelerators),
		ctx:             ctx,
		cancel:          cancel,
		commandListener: pubsub.NewContinuousListener(ctx, deps.Dispatcher.Events()),
		reloads:         reloads,
		reloadListener:  pubsub.NewContinuousListener(ctx, reloads),
		requests:        make(chan reloadRequestMsg, 1),
		status:          keys.Hint(keys.Menu.Open, keys.App.ToggleAccelerators, keys.App.Quit),
	}

	requests := m.requests
	deps.Session.OnReload(func(ignoreCache bool) {
		select {
		case requests <- reloadRequestMsg{flushCache: ignoreCache, reason: "reload"}:
		default:
		}
	})

	if deps.Watcher != nil {
		ch, err := deps.Watcher.Start()
		if err != nil {
			log.ErrorErr(log.CatWatcher, "template watcher not started", err)
			_ = deps.Watcher.Stop()
		} else {
			m.watcher = deps.Watcher
			m.watchCh = ch
		}
	}
	return m
}

// Init starts the listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.commandListener.Listen(),
		m.reloadListener.Listen(),
		m.waitForRequest(),
	}
	if m.watchCh != nil {
		cmds = append(cmds, m.waitForChange())
	}
	return tea.Batch(cmds...)
}

func (m Model) waitForRequest() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return nil
		case req := <-m.requests:
			return req
		}
	}
}

func (m Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return nil
		case _, ok := <-m.watchCh:
			if !ok {
				return nil
			}
			return templateChangedMsg{}
		}
	}
}

// Close stops listeners and the watcher.
func (m Model) Close() {
	m.cancel()
	m.reloads.Close()
	if m.watcher != nil {
		_ = m.watcher.Stop()
	}
}

// Bar exposes the menu bar, mainly for tests.
func (m Model) Bar() menubar.Model { return m.bar }

// Status returns the status line text.
func (m Model) Status() string { return m.status }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.bar = m.bar.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.bar, cmd = m.bar.Update(msg)
		return m, cmd

	case menubar.ActivatedMsg:
		if m.session.Snapshot().Quit {
			m.Close()
			return m, tea.Quit
		}
		if !msg.Handled {
			m.setStatus(fmt.Sprintf("%s: nothing to do", msg.Label), false)
		}
		return m, nil

	case menubar.ShowErrorMsg:
		m.setStatus(msg.Err.Error(), true)
		return m, nil

	case pubsub.Event[menu.CommandEvent]:
		m.recordCommand(msg)
		return m, m.commandListener.Listen()

	case pubsub.Event[ReloadEvent]:
		if msg.Payload.Err != nil {
			m.setStatus("reload failed: "+msg.Payload.Err.Error(), true)
		} else {
			m.setStatus(fmt.Sprintf("reloaded %s (%d items)", templateName(msg.Payload.Path), msg.Payload.Items), false)
		}
		return m, m.reloadListener.Listen()

	case reloadRequestMsg:
		m = m.reload(msg)
		return m, m.waitForRequest()

	case templateChangedMsg:
		m = m.reload(reloadRequestMsg{reason: "template changed"})
		return m, m.waitForChange()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.App.Quit) {
		m.Close()
		return m, tea.Quit
	}

	if m.session.Snapshot().Closed {
		if key.Matches(msg, keys.App.Reopen) {
			m.session.Reopen()
			m.setStatus("window reopened", false)
		}
		return m, nil
	}

	if !m.bar.IsOpen() {
		if _, bound := m.bar.BoundCommand(msg.String()); !bound {
			if key.Matches(msg, keys.App.ToggleAccelerators) {
				m.toggleAccelerators()
				return m, nil
			}
			switch msg.Type {
			case tea.KeyBackspace:
				m.session.Backspace()
				return m, nil
			case tea.KeySpace:
				m.session.Type(" ")
				return m, nil
			case tea.KeyRunes:
				if !msg.Alt {
					m.session.Type(string(msg.Runes))
					return m, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	m.bar, cmd = m.bar.Update(msg)
	return m, cmd
}

func (m *Model) toggleAccelerators() {
	show := !m.bar.ShowAccelerators()
	m.bar = m.bar.SetShowAccelerators(show)
	m.cfg.UI.ShowAccelerators = show
	if show {
		m.setStatus("accelerators shown", false)
	} else {
		m.setStatus("accelerators hidden", false)
	}
	if m.configPath == "" {
		return
	}
	if err := config.SaveUI(m.configPath, m.cfg.UI); err != nil {
		log.ErrorErr(log.CatConfig, "failed to save ui settings", err)
		m.setStatus("could not save settings: "+err.Error(), true)
	}
}

func (m *Model) recordCommand(ev pubsub.Event[menu.CommandEvent]) {
	p := ev.Payload
	label := p.Label
	if label == "" {
		label = fmt.Sprintf("#%d", p.CommandID)
	}
	line := fmt.Sprintf("%s %s → %s", ev.Timestamp.Format("15:04:05"), label, p.HandledBy)
	m.history = append(m.history, line)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
	if p.Handled {
		m.setStatus(fmt.Sprintf("%s (%s)", label, p.HandledBy), false)
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// reload recompiles the template and swaps it into the bar. A failed
// compile keeps the current menu.
func (m Model) reload(req reloadRequestMsg) Model {
	if req.flushCache && m.accelCache != nil {
		if err := m.accelCache.Flush(m.ctx); err != nil {
			log.ErrorErr(log.CatCache, "accelerator cache flush failed", err)
		}
	}

	tmpl, err := LoadTemplate(m.cfg.Template)
	var root *menu.Menu
	if err == nil {
		root, err = m.compiler.Compile(tmpl)
	}
	ev := ReloadEvent{Path: m.cfg.Template, Err: err}
	if err != nil {
		log.ErrorErr(log.CatMenu, "template reload failed", err, "reason", req.reason)
		m.reloads.Publish(pubsub.MenuReloadFailed, ev)
		return m
	}

	root.Walk(func(*menu.Item, int) { ev.Items++ })
	m.bar = m.bar.SetMenu(root)
	log.Info(log.CatMenu, "template reloaded", "reason", req.reason, "items", ev.Items)
	m.reloads.Publish(pubsub.MenuReloaded, ev)
	return m
}

// LoadTemplate reads path, or returns the built-in template when path is
// empty.
func LoadTemplate(path string) (menu.Template, error) {
	if path == "" {
		return menufile.Default(), nil
	}
	return menufile.Load(path)
}

func templateName(path string) string {
	if path == "" {
		return "built-in template"
	}
	return path
}

// View implements tea.Model.
func (m Model) View() string {
	state := m.session.Snapshot()
	width := max(m.width, 20)
	height := max(m.height, 6)

	var body []string
	switch {
	case state.Closed:
		body = append(body, styles.StatusBarStyle.Render("The window is closed. Press enter to reopen it."))
	case state.Minimized:
		body = append(body, styles.StatusBarStyle.Render("(minimized)"))
	default:
		text := state.Text
		if state.Selected {
			text = styles.ItemSelectedStyle.Render(text)
		}
		body = append(body,
			styles.StatusBarStyle.Render(fmt.Sprintf("zoom %+.1f · clipboard %q", state.Zoom, state.Clipboard)),
			text+"▏",
		)
	}
	if state.DevTools {
		body = append(body, "", styles.StatusBarStyle.Render("── shortcuts ──"))
		body = append(body, ansi.Truncate(keys.Hint(m.bar.Shortcuts()...), width, "…"))
		body = append(body, styles.StatusBarStyle.Render("── commands ──"))
		body = append(body, m.history...)
	}

	statusLines := 0
	if m.cfg.UI.ShowStatusBar && !state.FullScreen {
		statusLines = 1
	}
	for len(body) < height-1-statusLines {
		body = append(body, "")
	}
	if len(body) > height-1-statusLines {
		body = body[:height-1-statusLines]
	}

	lines := append([]string{m.bar.View()}, body...)
	if statusLines > 0 {
		style := styles.StatusOKStyle
		if m.statusErr {
			style = styles.StatusErrorStyle
		}
		lines = append(lines, style.Render(m.status))
	}
	view := strings.Join(lines, "\n")

	if state.About {
		about := styles.DropdownStyle.Padding(0, 2).Render(
			lipgloss.JoinVertical(lipgloss.Center, m.session.AppName(), styles.StatusBarStyle.Render("menubar")),
		)
		view = overlay.Place(overlay.Config{Width: width, Height: height, Position: overlay.Center}, about, view)
	}
	return zone.Scan(m.bar.Overlay(view))
}
