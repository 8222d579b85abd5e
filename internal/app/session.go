package app

import (
	"fmt"
	"strings"
	"sync"

	"github.com/zjrosen/menubar/internal/log"
	"github.com/zjrosen/menubar/internal/platform"
	"github.com/zjrosen/menubar/internal/roles"
)

// Session is the terminal stand-in for a native window and its contents.
// It implements the capabilities roles act on, so role items do real work
// in the terminal host: an editable text buffer with a clipboard and
// history, a zoom level, a developer panel and window state.
type Session struct {
	mu sync.Mutex

	os      platform.Platform
	appName string

	text      []rune
	selectAll bool
	clipboard string
	undo      []string
	redo      []string
	zoom      float64

	closed     bool
	minimized  bool
	fullScreen bool
	devTools   bool
	reloads    int
	quit       bool
	about      bool

	onReload func(ignoreCache bool)
	last     string
}

// NewSession returns a session rendering role defaults for p with appName.
func NewSession(p platform.Platform, appName string) *Session {
	return &Session{os: p, appName: appName}
}

// OnReload installs the callback run by the reload roles.
func (s *Session) OnReload(fn func(ignoreCache bool)) {
	s.mu.Lock()
	s.onReload = fn
	s.mu.Unlock()
}

// Platform implements platform.Host.
func (s *Session) Platform() platform.Platform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.os
}

// AppName implements platform.Host.
func (s *Session) AppName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appName
}

// SetPlatform switches the platform role lookups and rendering follow.
func (s *Session) SetPlatform(p platform.Platform) {
	s.mu.Lock()
	s.os = p
	s.mu.Unlock()
}

// FocusedWindow implements menu.FocusProvider. A closed session has no
// focused window.
func (s *Session) FocusedWindow() roles.Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	return s
}

// FocusedContents implements menu.FocusProvider.
func (s *Session) FocusedContents() roles.Contents {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	return s
}

// Quit implements roles.AppController.
func (s *Session) Quit() { s.record("quit", func() { s.quit = true }) }

// ShowAboutPanel implements roles.AppController.
func (s *Session) ShowAboutPanel() { s.record("about", func() { s.about = !s.about }) }

// Close implements roles.Window.
func (s *Session) Close() { s.record("close", func() { s.closed = true }) }

// Minimize implements roles.Window.
func (s *Session) Minimize() { s.record("minimize", func() { s.minimized = !s.minimized }) }

// Reload implements roles.Window.
func (s *Session) Reload() { s.reload(false) }

// ReloadIgnoringCache implements roles.Window.
func (s *Session) ReloadIgnoringCache() { s.reload(true) }

func (s *Session) reload(ignoreCache bool) {
	var fn func(bool)
	s.record("reload", func() {
		s.reloads++
		fn = s.onReload
	})
	if fn != nil {
		fn(ignoreCache)
	}
}

// ToggleDevTools implements roles.Window.
func (s *Session) ToggleDevTools() { s.record("toggle dev tools", func() { s.devTools = !s.devTools }) }

// IsFullScreen implements roles.Window.
func (s *Session) IsFullScreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fullScreen
}

// SetFullScreen implements roles.Window.
func (s *Session) SetFullScreen(fs bool) {
	s.record(fmt.Sprintf("full screen %t", fs), func() { s.fullScreen = fs })
}

// Undo implements roles.Contents.
func (s *Session) Undo() {
	s.record("undo", func() {
		if len(s.undo) == 0 {
			return
		}
		s.redo = append(s.redo, string(s.text))
		s.text = []rune(s.undo[len(s.undo)-1])
		s.undo = s.undo[:len(s.undo)-1]
		s.selectAll = false
	})
}

// Redo implements roles.Contents.
func (s *Session) Redo() {
	s.record("redo", func() {
		if len(s.redo) == 0 {
			return
		}
		s.undo = append(s.undo, string(s.text))
		s.text = []rune(s.redo[len(s.redo)-1])
		s.redo = s.redo[:len(s.redo)-1]
		s.selectAll = false
	})
}

// Cut implements roles.Contents. Without a selection the last word is cut.
func (s *Session) Cut() {
	s.record("cut", func() {
		s.clipboard = s.selection()
		s.edit(func() { s.removeSelection() })
	})
}

// Copy implements roles.Contents. Without a selection the last word is
// copied.
func (s *Session) Copy() { s.record("copy", func() { s.clipboard = s.selection() }) }

// Paste implements roles.Contents.
func (s *Session) Paste() { s.record("paste", func() { s.insert(s.clipboard) }) }

// PasteAndMatchStyle implements roles.Contents. The buffer is plain text,
// so it pastes with surrounding whitespace trimmed.
func (s *Session) PasteAndMatchStyle() {
	s.record("paste and match style", func() { s.insert(strings.TrimSpace(s.clipboard)) })
}

// Delete implements roles.Contents.
func (s *Session) Delete() {
	s.record("delete", func() { s.edit(func() { s.removeSelection() }) })
}

// SelectAll implements roles.Contents.
func (s *Session) SelectAll() { s.record("select all", func() { s.selectAll = true }) }

// ZoomLevel implements roles.Contents.
func (s *Session) ZoomLevel() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoom
}

// SetZoomLevel implements roles.Contents.
func (s *Session) SetZoomLevel(z float64) {
	s.record(fmt.Sprintf("zoom %.1f", z), func() { s.zoom = z })
}

// Type appends typed text to the buffer, replacing a full selection.
func (s *Session) Type(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(text)
}

// Backspace removes the last rune, or the whole buffer when selected.
func (s *Session) Backspace() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edit(func() {
		if s.selectAll {
			s.text = nil
			s.selectAll = false
			return
		}
		if len(s.text) > 0 {
			s.text = s.text[:len(s.text)-1]
		}
	})
}

// State is a snapshot of the session for rendering.
type State struct {
	Text       string
	Selected   bool
	Clipboard  string
	Zoom       float64
	Closed     bool
	Minimized  bool
	FullScreen bool
	DevTools   bool
	About      bool
	Quit       bool
	Reloads    int
	LastAction string
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Text:       string(s.text),
		Selected:   s.selectAll,
		Clipboard:  s.clipboard,
		Zoom:       s.zoom,
		Closed:     s.closed,
		Minimized:  s.minimized,
		FullScreen: s.fullScreen,
		DevTools:   s.devTools,
		About:      s.about,
		Quit:       s.quit,
		Reloads:    s.reloads,
		LastAction: s.last,
	}
}

// Reopen restores a closed window.
func (s *Session) Reopen() {
	s.mu.Lock()
	s.closed = false
	s.mu.Unlock()
}

func (s *Session) record(action string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
	s.last = action
	log.Debug(log.CatUI, "session action", "action", action)
}

// edit snapshots the buffer for undo, runs fn and clears the redo stack
// when the buffer changed. Callers hold s.mu.
func (s *Session) edit(fn func()) {
	before := string(s.text)
	fn()
	if string(s.text) == before {
		return
	}
	s.undo = append(s.undo, before)
	s.redo = nil
}

// selection returns the selected text: the whole buffer when selected,
// else the trailing word.
func (s *Session) selection() string {
	if s.selectAll {
		return string(s.text)
	}
	str := string(s.text)
	trimmed := strings.TrimRight(str, " ")
	if i := strings.LastIndex(trimmed, " "); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

func (s *Session) removeSelection() {
	if s.selectAll {
		s.text = nil
		s.selectAll = false
		return
	}
	word := []rune(s.selection())
	str := strings.TrimRight(string(s.text), " ")
	s.text = []rune(str[:len(str)-len(string(word))])
}

func (s *Session) insert(text string) {
	if text == "" {
		return
	}
	s.edit(func() {
		if s.selectAll {
			s.text = nil
			s.selectAll = false
		}
		s.text = append(s.text, []rune(text)...)
	})
}
