// Package roles holds the registry of menu item roles: named, platform-aware
// bundles of default label, accelerator, behavior and submenu layout.
package roles

import (
	"slices"
	"strings"

	"github.com/zjrosen/menubar/internal/log"
	"github.com/zjrosen/menubar/internal/platform"
)

// Role identifies a registry entry. Roles are lowercase; use Normalize on
// user input.
type Role string

const (
	About                Role = "about"
	Close                Role = "close"
	Copy                 Role = "copy"
	Cut                  Role = "cut"
	Delete               Role = "delete"
	ForceReload          Role = "forcereload"
	Front                Role = "front"
	Help                 Role = "help"
	Hide                 Role = "hide"
	HideOthers           Role = "hideothers"
	Minimize             Role = "minimize"
	Paste                Role = "paste"
	PasteAndMatchStyle   Role = "pasteandmatchstyle"
	Quit                 Role = "quit"
	Redo                 Role = "redo"
	Reload               Role = "reload"
	ResetZoom            Role = "resetzoom"
	SelectAll            Role = "selectall"
	Services             Role = "services"
	RecentDocuments      Role = "recentdocuments"
	ClearRecentDocuments Role = "clearrecentdocuments"
	StartSpeaking        Role = "startspeaking"
	StopSpeaking         Role = "stopspeaking"
	ToggleSpellChecker   Role = "togglespellchecker"
	ToggleDevTools       Role = "toggledevtools"
	ToggleFullScreen     Role = "togglefullscreen"
	Undo                 Role = "undo"
	Unhide               Role = "unhide"
	WindowRole           Role = "window"
	Zoom                 Role = "zoom"
	ZoomIn               Role = "zoomin"
	ZoomOut              Role = "zoomout"
	ShareMenu            Role = "sharemenu"
	AppMenu              Role = "appmenu"
	FileMenu             Role = "filemenu"
	EditMenu             Role = "editmenu"
	ViewMenu             Role = "viewmenu"
	WindowMenu           Role = "windowmenu"
)

// Normalize maps user spellings ("hideOthers", "HideOthers") to a Role.
func Normalize(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// Entry is one node of a composite role's default submenu. The menu compiler
// turns entries into descriptors, so nested roles resolve through the same
// registry.
type Entry struct {
	Role    Role
	Type    string
	Label   string
	Submenu []Entry
}

// Info is a role resolved for the host's current platform.
type Info struct {
	Role        Role
	Label       string
	Accelerator string
	// Submenu is the default layout of composite roles, nil otherwise.
	Submenu []Entry
	// Native reports whether the OS performs the role itself on this
	// platform, in which case Execute does nothing.
	Native bool
}

// definition is the platform-independent record behind a role.
type definition struct {
	label        func(p platform.Platform, appName string) string
	accelerator  func(p platform.Platform) string
	nonNativeMac bool
	app          func(AppController)
	window       func(Window)
	contents     func(Contents)
	submenu      func(p platform.Platform) []Entry
}

// Registry resolves roles against a host. The host is queried on every call.
type Registry struct {
	host platform.Host
	defs map[Role]definition
}

// New returns a registry with the built-in roles. A nil host uses the running
// platform and an empty application name.
func New(host platform.Host) *Registry {
	if host == nil {
		host = platform.Static{}
	}
	return &Registry{host: host, defs: builtins()}
}

// Host returns the host the registry queries.
func (r *Registry) Host() platform.Host { return r.host }

// Platform returns the host's current platform.
func (r *Registry) Platform() platform.Platform { return r.host.Platform() }

// Lookup resolves role for the host's current platform.
func (r *Registry) Lookup(role string) (Info, bool) {
	name := Normalize(role)
	def, ok := r.defs[name]
	if !ok {
		return Info{}, false
	}
	p := r.host.Platform()
	info := Info{
		Role:   name,
		Native: p.IsMac() && !def.nonNativeMac,
	}
	if def.label != nil {
		info.Label = def.label(p, r.host.AppName())
	}
	if def.accelerator != nil {
		info.Accelerator = def.accelerator(p)
	}
	if def.submenu != nil {
		info.Submenu = def.submenu(p)
	}
	return info, true
}

// Roles lists every known role in sorted order.
func (r *Registry) Roles() []Role {
	out := make([]Role, 0, len(r.defs))
	for role := range r.defs {
		out = append(out, role)
	}
	slices.Sort(out)
	return out
}

// Execute performs role's default behavior. It returns false, not an error,
// when the role is unknown, is handled natively by the OS on the current
// platform, or needs a capability that was not supplied.
func (r *Registry) Execute(role string, win Window, contents Contents) bool {
	name := Normalize(role)
	def, ok := r.defs[name]
	if !ok {
		log.Debug(log.CatRole, "execute skipped: unknown role", "role", role)
		return false
	}
	if r.host.Platform().IsMac() && !def.nonNativeMac {
		log.Debug(log.CatRole, "execute skipped: native role", "role", name)
		return false
	}

	switch {
	case def.app != nil:
		ac, ok := r.host.(AppController)
		if !ok {
			return false
		}
		def.app(ac)
	case def.window != nil && win != nil:
		def.window(win)
	case def.contents != nil && contents != nil:
		def.contents(contents)
	default:
		return false
	}
	log.Debug(log.CatRole, "role executed", "role", name)
	return true
}
