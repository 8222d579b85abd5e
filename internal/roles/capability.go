package roles

// Window is the focused window a role acts on. The host owns it; roles only
// call through it.
type Window interface {
	Close()
	Minimize()
	Reload()
	ReloadIgnoringCache()
	ToggleDevTools()
	IsFullScreen() bool
	SetFullScreen(fullScreen bool)
}

// Contents is the focused document or web contents of a window.
type Contents interface {
	Undo()
	Redo()
	Cut()
	Copy()
	Paste()
	PasteAndMatchStyle()
	Delete()
	SelectAll()
	ZoomLevel() float64
	SetZoomLevel(level float64)
}

// AppController is implemented by hosts that can act on the whole application.
// Roles such as quit and about only execute when the registry's host
// implements it.
type AppController interface {
	Quit()
	ShowAboutPanel()
}
