package roles

import "github.com/zjrosen/menubar/internal/platform"

const zoomStep = 0.5

func label(s string) func(platform.Platform, string) string {
	return func(platform.Platform, string) string { return s }
}

func accel(s string) func(platform.Platform) string {
	return func(platform.Platform) string { return s }
}

func separator() Entry { return Entry{Type: "separator"} }

func entries(roles ...Role) []Entry {
	out := make([]Entry, len(roles))
	for i, r := range roles {
		out[i] = Entry{Role: r}
	}
	return out
}

func builtins() map[Role]definition {
	return map[Role]definition{
		About: {
			label: func(p platform.Platform, app string) string {
				if p == platform.Linux {
					return "About"
				}
				return "About " + app
			},
			app: func(a AppController) { a.ShowAboutPanel() },
		},
		Close: {
			label: func(p platform.Platform, _ string) string {
				if p.IsMac() {
					return "Close Window"
				}
				return "Close"
			},
			accelerator: accel("CommandOrControl+W"),
			window:      func(w Window) { w.Close() },
		},
		Copy: {
			label:       label("Copy"),
			accelerator: accel("CommandOrControl+C"),
			contents:    func(c Contents) { c.Copy() },
		},
		Cut: {
			label:       label("Cut"),
			accelerator: accel("CommandOrControl+X"),
			contents:    func(c Contents) { c.Cut() },
		},
		Delete: {
			label:    label("Delete"),
			contents: func(c Contents) { c.Delete() },
		},
		ForceReload: {
			label:        label("Force Reload"),
			accelerator:  accel("Shift+CmdOrCtrl+R"),
			nonNativeMac: true,
			window:       func(w Window) { w.ReloadIgnoringCache() },
		},
		// Front, Hide, HideOthers and Unhide act on the whole application's
		// windows, which no capability interface exposes. Off darwin Execute
		// reports false for them; on darwin the OS performs them.
		Front: {label: label("Bring All to Front")},
		Help:  {label: label("Help")},
		Hide: {
			label:       func(_ platform.Platform, app string) string { return "Hide " + app },
			accelerator: accel("Command+H"),
		},
		HideOthers: {
			label:       label("Hide Others"),
			accelerator: accel("Command+Alt+H"),
		},
		Minimize: {
			label:       label("Minimize"),
			accelerator: accel("CommandOrControl+M"),
			window:      func(w Window) { w.Minimize() },
		},
		Paste: {
			label:       label("Paste"),
			accelerator: accel("CommandOrControl+V"),
			contents:    func(c Contents) { c.Paste() },
		},
		PasteAndMatchStyle: {
			label:       label("Paste and Match Style"),
			accelerator: accel("Shift+CommandOrControl+V"),
			contents:    func(c Contents) { c.PasteAndMatchStyle() },
		},
		Quit: {
			label: func(p platform.Platform, app string) string {
				switch p {
				case platform.Darwin:
					return "Quit " + app
				case platform.Windows:
					return "Exit"
				default:
					return "Quit"
				}
			},
			accelerator: func(p platform.Platform) string {
				if p == platform.Windows {
					return ""
				}
				return "CommandOrControl+Q"
			},
			app: func(a AppController) { a.Quit() },
		},
		Redo: {
			label: label("Redo"),
			accelerator: func(p platform.Platform) string {
				if p == platform.Windows {
					return "Control+Y"
				}
				return "Shift+CommandOrControl+Z"
			},
			contents: func(c Contents) { c.Redo() },
		},
		Reload: {
			label:        label("Reload"),
			accelerator:  accel("CmdOrCtrl+R"),
			nonNativeMac: true,
			window:       func(w Window) { w.Reload() },
		},
		ResetZoom: {
			label:        label("Actual Size"),
			accelerator:  accel("CommandOrControl+0"),
			nonNativeMac: true,
			contents:     func(c Contents) { c.SetZoomLevel(0) },
		},
		SelectAll: {
			label:       label("Select All"),
			accelerator: accel("CommandOrControl+A"),
			contents:    func(c Contents) { c.SelectAll() },
		},
		Services:             {label: label("Services")},
		RecentDocuments:      {label: label("Open Recent")},
		ClearRecentDocuments: {label: label("Clear Menu")},
		StartSpeaking:        {label: label("Start Speaking")},
		StopSpeaking:         {label: label("Stop Speaking")},
		ToggleSpellChecker:   {label: label("Check Spelling While Typing")},
		ToggleDevTools: {
			label: label("Toggle Developer Tools"),
			accelerator: func(p platform.Platform) string {
				if p.IsMac() {
					return "Alt+Command+I"
				}
				return "Ctrl+Shift+I"
			},
			nonNativeMac: true,
			window:       func(w Window) { w.ToggleDevTools() },
		},
		ToggleFullScreen: {
			label: label("Toggle Full Screen"),
			accelerator: func(p platform.Platform) string {
				if p.IsMac() {
					return "Control+Command+F"
				}
				return "F11"
			},
			window: func(w Window) { w.SetFullScreen(!w.IsFullScreen()) },
		},
		Undo: {
			label:       label("Undo"),
			accelerator: accel("CommandOrControl+Z"),
			contents:    func(c Contents) { c.Undo() },
		},
		Unhide:     {label: label("Show All")}, // no capability, see Front
		WindowRole: {label: label("Window")},
		Zoom:       {label: label("Zoom")},
		ZoomIn: {
			label:        label("Zoom In"),
			accelerator:  accel("CommandOrControl+Plus"),
			nonNativeMac: true,
			contents:     func(c Contents) { c.SetZoomLevel(c.ZoomLevel() + zoomStep) },
		},
		ZoomOut: {
			label:        label("Zoom Out"),
			accelerator:  accel("CommandOrControl+-"),
			nonNativeMac: true,
			contents:     func(c Contents) { c.SetZoomLevel(c.ZoomLevel() - zoomStep) },
		},
		ShareMenu: {label: label("Share")},

		// Composite roles.
		AppMenu: {
			label: func(_ platform.Platform, app string) string { return app },
			submenu: func(platform.Platform) []Entry {
				return []Entry{
					{Role: About},
					separator(),
					{Role: Services},
					separator(),
					{Role: Hide},
					{Role: HideOthers},
					{Role: Unhide},
					separator(),
					{Role: Quit},
				}
			},
		},
		FileMenu: {
			label: label("File"),
			submenu: func(p platform.Platform) []Entry {
				if p.IsMac() {
					return entries(Close)
				}
				return entries(Quit)
			},
		},
		EditMenu: {
			label: label("Edit"),
			submenu: func(p platform.Platform) []Entry {
				items := append(entries(Undo, Redo), separator())
				items = append(items, entries(Cut, Copy, Paste)...)
				if p.IsMac() {
					items = append(items, entries(PasteAndMatchStyle, Delete, SelectAll)...)
					return append(items,
						separator(),
						Entry{Label: "Speech", Submenu: entries(StartSpeaking, StopSpeaking)},
					)
				}
				return append(items, Entry{Role: Delete}, separator(), Entry{Role: SelectAll})
			},
		},
		ViewMenu: {
			label: label("View"),
			submenu: func(platform.Platform) []Entry {
				items := entries(Reload, ForceReload, ToggleDevTools)
				items = append(items, separator())
				items = append(items, entries(ResetZoom, ZoomIn, ZoomOut)...)
				return append(items, separator(), Entry{Role: ToggleFullScreen})
			},
		},
		WindowMenu: {
			label: label("Window"),
			submenu: func(p platform.Platform) []Entry {
				items := entries(Minimize, Zoom)
				if p.IsMac() {
					return append(items, separator(), Entry{Role: Front})
				}
				return append(items, Entry{Role: Close})
			},
		},
	}
}
