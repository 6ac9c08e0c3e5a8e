package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"focusbell/internal/core/scheduler"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStart       func()
	OnTogglePause func()
	OnStop        func()
	OnSkipBreak   func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	title       string
	statusItem  *fyne.MenuItem
	startItem   *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	stopItem    *fyne.MenuItem
	skipItem    *fyne.MenuItem
	callbacks   Callbacks
	phase       scheduler.Phase
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		title:       title,
		callbacks:   callbacks,
		phase:       scheduler.PhaseIdle,
		statusLabel: "Ready",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.startItem = fyne.NewMenuItem("Start focus", invoke(&manager.callbacks.OnStart))
	manager.pauseItem = fyne.NewMenuItem("Pause", invoke(&manager.callbacks.OnTogglePause))
	manager.stopItem = fyne.NewMenuItem("Stop", invoke(&manager.callbacks.OnStop))
	manager.skipItem = fyne.NewMenuItem("End long break", invoke(&manager.callbacks.OnSkipBreak))
	manager.skipItem.Disabled = true

	manager.SetPhase(scheduler.PhaseIdle)
	return manager
}

func invoke(callback *func()) func() {
	return func() {
		if *callback != nil {
			(*callback)()
		}
	}
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshMenu()
}

// SetPhase enables the menu items that make sense for phase.
func (manager *Manager) SetPhase(phase scheduler.Phase) {
	manager.phase = phase

	active := phase == scheduler.PhaseRunning || phase == scheduler.PhasePaused
	manager.startItem.Disabled = active || phase == scheduler.PhaseStopping
	manager.pauseItem.Disabled = !active
	manager.stopItem.Disabled = !active
	if phase == scheduler.PhasePaused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	manager.refreshMenu()
}

// SetInBreak toggles long break menu items.
func (manager *Manager) SetInBreak(inBreak bool) {
	manager.skipItem.Disabled = !inBreak
	manager.refreshMenu()
}

// SetIcon replaces the tray icon.
func (manager *Manager) SetIcon(icon fyne.Resource) {
	if manager.app != nil && icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) statusText() string {
	status := manager.statusLabel
	if manager.phase == scheduler.PhasePaused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	return fmt.Sprintf("Status: %s", status)
}

func (manager *Manager) refreshMenu() {
	manager.statusItem.Label = manager.statusText()
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.title,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.stopItem,
		manager.skipItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	))
}
