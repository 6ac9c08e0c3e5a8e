package overlay

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"focusbell/internal/ui/progress"
)

// Callbacks defines long break button handlers.
type Callbacks struct {
	OnExit    func()
	OnRestart func()
}

// Window is the long break window shown after a completed focus cycle.
type Window struct {
	window        fyne.Window
	callbacks     Callbacks
	background    *canvas.Rectangle
	titleLabel    *canvas.Text
	subtitleLabel *canvas.Text
	timerLabel    *canvas.Text
	bar           *widget.ProgressBar
	exitButton    *widget.Button
	restartButton *widget.Button
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates a hidden long break window.
func New(app fyne.App, title string, callbacks Callbacks) *Window {
	window := app.NewWindow(title)
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	overlay := &Window{
		window:        window,
		callbacks:     callbacks,
		background:    canvas.NewRectangle(color.NRGBA{R: 24, G: 28, B: 36, A: 235}),
		titleLabel:    text("Long break", 22, true),
		subtitleLabel: text("Step away from the screen.", 14, false),
		timerLabel:    text("--:--", 30, true),
		bar:           widget.NewProgressBar(),
	}
	overlay.timerLabel.Color = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	overlay.bar.TextFormatter = func() string { return "" }

	overlay.exitButton = widget.NewButton("Exit", func() {
		overlay.confirm("End the long break now?", overlay.callbacks.OnExit)
	})
	overlay.restartButton = widget.NewButton("Restart", func() {
		overlay.confirm("Start a new focus cycle now?", overlay.callbacks.OnRestart)
	})

	buttons := container.NewGridWithColumns(2, overlay.exitButton, overlay.restartButton)
	content := container.NewPadded(container.New(&panelLayout{},
		overlay.titleLabel,
		overlay.subtitleLabel,
		overlay.timerLabel,
		overlay.bar,
		buttons,
	))
	window.SetContent(container.NewStack(overlay.background, content))
	window.Resize(fyne.NewSize(360, 220))
	return overlay
}

func text(value string, size float32, bold bool) *canvas.Text {
	label := canvas.NewText(value, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	label.Alignment = fyne.TextAlignLeading
	label.TextStyle = fyne.TextStyle{Bold: bold}
	label.TextSize = size
	return label
}

// Show opens the window with a full countdown.
func (overlay *Window) Show(total time.Duration) {
	overlay.SetRemaining(total, total)
	overlay.window.CenterOnScreen()
	overlay.window.Show()
	overlay.window.RequestFocus()
}

// SetRemaining updates the countdown label and progress bar.
func (overlay *Window) SetRemaining(remaining, total time.Duration) {
	overlay.timerLabel.Text = progress.Clock(remaining)
	overlay.timerLabel.Refresh()
	overlay.bar.SetValue(elapsedFraction(remaining, total))
}

// Hide closes the window.
func (overlay *Window) Hide() {
	overlay.window.Hide()
}

// AskLongBreak asks whether to take the long break or start over. The
// dialog is attached to parent.
func AskLongBreak(parent fyne.Window, focusMinutes int, onRest, onRestart func()) {
	message := widget.NewLabel(fmt.Sprintf("You focused for %d minutes. Take a long break now?", focusMinutes))
	message.Wrapping = fyne.TextWrapWord

	confirm := dialog.NewCustomConfirm("Focus cycle complete", "Rest", "Restart", message, func(rest bool) {
		if rest {
			onRest()
			return
		}
		onRestart()
	}, parent)
	confirm.Resize(fyne.NewSize(360, 160))
	confirm.Show()
}

func (overlay *Window) confirm(question string, action func()) {
	if action == nil {
		return
	}
	dialog.ShowConfirm("Long break", question, func(ok bool) {
		if ok {
			action()
		}
	}, overlay.window)
}

func elapsedFraction(remaining, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	if remaining <= 0 {
		return 1
	}
	if remaining >= total {
		return 0
	}
	return float64(total-remaining) / float64(total)
}

// panelLayout stacks the title block at the top and the timer, bar and
// buttons at the bottom.
type panelLayout struct{}

func (layout *panelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 5 {
		return
	}
	title, subtitle, timer, bar, buttons := objects[0], objects[1], objects[2], objects[3], objects[4]

	pad := size.Height * 0.05
	width := size.Width - pad*2
	if width < 0 {
		width = 0
	}

	titleSize := title.MinSize()
	title.Move(fyne.NewPos(pad, pad))
	title.Resize(fyne.NewSize(width, titleSize.Height))

	subtitleSize := subtitle.MinSize()
	subtitle.Move(fyne.NewPos(pad, pad+titleSize.Height+4))
	subtitle.Resize(fyne.NewSize(width, subtitleSize.Height))

	buttonsSize := buttons.MinSize()
	buttonsY := size.Height - pad - buttonsSize.Height
	buttons.Move(fyne.NewPos(pad, buttonsY))
	buttons.Resize(fyne.NewSize(width, buttonsSize.Height))

	barSize := bar.MinSize()
	barY := buttonsY - 8 - barSize.Height
	bar.Move(fyne.NewPos(pad, barY))
	bar.Resize(fyne.NewSize(width, barSize.Height))

	timerSize := timer.MinSize()
	timerY := barY - 6 - timerSize.Height
	if timerY < 0 {
		timerY = 0
	}
	timer.Move(fyne.NewPos(pad, timerY))
	timer.Resize(timerSize)
}

func (layout *panelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 5 {
		return fyne.NewSize(0, 0)
	}
	var width, height float32
	for _, object := range objects {
		size := object.MinSize()
		if size.Width > width {
			width = size.Width
		}
		height += size.Height
	}
	return fyne.NewSize(width+20, height+40)
}
