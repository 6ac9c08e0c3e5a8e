package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

type xprintidleProvider struct {
	path string
}

// mutterProvider queries GNOME's idle monitor, which also works on Wayland.
type mutterProvider struct {
	gdbusPath string
}

type unsupportedIdleProvider struct{}

func newIdleProvider() IdleProvider {
	wayland := strings.ToLower(os.Getenv("XDG_SESSION_TYPE")) == "wayland"
	if path, err := exec.LookPath("xprintidle"); err == nil && !wayland {
		return &xprintidleProvider{path: path}
	}
	if path, err := exec.LookPath("gdbus"); err == nil {
		return &mutterProvider{gdbusPath: path}
	}
	return unsupportedIdleProvider{}
}

func (provider *xprintidleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(provider.path).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseMillis(string(output))
}

func (provider *mutterProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(
		provider.gdbusPath,
		"call",
		"--session",
		"--dest", "org.gnome.Mutter.IdleMonitor",
		"--object-path", "/org/gnome/Mutter/IdleMonitor/Core",
		"--method", "org.gnome.Mutter.IdleMonitor.GetIdletime",
	).Output()
	if err != nil {
		// No GNOME session bus service: nothing else to try.
		return 0, fmt.Errorf("%w: gdbus: %v", ErrIdleUnsupported, err)
	}
	return parseMutterIdle(string(output))
}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, ErrIdleUnsupported
}
