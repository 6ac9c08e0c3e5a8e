package platform

import (
	"fmt"
	"os/exec"
	"time"
)

type ioregProvider struct{}

func newIdleProvider() IdleProvider {
	return ioregProvider{}
}

func (ioregProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command("ioreg", "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("%w: ioreg: %v", ErrIdleUnsupported, err)
	}
	return parseHIDIdle(string(output))
}
