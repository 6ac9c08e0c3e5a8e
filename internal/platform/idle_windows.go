package platform

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	procGetLastInputInfo = user32.NewProc("GetLastInputInfo")
	procGetTickCount     = kernel32.NewProc("GetTickCount")
)

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

type lastInputProvider struct{}

func newIdleProvider() IdleProvider {
	if err := procGetLastInputInfo.Find(); err != nil {
		return unsupportedIdleProvider{}
	}
	return lastInputProvider{}
}

func (lastInputProvider) IdleDuration() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}
	result, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		return 0, fmt.Errorf("get last input info: %w", err)
	}

	// Both values are 32-bit millisecond tick counts; unsigned subtraction
	// stays correct across the 49.7 day wraparound.
	now, _, _ := procGetTickCount.Call()
	idleMillis := uint32(now) - info.dwTime
	return time.Duration(idleMillis) * time.Millisecond, nil
}

type unsupportedIdleProvider struct{}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, ErrIdleUnsupported
}
