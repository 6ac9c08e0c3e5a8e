package platform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	mutterIdlePattern = regexp.MustCompile(`uint64\s+(\d+)`)
	hidIdlePattern    = regexp.MustCompile(`"HIDIdleTime"\s*=\s*(\d+)`)
)

// parseMillis parses xprintidle output.
func parseMillis(output string) (time.Duration, error) {
	value := strings.TrimSpace(output)
	idleMillis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

// parseMutterIdle parses the gdbus reply of org.gnome.Mutter.IdleMonitor.GetIdletime,
// e.g. "(uint64 15320,)".
func parseMutterIdle(output string) (time.Duration, error) {
	match := mutterIdlePattern.FindStringSubmatch(output)
	if match == nil {
		return 0, fmt.Errorf("parse mutter idle time: unexpected reply %q", strings.TrimSpace(output))
	}
	idleMillis, err := strconv.ParseUint(match[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse mutter idle time: %w", err)
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

// parseHIDIdle parses the HIDIdleTime property (nanoseconds) printed by ioreg.
func parseHIDIdle(output string) (time.Duration, error) {
	match := hidIdlePattern.FindStringSubmatch(output)
	if match == nil {
		return 0, fmt.Errorf("parse HIDIdleTime: property not found")
	}
	idleNanos, err := strconv.ParseUint(match[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse HIDIdleTime: %w", err)
	}
	return time.Duration(idleNanos), nil
}
