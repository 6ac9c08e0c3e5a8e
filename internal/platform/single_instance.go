package platform

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const activateCommand = "activate"

// InstanceGuard holds the single-instance lock. The bound listener doubles
// as a channel through which later launches ask the running instance to
// show itself.
type InstanceGuard struct {
	listener net.Listener
	address  string
}

// AcquireSingleInstance attempts to bind a deterministic localhost port.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// ActivateRunningInstance asks the instance holding the lock to show its
// main window.
func ActivateRunningInstance(appName string) error {
	conn, err := net.DialTimeout("tcp", instanceAddress(appName), time.Second)
	if err != nil {
		return fmt.Errorf("activate running instance: %w", err)
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(time.Second))
	if _, err := fmt.Fprintln(conn, activateCommand); err != nil {
		return fmt.Errorf("activate running instance: %w", err)
	}
	return nil
}

// Serve calls onActivate for every activation request until ctx is done or
// the guard is released.
func (guard *InstanceGuard) Serve(ctx context.Context, onActivate func()) error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	go func() {
		<-ctx.Done()
		_ = guard.listener.Close()
	}()

	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept activation: %w", err)
		}
		if readActivation(conn) && onActivate != nil {
			onActivate()
		}
	}
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func readActivation(conn net.Conn) bool {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == activateCommand
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
