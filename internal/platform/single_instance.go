package platform

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	lockSuffix   = ".lock"
	probeTimeout = 300 * time.Millisecond
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds the single-instance lock.
type InstanceGuard struct {
	listener net.Listener
	address  string
	lockPath string
	key      string
}

// AcquireSingleInstance locks settingsPath for this process. The holder
// listens on an ephemeral loopback port recorded in "<settingsPath>.lock" and
// answers every connection with its instance key. A lock file whose address
// does not answer with the same key is stale and gets taken over.
func AcquireSingleInstance(appName, settingsPath string) (*InstanceGuard, error) {
	key := instanceKey(appName, settingsPath)
	lockPath := lockFile(appName, settingsPath)

	if holder, ok := liveHolder(lockPath, key); ok {
		return nil, fmt.Errorf("%w on %s", ErrAlreadyRunning, holder)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}
	guard := &InstanceGuard{
		listener: listener,
		address:  listener.Addr().String(),
		lockPath: lockPath,
		key:      key,
	}
	go guard.serve(listener)

	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	if err := os.WriteFile(lockPath, []byte(guard.address), 0o644); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("write lock: %w", err)
	}

	// Last writer wins when two instances start together.
	if recorded, _ := readAddress(lockPath); recorded != guard.address {
		_ = listener.Close()
		return nil, fmt.Errorf("%w on %s", ErrAlreadyRunning, recorded)
	}
	return guard, nil
}

// Release frees the single instance lock. It is safe to call more than once.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil

	if recorded, readErr := readAddress(guard.lockPath); readErr == nil && recorded == guard.address {
		if removeErr := os.Remove(guard.lockPath); removeErr != nil && err == nil {
			err = removeErr
		}
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

// LockPath returns the lock file written next to the settings.
func (guard *InstanceGuard) LockPath() string {
	if guard == nil {
		return ""
	}
	return guard.lockPath
}

func (guard *InstanceGuard) serve(listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(probeTimeout))
		_, _ = io.WriteString(conn, guard.key+"\n")
		_ = conn.Close()
	}
}

func liveHolder(lockPath, key string) (string, bool) {
	address, err := readAddress(lockPath)
	if err != nil || address == "" {
		return "", false
	}
	conn, err := net.DialTimeout("tcp", address, probeTimeout)
	if err != nil {
		return "", false
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(probeTimeout))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return "", false
	}
	return address, strings.TrimSuffix(line, "\n") == key
}

func readAddress(lockPath string) (string, error) {
	data, err := os.ReadFile(lockPath)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func lockFile(appName, settingsPath string) string {
	if settingsPath == "" {
		return filepath.Join(os.TempDir(), appName+lockSuffix)
	}
	return settingsPath + lockSuffix
}

func instanceKey(appName, settingsPath string) string {
	if settingsPath == "" {
		return appName
	}
	if abs, err := filepath.Abs(settingsPath); err == nil {
		settingsPath = abs
	}
	return strings.Join([]string{appName, settingsPath}, "\x00")
}
