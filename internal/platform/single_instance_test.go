package platform

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondInstanceIsRejected(t *testing.T) {
	settingsPath := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	guard, err := AcquireSingleInstance("PomodoroDeckTest", settingsPath)
	require.NoError(t, err)
	defer func() {
		_ = guard.Release()
	}()
	assert.Equal(t, settingsPath+".lock", guard.LockPath())
	assert.FileExists(t, guard.LockPath())

	_, err = AcquireSingleInstance("PomodoroDeckTest", settingsPath)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.ErrorContains(t, err, guard.Address())

	require.NoError(t, guard.Release())
	require.NoError(t, guard.Release())
	assert.NoFileExists(t, settingsPath+".lock")

	again, err := AcquireSingleInstance("PomodoroDeckTest", settingsPath)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestSettingsFilesLockIndependently(t *testing.T) {
	dir := t.TempDir()

	first, err := AcquireSingleInstance("PomodoroDeckTest", filepath.Join(dir, "a.yaml"))
	require.NoError(t, err)
	defer func() {
		_ = first.Release()
	}()

	second, err := AcquireSingleInstance("PomodoroDeckTest", filepath.Join(dir, "b.yaml"))
	require.NoError(t, err)
	defer func() {
		_ = second.Release()
	}()

	assert.NotEqual(t, first.Address(), second.Address())
}

func TestStaleLockIsTakenOver(t *testing.T) {
	settingsPath := filepath.Join(t.TempDir(), "settings.yaml")

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	dead := listener.Addr().String()
	require.NoError(t, listener.Close())
	require.NoError(t, os.WriteFile(settingsPath+".lock", []byte(dead), 0o644))

	guard, err := AcquireSingleInstance("PomodoroDeckTest", settingsPath)
	require.NoError(t, err)
	defer func() {
		_ = guard.Release()
	}()

	recorded, err := os.ReadFile(settingsPath + ".lock")
	require.NoError(t, err)
	assert.Equal(t, guard.Address(), string(recorded))
}

func TestLockHeldByOtherKeyIsStale(t *testing.T) {
	dir := t.TempDir()
	other, err := AcquireSingleInstance("SomethingElse", filepath.Join(dir, "other.yaml"))
	require.NoError(t, err)
	defer func() {
		_ = other.Release()
	}()

	settingsPath := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(settingsPath+".lock", []byte(other.Address()), 0o644))

	guard, err := AcquireSingleInstance("PomodoroDeckTest", settingsPath)
	require.NoError(t, err)
	require.NoError(t, guard.Release())
}

func TestInstanceKey(t *testing.T) {
	assert.Equal(t, "PomodoroDeck", instanceKey("PomodoroDeck", ""))
	assert.Equal(t, instanceKey("PomodoroDeck", "/home/a/settings.yaml"), instanceKey("PomodoroDeck", "/home/a/../a/settings.yaml"))
	assert.NotEqual(t, instanceKey("PomodoroDeck", "/home/a/settings.yaml"), instanceKey("PomodoroDeck", "/home/b/settings.yaml"))
}

func TestNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
	assert.Empty(t, guard.LockPath())
}
