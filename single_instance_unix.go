//go:build !windows

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

var lockFile *os.File

// EnsureSingleInstance takes an exclusive flock on the lock file.
// Returns an error if another instance is already running.
func EnsureSingleInstance() error {
	lockPath := getLockFilePath()

	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}

	// Non-blocking: a second instance fails immediately
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return fmt.Errorf("another instance of %s is already running", AppName)
	}

	_ = f.Truncate(0)
	_, _ = f.Seek(0, 0)
	fmt.Fprintf(f, "%d\n", os.Getpid())

	// The lock is held as long as the file stays open
	lockFile = f
	return nil
}

// ReleaseSingleInstance releases the lock file
func ReleaseSingleInstance() {
	if lockFile != nil {
		_ = unix.Flock(int(lockFile.Fd()), unix.LOCK_UN)
		lockFile.Close()
		os.Remove(getLockFilePath())
		lockFile = nil
	}
}

func getLockFilePath() string {
	dir := ConfigDir()
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, AppName+".lock")
}
