//go:build windows

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/windows"
)

var lockHandle windows.Handle

// EnsureSingleInstance holds a named mutex for the session.
// Returns an error if another instance is already running.
func EnsureSingleInstance() error {
	mutexName, err := windows.UTF16PtrFromString("Local\\" + AppName + "-single-instance")
	if err != nil {
		return fmt.Errorf("failed to create mutex name: %w", err)
	}

	handle, err := windows.CreateMutex(nil, false, mutexName)
	if err != nil {
		if err == windows.ERROR_ALREADY_EXISTS {
			if handle != 0 {
				windows.CloseHandle(handle)
			}
			return fmt.Errorf("another instance of %s is already running", AppName)
		}
		return fmt.Errorf("failed to create mutex: %w", err)
	}

	// WAIT_OBJECT_0 means we own the mutex
	event, err := windows.WaitForSingleObject(handle, 0)
	if err != nil || event != windows.WAIT_OBJECT_0 {
		windows.CloseHandle(handle)
		return fmt.Errorf("another instance of %s is already running", AppName)
	}

	lockHandle = handle
	writePIDFile()
	return nil
}

// ReleaseSingleInstance releases the mutex
func ReleaseSingleInstance() {
	if lockHandle != 0 {
		windows.ReleaseMutex(lockHandle)
		windows.CloseHandle(lockHandle)
		lockHandle = 0
	}
	os.Remove(getLockFilePath())
}

func writePIDFile() {
	pidPath := getLockFilePath()
	_ = os.MkdirAll(filepath.Dir(pidPath), 0755)
	_ = os.WriteFile(pidPath, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644)
}

func getLockFilePath() string {
	dir := ConfigDir()
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, AppName+".lock")
}
