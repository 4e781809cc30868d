// Package main is a system-tray utility that shows and hides an LLM
// provider window with a global hotkey.
package main

// Global debug flag
var debugMode bool

// SetDebugMode enables or disables debug output
func SetDebugMode(debug bool) {
	debugMode = debug
}
