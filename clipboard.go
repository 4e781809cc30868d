package main

import "github.com/atotto/clipboard"

// copyToClipboard places text on the system clipboard
func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// pasteFromClipboard returns the clipboard text
func pasteFromClipboard() (string, error) {
	return clipboard.ReadAll()
}
