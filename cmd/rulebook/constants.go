package main

import "time"

// Default limits for CLI commands.
const (
	DefaultHistoryLimit = 20
	ChecksumDisplayLen  = 12
	LockTimeout         = 10 * time.Second
)

// Valid output formats.
var validFormats = []string{"json", "yaml"}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
