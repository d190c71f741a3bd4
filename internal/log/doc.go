// Package log provides trimmed logging functionality built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Automatic truncation of oversized string attribute values
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Why trimming
//
// Crawl logging routinely carries video titles, descriptions, and
// subtitle snippets. These regularly run to kilobytes of right-to-left
// text; untrimmed, one debug line can swamp the terminal and make log
// files unreadable. The TrimHandler cuts long string values at a rune
// boundary and appends a marker, leaving short values untouched.
//
// # Usage
//
//	// Create a logger that trims long attribute values
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("video discovered",
//	    "video_id", "dQw4w9WgXcQ",
//	    "title", veryLongPersianTitle, // trimmed before output
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
