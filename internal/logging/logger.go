// Package logging is a minimal file logger matching the shape of
// logger.go's Logger: one append-only file per run, opened once and
// written to as frames render, namespaced by CPU brand so runs on
// different hardware never share a path.
//
// This stays on the standard library rather than a structured-logging
// library: logger.go's own Logger is exactly this shape (os.File plus a
// handful of methods) and no other logging dependency fits this kind of
// per-run numeric trace, so there is no grounded third-party replacement
// to reach for here.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/cpuid/v2"
)

// Logger appends one line per distinct frame time to a file under
// directory/<CPU brand>/<scene>/<workers>.txt, mirroring NewLogger's path
// layout (minus the algorithm-variant segment, since this only has one
// binning algorithm).
type Logger struct {
	file       *os.File
	lastFrames float64
}

// New opens (creating any missing directories) the log file for the given
// scene name and worker count.
func New(directory, scene string, workers int) (*Logger, error) {
	path := filepath.Join(directory, cpuid.CPU.BrandName, scene)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	path = filepath.Join(path, fmt.Sprintf("%d.txt", workers))
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	return &Logger{file: file}, nil
}

// LogFrameRate writes framesPerSecond on its own line, skipping repeats of
// the last value written, matching Log's dedup behavior.
func (l *Logger) LogFrameRate(framesPerSecond float64) {
	if framesPerSecond <= 0 || framesPerSecond == l.lastFrames {
		return
	}
	l.lastFrames = framesPerSecond
	fmt.Fprintln(l.file, framesPerSecond)
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	return l.file.Close()
}
