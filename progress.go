package main

import (
	"fmt"
	"io"
	"time"
)

// Progress reports CLI progress with an elapsed time prefix.
type Progress struct {
	w       io.Writer
	start   time.Time
	verbose bool
}

// NewProgress creates a progress reporter writing to w.
func NewProgress(w io.Writer, verbose bool) *Progress {
	return &Progress{w: w, start: time.Now(), verbose: verbose}
}

// Log prints a progress message with elapsed time prefix.
func (p *Progress) Log(format string, args ...any) {
	elapsed := time.Since(p.start)
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(p.w, "[%6.3fs] %s\n", elapsed.Seconds(), msg)
}

// Verbose prints only when verbose mode is enabled.
func (p *Progress) Verbose(format string, args ...any) {
	if p.verbose {
		p.Log(format, args...)
	}
}
