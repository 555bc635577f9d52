// ABOUTME: Notification surface the core publishes user-facing failures to
// ABOUTME: Distinguishes persistent banners from transient auto-dismissing toasts

// Package notify defines the narrow interface the curation core uses to
// surface errors to whatever presentation layer hosts it. The core only
// publishes; rendering and dismissal live outside.
package notify

import "sync"

// Notifier receives user-facing notifications from the core.
type Notifier interface {
	// Banner publishes a persistent, dismissible message, used for
	// session expiry.
	Banner(msg string)

	// Toast publishes a transient, auto-dismissing message carrying the
	// server-provided detail when available.
	Toast(msg string)
}

// Nop discards all notifications. Used in non-interactive contexts.
type Nop struct{}

// Banner discards the message
func (Nop) Banner(string) {}

// Toast discards the message
func (Nop) Toast(string) {}

// Recorder collects notifications in memory. Backs tests and the CLI.
type Recorder struct {
	mu      sync.Mutex
	banners []string
	toasts  []string
}

// Banner records a persistent message
func (r *Recorder) Banner(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.banners = append(r.banners, msg)
}

// Toast records a transient message
func (r *Recorder) Toast(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, msg)
}

// Banners returns the recorded persistent messages
func (r *Recorder) Banners() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.banners))
	copy(out, r.banners)
	return out
}

// Toasts returns the recorded transient messages
func (r *Recorder) Toasts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.toasts))
	copy(out, r.toasts)
	return out
}
