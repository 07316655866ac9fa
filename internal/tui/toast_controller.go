package tui

import (
	"time"

	"github.com/colonyops/fitsel/internal/core/notify"
)

const (
	defaultToastTTL   = 5 * time.Second
	errorToastTTL     = 8 * time.Second
	defaultMaxToasts  = 3
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 48
)

type toast struct {
	notification notify.Notification
	remaining    time.Duration
}

// ToastController manages the lifecycle of active toast notifications.
// It has no Bubble Tea dependencies; the model drives it with Tick.
type ToastController struct {
	toasts  []toast
	ticking bool
}

func NewToastController() *ToastController {
	return &ToastController{}
}

// Push adds a notification to the toast stack. Errors stay up longer. If the
// stack exceeds defaultMaxToasts, the oldest toast is evicted.
func (c *ToastController) Push(n notify.Notification) {
	ttl := defaultToastTTL
	if n.Level == notify.LevelError {
		ttl = errorToastTTL
	}
	c.toasts = append(c.toasts, toast{notification: n, remaining: ttl})
	if len(c.toasts) > defaultMaxToasts {
		c.toasts = c.toasts[len(c.toasts)-defaultMaxToasts:]
	}
}

// Tick decrements the remaining TTL on all toasts by d and removes
// any that have expired.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

func (c *ToastController) HasToasts() bool { return len(c.toasts) > 0 }

func (c *ToastController) Toasts() []toast { return c.toasts }

// StartTicking marks the tick timer as running and reports whether it was
// stopped before, i.e. whether the caller must schedule a tick.
func (c *ToastController) StartTicking() bool {
	if c.ticking {
		return false
	}
	c.ticking = true
	return true
}

// StopTicking marks the tick timer as stopped.
func (c *ToastController) StopTicking() {
	c.ticking = false
}
