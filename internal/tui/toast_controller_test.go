package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/fitsel/internal/core/notify"
)

func TestToastController_Push(t *testing.T) {
	tests := []struct {
		name    string
		level   notify.Level
		wantTTL time.Duration
	}{
		{name: "info", level: notify.LevelInfo, wantTTL: defaultToastTTL},
		{name: "warning", level: notify.LevelWarning, wantTTL: defaultToastTTL},
		{name: "error", level: notify.LevelError, wantTTL: errorToastTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewToastController()
			c.Push(notify.Notification{Level: tt.level, Message: "hello"})

			assert.True(t, c.HasToasts())
			assert.Equal(t, tt.wantTTL, c.Toasts()[0].remaining)
		})
	}
}

func TestToastController_PushEvictsOldestAtMax(t *testing.T) {
	c := NewToastController()

	for i := range defaultMaxToasts + 2 {
		c.Push(notify.Notification{Level: notify.LevelInfo, Message: time.Duration(i).String()})
	}

	assert.Len(t, c.Toasts(), defaultMaxToasts)
	assert.Equal(t, "2ns", c.Toasts()[0].notification.Message)
}

func TestToastController_TickRemovesExpired(t *testing.T) {
	c := NewToastController()
	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "expires"})
	c.Push(notify.Notification{Level: notify.LevelError, Message: "survives"})

	c.Tick(defaultToastTTL)

	assert.Len(t, c.Toasts(), 1)
	assert.Equal(t, "survives", c.Toasts()[0].notification.Message)
	assert.Equal(t, errorToastTTL-defaultToastTTL, c.Toasts()[0].remaining)
}

func TestToastController_Dismiss(t *testing.T) {
	c := NewToastController()
	c.Dismiss()
	assert.False(t, c.HasToasts())

	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "first"})
	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "second"})
	c.Dismiss()

	assert.Len(t, c.Toasts(), 1)
	assert.Equal(t, "first", c.Toasts()[0].notification.Message)
}

func TestToastController_Ticking(t *testing.T) {
	c := NewToastController()

	assert.True(t, c.StartTicking())
	assert.False(t, c.StartTicking(), "already running")

	c.StopTicking()
	assert.True(t, c.StartTicking())
}

func TestToastView_Overlay(t *testing.T) {
	c := NewToastController()
	v := NewToastView(c)

	bg := "line1\nline2\nline3\nline4\nline5\nline6"
	assert.Equal(t, bg, v.Overlay(bg, 80), "no toasts leaves background alone")

	c.Push(notify.Notification{Level: notify.LevelWarning, Message: "careful"})
	out := v.Overlay(bg, 80)

	assert.Contains(t, out, "careful")
	assert.Contains(t, out, "line1")
	assert.Equal(t, 6, len(splitLines(out)), "overlay keeps the background height")
}
