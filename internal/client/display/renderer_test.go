package display

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsoleRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleRenderer(&buf)

	r.ShowMenu("3", "https://store.example/screen-3-menu.png", false)
	r.ShowMenu("3", "cached-ref", true)
	r.ShowPlaceholder("4")
	r.ShowClock(time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC))

	out := buf.String()
	assert.Contains(t, out, "[screen 3] menu: https://store.example/screen-3-menu.png (remote)")
	assert.Contains(t, out, "[screen 3] menu: cached-ref (cache)")
	assert.Contains(t, out, "[screen 4] no menu uploaded yet")
	assert.Contains(t, out, "[clock] 09:30")
}
