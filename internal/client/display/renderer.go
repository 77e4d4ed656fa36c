package display

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ConsoleRenderer writes display updates as lines to w. It is what a kiosk
// without a graphical surface gets; a real panel would implement
// services.Renderer over its own drawing layer.
type ConsoleRenderer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsoleRenderer(w io.Writer) *ConsoleRenderer {
	return &ConsoleRenderer{w: w}
}

func (r *ConsoleRenderer) ShowMenu(screenID, ref string, fromCache bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	source := "remote"
	if fromCache {
		source = "cache"
	}
	fmt.Fprintf(r.w, "[screen %s] menu: %s (%s)\n", screenID, ref, source)
}

func (r *ConsoleRenderer) ShowPlaceholder(screenID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "[screen %s] no menu uploaded yet\n", screenID)
}

func (r *ConsoleRenderer) ShowClock(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "[clock] %s\n", now.Format("15:04"))
}
