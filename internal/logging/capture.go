package logging

import (
	"strings"
	"sync"
)

// CaptureWriter remembers the last line written to it. The UI shows it in
// the status bar.
type CaptureWriter struct {
	mu       sync.RWMutex
	lastLine string
}

// Capture receives every record at WARN and above.
var Capture = &CaptureWriter{}

func (w *CaptureWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastLine = strings.TrimRight(string(p), "\n")
	return len(p), nil
}

func (w *CaptureWriter) LastLine() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastLine
}

// Reset forgets the last line.
func (w *CaptureWriter) Reset() {
	w.mu.Lock()
	w.lastLine = ""
	w.mu.Unlock()
}
