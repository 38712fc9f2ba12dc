package log

import (
	"fmt"
	"io"
	"sync"
)

// PlanLogger records how each bound field is read back from its Intent.
type PlanLogger interface {
	Log(class, field, category, accessor string)
}

// planLogger implements PlanLogger with serialized writes.
type planLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewPlanLogger creates a PlanLogger. If writer is nil, returns a no-op logger.
func NewPlanLogger(w io.Writer) PlanLogger {
	return &planLogger{w: w}
}

// Log emits one tab-separated line: class, field, category, accessor.
func (p *planLogger) Log(class, field, category, accessor string) {
	if p.w == nil {
		return
	}
	line := fmt.Sprintf("%s\t%s\t%s\t%s\n", class, field, category, accessor)

	p.mu.Lock()
	_, _ = io.WriteString(p.w, line)
	p.mu.Unlock()
}
