package connector

import (
	"sync"

	"github.com/layer-3/rangda/core"
)

// toastSlot holds the single live toast. Pushing replaces whatever is there;
// the consumer clears it explicitly.
type toastSlot struct {
	mu      sync.Mutex
	current *core.Toast
}

func (t *toastSlot) push(toast core.Toast) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = &toast
}

func (t *toastSlot) get() *core.Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

func (t *toastSlot) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = nil
}
