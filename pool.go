package keel

import "sync"

// maxPooledContexts bounds the memory retained by a context pool.
// Contexts released beyond the bound are discarded.
const maxPooledContexts = 32

// contextPool is a bounded free list of resolution contexts. It
// amortizes allocation for the common case of sequential,
// non-overlapping top-level resolutions. Safe for concurrent
// acquire/release; no two acquirers ever receive the same context.
type contextPool struct {
	mu   sync.Mutex
	free []*resolutionContext
}

func newContextPool() *contextPool {
	return &contextPool{
		free: make([]*resolutionContext, 0, maxPooledContexts),
	}
}

// acquire returns a reset, ready-to-use context, reusing a pooled one
// when available.
func (p *contextPool) acquire() *resolutionContext {
	p.mu.Lock()

	if n := len(p.free); n > 0 {
		rc := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		p.mu.Unlock()

		return rc
	}

	p.mu.Unlock()

	return newResolutionContext()
}

// release clears the context and returns it to the free list, unless
// the list is at capacity.
func (p *contextPool) release(rc *resolutionContext) {
	rc.reset()

	p.mu.Lock()
	if len(p.free) < maxPooledContexts {
		p.free = append(p.free, rc)
	}
	p.mu.Unlock()
}

// size reports the number of idle contexts currently pooled.
func (p *contextPool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.free)
}
