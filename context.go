package keel

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// resolutionContext carries the per-tree state of one top-level
// resolution: the stack of identifiers currently being constructed
// (cycle detection), the per-request instance cache, and a lazily
// assigned tree ID for diagnostics.
//
// A context is exclusively owned by one in-flight resolution tree.
// It is reset and recycled through the context pool when the
// top-level call completes.
type resolutionContext struct {
	stack    []Ident
	inFlight map[Ident]int // identifier -> index into stack
	perReq   map[*binding]any
	treeID   string

	// gen changes on every reset. Resolvers bound to a tree remember
	// the generation they were issued under and refuse to write into a
	// recycled context.
	gen atomic.Uint64
}

func newResolutionContext() *resolutionContext {
	return &resolutionContext{
		stack:    make([]Ident, 0, 8),
		inFlight: make(map[Ident]int, 8),
		perReq:   make(map[*binding]any, 8),
	}
}

// enter pushes an identifier onto the in-progress stack. If the
// identifier is already being constructed in this tree, it fails with
// the ordered cycle path, materialized only now since this is the
// failure case.
func (rc *resolutionContext) enter(id Ident) error {
	if from, ok := rc.inFlight[id]; ok {
		return ErrCircularDependency(rc.cyclePath(from, id), rc.TreeID())
	}

	rc.inFlight[id] = len(rc.stack)
	rc.stack = append(rc.stack, id)

	return nil
}

// exit pops the identifier pushed by the matching enter. Callers run it
// on every exit path so a failed resolution never leaves a stale
// in-progress marker.
func (rc *resolutionContext) exit(id Ident) {
	delete(rc.inFlight, id)
	rc.stack = rc.stack[:len(rc.stack)-1]
}

// cyclePath renders the identifiers on the cycle in traversal order,
// closing the loop with the revisited identifier.
func (rc *resolutionContext) cyclePath(from int, id Ident) []string {
	path := make([]string, 0, len(rc.stack)-from+1)
	for _, on := range rc.stack[from:] {
		path = append(path, on.String())
	}

	return append(path, id.String())
}

// cachedPerRequest returns the instance already built for a binding
// within this resolution tree, if any.
func (rc *resolutionContext) cachedPerRequest(b *binding) (any, bool) {
	v, ok := rc.perReq[b]

	return v, ok
}

// storePerRequest remembers an instance for the remainder of this tree.
func (rc *resolutionContext) storePerRequest(b *binding, v any) {
	rc.perReq[b] = v
}

// TreeID lazily assigns a unique ID to the resolution tree. It is only
// computed on diagnostic paths, never during successful resolution.
func (rc *resolutionContext) TreeID() string {
	if rc.treeID == "" {
		rc.treeID = uuid.NewString()
	}

	return rc.treeID
}

// reset clears all per-tree state so the context can be reused by an
// unrelated top-level resolution.
func (rc *resolutionContext) reset() {
	rc.stack = rc.stack[:0]
	clear(rc.inFlight)
	clear(rc.perReq)
	rc.treeID = ""
	rc.gen.Add(1)
}
