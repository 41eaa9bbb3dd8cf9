package keel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolutionContext_EnterExit(t *testing.T) {
	rc := newResolutionContext()

	require.NoError(t, rc.enter(NewIdent("a")))
	require.NoError(t, rc.enter(NewIdent("b")))

	err := rc.enter(NewIdent("a"))
	assert.ErrorIs(t, err, ErrCircularDependencySentinel)

	rc.exit(NewIdent("b"))
	rc.exit(NewIdent("a"))

	// After unwinding, the identifier can be entered again.
	assert.NoError(t, rc.enter(NewIdent("a")))
}

func TestResolutionContext_CyclePathOrder(t *testing.T) {
	rc := newResolutionContext()

	require.NoError(t, rc.enter(NewIdent("api")))
	require.NoError(t, rc.enter(NewIdent("repo")))
	require.NoError(t, rc.enter(NewIdent("db")))

	err := rc.enter(NewIdent("repo"))
	require.Error(t, err)

	// Only the identifiers on the cycle appear, in traversal order.
	assert.Contains(t, err.Error(), "[repo db repo]")
	assert.NotContains(t, err.Error(), "api")
}

func TestResolutionContext_Reset(t *testing.T) {
	rc := newResolutionContext()

	require.NoError(t, rc.enter(NewIdent("a")))
	rc.storePerRequest(&binding{ident: NewIdent("a")}, "instance")
	_ = rc.TreeID()

	rc.reset()

	assert.Empty(t, rc.stack)
	assert.Empty(t, rc.inFlight)
	assert.Empty(t, rc.perReq)
	assert.Empty(t, rc.treeID)

	// A fresh tree sees no leftover in-progress markers.
	assert.NoError(t, rc.enter(NewIdent("a")))
}

func TestResolutionContext_TreeID_Lazy(t *testing.T) {
	rc := newResolutionContext()

	assert.Empty(t, rc.treeID)

	first := rc.TreeID()
	assert.NotEmpty(t, first)
	assert.Equal(t, first, rc.TreeID())
}

func TestContextPool_Reuse(t *testing.T) {
	p := newContextPool()

	rc := p.acquire()
	p.release(rc)

	assert.Same(t, rc, p.acquire())
}

func TestContextPool_ReleaseResets(t *testing.T) {
	p := newContextPool()

	rc := p.acquire()
	require.NoError(t, rc.enter(NewIdent("a")))
	rc.storePerRequest(&binding{ident: NewIdent("a")}, "instance")

	p.release(rc)

	got := p.acquire()
	require.Same(t, rc, got)
	assert.Empty(t, got.stack)
	assert.Empty(t, got.perReq)
}

func TestContextPool_CapacityBound(t *testing.T) {
	p := newContextPool()

	contexts := make([]*resolutionContext, maxPooledContexts+8)
	for i := range contexts {
		contexts[i] = newResolutionContext()
	}

	for _, rc := range contexts {
		p.release(rc)
	}

	// Releases beyond the bound are discarded.
	assert.Equal(t, maxPooledContexts, p.size())
}

func TestContextPool_AcquireEmpty(t *testing.T) {
	p := newContextPool()

	first := p.acquire()
	second := p.acquire()

	assert.NotSame(t, first, second)
}
