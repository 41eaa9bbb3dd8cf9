package keel

import (
	"fmt"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeInvalidIdent indicates a zero identifier was supplied
	CodeInvalidIdent = "INVALID_IDENT"

	// CodeInvalidFactory indicates a factory function is invalid or nil
	CodeInvalidFactory = "INVALID_FACTORY"

	// CodeNotRegistered indicates no binding is reachable for an identifier
	CodeNotRegistered = "NOT_REGISTERED"

	// CodeCircularDependency indicates a resolution cycle was detected
	CodeCircularDependency = "CIRCULAR_DEPENDENCY"

	// CodeFactoryFailed indicates a factory returned an error or panicked
	CodeFactoryFailed = "FACTORY_FAILED"

	// CodeRegistryFinalized indicates registration after Build
	CodeRegistryFinalized = "REGISTRY_FINALIZED"

	// CodeScopeEnded indicates operation on an ended scope
	CodeScopeEnded = "SCOPE_ENDED"

	// CodeTypeMismatch indicates a type mismatch during typed resolution
	CodeTypeMismatch = "TYPE_MISMATCH"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrInvalidIdent is returned when a binding or lookup names a zero identifier.
var ErrInvalidIdent = errs.NewError(CodeInvalidIdent, "identifier cannot be zero", nil)

// ErrInvalidFactory is returned when a nil factory is provided.
var ErrInvalidFactory = errs.NewError(CodeInvalidFactory, "factory cannot be nil", nil)

// ErrRegistryFinalized is returned when bindings are added after Build.
var ErrRegistryFinalized = errs.NewError(CodeRegistryFinalized, "registry is finalized", nil)

// ErrScopeEnded is returned when operations are attempted on an ended scope.
var ErrScopeEnded = errs.NewError(CodeScopeEnded, "scope has ended", nil)

// ErrNotRegisteredSentinel is a sentinel for not-registered failures (for error checking).
var ErrNotRegisteredSentinel = errs.NewError(CodeNotRegistered, "identifier not registered", nil)

// ErrCircularDependencySentinel is a sentinel for cycle failures (for error checking).
var ErrCircularDependencySentinel = errs.NewError(CodeCircularDependency, "circular dependency", nil)

// ErrFactoryFailedSentinel is a sentinel for factory failures (for error checking).
var ErrFactoryFailedSentinel = errs.NewError(CodeFactoryFailed, "factory failed", nil)

// ErrTypeMismatchSentinel is a sentinel for typed resolution mismatches (for error checking).
var ErrTypeMismatchSentinel = errs.NewError(CodeTypeMismatch, "type mismatch", nil)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrNotRegistered creates an error for an identifier with no reachable binding.
func ErrNotRegistered(id Ident) *errs.Error {
	return errs.NewError(
		CodeNotRegistered,
		fmt.Sprintf("identifier '%s' is not registered", id),
		nil,
	).WithContext("ident", id.String()).(*errs.Error)
}

// ErrCircularDependency creates an error carrying the ordered cycle path.
// The path contains exactly the identifiers on the cycle, in traversal
// order, with the revisited identifier repeated at the end.
func ErrCircularDependency(cycle []string, treeID string) *errs.Error {
	e := errs.NewError(
		CodeCircularDependency,
		fmt.Sprintf("circular dependency detected: %v", cycle),
		nil,
	).WithContext("cycle", cycle)
	if treeID != "" {
		e = e.WithContext("resolution_tree", treeID)
	}

	return e.(*errs.Error)
}

// NewFactoryError wraps a construction failure, preserving its cause.
func NewFactoryError(id Ident, cause error, treeID string) *errs.Error {
	e := errs.NewError(
		CodeFactoryFailed,
		fmt.Sprintf("factory for '%s' failed", id),
		cause,
	).WithContext("ident", id.String())
	if treeID != "" {
		e = e.WithContext("resolution_tree", treeID)
	}

	return e.(*errs.Error)
}

// NewFactoryPanicError wraps a recovered factory panic.
func NewFactoryPanicError(id Ident, recovered any, treeID string) *errs.Error {
	e := errs.NewError(
		CodeFactoryFailed,
		fmt.Sprintf("factory for '%s' panicked: %v", id, recovered),
		nil,
	).WithContext("ident", id.String()).
		WithContext("panic", fmt.Sprintf("%v", recovered))
	if treeID != "" {
		e = e.WithContext("resolution_tree", treeID)
	}

	return e.(*errs.Error)
}

// ErrTypeMismatch creates an error for a typed resolution mismatch.
func ErrTypeMismatch(id Ident, actual any) *errs.Error {
	return errs.NewError(
		CodeTypeMismatch,
		fmt.Sprintf("identifier '%s' type mismatch: got %T", id, actual),
		nil,
	).WithContext("ident", id.String()).
		WithContext("actual_type", fmt.Sprintf("%T", actual)).(*errs.Error)
}
