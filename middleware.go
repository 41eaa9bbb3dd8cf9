package keel

import (
	logger "github.com/xraph/go-utils/log"
	"github.com/xraph/go-utils/metrics"
)

// Middleware provides hooks for intercepting cold resolutions.
// Hooks fire when an instance is actually constructed (Tier 3); cached
// singleton and per-request hits bypass them so the fast paths stay
// branch-minimal.
type Middleware interface {
	// BeforeResolve is called before invoking a factory.
	// Return error to abort resolution.
	BeforeResolve(id Ident) error

	// AfterResolve is called after the factory ran.
	// Called even if construction failed (instance and err may both be set).
	AfterResolve(id Ident, instance any, err error) error
}

// middlewareChain manages multiple middleware.
type middlewareChain struct {
	middleware []Middleware
}

func newMiddlewareChain() *middlewareChain {
	return &middlewareChain{}
}

func (m *middlewareChain) add(mw Middleware) {
	m.middleware = append(m.middleware, mw)
}

func (m *middlewareChain) isEmpty() bool {
	return len(m.middleware) == 0
}

// beforeResolve calls BeforeResolve on all middleware in order.
func (m *middlewareChain) beforeResolve(id Ident) error {
	for _, mw := range m.middleware {
		if err := mw.BeforeResolve(id); err != nil {
			return err
		}
	}

	return nil
}

// afterResolve calls AfterResolve on all middleware in order.
func (m *middlewareChain) afterResolve(id Ident, instance any, err error) error {
	for _, mw := range m.middleware {
		if mwErr := mw.AfterResolve(id, instance, err); mwErr != nil {
			return mwErr
		}
	}

	return nil
}

// FuncMiddleware wraps functions as Middleware.
type FuncMiddleware struct {
	BeforeResolveFunc func(id Ident) error
	AfterResolveFunc  func(id Ident, instance any, err error) error
}

// BeforeResolve implements Middleware.
func (f *FuncMiddleware) BeforeResolve(id Ident) error {
	if f.BeforeResolveFunc != nil {
		return f.BeforeResolveFunc(id)
	}

	return nil
}

// AfterResolve implements Middleware.
func (f *FuncMiddleware) AfterResolve(id Ident, instance any, err error) error {
	if f.AfterResolveFunc != nil {
		return f.AfterResolveFunc(id, instance, err)
	}

	return nil
}

// loggingMiddleware logs cold resolutions and failures.
type loggingMiddleware struct {
	log logger.Logger
}

// LoggingMiddleware returns middleware that logs each construction at
// debug level and failures at error level.
func LoggingMiddleware(l logger.Logger) Middleware {
	return &loggingMiddleware{log: l}
}

func (m *loggingMiddleware) BeforeResolve(id Ident) error {
	m.log.Debug("resolving", logger.String("ident", id.String()))

	return nil
}

func (m *loggingMiddleware) AfterResolve(id Ident, _ any, err error) error {
	if err != nil {
		m.log.Error("resolution failed",
			logger.String("ident", id.String()),
			logger.Error(err),
		)

		return nil
	}

	m.log.Debug("resolved", logger.String("ident", id.String()))

	return nil
}

// metricsMiddleware counts cold resolutions and failures.
type metricsMiddleware struct {
	metrics metrics.Metrics
}

// MetricsMiddleware returns middleware that counts constructions and
// construction failures per identifier.
func MetricsMiddleware(m metrics.Metrics) Middleware {
	return &metricsMiddleware{metrics: m}
}

func (m *metricsMiddleware) BeforeResolve(id Ident) error {
	m.metrics.Counter("keel.resolutions_total",
		metrics.WithLabels(map[string]string{"ident": id.String()}),
	).Inc()

	return nil
}

func (m *metricsMiddleware) AfterResolve(id Ident, _ any, err error) error {
	if err != nil {
		m.metrics.Counter("keel.resolution_failures_total",
			metrics.WithLabels(map[string]string{"ident": id.String()}),
		).Inc()
	}

	return nil
}
