package keel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTyped_Success(t *testing.T) {
	c := buildContainer(t, func(b *Builder) {
		_ = b.Bind(NewIdent("logger"), func(r Resolver) (any, error) {
			return &testLogger{name: "typed"}, nil
		}, Singleton())
	})

	logger, err := Resolve[*testLogger](c, NewIdent("logger"))
	require.NoError(t, err)
	assert.Equal(t, "typed", logger.name)
}

func TestResolveTyped_TypeMismatch(t *testing.T) {
	c := buildContainer(t, func(b *Builder) {
		_ = b.Bind(NewIdent("logger"), func(r Resolver) (any, error) {
			return &testLogger{name: "typed"}, nil
		}, Singleton())
	})

	_, err := Resolve[*testService](c, NewIdent("logger"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatchSentinel)
}

func TestResolveTyped_NotRegistered(t *testing.T) {
	c := buildContainer(t, func(b *Builder) {})

	_, err := Resolve[*testLogger](c, NewIdent("missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotRegisteredSentinel)
}

func TestMust_ReturnsInstance(t *testing.T) {
	c := buildContainer(t, func(b *Builder) {
		_ = b.Bind(NewIdent("logger"), func(r Resolver) (any, error) {
			return &testLogger{name: "must"}, nil
		}, Singleton())
	})

	logger := Must[*testLogger](c, NewIdent("logger"))
	assert.Equal(t, "must", logger.name)
}

func TestMust_PanicsOnMissing(t *testing.T) {
	c := buildContainer(t, func(b *Builder) {})

	assert.Panics(t, func() {
		Must[*testLogger](c, NewIdent("missing"))
	})
}

func TestResolveAllTyped_Success(t *testing.T) {
	c := buildContainer(t, func(b *Builder) {
		_ = b.Bind(NewIdent("handler"), func(r Resolver) (any, error) {
			return &testService{id: 1}, nil
		}, Singleton())
		_ = b.Bind(NewIdent("handler"), func(r Resolver) (any, error) {
			return &testService{id: 2}, nil
		}, Singleton())
	})

	handlers, err := ResolveAll[*testService](c, NewIdent("handler"))
	require.NoError(t, err)
	require.Len(t, handlers, 2)
	assert.Equal(t, 1, handlers[0].id)
	assert.Equal(t, 2, handlers[1].id)
}

func TestResolveAllTyped_MismatchFails(t *testing.T) {
	c := buildContainer(t, func(b *Builder) {
		_ = b.Bind(NewIdent("handler"), func(r Resolver) (any, error) {
			return &testService{id: 1}, nil
		}, Singleton())
		_ = b.Bind(NewIdent("handler"), func(r Resolver) (any, error) {
			return &testLogger{name: "odd one out"}, nil
		}, Singleton())
	})

	_, err := ResolveAll[*testService](c, NewIdent("handler"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatchSentinel)
}

func TestResolveKeyedTyped(t *testing.T) {
	c := buildContainer(t, func(b *Builder) {
		_ = b.Bind(NewIdent("db"), func(r Resolver) (any, error) {
			return &testLogger{name: "primary"}, nil
		}, Singleton(), WithKey("primary"))
	})

	db, err := ResolveKeyed[*testLogger](c, NewIdent("db"), "primary")
	require.NoError(t, err)
	assert.Equal(t, "primary", db.name)

	_, err = ResolveKeyed[*testService](c, NewIdent("db"), "primary")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatchSentinel)
}

func TestBindSingletonTyped(t *testing.T) {
	b := NewBuilder()

	calls := 0
	err := BindSingleton(b, NewIdent("logger"), func(r Resolver) (*testLogger, error) {
		calls++

		return &testLogger{name: "typed singleton"}, nil
	})
	require.NoError(t, err)

	c, err := b.Build()
	require.NoError(t, err)

	first := Must[*testLogger](c, NewIdent("logger"))
	second := Must[*testLogger](c, NewIdent("logger"))

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestBindTransientTyped(t *testing.T) {
	b := NewBuilder()

	err := BindTransient(b, NewIdent("svc"), func(r Resolver) (*testService, error) {
		return &testService{}, nil
	})
	require.NoError(t, err)

	c, err := b.Build()
	require.NoError(t, err)

	first := Must[*testService](c, NewIdent("svc"))
	second := Must[*testService](c, NewIdent("svc"))

	assert.NotSame(t, first, second)
}

func TestBindPerRequestTyped(t *testing.T) {
	b := NewBuilder()

	err := BindPerRequest(b, NewIdent("unit"), func(r Resolver) (*testService, error) {
		return &testService{}, nil
	})
	require.NoError(t, err)
	require.NoError(t, BindTransient(b, NewIdent("pair"), func(r Resolver) ([2]any, error) {
		first, err := r.Resolve(NewIdent("unit"))
		if err != nil {
			return [2]any{}, err
		}

		second, err := r.Resolve(NewIdent("unit"))
		if err != nil {
			return [2]any{}, err
		}

		return [2]any{first, second}, nil
	}))

	c, err := b.Build()
	require.NoError(t, err)

	pair := Must[[2]any](c, NewIdent("pair"))
	assert.Same(t, pair[0], pair[1])
}

func TestBindTyped_NilFactory(t *testing.T) {
	b := NewBuilder()

	err := BindSingleton[*testLogger](b, NewIdent("logger"), nil)
	assert.ErrorIs(t, err, ErrInvalidFactory)
}

func TestBindValueTyped(t *testing.T) {
	b := NewBuilder()

	value := &testLogger{name: "prebuilt"}
	require.NoError(t, BindValue(b, NewIdent("logger"), value))

	c, err := b.Build()
	require.NoError(t, err)

	resolved := Must[*testLogger](c, NewIdent("logger"))
	assert.Same(t, value, resolved)
}
