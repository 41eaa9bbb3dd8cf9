package keel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall_RegistersAll(t *testing.T) {
	b := NewBuilder()

	err := Install(b,
		Def(NewIdent("db"), func(r Resolver) (any, error) {
			return &testLogger{name: "db"}, nil
		}, Singleton()),
		Def(NewIdent("cache"), func(r Resolver) (any, error) {
			return &testLogger{name: "cache"}, nil
		}, Transient()),
	)
	require.NoError(t, err)

	c, err := b.Build()
	require.NoError(t, err)

	assert.True(t, c.Has(NewIdent("db")))
	assert.True(t, c.Has(NewIdent("cache")))
}

func TestInstall_StopsAtFirstError(t *testing.T) {
	b := NewBuilder()

	err := Install(b,
		Def(NewIdent("db"), nil),
		Def(NewIdent("cache"), func(r Resolver) (any, error) {
			return &testLogger{}, nil
		}),
	)
	require.ErrorIs(t, err, ErrInvalidFactory)

	c, err := b.Build()
	require.NoError(t, err)

	assert.False(t, c.Has(NewIdent("cache")))
}

func TestApply_RunsModulesInOrder(t *testing.T) {
	storage := func(b *Builder) error {
		return b.Bind(NewIdent("db"), func(r Resolver) (any, error) {
			return &testLogger{name: "db"}, nil
		}, Singleton())
	}
	web := func(b *Builder) error {
		return b.Bind(NewIdent("server"), func(r Resolver) (any, error) {
			db, err := r.Resolve(NewIdent("db"))
			if err != nil {
				return nil, err
			}

			return &testService{logger: db.(*testLogger)}, nil
		}, Singleton(), DependsOn(NewIdent("db")))
	}

	b := NewBuilder()
	require.NoError(t, b.Apply(storage, web))

	c, err := b.Build()
	require.NoError(t, err)

	server, err := Resolve[*testService](c, NewIdent("server"))
	require.NoError(t, err)
	assert.Equal(t, "db", server.logger.name)
}

func TestApply_PropagatesModuleError(t *testing.T) {
	broken := func(b *Builder) error {
		return b.Bind(Ident{}, func(r Resolver) (any, error) {
			return nil, nil
		})
	}

	b := NewBuilder()
	err := b.Apply(broken)
	assert.ErrorIs(t, err, ErrInvalidIdent)
}
