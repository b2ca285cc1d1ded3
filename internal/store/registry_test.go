package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeAdapter struct{ name string }

func (a fakeAdapter) Name() string { return a.name }

func (a fakeAdapter) Connect(ctx context.Context, cfg AdapterConfig) (AdapterConnection, error) {
	return nil, ctx.Err()
}

func TestRegistry(t *testing.T) {
	RegisterAdapter(fakeAdapter{name: "fake-registry"})

	a, ok := GetAdapter("fake-registry")
	require.True(t, ok)
	require.Equal(t, "fake-registry", a.Name())
	require.Contains(t, ListAdapters(), "fake-registry")

	require.Panics(t, func() { RegisterAdapter(fakeAdapter{name: "fake-registry"}) })
}

func TestOpenAdapter_Unregistered(t *testing.T) {
	_, err := OpenAdapter(context.Background(), AdapterConfig{Name: "nope"})
	require.ErrorContains(t, err, `"nope" not registered`)
}
