package acquire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryOrdering(t *testing.T) {
	a := &fakeSource{id: "a", priority: 2}
	b := &fakeSource{id: "b", priority: 1}
	c := &fakeSource{id: "c", priority: 2}

	registry := NewRegistry(a, b, c)
	require.Equal(t, 3, registry.Len())

	ordered := registry.ByPriority()
	require.Equal(t, "b", ordered[0].ID())
	// equal priorities keep registration order
	require.Equal(t, "a", ordered[1].ID())
	require.Equal(t, "c", ordered[2].ID())
}
