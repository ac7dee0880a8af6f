//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package orbit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyboard_Arrows(t *testing.T) {
	nav := NewNavigator(DefaultCatalog())
	kb := NewKeyboard(nav, nil)

	tests := []struct {
		key  Key
		want string
	}{
		{KeyRight, NodeScan},
		{KeyDown, NodeHistory},
		{KeyLeft, NodeScan},
		{KeyUp, NodeHome},
		{KeyUp, NodeSettings},
	}
	for _, tt := range tests {
		require.True(t, kb.HandleKey(tt.key, false), tt.key.String())
		assert.Equal(t, tt.want, nav.State().ActiveNodeID, "after %s", tt.key)
		requireActiveIsClosest(t, nav)
	}
	assert.InDelta(t, 270, nav.State().CurrentAngle, 1e-9)
}

func TestKeyboard_TabCycles(t *testing.T) {
	nav := NewNavigator(DefaultCatalog())
	kb := NewKeyboard(nav, nil)
	catalog := nav.Catalog()

	var visited []string
	for range 4 {
		require.True(t, kb.HandleKey(KeyTab, false))
		visited = append(visited, nav.State().ActiveNodeID)
	}
	assert.Equal(t, []string{catalog[1].ID, catalog[2].ID, catalog[3].ID, catalog[0].ID}, visited)
	assert.InDelta(t, 0, nav.State().CurrentAngle, 1e-9)
}

func TestKeyboard_EnterAndSpaceNavigate(t *testing.T) {
	nav := NewNavigator(DefaultCatalog())
	var routes []string
	kb := NewKeyboard(nav, RouterFunc(func(route string) { routes = append(routes, route) }))

	require.True(t, kb.HandleKey(KeyEnter, false))
	nav.SetActiveNode(NodeHistory)
	require.True(t, kb.HandleKey(KeySpace, false))

	assert.Equal(t, []string{"/", "/history"}, routes)
}

func TestKeyboard_IgnoredInTextInput(t *testing.T) {
	nav := NewNavigator(DefaultCatalog())
	var routes []string
	kb := NewKeyboard(nav, RouterFunc(func(route string) { routes = append(routes, route) }))

	for _, k := range []Key{KeyLeft, KeyRight, KeyTab, KeyEnter, KeySpace} {
		assert.False(t, kb.HandleKey(k, true))
	}
	assert.Equal(t, State{ActiveNodeID: NodeHome}, nav.State())
	assert.Empty(t, routes)
}

func TestKeyboard_UnknownKeyNotConsumed(t *testing.T) {
	kb := NewKeyboard(NewNavigator(DefaultCatalog()), nil)
	assert.False(t, kb.HandleKey(KeyUnknown, false))
}

func TestKeyboard_EmptyCatalog(t *testing.T) {
	nav := NewNavigator(nil)
	called := false
	kb := NewKeyboard(nav, RouterFunc(func(string) { called = true }))
	assert.True(t, kb.HandleKey(KeyTab, false))
	assert.True(t, kb.HandleKey(KeyEnter, false))
	assert.False(t, called)
}
