package app

import (
	"testing"

	"github.com/bvisness/flowwire/app/nodes"
	"github.com/bvisness/flowwire/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(kinds []NodeKind) []string {
	return util.Map(kinds, func(k NodeKind) string { return k.Name })
}

func TestPalette_Search(t *testing.T) {
	p := NewPalette()

	assert.Equal(t, names(DefaultKinds), names(p.Search("")))

	res := p.Search("file")
	assert.ElementsMatch(t, []string{"load file", "save file"}, names(res))

	res = p.Search("LOADFILE")
	require.NotEmpty(t, res)
	assert.Equal(t, "load file", res[0].Name)

	res = p.Search("sort")
	require.NotEmpty(t, res)
	assert.Equal(t, "sort", res[0].Name, "exact match ranks first")

	assert.Empty(t, p.Search("zzz"))
}

func TestPalette_Title(t *testing.T) {
	p := NewPalette()
	assert.Equal(t, "Http Request", p.Title(NodeKind{Name: "http request"}))
	assert.Equal(t, "Value", p.Title(DefaultKinds[0]))
}

func TestPalette_Selection(t *testing.T) {
	p := NewPalette()
	p.Show(nodes.V2{X: 5, Y: 5})
	p.Query = "file"

	first, ok := p.Choice()
	require.True(t, ok)
	p.MoveSelection(1)
	second, ok := p.Choice()
	require.True(t, ok)
	assert.NotEqual(t, first.Name, second.Name)

	p.MoveSelection(1)
	wrapped, _ := p.Choice()
	assert.Equal(t, first.Name, wrapped.Name)

	p.MoveSelection(-1)
	back, _ := p.Choice()
	assert.Equal(t, second.Name, back.Name)

	p.Query = "zzz"
	_, ok = p.Choice()
	assert.False(t, ok)
}

func TestPorts(t *testing.T) {
	assert.Panics(t, func() { ports("Odd") })
	assert.Len(t, ports("A", "text", "B", "number"), 2)
}
