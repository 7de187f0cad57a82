package app

import (
	"sort"

	"github.com/bvisness/flowwire/app/nodes"
	"github.com/bvisness/flowwire/util"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NodeKind is a template the palette can place.
type NodeKind struct {
	Name    string
	Inputs  []nodes.Port
	Outputs []nodes.Port
}

func ports(nameTypes ...string) []nodes.Port {
	util.Assert(len(nameTypes)%2 == 0, "ports takes name/type pairs, got %d strings", len(nameTypes))
	var res []nodes.Port
	for i := 0; i < len(nameTypes); i += 2 {
		res = append(res, nodes.Port{Name: nameTypes[i], Type: nameTypes[i+1]})
	}
	return res
}

var DefaultKinds = []NodeKind{
	{Name: "value", Outputs: ports("Value", "any")},
	{Name: "formula", Inputs: ports("Input", "any"), Outputs: ports("Result", "any")},
	{Name: "load file", Inputs: ports("Path", "text"), Outputs: ports("Content", "text")},
	{Name: "save file", Inputs: ports("Path", "text", "Content", "text")},
	{Name: "lines", Inputs: ports("Text", "text"), Outputs: ports("Lines", "list")},
	{Name: "trim spaces", Inputs: ports("Text", "text"), Outputs: ports("Text", "text")},
	{Name: "regex", Inputs: ports("Text", "text", "Pattern", "text"), Outputs: ports("Matches", "list")},
	{Name: "sort", Inputs: ports("List", "list"), Outputs: ports("Sorted", "list")},
	{Name: "http request", Inputs: ports("URL", "text"), Outputs: ports("Body", "text", "Status", "number")},
	{Name: "run process", Inputs: ports("Command", "text", "Stdin", "text"), Outputs: ports("Stdout", "text", "Exit Code", "number")},
}

var titler = cases.Title(language.English)

// Palette is the node picker opened over the canvas.
type Palette struct {
	Kinds []NodeKind

	Open     bool
	Query    string
	Selected int
	// Where the picked node goes, in scene space.
	At nodes.V2
}

func NewPalette() Palette {
	return Palette{Kinds: DefaultKinds}
}

func (p *Palette) Title(kind NodeKind) string {
	return titler.String(kind.Name)
}

// Search returns the kinds matching query, best match first. An empty
// query matches everything in palette order.
func (p *Palette) Search(query string) []NodeKind {
	if query == "" {
		return p.Kinds
	}
	names := util.Map(p.Kinds, func(k NodeKind) string { return k.Name })
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)
	return util.Map(ranks, func(r fuzzy.Rank) NodeKind { return p.Kinds[r.OriginalIndex] })
}

func (p *Palette) Show(at nodes.V2) {
	p.Open = true
	p.Query = ""
	p.Selected = 0
	p.At = at
}

func (p *Palette) Hide() {
	p.Open = false
}

// Choice returns the highlighted kind, if anything matches.
func (p *Palette) Choice() (NodeKind, bool) {
	results := p.Search(p.Query)
	if len(results) == 0 {
		return NodeKind{}, false
	}
	return results[util.Min(util.Max(p.Selected, 0), len(results)-1)], true
}

func (p *Palette) MoveSelection(delta int) {
	n := len(p.Search(p.Query))
	if n == 0 {
		p.Selected = 0
		return
	}
	p.Selected = ((p.Selected+delta)%n + n) % n
}
