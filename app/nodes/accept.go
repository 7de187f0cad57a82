package nodes

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/google/uuid"
)

// DefaultAcceptRule refuses loops back into the same node and ports of
// different types, unless the sink takes anything.
const DefaultAcceptRule = `sourceNode != sinkNode && (sinkType == "any" || sourceType == sinkType)`

// AnyType is the type of a port that declares none, and of a free end.
const AnyType = "any"

// PortRef describes one end of a proposed connection.
type PortRef struct {
	Node uuid.UUID
	Port int
	Type string
}

// Candidate is a connection as it would be if a node accepted it. An end
// that is not bound anywhere has a nil Node.
type Candidate struct {
	Source PortRef
	Sink   PortRef
}

func (c Candidate) env() map[string]any {
	node := func(r PortRef) string {
		if r.Node == uuid.Nil {
			return ""
		}
		return r.Node.String()
	}
	port := func(r PortRef) int {
		if r.Node == uuid.Nil {
			return -1
		}
		return r.Port
	}
	typ := func(r PortRef) string {
		if r.Node == uuid.Nil || r.Type == "" {
			return AnyType
		}
		return r.Type
	}
	return map[string]any{
		"sourceNode": node(c.Source),
		"sinkNode":   node(c.Sink),
		"sourcePort": port(c.Source),
		"sinkPort":   port(c.Sink),
		"sourceType": typ(c.Source),
		"sinkType":   typ(c.Sink),
	}
}

// AcceptRule is a compiled boolean expression deciding whether a node takes
// a dropped connection end.
type AcceptRule struct {
	Source  string
	program *vm.Program
}

// NewAcceptRule compiles src. An empty src means DefaultAcceptRule.
func NewAcceptRule(src string) (*AcceptRule, error) {
	if strings.TrimSpace(src) == "" {
		src = DefaultAcceptRule
	}
	program, err := expr.Compile(src, expr.Env(Candidate{}.env()), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("bad accept rule %q: %w", src, err)
	}
	return &AcceptRule{Source: src, program: program}, nil
}

func MustAcceptRule(src string) *AcceptRule {
	rule, err := NewAcceptRule(src)
	if err != nil {
		panic(err)
	}
	return rule
}

var defaultRule = MustAcceptRule(DefaultAcceptRule)

func (r *AcceptRule) Allows(c Candidate) (bool, error) {
	out, err := expr.Run(r.program, c.env())
	if err != nil {
		return false, fmt.Errorf("accept rule %q: %w", r.Source, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("accept rule %q returned %T", r.Source, out)
	}
	return ok, nil
}
