package core

import (
	"fmt"

	"github.com/google/uuid"
)

// EndType names one end of a connection.
type EndType int

const (
	EndNone EndType = iota
	EndSource
	EndSink
)

func (e EndType) String() string {
	switch e {
	case EndNone:
		return "none"
	case EndSource:
		return "source"
	case EndSink:
		return "sink"
	default:
		return fmt.Sprintf("EndType(%d)", int(e))
	}
}

// Opposite returns the other end. EndNone has no opposite.
func (e EndType) Opposite() EndType {
	switch e {
	case EndSource:
		return EndSink
	case EndSink:
		return EndSource
	default:
		return EndNone
	}
}

func (e EndType) valid() bool {
	return e == EndSource || e == EndSink
}

// Binding anchors an endpoint to a port on a node. The zero Binding is unbound.
type Binding struct {
	Node uuid.UUID
	Port int
}

func (b Binding) Bound() bool {
	return b.Node != uuid.Nil
}

func (b Binding) String() string {
	if !b.Bound() {
		return "unbound"
	}
	return fmt.Sprintf("%s:%d", b.Node, b.Port)
}

// Endpoint is one terminus of a connection. Pos is authoritative while the
// endpoint is free; while bound it caches the port's anchor point.
type Endpoint struct {
	Pos     V2
	Binding Binding
}

func (e Endpoint) Bound() bool {
	return e.Binding.Bound()
}
