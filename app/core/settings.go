package core

import (
	"fmt"
	"strings"
)

// OrphanPolicy decides what happens to a drag that ends without a node
// accepting the free end.
type OrphanPolicy int

const (
	// OrphanDiscard destroys a connection still being created and puts a
	// rerouted end back on the port it was pulled from.
	OrphanDiscard OrphanPolicy = iota
	// OrphanKeep leaves the free end where it was dropped.
	OrphanKeep
)

func ParseOrphanPolicy(s string) (OrphanPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "discard", "":
		return OrphanDiscard, nil
	case "keep":
		return OrphanKeep, nil
	default:
		return OrphanDiscard, fmt.Errorf("unknown orphan policy %q", s)
	}
}

func (p OrphanPolicy) String() string {
	switch p {
	case OrphanKeep:
		return "keep"
	default:
		return "discard"
	}
}

func (p OrphanPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *OrphanPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseOrphanPolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

type WiringSettings struct {
	// Diameter of the endpoint markers, in scene units.
	PointDiameter float32 `json:"point_diameter"`
	LineWidth     float32 `json:"line_width"`
	// Grab radius around an endpoint, as a multiple of PointDiameter.
	GrabTolerance float32 `json:"grab_tolerance"`
	// Extra padding around a connection's bounds so the curve's overshoot
	// past its endpoints is still covered.
	Overshoot    float32      `json:"overshoot"`
	OrphanPolicy OrphanPolicy `json:"orphan_policy"`
}

func DefaultWiringSettings() WiringSettings {
	return WiringSettings{
		PointDiameter: 10,
		LineWidth:     3,
		GrabTolerance: 2,
		Overshoot:     20,
		OrphanPolicy:  OrphanDiscard,
	}
}
