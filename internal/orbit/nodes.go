package orbit

import (
	"errors"
	"fmt"

	"github.com/ensigniasec/relic-scan/internal/validate"
)

// Node is a fixed destination on the dial.
type Node struct {
	ID    string  `json:"id" validate:"required"`
	Label string  `json:"label"`
	Angle float64 `json:"angle" validate:"finite"`
	Route string  `json:"route" validate:"required"`
}

// Reference node ids.
const (
	NodeHome     = "home"
	NodeScan     = "scan"
	NodeHistory  = "history"
	NodeSettings = "settings"
)

var (
	ErrDuplicateNodeID    = errors.New("duplicate node id")
	ErrDuplicateNodeAngle = errors.New("node angles must be distinct modulo 360")
)

// DefaultCatalog returns the four reference destinations at quarter turns.
func DefaultCatalog() []Node {
	return []Node{
		{ID: NodeHome, Label: "HOME", Angle: 0, Route: "/"},
		{ID: NodeScan, Label: "SCAN", Angle: 90, Route: "/scan"},
		{ID: NodeHistory, Label: "HISTORY", Angle: 180, Route: "/history"},
		{ID: NodeSettings, Label: "SETTINGS", Angle: 270, Route: "/settings"},
	}
}

// NewCatalog validates nodes and returns a private copy in the given order.
func NewCatalog(nodes []Node) ([]Node, error) {
	ids := make(map[string]struct{}, len(nodes))
	angles := make(map[float64]string, len(nodes))
	out := make([]Node, 0, len(nodes))
	for i, n := range nodes {
		if err := validate.Struct(n); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		if _, ok := ids[n.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNodeID, n.ID)
		}
		ids[n.ID] = struct{}{}
		a := NormalizeAngle(n.Angle)
		if other, ok := angles[a]; ok {
			return nil, fmt.Errorf("%w: %q and %q at %g°", ErrDuplicateNodeAngle, other, n.ID, a)
		}
		angles[a] = n.ID
		out = append(out, n)
	}
	return out, nil
}
