package orbit

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultSnapStep is the snap interval for a four-node dial.
const DefaultSnapStep = 90.0

// State is a snapshot of the dial.
type State struct {
	// CurrentAngle is always normalized into [0, 360).
	CurrentAngle float64 `json:"current_angle"`
	// ActiveNodeID is empty only when the catalog is empty.
	ActiveNodeID string `json:"active_node_id"`
	IsRotating   bool   `json:"is_rotating"`
	IsDragging   bool   `json:"is_dragging"`
}

// Navigator owns the dial state. Every operation is a single transition and
// leaves ActiveNodeID equal to the node closest to CurrentAngle.
type Navigator struct {
	catalog  []Node
	snapStep float64

	mu    sync.Mutex
	state State
	subs  []subscriber
	next  int
}

type subscriber struct {
	id int
	fn func(State)
}

// NavigatorOption customizes a Navigator.
type NavigatorOption func(*Navigator)

// WithSnapStep overrides the snap interval used by SnapToNearest.
func WithSnapStep(step float64) NavigatorOption {
	return func(n *Navigator) {
		if step > 0 && isFinite(step) {
			n.snapStep = step
		}
	}
}

// NewNavigator returns a Navigator at angle 0 over catalog. The catalog is
// expected to come from NewCatalog or DefaultCatalog.
func NewNavigator(catalog []Node, opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		catalog:  append([]Node(nil), catalog...),
		snapStep: DefaultSnapStep,
	}
	for _, opt := range opts {
		opt(n)
	}
	n.state = n.initialState()
	return n
}

func (n *Navigator) initialState() State {
	return State{CurrentAngle: 0, ActiveNodeID: n.closestID(0)}
}

func (n *Navigator) closestID(angle float64) string {
	if node, ok := FindClosestNode(angle, n.catalog); ok {
		return node.ID
	}
	return ""
}

// Catalog returns a copy of the nodes in catalog order.
func (n *Navigator) Catalog() []Node {
	return append([]Node(nil), n.catalog...)
}

// State returns the current snapshot.
func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// ActiveNode returns the node referenced by ActiveNodeID.
func (n *Navigator) ActiveNode() (Node, bool) {
	n.mu.Lock()
	id := n.state.ActiveNodeID
	n.mu.Unlock()
	return n.node(id)
}

func (n *Navigator) node(id string) (Node, bool) {
	for _, node := range n.catalog {
		if node.ID == id {
			return node, true
		}
	}
	return Node{}, false
}

// Subscribe registers fn to receive every new state. The returned func
// removes the subscription and is safe to call more than once.
func (n *Navigator) Subscribe(fn func(State)) (unsubscribe func()) {
	n.mu.Lock()
	id := n.next
	n.next++
	n.subs = append(n.subs, subscriber{id: id, fn: fn})
	n.mu.Unlock()
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// RotateBy turns the dial by delta degrees. Non-finite deltas are ignored.
func (n *Navigator) RotateBy(delta float64) {
	if !isFinite(delta) {
		logrus.Debugf("orbit: ignoring non-finite rotation delta %v", delta)
		return
	}
	n.update(func(s *State) {
		s.CurrentAngle = NormalizeAngle(s.CurrentAngle + delta)
		s.ActiveNodeID = n.closestID(s.CurrentAngle)
	})
}

// RotateTo sets the dial to an absolute angle. Non-finite angles are ignored.
func (n *Navigator) RotateTo(angle float64) {
	if !isFinite(angle) {
		logrus.Debugf("orbit: ignoring non-finite angle %v", angle)
		return
	}
	n.update(func(s *State) {
		s.CurrentAngle = NormalizeAngle(angle)
		s.ActiveNodeID = n.closestID(s.CurrentAngle)
	})
}

// SetActiveNode jumps the dial to the node with the given id. Unknown ids are ignored.
func (n *Navigator) SetActiveNode(id string) {
	node, ok := n.node(id)
	if !ok {
		logrus.Debugf("orbit: ignoring unknown node %q", id)
		return
	}
	n.update(func(s *State) {
		s.CurrentAngle = NormalizeAngle(node.Angle)
		s.ActiveNodeID = node.ID
	})
}

// SnapToNearest rounds the dial to the nearest snap stop and clears IsRotating.
func (n *Navigator) SnapToNearest() {
	n.update(func(s *State) {
		s.CurrentAngle = NormalizeAngle(SnapAngle(s.CurrentAngle, n.snapStep))
		s.ActiveNodeID = n.closestID(s.CurrentAngle)
		s.IsRotating = false
	})
}

// SetRotating sets the rotating flag.
func (n *Navigator) SetRotating(rotating bool) {
	n.update(func(s *State) { s.IsRotating = rotating })
}

// SetDragging sets the dragging flag.
func (n *Navigator) SetDragging(dragging bool) {
	n.update(func(s *State) { s.IsDragging = dragging })
}

// Reset restores the initial state.
func (n *Navigator) Reset() {
	n.update(func(s *State) { *s = n.initialState() })
}

func (n *Navigator) update(apply func(*State)) {
	n.mu.Lock()
	prev := n.state
	apply(&n.state)
	next := n.state
	subs := n.subs
	n.mu.Unlock()

	if prev == next {
		return
	}
	for _, s := range subs {
		s.fn(next)
	}
}
