package orbit

// Key is a navigation key after the host has decoded its own key events.
type Key int

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyUp
	KeyRight
	KeyDown
	KeyTab
	KeyEnter
	KeySpace
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyUp:
		return "up"
	case KeyRight:
		return "right"
	case KeyDown:
		return "down"
	case KeyTab:
		return "tab"
	case KeyEnter:
		return "enter"
	case KeySpace:
		return "space"
	default:
		return "unknown"
	}
}

// Router performs navigation to a node's route.
type Router interface {
	Navigate(route string)
}

// RouterFunc adapts a function to Router.
type RouterFunc func(route string)

// Navigate calls f(route).
func (f RouterFunc) Navigate(route string) { f(route) }

// KeyStep is the rotation applied by one arrow key press.
const KeyStep = 90.0

// Keyboard maps discrete keys onto the navigator.
type Keyboard struct {
	nav    *Navigator
	router Router
}

// NewKeyboard returns a Keyboard. router may be nil, in which case Enter and
// Space are still consumed but navigate nowhere.
func NewKeyboard(nav *Navigator, router Router) *Keyboard {
	return &Keyboard{nav: nav, router: router}
}

// HandleKey applies k and reports whether the host should suppress its
// default handling. Keys are ignored while focus is inside a text input.
func (kb *Keyboard) HandleKey(k Key, inTextInput bool) (consumed bool) {
	if inTextInput {
		return false
	}
	switch k {
	case KeyLeft, KeyUp:
		kb.nav.RotateBy(-KeyStep)
	case KeyRight, KeyDown:
		kb.nav.RotateBy(KeyStep)
	case KeyTab:
		kb.nextNode()
	case KeyEnter, KeySpace:
		kb.activate()
	default:
		return false
	}
	return true
}

func (kb *Keyboard) nextNode() {
	catalog := kb.nav.Catalog()
	if len(catalog) == 0 {
		return
	}
	active := kb.nav.State().ActiveNodeID
	idx := -1
	for i, n := range catalog {
		if n.ID == active {
			idx = i
			break
		}
	}
	kb.nav.SetActiveNode(catalog[(idx+1)%len(catalog)].ID)
}

func (kb *Keyboard) activate() {
	node, ok := kb.nav.ActiveNode()
	if !ok || kb.router == nil {
		return
	}
	kb.router.Navigate(node.Route)
}
