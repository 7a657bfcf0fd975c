package module

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"salad-rustgen/internal/rust"
)

// ErrDuplicateType is returned when two items with the same identifier are
// added to one module.
var ErrDuplicateType = errors.New("duplicate type")

// rootIdent is the path segment that names the crate root.
const rootIdent rust.Ident = "crate"

// Module is a node of the module tree. Children and items are owned; the
// parent link is a back-reference.
type Module struct {
	ident    rust.Ident
	parent   *Module
	children map[rust.Ident]*Module
	items    map[rust.Ident]entry
}

type entry struct {
	item   rust.Item
	origin string
}

// NewRoot creates an empty crate root module.
func NewRoot() *Module {
	return newModule(rootIdent, nil)
}

func newModule(ident rust.Ident, parent *Module) *Module {
	return &Module{
		ident:    ident,
		parent:   parent,
		children: make(map[rust.Ident]*Module),
		items:    make(map[rust.Ident]entry),
	}
}

// Ident returns the module identifier; the root is "crate".
func (m *Module) Ident() rust.Ident { return m.ident }

// Parent returns the enclosing module, or nil for the root.
func (m *Module) Parent() *Module { return m.parent }

// IsRoot reports whether m is the crate root.
func (m *Module) IsRoot() bool { return m.parent == nil }

// IsLeaf reports whether m has no child modules.
func (m *Module) IsLeaf() bool { return len(m.children) == 0 }

// AddSubmodule walks the child chain named by path starting at m, creating
// missing modules, and returns the last one. An empty path returns m.
func (m *Module) AddSubmodule(path ...rust.Ident) *Module {
	current := m

	for _, ident := range path {
		child, ok := current.children[ident]
		if !ok {
			child = newModule(ident, current)
			current.children[ident] = child
		}

		current = child
	}

	return current
}

// Child returns the direct child named ident.
func (m *Module) Child(ident rust.Ident) (*Module, bool) {
	child, ok := m.children[ident]
	return child, ok
}

// AddItem adds item under its own identifier and returns its qualified path.
// origin names the schema the item was lowered from and is reported when two
// items collide.
func (m *Module) AddItem(item rust.Item, origin string) (rust.Path, error) {
	ident := item.ItemIdent()
	path := m.PathFromRoot().Join(ident)

	if existing, ok := m.items[ident]; ok {
		return rust.Path{}, fmt.Errorf("%w: %s and %s both lower to %s",
			ErrDuplicateType, existing.origin, origin, path)
	}

	m.items[ident] = entry{item: item, origin: origin}

	return path, nil
}

// Item returns the item named ident and the schema it came from.
func (m *Module) Item(ident rust.Ident) (rust.Item, string, bool) {
	e, ok := m.items[ident]
	return e.item, e.origin, ok
}

// PathFromRoot returns the path of the module itself, such as crate::a::b.
func (m *Module) PathFromRoot() rust.Path {
	var idents []rust.Ident

	for cur := m; cur != nil; cur = cur.parent {
		idents = append(idents, cur.ident)
	}

	slices.Reverse(idents)

	return rust.SimplePath(idents...)
}

// Children returns child modules sorted by identifier.
func (m *Module) Children() []*Module {
	keys := slices.SortedFunc(maps.Keys(m.children), compareIdents)

	children := make([]*Module, len(keys))
	for i, key := range keys {
		children[i] = m.children[key]
	}

	return children
}

// Items returns the module's items sorted by identifier.
func (m *Module) Items() []rust.Item {
	keys := slices.SortedFunc(maps.Keys(m.items), compareIdents)

	items := make([]rust.Item, len(keys))
	for i, key := range keys {
		items[i] = m.items[key].item
	}

	return items
}

// Walk visits m and its descendants in pre-order, children sorted by
// identifier. depth is 0 for m. A non-nil error from fn stops the walk.
func (m *Module) Walk(fn func(mod *Module, depth int) error) error {
	return m.walk(fn, 0)
}

func (m *Module) walk(fn func(mod *Module, depth int) error, depth int) error {
	if err := fn(m, depth); err != nil {
		return err
	}

	for _, child := range m.Children() {
		if err := child.walk(fn, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// compareIdents orders identifiers by their bare form so raw identifiers sort
// with their plain spelling.
func compareIdents(a, b rust.Ident) int {
	return cmp.Or(strings.Compare(a.Bare(), b.Bare()), strings.Compare(string(a), string(b)))
}
