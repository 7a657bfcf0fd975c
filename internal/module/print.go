package module

import (
	"github.com/xlab/treeprint"

	"salad-rustgen/internal/rust"
)

// Print renders the module tree as an indented outline: modules as branches,
// items as leaves annotated with the schema they were lowered from.
func Print(root *Module) string {
	tree := treeprint.NewWithRoot(root.Ident().String())
	addBranch(tree, root)

	return tree.String()
}

func addBranch(tree treeprint.Tree, mod *Module) {
	for _, item := range mod.Items() {
		ident := item.ItemIdent()
		_, origin, _ := mod.Item(ident)

		tree.AddMetaNode(itemKind(item), ident.String()+" ("+origin+")")
	}

	for _, child := range mod.Children() {
		addBranch(tree.AddMetaBranch("mod", child.Ident().String()), child)
	}
}

func itemKind(item rust.Item) string {
	switch item.(type) {
	case rust.Struct:
		return "struct"
	case rust.Enum:
		return "enum"
	default:
		return "item"
	}
}
