package vdom

import (
	"reflect"
	"strings"
)

// FindByID returns the first node in the tree whose id attribute equals id.
func FindByID(root *VNode, id string) *VNode {
	if root == nil || id == "" {
		return nil
	}
	if root.ID() == id {
		return root
	}
	for _, child := range root.Children {
		if found := FindByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

// TextContent concatenates the content of n and all its descendants,
// separating nodes with a single space.
func TextContent(n *VNode) string {
	var parts []string
	collectText(n, &parts)
	return strings.Join(parts, " ")
}

func collectText(n *VNode, parts *[]string) {
	if n == nil {
		return
	}
	if n.Content != "" {
		*parts = append(*parts, n.Content)
	}
	for _, child := range n.Children {
		collectText(child, parts)
	}
}

// Equal reports whether two trees would produce the same markup.
// Event handlers are ignored; only their presence matters.
func Equal(a, b *VNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Tag != b.Tag || a.Content != b.Content || (a.OnClick == nil) != (b.OnClick == nil) {
		return false
	}
	if !equalAttrs(a.Attributes, b.Attributes) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func equalAttrs(a, b map[string]any) bool {
	count := func(m map[string]any) int {
		n := 0
		for k := range m {
			if !isEventKey(k) {
				n++
			}
		}
		return n
	}
	if count(a) != count(b) {
		return false
	}
	for k, av := range a {
		if isEventKey(k) {
			continue
		}
		bv, ok := b[k]
		if !ok {
			return false
		}
		if _, fn := av.(func()); fn {
			continue
		}
		if !reflect.DeepEqual(av, bv) {
			return false
		}
	}
	return true
}
