package vdom

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ClickAttr marks elements whose click should be sent back to the server.
const ClickAttr = "data-click"

// RenderHTML writes the HTML serialization of n to w.
func RenderHTML(w io.Writer, n *VNode) error {
	if n == nil {
		return nil
	}
	node := toHTMLNode(n)
	if node == nil {
		return nil
	}
	if err := html.Render(w, node); err != nil {
		return fmt.Errorf("render %s: %w", n.Tag, err)
	}
	return nil
}

// HTMLString is RenderHTML into a string.
func HTMLString(n *VNode) (string, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toHTMLNode(n *VNode) *html.Node {
	if n.Tag == TextTag {
		if n.Content == "" {
			return nil
		}
		return &html.Node{Type: html.TextNode, Data: n.Content}
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
		Attr:     htmlAttrs(n),
	}

	if isVoid(n.Tag) {
		// Void elements carry their content as the value attribute.
		if n.Content != "" {
			el.Attr = append(el.Attr, html.Attribute{Key: "value", Val: n.Content})
		}
		return el
	}

	if n.Content != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Content})
	}
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		if c := toHTMLNode(child); c != nil {
			el.AppendChild(c)
		}
	}
	return el
}

// htmlAttrs converts attributes in key order so output is stable between renders.
func htmlAttrs(n *VNode) []html.Attribute {
	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]html.Attribute, 0, len(keys)+1)
	for _, k := range keys {
		switch v := n.Attributes[k].(type) {
		case bool:
			if v {
				attrs = append(attrs, html.Attribute{Key: k})
			}
		case nil, func():
		default:
			if isEventKey(k) {
				continue
			}
			attrs = append(attrs, html.Attribute{Key: k, Val: fmt.Sprint(v)})
		}
	}
	if n.OnClick != nil && n.ID() != "" {
		attrs = append(attrs, html.Attribute{Key: ClickAttr, Val: n.ID()})
	}
	return attrs
}

func isEventKey(k string) bool {
	return len(k) > 2 && strings.HasPrefix(k, "on") && k[2] >= 'A' && k[2] <= 'Z'
}

func isVoid(tag string) bool {
	switch tag {
	case "input", "br", "hr", "img", "meta", "link":
		return true
	}
	return false
}
