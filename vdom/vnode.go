package vdom

// TextTag is the tag of a bare text node.
const TextTag = "#text"

// VNode represents a virtual DOM node.
type VNode struct {
	Tag        string         // The HTML tag name
	Attributes map[string]any // The attributes of the node
	Children   []*VNode       // The child nodes
	Content    string         // The content of the node
	OnClick    func()         // Optional click event handler
}

// NewVNode creates a new VNode.
func NewVNode(tag string, attributes map[string]any, children []*VNode, content string) *VNode {
	var onClick func()
	if attributes != nil {
		if v, ok := attributes["onClick"]; ok {
			if f, ok := v.(func()); ok {
				onClick = f
				// Remove from attributes so it doesn't get rendered as an HTML attribute
				delete(attributes, "onClick")
			}
		}
	}
	return &VNode{
		Tag:        tag,
		Attributes: attributes,
		Children:   children,
		Content:    content,
		OnClick:    onClick,
	}
}

// SetContent updates the Content field of the VNode.
func (v *VNode) SetContent(content string) {
	v.Content = content
}

// ID returns the node's "id" attribute, or "" when it has none.
func (v *VNode) ID() string {
	if v == nil || v.Attributes == nil {
		return ""
	}
	id, _ := v.Attributes["id"].(string)
	return id
}

// Text creates a bare text node.
func Text(content string) *VNode {
	return NewVNode(TextTag, nil, nil, content)
}

// Paragraph creates a <p> VNode with the given text as its child and allows passing attributes.
func Paragraph(text string, attrs map[string]any) *VNode {
	return NewVNode("p", attrs, nil, text)
}

// Heading creates an <h1> VNode.
func Heading(text string, attrs map[string]any) *VNode {
	return NewVNode("h1", attrs, nil, text)
}

// Div creates a <div> VNode with the given children and allows passing attributes.
func Div(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("div", attrs, children, "")
}

// Button creates a <button> VNode with the given children and allows passing attributes.
func Button(content string, attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("button", attrs, children, content)
}
