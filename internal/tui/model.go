package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vcrobe/nojs-counter/internal/app/components"
	"github.com/vcrobe/nojs-counter/vdom"
)

// Controller is the part of a mounted surface the model drives.
type Controller interface {
	Dispatch(id string) error
	Navigate(path string) error
}

type treeMsg struct{ tree *vdom.VNode }

type navigatedMsg struct{ path string }

type errMsg struct{ err error }

// Buttons tried in order when the user asks for an increment or decrement.
var (
	incrementTargets = []string{components.IncrementID, components.ParentIncrementID, components.ChildIncrementID}
	decrementTargets = []string{components.DecrementID}
)

const help = "+/→ increment • -/← decrement • tab next page • q quit"

// Model is the Bubble Tea model of one terminal surface.
type Model struct {
	ctl   Controller
	pages []string
	path  string
	tree  *vdom.VNode
	err   error
}

// NewModel creates a model showing tree at path. Tab cycles through pages.
func NewModel(ctl Controller, pages []string, path string, tree *vdom.VNode) Model {
	return Model{ctl: ctl, pages: pages, path: path, tree: tree}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case treeMsg:
		m.tree = msg.tree
		return m, nil

	case navigatedMsg:
		m.path = msg.path
		m.err = nil
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=", "right":
			return m, m.click(incrementTargets)
		case "-", "left":
			return m, m.click(decrementTargets)
		case "tab":
			return m, m.navigate(m.nextPage())
		}
	}
	return m, nil
}

// click dispatches to the first target present in the current tree. The
// dispatch runs as a command: it re-renders synchronously and the surface
// sends the new tree back through the program.
func (m Model) click(targets []string) tea.Cmd {
	id := ""
	for _, t := range targets {
		if n := vdom.FindByID(m.tree, t); n != nil && n.OnClick != nil {
			id = t
			break
		}
	}
	if id == "" {
		return nil
	}

	ctl := m.ctl
	return func() tea.Msg {
		if err := ctl.Dispatch(id); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (m Model) navigate(path string) tea.Cmd {
	if path == "" || path == m.path {
		return nil
	}
	ctl := m.ctl
	return func() tea.Msg {
		if err := ctl.Navigate(path); err != nil {
			return errMsg{err: err}
		}
		return navigatedMsg{path: path}
	}
}

func (m Model) nextPage() string {
	if len(m.pages) == 0 {
		return ""
	}
	for i, p := range m.pages {
		if p == m.path {
			return m.pages[(i+1)%len(m.pages)]
		}
	}
	return m.pages[0]
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.path)
	b.WriteString("\n\n")
	for _, line := range Lines(m.tree) {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\nerror: ")
		b.WriteString(m.err.Error())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(help)
	b.WriteString("\n")
	return b.String()
}

// Lines lays a tree out as text: block elements start a new line, buttons
// and text runs sit side by side.
func Lines(n *vdom.VNode) []string {
	if n == nil {
		return nil
	}
	if isInline(n) {
		return []string{inlineText(n)}
	}

	var out, row []string
	flush := func() {
		if len(row) > 0 {
			out = append(out, strings.Join(row, "  "))
			row = nil
		}
	}

	if n.Content != "" {
		out = append(out, n.Content)
	}
	for _, c := range n.Children {
		if isInline(c) {
			row = append(row, inlineText(c))
			continue
		}
		flush()
		out = append(out, Lines(c)...)
	}
	flush()
	return out
}

func isInline(n *vdom.VNode) bool {
	switch n.Tag {
	case "button", "span", "a", vdom.TextTag:
		return true
	}
	return false
}

func inlineText(n *vdom.VNode) string {
	text := vdom.TextContent(n)
	if n.Tag == "button" {
		return "[ " + text + " ]"
	}
	return text
}
