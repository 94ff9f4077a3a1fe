// Package tui is the terminal render surface. It mounts the same pages as the
// web server and shows them through a Bubble Tea program, so a terminal and
// any number of browser tabs can drive one shared counter.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vcrobe/nojs-counter/console"
	"github.com/vcrobe/nojs-counter/internal/app"
	"github.com/vcrobe/nojs-counter/vdom"
)

// surface forwards rendered trees to the running program. Trees presented
// before the program is attached are kept and handed to the model at start.
type surface struct {
	mu      sync.Mutex
	program *tea.Program
	latest  *vdom.VNode
}

func (s *surface) Present(_, next *vdom.VNode) error {
	s.mu.Lock()
	s.latest = next
	p := s.program
	s.mu.Unlock()

	if p != nil {
		p.Send(treeMsg{tree: next})
	}
	return nil
}

func (s *surface) attach(p *tea.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.program = p
}

func (s *surface) tree() *vdom.VNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Run mounts path in the terminal and blocks until the user quits or ctx is
// cancelled. Log output is silenced while the program owns the terminal.
func Run(ctx context.Context, a *app.App, path string, opts ...tea.ProgramOption) error {
	s := &surface{}
	name := "tui-" + uuid.NewString()
	m, err := a.Mount(app.KindTUI, name, s, path)
	if err != nil {
		return fmt.Errorf("mount %s: %w", path, err)
	}
	defer m.Close()

	pages := make([]string, 0, len(a.Routes()))
	for _, r := range a.Routes() {
		pages = append(pages, r.Path)
	}

	console.SetOutput(io.Discard)
	defer console.SetOutput(os.Stderr)

	model := NewModel(m, pages, m.Router.CurrentPath(), s.tree())
	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)
	s.attach(p)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}
