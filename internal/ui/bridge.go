package ui

import (
	"chronos/internal/auth"
	"chronos/internal/keeper"
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

var ErrNotAttached = errors.New("ui is not running")

// Bridge is the session's Renderer and Confirmer. It forwards everything
// to the attached program as messages and never touches the Model.
type Bridge struct {
	mu      sync.RWMutex
	program *tea.Program
}

func NewBridge() *Bridge {
	return &Bridge{}
}

func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.program = p
}

func (b *Bridge) send(msg tea.Msg) bool {
	b.mu.RLock()
	p := b.program
	b.mu.RUnlock()
	if p == nil {
		return false
	}
	p.Send(msg)
	return true
}

func (b *Bridge) Render(view keeper.View) {
	b.send(viewMsg(view))
}

func (b *Bridge) Layout(views []keeper.View) {
	b.send(layoutMsg(views))
}

func (b *Bridge) Completed(id string) {
	b.send(completedMsg(id))
}

func (b *Bridge) UserChanged(user *auth.User) {
	b.send(UserChangedMsg{User: user})
}

// Confirm blocks until the user answers the modal or ctx ends. It must not
// be called from the program's own event loop.
func (b *Bridge) Confirm(ctx context.Context, prompt string) (bool, error) {
	reply := make(chan bool, 1)
	if !b.send(confirmRequestMsg{prompt: prompt, reply: reply}) {
		return false, ErrNotAttached
	}
	select {
	case answer := <-reply:
		return answer, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
