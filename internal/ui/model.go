package ui

import (
	"chronos/internal/keeper"
	"chronos/internal/models"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// CompletionAlertDuration is how long a finished timer stays highlighted.
const CompletionAlertDuration = 2 * time.Second

// Controller is the part of the session the UI drives.
type Controller interface {
	Create(kind models.Kind) (keeper.View, error)
	Start(id string) error
	Pause(id string) error
	Reset(id string) error
	Rename(id, title string) error
	SetTimerInput(id string, in keeper.DurationInput) error
	Delete(ctx context.Context, id string) (bool, error)
	Views() []keeper.View
}

// Identity signs the user in and out. Results arrive as UserChangedMsg.
type Identity interface {
	SetHint(uid string)
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
}

type inputMode int

const (
	modeNone inputMode = iota
	modeRename
	modeDuration
	modeSignIn
)

type Model struct {
	ctx      context.Context
	session  Controller
	identity Identity
	keys     keyMap

	views    []keeper.View
	selected int
	alerts   map[string]bool
	user     string
	status   string
	width    int

	mode    inputMode
	target  string
	input   textinput.Model
	confirm *confirmRequestMsg
}

func New(ctx context.Context, session Controller, identity Identity) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	ti := textinput.New()
	ti.CharLimit = 64
	return Model{
		ctx:      ctx,
		session:  session,
		identity: identity,
		keys:     defaultKeyMap(),
		alerts:   make(map[string]bool),
		input:    ti,
	}
}

func (m Model) Init() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return layoutMsg(session.Views())
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case layoutMsg:
		m.setViews(msg)
		return m, nil

	case viewMsg:
		for i := range m.views {
			if m.views[i].ID == msg.ID {
				m.views[i] = keeper.View(msg)
				break
			}
		}
		return m, nil

	case completedMsg:
		id := string(msg)
		m.alerts[id] = true
		return m, tea.Tick(CompletionAlertDuration, func(time.Time) tea.Msg {
			return clearAlertMsg(id)
		})

	case clearAlertMsg:
		delete(m.alerts, string(msg))
		return m, nil

	case confirmRequestMsg:
		if m.confirm != nil {
			// one modal at a time; the newer question is declined
			msg.reply <- false
			return m, nil
		}
		m.confirm = &msg
		return m, nil

	case UserChangedMsg:
		if msg.User == nil {
			m.user = ""
			m.status = "Signed out"
		} else {
			m.user = msg.User.DisplayName
			m.status = "Signed in as " + msg.User.DisplayName
		}
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case errMsg:
		m.status = "Error: " + msg.err.Error()
		return m, nil
	}
	return m, nil
}

func (m *Model) setViews(views []keeper.View) {
	m.views = append(m.views[:0:0], views...)
	if m.selected >= len(m.views) {
		m.selected = len(m.views) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) current() (keeper.View, bool) {
	if m.selected < 0 || m.selected >= len(m.views) {
		return keeper.View{}, false
	}
	return m.views[m.selected], true
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}
	if m.mode != modeNone {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.views)-1 {
			m.selected++
		}
		return m, nil
	case key.Matches(msg, m.keys.NewStopwatch):
		return m, m.createCmd(models.KindStopwatch)
	case key.Matches(msg, m.keys.NewTimer):
		return m, m.createCmd(models.KindTimer)
	case key.Matches(msg, m.keys.SignIn):
		return m.openInput(modeSignIn, "", "name (blank: env/config)"), nil
	case key.Matches(msg, m.keys.SignOut):
		return m, m.signOutCmd()
	}

	view, ok := m.current()
	if !ok {
		return m, nil
	}
	session := m.session
	switch {
	case key.Matches(msg, m.keys.Start):
		if view.Kind == models.KindTimer && !view.Configured && view.Input.IsZero() {
			m.status = "Set a duration first (d)"
			return m, nil
		}
		return m, run(func() error { return session.Start(view.ID) })
	case key.Matches(msg, m.keys.Pause):
		return m, run(func() error { return session.Pause(view.ID) })
	case key.Matches(msg, m.keys.Reset):
		return m, run(func() error { return session.Reset(view.ID) })
	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteCmd(view.ID)
	case key.Matches(msg, m.keys.Rename):
		return m.openInput(modeRename, view.ID, view.Title), nil
	case key.Matches(msg, m.keys.Duration):
		if view.Kind != models.KindTimer {
			m.status = "Only timers have a duration"
			return m, nil
		}
		if view.InputLocked || view.Configured {
			m.status = "Reset the timer to change its duration"
			return m, nil
		}
		return m.openInput(modeDuration, view.ID, "1h 30m, 90s or 01:30:00"), nil
	}
	return m, nil
}

func (m Model) openInput(mode inputMode, target, placeholder string) Model {
	m.mode = mode
	m.target = target
	m.input.Reset()
	m.input.Placeholder = placeholder
	if mode == modeRename {
		m.input.SetValue(placeholder)
	}
	m.input.Focus()
	return m
}

func (m Model) closeInput() Model {
	m.mode = modeNone
	m.target = ""
	m.input.Blur()
	return m
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.closeInput(), nil
	case key.Matches(msg, m.keys.Submit):
		value := m.input.Value()
		mode, target := m.mode, m.target
		m = m.closeInput()
		return m, m.submitCmd(mode, target, value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.confirm.reply <- true
		m.confirm = nil
	case key.Matches(msg, m.keys.No):
		m.confirm.reply <- false
		m.confirm = nil
	}
	return m, nil
}

func (m Model) submitCmd(mode inputMode, target, value string) tea.Cmd {
	session, identity, ctx := m.session, m.identity, m.ctx
	switch mode {
	case modeRename:
		return run(func() error { return session.Rename(target, value) })
	case modeDuration:
		in, err := keeper.ParseDurationInput(value)
		if err != nil {
			return func() tea.Msg { return errMsg{err} }
		}
		if in.Milliseconds() <= 0 {
			return func() tea.Msg { return statusMsg("Duration must be positive") }
		}
		return func() tea.Msg {
			if err := session.SetTimerInput(target, in); err != nil {
				return errMsg{err}
			}
			return statusMsg("Duration set to " + in.String())
		}
	case modeSignIn:
		return func() tea.Msg {
			identity.SetHint(strings.TrimSpace(value))
			if err := identity.SignIn(ctx); err != nil {
				return statusMsg("Login failed: " + err.Error())
			}
			return nil
		}
	}
	return nil
}

func (m Model) createCmd(kind models.Kind) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		view, err := session.Create(kind)
		if err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("Added %s", strings.ToLower(view.Title)))
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	session, ctx := m.session, m.ctx
	return func() tea.Msg {
		removed, err := session.Delete(ctx, id)
		if err != nil {
			return errMsg{err}
		}
		if removed {
			return statusMsg("Deleted")
		}
		return nil
	}
}

func (m Model) signOutCmd() tea.Cmd {
	identity, ctx := m.identity, m.ctx
	return func() tea.Msg {
		if err := identity.SignOut(ctx); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func run(fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return errMsg{err}
		}
		return nil
	}
}
