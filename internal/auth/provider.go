// Package auth tracks who is signed in. Identity is resolved from a
// priority chain of sources rather than negotiated with a login service.
package auth

import (
	"chronos/internal/providers"
	"chronos/internal/structures"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode"
)

const EnvUser = "CHRONOS_USER"

var (
	ErrNoIdentity      = errors.New("no user identity available")
	ErrInvalidIdentity = errors.New("invalid user identity")
)

type User struct {
	UID         string
	DisplayName string
	// Source names where the identity came from, e.g. "env:CHRONOS_USER".
	Source string
}

type Authenticator interface {
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	// Subscribe calls fn with the current user right away and after every
	// change. nil means signed out. The returned func unsubscribes.
	Subscribe(fn func(*User)) func()
}

// Source yields an identity or "" when it has none.
type Source func() (uid string, name string)

type Provider struct {
	mu      sync.Mutex
	sources []Source
	hint    string
	current *User
	subs    map[int]func(*User)
	nextSub int
	logger  providers.Logger
}

// NewProvider resolves identities from, in order: an explicit hint set with
// SetHint, the CHRONOS_USER environment variable and sync.user.
func NewProvider(conf *structures.Config, logger providers.Logger) *Provider {
	p := &Provider{subs: make(map[int]func(*User)), logger: logger}
	p.sources = []Source{
		func() (string, string) { return p.hintValue(), "prompt" },
		func() (string, string) { return os.Getenv(EnvUser), "env:" + EnvUser },
		func() (string, string) { return conf.Sync.User, "config" },
	}
	return p
}

// SetHint sets the identity typed by the user for the next SignIn.
func (p *Provider) SetHint(uid string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hint = uid
}

func (p *Provider) hintValue() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hint
}

func (p *Provider) resolve() (*User, error) {
	for _, src := range p.sources {
		uid, name := src()
		uid = strings.TrimSpace(uid)
		if uid == "" {
			continue
		}
		if err := validateUID(uid); err != nil {
			return nil, err
		}
		return &User{UID: uid, DisplayName: uid, Source: name}, nil
	}
	return nil, ErrNoIdentity
}

func validateUID(uid string) error {
	if len(uid) > 128 {
		return fmt.Errorf("%w: too long", ErrInvalidIdentity)
	}
	for _, r := range uid {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentity, uid)
		}
	}
	return nil
}

func (p *Provider) SignIn(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	user, err := p.resolve()
	if err != nil {
		p.logger.Warnf(providers.TypeSync, "Sign-in failed: %s", err)
		return err
	}

	p.mu.Lock()
	if p.current != nil && p.current.UID == user.UID {
		p.mu.Unlock()
		return nil
	}
	p.current = user
	subs := p.snapshotSubs()
	p.mu.Unlock()

	p.logger.Infof(providers.TypeSync, "Signed in as %s (%s)", user.UID, user.Source)
	notify(subs, user)
	return nil
}

func (p *Provider) SignOut(_ context.Context) error {
	p.mu.Lock()
	if p.current == nil {
		p.mu.Unlock()
		return nil
	}
	uid := p.current.UID
	p.current = nil
	p.hint = ""
	subs := p.snapshotSubs()
	p.mu.Unlock()

	p.logger.Infof(providers.TypeSync, "Signed out %s", uid)
	notify(subs, nil)
	return nil
}

func (p *Provider) Current() *User {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil
	}
	u := *p.current
	return &u
}

func (p *Provider) Subscribe(fn func(*User)) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	current := p.current
	p.mu.Unlock()

	fn(copyUser(current))

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

func (p *Provider) snapshotSubs() []func(*User) {
	out := make([]func(*User), 0, len(p.subs))
	for i := 0; i < p.nextSub; i++ {
		if fn, ok := p.subs[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(subs []func(*User), user *User) {
	for _, fn := range subs {
		fn(copyUser(user))
	}
}

func copyUser(u *User) *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
