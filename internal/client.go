package internal

import (
	"chronos/internal/auth"
	"chronos/internal/persistence"
	"chronos/internal/providers"
	"chronos/internal/session"
	"chronos/internal/structures"
	"chronos/internal/ui"
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// Client is the terminal stopwatch application.
type Client struct {
	conf    *structures.Config
	logger  providers.Logger
	session *session.Session
	auth    *auth.Provider
	bridge  *ui.Bridge
	remote  persistence.RemoteStore
}

func NewClient(conf *structures.Config, logger providers.Logger, sess *session.Session, authProvider *auth.Provider, bridge *ui.Bridge, remote persistence.RemoteStore) *Client {
	return &Client{
		conf:    conf,
		logger:  logger,
		session: sess,
		auth:    authProvider,
		bridge:  bridge,
		remote:  remote,
	}
}

// Run restores the widgets, runs the terminal UI until the user quits and
// then flushes pending saves.
func (c *Client) Run() error {
	defer c.logger.Close()
	c.logger.Infof(providers.TypeApp, "Starting %s client", c.conf.AppName)
	if c.remote == nil {
		c.logger.Infof(providers.TypeSync, "No remote configured, cloud sync disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c.session.Init()

	program := tea.NewProgram(ui.New(ctx, c.session, c.auth), tea.WithAltScreen())
	c.bridge.Attach(program)

	events := make(chan *auth.User, 8)
	done := make(chan struct{})
	go c.followIdentity(ctx, events, done)
	unsubscribe := c.auth.Subscribe(func(u *auth.User) {
		select {
		case events <- u:
		case <-ctx.Done():
		}
	})

	if c.remote != nil {
		go c.autoSignIn(ctx)
	}

	_, runErr := program.Run()

	unsubscribe()
	cancel()
	<-done

	if err := c.session.Close(); err != nil {
		c.logger.Errorf(providers.TypeApp, "Error while closing session: %s", err)
	}
	c.logger.Infof(providers.TypeApp, "Client stopped")
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("ui error: %w", runErr)
	}
	return nil
}

// followIdentity applies auth changes one at a time, in order.
func (c *Client) followIdentity(ctx context.Context, events <-chan *auth.User, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case u := <-events:
			c.bridge.UserChanged(u)
			outcome := c.session.OnAuthChange(ctx, u)
			if u != nil {
				c.logger.Infof(providers.TypeSync, "Reconcile for %s: %s", u.UID, outcome)
			}
		}
	}
}

// autoSignIn signs in without prompting when the environment or the config
// names a user.
func (c *Client) autoSignIn(ctx context.Context) {
	if os.Getenv(auth.EnvUser) == "" && c.conf.Sync.User == "" {
		return
	}
	if err := c.auth.SignIn(ctx); err != nil {
		c.logger.Warnf(providers.TypeSync, "Automatic sign-in failed: %s", err)
	}
}
