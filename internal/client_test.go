package internal

import (
	"chronos/internal/auth"
	"chronos/internal/clock"
	"chronos/internal/models"
	"chronos/internal/persistence"
	"chronos/internal/session"
	"chronos/internal/structures"
	"chronos/internal/testutil"
	"chronos/internal/ui"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, user string) (*Client, *testutil.MockRemoteStore) {
	t.Helper()
	t.Setenv(auth.EnvUser, "")
	conf := &structures.Config{
		AppName: "Chronos",
		Sync:    structures.SyncConfig{User: user, Debounce: time.Hour, Timeout: time.Second},
		Display: structures.DisplayConfig{FrameInterval: time.Millisecond},
	}
	logger := &testutil.MockLogger{}
	c := clock.NewManual(time.UnixMilli(1_700_000_000_000))
	remote := &testutil.MockRemoteStore{}
	manager := persistence.NewManager(&testutil.MockLocalStore{}, remote, c, conf, logger)
	bridge := ui.NewBridge()
	sess := session.New(c, manager, bridge, bridge, conf, logger)
	t.Cleanup(func() { _ = sess.Close() })
	return NewClient(conf, logger, sess, auth.NewProvider(conf, logger), bridge, remote), remote
}

func TestClient_AutoSignInFromConfig(t *testing.T) {
	client, _ := newTestClient(t, "alice")
	client.autoSignIn(context.Background())

	current := client.auth.Current()
	require.NotNil(t, current)
	assert.Equal(t, "alice", current.UID)
}

func TestClient_AutoSignInSkippedWithoutIdentity(t *testing.T) {
	client, _ := newTestClient(t, "")
	client.autoSignIn(context.Background())
	assert.Nil(t, client.auth.Current())
}

func TestClient_FollowIdentityAppliesEventsInOrder(t *testing.T) {
	client, remote := newTestClient(t, "")
	client.session.Init()

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan *auth.User, 4)
	done := make(chan struct{})
	go client.followIdentity(ctx, events, done)

	events <- &auth.User{UID: "alice", DisplayName: "alice"}
	assert.Eventually(t, func() bool { return client.session.User() == "alice" }, time.Second, 5*time.Millisecond)

	_, err := client.session.Create(models.KindTimer)
	require.NoError(t, err)

	events <- nil
	assert.Eventually(t, func() bool { return client.session.User() == "" }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("followIdentity did not stop")
	}
	// the pending write was dropped at sign-out
	assert.Equal(t, 0, remote.SaveCount())
}
