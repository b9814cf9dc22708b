package broadcast

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/moderation/internal/session"
	"github.com/udisondev/moderation/internal/testutil"
)

type recorder struct {
	mu   sync.Mutex
	msgs []string
	got  chan string
}

func newRecorder() *recorder {
	return &recorder{got: make(chan string, 16)}
}

func (r *recorder) Broadcast(_ context.Context, message string) {
	r.mu.Lock()
	r.msgs = append(r.msgs, message)
	r.mu.Unlock()
	r.got <- message
}

func (r *recorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

func startServer(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServer("127.0.0.1", -1)
	require.NoError(t, err)
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Shutdown)
	return srv
}

func connect(t *testing.T, srv *Server, opts ...nats.Option) *nats.Conn {
	t.Helper()
	conn, err := nats.Connect(srv.ClientURL(), opts...)
	require.NoError(t, err)
	t.Cleanup(conn.Close)
	return conn
}

func TestFanout_SkipsNilAndKeepsOrder(t *testing.T) {
	a, b := newRecorder(), newRecorder()
	f := NewFanout(a, nil, b)

	f.Broadcast(context.Background(), "hello")

	assert.Equal(t, []string{"hello"}, a.messages())
	assert.Equal(t, []string{"hello"}, b.messages())
}

func TestNATS_RelayDeliversToOtherProcess(t *testing.T) {
	srv := startServer(t)
	const subject = "test.announce"

	publisher := NewNATS(connect(t, srv, nats.NoEcho()), subject)

	remote := newRecorder()
	relayConn := connect(t, srv)
	unsubscribe, err := Relay(relayConn, subject, remote)
	require.NoError(t, err)
	defer unsubscribe()
	require.NoError(t, relayConn.Flush())

	publisher.Broadcast(context.Background(), "Griefer has been banned!")

	select {
	case msg := <-remote.got:
		assert.Equal(t, "Griefer has been banned!", msg)
	case <-time.After(5 * time.Second):
		t.Fatal("relay did not receive the announcement")
	}
}

func TestNATS_NoEchoSkipsOwnMessages(t *testing.T) {
	srv := startServer(t)
	const subject = "test.echo"

	conn := connect(t, srv, nats.NoEcho())
	local := newRecorder()
	unsubscribe, err := Relay(conn, subject, local)
	require.NoError(t, err)
	defer unsubscribe()

	NewNATS(conn, subject).Broadcast(context.Background(), "self")
	require.NoError(t, conn.Flush())

	// A second publisher proves the subscription is live.
	NewNATS(connect(t, srv), subject).Broadcast(context.Background(), "other")

	select {
	case msg := <-local.got:
		assert.Equal(t, "other", msg)
	case <-time.After(5 * time.Second):
		t.Fatal("relay did not receive the remote announcement")
	}
	assert.Equal(t, []string{"other"}, local.messages())
}

func TestNATS_RelayIntoRegistry(t *testing.T) {
	srv := startServer(t)
	const subject = "test.registry"

	reg := session.NewRegistry()
	_, alice := testutil.Connect(reg, testutil.NewPlayer(t, "Alice"))
	_, bob := testutil.ConnectGuest(reg, testutil.NewPlayer(t, "Bob"))

	relayConn := connect(t, srv, nats.NoEcho())
	unsubscribe, err := Relay(relayConn, subject, reg)
	require.NoError(t, err)
	defer unsubscribe()
	require.NoError(t, relayConn.Flush())

	local := NewFanout(reg, NewNATS(relayConn, subject))
	local.Broadcast(t.Context(), "local")
	NewNATS(connect(t, srv), subject).Broadcast(t.Context(), "remote")

	testutil.WaitFor(t, func() bool { return len(alice.Sent()) == 2 && len(bob.Sent()) == 2 }, 5*time.Second)
	assert.Equal(t, []string{"local", "remote"}, alice.Sent())
	assert.Equal(t, []string{"local", "remote"}, bob.Sent())
}
