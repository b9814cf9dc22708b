package session_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/moderation/internal/model"
	"github.com/udisondev/moderation/internal/session"
	"github.com/udisondev/moderation/internal/testutil"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := session.NewRegistry()
	p := testutil.NewPlayer(t, "Alice")

	_, ok := reg.Lookup(p.ID)
	assert.False(t, ok)

	s, _ := testutil.Connect(reg, p)
	snap, ok := reg.Lookup(p.ID)
	require.True(t, ok)
	assert.Equal(t, s.ID(), snap.ID)
	assert.Equal(t, p.ID, snap.PlayerID)
	assert.Equal(t, testutil.Fixtures.ClientIP, snap.NetworkAddress)
	assert.Equal(t, model.NewLocation(testutil.Fixtures.Town, 10, 20), snap.Location)
	require.NotNil(t, snap.AccountID)
	assert.Equal(t, p.AccountID, *snap.AccountID)
	assert.Equal(t, 1, reg.Count())
	assert.Same(t, s, reg.Get(s.ID()))
}

func TestRegistry_GuestSnapshotHasNoAccount(t *testing.T) {
	reg := session.NewRegistry()
	p := testutil.NewPlayer(t, "Alice")
	testutil.ConnectGuest(reg, p)

	snap, ok := reg.Lookup(p.ID)
	require.True(t, ok)
	assert.Nil(t, snap.AccountID)
	assert.False(t, snap.Authenticated())
}

func TestRegistry_SnapshotIsACopy(t *testing.T) {
	reg := session.NewRegistry()
	p := testutil.NewPlayer(t, "Alice")
	s, _ := testutil.Connect(reg, p)

	snap, _ := reg.Lookup(p.ID)
	*snap.AccountID = uuid.New()
	require.NoError(t, s.Move(model.NewLocation(testutil.Fixtures.Dungeon, 1, 2)))

	again, _ := reg.Lookup(p.ID)
	assert.Equal(t, p.AccountID, *again.AccountID)
	assert.Equal(t, model.NewLocation(testutil.Fixtures.Town, 10, 20), snap.Location)
	assert.Equal(t, model.NewLocation(testutil.Fixtures.Dungeon, 1, 2), again.Location)
}

func TestRegistry_RegisterReplacesPrevious(t *testing.T) {
	reg := session.NewRegistry()
	p := testutil.NewPlayer(t, "Alice")

	old, oldConn := testutil.Connect(reg, p)
	fresh, freshConn := testutil.Connect(reg, p)

	assert.True(t, old.Closed())
	assert.True(t, oldConn.IsClosed())
	assert.False(t, freshConn.IsClosed())
	assert.Equal(t, 1, reg.Count())
	assert.Nil(t, reg.Get(old.ID()))

	snap, ok := reg.Lookup(p.ID)
	require.True(t, ok)
	assert.Equal(t, fresh.ID(), snap.ID)

	err := reg.Disconnect(t.Context(), old.ID(), "stale")
	assert.ErrorIs(t, err, session.ErrSessionClosed)
	_, err = reg.Warp(t.Context(), old.ID(), testutil.Fixtures.Town, 1, 1, true)
	assert.ErrorIs(t, err, session.ErrSessionClosed)
	assert.False(t, freshConn.IsClosed())

	// Dropping the stale connection must not evict the newer one.
	reg.Unregister(old)
	_, ok = reg.Lookup(p.ID)
	assert.True(t, ok)
}

func TestRegistry_Disconnect(t *testing.T) {
	reg := session.NewRegistry()
	p := testutil.NewPlayer(t, "Alice")
	s, conn := testutil.Connect(reg, p)

	require.NoError(t, reg.Disconnect(t.Context(), s.ID(), "kicked"))
	assert.True(t, conn.IsClosed())
	assert.Equal(t, "kicked", conn.CloseReason())
	assert.Zero(t, reg.Count())

	_, ok := reg.Lookup(p.ID)
	assert.False(t, ok)

	err := reg.Disconnect(t.Context(), s.ID(), "again")
	assert.ErrorIs(t, err, session.ErrSessionClosed)
	assert.Equal(t, "kicked", conn.CloseReason())
}

func TestRegistry_DisconnectUnknown(t *testing.T) {
	reg := session.NewRegistry()
	err := reg.Disconnect(t.Context(), uuid.New(), "")
	assert.ErrorIs(t, err, session.ErrSessionClosed)
}

func TestRegistry_Warp(t *testing.T) {
	reg := session.NewRegistry()
	p := testutil.NewPlayer(t, "Alice")
	s, conn := testutil.Connect(reg, p)

	loc, err := reg.Warp(t.Context(), s.ID(), testutil.Fixtures.Dungeon, 7, 8, true)
	require.NoError(t, err)
	want := model.NewLocation(testutil.Fixtures.Dungeon, 7, 8)
	assert.Equal(t, want, loc)
	assert.Equal(t, want, s.Location())
	assert.Equal(t, []testutil.MockWarp{{Location: want, Force: true}}, conn.Warps())
}

func TestRegistry_WarpWithoutForceKeepsLivePosition(t *testing.T) {
	reg := session.NewRegistry()
	p := testutil.NewPlayer(t, "Alice")
	s, conn := testutil.Connect(reg, p)

	// The player moves after the caller took its snapshot.
	require.NoError(t, s.Move(model.NewLocation(testutil.Fixtures.Town, 42, 43)))

	loc, err := reg.Warp(t.Context(), s.ID(), testutil.Fixtures.Dungeon, 10, 20, false)
	require.NoError(t, err)
	want := model.NewLocation(testutil.Fixtures.Dungeon, 42, 43)
	assert.Equal(t, want, loc)
	assert.Equal(t, want, s.Location())
	assert.Equal(t, []testutil.MockWarp{{Location: want, Force: false}}, conn.Warps())
}

func TestRegistry_WarpAfterUnregister(t *testing.T) {
	reg := session.NewRegistry()
	p := testutil.NewPlayer(t, "Alice")
	s, conn := testutil.Connect(reg, p)
	reg.Unregister(s)

	_, err := reg.Warp(t.Context(), s.ID(), testutil.Fixtures.Dungeon, 1, 1, false)
	assert.ErrorIs(t, err, session.ErrSessionClosed)
	assert.Empty(t, conn.Warps())
	assert.ErrorIs(t, s.Move(model.NewLocation(testutil.Fixtures.Town, 0, 0)), session.ErrSessionClosed)
}

func TestRegistry_BroadcastReachesLiveSessions(t *testing.T) {
	reg := session.NewRegistry()
	_, a := testutil.Connect(reg, testutil.NewPlayer(t, "Alice"))
	_, b := testutil.ConnectGuest(reg, testutil.NewPlayer(t, "Bob"))
	carol, c := testutil.Connect(reg, testutil.NewPlayer(t, "Carol"))
	require.NoError(t, reg.Disconnect(t.Context(), carol.ID(), ""))

	reg.Broadcast(t.Context(), "server restart in 5 minutes")

	assert.Equal(t, []string{"server restart in 5 minutes"}, a.Sent())
	assert.Equal(t, []string{"server restart in 5 minutes"}, b.Sent())
	assert.Empty(t, c.Sent())
	assert.Equal(t, 2, reg.SendAll("bye"))
}

func TestRegistry_ForEachStops(t *testing.T) {
	reg := session.NewRegistry()
	for _, name := range []string{"A", "B", "C"} {
		testutil.Connect(reg, testutil.NewPlayer(t, name))
	}

	visited := 0
	reg.ForEach(func(*session.Session) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}

// A warp racing a disconnect either lands before the close or fails with
// ErrSessionClosed; it never reports success on a closed session.
func TestRegistry_ConcurrentWarpAndDisconnect(t *testing.T) {
	for range 50 {
		reg := session.NewRegistry()
		p := testutil.NewPlayer(t, "Alice")
		s, conn := testutil.Connect(reg, p)

		var warped atomic.Bool
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := reg.Warp(t.Context(), s.ID(), testutil.Fixtures.Dungeon, 1, 1, true)
			if err == nil {
				warped.Store(true)
				return
			}
			assert.ErrorIs(t, err, session.ErrSessionClosed)
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, reg.Disconnect(t.Context(), s.ID(), "race"))
		}()
		wg.Wait()

		assert.True(t, conn.IsClosed())
		assert.Equal(t, warped.Load(), len(conn.Warps()) == 1)
	}
}

func TestRegistry_ConcurrentRegisterDifferentPlayers(t *testing.T) {
	reg := session.NewRegistry()
	const n = 64

	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := model.NewPlayer(uuid.New(), uuid.New(), "p")
			if !assert.NoError(t, err) {
				return
			}
			testutil.Connect(reg, p)
		}()
	}
	wg.Wait()

	assert.Equal(t, n, reg.Count())
}
