package testutil

import (
	"testing"

	"github.com/google/uuid"

	"github.com/udisondev/moderation/internal/model"
	"github.com/udisondev/moderation/internal/session"
)

// Fixtures holds fixed test data shared across packages.
var Fixtures = struct {
	Town     uuid.UUID
	Dungeon  uuid.UUID
	ClientIP string
}{
	Town:     uuid.MustParse("6b1d9a2e-3c4f-4a5b-9c8d-7e6f5a4b3c2d"),
	Dungeon:  uuid.MustParse("0f9e8d7c-6b5a-4938-8271-605f4e3d2c1b"),
	ClientIP: "192.168.1.100",
}

// NewPlayer creates a player record with a fresh id and account.
func NewPlayer(tb testing.TB, name string) model.Player {
	tb.Helper()
	p, err := model.NewPlayer(uuid.New(), uuid.New(), name)
	if err != nil {
		tb.Fatalf("NewPlayer(%q): %v", name, err)
	}
	return p
}

// NewGuestPlayer creates a player record without an account.
func NewGuestPlayer(tb testing.TB, name string) model.Player {
	tb.Helper()
	p, err := model.NewPlayer(uuid.New(), uuid.Nil, name)
	if err != nil {
		tb.Fatalf("NewPlayer(%q): %v", name, err)
	}
	return p
}

// Connect registers an authenticated session for p in town at (10, 20).
func Connect(reg *session.Registry, p model.Player) (*session.Session, *MockConn) {
	account := p.AccountID
	return connect(reg, p, &account)
}

// ConnectGuest registers a session for p that never authenticated.
func ConnectGuest(reg *session.Registry, p model.Player) (*session.Session, *MockConn) {
	return connect(reg, p, nil)
}

func connect(reg *session.Registry, p model.Player, account *uuid.UUID) (*session.Session, *MockConn) {
	conn := NewMockConn()
	s := session.New(p.ID, account, Fixtures.ClientIP, model.NewLocation(Fixtures.Town, 10, 20), conn)
	reg.Register(s)
	return s, conn
}
