package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/moderation/internal/model"
)

// ErrInjected is returned by mocks configured to fail.
var ErrInjected = errors.New("injected failure")

// MockDirectory is an in-memory player directory for unit tests.
type MockDirectory struct {
	mu      sync.RWMutex
	players map[uuid.UUID]model.Player
	lookups int
	Err     error // returned by every lookup when set
}

// NewMockDirectory returns a directory holding players.
func NewMockDirectory(players ...model.Player) *MockDirectory {
	d := &MockDirectory{players: make(map[uuid.UUID]model.Player, len(players))}
	for _, p := range players {
		d.players[p.ID] = p
	}
	return d
}

// Add stores or replaces a player.
func (d *MockDirectory) Add(p model.Player) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.players[p.ID] = p
}

// FindPlayerByName finds a player by name (case-insensitive).
func (d *MockDirectory) FindPlayerByName(_ context.Context, name string) (*model.Player, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups++
	if d.Err != nil {
		return nil, d.Err
	}
	for _, p := range d.players {
		if strings.EqualFold(p.Name, name) {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

// FindPlayerByID finds a player by record id.
func (d *MockDirectory) FindPlayerByID(_ context.Context, id uuid.UUID) (*model.Player, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups++
	if d.Err != nil {
		return nil, d.Err
	}
	p, ok := d.players[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Lookups returns how many lookups were attempted.
func (d *MockDirectory) Lookups() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lookups
}

type restrictionKey struct {
	kind    model.RestrictionKind
	subject model.Subject
}

// MockStore is an in-memory ban and mute store.
// Records calls so tests can assert that nothing was written.
type MockStore struct {
	mu      sync.Mutex
	records map[restrictionKey]model.Restriction
	calls   []string
	Err     error // returned by every write when set
	Now     func() time.Time
}

// NewMockStore returns an empty store.
func NewMockStore() *MockStore {
	return &MockStore{
		records: make(map[restrictionKey]model.Restriction),
		Now:     time.Now,
	}
}

func (s *MockStore) put(call string, r model.Restriction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
	if s.Err != nil {
		return s.Err
	}
	s.records[restrictionKey{r.Kind, r.Subject}] = r
	return nil
}

func (s *MockStore) del(call string, kind model.RestrictionKind, subject model.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
	if s.Err != nil {
		return s.Err
	}
	delete(s.records, restrictionKey{kind, subject})
	return nil
}

func (s *MockStore) active(kind model.RestrictionKind, subject model.Subject) *model.Restriction {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[restrictionKey{kind, subject}]
	if !ok || !r.Active(s.Now()) {
		return nil
	}
	return &r
}

func (s *MockStore) AddBan(_ context.Context, ban model.Restriction) error {
	return s.put("AddBan", ban)
}

func (s *MockStore) RemoveBan(_ context.Context, subject model.Subject) error {
	return s.del("RemoveBan", model.RestrictionBan, subject)
}

func (s *MockStore) AddMute(_ context.Context, mute model.Restriction) error {
	return s.put("AddMute", mute)
}

func (s *MockStore) RemoveMute(_ context.Context, subject model.Subject) error {
	return s.del("RemoveMute", model.RestrictionMute, subject)
}

func (s *MockStore) ActiveBan(_ context.Context, subject model.Subject) (*model.Restriction, error) {
	return s.active(model.RestrictionBan, subject), nil
}

func (s *MockStore) ActiveMute(_ context.Context, subject model.Subject) (*model.Restriction, error) {
	return s.active(model.RestrictionMute, subject), nil
}

// Get returns the stored record regardless of expiry.
func (s *MockStore) Get(kind model.RestrictionKind, subject model.Subject) (model.Restriction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[restrictionKey{kind, subject}]
	return r, ok
}

// Count returns the number of stored records.
func (s *MockStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Calls returns the names of the store methods called so far.
func (s *MockStore) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// MockBroadcaster records broadcast messages.
type MockBroadcaster struct {
	mu       sync.Mutex
	messages []string
}

func (b *MockBroadcaster) Broadcast(_ context.Context, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, message)
}

// Messages returns a copy of everything broadcast so far.
func (b *MockBroadcaster) Messages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.messages...)
}

// MockConn implements session.Conn and records every call.
type MockConn struct {
	mu          sync.Mutex
	sent        []string
	warps       []MockWarp
	closed      bool
	closeReason string

	// WarpErr is returned by Warp when set.
	WarpErr error
}

// MockWarp is one recorded warp.
type MockWarp struct {
	Location model.Location
	Force    bool
}

// NewMockConn returns an open MockConn.
func NewMockConn() *MockConn {
	return &MockConn{}
}

func (c *MockConn) Send(message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, message)
	return nil
}

func (c *MockConn) Warp(loc model.Location, force bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.WarpErr != nil {
		return c.WarpErr
	}
	c.warps = append(c.warps, MockWarp{Location: loc, Force: force})
	return nil
}

func (c *MockConn) Close(reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.closeReason = reason
	return nil
}

// Sent returns the messages delivered to the client.
func (c *MockConn) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.sent...)
}

// Warps returns the warps delivered to the client.
func (c *MockConn) Warps() []MockWarp {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]MockWarp(nil), c.warps...)
}

// IsClosed reports whether Close was called.
func (c *MockConn) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// CloseReason returns the reason passed to Close.
func (c *MockConn) CloseReason() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeReason
}
