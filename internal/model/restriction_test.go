package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRestriction_Duration(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	subject := AccountSubject(uuid.New())

	tests := []struct {
		name          string
		minutes       int
		wantPermanent bool
		wantExpires   time.Time
	}{
		{name: "zero is permanent", minutes: 0, wantPermanent: true},
		{name: "negative is permanent", minutes: -5, wantPermanent: true},
		{name: "one hour", minutes: 60, wantExpires: now.Add(time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRestriction(RestrictionBan, subject, now, tt.minutes, "spam", "api", "")
			assert.Equal(t, tt.wantPermanent, r.Permanent())
			if !tt.wantPermanent {
				require.NotNil(t, r.ExpiresAt)
				assert.Equal(t, tt.wantExpires, *r.ExpiresAt)
			}
			assert.Equal(t, now, r.CreatedAt)
		})
	}
}

func TestRestriction_Active(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRestriction(RestrictionMute, PlayerSubject(uuid.New()), now, 10, "", "api", "")

	assert.True(t, r.Active(now))
	assert.True(t, r.Active(now.Add(9*time.Minute)))
	assert.False(t, r.Active(now.Add(10*time.Minute)))

	permanent := NewRestriction(RestrictionMute, PlayerSubject(uuid.New()), now, 0, "", "api", "")
	assert.True(t, permanent.Active(now.Add(24*365*time.Hour)))
}

func TestSubject(t *testing.T) {
	id := uuid.New()

	assert.Equal(t, Subject{Kind: SubjectAccount, ID: id}, AccountSubject(id))
	assert.Equal(t, Subject{Kind: SubjectPlayer, ID: id}, PlayerSubject(id))
	assert.True(t, AccountSubject(uuid.Nil).IsZero())
	assert.Equal(t, "player:"+id.String(), PlayerSubject(id).String())
}

func TestNewPlayer_Validation(t *testing.T) {
	_, err := NewPlayer(uuid.Nil, uuid.New(), "Name")
	assert.Error(t, err)

	_, err = NewPlayer(uuid.New(), uuid.New(), "   ")
	assert.Error(t, err)

	p, err := NewPlayer(uuid.New(), uuid.Nil, " Guest ")
	require.NoError(t, err)
	assert.Equal(t, "Guest", p.Name)
	assert.False(t, p.HasAccount())
}

func TestSession_AuthenticatedBasic(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.Authenticated())

	guest := &Session{ID: uuid.New()}
	assert.False(t, guest.Authenticated())

	account := uuid.New()
	authed := &Session{ID: uuid.New(), AccountID: &account}
	assert.True(t, authed.Authenticated())
}
