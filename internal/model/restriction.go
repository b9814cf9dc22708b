package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RestrictionKind distinguishes ban and mute records.
type RestrictionKind string

const (
	RestrictionBan  RestrictionKind = "ban"
	RestrictionMute RestrictionKind = "mute"
)

// SubjectKind tells which identity a restriction is keyed against.
type SubjectKind string

const (
	// SubjectAccount keys a restriction by account id.
	SubjectAccount SubjectKind = "account"
	// SubjectPlayer keys a restriction by player record id (guests without an account).
	SubjectPlayer SubjectKind = "player"
)

// Subject is the identity a restriction is stored under.
type Subject struct {
	Kind SubjectKind
	ID   uuid.UUID
}

// AccountSubject returns a subject keyed by account id.
func AccountSubject(id uuid.UUID) Subject {
	return Subject{Kind: SubjectAccount, ID: id}
}

// PlayerSubject returns a subject keyed by player record id.
func PlayerSubject(id uuid.UUID) Subject {
	return Subject{Kind: SubjectPlayer, ID: id}
}

// IsZero reports whether the subject has no usable id.
func (s Subject) IsZero() bool {
	return s.ID == uuid.Nil
}

func (s Subject) String() string {
	return fmt.Sprintf("%s:%s", s.Kind, s.ID)
}

// Restriction is a ban or mute record.
// At most one restriction of a kind exists per subject; adding replaces it.
type Restriction struct {
	Kind      RestrictionKind
	Subject   Subject
	ExpiresAt *time.Time // nil = permanent
	Reason    string
	IssuedBy  string
	IP        string // empty = not IP scoped
	CreatedAt time.Time
}

// NewRestriction builds a restriction starting at now.
// durationMinutes <= 0 produces a permanent restriction.
func NewRestriction(kind RestrictionKind, subject Subject, now time.Time, durationMinutes int, reason, issuedBy, ip string) Restriction {
	r := Restriction{
		Kind:      kind,
		Subject:   subject,
		Reason:    reason,
		IssuedBy:  issuedBy,
		IP:        ip,
		CreatedAt: now,
	}
	if durationMinutes > 0 {
		expires := now.Add(time.Duration(durationMinutes) * time.Minute)
		r.ExpiresAt = &expires
	}
	return r
}

// Permanent reports whether the restriction never expires.
func (r Restriction) Permanent() bool {
	return r.ExpiresAt == nil
}

// Active reports whether the restriction is still in force at now.
func (r Restriction) Active(now time.Time) bool {
	return r.ExpiresAt == nil || now.Before(*r.ExpiresAt)
}
