package api

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/udisondev/moderation/internal/admin"
	"github.com/udisondev/moderation/internal/config"
)

// Operator is the authenticated caller of the admin API.
type Operator struct {
	Name   string
	Access *admin.AccessLevel
}

type keyEntry struct {
	hash     []byte
	operator Operator
}

// KeyRing authenticates API keys of the form "<name>:<secret>" against
// bcrypt hashes from config.
type KeyRing struct {
	keys map[string]keyEntry
}

// NewKeyRing builds a key ring from config entries.
func NewKeyRing(keys []config.APIKey) (*KeyRing, error) {
	kr := &KeyRing{keys: make(map[string]keyEntry, len(keys))}
	for _, k := range keys {
		if _, err := bcrypt.Cost([]byte(k.Hash)); err != nil {
			return nil, fmt.Errorf("api key %q: invalid bcrypt hash: %w", k.Name, err)
		}
		al := admin.GetAccessLevel(k.AccessLevel)
		if al == nil {
			return nil, fmt.Errorf("api key %q: access level %d is revoked", k.Name, k.AccessLevel)
		}
		kr.keys[k.Name] = keyEntry{
			hash:     []byte(k.Hash),
			operator: Operator{Name: k.Name, Access: al},
		}
	}
	return kr, nil
}

// Authenticate checks a "<name>:<secret>" key.
func (kr *KeyRing) Authenticate(key string) (Operator, bool) {
	name, secret, ok := strings.Cut(key, ":")
	if !ok || name == "" || secret == "" {
		return Operator{}, false
	}
	entry, ok := kr.keys[name]
	if !ok {
		return Operator{}, false
	}
	if bcrypt.CompareHashAndPassword(entry.hash, []byte(secret)) != nil {
		return Operator{}, false
	}
	return entry.operator, true
}

type contextKey string

const operatorContextKey contextKey = "operator"

// OperatorFromContext returns the operator set by the Auth middleware.
func OperatorFromContext(ctx context.Context) (Operator, bool) {
	op, ok := ctx.Value(operatorContextKey).(Operator)
	return op, ok
}

func withOperator(ctx context.Context, op Operator) context.Context {
	return context.WithValue(ctx, operatorContextKey, op)
}
