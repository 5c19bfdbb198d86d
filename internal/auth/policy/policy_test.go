package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	authdomain "github.com/AlibekovAA/messenger/backend/internal/auth/domain"
	commonerrors "github.com/AlibekovAA/messenger/backend/internal/common/errors"
)

type message struct {
	from, to string
}

func (m message) SenderUsername() string    { return m.from }
func (m message) RecipientUsername() string { return m.to }

var (
	anonymous = authdomain.Anonymous()
	alice     = authdomain.Identity{Username: "alice"}
	bob       = authdomain.Identity{Username: "bob"}
	carol     = authdomain.Identity{Username: "carol"}
)

func assertAllowed(t *testing.T, allowed bool, err error, msgAndArgs ...any) {
	t.Helper()
	if allowed {
		assert.NoError(t, err, msgAndArgs...)
		return
	}
	assert.ErrorIs(t, err, commonerrors.ErrUnauthorized, msgAndArgs...)
}

func TestLoggedIn(t *testing.T) {
	assertAllowed(t, true, LoggedIn(alice))
	assertAllowed(t, false, LoggedIn(anonymous))
}

func TestIsUser(t *testing.T) {
	tests := []struct {
		caller  authdomain.Identity
		target  string
		allowed bool
	}{
		{alice, "alice", true},
		{alice, "bob", false},
		{anonymous, "alice", false},
		{anonymous, "", false},
	}
	for _, tt := range tests {
		assertAllowed(t, tt.allowed, IsUser(tt.caller, tt.target), "%+v", tt)
	}
}

func TestMessagePolicies(t *testing.T) {
	msg := message{from: "alice", to: "bob"}

	tests := []struct {
		caller      authdomain.Identity
		participant bool
		recipient   bool
	}{
		{alice, true, false},
		{bob, true, true},
		{carol, false, false},
		{anonymous, false, false},
	}
	for _, tt := range tests {
		assertAllowed(t, tt.participant, IsParticipant(tt.caller, msg), "participant %q", tt.caller.Username)
		assertAllowed(t, tt.recipient, IsRecipient(tt.caller, msg), "recipient %q", tt.caller.Username)
	}
}
