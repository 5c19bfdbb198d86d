// Package policy holds the authorization rules gating users and messages.
// Every rule is a pure function of the caller and the resource and returns
// commonerrors.ErrUnauthorized when access is denied.
package policy

import (
	authdomain "github.com/AlibekovAA/messenger/backend/internal/auth/domain"
	commonerrors "github.com/AlibekovAA/messenger/backend/internal/common/errors"
)

// Participants exposes the two ends of a message.
type Participants interface {
	SenderUsername() string
	RecipientUsername() string
}

func LoggedIn(caller authdomain.Identity) error {
	if !caller.Authenticated() {
		return commonerrors.ErrUnauthorized.WithMessage("login required")
	}
	return nil
}

// IsUser allows a caller to act only on their own user record.
func IsUser(caller authdomain.Identity, username string) error {
	if !caller.Authenticated() || caller.Username != username {
		return commonerrors.ErrUnauthorized.WithMessage("cannot access other users")
	}
	return nil
}

func IsParticipant(caller authdomain.Identity, msg Participants) error {
	if !caller.Authenticated() {
		return commonerrors.ErrUnauthorized.WithMessage("login required")
	}
	if caller.Username != msg.SenderUsername() && caller.Username != msg.RecipientUsername() {
		return commonerrors.ErrUnauthorized.WithMessage("cannot access this message")
	}
	return nil
}

// IsRecipient gates read receipts: only the recipient may acknowledge.
func IsRecipient(caller authdomain.Identity, msg Participants) error {
	if !caller.Authenticated() || caller.Username != msg.RecipientUsername() {
		return commonerrors.ErrUnauthorized.WithMessage("only the recipient can mark a message read")
	}
	return nil
}
