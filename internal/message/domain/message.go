package domain

import (
	"time"

	userdomain "github.com/AlibekovAA/messenger/backend/internal/user/domain"
)

type Message struct {
	ID           int64
	FromUsername string
	ToUsername   string
	Body         string
	SentAt       time.Time
	ReadAt       *time.Time
}

// Detail is a message with both participants' profiles.
type Detail struct {
	ID       int64
	Body     string
	SentAt   time.Time
	ReadAt   *time.Time
	FromUser userdomain.Profile
	ToUser   userdomain.Profile
}

type ReadReceipt struct {
	ID     int64
	ReadAt time.Time
}

func (m Message) SenderUsername() string    { return m.FromUsername }
func (m Message) RecipientUsername() string { return m.ToUsername }

func (d Detail) SenderUsername() string    { return d.FromUser.Username }
func (d Detail) RecipientUsername() string { return d.ToUser.Username }
