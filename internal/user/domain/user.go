package domain

import "time"

// User is the stored account. PasswordHash never leaves the repository and
// service layers.
type User struct {
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	JoinedAt     time.Time
	LastLoginAt  time.Time
}

type Summary struct {
	Username  string
	FirstName string
	LastName  string
}

// Profile is what a correspondent sees of the other side of a message.
type Profile struct {
	Username  string
	FirstName string
	LastName  string
	Phone     string
}

type Detail struct {
	Username    string
	FirstName   string
	LastName    string
	Phone       string
	JoinedAt    time.Time
	LastLoginAt time.Time
}

// Correspondence is a message as listed for one of its participants, with the
// other participant's profile attached.
type Correspondence struct {
	ID           int64
	Body         string
	SentAt       time.Time
	ReadAt       *time.Time
	Counterparty Profile
}

func (u User) Summary() Summary {
	return Summary{Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
}

func (u User) Profile() Profile {
	return Profile{Username: u.Username, FirstName: u.FirstName, LastName: u.LastName, Phone: u.Phone}
}

func (u User) Detail() Detail {
	return Detail{
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		JoinedAt:    u.JoinedAt,
		LastLoginAt: u.LastLoginAt,
	}
}
