package http

import (
	"time"

	"github.com/AlibekovAA/messenger/backend/internal/user/domain"
)

type summaryView struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ProfileView struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type detailView struct {
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	JoinAt      time.Time `json:"join_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

type sentView struct {
	ID     int64       `json:"id"`
	Body   string      `json:"body"`
	SentAt time.Time   `json:"sent_at"`
	ReadAt *time.Time  `json:"read_at"`
	ToUser ProfileView `json:"to_user"`
}

type receivedView struct {
	ID       int64       `json:"id"`
	Body     string      `json:"body"`
	SentAt   time.Time   `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at"`
	FromUser ProfileView `json:"from_user"`
}

func NewProfileView(p domain.Profile) ProfileView {
	return ProfileView{Username: p.Username, FirstName: p.FirstName, LastName: p.LastName, Phone: p.Phone}
}

func newDetailView(d domain.Detail) detailView {
	return detailView{
		Username:    d.Username,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Phone:       d.Phone,
		JoinAt:      d.JoinedAt,
		LastLoginAt: d.LastLoginAt,
	}
}

func newSummaryViews(users []domain.Summary) []summaryView {
	out := make([]summaryView, 0, len(users))
	for _, u := range users {
		out = append(out, summaryView{Username: u.Username, FirstName: u.FirstName, LastName: u.LastName})
	}
	return out
}

func newSentViews(messages []domain.Correspondence) []sentView {
	out := make([]sentView, 0, len(messages))
	for _, m := range messages {
		out = append(out, sentView{ID: m.ID, Body: m.Body, SentAt: m.SentAt, ReadAt: m.ReadAt, ToUser: NewProfileView(m.Counterparty)})
	}
	return out
}

func newReceivedViews(messages []domain.Correspondence) []receivedView {
	out := make([]receivedView, 0, len(messages))
	for _, m := range messages {
		out = append(out, receivedView{ID: m.ID, Body: m.Body, SentAt: m.SentAt, ReadAt: m.ReadAt, FromUser: NewProfileView(m.Counterparty)})
	}
	return out
}
