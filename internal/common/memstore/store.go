// Package memstore holds users and messages in process memory. It backs the
// user and message repositories when no DATABASE_URL is configured and in
// tests.
package memstore

import (
	"sync"

	messagedomain "github.com/AlibekovAA/messenger/backend/internal/message/domain"
	userdomain "github.com/AlibekovAA/messenger/backend/internal/user/domain"
)

// Store is shared by both repositories so that message writes can check user
// existence under the same lock, like the foreign keys do in Postgres.
type Store struct {
	mu       sync.RWMutex
	users    map[string]userdomain.User
	messages []messagedomain.Message
	nextID   int64
}

func New() *Store {
	return &Store{
		users:  make(map[string]userdomain.User),
		nextID: 1,
	}
}

// Read runs fn under the read lock.
func (s *Store) Read(fn func(tx *Tx)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&Tx{s: s})
}

// Write runs fn under the write lock, so everything fn does is atomic.
func (s *Store) Write(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{s: s, writable: true})
}

// Tx is a view of the store valid only inside Read or Write.
type Tx struct {
	s        *Store
	writable bool
}

func (t *Tx) User(username string) (userdomain.User, bool) {
	u, ok := t.s.users[username]
	return u, ok
}

func (t *Tx) Users() []userdomain.User {
	out := make([]userdomain.User, 0, len(t.s.users))
	for _, u := range t.s.users {
		out = append(out, u)
	}
	return out
}

func (t *Tx) PutUser(u userdomain.User) {
	t.mustWrite()
	t.s.users[u.Username] = u
}

func (t *Tx) Messages() []messagedomain.Message {
	return t.s.messages
}

// MessageIndex returns the position of id in insertion order, or -1.
func (t *Tx) MessageIndex(id int64) int {
	// ids are assigned sequentially from 1 and never deleted
	idx := int(id - 1)
	if idx < 0 || idx >= len(t.s.messages) {
		return -1
	}
	return idx
}

func (t *Tx) Message(idx int) messagedomain.Message {
	return t.s.messages[idx]
}

func (t *Tx) AppendMessage(m messagedomain.Message) messagedomain.Message {
	t.mustWrite()
	m.ID = t.s.nextID
	t.s.nextID++
	t.s.messages = append(t.s.messages, m)
	return m
}

func (t *Tx) ReplaceMessage(idx int, m messagedomain.Message) {
	t.mustWrite()
	t.s.messages[idx] = m
}

func (t *Tx) mustWrite() {
	if !t.writable {
		panic("memstore: write inside Read")
	}
}
