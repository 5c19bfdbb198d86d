package memstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	messagedomain "github.com/AlibekovAA/messenger/backend/internal/message/domain"
	userdomain "github.com/AlibekovAA/messenger/backend/internal/user/domain"
)

func TestStore_AssignsSequentialMessageIDs(t *testing.T) {
	s := New()

	var first, second messagedomain.Message
	require.NoError(t, s.Write(func(tx *Tx) error {
		first = tx.AppendMessage(messagedomain.Message{Body: "a"})
		second = tx.AppendMessage(messagedomain.Message{Body: "b"})
		return nil
	}))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	s.Read(func(tx *Tx) {
		assert.Equal(t, 1, tx.MessageIndex(2))
		assert.Equal(t, "b", tx.Message(1).Body)
		assert.Equal(t, -1, tx.MessageIndex(0))
		assert.Equal(t, -1, tx.MessageIndex(3))
	})
}

func TestStore_WriteErrorIsReturned(t *testing.T) {
	s := New()
	boom := errors.New("boom")

	err := s.Write(func(tx *Tx) error {
		tx.PutUser(userdomain.User{Username: "alice"})
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestStore_WriteInsideReadPanics(t *testing.T) {
	s := New()

	assert.Panics(t, func() {
		s.Read(func(tx *Tx) {
			tx.PutUser(userdomain.User{Username: "alice"})
		})
	})

	s.Read(func(tx *Tx) {
		_, ok := tx.User("alice")
		assert.False(t, ok)
	})
}
