package database

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "maitre_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStartAndFinishSession(t *testing.T) {
	db := newTestDB(t)

	id, err := db.StartSession()
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	require.NoError(t, db.FinishSession(id))

	sessions, err := db.Sessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, id, sessions[0].ID)
	assert.NotNil(t, sessions[0].FinishedAt)
	assert.Equal(t, 0, sessions[0].Exchanges)
}

func TestRecordAndLoadExchanges(t *testing.T) {
	db := newTestDB(t)

	id, err := db.StartSession()
	require.NoError(t, err)

	require.NoError(t, db.RecordExchange(id, "how far is Mars?", "About 225 million km on average.", "normal"))
	require.NoError(t, db.RecordExchange(id, "I miss my family", "They are proud of you, commander.", "supportive"))

	exchanges, err := db.RecentExchanges(id, 10)
	require.NoError(t, err)
	require.Len(t, exchanges, 2)

	// Oldest first
	assert.Equal(t, "how far is Mars?", exchanges[0].UserText)
	assert.Equal(t, "supportive", exchanges[1].Category)
	assert.Equal(t, id, exchanges[1].SessionID)
}

func TestExchangeRetention(t *testing.T) {
	db := newTestDB(t)

	id, err := db.StartSession()
	require.NoError(t, err)

	total := exchangeRetention + 10
	for i := 0; i < total; i++ {
		require.NoError(t, db.RecordExchange(id, fmt.Sprintf("question %d", i), fmt.Sprintf("answer %d", i), "normal"))
	}

	exchanges, err := db.RecentExchanges(id, 0)
	require.NoError(t, err)
	require.Len(t, exchanges, exchangeRetention)

	// Oldest surviving turn is the first one past the pruned window
	assert.Equal(t, fmt.Sprintf("question %d", total-exchangeRetention), exchanges[0].UserText)
	assert.Equal(t, fmt.Sprintf("question %d", total-1), exchanges[len(exchanges)-1].UserText)
}

func TestRetentionIsPerSession(t *testing.T) {
	db := newTestDB(t)

	first, err := db.StartSession()
	require.NoError(t, err)
	second, err := db.StartSession()
	require.NoError(t, err)

	require.NoError(t, db.RecordExchange(first, "hello", "hello commander", "normal"))
	for i := 0; i < exchangeRetention; i++ {
		require.NoError(t, db.RecordExchange(second, "ping", "pong", "normal"))
	}

	exchanges, err := db.RecentExchanges(first, 0)
	require.NoError(t, err)
	require.Len(t, exchanges, 1)
	assert.Equal(t, "hello", exchanges[0].UserText)
}

func TestSessionsNewestFirstWithCounts(t *testing.T) {
	db := newTestDB(t)

	first, err := db.StartSession()
	require.NoError(t, err)
	second, err := db.StartSession()
	require.NoError(t, err)

	require.NoError(t, db.RecordExchange(second, "hi", "hello", "normal"))

	sessions, err := db.Sessions(0)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, second, sessions[0].ID)
	assert.Equal(t, 1, sessions[0].Exchanges)
	assert.Equal(t, first, sessions[1].ID)
	assert.Equal(t, 0, sessions[1].Exchanges)
}
