package log

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"des-go/pkg/des"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotInitialized(t *testing.T) {
	_, err := GetLastNLogs(5)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.EqualError(t, Init(""), "logger needs an explicit dbFile")
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "des.db")
	require.NoError(t, Init(path))
	defer Close()
	assert.Error(t, Init(path), "second Init must fail")

	start := time.Now().Add(-time.Minute)
	Info().Str("block", "0123456789abcdef").Msg("encrypted")
	Printf("selftest %s", "ok")

	entries, err := GetLastNLogs(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(entries[0].LogData), &first))
	assert.Equal(t, "encrypted", first["message"])
	assert.Equal(t, "0123456789abcdef", first["block"])

	since, err := GetLogsSince(start, 0)
	require.NoError(t, err)
	assert.Len(t, since, 2)

	all, err := GetLogsSinceStart()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	empty, err := GetLastNLogs(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRoundObserverWritesRounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rounds.db")
	require.NoError(t, Init(path))
	defer Close()
	require.True(t, Enabled())

	c := des.New(0x133457799BBCDFF1, des.WithObserver(RoundObserver{Group: 4}))
	assert.Equal(t, uint64(0x85E813540F0AB405), c.EncryptBlock(0x0123456789ABCDEF))

	entries, err := GetLastNLogs(100)
	require.NoError(t, err)
	require.Len(t, entries, des.Rounds+2)

	var round map[string]any
	require.NoError(t, json.Unmarshal([]byte(entries[1].LogData), &round))
	assert.Equal(t, "round", round["message"])
	assert.Equal(t, float64(1), round["round"])
	assert.Equal(t, "1111 0000 1010 1010 1111 0000 1010 1010", round["l"])
}
