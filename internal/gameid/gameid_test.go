package gameid

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id := New()
	assert.Equal(t, uuid.Version(7), id.Version())

	encoded := Encode(id)
	assert.Len(t, encoded, EncodedLen)
	require.NoError(t, Validate(encoded))
	assert.LessOrEqual(t, encoded[0], byte('7'))
}

func TestNewUnique(t *testing.T) {
	ids := make(map[string]bool)
	for range 100 {
		id := Encode(New())
		assert.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestEncodedIDsSortByTime(t *testing.T) {
	var ids []string
	for range 10 {
		ids = append(ids, Encode(New()))
		time.Sleep(time.Millisecond)
	}

	for i := 1; i < len(ids); i++ {
		assert.Negative(t, strings.Compare(ids[i-1], ids[i]), "IDs not sorted: %s >= %s", ids[i-1], ids[i])
	}
}

func TestEncodeKnownValues(t *testing.T) {
	assert.Equal(t, "00000000000000000000000000", Encode(uuid.Nil))

	var full uuid.UUID
	for i := range full {
		full[i] = 0xff
	}
	assert.Equal(t, "7zzzzzzzzzzzzzzzzzzzzzzzzz", Encode(full))
}

func TestDecodeRoundTrip(t *testing.T) {
	for range 20 {
		id := New()
		decoded, err := Decode(Encode(id))
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}

	_, err := Decode("not-an-id")
	assert.Error(t, err)
}

func TestCreated(t *testing.T) {
	id := New()
	created := Created(id)
	assert.WithinDuration(t, time.Now(), created, time.Second)

	decoded, err := Decode(Encode(id))
	require.NoError(t, err)
	assert.Equal(t, created, Created(decoded))
}

func TestShort(t *testing.T) {
	id := New()
	short := Short(id)
	assert.Len(t, short, 8)
	assert.True(t, strings.HasSuffix(Encode(id), short))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid ID", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"invalid character", "01h5n0et5q6mt3v7ms1234abci", true},
		{"uppercase not allowed", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAlphabet(t *testing.T) {
	assert.Len(t, alphabet, 32)

	seen := make(map[rune]bool)
	for _, char := range alphabet {
		assert.False(t, seen[char], "duplicate character in alphabet: %c", char)
		seen[char] = true
	}

	for _, char := range "ilou" {
		assert.NotContains(t, alphabet, string(char))
	}
}
