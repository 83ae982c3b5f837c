// Package gameid formats game identifiers. IDs are UUIDv7, so they sort by
// creation time, and are shown as 26-character Crockford base32 strings.
package gameid

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// EncodedLen is the length of an encoded ID
const EncodedLen = 26

// New returns a fresh time-ordered game ID
func New() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// Created returns when the game was started, to millisecond precision
func Created(id uuid.UUID) time.Time {
	sec, nsec := id.Time().UnixTime()
	return time.Unix(sec, nsec)
}

// Encode formats id as 26 base32 characters. The 128 bits are left-padded
// with two zero bits, so the first character is always 0-7.
func Encode(id uuid.UUID) string {
	out := make([]byte, EncodedLen)
	for i := range out {
		var v byte
		for b := range 5 {
			v <<= 1
			if pos := i*5 + b - 2; pos >= 0 {
				v |= (id[pos/8] >> (7 - pos%8)) & 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Decode parses an ID produced by Encode
func Decode(s string) (uuid.UUID, error) {
	if err := Validate(s); err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	for i := range EncodedLen {
		v := strings.IndexByte(alphabet, s[i])
		for b := range 5 {
			pos := i*5 + b - 2
			if pos < 0 || (v>>(4-b))&1 == 0 {
				continue
			}
			id[pos/8] |= 1 << (7 - pos%8)
		}
	}
	return id, nil
}

// Short returns the last eight characters of the encoded ID, enough to tell
// games apart in a log.
func Short(id uuid.UUID) string {
	s := Encode(id)
	return s[EncodedLen-8:]
}

// Validate checks if a game ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != EncodedLen {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", EncodedLen, len(id))
	}

	// The two padding bits keep the first character in 0-7
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}

	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
