package util

import (
	"crypto/rand"
	"encoding/hex"
	mathrand "math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewQuizID generates the store's native key: 24 lowercase hexadecimal
// characters (12 random bytes). This is the identifier shape the retrieval
// validator accepts.
func NewQuizID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; if it does the
		// process has bigger problems than quiz identifiers.
		panic(err)
	}
	return hex.EncodeToString(b)
}

// NewRequestID generates a ULID used to correlate log lines of a single
// HTTP request.
func NewRequestID() string {
	entropy := ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
