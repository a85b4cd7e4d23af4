package room

import (
	crand "crypto/rand"
	"encoding/binary"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

// newRoomCode returns a random 6-character uppercase alphanumeric code.
// Uniqueness among live rooms is the caller's concern (regenerate on
// collision under the registry lock).
func newRoomCode() string {
	buf := make([]byte, codeLength)
	for i := range buf {
		var b [8]byte
		_, _ = crand.Read(b[:])
		buf[i] = codeAlphabet[binary.BigEndian.Uint64(b[:])%uint64(len(codeAlphabet))]
	}
	return string(buf)
}
