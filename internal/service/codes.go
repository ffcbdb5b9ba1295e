package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// generateSixDigitCode returns a crypto-random code in [000000, 999999].
func generateSixDigitCode() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("%06d", binary.LittleEndian.Uint32(b[:])%1_000_000)
}

// hashCode hashes a verification code salted with its record id, so a code is
// only valid against the row it was minted for.
func hashCode(code, salt string) string {
	sum := sha256.Sum256([]byte(salt + ":" + code))
	return hex.EncodeToString(sum[:])
}
