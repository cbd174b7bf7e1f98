package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// Salts and iteration count must match what the server expects; they are
// part of the wire contract, not tunables.
const (
	loginPasswordSalt = "durian.password"
	corePasswordSalt  = "durian.core.password"
	pbkdf2Iterations  = 100000
	hashLength        = 32
)

func hashPassword(password, salt string) string {
	hash := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, hashLength, sha256.New)
	return hex.EncodeToString(hash)
}

// HashLoginPassword derives the login credential sent to the server. The
// raw password never leaves the client.
func HashLoginPassword(password string) string {
	return hashPassword(password, loginPasswordSalt)
}

// HashCorePassword derives the core-password proof sent on login and
// register. It is distinct from the encryption key derived in cipher.go.
func HashCorePassword(password string) string {
	return hashPassword(password, corePasswordSalt)
}
