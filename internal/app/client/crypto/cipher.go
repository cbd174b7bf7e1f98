package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"
)

// cipherKeySalt keys the encryption key derivation. It deliberately
// differs from corePasswordSalt so the proof sent to the server can never
// double as the local encryption key.
const cipherKeySalt = "durian.cipher.key"

// Cipher is the crypto boundary the rest of the client talks to. Callers
// above it only ever see opaque ciphertext strings.
type Cipher interface {
	// Encrypt encrypts a single plaintext value.
	Encrypt(plaintext string) (string, error)

	// Decrypt decrypts a single ciphertext value.
	Decrypt(ciphertext string) (string, error)

	// DecryptMany decrypts a batch in one call. The result always has the
	// same length and order as the input; items that cannot be decrypted
	// come back as empty strings rather than failing the batch.
	DecryptMany(ciphertexts []string) ([]string, error)
}

// ChaCha20Cipher implements Cipher with ChaCha20-Poly1305 keyed by a
// PBKDF2 derivation of the user's core password.
type ChaCha20Cipher struct {
	aead cipher.AEAD
}

// NewChaCha20Cipher derives the symmetric key from the core password and
// returns a ready cipher. The key lives only in process memory.
func NewChaCha20Cipher(corePassword string) (*ChaCha20Cipher, error) {
	if corePassword == "" {
		return nil, fmt.Errorf("core password must not be empty")
	}

	key := pbkdf2.Key([]byte(corePassword), []byte(cipherKeySalt), pbkdf2Iterations, chacha20poly1305.KeySize, sha256.New)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}

	return &ChaCha20Cipher{aead: aead}, nil
}

func (c *ChaCha20Cipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("plaintext must not be empty")
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *ChaCha20Cipher) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", fmt.Errorf("ciphertext must not be empty")
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}
	if len(raw) < c.aead.NonceSize() {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}

	return string(plaintext), nil
}

func (c *ChaCha20Cipher) DecryptMany(ciphertexts []string) ([]string, error) {
	result := make([]string, len(ciphertexts))
	for i, ct := range ciphertexts {
		if ct == "" {
			continue
		}
		plaintext, err := c.Decrypt(ct)
		if err != nil {
			// Leave the slot empty; the projector decides what to show.
			continue
		}
		result[i] = plaintext
	}
	return result, nil
}
