package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashLoginPassword(t *testing.T) {
	hash1 := HashLoginPassword("test_password")
	hash2 := HashLoginPassword("test_password")

	// Deterministic, hex-encoded SHA-256 width.
	assert.Equal(t, hash1, hash2)
	assert.Len(t, hash1, 64)
}

func TestHashCorePassword(t *testing.T) {
	hash1 := HashCorePassword("test_core_password")
	hash2 := HashCorePassword("test_core_password")

	assert.Equal(t, hash1, hash2)
	assert.Len(t, hash1, 64)
}

func TestDifferentSaltsProduceDifferentHashes(t *testing.T) {
	loginHash := HashLoginPassword("same_password")
	coreHash := HashCorePassword("same_password")

	assert.NotEqual(t, loginHash, coreHash)
}

func TestEncryptDecryptRoundtrip(t *testing.T) {
	c, err := NewChaCha20Cipher("test_key_12345")
	require.NoError(t, err)

	encrypted, err := c.Encrypt("Hello, World!")
	require.NoError(t, err)
	assert.NotEqual(t, "Hello, World!", encrypted)

	decrypted, err := c.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", decrypted)
}

func TestDecryptWithWrongKey(t *testing.T) {
	c1, err := NewChaCha20Cipher("key_one")
	require.NoError(t, err)
	c2, err := NewChaCha20Cipher("key_two")
	require.NoError(t, err)

	encrypted, err := c1.Encrypt("secret")
	require.NoError(t, err)

	_, err = c2.Decrypt(encrypted)
	assert.Error(t, err)
}

func TestDecryptGarbage(t *testing.T) {
	c, err := NewChaCha20Cipher("test_key")
	require.NoError(t, err)

	_, err = c.Decrypt("not base64 at all!!!")
	assert.Error(t, err)

	_, err = c.Decrypt("YWJj") // valid base64, too short
	assert.Error(t, err)
}

func TestDecryptMany(t *testing.T) {
	c, err := NewChaCha20Cipher("batch_key")
	require.NoError(t, err)

	ct1, err := c.Encrypt("first")
	require.NoError(t, err)
	ct2, err := c.Encrypt("second")
	require.NoError(t, err)

	plaintexts, err := c.DecryptMany([]string{ct1, "garbage", ct2, ""})
	require.NoError(t, err)
	require.Len(t, plaintexts, 4)

	assert.Equal(t, "first", plaintexts[0])
	assert.Equal(t, "", plaintexts[1])
	assert.Equal(t, "second", plaintexts[2])
	assert.Equal(t, "", plaintexts[3])
}

func TestNewChaCha20CipherEmptyPassword(t *testing.T) {
	_, err := NewChaCha20Cipher("")
	assert.Error(t, err)
}
