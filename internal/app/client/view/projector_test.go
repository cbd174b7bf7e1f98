package view

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"github.com/elvisding0307/durian-cli/internal/domain/account"
)

// countingCipher decrypts by stripping an "ENC:" prefix and records how
// the projector batches its calls.
type countingCipher struct {
	decryptManyCalls int
	batchSizes       []int
	failAll          bool
}

func (c *countingCipher) Encrypt(plaintext string) (string, error) {
	return "ENC:" + plaintext, nil
}

func (c *countingCipher) Decrypt(ciphertext string) (string, error) {
	if !strings.HasPrefix(ciphertext, "ENC:") {
		return "", errors.New("bad ciphertext")
	}
	return strings.TrimPrefix(ciphertext, "ENC:"), nil
}

func (c *countingCipher) DecryptMany(ciphertexts []string) ([]string, error) {
	c.decryptManyCalls++
	c.batchSizes = append(c.batchSizes, len(ciphertexts))
	if c.failAll {
		return nil, errors.New("cipher unavailable")
	}
	result := make([]string, len(ciphertexts))
	for i, ct := range ciphertexts {
		if plaintext, err := c.Decrypt(ct); err == nil {
			result[i] = plaintext
		}
	}
	return result, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProjectBatchesOnce(t *testing.T) {
	cipher := &countingCipher{}
	p := NewProjector(cipher, testLogger())

	records := make([]account.Record, 25)
	for i := range records {
		records[i] = account.Record{
			RID:      int64(i + 1),
			Website:  fmt.Sprintf("site%02d.com", i),
			Account:  fmt.Sprintf("user%02d", i),
			Password: fmt.Sprintf("ENC:pw%02d", i),
		}
	}

	displays, err := p.Project(records)
	require.NoError(t, err)
	require.Len(t, displays, 25)

	// Exactly one DecryptMany call carrying the whole batch.
	assert.Equal(t, 1, cipher.decryptManyCalls)
	assert.Equal(t, []int{25}, cipher.batchSizes)

	// Order and identity preserved index for index.
	for i, d := range displays {
		assert.Equal(t, records[i].RID, d.RID)
		assert.Equal(t, records[i].Website, d.Website)
		assert.Equal(t, fmt.Sprintf("pw%02d", i), d.Password)
	}
}

func TestProjectFallsBackToCiphertext(t *testing.T) {
	cipher := &countingCipher{}
	p := NewProjector(cipher, testLogger())

	records := []account.Record{
		{RID: 1, Website: "a.com", Account: "a", Password: "ENC:one"},
		{RID: 2, Website: "b.com", Account: "b", Password: "CORRUPT"},
		{RID: 3, Website: "c.com", Account: "c", Password: "ENC:three"},
	}

	displays, err := p.Project(records)
	require.NoError(t, err)
	require.Len(t, displays, 3)

	assert.Equal(t, "one", displays[0].Password)
	// The undecryptable record stays visible with its ciphertext.
	assert.Equal(t, "CORRUPT", displays[1].Password)
	assert.Equal(t, "three", displays[2].Password)
}

func TestProjectBatchFailure(t *testing.T) {
	cipher := &countingCipher{failAll: true}
	p := NewProjector(cipher, testLogger())

	records := []account.Record{
		{RID: 1, Website: "a.com", Account: "a", Password: "ENC:one"},
		{RID: 2, Website: "b.com", Account: "b", Password: "ENC:two"},
	}

	displays, err := p.Project(records)
	require.NoError(t, err)
	require.Len(t, displays, 2)

	// Everything degrades to ciphertext; nothing disappears.
	assert.Equal(t, "ENC:one", displays[0].Password)
	assert.Equal(t, "ENC:two", displays[1].Password)
}

func TestProjectEmpty(t *testing.T) {
	cipher := &countingCipher{}
	p := NewProjector(cipher, testLogger())

	displays, err := p.Project(nil)
	require.NoError(t, err)
	assert.Empty(t, displays)
	assert.Equal(t, 0, cipher.decryptManyCalls)
}
