package view

import (
	"golang.org/x/exp/slog"

	"github.com/elvisding0307/durian-cli/internal/app/client/crypto"
	"github.com/elvisding0307/durian-cli/internal/domain/account"
)

// Projector turns cached ciphertext records into display records. All
// passwords of a batch are decrypted in a single DecryptMany call; with
// large record sets one batched round trip beats a call per record.
type Projector struct {
	cipher crypto.Cipher
	log    *slog.Logger
}

func NewProjector(cipher crypto.Cipher, log *slog.Logger) *Projector {
	return &Projector{cipher: cipher, log: log}
}

// Project maps records to display records, index for index. A record
// whose password cannot be decrypted keeps its ciphertext as the visible
// value; records never drop out of the projection.
func (p *Projector) Project(records []account.Record) ([]account.DisplayRecord, error) {
	result := make([]account.DisplayRecord, len(records))
	if len(records) == 0 {
		return result, nil
	}

	ciphertexts := make([]string, len(records))
	for i, rec := range records {
		ciphertexts[i] = rec.Password
	}

	plaintexts, err := p.cipher.DecryptMany(ciphertexts)
	if err != nil {
		// Degrade to ciphertext across the board rather than hiding the
		// list behind a crypto failure.
		p.log.Warn("batch decryption failed", "error", err, "records", len(records))
		plaintexts = nil
	}

	for i, rec := range records {
		password := ""
		if i < len(plaintexts) {
			password = plaintexts[i]
		}
		if password == "" {
			password = rec.Password
		}

		result[i] = account.DisplayRecord{
			RID:      rec.RID,
			Website:  rec.Website,
			Account:  rec.Account,
			Password: password,
		}
	}

	return result, nil
}
