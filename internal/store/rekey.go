package store

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/eth-wallet/internal/crypto"
	"github.com/AlexZinkM/eth-wallet/internal/model"
)

// ReEncryptAll re-encrypts every held key from one cipher to the next and returns the
// number of records rewritten. Nothing is written unless every record decrypts.
func ReEncryptAll(ctx context.Context, st Store, from, to *crypto.KeyCipher, dryRun bool) (int, error) {
	var recs []model.WalletRecord
	err := st.ForEach(ctx, func(rec model.WalletRecord) error {
		blob, err := from.ReEncrypt(rec.EncryptedPrivateKey, to)
		if err != nil {
			return fmt.Errorf("wallet %s: %w", rec.Address, err)
		}
		rec.EncryptedPrivateKey = blob
		recs = append(recs, rec)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if dryRun {
		return len(recs), nil
	}

	for i, rec := range recs {
		if err := st.Put(ctx, rec); err != nil {
			return i, fmt.Errorf("failed to store wallet %s: %w", rec.Address, err)
		}
	}
	return len(recs), nil
}
