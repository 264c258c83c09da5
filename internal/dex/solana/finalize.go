package solana

import (
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"solswap-go/internal/trade"
)

// Finalizer turns the raw transaction bytes from the build step into a
// signed, submittable transaction. The blockhash embedded by the build step
// can go stale between quoting and submission, so it is always refreshed
// from the ledger immediately before signing.
type Finalizer struct {
	Ledger Ledger
	Log    zerolog.Logger
}

func (f *Finalizer) Finalize(ctx context.Context, raw []byte, key solana.PrivateKey) (*solana.Transaction, error) {
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed transaction: %v", trade.ErrProtocol, err)
	}

	hash, err := f.Ledger.LatestBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: refresh blockhash: %v", trade.ErrUpstream, err)
	}
	tx.Message.RecentBlockhash = hash

	if len(key) != 64 {
		return nil, fmt.Errorf("%w: private key has %d bytes, want 64", trade.ErrSigning, len(key))
	}
	if _, err := tx.Sign(func(pk solana.PublicKey) *solana.PrivateKey {
		if pk.Equals(key.PublicKey()) {
			return &key
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", trade.ErrSigning, err)
	}
	f.Log.Debug().Str("blockhash", hash.String()).Msg("transaction signed")
	return tx, nil
}
