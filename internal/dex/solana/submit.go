package solana

import (
	"context"
	"fmt"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"

	"solswap-go/internal/trade"
)

const (
	defaultPollInterval = 500 * time.Millisecond
	defaultMaxPolls     = 30
)

// Submitter sends a signed transaction and blocks until the node reports it
// confirmed, the poll budget runs out, or the context ends. No retries: a
// rejected or timed-out submission is surfaced to the caller as-is.
type Submitter struct {
	Ledger       Ledger
	Log          zerolog.Logger
	PollInterval time.Duration
	MaxPolls     int
}

func NewSubmitter(ledger Ledger, log zerolog.Logger) *Submitter {
	return &Submitter{
		Ledger:       ledger,
		Log:          log,
		PollInterval: defaultPollInterval,
		MaxPolls:     defaultMaxPolls,
	}
}

func (s *Submitter) SubmitAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := s.Ledger.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("%w: submit: %v", trade.ErrUpstream, err)
	}
	s.Log.Debug().Str("sig", sig.String()).Msg("transaction sent, awaiting confirmation")

	for i := 0; i < s.MaxPolls; i++ {
		select {
		case <-ctx.Done():
			return sig, fmt.Errorf("%w: confirm: %v", trade.ErrUpstream, ctx.Err())
		case <-time.After(s.PollInterval):
		}
		status, err := s.Ledger.SignatureStatus(ctx, sig)
		if err != nil {
			return sig, fmt.Errorf("%w: confirm: %v", trade.ErrUpstream, err)
		}
		if status == nil {
			continue
		}
		if status.Err != nil {
			return sig, fmt.Errorf("%w: transaction failed on chain: %v", trade.ErrUpstream, status.Err)
		}
		if status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
			status.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
			return sig, nil
		}
	}
	return sig, fmt.Errorf("%w: confirmation timeout for %s", trade.ErrUpstream, sig)
}
