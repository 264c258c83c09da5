// Package pipeline composes one swap: quote, build, finalize, submit. Each
// stage is a hard precondition for the next and a swap is a single linear
// traversal; nothing here retries or restarts.
package pipeline

import (
	"context"
	"fmt"

	solana "github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	dex "solswap-go/internal/dex/solana"
	"solswap-go/internal/trade"
)

// Stage names the pipeline step a failure happened in.
type Stage string

const (
	StageQuoting    Stage = "quoting"
	StageBuilding   Stage = "building"
	StageFinalizing Stage = "finalizing"
	StageSubmitting Stage = "submitting"
)

// StageError reports which stage failed and why. The underlying error keeps
// its taxonomy kind, so errors.Is still classifies it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Quoter prices a swap of amount smallest-units of inputMint into outputMint.
type Quoter interface {
	GetQuote(ctx context.Context, inputMint, outputMint string, amount uint64, slippageBps int) (*dex.Quote, error)
}

// Builder obtains the serialized unsigned transaction for a quote.
type Builder interface {
	BuildSwap(ctx context.Context, payer solana.PublicKey, quote *dex.Quote, prioritizationFee uint64) ([]byte, error)
}

// Finalizer refreshes the transaction anchor and signs.
type Finalizer interface {
	Finalize(ctx context.Context, raw []byte, key solana.PrivateKey) (*solana.Transaction, error)
}

// Submitter broadcasts and waits for confirmation.
type Submitter interface {
	SubmitAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// Pipeline wires the four collaborators behind one Swap call.
type Pipeline struct {
	Quoter      Quoter
	Builder     Builder
	Finalizer   Finalizer
	Submitter   Submitter
	SlippageBps int

	log zerolog.Logger
}

func New(q Quoter, b Builder, f Finalizer, s Submitter, slippageBps int, log zerolog.Logger) *Pipeline {
	return &Pipeline{Quoter: q, Builder: b, Finalizer: f, Submitter: s, SlippageBps: slippageBps, log: log}
}

// Swap sells amount of sellMint for buyMint on behalf of the session wallet,
// returning the confirmed transaction signature. On failure the returned
// error is a *StageError naming the stage that broke.
func (p *Pipeline) Swap(ctx context.Context, sess *trade.Session, buyMint, sellMint solana.PublicKey, amount uint64) (solana.Signature, error) {
	log := p.log.With().Str("buy", buyMint.String()).Str("sell", sellMint.String()).Uint64("amount", amount).Logger()

	quote, err := p.Quoter.GetQuote(ctx, sellMint.String(), buyMint.String(), amount, p.SlippageBps)
	if err != nil {
		return solana.Signature{}, &StageError{Stage: StageQuoting, Err: err}
	}
	log.Debug().Str("out_amount", quote.OutAmount).Msg("quoted")

	raw, err := p.Builder.BuildSwap(ctx, sess.Wallet, quote, sess.Fee)
	if err != nil {
		return solana.Signature{}, &StageError{Stage: StageBuilding, Err: err}
	}
	log.Debug().Int("tx_bytes", len(raw)).Msg("transaction built")

	tx, err := p.Finalizer.Finalize(ctx, raw, sess.Key)
	if err != nil {
		return solana.Signature{}, &StageError{Stage: StageFinalizing, Err: err}
	}

	sig, err := p.Submitter.SubmitAndConfirm(ctx, tx)
	if err != nil {
		return solana.Signature{}, &StageError{Stage: StageSubmitting, Err: err}
	}
	log.Info().Str("sig", sig.String()).Msg("swap confirmed")
	return sig, nil
}
