package controller

import (
	"bufio"
	"context"
	"fmt"
	"io"

	solana "github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"solswap-go/internal/metrics"
	"solswap-go/internal/trade"
)

// Swapper runs one full swap through the pipeline.
type Swapper interface {
	Swap(ctx context.Context, sess *trade.Session, buyMint, sellMint solana.PublicKey, amount uint64) (solana.Signature, error)
}

// BalanceReader looks up the raw token balance the sell flow divides.
type BalanceReader interface {
	TokenBalance(ctx context.Context, owner, mint solana.PublicKey) (uint64, error)
}

// Runner owns one interactive session: prompts, amount/fee resolution, and
// a sequential pass over the trade list. One pair's failure is reported and
// the next pair is still attempted.
type Runner struct {
	Wallet    solana.PublicKey
	Key       solana.PrivateKey
	TradeList []solana.PublicKey
	Pipeline  Swapper
	Ledger    BalanceReader
	In        io.Reader
	Out       io.Writer
	Log       zerolog.Logger
}

// Run drives the prompt machine until the session ends. The returned error
// is nil for a completed session (even with failed swaps) and non-nil for
// malformed input or a broken console.
func (r *Runner) Run(ctx context.Context) error {
	reader := bufio.NewReader(r.In)
	m := NewMachine()
	var done, failed int

	for m.State != StateIdle {
		fmt.Fprint(r.Out, m.Prompt())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read input: %w", err)
		}
		prev := m.State
		action, err := m.Step(line)
		if err != nil {
			fmt.Fprintf(r.Out, "%v\n", err)
			return err
		}
		if prev == StateFeeChoice {
			fmt.Fprintf(r.Out, "Prioritization fee: %d lamports\n", m.Fee)
		}
		if action == ActionExecuteBuy || action == ActionExecuteSell {
			done, failed = r.execute(ctx, m)
			m.Finish()
		}
	}

	if failed == 0 {
		fmt.Fprintln(r.Out, "All the transactions successfully done!")
	} else {
		fmt.Fprintf(r.Out, "Completed %d of %d swaps; %d failed.\n", done, done+failed, failed)
	}
	return nil
}

func (r *Runner) execute(ctx context.Context, m *Machine) (done, failed int) {
	sess := trade.NewSession(r.Wallet, r.Key, m.Fee, r.TradeList)
	for _, mint := range sess.TradeList {
		sig, err := r.swapOne(ctx, sess, m, mint)
		if err != nil {
			failed++
			metrics.SwapsTotal.WithLabelValues(mint.String(), "failed").Inc()
			r.Log.Error().Err(err).Str("token", mint.String()).Msg("swap failed")
			fmt.Fprintf(r.Out, "Swap failed for %s: %v\n", mint, err)
			continue
		}
		done++
		metrics.SwapsTotal.WithLabelValues(mint.String(), "done").Inc()
		fmt.Fprintf(r.Out, "https://solscan.io/tx/%s\n", sig)
	}
	return done, failed
}

func (r *Runner) swapOne(ctx context.Context, sess *trade.Session, m *Machine, mint solana.PublicKey) (solana.Signature, error) {
	if m.Buying {
		fmt.Fprintf(r.Out, "Buy: %s, Sell: %s\n", mint, solana.SolMint)
		return r.Pipeline.Swap(ctx, sess, mint, solana.SolMint, m.Amount)
	}
	balance, err := r.Ledger.TokenBalance(ctx, r.Wallet, mint)
	if err != nil {
		return solana.Signature{}, err
	}
	// A zero balance resolves to a zero amount and the swap is still attempted.
	amount, err := trade.ResolveSellAmount(balance, m.Percent)
	if err != nil {
		return solana.Signature{}, err
	}
	fmt.Fprintf(r.Out, "Buy: %s, Sell: %s\n", solana.SolMint, mint)
	return r.Pipeline.Swap(ctx, sess, solana.SolMint, mint, amount)
}
