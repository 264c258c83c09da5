package solana

import (
	"context"
	"fmt"
	"strconv"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"solswap-go/internal/metrics"
	"solswap-go/internal/trade"
)

// Ledger is the slice of Solana RPC this system uses: blockhash freshness,
// token balances, submission, and confirmation status.
type Ledger interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	TokenBalance(ctx context.Context, owner, mint solana.PublicKey) (uint64, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	SignatureStatus(ctx context.Context, sig solana.Signature) (*rpc.SignatureStatusesResult, error)
}

// RPCLedger implements Ledger over a JSON-RPC node.
type RPCLedger struct {
	RPC    *rpc.Client
	Commit rpc.CommitmentType
}

// NewLedger dials the node URL with the requested commitment level.
func NewLedger(rpcURL, commit string) *RPCLedger {
	c := rpc.CommitmentConfirmed
	switch commit {
	case "processed":
		c = rpc.CommitmentProcessed
	case "finalized":
		c = rpc.CommitmentFinalized
	}
	return &RPCLedger{RPC: rpc.New(rpcURL), Commit: c}
}

func (l *RPCLedger) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	out, err := l.RPC.GetLatestBlockhash(ctx, l.Commit)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("rpc").Inc()
		return solana.Hash{}, fmt.Errorf("%w: latest blockhash: %v", trade.ErrUpstream, err)
	}
	return out.Value.Blockhash, nil
}

// TokenBalance reads the raw balance of owner's associated token account for mint.
func (l *RPCLedger) TokenBalance(ctx context.Context, owner, mint solana.PublicKey) (uint64, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return 0, fmt.Errorf("%w: associated address for %s: %v", trade.ErrProtocol, mint, err)
	}
	out, err := l.RPC.GetTokenAccountBalance(ctx, ata, l.Commit)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("rpc").Inc()
		return 0, fmt.Errorf("%w: token balance %s: %v", trade.ErrUpstream, ata, err)
	}
	if out == nil || out.Value == nil {
		return 0, fmt.Errorf("%w: token balance %s: empty response", trade.ErrProtocol, ata)
	}
	amount, err := strconv.ParseUint(out.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: token balance %s: amount %q: %v", trade.ErrProtocol, ata, out.Value.Amount, err)
	}
	return amount, nil
}

func (l *RPCLedger) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := l.RPC.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: l.Commit,
	})
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("rpc").Inc()
		return solana.Signature{}, fmt.Errorf("%w: send transaction: %v", trade.ErrUpstream, err)
	}
	return sig, nil
}

func (l *RPCLedger) SignatureStatus(ctx context.Context, sig solana.Signature) (*rpc.SignatureStatusesResult, error) {
	out, err := l.RPC.GetSignatureStatuses(ctx, false, sig)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("rpc").Inc()
		return nil, fmt.Errorf("%w: signature status: %v", trade.ErrUpstream, err)
	}
	if out == nil || len(out.Value) == 0 {
		return nil, nil
	}
	return out.Value[0], nil
}
