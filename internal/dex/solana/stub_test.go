package solana

import (
	"context"
	"errors"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// stubLedger scripts ledger responses for finalize/submit tests.
type stubLedger struct {
	blockhash    solana.Hash
	blockhashErr error

	balances   map[solana.PublicKey]uint64
	balanceErr error

	sendSig solana.Signature
	sendErr error

	statuses  []*rpc.SignatureStatusesResult
	statusErr error
	statusIdx int
}

func (s *stubLedger) LatestBlockhash(context.Context) (solana.Hash, error) {
	if s.blockhashErr != nil {
		return solana.Hash{}, s.blockhashErr
	}
	return s.blockhash, nil
}

func (s *stubLedger) TokenBalance(_ context.Context, _, mint solana.PublicKey) (uint64, error) {
	if s.balanceErr != nil {
		return 0, s.balanceErr
	}
	return s.balances[mint], nil
}

func (s *stubLedger) SendTransaction(context.Context, *solana.Transaction) (solana.Signature, error) {
	if s.sendErr != nil {
		return solana.Signature{}, s.sendErr
	}
	return s.sendSig, nil
}

func (s *stubLedger) SignatureStatus(context.Context, solana.Signature) (*rpc.SignatureStatusesResult, error) {
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	if s.statusIdx >= len(s.statuses) {
		return nil, nil
	}
	st := s.statuses[s.statusIdx]
	s.statusIdx++
	return st, nil
}

var errStub = errors.New("stub failure")
