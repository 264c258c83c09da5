package trade

import (
	solana "github.com/gagliardetto/solana-go"
)

// Session carries the state that outlives a single swap: the signing
// credential, the fee negotiated at startup, and the resolved trade list.
// It is passed by reference to every pipeline invocation; nothing mutates
// it after construction.
type Session struct {
	Wallet    solana.PublicKey
	Key       solana.PrivateKey
	Fee       uint64
	TradeList []solana.PublicKey
}

// NewSession freezes the per-session inputs.
func NewSession(wallet solana.PublicKey, key solana.PrivateKey, fee uint64, tradeList []solana.PublicKey) *Session {
	list := make([]solana.PublicKey, len(tradeList))
	copy(list, tradeList)
	return &Session{Wallet: wallet, Key: key, Fee: fee, TradeList: list}
}
