package solana

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

const testBlockhash = "9aE476sH92Vz7DMPyq5WLPkrKWivxeuTKEFKd2sZZcde"

// rpcServer answers JSON-RPC calls by method name with canned result payloads.
func rpcServer(t *testing.T, results map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     any    `json:"id"`
			Method string `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode rpc request: %v", err)
		}
		result, ok := results[req.Method]
		if !ok {
			t.Fatalf("unexpected rpc method %s", req.Method)
		}
		id, _ := json.Marshal(req.ID)
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, id, result)
	}))
}

func TestNewLedgerCommit(t *testing.T) {
	if l := NewLedger("https://rpc", "finalized"); l.Commit != rpc.CommitmentFinalized {
		t.Fatalf("expected finalized commitment, got %v", l.Commit)
	}
	if l := NewLedger("https://rpc", "processed"); l.Commit != rpc.CommitmentProcessed {
		t.Fatalf("expected processed commitment, got %v", l.Commit)
	}
	if l := NewLedger("https://rpc", ""); l.Commit != rpc.CommitmentConfirmed {
		t.Fatalf("expected confirmed default, got %v", l.Commit)
	}
}

func TestLatestBlockhash(t *testing.T) {
	server := rpcServer(t, map[string]string{
		"getLatestBlockhash": fmt.Sprintf(`{"context":{"slot":100},"value":{"blockhash":"%s","lastValidBlockHeight":1000}}`, testBlockhash),
	})
	defer server.Close()

	hash, err := NewLedger(server.URL, "confirmed").LatestBlockhash(context.Background())
	if err != nil {
		t.Fatalf("LatestBlockhash returned error: %v", err)
	}
	if hash.String() != testBlockhash {
		t.Fatalf("expected %s, got %s", testBlockhash, hash)
	}
}

func TestTokenBalance(t *testing.T) {
	server := rpcServer(t, map[string]string{
		"getTokenAccountBalance": `{"context":{"slot":100},"value":{"amount":"123456","decimals":6,"uiAmount":0.123456,"uiAmountString":"0.123456"}}`,
	})
	defer server.Close()

	owner := solana.NewWallet().PublicKey()
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	amount, err := NewLedger(server.URL, "confirmed").TokenBalance(context.Background(), owner, mint)
	if err != nil {
		t.Fatalf("TokenBalance returned error: %v", err)
	}
	if amount != 123456 {
		t.Fatalf("expected 123456, got %d", amount)
	}
}
