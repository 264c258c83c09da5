// Package solana talks to the two external services a swap needs: the
// Jupiter quote/swap API and the Solana ledger RPC.
package solana

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"solswap-go/internal/metrics"
	"solswap-go/internal/trade"
)

// JupiterClient issues quote and swap-build requests against a Jupiter v6 base URL.
type JupiterClient struct {
	Base string
	Http *http.Client
	log  zerolog.Logger
}

func NewJupiterClient(base string, log zerolog.Logger) *JupiterClient {
	return &JupiterClient{
		Base: base,
		Http: &http.Client{Timeout: 8 * time.Second},
		log:  log,
	}
}

// Quote is a priced exchange-rate offer. The decoded fields exist for logging
// and shape validation; Raw preserves the exact response bytes so the build
// request passes the quote through unmodified.
type Quote struct {
	InputMint   string `json:"inputMint"`
	OutputMint  string `json:"outputMint"`
	InAmount    string `json:"inAmount"`
	OutAmount   string `json:"outAmount"`
	OtherAmount string `json:"otherAmountThreshold"`
	SlippageBps int    `json:"slippageBps"`

	Raw json.RawMessage `json:"-"`
}

// GetQuote asks Jupiter to price swapping amount (smallest units) of
// inputMint into outputMint.
func (j *JupiterClient) GetQuote(ctx context.Context, inputMint, outputMint string, amount uint64, slippageBps int) (*Quote, error) {
	q := url.Values{}
	q.Set("inputMint", inputMint)
	q.Set("outputMint", outputMint)
	q.Set("amount", fmt.Sprintf("%d", amount))
	q.Set("slippageBps", fmt.Sprintf("%d", slippageBps))
	q.Set("onlyDirectRoutes", "false")
	u := j.Base + "/v6/quote?" + q.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	resp, err := j.Http.Do(req)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("jupiter").Inc()
		return nil, fmt.Errorf("%w: jupiter quote: %v", trade.ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamErrors.WithLabelValues("jupiter").Inc()
		return nil, fmt.Errorf("%w: jupiter quote status %d", trade.ErrUpstream, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("jupiter").Inc()
		return nil, fmt.Errorf("%w: jupiter quote read: %v", trade.ErrUpstream, err)
	}

	var out Quote
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: jupiter quote decode: %v", trade.ErrProtocol, err)
	}
	if out.OutAmount == "" {
		return nil, fmt.Errorf("%w: jupiter quote missing outAmount", trade.ErrProtocol)
	}
	out.Raw = body
	j.log.Debug().Str("in", out.InAmount).Str("out", out.OutAmount).Msg("quoted")
	return &out, nil
}

// BuildSwap sends the quote back with the payer and prioritization fee and
// returns the serialized unsigned transaction Jupiter built. It does not
// sign or broadcast anything.
func (j *JupiterClient) BuildSwap(ctx context.Context, payer solana.PublicKey, quote *Quote, prioritizationFee uint64) ([]byte, error) {
	quoteJSON := quote.Raw
	if len(quoteJSON) == 0 {
		var err error
		if quoteJSON, err = json.Marshal(quote); err != nil {
			return nil, fmt.Errorf("%w: marshal quote: %v", trade.ErrProtocol, err)
		}
	}
	payload := map[string]any{
		"userPublicKey":             payer.String(),
		"wrapAndUnwrapSol":          true,
		"asLegacyTransaction":       false,
		"useTokenLedger":            false,
		"prioritizationFeeLamports": prioritizationFee,
		"quoteResponse":             json.RawMessage(quoteJSON),
	}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, j.Base+"/v6/swap", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := j.Http.Do(req)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("jupiter").Inc()
		return nil, fmt.Errorf("%w: jupiter swap: %v", trade.ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamErrors.WithLabelValues("jupiter").Inc()
		return nil, fmt.Errorf("%w: jupiter swap status %d", trade.ErrUpstream, resp.StatusCode)
	}
	var sr struct {
		SwapTransaction string `json:"swapTransaction"` // base64-encoded unsigned tx
	}
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: jupiter swap decode: %v", trade.ErrProtocol, err)
	}
	if sr.SwapTransaction == "" {
		return nil, fmt.Errorf("%w: jupiter swap missing swapTransaction", trade.ErrProtocol)
	}
	raw, err := base64.StdEncoding.DecodeString(sr.SwapTransaction)
	if err != nil {
		return nil, fmt.Errorf("%w: decode tx: %v", trade.ErrProtocol, err)
	}
	return raw, nil
}
