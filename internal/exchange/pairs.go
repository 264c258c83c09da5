// Package exchange resolves human-readable pair identifiers into on-chain
// token addresses via the Dexscreener pair-metadata API.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"solswap-go/internal/metrics"
	"solswap-go/internal/trade"
)

const (
	defaultBaseURL = "https://api.dexscreener.com"
	defaultChain   = "solana"
)

// Resolver fetches pair metadata and extracts the base token address.
type Resolver struct {
	base  string
	chain string
	log   zerolog.Logger

	// Http is exported so tests can point the resolver at a local server.
	Http *http.Client
}

// NewResolver builds a Resolver for the given Dexscreener endpoint and chain.
// Empty arguments fall back to the public API and solana.
func NewResolver(baseURL, chain string, log zerolog.Logger) *Resolver {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if chain == "" {
		chain = defaultChain
	}
	return &Resolver{
		base:  strings.TrimSuffix(baseURL, "/"),
		chain: strings.ToLower(chain),
		log:   log,
		Http:  &http.Client{Timeout: 10 * time.Second},
	}
}

type pairsResponse struct {
	Pairs []pairData `json:"pairs"`
	Pair  *pairData  `json:"pair"`
}

type pairData struct {
	ChainID     string    `json:"chainId"`
	PairAddress string    `json:"pairAddress"`
	BaseToken   tokenData `json:"baseToken"`
	QuoteToken  tokenData `json:"quoteToken"`
}

type tokenData struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

func (r *pairsResponse) firstPair() (*pairData, bool) {
	if len(r.Pairs) > 0 {
		return &r.Pairs[0], true
	}
	if r.Pair != nil {
		return r.Pair, true
	}
	return nil, false
}

// BaseToken looks up one pair identifier and returns the base token mint.
func (r *Resolver) BaseToken(ctx context.Context, pairID string) (solana.PublicKey, error) {
	url := fmt.Sprintf("%s/latest/dex/pairs/%s/%s", r.base, r.chain, pairID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: create request: %v", trade.ErrUpstream, err)
	}
	req.Header.Set("User-Agent", "solswap-go/1.0")

	resp, err := r.Http.Do(req)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("dexscreener").Inc()
		return solana.PublicKey{}, fmt.Errorf("%w: pair lookup %s: %v", trade.ErrUpstream, pairID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamErrors.WithLabelValues("dexscreener").Inc()
		return solana.PublicKey{}, fmt.Errorf("%w: pair lookup %s: status %d", trade.ErrUpstream, pairID, resp.StatusCode)
	}

	var payload pairsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: pair lookup %s: decode: %v", trade.ErrProtocol, pairID, err)
	}
	pair, ok := payload.firstPair()
	if !ok {
		return solana.PublicKey{}, fmt.Errorf("%w: pair lookup %s: no pair data returned", trade.ErrProtocol, pairID)
	}
	if pair.BaseToken.Address == "" {
		return solana.PublicKey{}, fmt.Errorf("%w: pair lookup %s: missing base token address", trade.ErrProtocol, pairID)
	}
	mint, err := solana.PublicKeyFromBase58(pair.BaseToken.Address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: pair lookup %s: base token %q is not a valid address", trade.ErrProtocol, pairID, pair.BaseToken.Address)
	}
	return mint, nil
}

// ResolveTradeList resolves every pair identifier in order. The first
// failure aborts the whole resolution; this runs at startup before any
// trading, so a bad pair stops the session before it begins.
func (r *Resolver) ResolveTradeList(ctx context.Context, pairIDs []string) ([]solana.PublicKey, error) {
	list := make([]solana.PublicKey, 0, len(pairIDs))
	for _, id := range pairIDs {
		mint, err := r.BaseToken(ctx, id)
		if err != nil {
			return nil, err
		}
		r.log.Debug().Str("pair", id).Str("mint", mint.String()).Msg("resolved pair")
		list = append(list, mint)
	}
	return list, nil
}
