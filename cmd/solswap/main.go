// Binary solswap is the interactive swap session: it loads the pair list and
// wallet credentials, resolves pair identifiers to token mints, then walks
// the fee/action/confirm prompts and swaps every pair in the list.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"solswap-go/internal/config"
	"solswap-go/internal/controller"
	dex "solswap-go/internal/dex/solana"
	"solswap-go/internal/exchange"
	"solswap-go/internal/metrics"
	"solswap-go/internal/pipeline"
	"solswap-go/internal/trade"
	"solswap-go/internal/util"
)

func main() {
	_ = godotenv.Load()
	log := util.NewLogger(getEnv("LOG_LEVEL", "info"))

	cfg, err := config.Load(getEnv("SOLSWAP_CONFIG", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if cfg.App.LogLevel != "" {
		log = util.NewLogger(cfg.App.LogLevel)
	}

	// Both local documents must parse before any network activity starts.
	pairsDoc, err := config.LoadPairs(cfg.Files.Pairs)
	if err != nil {
		log.Fatal().Err(err).Msg("load pairs")
	}
	creds, err := config.LoadCredentials(cfg.Files.Credentials)
	if err != nil {
		log.Fatal().Err(err).Msg("load credentials")
	}
	wallet, key, err := dex.ParseCredentials(creds)
	if err != nil {
		log.Fatal().Err(err).Msg("parse credentials")
	}
	if envKey, envErr := dex.LoadPrivateKeyFromEnv(); envErr == nil {
		key = envKey
		wallet = envKey.PublicKey()
		log.Info().Str("wallet", wallet.String()).Msg("signing key overridden from environment")
	}

	if cfg.App.MetricsAddr != "" {
		_ = metrics.Serve(cfg.App.MetricsAddr)
		log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")
	}

	ctx := context.Background()

	fmt.Print("Loading, Please wait...")
	resolver := exchange.NewResolver(cfg.DexScreener.BaseURL, cfg.DexScreener.Chain, log)
	tradeList, err := resolver.ResolveTradeList(ctx, pairsDoc.Pairs)
	if err != nil {
		fmt.Println()
		log.Fatal().Err(err).Msg("resolve pairs")
	}
	fmt.Println(" done!")

	fmt.Printf("Welcome to %s!\n", appName(cfg))
	for _, pair := range pairsDoc.Pairs {
		fmt.Println(pair)
	}

	ledger := dex.NewLedger(getEnv("SOLANA_RPC_URL", cfg.Dex.RpcURL), getEnv("SOLANA_COMMITMENT", cfg.Dex.Commitment))
	jup := dex.NewJupiterClient(getEnv("JUPITER_BASE_URL", cfg.Dex.JupiterBase), log)
	pipe := pipeline.New(jup, jup, &dex.Finalizer{Ledger: ledger, Log: log}, dex.NewSubmitter(ledger, log), cfg.Dex.SlippageBps, log)

	runner := &controller.Runner{
		Wallet:    wallet,
		Key:       key,
		TradeList: tradeList,
		Pipeline:  pipe,
		Ledger:    ledger,
		In:        os.Stdin,
		Out:       os.Stdout,
		Log:       log,
	}
	if err := runner.Run(ctx); err != nil {
		if errors.Is(err, trade.ErrInvalidInput) {
			log.Fatal().Err(err).Msg("session ended on invalid input")
		}
		log.Fatal().Err(err).Msg("session failed")
	}
}

func appName(cfg *config.Config) string {
	if cfg.App.Name != "" {
		return cfg.App.Name
	}
	return "solswap"
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
