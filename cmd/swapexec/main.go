// Binary swapexec runs one non-interactive swap end to end (0.01 SOL into
// USDC by default) to verify endpoint and credential wiring before a real
// session.
package main

import (
	"context"
	"os"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"

	"solswap-go/internal/config"
	dex "solswap-go/internal/dex/solana"
	"solswap-go/internal/pipeline"
	"solswap-go/internal/trade"
	"solswap-go/internal/util"
)

const usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

func main() {
	_ = godotenv.Load()
	log := util.NewLogger(getEnv("LOG_LEVEL", "info"))

	cfg, err := config.Load(getEnv("SOLSWAP_CONFIG", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	creds, err := config.LoadCredentials(cfg.Files.Credentials)
	if err != nil {
		log.Fatal().Err(err).Msg("load credentials")
	}
	wallet, key, err := dex.ParseCredentials(creds)
	if err != nil {
		log.Fatal().Err(err).Msg("parse credentials")
	}

	ledger := dex.NewLedger(getEnv("SOLANA_RPC_URL", cfg.Dex.RpcURL), getEnv("SOLANA_COMMITMENT", cfg.Dex.Commitment))
	jup := dex.NewJupiterClient(getEnv("JUPITER_BASE_URL", cfg.Dex.JupiterBase), log)
	pipe := pipeline.New(jup, jup, &dex.Finalizer{Ledger: ledger, Log: log}, dex.NewSubmitter(ledger, log), cfg.Dex.SlippageBps, log)

	sess := trade.NewSession(wallet, key, trade.AutoFee, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	amount, err := trade.ResolveBuyAmount(getEnv("SWAPEXEC_AMOUNT_SOL", "0.01"))
	if err != nil {
		log.Fatal().Err(err).Msg("resolve amount")
	}
	buy := solana.MustPublicKeyFromBase58(getEnv("SWAPEXEC_BUY_MINT", usdcMint))

	sig, err := pipe.Swap(ctx, sess, buy, solana.SolMint, amount)
	if err != nil {
		log.Fatal().Err(err).Msg("swap")
	}
	log.Info().Str("sig", sig.String()).Msgf("confirmed: https://solscan.io/tx/%s", sig)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
