package solana

import (
	"errors"
	"fmt"
	"os"

	solana "github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/mr-tron/base58"

	"solswap-go/internal/config"
)

// ParseCredentials validates the credentials document and builds the signing
// key. The declared wallet address must match the key's public half; a
// mismatch or malformed key material is a config error, fatal at startup.
func ParseCredentials(creds *config.Credentials) (solana.PublicKey, solana.PrivateKey, error) {
	wallet, err := solana.PublicKeyFromBase58(creds.WalletAddress)
	if err != nil {
		return solana.PublicKey{}, nil, fmt.Errorf("%w: wallet address %q: %v", config.ErrConfig, creds.WalletAddress, err)
	}
	raw, err := base58.Decode(creds.PrivateKey)
	if err != nil {
		return solana.PublicKey{}, nil, fmt.Errorf("%w: private key is not base58: %v", config.ErrConfig, err)
	}
	if len(raw) != 64 {
		return solana.PublicKey{}, nil, fmt.Errorf("%w: private key has %d bytes, want 64", config.ErrConfig, len(raw))
	}
	key := solana.PrivateKey(raw)
	if !key.PublicKey().Equals(wallet) {
		return solana.PublicKey{}, nil, fmt.Errorf("%w: private key does not belong to wallet %s", config.ErrConfig, wallet)
	}
	return wallet, key, nil
}

// LoadPrivateKeyFromEnv reads an override signing key from the environment,
// loading a .env file first if one is present.
func LoadPrivateKeyFromEnv() (solana.PrivateKey, error) {
	_ = godotenv.Load() // best-effort
	b58 := os.Getenv("SOLANA_PRIVATE_KEY_BASE58")
	if b58 == "" {
		return nil, errors.New("SOLANA_PRIVATE_KEY_BASE58 not set")
	}
	return solana.PrivateKeyFromBase58(b58)
}
