package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrConfig marks a bad or missing local file. It is fatal: the process
// exits before any network activity when one of these surfaces at startup.
var ErrConfig = errors.New("bad config file")

// PairList is the JSON document naming the pair identifiers to trade, in order.
type PairList struct {
	Pairs []string `json:"pairs"`
}

// Credentials is the JSON document holding the signing wallet.
type Credentials struct {
	WalletAddress string `json:"wallet_address"`
	PrivateKey    string `json:"private_key"`
}

// LoadPairs reads the pair-list document. An empty list is a config error:
// there is nothing to trade.
func LoadPairs(path string) (*PairList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read pairs %s: %v", ErrConfig, path, err)
	}
	var list PairList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: decode pairs %s: %v", ErrConfig, path, err)
	}
	if len(list.Pairs) == 0 {
		return nil, fmt.Errorf("%w: pairs %s lists no pairs", ErrConfig, path)
	}
	return &list, nil
}

// LoadCredentials reads the wallet document and rejects blank fields.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read credentials %s: %v", ErrConfig, path, err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("%w: decode credentials %s: %v", ErrConfig, path, err)
	}
	if strings.TrimSpace(creds.WalletAddress) == "" || strings.TrimSpace(creds.PrivateKey) == "" {
		return nil, fmt.Errorf("%w: credentials %s missing wallet_address or private_key", ErrConfig, path)
	}
	return &creds, nil
}
