package shared

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// OperatorConfig holds the raw operator credentials as read from the
// environment.
type OperatorConfig struct {
	AccountID  string
	PrivateKey string
	Network    string
}

// Operator is a parsed OperatorConfig.
type Operator struct {
	AccountID  hedera.AccountID
	PrivateKey hedera.PrivateKey
	Network    string
}

var (
	accountIDKeys  = []string{"HEDERA_ACCOUNT_ID", "HEDERA_OPERATOR_ID", "ACCOUNT_ID", "OPERATOR_ID"}
	privateKeyKeys = []string{"HEDERA_PRIVATE_KEY", "HEDERA_OPERATOR_KEY", "ACCOUNT_DER_PRIVATE_KEY", "PRIVATE_KEY", "OPERATOR_KEY"}
)

var dotenvLoadOnce sync.Once

// OperatorConfigFromEnv reads the operator account, key and network from the
// process environment, loading the nearest .env file first.
func OperatorConfigFromEnv() (OperatorConfig, error) {
	loadDotEnvIfPresent()

	network := firstNonEmptyEnv("HEDERA_NETWORK", "NETWORK")
	if network == "" {
		network = NetworkTestnet
	}

	accountID := firstNonEmptyEnv(accountIDKeys...)
	privateKey := firstNonEmptyEnv(privateKeyKeys...)

	if normalized, err := NormalizeNetwork(network); err == nil {
		prefix := strings.ToUpper(normalized) + "_"
		if scoped := firstNonEmptyEnv(scopedKeys(prefix, accountIDKeys)...); scoped != "" {
			accountID = scoped
		}
		if scoped := firstNonEmptyEnv(scopedKeys(prefix, privateKeyKeys)...); scoped != "" {
			privateKey = scoped
		}
	}

	if accountID == "" {
		return OperatorConfig{}, fmt.Errorf("HEDERA_ACCOUNT_ID is required")
	}
	if privateKey == "" {
		return OperatorConfig{}, fmt.Errorf("HEDERA_PRIVATE_KEY is required")
	}

	return OperatorConfig{
		AccountID:  accountID,
		PrivateKey: privateKey,
		Network:    network,
	}, nil
}

// ParseOperator validates the network and parses the account ID and key.
func ParseOperator(config OperatorConfig) (Operator, error) {
	network, err := NormalizeNetwork(config.Network)
	if err != nil {
		return Operator{}, err
	}
	if strings.TrimSpace(config.AccountID) == "" {
		return Operator{}, fmt.Errorf("operator account ID is required")
	}
	if strings.TrimSpace(config.PrivateKey) == "" {
		return Operator{}, fmt.Errorf("operator private key is required")
	}

	accountID, err := hedera.AccountIDFromString(strings.TrimSpace(config.AccountID))
	if err != nil {
		return Operator{}, fmt.Errorf("invalid operator account ID: %w", err)
	}
	privateKey, err := ParsePrivateKey(config.PrivateKey)
	if err != nil {
		return Operator{}, err
	}

	return Operator{
		AccountID:  accountID,
		PrivateKey: privateKey,
		Network:    network,
	}, nil
}

// NewOperatorClient returns a Hedera client that pays for and signs
// transactions as the configured operator.
func NewOperatorClient(config OperatorConfig) (*hedera.Client, Operator, error) {
	operator, err := ParseOperator(config)
	if err != nil {
		return nil, Operator{}, err
	}

	client, err := NewHederaClient(operator.Network)
	if err != nil {
		return nil, Operator{}, err
	}
	client.SetOperator(operator.AccountID, operator.PrivateKey)

	return client, operator, nil
}

// ParsePrivateKey accepts ED25519, ECDSA or DER encoded keys.
func ParsePrivateKey(raw string) (hedera.PrivateKey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return hedera.PrivateKey{}, fmt.Errorf("private key cannot be empty")
	}

	ed25519Key, edErr := hedera.PrivateKeyFromStringEd25519(candidate)
	if edErr == nil {
		return ed25519Key, nil
	}

	ecdsaKey, ecdsaErr := hedera.PrivateKeyFromStringECDSA(candidate)
	if ecdsaErr == nil {
		return ecdsaKey, nil
	}

	derKey, derErr := hedera.PrivateKeyFromStringDer(candidate)
	if derErr == nil {
		return derKey, nil
	}

	return hedera.PrivateKey{}, fmt.Errorf(
		"failed to parse private key as ED25519 (%v), ECDSA (%v), or DER (%v)",
		edErr,
		ecdsaErr,
		derErr,
	)
}

func scopedKeys(prefix string, keys []string) []string {
	scoped := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.HasPrefix(key, "HEDERA_") {
			scoped = append(scoped, prefix+key)
		}
	}
	return scoped
}

func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		startPaths := make([]string, 0, 2)
		if cwd, err := os.Getwd(); err == nil {
			startPaths = append(startPaths, cwd)
		}
		if _, currentFile, _, ok := runtime.Caller(0); ok {
			startPaths = append(startPaths, filepath.Dir(currentFile))
		}

		if path := findDotEnv(startPaths); path != "" {
			loadDotEnvFile(path)
		}
	})
}

// findDotEnv walks up from each start path and returns the first .env found.
func findDotEnv(startPaths []string) string {
	for _, start := range startPaths {
		current := start
		for {
			candidate := filepath.Join(current, ".env")
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}

			parent := filepath.Dir(current)
			if parent == current {
				break
			}
			current = parent
		}
	}
	return ""
}

func loadDotEnvFile(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	loadedAny := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := parseDotEnvLine(scanner.Text())
		if !ok {
			continue
		}
		if _, alreadySet := os.LookupEnv(key); alreadySet {
			continue
		}
		if setErr := os.Setenv(key, value); setErr == nil {
			loadedAny = true
		}
	}

	return loadedAny
}

func parseDotEnvLine(raw string) (string, string, bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if !isValidEnvKey(key) {
		return "", "", false
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		first := value[0]
		last := value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			value = value[1 : len(value)-1]
		}
	}

	return key, value, true
}

func isValidEnvKey(key string) bool {
	if key == "" {
		return false
	}
	for index, character := range key {
		if (character >= 'A' && character <= 'Z') ||
			(character >= 'a' && character <= 'z') ||
			(index > 0 && character >= '0' && character <= '9') ||
			character == '_' {
			continue
		}
		return false
	}
	return true
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return ""
}
