package env

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	ethAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	privateKeyPattern = regexp.MustCompile(`^(0x)?[0-9a-fA-F]{64}$`)
	txHashPattern     = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
)

func IsEmpty(value string) bool {
	return strings.TrimSpace(value) == ""
}

// Ethereum Address
func IsValidEthAddress(address string) bool {
	return ethAddressPattern.MatchString(address)
}

// ECDSA private key, hex, optional 0x prefix
func IsValidPrivateKey(privateKey string) bool {
	return privateKeyPattern.MatchString(privateKey)
}

func IsValidTxHash(hash string) bool {
	return txHashPattern.MatchString(hash)
}

// IsValidURL accepts absolute http(s), ws(s), redis and postgres URLs with a host.
func IsValidURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss", "redis", "rediss", "postgres", "postgresql":
		return true
	default:
		return false
	}
}

// NormalizePrivateKey strips an optional 0x prefix.
func NormalizePrivateKey(privateKey string) string {
	return strings.TrimPrefix(strings.TrimPrefix(privateKey, "0x"), "0X")
}
