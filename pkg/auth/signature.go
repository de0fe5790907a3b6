package auth

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrSignatureMismatch  = errors.New("signature does not match address")
	ErrMalformedSignature = errors.New("malformed signature")
)

// LoginMessage is the text the wallet signs with personal_sign
func LoginMessage(address string, nonce string) string {
	return fmt.Sprintf("Bounty Board login\nAddress: %s\nNonce: %s", address, nonce)
}

// VerifySignature checks an EIP-191 personal_sign signature of message by address
func VerifySignature(address string, message string, signatureHex string) error {
	sig, err := hexutil.Decode(signatureHex)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	if len(sig) != crypto.SignatureLength {
		return fmt.Errorf("%w: length %d", ErrMalformedSignature, len(sig))
	}

	// wallets return v as 27/28
	normalized := make([]byte, len(sig))
	copy(normalized, sig)
	if normalized[crypto.RecoveryIDOffset] >= 27 {
		normalized[crypto.RecoveryIDOffset] -= 27
	}

	pubKey, err := crypto.SigToPub(accounts.TextHash([]byte(message)), normalized)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}

	if crypto.PubkeyToAddress(*pubKey) != common.HexToAddress(address) {
		return ErrSignatureMismatch
	}
	return nil
}
