package validator

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/bountyboard/bountyboard-backend/pkg/env"
	"github.com/bountyboard/bountyboard-backend/pkg/ipfs"
)

func IsValidAddress(address string) bool {
	return env.IsValidEthAddress(address)
}

func IsValidTxHash(hash string) bool {
	return env.IsValidTxHash(hash)
}

func IsValidCID(cid string) bool {
	return ipfs.IsValidCID(cid)
}

// NormalizeAddress returns the EIP-55 checksummed form so addresses compare by string equality
func NormalizeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !IsValidAddress(address) {
		return "", fmt.Errorf("invalid address %q", address)
	}
	return common.HexToAddress(address).Hex(), nil
}

// SameAddress compares two hex addresses case-insensitively
func SameAddress(a, b string) bool {
	return IsValidAddress(a) && IsValidAddress(b) && strings.EqualFold(a, b)
}

// RegisterValidations adds the cid and tx_hash tags to v
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("cid", func(fl validator.FieldLevel) bool {
		return IsValidCID(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register cid validation: %w", err)
	}
	if err := v.RegisterValidation("tx_hash", func(fl validator.FieldLevel) bool {
		return IsValidTxHash(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register tx_hash validation: %w", err)
	}
	return nil
}

// RegisterGinValidations registers the custom tags on gin's binding engine
func RegisterGinValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("gin binding engine is not go-playground/validator")
	}
	return RegisterValidations(v)
}
