package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bountyboard/bountyboard-backend/pkg/logging"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
	"github.com/bountyboard/bountyboard-backend/pkg/validator"
)

var ErrNonceNotFound = errors.New("no outstanding nonce for address")

const DefaultNonceTTL = 5 * time.Minute

// Service runs the sign-in-with-wallet flow: Challenge hands out a nonce, Login trades a signature for a token
type Service struct {
	nonces   NonceStore
	issuer   *TokenIssuer
	nonceTTL time.Duration
	logger   logging.Logger
}

func NewService(nonces NonceStore, issuer *TokenIssuer, nonceTTL time.Duration, logger logging.Logger) *Service {
	if nonceTTL <= 0 {
		nonceTTL = DefaultNonceTTL
	}
	return &Service{nonces: nonces, issuer: issuer, nonceTTL: nonceTTL, logger: logger}
}

func (s *Service) Challenge(ctx context.Context, address string) (*types.NonceResponse, error) {
	normalized, err := validator.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	nonce := uuid.NewString()
	if err := s.nonces.Put(ctx, normalized, nonce, s.nonceTTL); err != nil {
		return nil, fmt.Errorf("failed to store nonce: %w", err)
	}

	return &types.NonceResponse{
		Address: normalized,
		Nonce:   nonce,
		Message: LoginMessage(normalized, nonce),
	}, nil
}

// Login consumes the outstanding nonce whether or not the signature verifies
func (s *Service) Login(ctx context.Context, address string, signature string) (*types.VerifyResponse, error) {
	normalized, err := validator.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	nonce, err := s.nonces.Take(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to load nonce: %w", err)
	}
	if nonce == "" {
		return nil, ErrNonceNotFound
	}

	if err := VerifySignature(normalized, LoginMessage(normalized, nonce), signature); err != nil {
		s.logger.Warn("Wallet signature rejected", "address", normalized, "error", err)
		return nil, err
	}

	token, expiresAt, err := s.issuer.Issue(normalized)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Wallet signed in", "address", normalized)

	return &types.VerifyResponse{
		Token:     token,
		Address:   normalized,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *Service) ParseToken(token string) (string, error) {
	return s.issuer.Parse(token)
}
