package types

import "math/big"

const DefaultReputationScore = 50

// Reputation is the on-chain reputation projection for a creator
type Reputation struct {
	CreatorAddress    string  `json:"creator_address"`
	Score             *BigInt `json:"score"`
	TotalRatings      *BigInt `json:"total_ratings"`
	CompletedRequests *BigInt `json:"completed_requests"`
	DisputedRequests  *BigInt `json:"disputed_requests"`
	AverageRating     *BigInt `json:"average_rating"`
}

// DefaultReputation is reported when the reputation contract cannot be read
func DefaultReputation(creator string) *Reputation {
	return &Reputation{
		CreatorAddress:    creator,
		Score:             NewBigIntFromInt64(DefaultReputationScore),
		TotalRatings:      NewBigIntFromInt64(0),
		CompletedRequests: NewBigIntFromInt64(0),
		DisputedRequests:  NewBigIntFromInt64(0),
		AverageRating:     NewBigIntFromInt64(0),
	}
}

// Level buckets the score: Elite >= 90, Excellent >= 75, Good >= 60, Average >= 40, Poor >= 20, else Very Poor
func (r *Reputation) Level() string {
	score := r.Score.ToBigInt()
	switch {
	case score.Cmp(big.NewInt(90)) >= 0:
		return "Elite"
	case score.Cmp(big.NewInt(75)) >= 0:
		return "Excellent"
	case score.Cmp(big.NewInt(60)) >= 0:
		return "Good"
	case score.Cmp(big.NewInt(40)) >= 0:
		return "Average"
	case score.Cmp(big.NewInt(20)) >= 0:
		return "Poor"
	default:
		return "Very Poor"
	}
}

// CompletionRate is completed*100/(completed+disputed) truncated, 0 when there are no requests
func (r *Reputation) CompletionRate() int64 {
	completed := r.CompletedRequests.ToBigInt()
	total := new(big.Int).Add(completed, r.DisputedRequests.ToBigInt())
	if total.Sign() == 0 {
		return 0
	}
	rate := new(big.Int).Mul(completed, big.NewInt(100))
	return rate.Quo(rate, total).Int64()
}

type ReputationResponse struct {
	*Reputation
	Level          string `json:"level"`
	CompletionRate int64  `json:"completion_rate"`
	Fallback       bool   `json:"fallback"`
}

type SubmitRatingRequest struct {
	CreatorAddress   string `json:"creatorAddress" binding:"required,eth_addr"`
	SupporterAddress string `json:"supporterAddress"`
	Rating           uint8  `json:"rating" binding:"required,min=1,max=5"`
	Comment          string `json:"comment" binding:"required,max=2000"`
}

type TransactionResponse struct {
	Success bool   `json:"success"`
	TxHash  string `json:"txHash"`
	Message string `json:"message,omitempty"`
}

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionConfirmed TransactionStatus = "confirmed"
	TransactionFailed    TransactionStatus = "failed"
)

type TransactionStatusResponse struct {
	TxHash      string            `json:"tx_hash"`
	Status      TransactionStatus `json:"status"`
	BlockNumber *BigInt           `json:"block_number,omitempty"`
}
