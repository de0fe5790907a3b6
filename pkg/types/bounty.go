package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bounty is a creator's commission offer backed by an ERC-20 token contract.
// Rows are never updated or deleted after creation.
type Bounty struct {
	ID                    int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ContractAddress       string          `gorm:"type:varchar(42);not null;index" json:"contract_address"`
	CreatorAddress        string          `gorm:"type:varchar(42);not null;index" json:"creator_address"`
	Name                  string          `gorm:"type:text;not null" json:"name"`
	Description           string          `gorm:"type:text" json:"description,omitempty"`
	MetadataCID           string          `gorm:"type:text" json:"metadata_cid,omitempty"`
	BasePriceETH          decimal.Decimal `gorm:"type:numeric(36,18);not null" json:"base_price_eth"`
	MinimumTokensRequired decimal.Decimal `gorm:"type:numeric(78,18);not null;default:0" json:"minimum_tokens_required"`
	CreatedAt             time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Bounty) TableName() string {
	return "bounties"
}

type CreateBountyRequest struct {
	ContractAddress       string          `json:"contract_address" binding:"required,eth_addr"`
	CreatorAddress        string          `json:"creator_address"`
	Name                  string          `json:"name" binding:"required,max=200"`
	Description           string          `json:"description" binding:"max=5000"`
	ImageURL              string          `json:"image_url"`
	BasePriceETH          decimal.Decimal `json:"base_price_eth"`
	MinimumTokensRequired decimal.Decimal `json:"minimum_tokens_required"`
	PinMetadata           bool            `json:"pin_metadata"`
}

// EligibilityResponse reports whether a supporter holds enough bounty tokens to submit a request
type EligibilityResponse struct {
	BountyID         int64   `json:"bounty_id"`
	SupporterAddress string  `json:"supporter_address"`
	Balance          *BigInt `json:"balance"`
	Required         *BigInt `json:"required"`
	Eligible         bool    `json:"eligible"`
}

// TransferPlan describes the token transfer a supporter signs before releasing payment
type TransferPlan struct {
	RequestID     string  `json:"request_id"`
	TokenContract string  `json:"token_contract"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	AmountETH     string  `json:"amount_eth"`
	Amount        *BigInt `json:"amount"`
	Decimals      uint8   `json:"decimals"`
}
