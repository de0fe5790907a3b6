package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusPaid      RequestStatus = "paid"
)

var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:   {RequestStatusCompleted, RequestStatusRejected},
	RequestStatusCompleted: {RequestStatusPaid},
}

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusCompleted, RequestStatusRejected, RequestStatusPaid:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusRejected || s == RequestStatusPaid
}

// CanTransitionTo allows pending->completed, pending->rejected and completed->paid only
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Request is a supporter's commission ask against a bounty
type Request struct {
	ID               string        `gorm:"primaryKey;type:uuid" json:"id"`
	BountyID         int64         `gorm:"not null;index" json:"bounty_id"`
	SupporterAddress string        `gorm:"type:varchar(42);not null;index" json:"supporter_address"`
	Prompt           string        `gorm:"type:text;not null" json:"prompt"`
	Status           RequestStatus `gorm:"type:varchar(16);not null;default:pending;index" json:"status"`
	FulfilledCID     *string       `gorm:"type:text" json:"fulfilled_cid,omitempty"`
	TxHash           *string       `gorm:"type:varchar(66)" json:"tx_hash,omitempty"`
	MetadataCID      *string       `gorm:"type:text" json:"metadata_cid,omitempty"`
	CreatedAt        time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
	Bounty           *Bounty       `gorm:"foreignKey:BountyID;references:ID" json:"bounty,omitempty"`
}

func (Request) TableName() string {
	return "requests"
}

func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = RequestStatusPending
	}
	return nil
}

type CreateRequestRequest struct {
	BountyID         int64  `json:"bounty_id" binding:"required,gt=0"`
	SupporterAddress string `json:"supporter_address"`
	Prompt           string `json:"prompt" binding:"required,max=10000"`
	TxHash           string `json:"tx_hash"`
	PinMetadata      bool   `json:"pin_metadata"`
}

// FulfillRequest is the body of POST /api/fulfill
type FulfillRequest struct {
	RequestID      string        `json:"requestId"`
	CID            string        `json:"cid" binding:"omitempty,cid"`
	CreatorAddress string        `json:"creatorAddress"`
	Status         RequestStatus `json:"status"`
}

type FulfillResponse struct {
	Success bool     `json:"success"`
	Request *Request `json:"request"`
	Message string   `json:"message"`
}

// ReleasePaymentRequest is the body of POST /api/release-payment
type ReleasePaymentRequest struct {
	RequestID        string `json:"requestId"`
	TxHash           string `json:"txHash" binding:"omitempty,tx_hash"`
	SupporterAddress string `json:"supporterAddress"`
}

type ReleasePaymentResponse struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	TransactionHash string   `json:"transactionHash"`
	Request         *Request `json:"request"`
}
