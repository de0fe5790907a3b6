package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReputationEvent is an outbox row holding a reputation update that failed in-line
type ReputationEvent struct {
	ID             string     `gorm:"primaryKey;type:uuid" json:"id"`
	RequestID      string     `gorm:"type:uuid;not null;index" json:"request_id"`
	CreatorAddress string     `gorm:"type:varchar(42);not null" json:"creator_address"`
	Completed      bool       `gorm:"not null" json:"completed"`
	Attempts       int        `gorm:"not null;default:0" json:"attempts"`
	LastError      string     `gorm:"type:text" json:"last_error,omitempty"`
	TxHash         *string    `gorm:"type:varchar(66)" json:"tx_hash,omitempty"`
	DeliveredAt    *time.Time `gorm:"index" json:"delivered_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ReputationEvent) TableName() string {
	return "reputation_events"
}

func (e *ReputationEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
