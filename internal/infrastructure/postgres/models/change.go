package models

import (
	"time"

	"github.com/zyra-app/zyra-change-service/internal/domain"
)

type ChangeRecordModel struct {
	ID                 string            `gorm:"primaryKey;type:uuid"`
	MerchantID         string            `gorm:"index:idx_merchant_status"`
	ActionType         domain.ActionType `gorm:"index:idx_action_type"`
	EntityType         string
	EntityID           string              `gorm:"index:idx_entity"`
	Status             domain.ChangeStatus `gorm:"index:idx_merchant_status"`
	DecisionReason     string
	Payload            string `gorm:"type:jsonb;not null"`
	Result             string `gorm:"type:jsonb"`
	EstimatedImpact    string `gorm:"type:jsonb"`
	ActualImpact       string `gorm:"type:jsonb"`
	ExecutedBy         domain.ExecutedBy
	DryRun             bool
	PublishedToShopify bool
	CreatedAt          time.Time `gorm:"index:idx_created_at"`
	UpdatedAt          time.Time
	CompletedAt        *time.Time `gorm:"default:null"`
	RolledBackAt       *time.Time `gorm:"default:null"`
}

func (ChangeRecordModel) TableName() string {
	return "change_records"
}
