package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zyra-app/zyra-change-service/internal/domain"
	"github.com/zyra-app/zyra-change-service/internal/infrastructure/postgres/mappers"
	"github.com/zyra-app/zyra-change-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultChangeRepository struct {
	DB *gorm.DB
}

func NewDefaultChangeRepository(db *gorm.DB) *DefaultChangeRepository {
	return &DefaultChangeRepository{DB: db}
}

func (r *DefaultChangeRepository) Create(record *domain.ChangeRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	model, err := mappers.ToGORMChange(record)
	if err != nil {
		return "", fmt.Errorf("failed to map change record: %w", err)
	}

	if err := r.DB.Create(model).Error; err != nil {
		return "", err
	}

	return record.ID, nil
}

func (r *DefaultChangeRepository) GetByID(id string) (*domain.ChangeRecord, error) {
	var model models.ChangeRecordModel
	if err := r.DB.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return mappers.ToDomainChange(&model)
}

// TransitionStatus is the optimistic-concurrency guard of the store: the UPDATE
// carries the expected prior status in its WHERE clause, so of two concurrent
// transitions on the same record exactly one sees RowsAffected == 1.
func (r *DefaultChangeRepository) TransitionStatus(id string, from, to domain.ChangeStatus, fields domain.TransitionFields) error {
	updates := map[string]any{
		"status":     to,
		"updated_at": time.Now(),
	}

	if fields.Result != nil {
		result, err := json.Marshal(fields.Result)
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		updates["result"] = string(result)
	}
	if fields.DecisionReason != nil {
		updates["decision_reason"] = *fields.DecisionReason
	}
	if fields.PublishedToShopify != nil {
		updates["published_to_shopify"] = *fields.PublishedToShopify
	}
	if fields.DryRun != nil {
		updates["dry_run"] = *fields.DryRun
	}
	if fields.CompletedAt != nil {
		updates["completed_at"] = *fields.CompletedAt
	}
	if fields.RolledBackAt != nil {
		updates["rolled_back_at"] = *fields.RolledBackAt
	}

	res := r.DB.Model(&models.ChangeRecordModel{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		// Guard did not match: distinguish a missing record from a lost race.
		var count int64
		if err := r.DB.Model(&models.ChangeRecordModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrInvalidTransition
	}

	return nil
}

func (r *DefaultChangeRepository) List(filter domain.ChangeFilter, page, limit int64) ([]*domain.ChangeRecord, int64, error) {
	var changeModels []models.ChangeRecordModel
	var total int64

	baseQuery := r.DB.Model(&models.ChangeRecordModel{})

	if filter.MerchantID != "" {
		baseQuery = baseQuery.Where("merchant_id = ?", filter.MerchantID)
	}
	if len(filter.Statuses) > 0 {
		baseQuery = baseQuery.Where("status IN (?)", filter.Statuses)
	}
	if filter.ActionType != "" {
		baseQuery = baseQuery.Where("action_type = ?", filter.ActionType)
	}
	if filter.EntityType != "" {
		baseQuery = baseQuery.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		baseQuery = baseQuery.Where("entity_id = ?", filter.EntityID)
	}
	if filter.ExecutedBy != "" {
		baseQuery = baseQuery.Where("executed_by = ?", filter.ExecutedBy)
	}
	if !filter.DateFrom.IsZero() {
		baseQuery = baseQuery.Where("created_at >= ?", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		baseQuery = baseQuery.Where("created_at <= ?", filter.DateTo)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count change records: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	offset := (page - 1) * limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&changeModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find change records: %w", err)
	}

	records := make([]*domain.ChangeRecord, len(changeModels))
	for i := range changeModels {
		record, err := mappers.ToDomainChange(&changeModels[i])
		if err != nil {
			return nil, 0, err
		}
		records[i] = record
	}

	return records, total, nil
}

func (r *DefaultChangeRepository) ListRollbackable(merchantID string) ([]*domain.ChangeRecord, error) {
	var changeModels []models.ChangeRecordModel
	query := r.DB.
		Where("status IN (?)", []domain.ChangeStatus{domain.StatusCompleted, domain.StatusDryRun}).
		Order("completed_at DESC")
	if merchantID != "" {
		query = query.Where("merchant_id = ?", merchantID)
	}
	if err := query.Find(&changeModels).Error; err != nil {
		return nil, err
	}

	records := make([]*domain.ChangeRecord, len(changeModels))
	for i := range changeModels {
		record, err := mappers.ToDomainChange(&changeModels[i])
		if err != nil {
			return nil, err
		}
		records[i] = record
	}

	return records, nil
}

func (r *DefaultChangeRepository) FindAutopilotCandidates(merchantID string, limit int) ([]*domain.ChangeRecord, error) {
	var changeModels []models.ChangeRecordModel
	if err := r.DB.
		Where("merchant_id = ?", merchantID).
		Where("status = ?", domain.StatusPending).
		Where("executed_by = ?", domain.ExecutedByAgent).
		Order("created_at ASC").
		Limit(limit).
		Find(&changeModels).Error; err != nil {
		return nil, err
	}

	records := make([]*domain.ChangeRecord, len(changeModels))
	for i := range changeModels {
		record, err := mappers.ToDomainChange(&changeModels[i])
		if err != nil {
			return nil, err
		}
		records[i] = record
	}

	return records, nil
}

// MerchantsWithPendingAgentChanges feeds the autopilot loop.
func (r *DefaultChangeRepository) MerchantsWithPendingAgentChanges() ([]string, error) {
	var merchants []string
	if err := r.DB.Model(&models.ChangeRecordModel{}).
		Where("status = ?", domain.StatusPending).
		Where("executed_by = ?", domain.ExecutedByAgent).
		Distinct().
		Pluck("merchant_id", &merchants).Error; err != nil {
		return nil, err
	}
	return merchants, nil
}

func (r *DefaultChangeRepository) FindExpiredPending(olderThan time.Time) ([]*domain.ChangeRecord, error) {
	var changeModels []models.ChangeRecordModel
	if err := r.DB.
		Where("status = ?", domain.StatusPending).
		Where("created_at < ?", olderThan).
		Find(&changeModels).Error; err != nil {
		return nil, err
	}

	records := make([]*domain.ChangeRecord, len(changeModels))
	for i := range changeModels {
		record, err := mappers.ToDomainChange(&changeModels[i])
		if err != nil {
			return nil, err
		}
		records[i] = record
	}

	return records, nil
}

// SetActualImpact writes the measured impact without touching status or payload.
func (r *DefaultChangeRepository) SetActualImpact(id string, impact domain.Impact) error {
	value, err := json.Marshal(impact)
	if err != nil {
		return fmt.Errorf("failed to marshal impact: %w", err)
	}

	res := r.DB.Model(&models.ChangeRecordModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"actual_impact": string(value),
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *DefaultChangeRepository) CountByStatuses(merchantID string, statuses []domain.ChangeStatus) (int64, error) {
	var total int64
	query := r.DB.Model(&models.ChangeRecordModel{}).Where("status IN (?)", statuses)
	if merchantID != "" {
		query = query.Where("merchant_id = ?", merchantID)
	}
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
