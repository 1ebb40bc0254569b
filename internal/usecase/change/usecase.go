package usecase

import (
	"context"
	"sync"

	"github.com/zyra-app/zyra-change-service/internal/domain"
	publisher "github.com/zyra-app/zyra-change-service/internal/infrastructure/kafka"
	"github.com/zyra-app/zyra-change-service/internal/infrastructure/metrics"
	changedto "github.com/zyra-app/zyra-change-service/internal/usecase/dto/change"
)

type ChangeUsecase interface {
	CreateChange(ctx context.Context, input *changedto.CreateChangeInput) (*domain.ChangeRecord, error)

	Approve(ctx context.Context, id string) (*domain.ChangeRecord, error)
	Reject(ctx context.Context, id string, reason string) (*domain.ChangeRecord, error)
	Execute(ctx context.Context, id string) (*domain.ChangeRecord, error)
	Rollback(ctx context.Context, id string) (*domain.ChangeRecord, error)
	RollbackAll(ctx context.Context, merchantID string) (*changedto.BulkRollbackOutput, error)

	GetChangeByID(id string) (*domain.ChangeRecord, error)
	ListChanges(filter domain.ChangeFilter, page, limit int64) ([]*domain.ChangeRecord, int64, error)
	Summary(ctx context.Context, merchantID string) (*domain.ChangeSummary, error)
	ApplyMeasurement(id string, impact domain.Impact) error

	RunAutopilotPass(ctx context.Context, merchantID string) error
	ExpireStalePending(ctx context.Context, olderThanHours int) error
}

// ChangeEventPublisher is the outbound notification port. Events are
// fire-and-forget; a publish failure never rolls a transition back.
type ChangeEventPublisher interface {
	PublishChange(topic string, event publisher.ChangeEvent) error
}

// SummaryCache fronts the derived dashboard counters.
type SummaryCache interface {
	Get(ctx context.Context, merchantID string) (*domain.ChangeSummary, error)
	Set(ctx context.Context, merchantID string, summary domain.ChangeSummary) error
	Invalidate(ctx context.Context, merchantID string) error
}

type DefaultChangeUsecase struct {
	ChangeRepo     domain.ChangeRepository
	SettingsRepo   domain.SettingsRepository
	StorePlatform  domain.StorePlatform
	Publisher      ChangeEventPublisher
	Cache          SummaryCache
	Metrics        *metrics.ChangeMetrics
	EventsTopic    string
	AutopilotBatch int

	locks sync.Map // record id -> *sync.Mutex
}

func NewDefaultChangeUsecase(
	changeRepo domain.ChangeRepository,
	settingsRepo domain.SettingsRepository,
	storePlatform domain.StorePlatform,
	eventPublisher ChangeEventPublisher,
	cache SummaryCache,
	changeMetrics *metrics.ChangeMetrics,
	eventsTopic string) *DefaultChangeUsecase {

	return &DefaultChangeUsecase{
		ChangeRepo:    changeRepo,
		SettingsRepo:  settingsRepo,
		StorePlatform: storePlatform,
		Publisher:     eventPublisher,
		Cache:         cache,
		Metrics:       changeMetrics,
		EventsTopic:   eventsTopic,
	}
}

// lockRecord serializes operations on a single record id. Operations on
// different ids stay independent; the repo CAS guard backs this up across
// processes.
func (uc *DefaultChangeUsecase) lockRecord(id string) func() {
	v, _ := uc.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
