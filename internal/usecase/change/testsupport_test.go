package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/zyra-app/zyra-change-service/internal/domain"
)

// In-memory fakes mirroring the postgres repository semantics, including the
// CAS guard on TransitionStatus and the locked daily-cap reservation.

type fakeChangeRepo struct {
	mu      sync.Mutex
	seq     int
	records map[string]*domain.ChangeRecord

	countCalls int
}

func newFakeChangeRepo() *fakeChangeRepo {
	return &fakeChangeRepo{records: make(map[string]*domain.ChangeRecord)}
}

func (r *fakeChangeRepo) Create(record *domain.ChangeRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	id := fmt.Sprintf("chg-%03d", r.seq)
	stored := *record
	stored.ID = id
	now := time.Now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.records[id] = &stored
	return id, nil
}

func (r *fakeChangeRepo) GetByID(id string) (*domain.ChangeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeChangeRepo) List(filter domain.ChangeFilter, page, limit int64) ([]*domain.ChangeRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.ChangeRecord
	for _, stored := range r.records {
		if filter.MerchantID != "" && stored.MerchantID != filter.MerchantID {
			continue
		}
		if len(filter.Statuses) > 0 && !statusIn(stored.Status, filter.Statuses) {
			continue
		}
		copied := *stored
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *fakeChangeRepo) TransitionStatus(id string, from, to domain.ChangeStatus, fields domain.TransitionFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[id]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Status != from {
		return fmt.Errorf("status is %s, expected %s: %w", stored.Status, from, domain.ErrInvalidTransition)
	}

	stored.Status = to
	stored.UpdatedAt = time.Now()
	if fields.Result != nil {
		stored.Result = fields.Result
	}
	if fields.DecisionReason != nil {
		stored.DecisionReason = *fields.DecisionReason
	}
	if fields.PublishedToShopify != nil {
		stored.PublishedToShopify = *fields.PublishedToShopify
	}
	if fields.DryRun != nil {
		stored.DryRun = *fields.DryRun
	}
	if fields.CompletedAt != nil {
		stored.CompletedAt = fields.CompletedAt
	}
	if fields.RolledBackAt != nil {
		stored.RolledBackAt = fields.RolledBackAt
	}
	return nil
}

func (r *fakeChangeRepo) ListRollbackable(merchantID string) ([]*domain.ChangeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.ChangeRecord
	for _, stored := range r.records {
		if stored.MerchantID == merchantID && stored.Status.Rollbackable() {
			copied := *stored
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeChangeRepo) FindAutopilotCandidates(merchantID string, limit int) ([]*domain.ChangeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.ChangeRecord
	for _, stored := range r.records {
		if stored.MerchantID == merchantID &&
			stored.Status == domain.StatusPending &&
			stored.ExecutedBy == domain.ExecutedByAgent {
			copied := *stored
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeChangeRepo) FindExpiredPending(olderThan time.Time) ([]*domain.ChangeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.ChangeRecord
	for _, stored := range r.records {
		if stored.Status == domain.StatusPending && stored.CreatedAt.Before(olderThan) {
			copied := *stored
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeChangeRepo) SetActualImpact(id string, impact domain.Impact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[id]
	if !ok {
		return domain.ErrNotFound
	}
	stored.ActualImpact = &impact
	return nil
}

func (r *fakeChangeRepo) CountByStatuses(merchantID string, statuses []domain.ChangeStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.countCalls++
	var count int64
	for _, stored := range r.records {
		if stored.MerchantID == merchantID && statusIn(stored.Status, statuses) {
			count++
		}
	}
	return count, nil
}

func (r *fakeChangeRepo) mustGet(id string) *domain.ChangeRecord {
	record, err := r.GetByID(id)
	if err != nil {
		panic(err)
	}
	return record
}

func statusIn(status domain.ChangeStatus, statuses []domain.ChangeStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings domain.AutomationSettings
	reserved int
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		settings: domain.AutomationSettings{
			MerchantID:             "merchant-1",
			GlobalAutopilotEnabled: true,
			AutopilotEnabled:       true,
			AutopilotMode:          domain.ModeBalanced,
			AutoPublishEnabled:     true,
			MaxDailyActions:        10,
		},
	}
}

func (r *fakeSettingsRepo) Get(merchantID string) (*domain.AutomationSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := r.settings
	copied.MerchantID = merchantID
	return &copied, nil
}

func (r *fakeSettingsRepo) Patch(merchantID string, patch domain.SettingsPatch) (*domain.AutomationSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if patch.GlobalAutopilotEnabled != nil {
		r.settings.GlobalAutopilotEnabled = *patch.GlobalAutopilotEnabled
	}
	if patch.AutopilotEnabled != nil {
		r.settings.AutopilotEnabled = *patch.AutopilotEnabled
	}
	if patch.AutopilotMode != nil {
		r.settings.AutopilotMode = *patch.AutopilotMode
	}
	if patch.DryRunMode != nil {
		r.settings.DryRunMode = *patch.DryRunMode
	}
	if patch.AutoPublishEnabled != nil {
		r.settings.AutoPublishEnabled = *patch.AutoPublishEnabled
	}
	if patch.MaxDailyActions != nil {
		r.settings.MaxDailyActions = *patch.MaxDailyActions
	}
	copied := r.settings
	return &copied, nil
}

func (r *fakeSettingsRepo) ReserveDailyAction(merchantID string, max int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.reserved >= max {
		return fmt.Errorf("daily action cap %d reached: %w", max, domain.ErrPolicyDenied)
	}
	r.reserved++
	return nil
}

type platformCall struct {
	EntityType string
	EntityID   string
	Content    any
}

type fakePlatform struct {
	mu      sync.Mutex
	calls   []platformCall
	failFor map[string]error // entity id -> error to return
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{failFor: make(map[string]error)}
}

func (p *fakePlatform) ApplyContent(ctx context.Context, entityType, entityID string, content any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err, ok := p.failFor[entityID]; ok {
		return err
	}
	p.calls = append(p.calls, platformCall{EntityType: entityType, EntityID: entityID, Content: content})
	return nil
}

func (p *fakePlatform) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func (p *fakePlatform) call(i int) platformCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[i]
}

type fakeCache struct {
	mu          sync.Mutex
	entries     map[string]domain.ChangeSummary
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]domain.ChangeSummary)}
}

func (c *fakeCache) Get(ctx context.Context, merchantID string) (*domain.ChangeSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	summary, ok := c.entries[merchantID]
	if !ok {
		return nil, nil
	}
	copied := summary
	return &copied, nil
}

func (c *fakeCache) Set(ctx context.Context, merchantID string, summary domain.ChangeSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[merchantID] = summary
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, merchantID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, merchantID)
	c.invalidated++
	return nil
}

func newTestUsecase() (*DefaultChangeUsecase, *fakeChangeRepo, *fakeSettingsRepo, *fakePlatform) {
	changeRepo := newFakeChangeRepo()
	settingsRepo := newFakeSettingsRepo()
	platform := newFakePlatform()
	uc := &DefaultChangeUsecase{
		ChangeRepo:    changeRepo,
		SettingsRepo:  settingsRepo,
		StorePlatform: platform,
	}
	return uc, changeRepo, settingsRepo, platform
}

func pricingPayload() domain.ChangePayload {
	return domain.ChangePayload{
		Pricing: &domain.PricingChange{
			Before: domain.PricingSnapshot{Price: 19.99, Currency: "USD"},
			After:  domain.PricingSnapshot{Price: 24.99, Currency: "USD"},
		},
	}
}

func seoPayload() domain.ChangePayload {
	return domain.ChangePayload{
		SEO: &domain.SEOChange{
			Before: domain.SEOSnapshot{Title: "Plain Mug", Description: "A mug."},
			After:  domain.SEOSnapshot{Title: "Handmade Ceramic Mug", Description: "Hand-thrown stoneware mug."},
		},
	}
}

func seedRecord(repo *fakeChangeRepo, status domain.ChangeStatus, mutate ...func(*domain.ChangeRecord)) string {
	record := &domain.ChangeRecord{
		MerchantID: "merchant-1",
		ActionType: domain.ActionOptimizeSEO,
		EntityType: "product",
		EntityID:   "prod-42",
		Status:     status,
		Payload:    seoPayload(),
		ExecutedBy: domain.ExecutedByAgent,
		CreatedAt:  time.Now().Add(-time.Minute),
	}
	for _, fn := range mutate {
		fn(record)
	}
	id, err := repo.Create(record)
	if err != nil {
		panic(err)
	}
	return id
}
