package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyra-app/zyra-change-service/internal/domain"
)

func agentCandidate(repo *fakeChangeRepo, entityID string, age time.Duration) string {
	return seedRecord(repo, domain.StatusPending, func(r *domain.ChangeRecord) {
		r.EntityID = entityID
		r.EstimatedImpact = &domain.Impact{Amount: 40, Currency: "USD", Confidence: 0.9, Status: "estimated"}
		r.CreatedAt = time.Now().Add(-age)
	})
}

func TestRunAutopilotPassExecutesAdmitted(t *testing.T) {
	uc, repo, settings, platform := newTestUsecase()
	ids := []string{
		agentCandidate(repo, "prod-1", 3*time.Minute),
		agentCandidate(repo, "prod-2", 2*time.Minute),
		agentCandidate(repo, "prod-3", time.Minute),
	}

	require.NoError(t, uc.RunAutopilotPass(context.Background(), "merchant-1"))

	for _, id := range ids {
		assert.Equal(t, domain.StatusCompleted, repo.mustGet(id).Status)
	}
	assert.Equal(t, 3, platform.callCount())
	assert.Equal(t, 3, settings.reserved)
}

func TestRunAutopilotPassStopsAtDailyCap(t *testing.T) {
	uc, repo, settings, platform := newTestUsecase()
	settings.settings.MaxDailyActions = 2
	oldest := agentCandidate(repo, "prod-1", 3*time.Minute)
	middle := agentCandidate(repo, "prod-2", 2*time.Minute)
	newest := agentCandidate(repo, "prod-3", time.Minute)

	require.NoError(t, uc.RunAutopilotPass(context.Background(), "merchant-1"))

	// Oldest candidates go first; the one over the cap stays in the queue.
	assert.Equal(t, domain.StatusCompleted, repo.mustGet(oldest).Status)
	assert.Equal(t, domain.StatusCompleted, repo.mustGet(middle).Status)
	assert.Equal(t, domain.StatusPending, repo.mustGet(newest).Status)
	assert.Equal(t, 2, platform.callCount())
	assert.Equal(t, 2, settings.reserved)
}

func TestRunAutopilotPassSkipsRecordsAboveCeiling(t *testing.T) {
	uc, repo, settings, platform := newTestUsecase()
	settings.settings.AutopilotMode = domain.ModeBalanced
	safe := agentCandidate(repo, "prod-1", 2*time.Minute)
	risky := seedRecord(repo, domain.StatusPending, func(r *domain.ChangeRecord) {
		r.EntityID = "prod-2"
		r.EstimatedImpact = &domain.Impact{Amount: 5000, Currency: "USD", Confidence: 0.9, Status: "estimated"}
	})

	require.NoError(t, uc.RunAutopilotPass(context.Background(), "merchant-1"))

	assert.Equal(t, domain.StatusCompleted, repo.mustGet(safe).Status)
	assert.Equal(t, domain.StatusPending, repo.mustGet(risky).Status)
	assert.Equal(t, 1, platform.callCount())
}

func TestRunAutopilotPassDisabled(t *testing.T) {
	uc, repo, settings, platform := newTestUsecase()
	settings.settings.AutopilotEnabled = false
	id := agentCandidate(repo, "prod-1", time.Minute)

	require.NoError(t, uc.RunAutopilotPass(context.Background(), "merchant-1"))

	assert.Equal(t, domain.StatusPending, repo.mustGet(id).Status)
	assert.Zero(t, platform.callCount())
	assert.Zero(t, settings.reserved)
}

func TestRunAutopilotPassIgnoresUserProposals(t *testing.T) {
	uc, repo, _, platform := newTestUsecase()
	id := seedRecord(repo, domain.StatusPending, func(r *domain.ChangeRecord) {
		r.ExecutedBy = domain.ExecutedByUser
	})

	require.NoError(t, uc.RunAutopilotPass(context.Background(), "merchant-1"))

	assert.Equal(t, domain.StatusPending, repo.mustGet(id).Status)
	assert.Zero(t, platform.callCount())
}

func TestExpireStalePending(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	stale := seedRecord(repo, domain.StatusPending, func(r *domain.ChangeRecord) {
		r.CreatedAt = time.Now().Add(-72 * time.Hour)
	})
	fresh := seedRecord(repo, domain.StatusPending, func(r *domain.ChangeRecord) {
		r.CreatedAt = time.Now().Add(-time.Hour)
	})

	require.NoError(t, uc.ExpireStalePending(context.Background(), 48))

	expired := repo.mustGet(stale)
	assert.Equal(t, domain.StatusRejected, expired.Status)
	assert.Contains(t, expired.DecisionReason, "expired")
	assert.Equal(t, domain.StatusPending, repo.mustGet(fresh).Status)
}
