package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyra-app/zyra-change-service/internal/domain"
)

func TestApproveExecutesAndCompletes(t *testing.T) {
	uc, repo, _, platform := newTestUsecase()
	id := seedRecord(repo, domain.StatusPending)

	record, err := uc.Approve(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, record.Status)
	assert.True(t, record.PublishedToShopify)
	require.NotNil(t, record.CompletedAt)
	require.NotNil(t, record.Result)
	assert.True(t, record.Result.Success)

	require.Equal(t, 1, platform.callCount())
	call := platform.call(0)
	assert.Equal(t, "product", call.EntityType)
	assert.Equal(t, "prod-42", call.EntityID)
	assert.Equal(t, "Handmade Ceramic Mug", call.Content.(domain.SEOSnapshot).Title)
}

func TestApproveRequiresPending(t *testing.T) {
	uc, repo, _, platform := newTestUsecase()
	for _, status := range []domain.ChangeStatus{
		domain.StatusRunning, domain.StatusCompleted, domain.StatusFailed,
		domain.StatusRejected, domain.StatusRolledBack,
	} {
		id := seedRecord(repo, status)

		_, err := uc.Approve(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrPreconditionFailed, "status %s", status)

		// The stored record is untouched by the failed attempt.
		assert.Equal(t, status, repo.mustGet(id).Status)
	}
	assert.Zero(t, platform.callCount())
}

func TestApproveUnknownID(t *testing.T) {
	uc, _, _, _ := newTestUsecase()

	_, err := uc.Approve(context.Background(), "chg-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRejectPending(t *testing.T) {
	uc, repo, _, platform := newTestUsecase()
	id := seedRecord(repo, domain.StatusPending)

	record, err := uc.Reject(context.Background(), id, "duplicate of an earlier proposal")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRejected, record.Status)
	assert.Equal(t, "duplicate of an earlier proposal", record.DecisionReason)
	require.NotNil(t, record.Result)
	assert.False(t, record.Result.Success)
	assert.Nil(t, record.ActualImpact)
	assert.Zero(t, platform.callCount())
}

func TestRejectRequiresPending(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	id := seedRecord(repo, domain.StatusCompleted)

	_, err := uc.Reject(context.Background(), id, "")
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
	assert.Equal(t, domain.StatusCompleted, repo.mustGet(id).Status)
}

// Two concurrent approvals of the same record: exactly one wins, the store
// platform is hit exactly once.
func TestConcurrentApproveSingleWinner(t *testing.T) {
	uc, repo, _, platform := newTestUsecase()
	id := seedRecord(repo, domain.StatusPending)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Approve(context.Background(), id)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, platform.callCount())
	assert.Equal(t, domain.StatusCompleted, repo.mustGet(id).Status)
}
