package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyra-app/zyra-change-service/internal/domain"
)

func TestExecuteMerchantDryRunMode(t *testing.T) {
	uc, repo, settings, platform := newTestUsecase()
	settings.settings.DryRunMode = true
	id := seedRecord(repo, domain.StatusPending)

	record, err := uc.Approve(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDryRun, record.Status)
	assert.True(t, record.DryRun)
	assert.False(t, record.PublishedToShopify)
	require.NotNil(t, record.CompletedAt)
	require.NotNil(t, record.Result)
	assert.True(t, record.Result.Success)
	assert.Zero(t, platform.callCount(), "dry run must not touch the live store")
}

func TestExecuteRecordDryRunFlag(t *testing.T) {
	uc, repo, _, platform := newTestUsecase()
	id := seedRecord(repo, domain.StatusPending, func(r *domain.ChangeRecord) {
		r.DryRun = true
	})

	record, err := uc.Approve(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDryRun, record.Status)
	assert.Zero(t, platform.callCount())
}

func TestExecuteFailureMarksFailed(t *testing.T) {
	uc, repo, _, platform := newTestUsecase()
	platform.failFor["prod-42"] = errors.New("shopify: 502 bad gateway")
	id := seedRecord(repo, domain.StatusPending)

	_, err := uc.Approve(context.Background(), id)
	require.ErrorIs(t, err, domain.ErrExternalMutation)

	stored := repo.mustGet(id)
	assert.Equal(t, domain.StatusFailed, stored.Status)
	assert.False(t, stored.PublishedToShopify)
	require.NotNil(t, stored.Result)
	assert.False(t, stored.Result.Success)
	assert.Contains(t, stored.Result.Error, "502 bad gateway")

	// The before snapshot survives the failure untouched.
	require.NotNil(t, stored.Payload.SEO)
	assert.Equal(t, "Plain Mug", stored.Payload.SEO.Before.Title)
}

func TestExecuteRequiresRunning(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	id := seedRecord(repo, domain.StatusPending)

	_, err := uc.Execute(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
	assert.Equal(t, domain.StatusPending, repo.mustGet(id).Status)
}
