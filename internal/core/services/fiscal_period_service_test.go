package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finledger/bank_recon_app/internal/apperrors"
	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/finledger/bank_recon_app/internal/core/services"
	"github.com/finledger/bank_recon_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateFiscalPeriod(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("defaults status to open", func(t *testing.T) {
		mockRepo := new(MockFiscalPeriodRepository)
		svc := services.NewFiscalPeriodService(mockRepo)

		var saved domain.FiscalPeriod
		mockRepo.On("SaveFiscalPeriod", ctx, mock.AnythingOfType("domain.FiscalPeriod")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(domain.FiscalPeriod) }).
			Return(nil).Once()

		period, err := svc.CreateFiscalPeriod(ctx, "comp-1", dto.CreateFiscalPeriodRequest{
			Name:      "FY25 Q1",
			StartDate: start,
			EndDate:   end,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, period.FiscalPeriodID)
		assert.Equal(t, domain.PeriodOpen, saved.Status)
		assert.Equal(t, "comp-1", saved.TenantID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects inverted dates", func(t *testing.T) {
		svc := services.NewFiscalPeriodService(new(MockFiscalPeriodRepository))

		_, err := svc.CreateFiscalPeriod(ctx, "comp-1", dto.CreateFiscalPeriodRequest{
			Name:      "broken",
			StartDate: end,
			EndDate:   start,
		})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestUpdateFiscalPeriodStatus(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockFiscalPeriodRepository)
	svc := services.NewFiscalPeriodService(mockRepo)
	mockRepo.On("UpdateFiscalPeriodStatus", ctx, "comp-1", "fp-1", domain.PeriodClosed).Return(nil).Once()

	err := svc.UpdateFiscalPeriodStatus(ctx, "comp-1", "fp-1", domain.PeriodClosed)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
