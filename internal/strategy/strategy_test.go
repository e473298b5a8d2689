package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fashionforward/latam-router/internal/catalog"
	"github.com/fashionforward/latam-router/internal/domain"
)

func TestSelectOrder_OptimizeForApprovalsSortsDescendingBySuccessRate(t *testing.T) {
	psps := catalog.GetPSPs(domain.Brazil)
	ordered := SelectOrder(psps, domain.OptimizeForApprovals)
	require.Len(t, ordered, len(psps))
	for i := 1; i < len(ordered); i++ {
		assert.GreaterOrEqual(t, ordered[i-1].BaseSuccessRate, ordered[i].BaseSuccessRate)
	}
}

func TestSelectOrder_OptimizeForCostSortsAscendingByTotalFee(t *testing.T) {
	psps := catalog.GetPSPs(domain.Brazil)
	ordered := SelectOrder(psps, domain.OptimizeForCost)
	for i := 1; i < len(ordered); i++ {
		assert.LessOrEqual(t, ordered[i-1].TotalFee(), ordered[i].TotalFee())
	}
}

func TestSelectOrder_BalancedSortsDescendingByScore(t *testing.T) {
	psps := catalog.GetPSPs(domain.Mexico)
	ordered := SelectOrder(psps, domain.Balanced)
	maxFee := maxTotalFee(ordered)
	for i := 1; i < len(ordered); i++ {
		assert.GreaterOrEqual(t, balancedScore(ordered[i-1], maxFee), balancedScore(ordered[i], maxFee))
	}
}

func TestSelectOrder_DoesNotMutateInput(t *testing.T) {
	psps := catalog.GetPSPs(domain.Colombia)
	original := make([]domain.PspConfig, len(psps))
	copy(original, psps)

	SelectOrder(psps, domain.OptimizeForCost)

	assert.Equal(t, original, psps)
}

func TestSelectOrder_ReturnsNewSlice(t *testing.T) {
	psps := catalog.GetPSPs(domain.Brazil)
	ordered := SelectOrder(psps, domain.OptimizeForApprovals)
	if len(ordered) > 0 {
		ordered[0].ID = "mutated"
		assert.NotEqual(t, "mutated", psps[0].ID)
	}
}

func TestSelectOrder_BalancedWithZeroMaxFeeHasZeroCostTerm(t *testing.T) {
	psps := []domain.PspConfig{
		{ID: "a", BaseSuccessRate: 0.8, FeePercentage: 0, FeeFixedCents: 0},
		{ID: "b", BaseSuccessRate: 0.7, FeePercentage: 0, FeeFixedCents: 0},
	}
	ordered := SelectOrder(psps, domain.Balanced)
	assert.Equal(t, "a", ordered[0].ID)
}

func TestSelectOrder_TiesResolveByStableOriginalOrder(t *testing.T) {
	psps := []domain.PspConfig{
		{ID: "first", BaseSuccessRate: 0.75},
		{ID: "second", BaseSuccessRate: 0.75},
	}
	ordered := SelectOrder(psps, domain.OptimizeForApprovals)
	assert.Equal(t, "first", ordered[0].ID)
	assert.Equal(t, "second", ordered[1].ID)
}

func TestSelectOrder_NaNSuccessRateDoesNotPanic(t *testing.T) {
	psps := []domain.PspConfig{
		{ID: "a", BaseSuccessRate: math.NaN()},
		{ID: "b", BaseSuccessRate: 0.7},
	}
	assert.NotPanics(t, func() {
		SelectOrder(psps, domain.OptimizeForApprovals)
	})
}

func TestSelectOrder_UnknownStrategyDefaultsToApprovals(t *testing.T) {
	psps := catalog.GetPSPs(domain.Brazil)
	ordered := SelectOrder(psps, domain.RoutingStrategy("unknown"))
	for i := 1; i < len(ordered); i++ {
		assert.GreaterOrEqual(t, ordered[i-1].BaseSuccessRate, ordered[i].BaseSuccessRate)
	}
}
