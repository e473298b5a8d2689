// Package strategy orders a country's candidate PSPs before a routing
// attempt begins, according to the merchant's chosen RoutingStrategy.
package strategy

import (
	"math"
	"sort"

	"github.com/fashionforward/latam-router/internal/domain"
)

// SelectOrder returns a new list of psps ordered per strategy. The input
// slice is never mutated.
func SelectOrder(psps []domain.PspConfig, strategy domain.RoutingStrategy) []domain.PspConfig {
	ordered := make([]domain.PspConfig, len(psps))
	copy(ordered, psps)

	switch strategy {
	case domain.OptimizeForCost:
		sort.SliceStable(ordered, func(i, j int) bool {
			return less(ordered[i].TotalFee(), ordered[j].TotalFee())
		})
	case domain.Balanced:
		maxFee := maxTotalFee(ordered)
		sort.SliceStable(ordered, func(i, j int) bool {
			return greater(balancedScore(ordered[i], maxFee), balancedScore(ordered[j], maxFee))
		})
	default: // domain.OptimizeForApprovals, and any unrecognized value
		sort.SliceStable(ordered, func(i, j int) bool {
			return greater(ordered[i].BaseSuccessRate, ordered[j].BaseSuccessRate)
		})
	}

	return ordered
}

func balancedScore(psp domain.PspConfig, maxFee float64) float64 {
	costTerm := 0.0
	if maxFee != 0 {
		costTerm = 1 - psp.TotalFee()/maxFee
	}
	return 0.7*psp.BaseSuccessRate + 0.3*costTerm
}

func maxTotalFee(psps []domain.PspConfig) float64 {
	max := 0.0
	for _, p := range psps {
		if fee := p.TotalFee(); fee > max {
			max = fee
		}
	}
	return max
}

// less and greater treat NaN as equal to everything (never true), so a
// NaN-contaminated comparison falls back to the stable original order
// instead of panicking or producing an inconsistent sort.
func less(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return a < b
}

func greater(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return a > b
}
