// Package simulate implements the deterministic PSP outcome model. Process
// is a pure function of its arguments: no clock, no hidden state, no I/O.
// The same transaction/PSP pair always yields the same PspResponse.
package simulate

import (
	"strconv"

	"github.com/fashionforward/latam-router/internal/domain"
	"github.com/fashionforward/latam-router/internal/seedhash"
)

const (
	// HardDeclineRate is the probability a card is card-intrinsically
	// hard-declining, independent of which PSP is tried.
	HardDeclineRate = 0.06
	// PspUnavailableRate is the probability a PSP is unavailable for a
	// given request, independent of the card.
	PspUnavailableRate = 0.08
)

// hardDeclineWeights is the fixed distribution over hard-decline reasons,
// drawn only when the hard-decline gate fires.
var hardDeclineWeights = []struct {
	reason domain.DeclineReason
	weight float64
}{
	{domain.InsufficientFunds, 0.45},
	{domain.CardExpired, 0.30},
	{domain.InvalidCard, 0.15},
	{domain.StolenCard, 0.10},
}

// Process runs the four-stage decision pipeline for a single PSP attempt.
func Process(txn domain.Transaction, psp domain.PspConfig) domain.PspResponse {
	latencyMs := uint64(seedhash.New(seedhash.Seed("latency", txn.ID, psp.ID)).
		IntRange(int64(psp.LatencyMinMs), int64(psp.LatencyMaxMs)+1))

	if reason, declined := rollHardDecline(txn); declined {
		return domain.PspResponse{
			PspID:         psp.ID,
			PspName:       psp.Name,
			Approved:      false,
			DeclineReason: &reason,
			LatencyMs:     latencyMs,
		}
	}

	if rollUnavailable(txn, psp) {
		reason := domain.PspUnavailable
		return domain.PspResponse{
			PspID:         psp.ID,
			PspName:       psp.Name,
			Approved:      false,
			DeclineReason: &reason,
			LatencyMs:     latencyMs,
		}
	}

	approved, softReason := rollSuccess(txn, psp)
	resp := domain.PspResponse{
		PspID:     psp.ID,
		PspName:   psp.Name,
		Approved:  approved,
		LatencyMs: latencyMs,
	}
	if !approved {
		resp.DeclineReason = &softReason
	}
	return resp
}

func rollHardDecline(txn domain.Transaction) (domain.DeclineReason, bool) {
	gate := seedhash.New(seedhash.Seed("card_seed", txn.CardBIN, txn.CardLast4)).Float64()
	if gate >= HardDeclineRate {
		return "", false
	}
	weights := make([]float64, len(hardDeclineWeights))
	for i, hw := range hardDeclineWeights {
		weights[i] = hw.weight
	}
	idx := seedhash.New(seedhash.Seed("card_seed_reason", txn.CardBIN, txn.CardLast4)).WeightedIndex(weights)
	return hardDeclineWeights[idx].reason, true
}

func rollUnavailable(txn domain.Transaction, psp domain.PspConfig) bool {
	draw := seedhash.New(seedhash.Seed("unavailable_check", txn.ID, psp.ID)).Float64()
	return draw < PspUnavailableRate
}

func rollSuccess(txn domain.Transaction, psp domain.PspConfig) (bool, domain.DeclineReason) {
	amountCents := strconv.FormatInt(int64(txn.Amount*100+0.5), 10)
	r := seedhash.New(seedhash.Seed("success_roll", txn.CardBIN, txn.CardLast4, psp.ID, amountCents))
	if r.Float64() < psp.BaseSuccessRate {
		return true, ""
	}

	reasons := domain.SoftDeclineReasons()
	weights := make([]float64, len(reasons))
	for i, reason := range reasons {
		weights[i] = psp.SoftDeclineWeights[reason]
	}
	idx := r.WeightedIndex(weights)
	return false, reasons[idx]
}
