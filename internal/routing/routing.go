// Package routing drives the PSP simulator through a strategy-ordered
// candidate list and applies the retry/cascade policy, producing a
// RoutingResult. Route and RouteNoRetry are pure functions of their
// arguments plus the process-wide immutable catalog: no clock, no I/O, no
// internal concurrency, safe to call from any number of parallel callers.
package routing

import (
	"github.com/fashionforward/latam-router/internal/catalog"
	"github.com/fashionforward/latam-router/internal/classify"
	"github.com/fashionforward/latam-router/internal/domain"
	"github.com/fashionforward/latam-router/internal/simulate"
	"github.com/fashionforward/latam-router/internal/strategy"
)

// MaxAttempts is the retry budget. Cascade (PspUnavailable) attempts do
// not count against it.
const MaxAttempts = 3

// Route attempts the transaction against the country's PSPs in
// strategy-determined order, cascading on soft decline or PSP
// unavailability and stopping on approval, hard decline, or retry budget
// exhaustion.
func Route(txn domain.Transaction, routingStrategy domain.RoutingStrategy) domain.RoutingResult {
	psps := strategy.SelectOrder(catalog.GetPSPs(txn.Country), routingStrategy)
	return run(txn, psps)
}

// RouteNoRetry tries exactly the first PSP in catalog order (not strategy
// order) and returns its single-attempt result. Used as the no-retry
// baseline for report comparisons.
func RouteNoRetry(txn domain.Transaction) domain.RoutingResult {
	psps := catalog.GetPSPs(txn.Country)
	if len(psps) == 0 {
		return emptyResult(txn)
	}
	return run(txn, psps[:1])
}

func run(txn domain.Transaction, psps []domain.PspConfig) domain.RoutingResult {
	if len(psps) == 0 {
		return emptyResult(txn)
	}

	result := domain.RoutingResult{
		TransactionID: txn.ID,
		Attempts:      make([]domain.RoutingAttempt, 0, len(psps)),
	}

	counted := 0
	var totalLatency uint64

	for _, psp := range psps {
		resp := simulate.Process(txn, psp)
		totalLatency += resp.LatencyMs

		isCascade := resp.DeclineReason != nil && classify.IsPspUnavailable(*resp.DeclineReason)
		attemptNumber := counted + 1
		if !isCascade {
			counted++
			attemptNumber = counted
		}

		result.Attempts = append(result.Attempts, domain.RoutingAttempt{
			PspID:         resp.PspID,
			PspName:       resp.PspName,
			Approved:      resp.Approved,
			DeclineReason: resp.DeclineReason,
			LatencyMs:     resp.LatencyMs,
			AttemptNumber: attemptNumber,
		})

		if isCascade {
			continue
		}

		if resp.Approved {
			name := resp.PspName
			result.Approved = true
			result.FinalPsp = &name
			break
		}

		if classify.IsHard(*resp.DeclineReason) {
			break
		}

		// Soft decline: cascade unless the retry budget is exhausted.
		if counted >= MaxAttempts {
			break
		}
	}

	result.TotalAttempts = counted
	result.TotalLatencyMs = totalLatency
	return result
}

func emptyResult(txn domain.Transaction) domain.RoutingResult {
	return domain.RoutingResult{
		TransactionID: txn.ID,
		Approved:      false,
		Attempts:      []domain.RoutingAttempt{},
		TotalAttempts: 0,
	}
}
