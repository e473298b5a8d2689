// Package report batch-runs the no-retry and smart-retry scenarios over a
// transaction set and aggregates the comparison metrics used by the
// merchant-facing performance report. Generation fans out across a bounded
// worker pool, but the aggregation itself remains a pure function of the
// two RoutingResult arrays it is handed.
package report

import (
	"math"
	"runtime"
	"sync"

	"github.com/gammazero/workerpool"

	"github.com/fashionforward/latam-router/internal/classify"
	"github.com/fashionforward/latam-router/internal/domain"
	"github.com/fashionforward/latam-router/internal/routing"
)

// WorkerCount, when zero, defaults to runtime.NumCPU(). Generation is
// bit-for-bit identical regardless of worker count: workers only decide
// how the independent per-transaction routing calls are scheduled, never
// how their results are combined.
func GenerateReport(transactions []domain.Transaction, strategy domain.RoutingStrategy, workerCount int) domain.PerformanceReport {
	smart, noRetry := runBothScenarios(transactions, strategy, workerCount)

	report := domain.PerformanceReport{
		RoutingStrategy: strategy,
		WithRetry:       buildScenarioResult(smart),
		WithoutRetry:    buildScenarioResult(noRetry),
	}
	report.Improvement = buildImprovementMetrics(report.WithRetry, report.WithoutRetry, transactions)
	report.ByCountry = buildCountryBreakdown(transactions, smart, noRetry)
	report.ByPsp = buildPspBreakdown(smart)
	return report
}

func runBothScenarios(transactions []domain.Transaction, strategy domain.RoutingStrategy, workerCount int) ([]domain.RoutingResult, []domain.RoutingResult) {
	n := len(transactions)
	smart := make([]domain.RoutingResult, n)
	noRetry := make([]domain.RoutingResult, n)
	if n == 0 {
		return smart, noRetry
	}

	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	pool := workerpool.New(workerCount)

	var wg sync.WaitGroup
	wg.Add(n)
	for i, txn := range transactions {
		idx, t := i, txn
		pool.Submit(func() {
			defer wg.Done()
			smart[idx] = routing.Route(t, strategy)
			noRetry[idx] = routing.RouteNoRetry(t)
		})
	}
	wg.Wait()
	pool.StopWait()

	return smart, noRetry
}

func buildScenarioResult(results []domain.RoutingResult) domain.ScenarioResult {
	n := len(results)
	if n == 0 {
		return domain.ScenarioResult{}
	}

	approved := 0
	var totalAttempts, totalLatency uint64
	for _, r := range results {
		if r.Approved {
			approved++
		}
		totalAttempts += uint64(r.TotalAttempts)
		totalLatency += r.TotalLatencyMs
	}

	return domain.ScenarioResult{
		TotalTransactions: n,
		ApprovedCount:     approved,
		DeclinedCount:     n - approved,
		AuthorizationRate: round2(float64(approved) / float64(n) * 100),
		AvgAttempts:       round2(float64(totalAttempts) / float64(n)),
		AvgLatencyMs:      round2(float64(totalLatency) / float64(n)),
	}
}

func buildImprovementMetrics(smart, noRetry domain.ScenarioResult, transactions []domain.Transaction) domain.ImprovementMetrics {
	additional := smart.ApprovedCount - noRetry.ApprovedCount
	if additional < 0 {
		additional = 0
	}

	meanAmount := 0.0
	if len(transactions) > 0 {
		var sum float64
		for _, t := range transactions {
			sum += t.Amount
		}
		meanAmount = sum / float64(len(transactions))
	}

	return domain.ImprovementMetrics{
		RateLiftPercentage:           round2(smart.AuthorizationRate - noRetry.AuthorizationRate),
		AdditionalApprovals:          additional,
		EstimatedRevenueRecoveredUsd: round2(float64(additional) * meanAmount),
	}
}

func buildCountryBreakdown(transactions []domain.Transaction, smart, noRetry []domain.RoutingResult) []domain.CountryMetrics {
	type tally struct {
		smartApproved, noRetryApproved, total int
	}
	byCountry := make(map[domain.Country]*tally)

	for i, txn := range transactions {
		t, ok := byCountry[txn.Country]
		if !ok {
			t = &tally{}
			byCountry[txn.Country] = t
		}
		t.total++
		if smart[i].Approved {
			t.smartApproved++
		}
		if noRetry[i].Approved {
			t.noRetryApproved++
		}
	}

	out := make([]domain.CountryMetrics, 0, len(byCountry))
	for _, country := range domain.AllCountries() {
		t, ok := byCountry[country]
		if !ok {
			continue
		}
		smartRate := round2(float64(t.smartApproved) / float64(t.total) * 100)
		noRetryRate := round2(float64(t.noRetryApproved) / float64(t.total) * 100)
		out = append(out, domain.CountryMetrics{
			Country:             country,
			SmartApprovalRate:   smartRate,
			NoRetryApprovalRate: noRetryRate,
			RateDifference:      round2(smartRate - noRetryRate),
		})
	}
	return out
}

func buildPspBreakdown(smart []domain.RoutingResult) []domain.PspMetrics {
	type tally struct {
		name                          string
		totalAttempts, approvals, declines int
		latencySum                    uint64
	}
	byPsp := make(map[string]*tally)
	order := make([]string, 0)

	for _, result := range smart {
		for _, attempt := range result.Attempts {
			t, ok := byPsp[attempt.PspID]
			if !ok {
				t = &tally{name: attempt.PspName}
				byPsp[attempt.PspID] = t
				order = append(order, attempt.PspID)
			}
			t.totalAttempts++
			t.latencySum += attempt.LatencyMs
			if attempt.Approved {
				t.approvals++
			} else if attempt.DeclineReason == nil || !classify.IsPspUnavailable(*attempt.DeclineReason) {
				t.declines++
			}
		}
	}

	out := make([]domain.PspMetrics, 0, len(order))
	for _, id := range order {
		t := byPsp[id]
		rate := 0.0
		avgLatency := 0.0
		if t.totalAttempts > 0 {
			rate = round2(float64(t.approvals) / float64(t.totalAttempts) * 100)
			avgLatency = round2(float64(t.latencySum) / float64(t.totalAttempts))
		}
		out = append(out, domain.PspMetrics{
			PspName:       t.name,
			TotalAttempts: t.totalAttempts,
			Approvals:     t.approvals,
			Declines:      t.declines,
			ApprovalRate:  rate,
			AvgLatencyMs:  avgLatency,
		})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
