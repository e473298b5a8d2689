// Package catalog holds the static table of Payment Service Providers this
// merchant routes through: three per country, each with a success rate,
// latency band, fee structure, and weighted soft-decline distribution.
// The table is built once at package init and never mutated afterward;
// callers receive independent copies so nothing downstream can corrupt the
// shared catalog.
package catalog

import "github.com/fashionforward/latam-router/internal/domain"

var psps = []domain.PspConfig{
	{
		ID: "psp_br_1", Name: "PixPay Brasil", Country: domain.Brazil,
		BaseSuccessRate: 0.82, LatencyMinMs: 150, LatencyMaxMs: 350,
		FeePercentage: 2.5, FeeFixedCents: 30,
		SoftDeclineWeights: map[domain.DeclineReason]float64{
			domain.IssuerUnavailable: 0.45,
			domain.SuspectedFraud:    0.20,
			domain.DoNotHonor:        0.20,
			domain.ProcessorDeclined: 0.15,
		},
	},
	{
		ID: "psp_br_2", Name: "CardMax Brasil", Country: domain.Brazil,
		BaseSuccessRate: 0.74, LatencyMinMs: 200, LatencyMaxMs: 450,
		FeePercentage: 1.8, FeeFixedCents: 45,
		SoftDeclineWeights: map[domain.DeclineReason]float64{
			domain.IssuerUnavailable: 0.20,
			domain.SuspectedFraud:    0.15,
			domain.DoNotHonor:        0.20,
			domain.ProcessorDeclined: 0.45,
		},
	},
	{
		ID: "psp_br_3", Name: "GlobalPay Brasil", Country: domain.Brazil,
		BaseSuccessRate: 0.68, LatencyMinMs: 250, LatencyMaxMs: 550,
		FeePercentage: 3.2, FeeFixedCents: 15,
		SoftDeclineWeights: map[domain.DeclineReason]float64{
			domain.IssuerUnavailable: 0.15,
			domain.SuspectedFraud:    0.20,
			domain.DoNotHonor:        0.45,
			domain.ProcessorDeclined: 0.20,
		},
	},
	{
		ID: "psp_mx_1", Name: "OxxoFlow", Country: domain.Mexico,
		BaseSuccessRate: 0.80, LatencyMinMs: 180, LatencyMaxMs: 380,
		FeePercentage: 2.2, FeeFixedCents: 35,
		SoftDeclineWeights: map[domain.DeclineReason]float64{
			domain.IssuerUnavailable: 0.20,
			domain.SuspectedFraud:    0.45,
			domain.DoNotHonor:        0.15,
			domain.ProcessorDeclined: 0.20,
		},
	},
	{
		ID: "psp_mx_2", Name: "CardMax Mexico", Country: domain.Mexico,
		BaseSuccessRate: 0.71, LatencyMinMs: 220, LatencyMaxMs: 480,
		FeePercentage: 1.9, FeeFixedCents: 40,
		SoftDeclineWeights: map[domain.DeclineReason]float64{
			domain.IssuerUnavailable: 0.45,
			domain.SuspectedFraud:    0.15,
			domain.DoNotHonor:        0.20,
			domain.ProcessorDeclined: 0.20,
		},
	},
	{
		ID: "psp_mx_3", Name: "GlobalPay Mexico", Country: domain.Mexico,
		BaseSuccessRate: 0.66, LatencyMinMs: 260, LatencyMaxMs: 560,
		FeePercentage: 3.0, FeeFixedCents: 20,
		SoftDeclineWeights: map[domain.DeclineReason]float64{
			domain.IssuerUnavailable: 0.15,
			domain.SuspectedFraud:    0.20,
			domain.DoNotHonor:        0.20,
			domain.ProcessorDeclined: 0.45,
		},
	},
	{
		ID: "psp_co_1", Name: "PSEDirect", Country: domain.Colombia,
		BaseSuccessRate: 0.78, LatencyMinMs: 160, LatencyMaxMs: 360,
		FeePercentage: 2.4, FeeFixedCents: 25,
		SoftDeclineWeights: map[domain.DeclineReason]float64{
			domain.IssuerUnavailable: 0.20,
			domain.SuspectedFraud:    0.15,
			domain.DoNotHonor:        0.45,
			domain.ProcessorDeclined: 0.20,
		},
	},
	{
		ID: "psp_co_2", Name: "CardMax Colombia", Country: domain.Colombia,
		BaseSuccessRate: 0.70, LatencyMinMs: 210, LatencyMaxMs: 460,
		FeePercentage: 2.0, FeeFixedCents: 38,
		SoftDeclineWeights: map[domain.DeclineReason]float64{
			domain.IssuerUnavailable: 0.20,
			domain.SuspectedFraud:    0.45,
			domain.DoNotHonor:        0.20,
			domain.ProcessorDeclined: 0.15,
		},
	},
	{
		ID: "psp_co_3", Name: "GlobalPay Colombia", Country: domain.Colombia,
		BaseSuccessRate: 0.67, LatencyMinMs: 240, LatencyMaxMs: 540,
		FeePercentage: 2.9, FeeFixedCents: 22,
		SoftDeclineWeights: map[domain.DeclineReason]float64{
			domain.IssuerUnavailable: 0.45,
			domain.SuspectedFraud:    0.20,
			domain.DoNotHonor:        0.15,
			domain.ProcessorDeclined: 0.20,
		},
	},
}

// GetPSPs returns the catalog-order PSP list for country, as a fresh copy.
// Callers may freely append to or reorder the returned slice.
func GetPSPs(country domain.Country) []domain.PspConfig {
	out := make([]domain.PspConfig, 0, 3)
	for _, p := range psps {
		if p.Country == country {
			out = append(out, copyPsp(p))
		}
	}
	return out
}

// All returns every PSP in the catalog, in declaration order, as fresh
// copies, for callers (such as the catalog and simulator tests) that need
// the whole table regardless of country.
func All() []domain.PspConfig {
	out := make([]domain.PspConfig, len(psps))
	for i, p := range psps {
		out[i] = copyPsp(p)
	}
	return out
}

func copyPsp(p domain.PspConfig) domain.PspConfig {
	weights := make(map[domain.DeclineReason]float64, len(p.SoftDeclineWeights))
	for k, v := range p.SoftDeclineWeights {
		weights[k] = v
	}
	p.SoftDeclineWeights = weights
	return p
}
