// Package testdata synthesizes realistic transaction batches for exercising
// the routing engine and report generator without a real payment network.
// Generation is seeded with the constant 42 so the canonical dataset is
// reproducible across processes and Go versions, not just within one run.
package testdata

import (
	"fmt"
	"strconv"

	"github.com/fashionforward/latam-router/internal/domain"
	"github.com/fashionforward/latam-router/internal/seedhash"
)

// GeneratorSeed is the fixed seed constant for the canonical dataset.
const GeneratorSeed = 42

// DefaultCount is the canonical batch size used when no count is supplied.
const DefaultCount = 210

var binsByCountry = map[domain.Country][]string{
	domain.Brazil:   {"411111", "510510", "601100"},
	domain.Mexico:   {"400000", "522222", "601198"},
	domain.Colombia: {"450000", "540000", "601120"},
}

// customerWeights implements the 30/30/40 skew across 15 customers: IDs
// 1-3 share 30%, 4-8 share 30%, 9-15 share 40%.
var customerWeights = buildCustomerWeights()

func buildCustomerWeights() []float64 {
	weights := make([]float64, 15)
	for i := 0; i < 3; i++ {
		weights[i] = 0.30 / 3
	}
	for i := 3; i < 8; i++ {
		weights[i] = 0.30 / 5
	}
	for i := 8; i < 15; i++ {
		weights[i] = 0.40 / 7
	}
	return weights
}

var amountBands = []struct {
	lo, hi float64
	weight float64
}{
	{10, 100, 0.40},
	{100, 300, 0.35},
	{300, 500, 0.25},
}

// Generate produces count transactions, round-robin across the three
// countries, deterministically from GeneratorSeed.
func Generate(count int) []domain.Transaction {
	if count <= 0 {
		return nil
	}

	countries := domain.AllCountries()
	txns := make([]domain.Transaction, count)
	for i := 0; i < count; i++ {
		country := countries[i%len(countries)]
		txns[i] = generateOne(i, country, count)
	}
	return txns
}

func generateOne(index int, country domain.Country, batchSize int) domain.Transaction {
	idxStr := strconv.Itoa(index)
	currency, _ := domain.CurrencyFor(country)

	bins := binsByCountry[country]
	binIdx := seedhash.New(seedhash.SeedInt64("testdata_bin", GeneratorSeed, idxStr)).IntRange(0, int64(len(bins)))
	bin := bins[binIdx]

	last4Num := seedhash.New(seedhash.SeedInt64("testdata_last4", GeneratorSeed, idxStr)).IntRange(0, 10000)
	last4 := fmt.Sprintf("%04d", last4Num)

	custIdx := seedhash.New(seedhash.SeedInt64("testdata_customer", GeneratorSeed, idxStr)).WeightedIndex(customerWeights)
	customerID := fmt.Sprintf("cust_%02d", custIdx+1)

	amount := pickAmount(idxStr)

	timestamp := pickTimestamp(index, batchSize)

	return domain.Transaction{
		ID:         fmt.Sprintf("txn_%05d", index),
		Amount:     amount,
		Currency:   currency,
		Country:    country,
		CardBIN:    bin,
		CardLast4:  last4,
		CustomerID: customerID,
		Timestamp:  timestamp,
	}
}

func pickAmount(idxStr string) float64 {
	weights := make([]float64, len(amountBands))
	for i, b := range amountBands {
		weights[i] = b.weight
	}
	bandIdx := seedhash.New(seedhash.SeedInt64("testdata_amount_band", GeneratorSeed, idxStr)).WeightedIndex(weights)
	band := amountBands[bandIdx]

	fraction := seedhash.New(seedhash.SeedInt64("testdata_amount_value", GeneratorSeed, idxStr)).Float64()
	amount := band.lo + fraction*(band.hi-band.lo)
	return float64(int64(amount*100+0.5)) / 100
}

// pickTimestamp spreads hours across the batch on 2025-01-15, 08:00-20:00 UTC.
func pickTimestamp(index, batchSize int) string {
	hourSpan := 12.0
	fraction := float64(index) / float64(maxInt(batchSize, 1))
	hour := 8 + int(fraction*hourSpan)
	if hour > 19 {
		hour = 19
	}
	minuteSeed := seedhash.New(seedhash.SeedInt64("testdata_minute", GeneratorSeed, strconv.Itoa(index))).IntRange(0, 60)
	secondSeed := seedhash.New(seedhash.SeedInt64("testdata_second", GeneratorSeed, strconv.Itoa(index))).IntRange(0, 60)
	return fmt.Sprintf("2025-01-15T%02d:%02d:%02dZ", hour, minuteSeed, secondSeed)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
