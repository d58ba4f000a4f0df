package commute

import (
	"fmt"
	"math"

	"jobscope/internal/refdata"
)

// Costs is the deterministic commute cost breakdown for one municipality
// pair. Monetary fields are whole dollars.
type Costs struct {
	DistanceOneWay float64
	RoundTrip      float64
	MonthlyGas     float64
	MonthlyTolls   float64
	AnnualCost     float64
}

// Estimator derives commute costs from the reference data store. It is
// the fallback used when the model omits or zeroes the commute section.
type Estimator struct {
	store *refdata.Store
}

// NewEstimator creates an estimator backed by the given store.
func NewEstimator(store *refdata.Store) *Estimator {
	return &Estimator{store: store}
}

// Estimate computes the monthly and annual commute costs between two
// municipalities using the store's distance matrix and benchmarks.
func (e *Estimator) Estimate(from, to string) Costs {
	distance := e.store.Distance(from, to)
	return e.EstimateForDistance(distance)
}

// EstimateForDistance computes costs for a known one-way distance.
func (e *Estimator) EstimateForDistance(distanceOneWay float64) Costs {
	bm := e.store.Benchmarks()

	roundTrip := distanceOneWay * 2
	monthlyMiles := roundTrip * bm.WorkingDaysPerMonth
	gallonsMonthly := monthlyMiles / bm.AvgMpg
	litersMonthly := gallonsMonthly * bm.LitersPerGallon
	gasCost := litersMonthly * bm.GasPricePerLiter

	var tolls float64
	if distanceOneWay > bm.TollDistanceMiles {
		tolls = bm.TollPerDay * bm.WorkingDaysPerMonth
	}

	return Costs{
		DistanceOneWay: distanceOneWay,
		RoundTrip:      roundTrip,
		MonthlyGas:     math.Round(gasCost),
		MonthlyTolls:   math.Round(tolls),
		AnnualCost:     math.Round((gasCost + tolls) * 12),
	}
}

// TravelTime approximates driving time for a one-way distance using the
// configured minutes-per-mile rate.
func (e *Estimator) TravelTime(miles float64) string {
	bm := e.store.Benchmarks()
	minutes := int(math.Round(miles * bm.MinutesPerMile))
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	rem := minutes % 60
	if rem == 0 {
		return fmt.Sprintf("%d hr", hours)
	}
	return fmt.Sprintf("%d hr %d min", hours, rem)
}
