package internal

import "math"

// Derive computes the analytics snapshot for a price series and its parallel volume series.
// An empty price series yields the zero snapshot.
func Derive(prices, volumes []PricePoint) Analytics {
	var a Analytics
	if len(prices) == 0 {
		return a
	}
	for _, v := range volumes {
		a.TotalVolume += v.Price
	}

	a.High = math.Inf(-1)
	a.Low = math.Inf(1)
	for _, p := range prices {
		if p.Price > a.High {
			a.High = p.Price
		}
		if p.Price < a.Low {
			a.Low = p.Price
		}
	}
	a.BaseValue = prices[0].Price
	a.LatestPrice = prices[len(prices)-1].Price
	a.PercentChange = PercentChange(a.BaseValue, a.LatestPrice)
	return a
}

// PercentChange is (latest-first)/first*100, or 0 when first is zero.
func PercentChange(first, latest float64) float64 {
	if first == 0 {
		return 0
	}
	return (latest - first) / first * 100
}
