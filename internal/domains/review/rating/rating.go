// Package rating computes rating rollups from raw review counts.
//
// Averages use a single rounding policy everywhere: two decimal places,
// half away from zero. "No rating" is a nil average, never zero.
package rating

import (
	"github.com/shopspring/decimal"
)

const (
	MinStars = 1
	MaxStars = 5

	// AveragePlaces is the number of decimals an average is rounded to
	AveragePlaces = 2
)

// Summary is the rollup of a set of reviews
type Summary struct {
	AverageRating *float64    `json:"average_rating"`
	TotalReviews  int         `json:"total_reviews"`
	Distribution  map[int]int `json:"rating_distribution"`
}

// EmptyDistribution returns a histogram with every bucket present and zero
func EmptyDistribution() map[int]int {
	dist := make(map[int]int, MaxStars)
	for star := MinStars; star <= MaxStars; star++ {
		dist[star] = 0
	}
	return dist
}

// Summarize builds a Summary from star -> count. Stars outside 1..5 and
// non-positive counts are ignored.
func Summarize(counts map[int]int) Summary {
	dist := EmptyDistribution()
	total := 0
	sum := int64(0)

	for star, count := range counts {
		if star < MinStars || star > MaxStars || count <= 0 {
			continue
		}
		dist[star] += count
		total += count
		sum += int64(star) * int64(count)
	}

	return Summary{
		AverageRating: average(sum, total),
		TotalReviews:  total,
		Distribution:  dist,
	}
}

// FromRatings builds a Summary from individual ratings
func FromRatings(ratings []int) Summary {
	counts := make(map[int]int, MaxStars)
	for _, r := range ratings {
		counts[r]++
	}
	return Summarize(counts)
}

// Round applies the average rounding policy to v
func Round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(AveragePlaces).InexactFloat64()
}

func average(sum int64, total int) *float64 {
	if total == 0 {
		return nil
	}
	avg := decimal.NewFromInt(sum).
		Div(decimal.NewFromInt(int64(total))).
		Round(AveragePlaces).
		InexactFloat64()
	return &avg
}
