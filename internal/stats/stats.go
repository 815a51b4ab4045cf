// Package stats computes the descriptive statistics persisted by the
// analysis stage: Spearman rank correlation and the Kruskal-Wallis group
// test, both with approximate p-values.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Spearman returns the Spearman rank correlation between x and y and its
// two-sided p-value from the Student's t approximation. ok is false when
// fewer than three pairs are available or either side has zero variance.
func Spearman(x, y []float64) (rho, p float64, ok bool) {
	n := len(x)
	if n != len(y) || n < 3 {
		return 0, 0, false
	}

	rho = stat.Correlation(ranks(x), ranks(y), nil)
	if math.IsNaN(rho) {
		return 0, 0, false
	}

	if math.Abs(rho) >= 1 {
		return rho, 0, true
	}

	t := rho * math.Sqrt(float64(n-2)/(1-rho*rho))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	p = 2 * dist.CDF(-math.Abs(t))

	return rho, p, true
}

// KruskalWallis returns the H statistic (tie-corrected) for the given groups
// and its p-value from the chi-squared approximation with k-1 degrees of
// freedom. ok is false when fewer than two non-empty groups exist.
func KruskalWallis(groups [][]float64) (h, p float64, ok bool) {
	var nonEmpty [][]float64

	total := 0
	for _, g := range groups {
		if len(g) > 0 {
			nonEmpty = append(nonEmpty, g)
			total += len(g)
		}
	}

	if len(nonEmpty) < 2 {
		return 0, 0, false
	}

	pooled := make([]float64, 0, total)
	for _, g := range nonEmpty {
		pooled = append(pooled, g...)
	}

	pooledRanks := ranks(pooled)
	n := float64(total)

	offset := 0
	for _, g := range nonEmpty {
		var sum float64
		for i := range g {
			sum += pooledRanks[offset+i]
		}
		offset += len(g)

		h += sum * sum / float64(len(g))
	}

	h = 12/(n*(n+1))*h - 3*(n+1)

	if c := tieCorrection(pooled); c > 0 {
		h /= c
	}

	df := float64(len(nonEmpty) - 1)
	dist := distuv.ChiSquared{K: df}
	p = 1 - dist.CDF(h)

	return h, p, true
}

// ranks assigns 1-based ranks with ties receiving their average rank.
func ranks(v []float64) []float64 {
	n := len(v)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool { return v[order[a]] < v[order[b]] })

	r := make([]float64, n)

	for i := 0; i < n; {
		j := i
		for j+1 < n && v[order[j+1]] == v[order[i]] {
			j++
		}

		// average of ranks i+1 .. j+1
		avg := float64(i+j+2) / 2
		for k := i; k <= j; k++ {
			r[order[k]] = avg
		}

		i = j + 1
	}

	return r
}

func tieCorrection(v []float64) float64 {
	sorted := make([]float64, len(v))
	copy(sorted, v)
	sort.Float64s(sorted)

	n := float64(len(v))
	if n < 2 {
		return 1
	}

	var ties float64

	for i := 0; i < len(sorted); {
		j := i
		for j+1 < len(sorted) && sorted[j+1] == sorted[i] {
			j++
		}

		t := float64(j - i + 1)
		ties += t*t*t - t

		i = j + 1
	}

	return 1 - ties/(n*n*n-n)
}
