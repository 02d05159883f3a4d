package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// OneWayANOVA tests whether the group means differ. NaN values are dropped
// and empty groups ignored. ok is false when fewer than two groups have more
// than one sample, or when the statistic is not finite.
func OneWayANOVA(groups [][]float64) (f, p float64, ok bool) {
	clean := make([][]float64, 0, len(groups))
	multi := 0
	total := 0
	for _, g := range groups {
		v := DropNaN(g)
		if len(v) == 0 {
			continue
		}
		if len(v) > 1 {
			multi++
		}
		total += len(v)
		clean = append(clean, v)
	}
	if multi < 2 {
		return 0, 0, false
	}

	all := make([]float64, 0, total)
	for _, g := range clean {
		all = append(all, g...)
	}
	grand := Mean(all)

	ssb, ssw := 0.0, 0.0
	for _, g := range clean {
		m := Mean(g)
		d := m - grand
		ssb += float64(len(g)) * d * d
		for _, v := range g {
			e := v - m
			ssw += e * e
		}
	}
	dfb := float64(len(clean) - 1)
	dfw := float64(total - len(clean))
	if dfw <= 0 {
		return 0, 0, false
	}
	f = (ssb / dfb) / (ssw / dfw)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, 0, false
	}
	p = distuv.F{D1: dfb, D2: dfw}.Survival(f)
	return f, p, true
}
