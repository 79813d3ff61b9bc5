package ranking

import "sort"

// DenseRank ranks values so ties share a rank and the next distinct value
// gets the previous rank plus one. Descending puts the largest value first.
func DenseRank(values map[int64]float64, descending bool) map[int64]int {
	out := make(map[int64]int, len(values))
	if len(values) == 0 {
		return out
	}

	distinct := make([]float64, 0, len(values))
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		distinct = append(distinct, v)
	}
	if descending {
		sort.Sort(sort.Reverse(sort.Float64Slice(distinct)))
	} else {
		sort.Float64s(distinct)
	}

	rankOf := make(map[float64]int, len(distinct))
	for i, v := range distinct {
		rankOf[v] = i + 1
	}
	for teamID, v := range values {
		out[teamID] = rankOf[v]
	}
	return out
}
