package optimizer

import "math"

// nearestNeighborOrder builds a path greedily from the start vertex.
//
// At each step the closest unvisited point is chosen; on equal distances
// the lowest input index wins, which keeps the construction deterministic.
func nearestNeighborOrder(p *problem) []int {
	n := p.n
	order := make([]int, 0, n)
	used := make([]bool, n+1)

	current := 0
	for len(order) < n {
		bestIdx := -1
		bestDist := math.Inf(1)

		for v := 1; v <= n; v++ {
			if used[v] {
				continue
			}
			if d := p.dist(current, v); d < bestDist {
				bestDist = d
				bestIdx = v
			}
		}

		used[bestIdx] = true
		order = append(order, bestIdx)
		current = bestIdx
	}

	return order
}
