package optimizer

import "math"

// solveExact enumerates every visiting order by backtracking over input
// indices in ascending order and returns the cheapest one.
//
// Only a strictly cheaper order replaces the incumbent, so among equal-cost
// orders the first one enumerated wins. Branches whose partial cost already
// reaches the incumbent are cut; edge costs are non-negative, so no cut
// branch could have produced a strictly cheaper order.
func solveExact(p *problem) []int {
	n := p.n
	best := make([]int, n)
	bestCost := math.Inf(1)

	cur := make([]int, 0, n)
	used := make([]bool, n+1)

	var backtrack func(prev int, partial float64)
	backtrack = func(prev int, partial float64) {
		if partial >= bestCost {
			return
		}
		if len(cur) == n {
			bestCost = partial
			copy(best, cur)
			return
		}

		for v := 1; v <= n; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			cur = append(cur, v)
			backtrack(v, partial+p.dist(prev, v))
			cur = cur[:len(cur)-1]
			used[v] = false
		}
	}
	backtrack(0, 0)

	return best
}
