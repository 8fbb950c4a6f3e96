package optimizer

import "context"

// Minimum gain in meters for a 2-opt move to be accepted.
const improvementEps = 1e-6

// twoOpt improves order in place with first-improvement 2-opt on an open path.
//
// Each pass scans i ascending over [0, n-2] and k ascending over [i+1, n-1],
// reversing order[i..k]. A reversal is kept when it lowers the path cost by
// more than improvementEps and the scan continues on the updated order;
// otherwise it is undone. The search stops after a pass with no accepted move.
// The start vertex is not part of order and never moves. ctx is checked
// before each i row, so a cancelled search stops mid-pass.
//
// Candidates are costed by a full left-to-right sum rather than an edge delta
// so accept/reject decisions do not depend on floating-point reassociation.
func twoOpt(ctx context.Context, p *problem, order []int) error {
	n := len(order)
	cost := p.pathCost(order)

	for improved := true; improved; {
		improved = false

		for i := 0; i < n-1; i++ {
			// A row costs O(n^2); checking here bounds the time to notice cancellation.
			if err := ctx.Err(); err != nil {
				return err
			}

			for k := i + 1; k < n; k++ {
				reverse(order[i : k+1])

				candidate := p.pathCost(order)
				if candidate+improvementEps < cost {
					cost = candidate
					improved = true
					continue
				}

				reverse(order[i : k+1])
			}
		}
	}

	return nil
}

func reverse(s []int) {
	for l, r := 0, len(s)-1; l < r; l, r = l+1, r-1 {
		s[l], s[r] = s[r], s[l]
	}
}
