package optimizer

import "waypoint-route-service/internal/domain"

// problem holds the pairwise distances for one optimize call.
// Vertex 0 is the start; vertex v in 1..n is points[v-1].
type problem struct {
	n      int
	points []domain.GeoPoint
	w      []float64
}

func newProblem(start domain.GeoPoint, points []domain.GeoPoint) *problem {
	n := len(points)
	size := n + 1

	at := func(v int) domain.GeoPoint {
		if v == 0 {
			return start
		}
		return points[v-1]
	}

	w := make([]float64, size*size)
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			d := Distance(at(i), at(j))
			w[i*size+j] = d
			w[j*size+i] = d
		}
	}

	return &problem{n: n, points: points, w: w}
}

func (p *problem) dist(u, v int) float64 { return p.w[u*(p.n+1)+v] }

// pathCost sums edge weights left to right, starting from vertex 0.
// The summation order matches TourCost so both agree bit for bit.
func (p *problem) pathCost(order []int) float64 {
	total := 0.0
	prev := 0
	for _, v := range order {
		total += p.dist(prev, v)
		prev = v
	}
	return total
}

func (p *problem) route(order []int) domain.Route {
	out := make(domain.Route, len(order))
	for i, v := range order {
		out[i] = p.points[v-1]
	}
	return out
}
