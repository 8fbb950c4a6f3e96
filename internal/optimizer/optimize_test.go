package optimizer

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waypoint-route-service/internal/domain"
)

func TestOptimizeEmpty(t *testing.T) {
	got, err := Optimize(domain.GeoPoint{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestOptimizeTwoPoints(t *testing.T) {
	start := domain.GeoPoint{Lat: 0, Lng: 0}
	points := []domain.GeoPoint{{Lat: 0, Lng: 2}, {Lat: 0, Lng: 1}}

	got, err := Optimize(start, points)
	require.NoError(t, err)
	assert.Equal(t, domain.Route{{Lat: 0, Lng: 1}, {Lat: 0, Lng: 2}}, got)
}

func TestOptimizeCollinear(t *testing.T) {
	start := domain.GeoPoint{Lat: 0, Lng: 0}
	points := []domain.GeoPoint{{Lat: 0, Lng: 3}, {Lat: 0, Lng: 1}, {Lat: 0, Lng: 2}}

	got, err := Optimize(start, points)
	require.NoError(t, err)
	assert.Equal(t, domain.Route{{Lat: 0, Lng: 1}, {Lat: 0, Lng: 2}, {Lat: 0, Lng: 3}}, got)
}

func TestOptimizeCollinearHeuristic(t *testing.T) {
	start := domain.GeoPoint{Lat: 0, Lng: 0}
	points := []domain.GeoPoint{
		{Lat: 0, Lng: 0.7}, {Lat: 0, Lng: 0.2}, {Lat: 0, Lng: 1.0}, {Lat: 0, Lng: 0.4},
		{Lat: 0, Lng: 0.1}, {Lat: 0, Lng: 0.9}, {Lat: 0, Lng: 0.3}, {Lat: 0, Lng: 0.6},
		{Lat: 0, Lng: 0.5}, {Lat: 0, Lng: 0.8},
	}

	got, err := Optimize(start, points)
	require.NoError(t, err)
	require.Len(t, got, len(points))
	for i, p := range got {
		assert.InDelta(t, 0.1*float64(i+1), p.Lng, 1e-9, "stop %d", i)
	}
}

func TestOptimizeMatchesBruteForceOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	start := domain.GeoPoint{Lat: 33.45, Lng: -112.07}
	points := randomCity(rng, 5)

	got, err := Optimize(start, points)
	require.NoError(t, err)

	want, wantCost := bruteForce(start, points)
	assert.Equal(t, want, got)
	assert.InDelta(t, wantCost, TourCost(start, got), 1e-9)
}

func TestOptimizeExactIsOptimal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	start := domain.GeoPoint{Lat: 33.45, Lng: -112.07}

	for n := 1; n <= ExactLimit; n++ {
		points := randomCity(rng, n)

		got, err := Optimize(start, points)
		require.NoError(t, err)

		_, bestCost := bruteForce(start, points)
		assert.LessOrEqual(t, TourCost(start, got), bestCost+1e-9, "n=%d", n)
	}
}

func TestOptimizeHeuristicNeverWorseThanNearestNeighbor(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	start := domain.GeoPoint{Lat: 33.45, Lng: -112.07}

	for _, n := range []int{9, 12, 25, 60} {
		points := randomCity(rng, n)

		greedy, err := NearestNeighbor(start, points)
		require.NoError(t, err)

		got, err := Optimize(start, points)
		require.NoError(t, err)

		assert.LessOrEqual(t, TourCost(start, got), TourCost(start, greedy), "n=%d", n)
	}
}

func TestOptimizeIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	start := domain.GeoPoint{Lat: 33.45, Lng: -112.07}

	for _, n := range []int{1, 4, 8, 9, 30} {
		points := randomCity(rng, n)
		// Duplicates are ordered independently, never merged.
		points = append(points, points[0], points[len(points)/2])

		got, err := Optimize(start, points)
		require.NoError(t, err)
		assert.ElementsMatch(t, points, got, "n=%d", len(points))
	}
}

func TestOptimizeDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	start := domain.GeoPoint{Lat: 33.45, Lng: -112.07}

	for _, n := range []int{6, 40} {
		points := randomCity(rng, n)

		first, err := Optimize(start, points)
		require.NoError(t, err)
		second, err := Optimize(start, points)
		require.NoError(t, err)

		assert.Equal(t, first, second, "n=%d", n)
	}
}

func TestOptimizeDoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	start := domain.GeoPoint{Lat: 33.45, Lng: -112.07}
	points := randomCity(rng, 20)

	before := append([]domain.GeoPoint(nil), points...)
	_, err := Optimize(start, points)
	require.NoError(t, err)

	assert.Equal(t, before, points)
}

func TestOptimizeIdenticalPointsKeepsInputOrder(t *testing.T) {
	start := domain.GeoPoint{Lat: 10, Lng: 10}

	for _, n := range []int{5, 12} {
		points := make([]domain.GeoPoint, n)
		for i := range points {
			points[i] = start
		}

		got, err := Optimize(start, points)
		require.NoError(t, err)
		assert.Equal(t, domain.Route(points), got)
	}
}

func TestOptimizeRejectsInvalidCoordinates(t *testing.T) {
	valid := domain.GeoPoint{Lat: 1, Lng: 1}

	_, err := Optimize(domain.GeoPoint{Lat: 95, Lng: 0}, []domain.GeoPoint{valid})
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)

	_, err = Optimize(valid, []domain.GeoPoint{valid, {Lat: 0, Lng: 181}})
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)

	_, err = NearestNeighbor(valid, []domain.GeoPoint{{Lat: math.NaN(), Lng: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)
}

func TestOptimizeContextCancelled(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := OptimizeContext(ctx, domain.GeoPoint{Lat: 33.45, Lng: -112.07}, randomCity(rng, 15))
	assert.True(t, errors.Is(err, context.Canceled), "err = %v", err)
}

// bruteForce enumerates every permutation with Heap's algorithm and returns
// the cheapest, keeping the first minimum in lexicographic index order.
func bruteForce(start domain.GeoPoint, points []domain.GeoPoint) (domain.Route, float64) {
	n := len(points)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	var best []int
	bestCost := math.Inf(1)

	consider := func(perm []int) {
		route := make([]domain.GeoPoint, n)
		for i, j := range perm {
			route[i] = points[j]
		}
		c := TourCost(start, route)
		if c < bestCost || (c == bestCost && lexLess(perm, best)) {
			bestCost = c
			best = append(best[:0], perm...)
		}
	}

	c := make([]int, n)
	consider(idx)
	for i := 0; i < n; {
		if c[i] < i {
			if i%2 == 0 {
				idx[0], idx[i] = idx[i], idx[0]
			} else {
				idx[c[i]], idx[i] = idx[i], idx[c[i]]
			}
			consider(idx)
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}

	out := make(domain.Route, n)
	for i, j := range best {
		out[i] = points[j]
	}
	return out, bestCost
}

func lexLess(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
