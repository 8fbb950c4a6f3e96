package directions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waypoint-route-service/internal/adapters/cache"
	"waypoint-route-service/internal/domain"
)

type memCache struct{ m map[string]domain.Directions }

func (c *memCache) Get(_ context.Context, key string) (domain.Directions, bool, error) {
	d, ok := c.m[key]
	return d, ok, nil
}

func (c *memCache) Put(_ context.Context, key string, d domain.Directions) error {
	c.m[key] = d
	return nil
}

var waypoints = []domain.GeoPoint{{Lat: 33.45, Lng: -112.07}, {Lat: 33.46, Lng: -112.08}}

func TestOSRMGetDirectionsUsesCache(t *testing.T) {
	var hits atomic.Int32
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"code":"Ok","routes":[{"distance":1500.5,"duration":180,"geometry":"abc"}]}`)
	}))
	defer srv.Close()

	c := &memCache{m: map[string]domain.Directions{}}
	p, err := NewOSRMDirectionsProvider(WithBaseURL(srv.URL+"/"), WithCache(c), WithRateLimit(0, 0))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		d, err := p.GetDirections(context.Background(), waypoints)
		require.NoError(t, err)
		assert.Equal(t, domain.Directions{DistanceMeters: 1500.5, DurationSeconds: 180, Geometry: "abc"}, d)
	}

	assert.Equal(t, int32(1), hits.Load(), "second call should be served from cache")
	assert.Equal(t, "/route/v1/driving/-112.070000,33.450000;-112.080000,33.460000", gotPath)
	assert.Contains(t, c.m, cache.DirectionsKey("driving", waypoints))
}

func TestOSRMGetDirectionsRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"code":"Ok","routes":[{"distance":10,"duration":1,"geometry":"x"}]}`)
	}))
	defer srv.Close()

	p, err := NewOSRMDirectionsProvider(WithBaseURL(srv.URL), WithRateLimit(0, 0))
	require.NoError(t, err)

	d, err := p.GetDirections(context.Background(), waypoints)
	require.NoError(t, err)
	assert.Equal(t, 10.0, d.DistanceMeters)
	assert.Equal(t, int32(2), hits.Load())
}

func TestOSRMGetDirectionsNoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code":"NoRoute","message":"Impossible route between points"}`)
	}))
	defer srv.Close()

	p, err := NewOSRMDirectionsProvider(WithBaseURL(srv.URL), WithRateLimit(0, 0))
	require.NoError(t, err)

	_, err = p.GetDirections(context.Background(), waypoints)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "NoRoute"), "err = %v", err)
}

func TestOSRMGetDirectionsDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	p, err := NewOSRMDirectionsProvider(WithBaseURL(srv.URL), WithRateLimit(0, 0))
	require.NoError(t, err)

	_, err = p.GetDirections(context.Background(), waypoints)
	var he *httpStatusError
	require.True(t, errors.As(err, &he), "err = %v", err)
	assert.Equal(t, http.StatusNotFound, he.Code)
	assert.Equal(t, int32(1), hits.Load())
}

func TestOSRMGetDirectionsValidatesInput(t *testing.T) {
	p, err := NewOSRMDirectionsProvider(WithBaseURL("http://127.0.0.1:0"))
	require.NoError(t, err)

	_, err = p.GetDirections(context.Background(), waypoints[:1])
	assert.Error(t, err)

	_, err = p.GetDirections(context.Background(), []domain.GeoPoint{{Lat: 0, Lng: 0}, {Lat: 91, Lng: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)
}

func TestNewOSRMDirectionsProviderRejectsEmptyProfile(t *testing.T) {
	_, err := NewOSRMDirectionsProvider(WithProfile(" "))
	assert.Error(t, err)
}

// blockingOSRM answers every route request once release is closed.
func blockingOSRM(t *testing.T) (srv *httptest.Server, hits *atomic.Int32, arrived <-chan struct{}, release chan struct{}) {
	t.Helper()

	hits = &atomic.Int32{}
	in := make(chan struct{}, 16)
	release = make(chan struct{})
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		in <- struct{}{}
		<-release
		fmt.Fprint(w, `{"code":"Ok","routes":[{"distance":42,"duration":7,"geometry":"g"}]}`)
	}))
	t.Cleanup(srv.Close)
	return srv, hits, in, release
}

func TestOSRMGetDirectionsCollapsesConcurrentLookups(t *testing.T) {
	srv, hits, arrived, release := blockingOSRM(t)

	p, err := NewOSRMDirectionsProvider(WithBaseURL(srv.URL), WithRateLimit(0, 0))
	require.NoError(t, err)

	const callers = 5
	var wg sync.WaitGroup
	results := make([]domain.Directions, callers)
	errs := make([]error, callers)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = p.GetDirections(context.Background(), waypoints)
	}()
	<-arrived

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = p.GetDirections(context.Background(), waypoints)
		}(i)
	}
	// Give the followers time to join the in-flight fetch.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, 42.0, results[i].DistanceMeters)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestOSRMGetDirectionsFollowerOutlivesCancelledLeader(t *testing.T) {
	srv, hits, arrived, release := blockingOSRM(t)

	p, err := NewOSRMDirectionsProvider(WithBaseURL(srv.URL), WithRateLimit(0, 0))
	require.NoError(t, err)

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := p.GetDirections(leaderCtx, waypoints)
		leaderErr <- err
	}()
	<-arrived

	type result struct {
		d   domain.Directions
		err error
	}
	follower := make(chan result, 1)
	go func() {
		d, err := p.GetDirections(context.Background(), waypoints)
		follower <- result{d, err}
	}()
	time.Sleep(100 * time.Millisecond)

	// The leader gives up while the upstream call is still blocked.
	cancelLeader()
	select {
	case err := <-leaderErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(release)
	select {
	case res := <-follower:
		require.NoError(t, res.err)
		assert.Equal(t, 42.0, res.d.DistanceMeters)
	case <-time.After(5 * time.Second):
		t.Fatal("follower did not return")
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestOSRMGetDirectionsFetchTimeout(t *testing.T) {
	srv, _, _, release := blockingOSRM(t)
	defer close(release)

	p, err := NewOSRMDirectionsProvider(
		WithBaseURL(srv.URL),
		WithRateLimit(0, 0),
		WithFetchTimeout(100*time.Millisecond),
	)
	require.NoError(t, err)

	_, err = p.GetDirections(context.Background(), waypoints)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOSRMGetDirectionsRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":"Ok","routes":[{"distance":1,"duration":1,"geometry":"x"}]}`)
	}))
	defer srv.Close()

	// One token every 200ms; three distinct lookups need two refills.
	p, err := NewOSRMDirectionsProvider(WithBaseURL(srv.URL), WithRateLimit(5, 1))
	require.NoError(t, err)

	started := time.Now()
	for i := 0; i < 3; i++ {
		_, err := p.GetDirections(context.Background(), []domain.GeoPoint{
			{Lat: 33.45, Lng: -112.07},
			{Lat: 33.46 + float64(i)*0.01, Lng: -112.08},
		})
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(started), 350*time.Millisecond)
}
