package directions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"waypoint-route-service/internal/adapters/cache"
	"waypoint-route-service/internal/domain"
	"waypoint-route-service/internal/platform/metrics"
	"waypoint-route-service/internal/platform/obs"
	"waypoint-route-service/internal/ports"
)

const (
	DefaultOSRMBaseURL = "https://router.project-osrm.org"
	DefaultOSRMProfile = "driving"

	// Bounds a shared fetch, including retries, once it no longer follows any caller's ctx.
	DefaultFetchTimeout = 30 * time.Second
)

// OSRMDirectionsProvider implements DirectionsProvider using an OSRM route service.
//
// It coordinates:
//   - Persistent directions caching
//   - Collapsing concurrent identical lookups, each caller waiting on its own ctx
//   - Client-side rate limiting
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type OSRMDirectionsProvider struct {
	session      *http.Client
	baseURL      string
	profile      string
	fetchTimeout time.Duration
	cache        ports.DirectionsCache
	limiter      *rate.Limiter
	group        singleflight.Group
}

type OSRMOption func(*OSRMDirectionsProvider)

func WithBaseURL(u string) OSRMOption {
	return func(o *OSRMDirectionsProvider) { o.baseURL = strings.TrimRight(u, "/") }
}

func WithProfile(p string) OSRMOption {
	return func(o *OSRMDirectionsProvider) { o.profile = p }
}

// WithRateLimit caps outgoing requests per second; rps <= 0 disables the limit.
func WithRateLimit(rps float64, burst int) OSRMOption {
	return func(o *OSRMDirectionsProvider) {
		if rps <= 0 {
			o.limiter = nil
			return
		}
		o.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

func WithCache(c ports.DirectionsCache) OSRMOption {
	return func(o *OSRMDirectionsProvider) { o.cache = c }
}

// WithFetchTimeout bounds a shared upstream fetch; d <= 0 keeps the default.
func WithFetchTimeout(d time.Duration) OSRMOption {
	return func(o *OSRMDirectionsProvider) {
		if d > 0 {
			o.fetchTimeout = d
		}
	}
}

func WithHTTPClient(c *http.Client) OSRMOption {
	return func(o *OSRMDirectionsProvider) { o.session = c }
}

func NewOSRMDirectionsProvider(opts ...OSRMOption) (*OSRMDirectionsProvider, error) {
	provider := &OSRMDirectionsProvider{
		session:      &http.Client{Timeout: 10 * time.Second},
		baseURL:      DefaultOSRMBaseURL,
		profile:      DefaultOSRMProfile,
		fetchTimeout: DefaultFetchTimeout,
		// The public demo server allows roughly one request per second.
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}

	for _, opt := range opts {
		opt(provider)
	}

	if provider.baseURL == "" {
		return nil, errors.New("OSRM base url is empty")
	}
	if strings.TrimSpace(provider.profile) == "" {
		return nil, errors.New("OSRM profile is empty")
	}

	return provider, nil
}

// GetDirections returns the road route through waypoints in the given order.
// waypoints[0] is the origin and the last element is the destination.
func (o *OSRMDirectionsProvider) GetDirections(
	ctx context.Context,
	waypoints []domain.GeoPoint,
) (_ domain.Directions, err error) {
	defer obs.Time(ctx, "osrm.GetDirections")(&err)

	if len(waypoints) < 2 {
		return domain.Directions{}, errors.New("get OSRM directions: need at least origin and one stop")
	}
	if err := domain.Route(waypoints).Validate(); err != nil {
		return domain.Directions{}, fmt.Errorf("get OSRM directions: %w", err)
	}

	key := cache.DirectionsKey(o.profile, waypoints)

	// Check persistent cache before issuing external API calls.
	if o.cache != nil {
		d, ok, err := o.cache.Get(ctx, key)
		if err != nil {
			return domain.Directions{}, fmt.Errorf("OSRM get directions cache: %w", err)
		}
		if ok {
			metrics.DirectionsCacheLookups.WithLabelValues("hit").Inc()
			return d, nil
		}
		metrics.DirectionsCacheLookups.WithLabelValues("miss").Inc()
	}

	// The shared fetch is detached from the caller that started it, so one
	// caller giving up does not fail the others waiting on the same key.
	ch := o.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.fetchTimeout)
		defer cancel()

		d, err := o.fetchRoute(fetchCtx, waypoints)
		if err != nil {
			return nil, err
		}
		if o.cache != nil {
			if err := o.cache.Put(fetchCtx, key, d); err != nil {
				log.Printf("directions cache write failed: %v", err)
			}
		}
		return d, nil
	})

	select {
	case <-ctx.Done():
		return domain.Directions{}, fmt.Errorf("fetching route: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return domain.Directions{}, fmt.Errorf("fetching route: %w", res.Err)
		}
		return res.Val.(domain.Directions), nil
	}
}
