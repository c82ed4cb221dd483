package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"drone-dispatch-service/internal/domain"
	"drone-dispatch-service/internal/ports"
)

// Cache keys, one per directory resource.
const (
	resourceVehicles     = "vehicles"
	resourceLaunchPoints = "launch-points"
	resourceAvailability = "availability"
	resourceNoFlyZones   = "no-fly-zones"
)

// CachedDirectory decorates a FleetDirectory with snapshot caching. Cache
// read failures fall through to the upstream; write failures are logged and
// otherwise ignored so a broken cache never blocks dispatching.
type CachedDirectory struct {
	upstream ports.FleetDirectory
	cache    ports.SnapshotCache
}

func NewCachedDirectory(upstream ports.FleetDirectory, cache ports.SnapshotCache) *CachedDirectory {
	return &CachedDirectory{upstream: upstream, cache: cache}
}

// getOrFetch resolves one resource: cached payload if present, otherwise the
// fetch result, which is then written back.
func getOrFetch[T any](
	ctx context.Context,
	c *CachedDirectory,
	resource string,
	fetch func(context.Context) (T, error),
) (T, error) {
	var zero T

	if c.cache != nil {
		payload, ok, err := c.cache.GetPayload(ctx, resource)
		if err != nil {
			log.Printf("snapshot cache read failed resource=%s err=%v", resource, err)
		} else if ok {
			var out T
			if err := json.Unmarshal(payload, &out); err == nil {
				return out, nil
			}
			log.Printf("snapshot cache payload corrupt resource=%s", resource)
		}
	}

	out, err := fetch(ctx)
	if err != nil {
		return zero, fmt.Errorf("fetch %s: %w", resource, err)
	}

	if c.cache != nil {
		payload, err := json.Marshal(out)
		if err == nil {
			if err := c.cache.PutPayload(ctx, resource, payload); err != nil {
				log.Printf("snapshot cache write failed resource=%s err=%v", resource, err)
			}
		}
	}

	return out, nil
}

func (c *CachedDirectory) Vehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return getOrFetch(ctx, c, resourceVehicles, c.upstream.Vehicles)
}

func (c *CachedDirectory) LaunchPoints(ctx context.Context) ([]domain.LaunchPoint, error) {
	return getOrFetch(ctx, c, resourceLaunchPoints, c.upstream.LaunchPoints)
}

func (c *CachedDirectory) Availability(ctx context.Context) (domain.AvailabilitySet, error) {
	return getOrFetch(ctx, c, resourceAvailability, c.upstream.Availability)
}

func (c *CachedDirectory) NoFlyZones(ctx context.Context) ([]domain.NoFlyZone, error) {
	return getOrFetch(ctx, c, resourceNoFlyZones, c.upstream.NoFlyZones)
}
