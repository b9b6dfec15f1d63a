package geoip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ipinfo/go/v2/ipinfo"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/2beens/stravastats/internal/activities"
	"github.com/2beens/stravastats/internal/telemetry/tracing"
	"github.com/2beens/stravastats/pkg"
)

const (
	DefaultCacheTTL = 24 * time.Hour

	SourceIP      = "ip"
	SourceDefault = "default"
)

var ErrNoLocation = errors.New("no location for ip")

// Position is a suggested map center for the position filter.
type Position struct {
	Center  activities.LatLng `json:"center"`
	Radius  float64           `json:"radius"`
	City    string            `json:"city,omitempty"`
	Country string            `json:"country,omitempty"`
	Source  string            `json:"source"`
}

func DefaultPosition() Position {
	return Position{
		Center: activities.DefaultCenter,
		Radius: activities.DefaultRadiusMeters,
		Source: SourceDefault,
	}
}

type ipInfoClient interface {
	GetIPInfo(ip net.IP) (*ipinfo.Core, error)
}

type Api struct {
	mu          sync.Mutex
	ipInfo      ipInfoClient
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewApi(ipInfo ipInfoClient, redisClient *redis.Client, cacheTTL time.Duration) *Api {
	return &Api{
		ipInfo:      ipInfo,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// PositionForIP resolves the ip to a map center. Any failure yields the default position.
func (gi *Api) PositionForIP(ctx context.Context, userIp string) Position {
	ctx, span := tracing.GlobalTracer.Start(ctx, "geoIp.positionForIP")
	defer span.End()
	span.SetAttributes(attribute.String("user.ip", userIp))

	// used for development
	if userIp == "" || userIp == pkg.LocalhostIP {
		log.Debugf("position for ip: returning default for [%s]", userIp)
		return DefaultPosition()
	}

	position, err := gi.lookup(ctx, userIp)
	if err != nil {
		log.Warnf("position for ip [%s], falling back to default: %s", userIp, err)
		span.SetStatus(codes.Error, err.Error())
		return DefaultPosition()
	}

	return position
}

func (gi *Api) lookup(ctx context.Context, userIp string) (Position, error) {
	ip := net.ParseIP(userIp)
	if ip == nil {
		return Position{}, fmt.Errorf("invalid ip: %s", userIp)
	}

	// concurrent dashboard requests should hit ipinfo once
	gi.mu.Lock()
	defer gi.mu.Unlock()

	userIpKey := fmt.Sprintf("ip-position::%s", userIp)
	cached, err := gi.redisClient.Get(ctx, userIpKey).Result()
	switch {
	case err == nil:
		position := Position{}
		if err := json.Unmarshal([]byte(cached), &position); err == nil {
			trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("user.ip.from-cache", true))
			return position, nil
		}
		log.Errorf("failed to unmarshal cached position for %s: %s", userIp, err)
	case errors.Is(err, redis.Nil):
		log.Debugf("position for [%s] not found in redis", userIp)
	default:
		log.Errorf("failed to get cached position for [%s]: %s", userIpKey, err)
	}

	info, err := gi.ipInfo.GetIPInfo(ip)
	if err != nil {
		return Position{}, fmt.Errorf("ipinfo lookup: %w", err)
	}
	if info.Bogon {
		return Position{}, fmt.Errorf("%w: bogon ip %s", ErrNoLocation, userIp)
	}

	center, err := parseLocation(info.Location)
	if err != nil {
		return Position{}, err
	}

	position := Position{
		Center:  center,
		Radius:  activities.DefaultRadiusMeters,
		City:    info.City,
		Country: info.Country,
		Source:  SourceIP,
	}

	positionJson, err := json.Marshal(position)
	if err != nil {
		return position, nil
	}
	if err := gi.redisClient.Set(ctx, userIpKey, string(positionJson), gi.cacheTTL).Err(); err != nil {
		log.Errorf("failed to cache position in redis for %s: %s", userIp, err)
	}

	return position, nil
}

// parseLocation parses the "lat,lng" location ipinfo returns.
func parseLocation(loc string) (activities.LatLng, error) {
	lat, lng, found := strings.Cut(loc, ",")
	if !found {
		return activities.LatLng{}, fmt.Errorf("%w: location [%s]", ErrNoLocation, loc)
	}
	latVal, errLat := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	lngVal, errLng := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if errLat != nil || errLng != nil {
		return activities.LatLng{}, fmt.Errorf("%w: location [%s]", ErrNoLocation, loc)
	}

	center := activities.LatLng{Lat: latVal, Lng: lngVal}
	if !center.IsValid() {
		return activities.LatLng{}, fmt.Errorf("%w: location [%s]", ErrNoLocation, loc)
	}
	return center, nil
}
