package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/stravastats/internal/activities"
	"github.com/2beens/stravastats/internal/telemetry/metrics"
	"github.com/2beens/stravastats/internal/telemetry/tracing"
)

const DefaultBaseURL = "https://www.strava.com/api/v3"

var _ activities.PageFetcher = (*Client)(nil)

// Client calls the Strava API on behalf of a single athlete. The given http client
// is expected to authorize requests, i.e. come from an oauth2 token source.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	cache          *ResponseCache
	cacheNamespace string
	metricsManager *metrics.Manager
}

type NewClientParams struct {
	BaseURL    string
	HttpClient *http.Client
	// Cache is optional, GET responses are not cached without it
	Cache *ResponseCache
	// CacheNamespace separates cached responses of different athletes
	CacheNamespace string
	MetricsManager *metrics.Manager
}

func NewClient(params NewClientParams) *Client {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := params.HttpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		httpClient:     httpClient,
		cache:          params.Cache,
		cacheNamespace: params.CacheNamespace,
		metricsManager: params.MetricsManager,
	}
}

func (c *Client) GetLoggedInAthlete(ctx context.Context) (_ *Athlete, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stravaClient.getLoggedInAthlete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	athlete := &Athlete{}
	if err := c.get(ctx, "/athlete", nil, athlete); err != nil {
		return nil, err
	}
	return athlete, nil
}

func (c *Client) GetAthleteStats(ctx context.Context, athleteID int64) (_ *AthleteStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stravaClient.getAthleteStats")
	span.SetAttributes(attribute.Int64("athlete_id", athleteID))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	stats := &AthleteStats{}
	if err := c.get(ctx, fmt.Sprintf("/athletes/%d/stats", athleteID), nil, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *Client) ListAthleteActivities(ctx context.Context, params ListActivitiesParams) (_ activities.Collection, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stravaClient.listAthleteActivities")
	span.SetAttributes(
		attribute.Int("page", params.Page),
		attribute.Int("per_page", params.PerPage),
	)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query := url.Values{}
	if !params.Before.IsZero() {
		query.Set("before", strconv.FormatInt(params.Before.Unix(), 10))
	}
	if !params.After.IsZero() {
		query.Set("after", strconv.FormatInt(params.After.Unix(), 10))
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(params.PerPage))
	}

	collection := activities.Collection{}
	if err := c.get(ctx, "/athlete/activities", query, &collection); err != nil {
		return nil, err
	}
	return collection, nil
}

// FetchActivitiesPage lists a single page of the athlete's activities.
func (c *Client) FetchActivitiesPage(ctx context.Context, page, perPage int) (activities.Collection, error) {
	return c.ListAthleteActivities(ctx, ListActivitiesParams{
		Page:    page,
		PerPage: perPage,
	})
}

func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	cacheKey := []byte(c.cacheNamespace + "::" + reqURL)
	if c.cache != nil && !activities.FreshDataRequested(ctx) {
		if cached, err := c.cache.Get(cacheKey); err == nil {
			if err := json.Unmarshal(cached, v); err == nil {
				log.Tracef("strava response for [%s] found in cache", path)
				if c.metricsManager != nil {
					c.metricsManager.CounterStravaCacheHits.Inc()
				}
				return nil
			} else {
				log.Errorf("unmarshal cached strava response for [%s]: %s", path, err)
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read strava response: %w", err)
	}

	if usage := resp.Header.Get("X-RateLimit-Usage"); usage != "" {
		log.Tracef("strava rate limit usage: %s / %s", usage, resp.Header.Get("X-RateLimit-Limit"))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBytes, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if err := json.Unmarshal(respBytes, v); err != nil {
		return fmt.Errorf("unmarshal strava response: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.Set(cacheKey, respBytes, responseCacheExpire); err != nil {
			log.Errorf("cache strava response for [%s]: %s", path, err)
		}
	}

	return nil
}
