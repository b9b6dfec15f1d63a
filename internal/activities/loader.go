package activities

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/stravastats/internal/telemetry/metrics"
	"github.com/2beens/stravastats/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=loader_mocks_test.go -package=activities_test

const DefaultPageSize = 200

// PageFetcher returns a single 1-based page of an athlete's activities.
// An empty page marks the end of the history.
type PageFetcher interface {
	FetchActivitiesPage(ctx context.Context, page, perPage int) (Collection, error)
}

type PageFetcherFunc func(ctx context.Context, page, perPage int) (Collection, error)

func (f PageFetcherFunc) FetchActivitiesPage(ctx context.Context, page, perPage int) (Collection, error) {
	return f(ctx, page, perPage)
}

// Loader pulls the complete activity history of one athlete, one page at a time.
type Loader struct {
	athleteID      int64
	fetcher        PageFetcher
	store          Store
	pageSize       int
	metricsManager *metrics.Manager
}

// NewLoader creates a history loader. Both store and metricsManager are optional.
func NewLoader(
	athleteID int64,
	fetcher PageFetcher,
	store Store,
	metricsManager *metrics.Manager,
) *Loader {
	return &Loader{
		athleteID:      athleteID,
		fetcher:        fetcher,
		store:          store,
		pageSize:       DefaultPageSize,
		metricsManager: metricsManager,
	}
}

func (l *Loader) WithPageSize(pageSize int) *Loader {
	if pageSize > 0 {
		l.pageSize = pageSize
	}
	return l
}

// LoadAll requests pages 1, 2, ... sequentially until the first empty page. A short page
// is not treated as the last one. On success the whole collection is saved to the store
// once; on any error, partial results are dropped and nothing is saved.
func (l *Loader) LoadAll(ctx context.Context) (_ Collection, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "activities.loader.loadAll")
	span.SetAttributes(attribute.Int64("athlete_id", l.athleteID))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	start := time.Now()
	collection := Collection{}
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			l.observeLoad("cancelled", start)
			return nil, fmt.Errorf("load activities page %d: %w", page, err)
		}

		batch, err := l.fetcher.FetchActivitiesPage(ctx, page, l.pageSize)
		if err != nil {
			l.observeLoad("failed", start)
			return nil, fmt.Errorf("load activities page %d: %w", page, err)
		}
		if l.metricsManager != nil {
			l.metricsManager.CounterActivityPages.Inc()
		}

		log.Tracef("athlete [%d]: activities page %d: %d activities", l.athleteID, page, len(batch))
		if len(batch) == 0 {
			break
		}
		collection = append(collection, batch...)
	}

	span.SetAttributes(attribute.Int("activities", len(collection)))
	l.observeLoad("loaded", start)
	if l.metricsManager != nil {
		l.metricsManager.CounterActivitiesLoaded.Add(float64(len(collection)))
	}

	if l.store != nil {
		if err := l.store.Save(ctx, l.athleteID, collection); err != nil {
			// the loaded history is still served from memory
			log.Errorf("athlete [%d]: save %d activities: %s", l.athleteID, len(collection), err)
		}
	}

	log.Debugf("athlete [%d]: loaded %d activities in %s", l.athleteID, len(collection), time.Since(start))
	return collection, nil
}

func (l *Loader) observeLoad(outcome string, start time.Time) {
	if l.metricsManager == nil {
		return
	}
	l.metricsManager.CounterHistoryLoads.WithLabelValues(outcome).Inc()
	l.metricsManager.HistHistoryLoadDuration.Observe(time.Since(start).Seconds())
}
