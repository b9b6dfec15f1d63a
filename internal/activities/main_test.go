package activities_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/goleak"

	"github.com/2beens/stravastats/internal/activities"
)

var leakOptions = []goleak.Option{
	// INFO: https://github.com/go-redis/redis/issues/1029
	goleak.IgnoreTopFunction(
		"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
	),
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, leakOptions...)
}

var fakeSportTypes = []string{"Ride", "Run", "Walk", "VirtualRide", "Hike", "Swim"}

func fakeActivities(n int) activities.Collection {
	faker := gofakeit.New(42)
	from := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	collection := make(activities.Collection, 0, n)
	for i := 0; i < n; i++ {
		collection = append(collection, activities.Activity{
			ID:                 int64(i + 1),
			Name:               faker.Sentence(3),
			StartDate:          faker.DateRange(from, to).UTC(),
			Distance:           faker.Float64Range(500, 120000),
			MovingTime:         faker.IntRange(600, 20000),
			TotalElevationGain: faker.Float64Range(0, 2000),
			AverageSpeed:       faker.Float64Range(1, 12),
			Type:               activities.SportType(faker.RandomString(fakeSportTypes)),
			Commute:            faker.Bool(),
			Private:            faker.Bool(),
		})
	}
	return collection
}

func ids(collection activities.Collection) []int64 {
	res := make([]int64, 0, len(collection))
	for _, a := range collection {
		res = append(res, a.ID)
	}
	return res
}

func ptr[T any](v T) *T {
	return &v
}
