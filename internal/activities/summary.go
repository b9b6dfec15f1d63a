package activities

import (
	"encoding/json"
	"fmt"
)

type Summary struct {
	Count           int     `json:"count"`
	TotalDistance   float64 `json:"total_distance"`    // meters
	TotalElevation  float64 `json:"total_elevation"`   // meters
	TotalMovingTime int     `json:"total_moving_time"` // seconds
}

func Summarize(collection Collection) Summary {
	s := Summary{Count: len(collection)}
	for _, a := range collection {
		s.TotalDistance += a.Distance
		s.TotalElevation += a.TotalElevationGain
		s.TotalMovingTime += a.MovingTime
	}
	return s
}

func (s Summary) TotalDistanceKm() float64 {
	return s.TotalDistance / 1000
}

// MovingTimeText formats the total moving time as hours and minutes, e.g. "12h5m".
func (s Summary) MovingTimeText() string {
	totalMinutes := (s.TotalMovingTime + 30) / 60
	return fmt.Sprintf("%dh%dm", totalMinutes/60, totalMinutes%60)
}

func (s Summary) MarshalJSON() ([]byte, error) {
	type summary Summary
	return json.Marshal(struct {
		summary
		TotalDistanceKm float64 `json:"total_distance_km"`
		MovingTimeText  string  `json:"moving_time_text"`
	}{
		summary:         summary(s),
		TotalDistanceKm: s.TotalDistanceKm(),
		MovingTimeText:  s.MovingTimeText(),
	})
}
