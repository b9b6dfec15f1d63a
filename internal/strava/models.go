package strava

import "time"

type Athlete struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Firstname     string    `json:"firstname"`
	Lastname      string    `json:"lastname"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	Country       string    `json:"country"`
	Sex           string    `json:"sex"`
	Premium       bool      `json:"premium"`
	Summit        bool      `json:"summit"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	ProfileMedium string    `json:"profile_medium"`
	Profile       string    `json:"profile"`
	Weight        float64   `json:"weight"`
}

func (a Athlete) FullName() string {
	switch {
	case a.Firstname == "":
		return a.Lastname
	case a.Lastname == "":
		return a.Firstname
	default:
		return a.Firstname + " " + a.Lastname
	}
}

// ActivityTotal rolls up activities of one sport over a period.
type ActivityTotal struct {
	Count            int     `json:"count"`
	Distance         float64 `json:"distance"`
	MovingTime       int     `json:"moving_time"`
	ElapsedTime      int     `json:"elapsed_time"`
	ElevationGain    float64 `json:"elevation_gain"`
	AchievementCount int     `json:"achievement_count"`
}

type AthleteStats struct {
	BiggestRideDistance       float64       `json:"biggest_ride_distance"`
	BiggestClimbElevationGain float64       `json:"biggest_climb_elevation_gain"`
	RecentRideTotals          ActivityTotal `json:"recent_ride_totals"`
	RecentRunTotals           ActivityTotal `json:"recent_run_totals"`
	RecentSwimTotals          ActivityTotal `json:"recent_swim_totals"`
	YTDRideTotals             ActivityTotal `json:"ytd_ride_totals"`
	YTDRunTotals              ActivityTotal `json:"ytd_run_totals"`
	YTDSwimTotals             ActivityTotal `json:"ytd_swim_totals"`
	AllRideTotals             ActivityTotal `json:"all_ride_totals"`
	AllRunTotals              ActivityTotal `json:"all_run_totals"`
	AllSwimTotals             ActivityTotal `json:"all_swim_totals"`
}

// ListActivitiesParams narrows down the athlete activities listing. Zero values are not sent.
type ListActivitiesParams struct {
	Before  time.Time
	After   time.Time
	Page    int
	PerPage int
}
