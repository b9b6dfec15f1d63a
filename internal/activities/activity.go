// Package activities holds the athlete activity history: loading it page by page from Strava,
// caching it at a persistence boundary, and filtering, summarizing and paginating it.
package activities

import "time"

type SportType string

// AllSportTypes is a sentinel: a sport type selection containing it does not constrain anything.
const AllSportTypes SportType = "All sport types"

const (
	SportTypeAlpineSki       SportType = "AlpineSki"
	SportTypeBackcountrySki  SportType = "BackcountrySki"
	SportTypeCanoeing        SportType = "Canoeing"
	SportTypeCrossfit        SportType = "Crossfit"
	SportTypeEBikeRide       SportType = "EBikeRide"
	SportTypeElliptical      SportType = "Elliptical"
	SportTypeHike            SportType = "Hike"
	SportTypeIceSkate        SportType = "IceSkate"
	SportTypeInlineSkate     SportType = "InlineSkate"
	SportTypeKayaking        SportType = "Kayaking"
	SportTypeKitesurf        SportType = "Kitesurf"
	SportTypeNordicSki       SportType = "NordicSki"
	SportTypeRide            SportType = "Ride"
	SportTypeRockClimbing    SportType = "RockClimbing"
	SportTypeRollerSki       SportType = "RollerSki"
	SportTypeRowing          SportType = "Rowing"
	SportTypeRun             SportType = "Run"
	SportTypeSnowboard       SportType = "Snowboard"
	SportTypeSnowshoe        SportType = "Snowshoe"
	SportTypeStairStepper    SportType = "StairStepper"
	SportTypeStandUpPaddling SportType = "StandUpPaddling"
	SportTypeSurfing         SportType = "Surfing"
	SportTypeSwim            SportType = "Swim"
	SportTypeVirtualRide     SportType = "VirtualRide"
	SportTypeWalk            SportType = "Walk"
	SportTypeWeightTraining  SportType = "WeightTraining"
	SportTypeWindsurf        SportType = "Windsurf"
	SportTypeWorkout         SportType = "Workout"
	SportTypeYoga            SportType = "Yoga"
)

// SportTypes lists the sentinel followed by every known sport type, in the order
// offered for selection.
var SportTypes = []SportType{
	AllSportTypes,
	SportTypeAlpineSki, SportTypeBackcountrySki, SportTypeCanoeing, SportTypeCrossfit,
	SportTypeEBikeRide, SportTypeElliptical, SportTypeHike, SportTypeIceSkate,
	SportTypeInlineSkate, SportTypeKayaking, SportTypeKitesurf, SportTypeNordicSki,
	SportTypeRide, SportTypeRockClimbing, SportTypeRollerSki, SportTypeRowing,
	SportTypeRun, SportTypeSnowboard, SportTypeSnowshoe, SportTypeStairStepper,
	SportTypeStandUpPaddling, SportTypeSurfing, SportTypeSwim, SportTypeVirtualRide,
	SportTypeWalk, SportTypeWeightTraining, SportTypeWindsurf, SportTypeWorkout,
	SportTypeYoga,
}

type PolylineMap struct {
	ID              string `json:"id"`
	SummaryPolyline string `json:"summary_polyline"`
}

// Activity is a summary activity as listed by the athlete activities endpoint.
type Activity struct {
	ID                 int64        `json:"id"`
	Name               string       `json:"name"`
	StartDate          time.Time    `json:"start_date"`
	StartDateLocal     time.Time    `json:"start_date_local"`
	Distance           float64      `json:"distance"`     // meters
	MovingTime         int          `json:"moving_time"`  // seconds
	ElapsedTime        int          `json:"elapsed_time"` // seconds
	TotalElevationGain float64      `json:"total_elevation_gain"`
	AverageSpeed       float64      `json:"average_speed"` // m/s
	MaxSpeed           float64      `json:"max_speed"`     // m/s
	Type               SportType    `json:"type"`
	SportType          SportType    `json:"sport_type"`
	Commute            bool         `json:"commute"`
	Private            bool         `json:"private"`
	Trainer            bool         `json:"trainer"`
	KudosCount         int          `json:"kudos_count"`
	Map                *PolylineMap `json:"map,omitempty"`
}

// Collection is an ordered activity history, in the order the API returned it.
type Collection []Activity

// Sport returns the tag used for sport type filtering.
func (a Activity) Sport() SportType {
	if a.Type != "" {
		return a.Type
	}
	return a.SportType
}

// SpeedKmh returns the average speed in km/h.
func (a Activity) SpeedKmh() float64 {
	return a.AverageSpeed * 3.6
}

func (a Activity) DistanceKm() float64 {
	return a.Distance / 1000
}

// HasMap reports whether the activity carries a route polyline.
func (a Activity) HasMap() bool {
	return a.Map != nil && a.Map.SummaryPolyline != ""
}
