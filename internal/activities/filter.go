package activities

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// SpeedRange bounds an average speed in km/h, both ends exclusive.
type SpeedRange struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

func (r SpeedRange) Contains(speedKmh float64) bool {
	return r.Lower < speedKmh && speedKmh < r.Upper
}

// SportTypeSet is a sport type selection. A nil set does not constrain anything,
// while an empty non-nil set matches no activity at all.
type SportTypeSet map[SportType]struct{}

// NewSportTypeSet always returns a non-nil set, so calling it without types
// yields the "nothing selected" selection.
func NewSportTypeSet(types ...SportType) SportTypeSet {
	set := make(SportTypeSet, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

func (s SportTypeSet) Contains(t SportType) bool {
	_, ok := s[t]
	return ok
}

// Matches applies the selection to a single sport type.
func (s SportTypeSet) Matches(t SportType) bool {
	if s == nil || s.Contains(AllSportTypes) {
		return true
	}
	return s.Contains(t)
}

// Types returns the selected types, sorted.
func (s SportTypeSet) Types() []SportType {
	types := make([]SportType, 0, len(s))
	for t := range s {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

func (s SportTypeSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.Types())
}

func (s *SportTypeSet) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}
	var types []SportType
	if err := json.Unmarshal(data, &types); err != nil {
		return err
	}
	*s = NewSportTypeSet(types...)
	return nil
}

// Filter is a conjunction of independent criteria. A zero Filter matches every activity;
// nil/empty criteria mean "no constraint".
type Filter struct {
	IncludeCommutes    IncludeOption   `json:"include_commutes"`
	IncludePrivate     IncludeOption   `json:"include_private"`
	IncludeVirtual     IncludeOption   `json:"include_virtual"`
	TitleText          string          `json:"title_text"`
	MinAvgSpeedKmh     *float64        `json:"min_avg_speed,omitempty"`
	AvgSpeedBetweenKmh *SpeedRange     `json:"avg_speed_between,omitempty"`
	MinDistanceKm      *float64        `json:"min_distance,omitempty"`
	MaxDistanceKm      *float64        `json:"max_distance,omitempty"`
	Before             *time.Time      `json:"before,omitempty"`
	After              *time.Time      `json:"after,omitempty"`
	SportTypes         SportTypeSet    `json:"types"`
	Position           *PositionFilter `json:"position,omitempty"`
}

func DefaultFilter() Filter {
	return Filter{
		IncludeCommutes: IncludeOptionInclude,
		IncludePrivate:  IncludeOptionInclude,
		IncludeVirtual:  IncludeOptionInclude,
	}
}

// Matches evaluates every active criterion against the activity, cheapest checks first.
func (f Filter) Matches(a Activity) bool {
	if !f.IncludeCommutes.Matches(a.Commute) ||
		!f.IncludePrivate.Matches(a.Private) ||
		!f.IncludeVirtual.Matches(a.Sport() == SportTypeVirtualRide) {
		return false
	}

	if f.TitleText != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(f.TitleText)) {
		return false
	}

	speedKmh := a.SpeedKmh()
	if f.MinAvgSpeedKmh != nil && speedKmh < *f.MinAvgSpeedKmh {
		return false
	}

	// bounds are scaled to meters, the activity distance is compared as stored
	if f.MinDistanceKm != nil && a.Distance < *f.MinDistanceKm*1000 {
		return false
	}
	if f.MaxDistanceKm != nil && a.Distance > *f.MaxDistanceKm*1000 {
		return false
	}

	if f.AvgSpeedBetweenKmh != nil && !f.AvgSpeedBetweenKmh.Contains(speedKmh) {
		return false
	}

	if f.Before != nil && !a.StartDate.Before(*f.Before) {
		return false
	}
	if f.After != nil && !a.StartDate.After(*f.After) {
		return false
	}

	if !f.SportTypes.Matches(a.Sport()) {
		return false
	}

	if f.Position != nil && !f.Position.Matches(a) {
		return false
	}

	return true
}

// Apply returns the activities matching the filter, preserving their order.
// The input collection is never modified.
func Apply(collection Collection, filter Filter) Collection {
	filtered := make(Collection, 0, len(collection))
	for _, a := range collection {
		if filter.Matches(a) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
