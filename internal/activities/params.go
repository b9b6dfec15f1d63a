package activities

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidFilter = errors.New("invalid filter")

const dayLayout = "2006-01-02"

// ParseFilter reads a filter from query parameters. Numeric criteria that are
// missing, malformed or zero are treated as absent.
func ParseFilter(q url.Values) (Filter, error) {
	filter := DefaultFilter()

	var err error
	if filter.IncludeCommutes, err = parseIncludeParam(q, "include_commutes"); err != nil {
		return Filter{}, err
	}
	if filter.IncludePrivate, err = parseIncludeParam(q, "include_private"); err != nil {
		return Filter{}, err
	}
	if filter.IncludeVirtual, err = parseIncludeParam(q, "include_virtual"); err != nil {
		return Filter{}, err
	}

	filter.TitleText = strings.TrimSpace(q.Get("title_text"))
	filter.MinAvgSpeedKmh = ParseOptionalNumber(q.Get("min_avg_speed"))
	filter.AvgSpeedBetweenKmh = ParseSpeedRange(q.Get("avg_speed_between"))
	filter.MinDistanceKm = ParseOptionalNumber(q.Get("min_distance"))
	filter.MaxDistanceKm = ParseOptionalNumber(q.Get("max_distance"))

	if filter.Before, err = parseDayParam(q, "before"); err != nil {
		return Filter{}, err
	}
	if filter.After, err = parseDayParam(q, "after"); err != nil {
		return Filter{}, err
	}

	if _, ok := q["types"]; ok {
		filter.SportTypes = ParseSportTypes(q.Get("types"))
	}

	filter.Position = parsePositionParams(q)

	return filter, nil
}

// ParsePaging reads offset and limit, falling back to the first page of DefaultPageLimit rows.
// A negative limit selects all rows.
func ParsePaging(q url.Values) (offset, limit int) {
	offset, err := strconv.Atoi(q.Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	limit, err = strconv.Atoi(q.Get("limit"))
	if err != nil || limit == 0 {
		limit = DefaultPageLimit
	}
	return offset, limit
}

// ParseOptionalNumber returns nil for empty, malformed, non-finite or zero input.
func ParseOptionalNumber(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParseSpeedRange parses "lower,upper". Anything else yields no range.
func ParseSpeedRange(raw string) *SpeedRange {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil
	}
	lower, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || math.IsNaN(lower) {
		return nil
	}
	upper, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || math.IsNaN(upper) {
		return nil
	}
	return &SpeedRange{Lower: lower, Upper: upper}
}

// ParseDay accepts YYYY-MM-DD or RFC3339 and returns the start of that day in UTC.
func ParseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.ParseInLocation(dayLayout, raw, time.UTC)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: date [%s]", ErrInvalidFilter, raw)
		}
	}
	return StartOfDayUTC(t), nil
}

func StartOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseSportTypes parses a comma separated list. Blank input gives an empty, match-nothing set.
func ParseSportTypes(raw string) SportTypeSet {
	set := NewSportTypeSet()
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		set[SportType(part)] = struct{}{}
	}
	return set
}

func parseIncludeParam(q url.Values, name string) (IncludeOption, error) {
	option, err := ParseIncludeOption(q.Get(name))
	if err != nil {
		return IncludeOptionInclude, fmt.Errorf("%w: %s: %w", ErrInvalidFilter, name, err)
	}
	return option, nil
}

func parseDayParam(q url.Values, name string) (*time.Time, error) {
	raw := q.Get(name)
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	day, err := ParseDay(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &day, nil
}

func parsePositionParams(q url.Values) *PositionFilter {
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		return nil
	}
	center := LatLng{Lat: lat, Lng: lng}
	if !center.IsValid() {
		return nil
	}

	radius := DefaultRadiusMeters
	if r := ParseOptionalNumber(q.Get("radius")); r != nil && *r > 0 {
		radius = *r
	}
	return &PositionFilter{Center: center, RadiusMeters: radius}
}
