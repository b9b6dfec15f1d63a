package activities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Criterion names, shared by query parameters and the per-criterion filter endpoint.
const (
	CriterionIncludeCommutes = "include_commutes"
	CriterionIncludePrivate  = "include_private"
	CriterionIncludeVirtual  = "include_virtual"
	CriterionTitleText       = "title_text"
	CriterionMinAvgSpeed     = "min_avg_speed"
	CriterionAvgSpeedBetween = "avg_speed_between"
	CriterionMinDistance     = "min_distance"
	CriterionMaxDistance     = "max_distance"
	CriterionBefore          = "before"
	CriterionAfter           = "after"
	CriterionTypes           = "types"
	CriterionPosition        = "position"
)

// SetCriterion decodes a single criterion value and hands it to the matching engine setter.
// A JSON null clears the criterion.
func SetCriterion(engine *Engine, criterion string, value json.RawMessage) error {
	value = bytes.TrimSpace(value)
	unset := len(value) == 0 || bytes.Equal(value, []byte("null"))

	switch criterion {
	case CriterionIncludeCommutes, CriterionIncludePrivate, CriterionIncludeVirtual:
		option := IncludeOptionInclude
		if !unset {
			if err := json.Unmarshal(value, &option); err != nil {
				return invalidCriterion(criterion, err)
			}
		}
		switch criterion {
		case CriterionIncludeCommutes:
			engine.SetIncludeCommutes(option)
		case CriterionIncludePrivate:
			engine.SetIncludePrivate(option)
		default:
			engine.SetIncludeVirtual(option)
		}
	case CriterionTitleText:
		var text string
		if !unset {
			if err := json.Unmarshal(value, &text); err != nil {
				return invalidCriterion(criterion, err)
			}
		}
		engine.SetTitleText(text)
	case CriterionMinAvgSpeed, CriterionMinDistance, CriterionMaxDistance:
		number, err := decodeOptionalNumber(value, unset)
		if err != nil {
			return invalidCriterion(criterion, err)
		}
		switch criterion {
		case CriterionMinAvgSpeed:
			engine.SetMinAvgSpeed(number)
		case CriterionMinDistance:
			engine.SetMinDistance(number)
		default:
			engine.SetMaxDistance(number)
		}
	case CriterionAvgSpeedBetween:
		var r *SpeedRange
		if !unset {
			if err := json.Unmarshal(value, &r); err != nil {
				return invalidCriterion(criterion, err)
			}
		}
		engine.SetAvgSpeedBetween(r)
	case CriterionBefore, CriterionAfter:
		var day *time.Time
		if !unset {
			var raw string
			if err := json.Unmarshal(value, &raw); err != nil {
				return invalidCriterion(criterion, err)
			}
			if raw != "" {
				parsed, err := ParseDay(raw)
				if err != nil {
					return err
				}
				day = &parsed
			}
		}
		if criterion == CriterionBefore {
			engine.SetBefore(day)
		} else {
			engine.SetAfter(day)
		}
	case CriterionTypes:
		var types SportTypeSet
		if !unset {
			if err := json.Unmarshal(value, &types); err != nil {
				return invalidCriterion(criterion, err)
			}
		}
		engine.SetSportTypes(types)
	case CriterionPosition:
		var position *PositionFilter
		if !unset {
			if err := json.Unmarshal(value, &position); err != nil {
				return invalidCriterion(criterion, err)
			}
			if position.RadiusMeters <= 0 {
				position.RadiusMeters = DefaultRadiusMeters
			}
			if !position.Center.IsValid() {
				return fmt.Errorf("%w: position: invalid center %v", ErrInvalidFilter, position.Center)
			}
		}
		engine.SetPosition(position)
	default:
		return fmt.Errorf("%w: unknown criterion [%s]", ErrInvalidFilter, criterion)
	}

	return nil
}

// decodeOptionalNumber accepts a JSON number or a numeric string; zero means absent.
func decodeOptionalNumber(value json.RawMessage, unset bool) (*float64, error) {
	if unset {
		return nil, nil
	}
	var number float64
	if err := json.Unmarshal(value, &number); err == nil {
		if number == 0 {
			return nil, nil
		}
		return &number, nil
	}
	var text string
	if err := json.Unmarshal(value, &text); err != nil {
		return nil, err
	}
	return ParseOptionalNumber(text), nil
}

func invalidCriterion(criterion string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidFilter, criterion, err)
}
