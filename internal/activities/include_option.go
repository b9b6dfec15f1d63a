package activities

import (
	"encoding/json"
	"fmt"
	"strings"
)

// IncludeOption is a tri-state criterion over a boolean activity property.
// The zero value is IncludeOptionInclude, which does not constrain anything.
type IncludeOption int

const (
	IncludeOptionInclude IncludeOption = iota
	IncludeOptionExclude
	IncludeOptionOnly
)

func (o IncludeOption) String() string {
	switch o {
	case IncludeOptionInclude:
		return "Include"
	case IncludeOptionExclude:
		return "Exclude"
	case IncludeOptionOnly:
		return "Only"
	default:
		return fmt.Sprintf("IncludeOption(%d)", int(o))
	}
}

// Matches reports whether an activity whose property equals flag passes the criterion.
func (o IncludeOption) Matches(flag bool) bool {
	switch o {
	case IncludeOptionInclude:
		return true
	case IncludeOptionExclude:
		return !flag
	case IncludeOptionOnly:
		return flag
	default:
		return true
	}
}

func ParseIncludeOption(s string) (IncludeOption, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "include":
		return IncludeOptionInclude, nil
	case "exclude":
		return IncludeOptionExclude, nil
	case "only":
		return IncludeOptionOnly, nil
	default:
		return IncludeOptionInclude, fmt.Errorf("invalid include option: %q", s)
	}
}

func (o IncludeOption) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *IncludeOption) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseIncludeOption(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
