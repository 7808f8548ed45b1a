package types

import "fmt"

// Advisory kinds.
const (
	AdvisoryMissingRequired = "missing_required"
	AdvisoryMultipleValues  = "multiple_values"
)

// Advisory is a non-binding note about a tag set. Stores accept tag sets
// regardless of advisories so that existing data is never rejected.
type Advisory struct {
	Kind     string `json:"kind"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// CheckAdvisories reports required categories that have no value and
// single-value categories holding more than one.
func CheckAdvisories(tags Tags) []Advisory {
	var out []Advisory
	for _, c := range requiredCategories {
		if len(tags[c]) == 0 {
			out = append(out, Advisory{
				Kind:     AdvisoryMissingRequired,
				Category: c,
				Message:  fmt.Sprintf("%s has no value", c),
			})
		}
	}
	for _, c := range singleValueCategories {
		if n := len(tags[c]); n > 1 {
			out = append(out, Advisory{
				Kind:     AdvisoryMultipleValues,
				Category: c,
				Message:  fmt.Sprintf("%s allows one value, got %d", c, n),
			})
		}
	}
	return out
}
