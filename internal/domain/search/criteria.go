package search

import "tutor_search_bot/internal/domain/availability"

// Criteria holds the filters collected by the wizard. A nil field means
// "unset" and is never sent to the search API.
type Criteria struct {
	Query          *string
	Subject        *string
	Level          *string
	Rating         *float64
	Availabilities *availability.Selector // nil or non-empty
}

// Clone returns a deep copy so a snapshot can outlive further edits.
func (c Criteria) Clone() Criteria {
	return Criteria{
		Query:          cloneString(c.Query),
		Subject:        cloneString(c.Subject),
		Level:          cloneString(c.Level),
		Rating:         cloneFloat(c.Rating),
		Availabilities: c.Availabilities.Clone(),
	}
}

// IsZero reports whether every filter is unset.
func (c Criteria) IsZero() bool {
	return c.Query == nil && c.Subject == nil && c.Level == nil && c.Rating == nil && c.Availabilities == nil
}

// StringPtr is a helper for building criteria literals.
func StringPtr(s string) *string {
	return &s
}

// FloatPtr is a helper for building criteria literals.
func FloatPtr(f float64) *float64 {
	return &f
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
