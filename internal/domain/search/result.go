package search

import "tutor_search_bot/internal/domain/availability"

// Result is one page returned by the search API.
type Result struct {
	Teachers   []Tutor     `json:"teachers"`
	Pagination *Pagination `json:"pagination,omitempty"`
	TimeTaken  int64       `json:"timeTaken"`
}

// Empty reports whether the page holds no tutors.
func (r *Result) Empty() bool {
	return r == nil || len(r.Teachers) == 0
}

// Pagination is the page summary attached to a result.
type Pagination struct {
	PageNumber       int   `json:"pageNumber"`
	NumberOfElements int   `json:"numberOfElements"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
}

// Tutor is a single search hit.
type Tutor struct {
	ID             string              `json:"id,omitempty"`
	Name           string              `json:"name"`
	Subject        string              `json:"subject"`
	Level          string              `json:"level,omitempty"`
	Description    string              `json:"description,omitempty"`
	Availabilities []TutorAvailability `json:"availabilities,omitempty"`
	Rating         *float64            `json:"rating,omitempty"`
}

// TutorAvailability is a free window advertised by a tutor. Start and End
// are normalised while decoding.
type TutorAvailability struct {
	Day   string            `json:"day"`
	Start availability.Time `json:"start"`
	End   availability.Time `json:"end"`
}

func (a TutorAvailability) String() string {
	return a.Day + " " + a.Start.String() + "-" + a.End.String()
}
