package wizard

import "tutor_search_bot/internal/domain/search"

// ResultKind tells the renderer which result panel to show.
type ResultKind int

const (
	ResultsList ResultKind = iota
	NoResults
	ResultError
)

func (k ResultKind) String() string {
	switch k {
	case ResultsList:
		return "results"
	case NoResults:
		return "empty"
	case ResultError:
		return "error"
	default:
		return "unknown"
	}
}

// Summary is the pagination footer under a results list.
type Summary struct {
	Shown       int
	Total       int64
	TimeTakenMs int64
}

// ResultView is everything the renderer needs to paint a search outcome.
type ResultView struct {
	Kind    ResultKind
	Tutors  []search.Tutor
	Summary *Summary
	Message string // set for ResultError
	// Stale is set when a newer search superseded this one and nothing
	// was rendered.
	Stale bool
}

// NewResultView maps a decoded page to a list or an empty view.
func NewResultView(res *search.Result) ResultView {
	if res.Empty() {
		return ResultView{Kind: NoResults}
	}
	view := ResultView{Kind: ResultsList, Tutors: res.Teachers}
	if res.Pagination != nil {
		view.Summary = &Summary{
			Shown:       res.Pagination.NumberOfElements,
			Total:       res.Pagination.TotalElements,
			TimeTakenMs: res.TimeTaken,
		}
	}
	return view
}

// ErrorView builds the failure view for err.
func ErrorView(err error) ResultView {
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return ResultView{Kind: ResultError, Message: msg}
}
