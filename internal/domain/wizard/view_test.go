package wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"tutor_search_bot/internal/domain/search"
)

func TestNewResultView(t *testing.T) {
	assert.Equal(t, NoResults, NewResultView(nil).Kind)
	assert.Equal(t, NoResults, NewResultView(&search.Result{Teachers: []search.Tutor{}}).Kind)

	view := NewResultView(&search.Result{
		Teachers:   []search.Tutor{{Name: "Ada"}},
		Pagination: &search.Pagination{NumberOfElements: 1, TotalElements: 12},
		TimeTaken:  37,
	})
	assert.Equal(t, ResultsList, view.Kind)
	assert.Equal(t, &Summary{Shown: 1, Total: 12, TimeTakenMs: 37}, view.Summary)

	noPages := NewResultView(&search.Result{Teachers: []search.Tutor{{Name: "Ada"}}})
	assert.Nil(t, noPages.Summary)
}

func TestErrorView(t *testing.T) {
	view := ErrorView(errors.New("HTTP error! status: 502"))
	assert.Equal(t, ResultError, view.Kind)
	assert.Equal(t, "HTTP error! status: 502", view.Message)
	assert.Equal(t, "unknown error", ErrorView(nil).Message)
}
