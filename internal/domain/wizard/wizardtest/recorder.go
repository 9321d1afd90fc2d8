// Package wizardtest provides a wizard.Renderer that records calls.
package wizardtest

import (
	"fmt"
	"sync"

	"tutor_search_bot/internal/domain/availability"
	"tutor_search_bot/internal/domain/search"
	"tutor_search_bot/internal/domain/wizard"
)

// Recorder captures renderer calls as short event strings, e.g.
// "step:2", "progress:0.33", "loading:true", "results:empty".
type Recorder struct {
	mu       sync.Mutex
	events   []string
	criteria search.Criteria
	views    []wizard.ResultView
	grid     *availability.Selector
}

var _ wizard.Renderer = (*Recorder)(nil)

func (r *Recorder) record(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *Recorder) RenderStep(step wizard.Step, criteria search.Criteria) {
	r.mu.Lock()
	r.criteria = criteria
	r.mu.Unlock()
	r.record(fmt.Sprintf("step:%d", step))
}

func (r *Recorder) RenderProgress(fraction float64) {
	r.record(fmt.Sprintf("progress:%.2f", fraction))
}

func (r *Recorder) RenderAvailabilityGrid(_ availability.Grid, selected *availability.Selector) {
	r.mu.Lock()
	r.grid = selected
	r.mu.Unlock()
	r.record(fmt.Sprintf("grid:%d", selected.Len()))
}

func (r *Recorder) ShowResults() { r.record("show_results") }

func (r *Recorder) ClearResults() { r.record("clear_results") }

func (r *Recorder) RenderLoading(loading bool) {
	r.record(fmt.Sprintf("loading:%t", loading))
}

func (r *Recorder) RenderResults(view wizard.ResultView) {
	r.mu.Lock()
	r.views = append(r.views, view)
	r.mu.Unlock()
	r.record("results:" + view.Kind.String())
}

func (r *Recorder) RenderError(message string) {
	r.record("error:" + message)
}

func (r *Recorder) ResetVisualSelections() { r.record("reset_visuals") }

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// Clear drops recorded events.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// LastCriteria is the criteria passed with the latest RenderStep.
func (r *Recorder) LastCriteria() search.Criteria {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.criteria
}

// LastGrid is the selection passed with the latest grid render.
func (r *Recorder) LastGrid() *availability.Selector {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.grid
}

// Views returns the result views rendered so far.
func (r *Recorder) Views() []wizard.ResultView {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]wizard.ResultView, len(r.views))
	copy(out, r.views)
	return out
}
