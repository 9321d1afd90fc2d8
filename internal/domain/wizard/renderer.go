package wizard

import (
	"tutor_search_bot/internal/domain/availability"
	"tutor_search_bot/internal/domain/search"
)

// Renderer is the presentation side of the wizard. Implementations own
// all display state; the wizard only tells them what to show.
type Renderer interface {
	// RenderStep shows the input step for the current criteria. Called
	// again on the same step when a selection changes.
	RenderStep(step Step, criteria search.Criteria)
	RenderProgress(fraction float64)
	RenderAvailabilityGrid(grid availability.Grid, selected *availability.Selector)
	ShowResults()
	ClearResults()
	RenderLoading(loading bool)
	RenderResults(view ResultView)
	RenderError(message string)
	ResetVisualSelections()
}
