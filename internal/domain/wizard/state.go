package wizard

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"tutor_search_bot/internal/domain/availability"
	"tutor_search_bot/internal/domain/search"
)

var (
	ErrWrongStep         = errors.New("action is not available at this step")
	ErrUnknownOption     = errors.New("unknown option")
	ErrUnknownSlot       = errors.New("slot is not part of the availability grid")
	ErrSubjectRequired   = errors.New("a subject must be selected before continuing")
	ErrSkipUnavailable   = errors.New("this step cannot be skipped")
	ErrAlreadyAtResults  = errors.New("results are already shown")
	ErrRefineUnavailable = errors.New("refinement is only available once results are shown")
	ErrInvalidRating     = errors.New("rating must be a number")
)

// Catalog lists the selectable subject and level identifiers. An empty
// list accepts any non-empty identifier.
type Catalog struct {
	Subjects []string
	Levels   []string
}

func (c Catalog) HasSubject(id string) bool { return contains(c.Subjects, id) }
func (c Catalog) HasLevel(id string) bool   { return contains(c.Levels, id) }

func contains(list []string, id string) bool {
	if id == "" {
		return false
	}
	if len(list) == 0 {
		return true
	}
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

// Transition is the outcome of a step change. Search is set when the
// caller must run a search with the current criteria.
type Transition struct {
	Step   Step
	Search bool
}

// State is the wizard state machine for one session. It is not safe for
// concurrent use; callers serialise access.
type State struct {
	step     Step
	criteria search.Criteria
	catalog  Catalog
	grid     availability.Grid
	renderer Renderer
}

// New creates a wizard at step 1 with every filter unset.
func New(catalog Catalog, grid availability.Grid, renderer Renderer) *State {
	return &State{
		step:     StepSubject,
		catalog:  catalog,
		grid:     grid,
		renderer: renderer,
	}
}

// Start paints the current step. Call once after New.
func (s *State) Start() {
	s.emitStep()
}

func (s *State) Step() Step { return s.step }

func (s *State) Catalog() Catalog { return s.catalog }

func (s *State) Grid() availability.Grid { return s.grid }

// Criteria returns a snapshot of the accumulated filters.
func (s *State) Criteria() search.Criteria { return s.criteria.Clone() }

// CanContinue reports whether the step 1 continue button is enabled.
func (s *State) CanContinue() bool {
	return s.step != StepSubject || s.criteria.Subject != nil
}

// SelectSubject records the subject. It does not change step.
func (s *State) SelectSubject(id string) error {
	if s.step != StepSubject {
		return ErrWrongStep
	}
	if !s.catalog.HasSubject(id) {
		return fmt.Errorf("subject %q: %w", id, ErrUnknownOption)
	}
	s.criteria.Subject = search.StringPtr(id)
	s.renderer.RenderStep(s.step, s.Criteria())
	return nil
}

// SelectLevel records the level. It does not advance.
func (s *State) SelectLevel(id string) error {
	if s.step != StepLevel {
		return ErrWrongStep
	}
	if !s.catalog.HasLevel(id) {
		return fmt.Errorf("level %q: %w", id, ErrUnknownOption)
	}
	s.criteria.Level = search.StringPtr(id)
	s.renderer.RenderStep(s.step, s.Criteria())
	return nil
}

// ToggleSlot flips a grid cell and returns its new membership.
func (s *State) ToggleSlot(slot availability.Slot) (bool, error) {
	if s.step != StepAvailability {
		return false, ErrWrongStep
	}
	if !s.grid.Contains(slot) {
		return false, fmt.Errorf("%s: %w", slot, ErrUnknownSlot)
	}
	if s.criteria.Availabilities == nil {
		s.criteria.Availabilities = &availability.Selector{}
	}
	selected := s.criteria.Availabilities.Toggle(slot)
	if s.criteria.Availabilities.Len() == 0 {
		s.criteria.Availabilities = nil
	}
	s.renderer.RenderAvailabilityGrid(s.grid, s.criteria.Availabilities.Clone())
	return selected, nil
}

// Advance moves to the next step. Leaving the last input step reaches
// the results state and asks for a search.
func (s *State) Advance() (Transition, error) {
	switch {
	case s.step.ShowsResults():
		return Transition{Step: s.step}, ErrAlreadyAtResults
	case s.step == StepSubject && s.criteria.Subject == nil:
		return Transition{Step: s.step}, ErrSubjectRequired
	}

	s.step++
	s.emitStep()
	return Transition{Step: s.step, Search: s.step.ShowsResults()}, nil
}

// Skip clears the current step's filter. On the level step it advances;
// on the availability step it goes straight to results without painting
// an intermediate step.
func (s *State) Skip() (Transition, error) {
	switch s.step {
	case StepLevel:
		s.criteria.Level = nil
		s.step++
		s.emitStep()
		return Transition{Step: s.step}, nil
	case StepAvailability:
		s.criteria.Availabilities = nil
		s.step = StepResults
		s.renderer.ShowResults()
		return Transition{Step: s.step, Search: true}, nil
	default:
		return Transition{Step: s.step}, ErrSkipUnavailable
	}
}

// Refine applies the post-results form. Blank inputs unset the field.
func (s *State) Refine(queryText, ratingText string) (Transition, error) {
	if !s.step.ShowsResults() {
		return Transition{Step: s.step}, ErrRefineUnavailable
	}

	rating, err := parseRating(ratingText)
	if err != nil {
		return Transition{Step: s.step}, err
	}

	if q := strings.TrimSpace(queryText); q != "" {
		s.criteria.Query = search.StringPtr(q)
	} else {
		s.criteria.Query = nil
	}
	s.criteria.Rating = rating
	return Transition{Step: s.step, Search: true}, nil
}

// Reset returns to step 1 with every filter unset.
func (s *State) Reset() {
	s.step = StepSubject
	s.criteria = search.Criteria{}
	s.renderer.ResetVisualSelections()
	s.emitStep()
}

func (s *State) emitStep() {
	s.renderer.RenderStep(s.step, s.Criteria())
	s.renderer.RenderProgress(Progress(s.step))
	switch {
	case s.step == StepAvailability:
		s.renderer.RenderAvailabilityGrid(s.grid, s.criteria.Availabilities.Clone())
	case s.step.ShowsResults():
		s.renderer.ShowResults()
	}
}

func parseRating(text string) (*float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%q: %w", text, ErrInvalidRating)
	}
	return &v, nil
}
