package wizard

// Step is the wizard cursor. Values above StepAvailability mean results
// are on screen.
type Step int

const (
	StepSubject      Step = 1
	StepLevel        Step = 2
	StepAvailability Step = 3
	StepResults      Step = 4
)

// InputSteps is the number of filter screens before results.
const InputSteps = 3

// IsInput reports whether the step collects a filter.
func (s Step) IsInput() bool {
	return s >= StepSubject && s <= StepAvailability
}

// ShowsResults reports whether the step is past the last input step.
func (s Step) ShowsResults() bool {
	return s > StepAvailability
}

func (s Step) String() string {
	switch s {
	case StepSubject:
		return "subject"
	case StepLevel:
		return "level"
	case StepAvailability:
		return "availability"
	default:
		if s.ShowsResults() {
			return "results"
		}
		return "unknown"
	}
}

// Progress is (step-1)/InputSteps capped at 1.
func Progress(s Step) float64 {
	p := float64(s-1) / float64(InputSteps)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
