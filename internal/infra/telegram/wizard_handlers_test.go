package telegram

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutor_search_bot/internal/app"
	"tutor_search_bot/internal/domain/availability"
	"tutor_search_bot/internal/domain/wizard"
)

type fakeActions struct {
	calls []string
	err   error
	tr    wizard.Transition
	slot  availability.Slot
}

func (f *fakeActions) Start(_ context.Context, chatID int64) {
	f.calls = append(f.calls, fmt.Sprintf("start:%d", chatID))
}

func (f *fakeActions) Reset(context.Context, int64) error {
	f.calls = append(f.calls, "reset")
	return f.err
}

func (f *fakeActions) SelectSubject(_ context.Context, _ int64, subject string) error {
	f.calls = append(f.calls, "subject:"+subject)
	return f.err
}

func (f *fakeActions) SelectLevel(_ context.Context, _ int64, level string) error {
	f.calls = append(f.calls, "level:"+level)
	return f.err
}

func (f *fakeActions) ToggleSlot(_ context.Context, _ int64, slot availability.Slot) (bool, error) {
	f.calls = append(f.calls, "slot")
	f.slot = slot
	return true, f.err
}

func (f *fakeActions) Advance(context.Context, int64) (wizard.Transition, error) {
	f.calls = append(f.calls, "advance")
	return f.tr, f.err
}

func (f *fakeActions) Skip(context.Context, int64) (wizard.Transition, error) {
	f.calls = append(f.calls, "skip")
	return f.tr, f.err
}

func (f *fakeActions) Refine(_ context.Context, _ int64, queryText, ratingText string) error {
	f.calls = append(f.calls, fmt.Sprintf("refine:%q:%q", queryText, ratingText))
	return f.err
}

func newTestHandlers(actions WizardActions) *WizardHandlers {
	logger, _ := logtest.NewNullLogger()
	return NewWizardHandlers(context.Background(), actions, logrus.NewEntry(logger))
}

func TestParseRefineArgs(t *testing.T) {
	tests := []struct {
		payload    string
		rating     string
		query      string
		expectedOK bool
	}{
		{payload: "", expectedOK: false},
		{payload: "   ", expectedOK: false},
		{payload: "4.5", rating: "4.5", expectedOK: true},
		{payload: "- calculus", query: "calculus", expectedOK: true},
		{payload: "4  linear   algebra ", rating: "4", query: "linear algebra", expectedOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			rating, query, ok := parseRefineArgs(tt.payload)
			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.rating, rating)
			assert.Equal(t, tt.query, query)
		})
	}
}

func TestParseSlotData(t *testing.T) {
	slot, err := parseSlotData("Wednesday|14:00|16:00")
	require.NoError(t, err)
	assert.Equal(t, availability.NewSlot(availability.Wednesday, availability.Windows[3]), slot)

	_, err = parseSlotData("Wednesday|14:00")
	assert.Error(t, err)
	_, err = parseSlotData("Someday|14:00|16:00")
	assert.Error(t, err)
}

func TestErrorNotice(t *testing.T) {
	msg, known := errorNotice(fmt.Errorf("subject %q: %w", "Art", wizard.ErrUnknownOption))
	assert.True(t, known)
	assert.Equal(t, "Unknown option", msg)

	msg, known = errorNotice(app.ErrNoSession)
	assert.True(t, known)
	assert.Equal(t, "Send /start to begin a search", msg)

	_, known = errorNotice(errors.New("disk on fire"))
	assert.False(t, known)
}

func TestHandlersRouteToActions(t *testing.T) {
	actions := &fakeActions{}
	h := newTestHandlers(actions)

	assert.Empty(t, h.SelectSubject(1, "Math"))
	assert.Equal(t, "Added Monday 08:00-10:00", h.ToggleSlot(1, "Monday|08:00|10:00"))
	assert.Equal(t, availability.NewSlot(availability.Monday, availability.Windows[0]), actions.slot)
	assert.Equal(t, "Unknown time slot", h.ToggleSlot(1, "garbage"))

	actions.tr = wizard.Transition{Step: wizard.StepResults, Search: true}
	assert.Equal(t, "Searching...", h.Advance(1))
	assert.Empty(t, h.Refine(1, "- calculus"))
	assert.Equal(t, refineUsage, h.Refine(1, ""))

	assert.Equal(t, []string{"subject:Math", "slot", "advance", `refine:"calculus":""`}, actions.calls)
}

func TestHandlersReportRejections(t *testing.T) {
	actions := &fakeActions{err: wizard.ErrSubjectRequired}
	h := newTestHandlers(actions)
	assert.Equal(t, "Please choose a subject first", h.Advance(1))

	actions.err = fmt.Errorf("%q: %w", "great", wizard.ErrInvalidRating)
	assert.Contains(t, h.Refine(1, "great"), "Rating must be a number")
}

func TestResetStartsWhenSessionExpired(t *testing.T) {
	actions := &fakeActions{err: app.ErrNoSession}
	h := newTestHandlers(actions)

	assert.Empty(t, h.Reset(9))
	assert.Equal(t, []string{"reset", "start:9"}, actions.calls)
}
