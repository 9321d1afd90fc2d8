package telegram

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutor_search_bot/internal/domain/availability"
	"tutor_search_bot/internal/domain/search"
	"tutor_search_bot/internal/domain/wizard"
)

var testCatalog = wizard.Catalog{
	Subjects: []string{"Math", "Physics"},
	Levels:   []string{"High School", "AP"},
}

func newTestRenderer() (*ChatRenderer, *fakeMessenger) {
	logger, _ := logtest.NewNullLogger()
	m := newFakeMessenger()
	return NewChatRenderer(7, m, testCatalog, logrus.NewEntry(logger)), m
}

func TestRendererEditsSingleWizardMessage(t *testing.T) {
	r, m := newTestRenderer()
	st := wizard.New(testCatalog, availability.DefaultGrid(), r)

	st.Start()
	assert.Equal(t, 1, m.sends)
	assert.Equal(t, 0, m.edits, "unchanged progress must not re-edit")

	require.NoError(t, st.SelectSubject("Math"))
	_, err := st.Advance()
	require.NoError(t, err)
	_, err = st.Advance()
	require.NoError(t, err)

	assert.Equal(t, 1, m.sends)
	assert.Equal(t, 1, m.count())
	msg, ok := m.message(1)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "Step 3 of 3")
	assert.Contains(t, msg.Text, "67%")
	assert.Equal(t, uniqueSlot, msg.Markup.InlineKeyboard[1][1].Unique)

	_, err = st.ToggleSlot(availability.NewSlot(availability.Monday, availability.Windows[0]))
	require.NoError(t, err)
	msg, _ = m.message(1)
	assert.Equal(t, markSelected, msg.Markup.InlineKeyboard[1][1].Text)
}

func TestRendererSearchNotices(t *testing.T) {
	r, m := newTestRenderer()
	r.RenderStep(wizard.StepAvailability, search.Criteria{})

	r.ShowResults()
	r.RenderLoading(true)
	r.ClearResults()
	require.Equal(t, 2, m.count())
	loading, ok := m.message(2)
	require.True(t, ok)
	assert.Equal(t, loadingText, loading.Text)

	r.RenderResults(wizard.ResultView{Kind: wizard.NoResults})
	r.RenderLoading(false)

	assert.Equal(t, []int{2}, m.deletes)
	results, ok := m.message(3)
	require.True(t, ok)
	assert.Contains(t, results.Text, "No tutors found")

	wizardMsg, _ := m.message(1)
	assert.Contains(t, wizardMsg.Text, "/refine")
	assert.Equal(t, uniqueReset, wizardMsg.Markup.InlineKeyboard[0][0].Unique)

	r.ClearResults()
	_, ok = m.message(3)
	assert.False(t, ok)
}

func TestRendererErrorOffersRetry(t *testing.T) {
	r, m := newTestRenderer()
	r.ShowResults()
	r.RenderError("HTTP error! status: 503")

	msg, ok := m.message(2)
	require.True(t, ok)
	assert.Equal(t, "⚠️ Search Error\nHTTP error! status: 503", msg.Text)
	require.NotNil(t, msg.Markup)
	assert.Equal(t, "Try again", msg.Markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, uniqueReset, msg.Markup.InlineKeyboard[0][0].Unique)
}

func TestRendererResetDropsNotices(t *testing.T) {
	r, m := newTestRenderer()
	st := wizard.New(testCatalog, availability.DefaultGrid(), r)
	st.Start()

	r.ShowResults()
	r.RenderLoading(true)
	r.RenderResults(wizard.ResultView{Kind: wizard.NoResults})
	require.Equal(t, 3, m.count())

	st.Reset()

	assert.Equal(t, 1, m.count())
	msg, _ := m.message(1)
	assert.Contains(t, msg.Text, "Step 1 of 3")
	assert.Contains(t, msg.Text, "0%")
}
