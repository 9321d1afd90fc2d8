package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutor_search_bot/internal/domain/availability"
	"tutor_search_bot/internal/domain/search"
	"tutor_search_bot/internal/domain/wizard"
)

func TestProgressText(t *testing.T) {
	assert.Equal(t, "◉ Subject  ○ Level  ○ Availability\n░░░░░░░░░░░░ 0%", progressText(wizard.StepSubject, 0))
	assert.Equal(t, "● Subject  ◉ Level  ○ Availability\n▓▓▓▓░░░░░░░░ 33%", progressText(wizard.StepLevel, wizard.Progress(wizard.StepLevel)))
	assert.Equal(t, "● Subject  ● Level  ● Availability\n▓▓▓▓▓▓▓▓▓▓▓▓ 100%", progressText(wizard.StepResults, 1))
}

func TestSubjectKeyboardLocksContinueUntilChosen(t *testing.T) {
	options := []string{"Math", "Physics", "Art"}

	markup := subjectKeyboard(options, search.Criteria{})
	rows := markup.InlineKeyboard
	require.Len(t, rows, 3)
	assert.Equal(t, "Math", rows[0][0].Text)
	assert.Equal(t, uniqueSubject, rows[0][0].Unique)
	assert.Equal(t, "Math", rows[0][0].Data)
	assert.Equal(t, uniqueNoop, rows[2][0].Unique)

	markup = subjectKeyboard(options, search.Criteria{Subject: search.StringPtr("Physics")})
	rows = markup.InlineKeyboard
	assert.Equal(t, "✅ Physics", rows[0][1].Text)
	assert.Equal(t, uniqueNext, rows[2][0].Unique)
}

func TestGridKeyboardMarksSelection(t *testing.T) {
	grid := availability.DefaultGrid()
	sel := availability.NewSelector(availability.NewSlot(availability.Wednesday, availability.Windows[3]))

	rows := gridKeyboard(grid, sel).InlineKeyboard
	require.Len(t, rows, len(grid.Windows)+2)

	header := rows[0]
	require.Len(t, header, len(grid.Days)+1)
	assert.Equal(t, "Mon", header[1].Text)

	row := rows[4] // 14:00-16:00
	assert.Equal(t, "14-16", row[0].Text)
	wed := row[3]
	assert.Equal(t, markSelected, wed.Text)
	assert.Equal(t, uniqueSlot, wed.Unique)
	assert.Equal(t, "Wednesday|14:00|16:00", wed.Data)
	assert.Equal(t, markEmpty, row[1].Text)

	last := rows[len(rows)-1]
	assert.Equal(t, uniqueSkip, last[0].Unique)
	assert.Equal(t, uniqueSearch, last[1].Unique)
}

func TestTutorCardFallbacks(t *testing.T) {
	card := tutorCard(search.Tutor{})
	assert.Contains(t, card, "Anonymous Tutor")
	assert.Contains(t, card, "Subject not specified")

	card = tutorCard(search.Tutor{
		Name:    "Ada",
		Subject: "Math",
		Level:   "AP",
		Rating:  search.FloatPtr(4.5),
		Availabilities: []search.TutorAvailability{
			{Day: "Monday", Start: availability.NewTime(8, 0), End: availability.NewTime(10, 0)},
		},
	})
	assert.Equal(t, "👤 Ada\n📚 Math · AP\n⭐ 4.5\n🕒 Monday 08:00-10:00", card)
}

func TestResultsText(t *testing.T) {
	assert.Equal(t, "No tutors found\nTry adjusting your search criteria", resultsText(wizard.ResultView{Kind: wizard.NoResults}))

	text := resultsText(wizard.ResultView{
		Kind:    wizard.ResultsList,
		Tutors:  []search.Tutor{{Name: "Ada", Subject: "Math"}},
		Summary: &wizard.Summary{Shown: 1, Total: 7, TimeTakenMs: 42},
	})
	assert.Contains(t, text, "Showing 1 of 7 results")
	assert.Contains(t, text, "Search completed in 42 ms")
}
