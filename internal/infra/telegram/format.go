package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/telebot.v3"

	"tutor_search_bot/internal/domain/availability"
	"tutor_search_bot/internal/domain/search"
	"tutor_search_bot/internal/domain/wizard"
)

// Callback endpoints. Payload fields are joined with "|".
const (
	uniqueSubject = "subject"
	uniqueLevel   = "level"
	uniqueNext    = "next"
	uniqueSkip    = "skip"
	uniqueSlot    = "slot"
	uniqueSearch  = "search"
	uniqueReset   = "reset"
	uniqueNoop    = "noop"
)

const (
	progressBarWidth = 12

	markSelected = "✅"
	markEmpty    = "▫️"
)

var stepTitles = map[wizard.Step]string{
	wizard.StepSubject:      "Subject",
	wizard.StepLevel:        "Level",
	wizard.StepAvailability: "Availability",
}

// progressText renders the per-step markers and the percentage bar.
func progressText(current wizard.Step, fraction float64) string {
	var b strings.Builder
	for s := wizard.StepSubject; s <= wizard.StepAvailability; s++ {
		if s > wizard.StepSubject {
			b.WriteString("  ")
		}
		switch {
		case s < current:
			b.WriteString("● ")
		case s == current:
			b.WriteString("◉ ")
		default:
			b.WriteString("○ ")
		}
		b.WriteString(stepTitles[s])
	}
	b.WriteByte('\n')

	filled := int(fraction*progressBarWidth + 0.5)
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	if filled < 0 {
		filled = 0
	}
	b.WriteString(strings.Repeat("▓", filled))
	b.WriteString(strings.Repeat("░", progressBarWidth-filled))
	fmt.Fprintf(&b, " %d%%", int(fraction*100+0.5))
	return b.String()
}

func stepBody(step wizard.Step, criteria search.Criteria) string {
	switch step {
	case wizard.StepSubject:
		return "Step 1 of 3: What subject do you need help with?"
	case wizard.StepLevel:
		body := "Step 2 of 3: Which level? You can skip this."
		if criteria.Subject != nil {
			body = "Subject: " + *criteria.Subject + "\n" + body
		}
		return body
	case wizard.StepAvailability:
		return "Step 3 of 3: When are you available? Tap the slots that suit you, then search."
	default:
		return "Results are below.\nUse /refine <min-rating|-> [keywords] to narrow them down, or start over."
	}
}

func optionRows(markup *telebot.ReplyMarkup, unique string, options []string, selected *string) []telebot.Row {
	const perRow = 2
	var rows []telebot.Row
	var row []telebot.Btn
	for _, opt := range options {
		label := opt
		if selected != nil && *selected == opt {
			label = markSelected + " " + opt
		}
		row = append(row, markup.Data(label, unique, opt))
		if len(row) == perRow {
			rows = append(rows, markup.Row(row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, markup.Row(row...))
	}
	return rows
}

func subjectKeyboard(options []string, criteria search.Criteria) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	rows := optionRows(markup, uniqueSubject, options, criteria.Subject)
	if criteria.Subject != nil {
		rows = append(rows, markup.Row(markup.Data("Continue ➡️", uniqueNext)))
	} else {
		rows = append(rows, markup.Row(markup.Data("Choose a subject to continue", uniqueNoop)))
	}
	markup.Inline(rows...)
	return markup
}

func levelKeyboard(options []string, criteria search.Criteria) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	rows := optionRows(markup, uniqueLevel, options, criteria.Level)
	rows = append(rows, markup.Row(
		markup.Data("Skip", uniqueSkip),
		markup.Data("Continue ➡️", uniqueNext),
	))
	markup.Inline(rows...)
	return markup
}

// gridKeyboard lays windows out as rows and days as columns.
func gridKeyboard(grid availability.Grid, selected *availability.Selector) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}

	header := []telebot.Btn{markup.Data("·", uniqueNoop)}
	for _, day := range grid.Days {
		header = append(header, markup.Data(day.Short(), uniqueNoop))
	}
	rows := []telebot.Row{markup.Row(header...)}

	for _, w := range grid.Windows {
		row := []telebot.Btn{markup.Data(windowLabel(w), uniqueNoop)}
		for _, day := range grid.Days {
			slot := availability.NewSlot(day, w)
			mark := markEmpty
			if selected.Contains(slot) {
				mark = markSelected
			}
			row = append(row, markup.Data(mark, uniqueSlot, string(day), w.Start.String(), w.End.String()))
		}
		rows = append(rows, markup.Row(row...))
	}

	rows = append(rows, markup.Row(
		markup.Data("Skip", uniqueSkip),
		markup.Data("🔎 Search", uniqueSearch),
	))
	markup.Inline(rows...)
	return markup
}

func resultsKeyboard() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("🔄 New search", uniqueReset)))
	return markup
}

func retryKeyboard() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("Try again", uniqueReset)))
	return markup
}

// windowLabel is the compact "08-10" row label.
func windowLabel(w availability.Window) string {
	if w.Start.Minute == 0 && w.End.Minute == 0 {
		return fmt.Sprintf("%02d-%02d", w.Start.Hour, w.End.Hour)
	}
	return w.String()
}

func tutorCard(t search.Tutor) string {
	var b strings.Builder
	name := t.Name
	if strings.TrimSpace(name) == "" {
		name = "Anonymous Tutor"
	}
	subject := t.Subject
	if strings.TrimSpace(subject) == "" {
		subject = "Subject not specified"
	}

	b.WriteString("👤 " + name + "\n")
	b.WriteString("📚 " + subject)
	if t.Level != "" {
		b.WriteString(" · " + t.Level)
	}
	b.WriteByte('\n')
	if t.Rating != nil {
		b.WriteString("⭐ " + strconv.FormatFloat(*t.Rating, 'f', 1, 64) + "\n")
	}
	if t.Description != "" {
		b.WriteString(t.Description + "\n")
	}
	if len(t.Availabilities) > 0 {
		times := make([]string, 0, len(t.Availabilities))
		for _, a := range t.Availabilities {
			times = append(times, a.String())
		}
		b.WriteString("🕒 " + strings.Join(times, ", ") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func resultsText(view wizard.ResultView) string {
	if view.Kind == wizard.NoResults {
		return "No tutors found\nTry adjusting your search criteria"
	}
	cards := make([]string, 0, len(view.Tutors)+1)
	for _, t := range view.Tutors {
		cards = append(cards, tutorCard(t))
	}
	if s := view.Summary; s != nil {
		cards = append(cards, fmt.Sprintf("Showing %d of %d results\nSearch completed in %d ms", s.Shown, s.Total, s.TimeTakenMs))
	}
	return strings.Join(cards, "\n\n")
}

func errorText(message string) string {
	return "⚠️ Search Error\n" + message
}

const loadingText = "🔎 Searching for tutors..."

const helpText = `I help you find a tutor in three steps:

1. Pick a subject.
2. Pick a level, or skip it.
3. Tap the time slots that suit you, then search.

Commands:
/start - begin a new search
/refine <min-rating|-> [keywords] - narrow the current results, e.g. /refine 4.5 calculus
/reset - start over
/help - show this message`
