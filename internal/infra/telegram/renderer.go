package telegram

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"tutor_search_bot/internal/domain/availability"
	"tutor_search_bot/internal/domain/search"
	"tutor_search_bot/internal/domain/wizard"
)

// ChatRenderer paints one chat's wizard. The wizard screen is a single
// message edited in place; loading, results and error notices are
// separate messages it owns and deletes.
type ChatRenderer struct {
	chatID    int64
	messenger Messenger
	catalog   wizard.Catalog
	logger    *logrus.Entry

	mu        sync.Mutex
	step      wizard.Step
	criteria  search.Criteria
	progress  float64
	grid      availability.Grid
	selected  *availability.Selector
	wizardMsg int
	lastSig   string
	loadMsg   int
	resultMsg []int
}

var _ wizard.Renderer = (*ChatRenderer)(nil)

func NewChatRenderer(chatID int64, messenger Messenger, catalog wizard.Catalog, logger *logrus.Entry) *ChatRenderer {
	return &ChatRenderer{
		chatID:    chatID,
		messenger: messenger,
		catalog:   catalog,
		logger:    logger.WithField("chat_id", chatID),
		step:      wizard.StepSubject,
	}
}

func (r *ChatRenderer) RenderStep(step wizard.Step, criteria search.Criteria) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.step = step
	r.criteria = criteria
	r.flush()
}

func (r *ChatRenderer) RenderProgress(fraction float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = fraction
	r.flush()
}

func (r *ChatRenderer) RenderAvailabilityGrid(grid availability.Grid, selected *availability.Selector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grid = grid
	r.selected = selected
	r.flush()
}

// ShowResults switches the wizard message to the results panel.
func (r *ChatRenderer) ShowResults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.step.ShowsResults() {
		r.step = wizard.StepResults
		r.progress = 1
	}
	r.flush()
}

func (r *ChatRenderer) ClearResults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearResults()
}

func (r *ChatRenderer) RenderLoading(loading bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !loading {
		r.deleteMessage(&r.loadMsg)
		return
	}
	if r.loadMsg != 0 {
		return
	}
	id, err := r.messenger.Send(r.chatID, loadingText, nil)
	if err != nil {
		r.logger.WithError(err).Warn("Failed to send loading notice")
		return
	}
	r.loadMsg = id
}

func (r *ChatRenderer) RenderResults(view wizard.ResultView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sendResult(resultsText(view), nil)
}

func (r *ChatRenderer) RenderError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sendResult(errorText(message), retryKeyboard())
}

// ResetVisualSelections drops every notice and forgets the last
// selections so the next step render starts clean.
func (r *ChatRenderer) ResetVisualSelections() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearResults()
	r.deleteMessage(&r.loadMsg)
	r.criteria = search.Criteria{}
	r.selected = nil
	r.progress = 0
}

func (r *ChatRenderer) sendResult(text string, markup *telebot.ReplyMarkup) {
	id, err := r.messenger.Send(r.chatID, text, markup)
	if err != nil {
		r.logger.WithError(err).Error("Failed to send search outcome")
		return
	}
	r.resultMsg = append(r.resultMsg, id)
}

func (r *ChatRenderer) clearResults() {
	for i := range r.resultMsg {
		r.deleteMessage(&r.resultMsg[i])
	}
	r.resultMsg = nil
}

func (r *ChatRenderer) deleteMessage(id *int) {
	if *id == 0 {
		return
	}
	if err := r.messenger.Delete(r.chatID, *id); err != nil {
		r.logger.WithError(err).WithField("message_id", *id).Debug("Failed to delete message")
	}
	*id = 0
}

// flush posts or edits the wizard message when its content changed.
func (r *ChatRenderer) flush() {
	text := progressText(r.step, r.progress) + "\n\n" + stepBody(r.step, r.criteria)
	keys := r.keyboard()
	// Taken before sending, telebot rewrites callback data in place.
	sig := text + "\x00" + keyboardSig(keys)
	if r.wizardMsg != 0 && sig == r.lastSig {
		return
	}

	if r.wizardMsg != 0 {
		err := r.messenger.Edit(r.chatID, r.wizardMsg, text, keys)
		if err == nil {
			r.lastSig = sig
			return
		}
		r.logger.WithError(err).Warn("Failed to edit wizard message, sending a new one")
	}

	id, err := r.messenger.Send(r.chatID, text, keys)
	if err != nil {
		r.logger.WithError(err).Error("Failed to send wizard message")
		return
	}
	r.wizardMsg = id
	r.lastSig = sig
}

func (r *ChatRenderer) keyboard() *telebot.ReplyMarkup {
	switch {
	case r.step == wizard.StepSubject:
		return subjectKeyboard(r.catalog.Subjects, r.criteria)
	case r.step == wizard.StepLevel:
		return levelKeyboard(r.catalog.Levels, r.criteria)
	case r.step == wizard.StepAvailability:
		grid := r.grid
		if len(grid.Days) == 0 {
			grid = availability.DefaultGrid()
		}
		return gridKeyboard(grid, r.selected)
	default:
		return resultsKeyboard()
	}
}

func keyboardSig(m *telebot.ReplyMarkup) string {
	if m == nil {
		return ""
	}
	var b strings.Builder
	for _, row := range m.InlineKeyboard {
		for _, btn := range row {
			b.WriteString(btn.Text + "\x1f" + btn.Unique + "\x1f" + btn.Data + "\x1e")
		}
		b.WriteByte('\n')
	}
	return b.String()
}
