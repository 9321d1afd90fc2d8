package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"tutor_search_bot/internal/app"
	"tutor_search_bot/internal/domain/availability"
	"tutor_search_bot/internal/domain/wizard"
)

// WizardActions is the chat-facing wizard API, implemented by
// *app.WizardService.
type WizardActions interface {
	Start(ctx context.Context, chatID int64)
	Reset(ctx context.Context, chatID int64) error
	SelectSubject(ctx context.Context, chatID int64, subject string) error
	SelectLevel(ctx context.Context, chatID int64, level string) error
	ToggleSlot(ctx context.Context, chatID int64, slot availability.Slot) (bool, error)
	Advance(ctx context.Context, chatID int64) (wizard.Transition, error)
	Skip(ctx context.Context, chatID int64) (wizard.Transition, error)
	Refine(ctx context.Context, chatID int64, queryText, ratingText string) error
}

var _ WizardActions = (*app.WizardService)(nil)

const refineUsage = "Usage: /refine <min-rating|-> [keywords]\nExample: /refine 4.5 calculus"

// WizardHandlers turns bot updates into wizard actions. Each method
// returns the short notice shown to the user, empty when none is needed.
type WizardHandlers struct {
	ctx     context.Context
	actions WizardActions
	logger  *logrus.Entry
}

func NewWizardHandlers(ctx context.Context, actions WizardActions, baseLogger *logrus.Entry) *WizardHandlers {
	return &WizardHandlers{
		ctx:     ctx,
		actions: actions,
		logger:  baseLogger.WithField("handler_group", "wizard"),
	}
}

// RegisterWizardHandlers wires commands and inline buttons to h.
func RegisterWizardHandlers(b *telebot.Bot, h *WizardHandlers) {
	b.Handle("/start", func(c telebot.Context) error {
		h.Start(c.Chat().ID)
		return nil
	})
	b.Handle("/help", func(c telebot.Context) error {
		return c.Send(helpText)
	})
	b.Handle("/reset", func(c telebot.Context) error {
		h.Reset(c.Chat().ID)
		return nil
	})
	b.Handle("/refine", func(c telebot.Context) error {
		if reply := h.Refine(c.Chat().ID, c.Message().Payload); reply != "" {
			return c.Send(reply)
		}
		return nil
	})

	callbacks := map[string]func(chatID int64, data string) string{
		uniqueSubject: h.SelectSubject,
		uniqueLevel:   h.SelectLevel,
		uniqueSlot:    h.ToggleSlot,
		uniqueNext:    func(chatID int64, _ string) string { return h.Advance(chatID) },
		uniqueSearch:  func(chatID int64, _ string) string { return h.Advance(chatID) },
		uniqueSkip:    func(chatID int64, _ string) string { return h.Skip(chatID) },
		uniqueReset:   func(chatID int64, _ string) string { return h.Reset(chatID) },
		uniqueNoop:    func(int64, string) string { return "" },
	}
	for unique, fn := range callbacks {
		b.Handle(&telebot.Btn{Unique: unique}, func(c telebot.Context) error {
			reply := fn(c.Chat().ID, c.Callback().Data)
			return c.Respond(&telebot.CallbackResponse{Text: reply})
		})
	}
}

func (h *WizardHandlers) log(chatID int64, action string) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{"chat_id": chatID, "action": action})
}

func (h *WizardHandlers) Start(chatID int64) {
	h.log(chatID, "start").Info("Processing /start command")
	h.actions.Start(h.ctx, chatID)
}

// Reset reinitialises the wizard, starting one if the session expired.
func (h *WizardHandlers) Reset(chatID int64) string {
	logCtx := h.log(chatID, "reset")
	err := h.actions.Reset(h.ctx, chatID)
	if errors.Is(err, app.ErrNoSession) {
		logCtx.Info("No session to reset, starting a new one")
		h.actions.Start(h.ctx, chatID)
		return ""
	}
	return h.reply(logCtx, err, "")
}

func (h *WizardHandlers) SelectSubject(chatID int64, subject string) string {
	return h.reply(h.log(chatID, "subject"), h.actions.SelectSubject(h.ctx, chatID, subject), "")
}

func (h *WizardHandlers) SelectLevel(chatID int64, level string) string {
	return h.reply(h.log(chatID, "level"), h.actions.SelectLevel(h.ctx, chatID, level), "")
}

func (h *WizardHandlers) ToggleSlot(chatID int64, data string) string {
	logCtx := h.log(chatID, "slot").WithField("data", data)
	slot, err := parseSlotData(data)
	if err != nil {
		logCtx.WithError(err).Warn("Malformed slot callback")
		return "Unknown time slot"
	}
	selected, err := h.actions.ToggleSlot(h.ctx, chatID, slot)
	if err != nil {
		return h.reply(logCtx, err, "")
	}
	if selected {
		return "Added " + slot.String()
	}
	return "Removed " + slot.String()
}

func (h *WizardHandlers) Advance(chatID int64) string {
	tr, err := h.actions.Advance(h.ctx, chatID)
	return h.reply(h.log(chatID, "advance"), err, searchingNotice(tr))
}

func (h *WizardHandlers) Skip(chatID int64) string {
	tr, err := h.actions.Skip(h.ctx, chatID)
	return h.reply(h.log(chatID, "skip"), err, searchingNotice(tr))
}

// Refine handles the /refine payload.
func (h *WizardHandlers) Refine(chatID int64, payload string) string {
	logCtx := h.log(chatID, "refine")
	ratingText, queryText, ok := parseRefineArgs(payload)
	if !ok {
		return refineUsage
	}
	logCtx = logCtx.WithFields(logrus.Fields{"rating": ratingText, "query": queryText})
	logCtx.Info("Processing /refine command")
	return h.reply(logCtx, h.actions.Refine(h.ctx, chatID, queryText, ratingText), "")
}

func (h *WizardHandlers) reply(logCtx *logrus.Entry, err error, ok string) string {
	if err == nil {
		return ok
	}
	msg, known := errorNotice(err)
	if known {
		logCtx.WithError(err).Debug("Wizard action rejected")
	} else {
		logCtx.WithError(err).Error("Wizard action failed")
	}
	return msg
}

func searchingNotice(tr wizard.Transition) string {
	if tr.Search {
		return "Searching..."
	}
	return ""
}

// errorNotice maps wizard errors to user-facing text. known is false for
// errors the user cannot cause.
func errorNotice(err error) (msg string, known bool) {
	switch {
	case errors.Is(err, app.ErrNoSession):
		return "Send /start to begin a search", true
	case errors.Is(err, wizard.ErrSubjectRequired):
		return "Please choose a subject first", true
	case errors.Is(err, wizard.ErrUnknownOption):
		return "Unknown option", true
	case errors.Is(err, wizard.ErrUnknownSlot):
		return "Unknown time slot", true
	case errors.Is(err, wizard.ErrInvalidRating):
		return "Rating must be a number, e.g. 4.5, or - for any rating", true
	case errors.Is(err, wizard.ErrRefineUnavailable):
		return "Run a search first, then refine it", true
	case errors.Is(err, wizard.ErrWrongStep),
		errors.Is(err, wizard.ErrSkipUnavailable),
		errors.Is(err, wizard.ErrAlreadyAtResults):
		return "That button is no longer active", true
	default:
		return "Something went wrong, please try again", false
	}
}

// parseSlotData reads a "day|HH:MM|HH:MM" slot payload.
func parseSlotData(data string) (availability.Slot, error) {
	parts := strings.Split(data, "|")
	if len(parts) != 3 {
		return availability.Slot{}, fmt.Errorf("invalid slot payload %q", data)
	}
	return availability.ParseSlot(parts[0], parts[1], parts[2])
}

// parseRefineArgs splits "/refine <min-rating|-> [keywords...]". A "-"
// rating means no rating filter. ok is false when the payload is empty.
func parseRefineArgs(payload string) (ratingText, queryText string, ok bool) {
	fields := strings.Fields(payload)
	if len(fields) == 0 {
		return "", "", false
	}
	ratingText = fields[0]
	if ratingText == "-" {
		ratingText = ""
	}
	return ratingText, strings.Join(fields[1:], " "), true
}
