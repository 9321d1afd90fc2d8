package telegram

import (
	"errors"
	"strconv"

	"gopkg.in/telebot.v3"
)

// Messenger is the subset of chat operations the renderer needs.
type Messenger interface {
	Send(chatID int64, text string, markup *telebot.ReplyMarkup) (messageID int, err error)
	Edit(chatID int64, messageID int, text string, markup *telebot.ReplyMarkup) error
	Delete(chatID int64, messageID int) error
}

// TelebotAdapter implements Messenger using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

var _ Messenger = (*TelebotAdapter)(nil)

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// Send posts a text message and returns its ID.
func (tba *TelebotAdapter) Send(chatID int64, text string, markup *telebot.ReplyMarkup) (int, error) {
	msg, err := tba.bot.Send(telebot.ChatID(chatID), text, &telebot.SendOptions{ReplyMarkup: markup})
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// Edit replaces the text and keyboard of a sent message. Edits that
// change nothing are not an error.
func (tba *TelebotAdapter) Edit(chatID int64, messageID int, text string, markup *telebot.ReplyMarkup) error {
	_, err := tba.bot.Edit(stored(chatID, messageID), text, &telebot.SendOptions{ReplyMarkup: markup})
	if err != nil && isNotModified(err) {
		return nil
	}
	return err
}

func (tba *TelebotAdapter) Delete(chatID int64, messageID int) error {
	return tba.bot.Delete(stored(chatID, messageID))
}

func stored(chatID int64, messageID int) telebot.StoredMessage {
	return telebot.StoredMessage{MessageID: strconv.Itoa(messageID), ChatID: chatID}
}

func isNotModified(err error) bool {
	return errors.Is(err, telebot.ErrSameMessageContent) || errors.Is(err, telebot.ErrMessageNotModified)
}
