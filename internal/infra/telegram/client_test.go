package telegram

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/telebot.v3"
)

func TestIsNotModified(t *testing.T) {
	assert.True(t, isNotModified(telebot.ErrSameMessageContent))
	assert.True(t, isNotModified(telebot.ErrMessageNotModified))
	assert.True(t, isNotModified(fmt.Errorf("edit wizard message: %w", telebot.ErrSameMessageContent)))

	assert.False(t, isNotModified(telebot.ErrChatNotFound))
	assert.False(t, isNotModified(errors.New("Bad Request: message is not modified")))
}

func TestStoredMessageSig(t *testing.T) {
	id, chatID := stored(42, 17).MessageSig()
	assert.Equal(t, "17", id)
	assert.Equal(t, int64(42), chatID)
}
