package telegram

import (
	"sync"

	"gopkg.in/telebot.v3"
)

type sentMessage struct {
	ID     int
	Text   string
	Markup *telebot.ReplyMarkup
}

// fakeMessenger keeps the chat contents in memory.
type fakeMessenger struct {
	mu       sync.Mutex
	nextID   int
	messages map[int]sentMessage
	sends    int
	edits    int
	deletes  []int
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{messages: make(map[int]sentMessage)}
}

func (f *fakeMessenger) Send(_ int64, text string, markup *telebot.ReplyMarkup) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.sends++
	f.messages[f.nextID] = sentMessage{ID: f.nextID, Text: text, Markup: markup}
	return f.nextID, nil
}

func (f *fakeMessenger) Edit(_ int64, id int, text string, markup *telebot.ReplyMarkup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits++
	f.messages[id] = sentMessage{ID: id, Text: text, Markup: markup}
	return nil
}

func (f *fakeMessenger) Delete(_ int64, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	delete(f.messages, id)
	return nil
}

func (f *fakeMessenger) message(id int) (sentMessage, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.messages[id]
	return m, ok
}

func (f *fakeMessenger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}
