package shop

import (
	"context"
	"errors"
	"sync"
	"testing"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/sneakerbot/core/telegram/keyboard"
	"github.com/m3rciful/sneakerbot/internal/catalog"
	"github.com/m3rciful/sneakerbot/internal/session"
)

const (
	testAdmin int64 = 1
	testUser  int64 = 2
)

type outMessage struct {
	ID     int
	Text   string
	Photo  string
	Markup *tele.ReplyMarkup
}

type edit struct {
	MessageID int
	Text      string
	Markup    *tele.ReplyMarkup
}

type fakeMessenger struct {
	mu      sync.Mutex
	nextID  int
	sent    []outMessage
	edits   []edit
	deleted []int
	answers []Notice

	failPhoto bool
	editErr   error
}

func (f *fakeMessenger) SendText(_ context.Context, _ int64, text string, markup *tele.ReplyMarkup) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.sent = append(f.sent, outMessage{ID: f.nextID, Text: text, Markup: markup})
	return f.nextID, nil
}

func (f *fakeMessenger) SendPhoto(_ context.Context, _ int64, photoURL, caption string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPhoto {
		return 0, &RenderError{Op: "send_photo", Err: errors.New("telegram: wrong file identifier (400)")}
	}
	f.nextID++
	f.sent = append(f.sent, outMessage{ID: f.nextID, Text: caption, Photo: photoURL})
	return f.nextID, nil
}

func (f *fakeMessenger) EditText(_ context.Context, _ int64, messageID int, text string, markup *tele.ReplyMarkup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editErr != nil {
		return f.editErr
	}
	f.edits = append(f.edits, edit{MessageID: messageID, Text: text, Markup: markup})
	return nil
}

func (f *fakeMessenger) Delete(_ context.Context, _ int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeMessenger) Answer(_ context.Context, _ string, text string, alert bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, Notice{Text: text, Alert: alert})
	return nil
}

func (f *fakeMessenger) texts() []string {
	out := make([]string, len(f.sent))
	for i, m := range f.sent {
		out[i] = m.Text
	}
	return out
}

func (f *fakeMessenger) last() outMessage {
	return f.sent[len(f.sent)-1]
}

func (f *fakeMessenger) lastEdit() edit {
	return f.edits[len(f.edits)-1]
}

func (f *fakeMessenger) reset() {
	f.sent, f.edits, f.deleted, f.answers = nil, nil, nil, nil
}

type fixture struct {
	shop     *Shop
	out      *fakeMessenger
	store    *catalog.MemoryStore
	sessions *session.MemoryStore
}

func newFixture(t *testing.T, shoes ...catalog.NewShoe) *fixture {
	t.Helper()
	f := &fixture{
		out:      &fakeMessenger{nextID: 100},
		store:    catalog.NewMemoryStore(shoes...),
		sessions: session.NewMemoryStore(),
	}
	f.shop = New(Config{AdminID: testAdmin, Name: "DoomerSneakers", Contact: "takar28"}, f.store, f.sessions, f.out)
	return f
}

func (f *fixture) tracking(userID int64) session.RenderTracking {
	var tr session.RenderTracking
	f.sessions.Peek(userID, func(s *session.Session) { tr = s.Tracking })
	return tr
}

func (f *fixture) menu(userID int64) []session.MenuID {
	var items []session.MenuID
	f.sessions.Peek(userID, func(s *session.Session) { items = s.Menu.Items() })
	return items
}

func (f *fixture) filter(userID int64) session.Filter {
	var flt session.Filter
	f.sessions.Peek(userID, func(s *session.Session) { flt = s.Filter })
	return flt
}

func press(userID int64, messageID int) Request {
	return Request{UserID: userID, ChatID: userID, MessageID: messageID, CallbackID: "cb"}
}

func typed(userID int64) Request {
	return Request{UserID: userID, ChatID: userID}
}

func buttonData(markup *tele.ReplyMarkup) []string {
	var out []string
	for _, b := range keyboard.Flatten(markup) {
		out = append(out, b.Data)
	}
	return out
}

func strPtr(s string) *string { return &s }

func shoe(name, brand string, size float64, price int64) catalog.NewShoe {
	return catalog.NewShoe{Name: name, Brand: brand, Size: size, Price: price}
}
