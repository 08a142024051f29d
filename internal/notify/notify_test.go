package notify

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gyst/internal/logging"
	"gyst/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "gyst.db"))
	require.NoError(t, err)
	st := storage.NewStore(db)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func seed(t *testing.T, st *storage.Store, user string, notifications bool, tokens ...string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, st.PutSettings(ctx, storage.Settings{UserID: user, Notifications: notifications}))
	for _, tok := range tokens {
		require.NoError(t, st.SaveToken(ctx, storage.DeviceToken{UserID: user, Token: tok, Platform: "telegram"}))
	}
}

type recordingSender struct {
	mu    sync.Mutex
	sent  []Message
	gone  map[string]bool
	flaky map[string]bool
}

func (s *recordingSender) Send(_ context.Context, m Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gone[m.Token] {
		return ErrTokenInvalid
	}
	if s.flaky[m.Token] {
		return errors.New("timeout")
	}
	s.sent = append(s.sent, m)
	return nil
}

func TestBuildGolden(t *testing.T) {
	st := newTestStore(t)
	seed(t, st, "alice", true, "100", "200")
	seed(t, st, "bob", true, "300")
	seed(t, st, "carol", false, "400")

	d := NewDispatcher(st, &recordingSender{}, DispatcherOptions{Log: logging.Discard()})
	msgs, users, err := d.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, users)

	b, err := json.MarshalIndent(msgs, "", "  ")
	require.NoError(t, err)
	g := goldie.New(t)
	g.Assert(t, "reminders", append(b, '\n'))
}

func TestRenderTelegramGolden(t *testing.T) {
	g := goldie.New(t)
	text := RenderTelegram(Message{Title: "GYST Reminder", Body: "Time to knock out a task!"})
	g.Assert(t, "telegram_text", []byte(text+"\n"))
}

func TestRunPrunesGoneTokens(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	seed(t, st, "alice", true, "100", "200")
	seed(t, st, "bob", true, "200", "300")

	sender := &recordingSender{
		gone:  map[string]bool{"200": true},
		flaky: map[string]bool{"300": true},
	}
	d := NewDispatcher(st, sender, DispatcherOptions{Workers: 3, Log: logging.Discard()})
	rep, err := d.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Users)
	assert.Equal(t, 1, rep.Sent)
	assert.Equal(t, 3, rep.Failed)
	assert.Equal(t, int64(2), rep.Pruned, "one gone token registered by two users")

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "100", sender.sent[0].Token)

	alice, err := st.ListTokens(ctx, "alice")
	require.NoError(t, err)
	bob, err := st.ListTokens(ctx, "bob")
	require.NoError(t, err)
	var left []string
	for _, tok := range append(alice, bob...) {
		left = append(left, tok.Token)
	}
	sort.Strings(left)
	assert.Equal(t, []string{"100", "300"}, left, "flaky tokens are kept")
}

func TestRunWithNoRecipients(t *testing.T) {
	st := newTestStore(t)
	d := NewDispatcher(st, &recordingSender{}, DispatcherOptions{Log: logging.Discard()})
	rep, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{}, rep)
}

type fakeBot struct {
	got []tgbotapi.MessageConfig
	err error
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if b.err != nil {
		return tgbotapi.Message{}, b.err
	}
	b.got = append(b.got, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func TestTelegramSender(t *testing.T) {
	ctx := context.Background()
	m := Message{UserID: "alice", Token: "4242", Title: "GYST Reminder", Body: "Time to knock out a task!"}

	bot := &fakeBot{}
	require.NoError(t, newTelegramSenderWithBot(bot).Send(ctx, m))
	require.Len(t, bot.got, 1)
	assert.Equal(t, int64(4242), bot.got[0].ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, bot.got[0].ParseMode)

	bad := m
	bad.Token = "not-a-chat"
	assert.ErrorIs(t, newTelegramSenderWithBot(&fakeBot{}).Send(ctx, bad), ErrTokenInvalid)

	blocked := &fakeBot{err: &tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}}
	assert.ErrorIs(t, newTelegramSenderWithBot(blocked).Send(ctx, m), ErrTokenInvalid)

	missing := &fakeBot{err: &tgbotapi.Error{Code: 400, Message: "Bad Request: chat not found"}}
	assert.ErrorIs(t, newTelegramSenderWithBot(missing).Send(ctx, m), ErrTokenInvalid)

	down := &fakeBot{err: errors.New("connection reset")}
	err := newTelegramSenderWithBot(down).Send(ctx, m)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTokenInvalid))
}

func TestSchedulerNext(t *testing.T) {
	chicago := time.FixedZone("CST", -6*60*60)
	d := NewDispatcher(newTestStore(t), &recordingSender{}, DispatcherOptions{Log: logging.Discard()})
	s, err := NewScheduler(d, "0 11 * * *", chicago, logging.Discard())
	require.NoError(t, err)

	from := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC) // 06:00 CST
	next := s.Next(from)
	assert.True(t, next.Equal(time.Date(2026, time.March, 10, 11, 0, 0, 0, chicago)), next)

	next = s.Next(next)
	assert.True(t, next.Equal(time.Date(2026, time.March, 11, 11, 0, 0, 0, chicago)), next)

	_, err = NewScheduler(d, "not a spec", chicago, logging.Discard())
	assert.Error(t, err)
}
