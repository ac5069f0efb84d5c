package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/saverbot/core/logger"
	tg "github.com/m3rciful/saverbot/core/telegram"
	"github.com/m3rciful/saverbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func TestMain(m *testing.M) {
	_ = logger.InitLogger(nil)
	m.Run()
}

// stubContext implements just enough of tele.Context for the text route.
type stubContext struct {
	tele.Context
	text   string
	sender *tele.User
	store  map[string]any
}

func newStubContext(userID int64, text string) *stubContext {
	return &stubContext{
		text:   text,
		sender: &tele.User{ID: userID},
		store:  map[string]any{},
	}
}

func (s *stubContext) Text() string              { return s.text }
func (s *stubContext) Sender() *tele.User        { return s.sender }
func (s *stubContext) Chat() *tele.Chat          { return nil }
func (s *stubContext) Update() tele.Update       { return tele.Update{} }
func (s *stubContext) Message() *tele.Message    { return &tele.Message{Text: s.text} }
func (s *stubContext) Callback() *tele.Callback  { return nil }
func (s *stubContext) Get(key string) any        { return s.store[key] }
func (s *stubContext) Set(key string, val any)   { s.store[key] = val }

type stubDialog struct {
	inProgress bool
	handled    bool
}

func (d *stubDialog) InProgress(int64) bool { return d.inProgress }

func (d *stubDialog) Handle(tele.Context) error {
	d.handled = true
	return nil
}

func textRoute(t *testing.T, dlg Dialog, reg *tg.Registry, entryHit *bool) tg.Route {
	t.Helper()
	routes := MessageRoutes(dlg, reg, MessageOptions{
		Entry: func(tele.Context) error {
			*entryHit = true
			return nil
		},
	})
	require.Len(t, routes, 2)
	require.Equal(t, tele.OnText, routes[0].Endpoint)
	return routes[0]
}

func TestBareWordGoesToEntryNotCommand(t *testing.T) {
	reg := tg.NewRegistry()
	commandHit := false
	reg.RegisterCommand("/start", commands.Command{
		Handler:     func(tele.Context) error { commandHit = true; return nil },
		Description: "Show usage help",
	})

	entryHit := false
	route := textRoute(t, &stubDialog{}, reg, &entryHit)

	err := route.Handler(newStubContext(7, "start"))
	require.NoError(t, err)
	assert.False(t, commandHit, "plain word must not run the command handler")
	assert.True(t, entryHit, "plain word must reach the entry classifier")
}

func TestSlashTextResolvesCommand(t *testing.T) {
	reg := tg.NewRegistry()
	commandHit := false
	reg.RegisterCommand("/mysections", commands.Command{
		Handler:     func(tele.Context) error { commandHit = true; return nil },
		Description: "List all your sections",
	})

	entryHit := false
	route := textRoute(t, &stubDialog{}, reg, &entryHit)

	err := route.Handler(newStubContext(7, "/mysections"))
	require.NoError(t, err)
	assert.True(t, commandHit)
	assert.False(t, entryHit)
}

func TestDialogueTakesPrecedenceOverEntry(t *testing.T) {
	dlg := &stubDialog{inProgress: true}
	entryHit := false
	route := textRoute(t, dlg, tg.NewRegistry(), &entryHit)

	err := route.Handler(newStubContext(7, "Pasta Carbonara"))
	require.NoError(t, err)
	assert.True(t, dlg.handled)
	assert.False(t, entryHit)
}
