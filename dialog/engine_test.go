package dialog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/saverbot/core/logger"
)

func TestMain(m *testing.M) {
	_ = logger.InitLogger(nil)
	m.Run()
}

type fakeLister struct {
	names map[int64][]string
	err   error
}

func (f *fakeLister) Names(_ context.Context, userID int64) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.names[userID], nil
}

type savedCall struct {
	userID      int64
	section     string
	itemName    string
	description string
}

type fakeSaver struct {
	calls []savedCall
	err   error
}

func (f *fakeSaver) SaveItem(_ context.Context, userID int64, sectionName, itemName, description string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, savedCall{userID, sectionName, itemName, description})
	return nil
}

func newTestEngine(lister *fakeLister, saver *fakeSaver) (*Engine, *Sessions) {
	sessions := NewSessions()
	return NewEngine(sessions, lister, saver), sessions
}

func replyText(t *testing.T, actions []Action) string {
	t.Helper()
	require.Len(t, actions, 1)
	r, ok := actions[0].(Reply)
	require.True(t, ok, "expected Reply, got %T", actions[0])
	return r.Text
}

func TestForwardedMessageFullFlow(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{names: map[int64][]string{7: {"Recipes", "Articles"}}}
	saver := &fakeSaver{}
	eng, sessions := newTestEngine(lister, saver)

	actions := eng.Handle(ctx, ForwardedEvent{UserID: 7, Description: "Forwarded from Ana: the recipe"})
	assert.Equal(t, "📩 Great! What name would you like to give to this saved item?", replyText(t, actions))
	assert.Equal(t, PhaseAwaitingName, sessions.Get(7).Phase)

	actions = eng.Handle(ctx, TextEvent{UserID: 7, Text: "Pasta Carbonara"})
	require.Len(t, actions, 1)
	prompt, ok := actions[0].(PromptSections)
	require.True(t, ok)
	assert.Equal(t, "✏️ Name 'Pasta Carbonara' saved. Now, choose a section:", prompt.Text)
	assert.Equal(t, []string{"Recipes", "Articles"}, prompt.Sections)
	assert.Equal(t, PhaseAwaitingSection, sessions.Get(7).Phase)

	actions = eng.Handle(ctx, SectionChosenEvent{UserID: 7, SectionName: "Recipes"})
	require.Len(t, actions, 1)
	edit, ok := actions[0].(EditText)
	require.True(t, ok)
	assert.Equal(t, "✅ Perfect! I've saved 'Pasta Carbonara' in the section 'Recipes'.", edit.Text)

	require.Len(t, saver.calls, 1)
	assert.Equal(t, savedCall{7, "Recipes", "Pasta Carbonara", "Forwarded from Ana: the recipe"}, saver.calls[0])
	assert.False(t, sessions.InProgress(7))
}

func TestLinkMessageFullFlow(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{names: map[int64][]string{7: {"Links"}}}
	saver := &fakeSaver{}
	eng, sessions := newTestEngine(lister, saver)

	link := "https://t.me/c/1234/56"
	actions := eng.Handle(ctx, LinkEvent{UserID: 7, Text: link})
	assert.Equal(t, "🔗 Great! What name would you like to give to this saved item?", replyText(t, actions))
	assert.Equal(t, link, sessions.Get(7).Description)

	eng.Handle(ctx, TextEvent{UserID: 7, Text: "Launch thread"})
	eng.Handle(ctx, SectionChosenEvent{UserID: 7, SectionName: "Links"})

	require.Len(t, saver.calls, 1)
	assert.Equal(t, link, saver.calls[0].description)
}

func TestNameCaptureWithoutSectionsAborts(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{names: map[int64][]string{}}
	saver := &fakeSaver{}
	eng, sessions := newTestEngine(lister, saver)

	eng.Handle(ctx, ForwardedEvent{UserID: 42, Description: "Forwarded from Ana: hi"})
	actions := eng.Handle(ctx, TextEvent{UserID: 42, Text: "A name"})

	require.Len(t, actions, 1)
	r := actions[0].(Reply)
	assert.Equal(t, "You don't have any sections yet! Create one with `/newsection` first.", r.Text)
	assert.True(t, r.Markdown)
	assert.False(t, sessions.InProgress(42))
	assert.Empty(t, saver.calls)
}

func TestPlainTextWhileIdle(t *testing.T) {
	ctx := context.Background()
	eng, sessions := newTestEngine(&fakeLister{}, &fakeSaver{})

	actions := eng.Handle(ctx, TextEvent{UserID: 7, Text: "hello there"})
	assert.Equal(t, "Please forward a message to me or send me a direct message link to save it.", replyText(t, actions))
	assert.False(t, sessions.InProgress(7))
}

func TestCancelClearsAnyPhase(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{names: map[int64][]string{7: {"Recipes"}}}
	eng, sessions := newTestEngine(lister, &fakeSaver{})

	// Cancel while idle still confirms.
	actions := eng.Handle(ctx, CancelEvent{UserID: 7})
	assert.Equal(t, "Operation cancelled.", replyText(t, actions))

	eng.Handle(ctx, ForwardedEvent{UserID: 7, Description: "d"})
	actions = eng.Handle(ctx, CancelEvent{UserID: 7})
	assert.Equal(t, "Operation cancelled.", replyText(t, actions))
	assert.False(t, sessions.InProgress(7))

	eng.Handle(ctx, ForwardedEvent{UserID: 7, Description: "d"})
	eng.Handle(ctx, TextEvent{UserID: 7, Text: "name"})
	require.Equal(t, PhaseAwaitingSection, sessions.Get(7).Phase)
	eng.Handle(ctx, CancelEvent{UserID: 7})
	assert.False(t, sessions.InProgress(7))
}

func TestResetDropsDialogueSilently(t *testing.T) {
	ctx := context.Background()
	eng, sessions := newTestEngine(&fakeLister{names: map[int64][]string{7: {"Recipes"}}}, &fakeSaver{})

	eng.Handle(ctx, ForwardedEvent{UserID: 7, Description: "d"})
	require.True(t, eng.InProgress(7))

	eng.Reset(7)
	assert.False(t, sessions.InProgress(7))
}

func TestForwardedRestartsDialogue(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{names: map[int64][]string{7: {"Recipes"}}}
	eng, sessions := newTestEngine(lister, &fakeSaver{})

	eng.Handle(ctx, ForwardedEvent{UserID: 7, Description: "first"})
	eng.Handle(ctx, TextEvent{UserID: 7, Text: "first name"})
	require.Equal(t, PhaseAwaitingSection, sessions.Get(7).Phase)

	// A new forward replaces the half-finished save.
	actions := eng.Handle(ctx, ForwardedEvent{UserID: 7, Description: "second"})
	assert.Equal(t, "📩 Great! What name would you like to give to this saved item?", replyText(t, actions))
	sess := sessions.Get(7)
	assert.Equal(t, PhaseAwaitingName, sess.Phase)
	assert.Equal(t, "second", sess.Description)
	assert.Empty(t, sess.ItemName)
}

func TestLinkTextAsNameDuringNameCapture(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{names: map[int64][]string{7: {"Links"}}}
	saver := &fakeSaver{}
	eng, _ := newTestEngine(lister, saver)

	eng.Handle(ctx, ForwardedEvent{UserID: 7, Description: "fwd"})
	actions := eng.Handle(ctx, LinkEvent{UserID: 7, Text: "https://example.com/read-later"})

	require.Len(t, actions, 1)
	prompt, ok := actions[0].(PromptSections)
	require.True(t, ok)
	assert.Equal(t, "✏️ Name 'https://example.com/read-later' saved. Now, choose a section:", prompt.Text)
}

func TestTextWhileAwaitingSectionReprompts(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{names: map[int64][]string{7: {"Recipes"}}}
	eng, sessions := newTestEngine(lister, &fakeSaver{})

	eng.Handle(ctx, ForwardedEvent{UserID: 7, Description: "d"})
	eng.Handle(ctx, TextEvent{UserID: 7, Text: "Pasta"})

	actions := eng.Handle(ctx, TextEvent{UserID: 7, Text: "Recipes please"})
	require.Len(t, actions, 1)
	prompt, ok := actions[0].(PromptSections)
	require.True(t, ok)
	assert.Equal(t, "✏️ Name 'Pasta' saved. Now, choose a section:", prompt.Text)
	assert.Equal(t, PhaseAwaitingSection, sessions.Get(7).Phase)
}

func TestStaleSectionPress(t *testing.T) {
	ctx := context.Background()
	saver := &fakeSaver{}
	eng, sessions := newTestEngine(&fakeLister{}, saver)

	actions := eng.Handle(ctx, SectionChosenEvent{UserID: 7, SectionName: "Recipes"})
	require.Len(t, actions, 1)
	edit, ok := actions[0].(EditText)
	require.True(t, ok)
	assert.Equal(t, "Sorry, something went wrong. Please try again.", edit.Text)
	assert.Empty(t, saver.calls)
	assert.False(t, sessions.InProgress(7))
}

func TestSectionGoneAtCommitGetsDistinctMessage(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{names: map[int64][]string{7: {"Recipes"}}}
	saver := &fakeSaver{err: ErrSectionGone}
	eng, sessions := newTestEngine(lister, saver)

	eng.Handle(ctx, ForwardedEvent{UserID: 7, Description: "d"})
	eng.Handle(ctx, TextEvent{UserID: 7, Text: "Pasta"})
	actions := eng.Handle(ctx, SectionChosenEvent{UserID: 7, SectionName: "Recipes"})

	require.Len(t, actions, 1)
	edit, ok := actions[0].(EditText)
	require.True(t, ok)
	assert.Equal(t, "That section doesn't exist anymore. Pick an existing one or recreate it with /newsection.", edit.Text)
	assert.False(t, sessions.InProgress(7))
}

func TestBlankNameRepromptsAndKeepsPhase(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{names: map[int64][]string{7: {"Recipes"}}}
	saver := &fakeSaver{}
	eng, sessions := newTestEngine(lister, saver)

	eng.Handle(ctx, ForwardedEvent{UserID: 7, Description: "d"})

	// A captionless media update surfaces as empty text.
	actions := eng.Handle(ctx, TextEvent{UserID: 7, Text: ""})
	assert.Equal(t, "Please send me a text name for this saved item.", replyText(t, actions))
	assert.Equal(t, PhaseAwaitingName, sessions.Get(7).Phase)

	actions = eng.Handle(ctx, TextEvent{UserID: 7, Text: "   "})
	assert.Equal(t, "Please send me a text name for this saved item.", replyText(t, actions))
	assert.Equal(t, PhaseAwaitingName, sessions.Get(7).Phase)

	// A real name still advances.
	actions = eng.Handle(ctx, TextEvent{UserID: 7, Text: "Pasta"})
	_, ok := actions[0].(PromptSections)
	assert.True(t, ok)
	assert.Empty(t, saver.calls)
}

func TestSaveFailureReportsAndResets(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{names: map[int64][]string{7: {"Recipes"}}}
	saver := &fakeSaver{err: errors.New("section vanished")}
	eng, sessions := newTestEngine(lister, saver)

	eng.Handle(ctx, ForwardedEvent{UserID: 7, Description: "d"})
	eng.Handle(ctx, TextEvent{UserID: 7, Text: "Pasta"})
	actions := eng.Handle(ctx, SectionChosenEvent{UserID: 7, SectionName: "Recipes"})

	require.Len(t, actions, 1)
	edit := actions[0].(EditText)
	assert.Equal(t, "Sorry, something went wrong. Please try again.", edit.Text)
	assert.False(t, sessions.InProgress(7))
}

func TestSectionListFailureDuringNameCapture(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{err: errors.New("db down")}
	eng, sessions := newTestEngine(lister, &fakeSaver{})

	eng.Handle(ctx, ForwardedEvent{UserID: 7, Description: "d"})
	actions := eng.Handle(ctx, TextEvent{UserID: 7, Text: "Pasta"})

	assert.Equal(t, "Sorry, something went wrong. Please try again.", replyText(t, actions))
	assert.False(t, sessions.InProgress(7))
}

func TestDialoguesAreIndependentPerUser(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{names: map[int64][]string{
		7:  {"Recipes"},
		42: {"Work"},
	}}
	saver := &fakeSaver{}
	eng, sessions := newTestEngine(lister, saver)

	eng.Handle(ctx, ForwardedEvent{UserID: 7, Description: "seven"})
	eng.Handle(ctx, ForwardedEvent{UserID: 42, Description: "forty-two"})

	eng.Handle(ctx, TextEvent{UserID: 7, Text: "Pasta"})
	assert.Equal(t, PhaseAwaitingName, sessions.Get(42).Phase)

	eng.Handle(ctx, SectionChosenEvent{UserID: 7, SectionName: "Recipes"})
	require.Len(t, saver.calls, 1)
	assert.EqualValues(t, 7, saver.calls[0].userID)
	assert.True(t, sessions.InProgress(42))
}
