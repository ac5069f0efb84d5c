package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/saverbot/dialog"

	tele "gopkg.in/telebot.v4"
)

func TestClassifyLinkMessage(t *testing.T) {
	msg := &tele.Message{
		Text: "https://t.me/c/1234/56 check this out",
		Entities: []tele.MessageEntity{
			{Type: tele.EntityURL, Offset: 0, Length: 22},
		},
	}

	ev := classifyMessage(7, msg)
	link, ok := ev.(dialog.LinkEvent)
	require.True(t, ok, "expected LinkEvent, got %T", ev)
	assert.EqualValues(t, 7, link.UserID)
	assert.Equal(t, msg.Text, link.Text)
}

func TestClassifyLinkWinsOverForward(t *testing.T) {
	msg := &tele.Message{
		Text:             "https://t.me/c/1234/56",
		Entities:         []tele.MessageEntity{{Type: tele.EntityURL}},
		OriginalUnixtime: 1700000000,
	}

	ev := classifyMessage(7, msg)
	_, ok := ev.(dialog.LinkEvent)
	assert.True(t, ok, "expected LinkEvent, got %T", ev)
}

func TestClassifyForwardedFromChannel(t *testing.T) {
	msg := &tele.Message{
		Text:             "today's special",
		OriginalUnixtime: 1700000000,
		OriginalChat:     &tele.Chat{Title: "Cooking Channel"},
		OriginalSender:   &tele.User{FirstName: "Ana"},
	}

	ev := classifyMessage(7, msg)
	fwd, ok := ev.(dialog.ForwardedEvent)
	require.True(t, ok, "expected ForwardedEvent, got %T", ev)
	assert.Equal(t, "Forwarded from Cooking Channel: today's special", fwd.Description)
}

func TestClassifyForwardedFromUser(t *testing.T) {
	msg := &tele.Message{
		Text:             "the recipe",
		OriginalUnixtime: 1700000000,
		OriginalSender:   &tele.User{FirstName: "Ana"},
	}

	ev := classifyMessage(7, msg)
	fwd := ev.(dialog.ForwardedEvent)
	assert.Equal(t, "Forwarded from Ana: the recipe", fwd.Description)
}

func TestClassifyForwardedHiddenSender(t *testing.T) {
	msg := &tele.Message{
		OriginalSenderName: "Hidden Person",
		OriginalUnixtime:   1700000000,
	}

	ev := classifyMessage(7, msg)
	fwd := ev.(dialog.ForwardedEvent)
	assert.Equal(t, "Forwarded from Hidden Person: (media message)", fwd.Description)
}

func TestClassifyForwardedMediaUsesCaption(t *testing.T) {
	msg := &tele.Message{
		Caption:          "look at this photo",
		OriginalUnixtime: 1700000000,
		OriginalSender:   &tele.User{FirstName: "Ana"},
	}

	ev := classifyMessage(7, msg)
	fwd := ev.(dialog.ForwardedEvent)
	assert.Equal(t, "Forwarded from Ana: look at this photo", fwd.Description)
}

func TestClassifyPlainText(t *testing.T) {
	msg := &tele.Message{Text: "hello"}

	ev := classifyMessage(7, msg)
	txt, ok := ev.(dialog.TextEvent)
	require.True(t, ok, "expected TextEvent, got %T", ev)
	assert.Equal(t, "hello", txt.Text)
}

func TestClassifyNilMessage(t *testing.T) {
	ev := classifyMessage(7, nil)
	_, ok := ev.(dialog.TextEvent)
	assert.True(t, ok)
}

func TestSectionKeyboardLayout(t *testing.T) {
	markup := sectionKeyboard([]string{"Recipes", "Articles"})
	require.Len(t, markup.InlineKeyboard, 2)
	require.Len(t, markup.InlineKeyboard[0], 1)
	assert.Equal(t, "Recipes", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "save_section", markup.InlineKeyboard[0][0].Unique)
	assert.Equal(t, "Recipes", markup.InlineKeyboard[0][0].Data)
	assert.Equal(t, "Articles", markup.InlineKeyboard[1][0].Text)
}
