package bot

import (
	"fmt"

	"github.com/m3rciful/saverbot/dialog"

	tele "gopkg.in/telebot.v4"
)

// classifyMessage turns an incoming message into a dialogue event.
// Link detection wins over forward origin, matching how users share
// message links that Telegram also marks as forwarded.
func classifyMessage(userID int64, msg *tele.Message) dialog.Event {
	if msg == nil {
		return dialog.TextEvent{UserID: userID}
	}

	if msg.Text != "" && hasURLEntity(msg) {
		return dialog.LinkEvent{UserID: userID, Text: msg.Text}
	}

	if isForwarded(msg) {
		return dialog.ForwardedEvent{
			UserID:      userID,
			Description: forwardDescription(msg),
		}
	}

	return dialog.TextEvent{UserID: userID, Text: msg.Text}
}

func hasURLEntity(msg *tele.Message) bool {
	for _, ent := range msg.Entities {
		if ent.Type == tele.EntityURL {
			return true
		}
	}
	return false
}

func isForwarded(msg *tele.Message) bool {
	return msg.OriginalUnixtime != 0 ||
		msg.OriginalSender != nil ||
		msg.OriginalChat != nil ||
		msg.OriginalSenderName != ""
}

// forwardDescription builds the archival text for a forwarded message.
func forwardDescription(msg *tele.Message) string {
	source := ""
	switch {
	case msg.OriginalChat != nil:
		source = "from " + msg.OriginalChat.Title
	case msg.OriginalSender != nil:
		source = "from " + msg.OriginalSender.FirstName
	case msg.OriginalSenderName != "":
		source = "from " + msg.OriginalSenderName
	}

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	if text == "" {
		text = "(media message)"
	}
	return fmt.Sprintf("Forwarded %s: %s", source, text)
}
