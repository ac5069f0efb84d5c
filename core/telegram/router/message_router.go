package router

import (
	"strings"
	"time"

	tg "github.com/m3rciful/saverbot/core/telegram"
	"github.com/m3rciful/saverbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Dialog is the minimal view of the save dialogue the router needs.
type Dialog interface {
	InProgress(userID int64) bool
	Handle(c tele.Context) error
}

// MessageOptions controls routing of messages that do not belong to
// an active dialogue.
type MessageOptions struct {
	// Entry receives text and media updates outside a dialogue so they
	// can be classified (forwarded message, link, plain text).
	Entry tele.HandlerFunc
}

// MessageRoutes builds handlers for text and media routing.
// Active dialogues take precedence, then bare command lookup, then Entry.
func MessageRoutes(dlg Dialog, reg *tg.Registry, opts MessageOptions) []tg.Route {
	textHandler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if dlg != nil && c.Sender() != nil && dlg.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "dialog", start, "", "", func() error {
				return dlg.Handle(c)
			})
		}

		// Only slash-prefixed text may resolve to a command; bare words
		// belong to the entry classifier.
		if reg != nil && strings.HasPrefix(text, "/") {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if opts.Entry != nil {
			return handleWithSummary(c, "entry", start, "", "", func() error {
				return opts.Entry(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	mediaHandler := func(c tele.Context) error {
		start := time.Now()
		if dlg != nil && c.Sender() != nil && dlg.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "dialog_media", start, "", "", func() error {
				return dlg.Handle(c)
			})
		}
		if opts.Entry != nil {
			return handleWithSummary(c, "entry_media", start, "", "", func() error {
				return opts.Entry(c)
			})
		}
		logHandlerSummary(c, "unexpected_media", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(textHandler)),
		},
		{
			Endpoint: tele.OnMedia,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(mediaHandler)),
		},
	}
}
