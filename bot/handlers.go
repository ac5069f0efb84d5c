package bot

import (
	"errors"
	"fmt"
	"strings"

	tg "github.com/m3rciful/saverbot/core/telegram"
	"github.com/m3rciful/saverbot/core/telegram/callbacks"
	"github.com/m3rciful/saverbot/core/telegram/commands"
	"github.com/m3rciful/saverbot/core/telegram/format"
	tghelpers "github.com/m3rciful/saverbot/core/telegram/helpers"
	"github.com/m3rciful/saverbot/dialog"
	"github.com/m3rciful/saverbot/service"
	"github.com/m3rciful/saverbot/storage"

	tele "gopkg.in/telebot.v4"
)

const welcomeText = "👋 Welcome to your personal message saver!\n\n" +
	"**How to use me:**\n" +
	"1. Forward a message to me, or\n" +
	"2. Send me a direct link to a message.\n" +
	"I'll then ask you for a name and a section to save it in.\n\n" +
	"**Commands:**\n" +
	"/newsection <name> - Create a new section (e.g., '/newsection Recipes')\n" +
	"/mysections - List all your sections"

// Handlers binds the dialogue engine and services to Telegram updates.
type Handlers struct {
	engine   *dialog.Engine
	sections *service.Sections
	items    *service.Items
}

// NewHandlers builds the update handlers.
func NewHandlers(engine *dialog.Engine, sections *service.Sections, items *service.Items) *Handlers {
	return &Handlers{engine: engine, sections: sections, items: items}
}

// InProgress reports whether the user has a save dialogue running.
func (h *Handlers) InProgress(userID int64) bool {
	return h.engine.InProgress(userID)
}

// Handle feeds a message, classified into a dialogue event, through the engine.
// It serves both dialogue continuations and fresh entries.
func (h *Handlers) Handle(c tele.Context) error {
	if c.Sender() == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	ev := classifyMessage(c.Sender().ID, c.Message())
	return perform(c, h.engine.Handle(ctx, ev))
}

// Register wires commands and callbacks into the registry.
func (h *Handlers) Register(reg *tg.Registry) error {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.onStart,
		Description: "Show usage help",
	})
	reg.RegisterCommand("/newsection", commands.Command{
		Handler:     h.onNewSection,
		Description: "Create a new section",
	})
	reg.RegisterCommand("/mysections", commands.Command{
		Handler:     h.onMySections,
		Description: "List all your sections",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     h.onCancel,
		Description: "Cancel the current operation",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     h.onStats,
		Description: "Show bot-wide totals",
		AdminOnly:   true,
		Hidden:      true,
	})

	return reg.RegisterCallback(sectionCallbackKey, h.onSectionChosen)
}

func (h *Handlers) onStart(c tele.Context) error {
	if c.Sender() != nil {
		h.engine.Reset(c.Sender().ID)
	}
	return tghelpers.SendMD(c, welcomeText)
}

func (h *Handlers) onNewSection(c tele.Context) error {
	if c.Sender() == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	name := strings.TrimSpace(strings.Join(c.Args(), " "))
	if name == "" {
		return tghelpers.SendMD(c, "Please provide a section name. Example: `/newsection Recipes`")
	}

	sec, err := h.sections.Create(ctx, c.Sender().ID, name)
	switch {
	case errors.Is(err, storage.ErrDuplicateSection):
		return tghelpers.SendText(c, fmt.Sprintf("Section '%s' already exists!", name))
	case err != nil:
		return tghelpers.SendText(c, "Sorry, something went wrong. Please try again.")
	}
	return tghelpers.SendText(c, fmt.Sprintf("✅ Section \"%s\" created successfully!", sec.Name))
}

func (h *Handlers) onMySections(c tele.Context) error {
	if c.Sender() == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	names, err := h.sections.Names(ctx, c.Sender().ID)
	if err != nil {
		return tghelpers.SendText(c, "Sorry, something went wrong. Please try again.")
	}
	if len(names) == 0 {
		return tghelpers.SendMD(c, "You don't have any sections yet! Create one with `/newsection`")
	}

	var b strings.Builder
	b.WriteString("**Your Sections:**\n")
	for _, name := range names {
		b.WriteString("• ")
		b.WriteString(format.EscapeMD(name))
		b.WriteString("\n")
	}
	return tghelpers.SendMD(c, strings.TrimRight(b.String(), "\n"))
}

func (h *Handlers) onCancel(c tele.Context) error {
	if c.Sender() == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	return perform(c, h.engine.Handle(ctx, dialog.CancelEvent{UserID: c.Sender().ID}))
}

func (h *Handlers) onStats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	sections, err := h.sections.Total(ctx)
	if err != nil {
		return tghelpers.SendText(c, "Sorry, something went wrong. Please try again.")
	}
	items, err := h.items.Total(ctx)
	if err != nil {
		return tghelpers.SendText(c, "Sorry, something went wrong. Please try again.")
	}
	return tghelpers.SendText(c, fmt.Sprintf("Sections: %d\nSaved items: %d", sections, items))
}

func (h *Handlers) onSectionChosen(c tele.Context) error {
	if c.Sender() == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	ev := dialog.SectionChosenEvent{
		UserID:      c.Sender().ID,
		SectionName: callbacks.CallbackPayload(c),
	}
	return perform(c, h.engine.Handle(ctx, ev))
}
