package bot

import (
	"errors"

	tghelpers "github.com/m3rciful/saverbot/core/telegram/helpers"
	"github.com/m3rciful/saverbot/core/telegram/keyboard"
	"github.com/m3rciful/saverbot/dialog"

	tele "gopkg.in/telebot.v4"
)

// sectionCallbackKey identifies section keyboard presses. The section name
// travels in the callback payload, never embedded in the key.
const sectionCallbackKey = "save_section"

// perform executes the engine's outbound actions on the Telegram transport.
func perform(c tele.Context, actions []dialog.Action) error {
	var errs []error
	for _, a := range actions {
		switch a := a.(type) {
		case dialog.Reply:
			if a.Markdown {
				errs = append(errs, tghelpers.SendMD(c, a.Text))
			} else {
				errs = append(errs, tghelpers.SendText(c, a.Text))
			}
		case dialog.PromptSections:
			errs = append(errs, tghelpers.SendText(c, a.Text, &tele.SendOptions{
				ReplyMarkup: sectionKeyboard(a.Sections),
			}))
		case dialog.EditText:
			errs = append(errs, tghelpers.EditOrSend(c, a.Text))
		}
	}
	return errors.Join(errs...)
}

// sectionKeyboard renders one button per section, one per row.
func sectionKeyboard(sections []string) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(sections))
	for _, name := range sections {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   name,
			Unique: sectionCallbackKey,
			Data:   name,
		})
	}
	return keyboard.InlineButtons(buttons)
}
