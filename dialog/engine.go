package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m3rciful/saverbot/core/logger"
	"log/slog"
)

const (
	msgAskNameLink     = "🔗 Great! What name would you like to give to this saved item?"
	msgAskNameForward  = "📩 Great! What name would you like to give to this saved item?"
	msgChooseSection   = "✏️ Name '%s' saved. Now, choose a section:"
	msgSaved           = "✅ Perfect! I've saved '%s' in the section '%s'."
	msgCancelled       = "Operation cancelled."
	msgNoSectionsFirst = "You don't have any sections yet! Create one with `/newsection` first."
	msgHelpEntry       = "Please forward a message to me or send me a direct message link to save it."
	msgFailure         = "Sorry, something went wrong. Please try again."
	msgSectionGone     = "That section doesn't exist anymore. Pick an existing one or recreate it with /newsection."
	msgAskNameAgain    = "Please send me a text name for this saved item."
)

// ErrSectionGone reports that the chosen section no longer exists for the
// user at commit time. Savers return it so the engine can tell the user to
// pick or recreate a section instead of a generic failure.
var ErrSectionGone = errors.New("section no longer exists")

// SectionLister provides the section names available to a user.
type SectionLister interface {
	Names(ctx context.Context, userID int64) ([]string, error)
}

// ItemSaver commits a completed save into a section.
type ItemSaver interface {
	SaveItem(ctx context.Context, userID int64, sectionName, itemName, description string) error
}

// Engine drives the save dialogue. Every user input becomes an Event,
// the engine advances the session phase and returns the outbound actions
// the transport layer must perform.
type Engine struct {
	sessions *Sessions
	sections SectionLister
	items    ItemSaver
}

// NewEngine wires the dialogue engine.
func NewEngine(sessions *Sessions, sections SectionLister, items ItemSaver) *Engine {
	return &Engine{sessions: sessions, sections: sections, items: items}
}

// InProgress reports whether the user has a dialogue running.
func (e *Engine) InProgress(userID int64) bool {
	return e.sessions.InProgress(userID)
}

// Reset drops any dialogue in progress without a reply, used by /start.
func (e *Engine) Reset(userID int64) {
	e.sessions.Clear(userID)
}

// Handle advances the user's dialogue with one event.
func (e *Engine) Handle(ctx context.Context, ev Event) []Action {
	userID := ev.User()
	sess := e.sessions.Get(userID)

	var actions []Action
	switch ev := ev.(type) {
	case CancelEvent:
		actions = e.cancel(userID)
	case ForwardedEvent:
		actions = e.begin(userID, ev.Description, msgAskNameForward)
	case LinkEvent:
		// Inside a name prompt the link text is the name the user typed.
		if sess.Phase == PhaseAwaitingName {
			actions = e.captureName(ctx, userID, sess, ev.Text)
			break
		}
		actions = e.begin(userID, ev.Text, msgAskNameLink)
	case TextEvent:
		switch sess.Phase {
		case PhaseAwaitingName:
			actions = e.captureName(ctx, userID, sess, ev.Text)
		case PhaseAwaitingSection:
			actions = e.repromptSections(ctx, userID, sess)
		default:
			actions = []Action{Reply{Text: msgHelpEntry}}
		}
	case SectionChosenEvent:
		actions = e.commit(ctx, userID, sess, ev.SectionName)
	default:
		actions = []Action{Reply{Text: msgHelpEntry}}
	}

	if logger.ShouldSampleDebug() {
		logger.Event(ctx, "dialog", slog.LevelDebug, "dialog.step",
			slog.Int64("user_id", userID),
			slog.String("phase", e.sessions.Get(userID).Phase.String()),
		)
	}
	return actions
}

// begin starts a fresh dialogue, replacing any dialogue already running.
func (e *Engine) begin(userID int64, description, prompt string) []Action {
	e.sessions.Put(userID, Session{
		Phase:       PhaseAwaitingName,
		Description: description,
	})
	return []Action{Reply{Text: prompt}}
}

func (e *Engine) cancel(userID int64) []Action {
	e.sessions.Clear(userID)
	return []Action{Reply{Text: msgCancelled}}
}

func (e *Engine) captureName(ctx context.Context, userID int64, sess Session, name string) []Action {
	// Non-text updates arrive with empty text; they cannot name an item.
	if strings.TrimSpace(name) == "" {
		return []Action{Reply{Text: msgAskNameAgain}}
	}

	names, err := e.sections.Names(ctx, userID)
	if err != nil {
		e.sessions.Clear(userID)
		return []Action{Reply{Text: msgFailure}}
	}
	if len(names) == 0 {
		e.sessions.Clear(userID)
		return []Action{Reply{Text: msgNoSectionsFirst, Markdown: true}}
	}

	sess.Phase = PhaseAwaitingSection
	sess.ItemName = name
	e.sessions.Put(userID, sess)

	return []Action{PromptSections{
		Text:     fmt.Sprintf(msgChooseSection, name),
		Sections: names,
	}}
}

// repromptSections re-offers the keyboard when the user types text while
// a section choice is pending.
func (e *Engine) repromptSections(ctx context.Context, userID int64, sess Session) []Action {
	names, err := e.sections.Names(ctx, userID)
	if err != nil {
		return []Action{Reply{Text: msgFailure}}
	}
	if len(names) == 0 {
		e.sessions.Clear(userID)
		return []Action{Reply{Text: msgNoSectionsFirst, Markdown: true}}
	}
	return []Action{PromptSections{
		Text:     fmt.Sprintf(msgChooseSection, sess.ItemName),
		Sections: names,
	}}
}

func (e *Engine) commit(ctx context.Context, userID int64, sess Session, sectionName string) []Action {
	if sess.Phase != PhaseAwaitingSection {
		// Stale keyboard press, nothing pending to save.
		e.sessions.Clear(userID)
		return []Action{EditText{Text: msgFailure}}
	}

	if err := e.items.SaveItem(ctx, userID, sectionName, sess.ItemName, sess.Description); err != nil {
		e.sessions.Clear(userID)
		if errors.Is(err, ErrSectionGone) {
			return []Action{EditText{Text: msgSectionGone}}
		}
		return []Action{EditText{Text: msgFailure}}
	}

	e.sessions.Clear(userID)
	return []Action{EditText{
		Text: fmt.Sprintf(msgSaved, sess.ItemName, sectionName),
	}}
}
