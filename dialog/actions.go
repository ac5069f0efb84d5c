package dialog

// Action is an outbound effect the transport layer must perform.
type Action interface {
	isAction()
}

// Reply sends a plain message to the user.
type Reply struct {
	Text     string
	Markdown bool
}

func (Reply) isAction() {}

// PromptSections sends a message with one inline button per section.
type PromptSections struct {
	Text     string
	Sections []string
}

func (PromptSections) isAction() {}

// EditText replaces the text of the message the user interacted with,
// used to retire the section keyboard after a button press.
type EditText struct {
	Text string
}

func (EditText) isAction() {}
