package dialog

// Event is a single user input fed into the dialogue engine.
type Event interface {
	User() int64
}

// ForwardedEvent is a forwarded message arriving from the user.
// Description is the pre-built archival text for the forwarded content.
type ForwardedEvent struct {
	UserID      int64
	Description string
}

func (e ForwardedEvent) User() int64 { return e.UserID }

// LinkEvent is a text message containing a message link.
// Text carries the full message text, which doubles as the archival
// description when the save completes.
type LinkEvent struct {
	UserID int64
	Text   string
}

func (e LinkEvent) User() int64 { return e.UserID }

// TextEvent is a plain text message with no link and no forward origin.
type TextEvent struct {
	UserID int64
	Text   string
}

func (e TextEvent) User() int64 { return e.UserID }

// SectionChosenEvent is a section keyboard press. SectionName carries the
// chosen section verbatim from the button payload.
type SectionChosenEvent struct {
	UserID      int64
	SectionName string
}

func (e SectionChosenEvent) User() int64 { return e.UserID }

// CancelEvent aborts any dialogue in progress.
type CancelEvent struct {
	UserID int64
}

func (e CancelEvent) User() int64 { return e.UserID }
