package core

// OutgoingMessage represents one structured message bound for the chat
// platform. Concrete message types implement the unexported isMessage marker
// enabling a closed set.
type OutgoingMessage interface{ isMessage() }

// TextMessage is a plain text message.
type TextMessage struct {
	Text string
}

func (TextMessage) isMessage() {}

// StickerMessage references a sticker by package and sticker identifier.
// Identifiers are kept as strings because the platform wire format is
// string-typed even though directives carry them as integers.
type StickerMessage struct {
	PackageID string
	StickerID string
}

func (StickerMessage) isMessage() {}

// ImageMessage carries a full-size content URL plus a preview URL.
type ImageMessage struct {
	OriginalContentURL string
	PreviewImageURL    string
}

func (ImageMessage) isMessage() {}

// ImagemapMessage is a tappable image with rectangular action areas laid out
// on a fixed-size base canvas.
type ImagemapMessage struct {
	BaseURL  string
	AltText  string
	BaseSize ImagemapBaseSize
	Actions  []ImagemapAction
}

func (ImagemapMessage) isMessage() {}

// ImagemapBaseSize is the virtual canvas the action areas are positioned on.
type ImagemapBaseSize struct {
	Width  int
	Height int
}

// ImagemapArea is a rectangle on the imagemap base canvas.
type ImagemapArea struct {
	X      int
	Y      int
	Width  int
	Height int
}

// ImagemapAction opens a URI when its area is tapped.
type ImagemapAction struct {
	LinkURL string
	Area    ImagemapArea
}

// AudioMessage carries an audio clip URL and its duration in milliseconds.
type AudioMessage struct {
	OriginalContentURL string
	Duration           int
}

func (AudioMessage) isMessage() {}

// VideoMessage carries a video URL and a still preview image URL.
type VideoMessage struct {
	OriginalContentURL string
	PreviewImageURL    string
}

func (VideoMessage) isMessage() {}

// TemplateMessage wraps a template payload with the alt text shown on
// clients that cannot display templates.
type TemplateMessage struct {
	AltText  string
	Template Template
}

func (TemplateMessage) isMessage() {}

// Template is the closed set of template payloads usable inside a
// TemplateMessage.
type Template interface{ isTemplate() }

// ConfirmTemplate shows a prompt with exactly two actions.
type ConfirmTemplate struct {
	Text    string
	Actions [2]MenuAction
}

func (ConfirmTemplate) isTemplate() {}

// ButtonsTemplate shows a thumbnail, title, detail text and an action list.
type ButtonsTemplate struct {
	ThumbnailImageURL string
	Title             string
	Text              string
	Actions           []MenuAction
}

func (ButtonsTemplate) isTemplate() {}
