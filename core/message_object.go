package core

// Attribute keys the gateway sets on every MessageObject handed to the
// reasoning engine. The engine copies them onto the lifecycle notifications
// it emits, which is how the dispatcher knows where to push responses.
const (
	AttrUserID   = "userId"
	AttrSenderID = "senderId"
	AttrEvent    = "event"
	AttrText     = "text"
)

// MessageObject is the free-form attribute carrier exchanged with the
// reasoning engine. The engine treats it as opaque apart from the text
// attribute; the dispatcher reads the routing attributes back out.
type MessageObject struct {
	Attributes map[string]any
}

// BuildMessageObject wraps an attribute map. The map is used as-is, not
// copied; callers hand over ownership.
func BuildMessageObject(attributes map[string]any) MessageObject {
	if attributes == nil {
		attributes = map[string]any{}
	}
	return MessageObject{Attributes: attributes}
}

// NewMessageObject assembles the standard attribute set for an inbound
// message event with its normalized text.
func NewMessageObject(ev MessageEvent, text string) MessageObject {
	return BuildMessageObject(map[string]any{
		AttrUserID:   ev.Source.UserID(),
		AttrSenderID: ev.Source.SenderID(),
		AttrEvent:    ev,
		AttrText:     text,
	})
}

func (m MessageObject) stringAttr(key string) string {
	if v, ok := m.Attributes[key].(string); ok {
		return v
	}
	return ""
}

// UserID returns the user identity attribute, empty if unset.
func (m MessageObject) UserID() string { return m.stringAttr(AttrUserID) }

// SenderID returns the conversation identity attribute, empty if unset.
func (m MessageObject) SenderID() string { return m.stringAttr(AttrSenderID) }

// SourceEvent returns the originating platform message event, if any.
func (m MessageObject) SourceEvent() (MessageEvent, bool) {
	ev, ok := m.Attributes[AttrEvent].(MessageEvent)
	return ev, ok
}

// String returns the message body text. Lifecycle notifications carry their
// renderable body here.
func (m MessageObject) String() string { return m.stringAttr(AttrText) }
