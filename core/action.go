package core

// MenuAction is one button-menu action: either an open-URL action or a
// send-message action. Concrete actions implement the unexported isAction
// marker enabling a closed set.
type MenuAction interface{ isAction() }

// URIAction opens a URI when the button is tapped.
type URIAction struct {
	Label string
	URI   string
}

func (URIAction) isAction() {}

// MessageAction sends a text message back into the conversation when the
// button is tapped.
type MessageAction struct {
	Label string
	Text  string
}

func (MessageAction) isAction() {}
