package core

// NodeEventKind tags a lifecycle notification emitted by the reasoning
// engine outside the request/reply cycle.
type NodeEventKind int

const (
	// NodeLeave asks the boundary to say goodbye and abandon the
	// originating group or room conversation.
	NodeLeave NodeEventKind = iota
	// NodeLateReply delivers an answer the engine produced after the
	// reply window for the triggering message had closed.
	NodeLateReply
	// NodeReservedWords answers a reserved keyword out of band.
	NodeReservedWords
	// NodeRegisterAdmin grants admin rights to the user named in the body.
	NodeRegisterAdmin
	// NodeRecursive short-circuits a detected reply loop.
	NodeRecursive
)

// String returns the kind name for logging.
func (k NodeEventKind) String() string {
	switch k {
	case NodeLeave:
		return "Leave"
	case NodeLateReply:
		return "LateReply"
	case NodeReservedWords:
		return "ReservedWords"
	case NodeRegisterAdmin:
		return "RegisterAdmin"
	case NodeRecursive:
		return "Recursive"
	default:
		return "Unknown"
	}
}

// NodeEvent is one lifecycle notification. It is consumed exactly once by
// the dispatcher and not persisted.
type NodeEvent struct {
	Kind    NodeEventKind
	Message MessageObject
}
