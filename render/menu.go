package render

import (
	"net/url"
	"strings"

	"github.com/eoss-th/linebrain/core"
)

// ParseMenuLine parses one non-empty line of the button-menu sub-syntax
// into a menu action. The grammar is "payload:label" or "payload" (label
// defaults to the payload). Lines starting with a URL scheme become open-URL
// actions, everything else becomes send-message actions.
//
// For URL actions the second return value is the host of the reconstructed
// URL (the raw payload when it does not parse); for message actions it is
// empty. Callers skip blank lines before invoking the parser.
func ParseMenuLine(line string) (core.MenuAction, string) {
	item := strings.TrimSpace(line)

	isURL := strings.HasPrefix(item, "http://") || strings.HasPrefix(item, "https://")
	if isURL {
		// The scheme is stripped before splitting and always re-added as
		// https on output.
		item = strings.ReplaceAll(item, "https://", "")
		item = strings.ReplaceAll(item, "http://", "")
	}

	var message, label string
	if parts := strings.SplitN(item, ":", 2); len(parts) == 2 {
		message = strings.TrimSpace(parts[0])
		label = strings.TrimSpace(parts[1])
	} else {
		message = strings.TrimSpace(parts[0])
		label = message
	}

	label = truncate(label, labelLimit)
	if runes := []rune(message); len(runes) > messageLimit {
		// The payload is cut flat, without the ellipsis labels get.
		message = string(runes[:messageLimit])
	}

	if isURL {
		host := message
		if u, err := url.Parse("https://" + message); err == nil && u.Host != "" {
			host = u.Host
		}
		return core.URIAction{Label: label, URI: "https://" + message}, host
	}
	return core.MessageAction{Label: label, Text: message}, ""
}
