package render

import (
	neturl "net/url"
	"strconv"
	"strings"

	"github.com/eoss-th/linebrain/core"
	"github.com/eoss-th/linebrain/logging"
)

// Directive prefix tags recognized by the renderer. The reasoning engine
// emits them verbatim at the head of a directive string.
const (
	TagSticker  = "STICKER"
	TagImage    = "IMAGE"
	TagImagemap = "IMAGEMAP"
	TagAudio    = "AUDIO"
	TagVideo    = "VIDEO"
	TagMode     = "MODE"
	TagModeHook = "MODE_HOOK"
)

// Text field limits enforced by ellipsis truncation before a value feeds a
// platform template.
const (
	labelLimit         = 20
	buttonsDetailLimit = 60
	confirmDetailLimit = 240
	messageLimit       = 300
)

// storageRoot is where media blobs live; the video preview still is served
// from there.
const storageRoot = "https://storage.googleapis.com/eoss-th-bin/"

// Renderer maps directive strings to outgoing messages. It holds no mutable
// state; the logger only receives recovered parse failures.
type Renderer struct {
	logger logging.Logger
}

// New creates a Renderer. A nil logger disables logging.
func New(logger logging.Logger) *Renderer {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Renderer{logger: logger}
}

// Render maps one directive string to one outgoing message. First matching
// prefix tag wins; untagged text renders as a plain text message. Render
// never fails: malformed payloads fall back to text.
func (r *Renderer) Render(directive string) core.OutgoingMessage {
	switch {
	case strings.HasPrefix(directive, TagSticker):
		if msg, ok := r.renderSticker(directive); ok {
			return msg
		}
		// Malformed sticker ids fall through to the plain text default.

	// IMAGEMAP must be tested before IMAGE: the bare-word tags overlap.
	case strings.HasPrefix(directive, TagImagemap):
		url := strings.TrimPrefix(directive, TagImagemap)
		return core.ImagemapMessage{
			BaseURL:  url,
			AltText:  "Download Here!",
			BaseSize: core.ImagemapBaseSize{Width: 1040, Height: 1040},
			Actions: []core.ImagemapAction{{
				LinkURL: url,
				Area:    core.ImagemapArea{X: 0, Y: 0, Width: 520, Height: 520},
			}},
		}

	case strings.HasPrefix(directive, TagImage):
		url := strings.TrimPrefix(directive, TagImage)
		return core.ImageMessage{OriginalContentURL: url, PreviewImageURL: url}

	case strings.HasPrefix(directive, TagAudio):
		url := strings.TrimPrefix(directive, TagAudio)
		return core.AudioMessage{OriginalContentURL: url, Duration: 60 * 1000}

	case strings.HasPrefix(directive, TagVideo):
		url := strings.TrimPrefix(directive, TagVideo)
		return core.VideoMessage{
			OriginalContentURL: url,
			PreviewImageURL:    storageRoot + "preview.png",
		}

	case strings.HasPrefix(directive, TagMode):
		name := strings.TrimPrefix(directive, TagMode)
		return core.TemplateMessage{
			AltText: "โหมด",
			Template: core.ConfirmTemplate{
				Text: "ต้องการเข้าสู่โหมด " + name + " หรือไม่?",
				Actions: [2]core.MenuAction{
					core.MessageAction{Label: "Yes", Text: TagModeHook + name},
					core.MessageAction{Label: "No", Text: "ไม่"},
				},
			},
		}

	case strings.HasPrefix(directive, "https://"):
		return r.renderLink(directive)
	}

	return core.TextMessage{Text: directive}
}

// renderSticker parses "STICKER<packageId>:<stickerId>". Any '?' characters
// are stripped first (the engine appends them on interrogative replies).
// Malformed ids report ok=false so the caller can fall back.
func (r *Renderer) renderSticker(directive string) (core.OutgoingMessage, bool) {
	ids := strings.ReplaceAll(strings.TrimPrefix(directive, TagSticker), "?", "")
	parts := strings.SplitN(ids, ":", 2)
	if len(parts) != 2 {
		r.logger.Warn("malformed sticker directive", "directive", directive)
		return nil, false
	}
	packageID, err := strconv.Atoi(parts[0])
	if err != nil {
		r.logger.Warn("malformed sticker package id", "directive", directive, "error", err)
		return nil, false
	}
	stickerID, err := strconv.Atoi(parts[1])
	if err != nil {
		r.logger.Warn("malformed sticker id", "directive", directive, "error", err)
		return nil, false
	}
	return core.StickerMessage{
		PackageID: strconv.Itoa(packageID),
		StickerID: strconv.Itoa(stickerID),
	}, true
}

// renderLink handles directives that are a bare https:// URL optionally
// followed by a space and free text. Image URLs with trailing text become a
// buttons template whose menu lines come from the text; everything else
// becomes a confirm template inviting the user to open the link.
func (r *Renderer) renderLink(directive string) core.OutgoingMessage {
	parts := strings.SplitN(directive, " ", 2)
	url := strings.TrimSpace(parts[0])
	webName := strings.ReplaceAll(strings.ReplaceAll(url, "https://", ""), "www.", "")
	isImage := isImageURL(url)

	if len(parts) == 1 {
		if isImage {
			return core.ImageMessage{OriginalContentURL: url, PreviewImageURL: url}
		}
		return confirmWebsite(truncate(webName, confirmDetailLimit), url)
	}

	rest := parts[1]

	if isImage {
		segments := strings.SplitN(rest, "\n", 5)
		detail := truncate(segments[0], buttonsDetailLimit)

		hostName := hostOf(url)

		var actions []core.MenuAction
		for _, line := range segments[1:] {
			if strings.TrimSpace(line) == "" {
				continue
			}
			action, host := ParseMenuLine(line)
			if host != "" {
				// Positional side effect kept from the legacy bot: the host
				// of the last URL action overwrites the template title.
				hostName = host
			}
			actions = append(actions, action)
		}
		if len(actions) == 0 {
			actions = []core.MenuAction{core.MessageAction{Label: "ถัดไป", Text: "ยังไง"}}
		}

		return core.TemplateMessage{
			AltText: "โปรดเลือก",
			Template: core.ButtonsTemplate{
				ThumbnailImageURL: url,
				Title:             hostName,
				Text:              detail,
				Actions:           actions,
			},
		}
	}

	return confirmWebsite(truncate(rest, confirmDetailLimit), url)
}

func confirmWebsite(detail, url string) core.OutgoingMessage {
	return core.TemplateMessage{
		AltText: "เวปไซท์",
		Template: core.ConfirmTemplate{
			Text: detail,
			Actions: [2]core.MenuAction{
				core.URIAction{Label: "เข้าเวป", URI: url},
				core.MessageAction{Label: "ขอบคุณ", Text: "ขอบคุณ"},
			},
		},
	}
}

// hostOf extracts the host of a URL, falling back to the raw string when it
// does not parse.
func hostOf(rawURL string) string {
	u, err := neturl.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

func isImageURL(url string) bool {
	lower := strings.ToLower(url)
	return strings.HasSuffix(lower, "jpg") ||
		strings.HasSuffix(lower, "jpeg") ||
		strings.HasSuffix(lower, "png")
}

// truncate enforces a rune limit, replacing the overflow with a 3-character
// ellipsis suffix. Strings within the limit pass through unchanged.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
