package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eoss-th/linebrain/core"
	"github.com/eoss-th/linebrain/logging"
)

func newRenderer() *Renderer { return New(logging.NoOpLogger{}) }

func TestRender_Sticker(t *testing.T) {
	msg := newRenderer().Render("STICKER1:405")

	require.IsType(t, core.StickerMessage{}, msg)
	sticker := msg.(core.StickerMessage)
	assert.Equal(t, "1", sticker.PackageID)
	assert.Equal(t, "405", sticker.StickerID)
}

func TestRender_StickerStripsQuestionMarks(t *testing.T) {
	msg := newRenderer().Render("STICKER1:405?")

	require.IsType(t, core.StickerMessage{}, msg)
	assert.Equal(t, "405", msg.(core.StickerMessage).StickerID)
}

func TestRender_StickerNormalizesNumericIDs(t *testing.T) {
	msg := newRenderer().Render("STICKER01:0405")

	require.IsType(t, core.StickerMessage{}, msg)
	sticker := msg.(core.StickerMessage)
	assert.Equal(t, "1", sticker.PackageID)
	assert.Equal(t, "405", sticker.StickerID)
}

func TestRender_StickerMalformedFallsBackToText(t *testing.T) {
	for _, directive := range []string{"STICKER1:", "STICKERabc:405", "STICKER1405"} {
		msg := newRenderer().Render(directive)

		require.IsType(t, core.TextMessage{}, msg, "directive %q", directive)
		assert.Equal(t, directive, msg.(core.TextMessage).Text)
	}
}

func TestRender_Image(t *testing.T) {
	msg := newRenderer().Render("IMAGEhttps://x.com/a.png")

	require.IsType(t, core.ImageMessage{}, msg)
	img := msg.(core.ImageMessage)
	assert.Equal(t, "https://x.com/a.png", img.OriginalContentURL)
	assert.Equal(t, "https://x.com/a.png", img.PreviewImageURL)
}

func TestRender_Imagemap(t *testing.T) {
	msg := newRenderer().Render("IMAGEMAPhttps://x.com/map.png")

	require.IsType(t, core.ImagemapMessage{}, msg)
	im := msg.(core.ImagemapMessage)
	assert.Equal(t, "https://x.com/map.png", im.BaseURL)
	assert.Equal(t, "Download Here!", im.AltText)
	assert.Equal(t, core.ImagemapBaseSize{Width: 1040, Height: 1040}, im.BaseSize)
	require.Len(t, im.Actions, 1)
	assert.Equal(t, "https://x.com/map.png", im.Actions[0].LinkURL)
	assert.Equal(t, core.ImagemapArea{X: 0, Y: 0, Width: 520, Height: 520}, im.Actions[0].Area)
}

func TestRender_Audio(t *testing.T) {
	msg := newRenderer().Render("AUDIOhttps://x.com/a.mp4")

	require.IsType(t, core.AudioMessage{}, msg)
	audio := msg.(core.AudioMessage)
	assert.Equal(t, "https://x.com/a.mp4", audio.OriginalContentURL)
	assert.Equal(t, 60000, audio.Duration)
}

func TestRender_Video(t *testing.T) {
	msg := newRenderer().Render("VIDEOhttps://x.com/v.mp4")

	require.IsType(t, core.VideoMessage{}, msg)
	video := msg.(core.VideoMessage)
	assert.Equal(t, "https://x.com/v.mp4", video.OriginalContentURL)
	assert.Equal(t, storageRoot+"preview.png", video.PreviewImageURL)
}

func TestRender_ModeConfirm(t *testing.T) {
	msg := newRenderer().Render("MODEkids")

	require.IsType(t, core.TemplateMessage{}, msg)
	tmpl := msg.(core.TemplateMessage)
	assert.Equal(t, "โหมด", tmpl.AltText)

	require.IsType(t, core.ConfirmTemplate{}, tmpl.Template)
	confirm := tmpl.Template.(core.ConfirmTemplate)
	assert.Equal(t, "ต้องการเข้าสู่โหมด kids หรือไม่?", confirm.Text)
	assert.Equal(t, core.MessageAction{Label: "Yes", Text: "MODE_HOOKkids"}, confirm.Actions[0])
	assert.Equal(t, core.MessageAction{Label: "No", Text: "ไม่"}, confirm.Actions[1])
}

func TestRender_BareImageURL(t *testing.T) {
	for _, url := range []string{
		"https://example.com/a.jpg",
		"https://example.com/a.JPEG",
		"https://example.com/a.PNG",
	} {
		msg := newRenderer().Render(url)

		require.IsType(t, core.ImageMessage{}, msg, "url %q", url)
		assert.Equal(t, url, msg.(core.ImageMessage).OriginalContentURL)
	}
}

func TestRender_BareWebsiteURLConfirm(t *testing.T) {
	msg := newRenderer().Render("https://www.example.com/page")

	require.IsType(t, core.TemplateMessage{}, msg)
	tmpl := msg.(core.TemplateMessage)
	assert.Equal(t, "เวปไซท์", tmpl.AltText)

	require.IsType(t, core.ConfirmTemplate{}, tmpl.Template)
	confirm := tmpl.Template.(core.ConfirmTemplate)
	assert.Equal(t, "example.com/page", confirm.Text)
	assert.Equal(t, core.URIAction{Label: "เข้าเวป", URI: "https://www.example.com/page"}, confirm.Actions[0])
	assert.Equal(t, core.MessageAction{Label: "ขอบคุณ", Text: "ขอบคุณ"}, confirm.Actions[1])
}

func TestRender_WebsiteWithTextConfirmTruncates(t *testing.T) {
	rest := strings.Repeat("a", 300)
	msg := newRenderer().Render("https://example.com " + rest)

	require.IsType(t, core.TemplateMessage{}, msg)
	confirm := msg.(core.TemplateMessage).Template.(core.ConfirmTemplate)
	assert.Len(t, []rune(confirm.Text), 240)
	assert.True(t, strings.HasSuffix(confirm.Text, "..."))
}

func TestRender_ButtonsTemplate(t *testing.T) {
	msg := newRenderer().Render("https://example.com/a.jpg caption\nhttp://foo.com:Go\nbar:Say")

	require.IsType(t, core.TemplateMessage{}, msg)
	tmpl := msg.(core.TemplateMessage)
	assert.Equal(t, "โปรดเลือก", tmpl.AltText)

	require.IsType(t, core.ButtonsTemplate{}, tmpl.Template)
	buttons := tmpl.Template.(core.ButtonsTemplate)
	assert.Equal(t, "https://example.com/a.jpg", buttons.ThumbnailImageURL)
	assert.Equal(t, "caption", buttons.Text)
	// The host of the last URL-type menu action overwrites the title.
	assert.Equal(t, "foo.com", buttons.Title)

	require.Len(t, buttons.Actions, 2)
	assert.Equal(t, core.URIAction{Label: "Go", URI: "https://foo.com"}, buttons.Actions[0])
	assert.Equal(t, core.MessageAction{Label: "Say", Text: "bar"}, buttons.Actions[1])
}

func TestRender_ButtonsTemplateDefaultAction(t *testing.T) {
	msg := newRenderer().Render("https://example.com/a.jpg caption")

	buttons := msg.(core.TemplateMessage).Template.(core.ButtonsTemplate)
	assert.Equal(t, "example.com", buttons.Title)
	assert.Equal(t, []core.MenuAction{core.MessageAction{Label: "ถัดไป", Text: "ยังไง"}}, buttons.Actions)
}

func TestRender_ButtonsTemplateSkipsBlankMenuLines(t *testing.T) {
	msg := newRenderer().Render("https://example.com/a.jpg caption\n\nbar:Say")

	buttons := msg.(core.TemplateMessage).Template.(core.ButtonsTemplate)
	require.Len(t, buttons.Actions, 1)
	assert.Equal(t, core.MessageAction{Label: "Say", Text: "bar"}, buttons.Actions[0])
}

func TestRender_ButtonsDetailTruncates(t *testing.T) {
	caption := strings.Repeat("x", 80)
	msg := newRenderer().Render("https://example.com/a.jpg " + caption + "\nbar:Say")

	buttons := msg.(core.TemplateMessage).Template.(core.ButtonsTemplate)
	assert.Len(t, []rune(buttons.Text), 60)
	assert.True(t, strings.HasSuffix(buttons.Text, "..."))
}

func TestRender_PlainTextDefault(t *testing.T) {
	msg := newRenderer().Render("สวัสดีครับ")

	require.IsType(t, core.TextMessage{}, msg)
	assert.Equal(t, "สวัสดีครับ", msg.(core.TextMessage).Text)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, strings.Repeat("a", 20), truncate(strings.Repeat("a", 20), 20))

	long := truncate(strings.Repeat("a", 30), 20)
	assert.Len(t, []rune(long), 20)
	assert.Equal(t, strings.Repeat("a", 17)+"...", long)
}
