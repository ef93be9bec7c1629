package handlers

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/StounhandJ/tiktok_page/internal/downloaders"
	telegramUtils "github.com/StounhandJ/tiktok_page/internal/utils/telegram"
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	"github.com/stretchr/testify/require"
)

func TestCaptionEscapesAPIText(t *testing.T) {
	h := newTestHandler(t, &stubDownloader{}, nil)

	caption := h.caption(&downloaders.Video{
		Title:     "<b>bold</b> & co",
		Author:    "<i>x</i>",
		PlayCount: "2500000",
		LikeCount: "15",
	})

	require.Equal(t,
		"<b>&lt;b&gt;bold&lt;/b&gt; &amp; co</b>\n@&lt;i&gt;x&lt;/i&gt;\n👁️ 2.5M views ❤️ 15 likes",
		caption,
	)
}

func TestCaptionPlaceholders(t *testing.T) {
	h := newTestHandler(t, &stubDownloader{}, nil)

	require.Equal(t, "<b>TikTok Video</b>\n@Unknown", h.caption(&downloaders.Video{VideoURL: "https://cdn/v.mp4"}))
}

func TestInlineResult(t *testing.T) {
	h := newTestHandler(t, &stubDownloader{}, nil)

	video := &downloaders.Video{
		Title:        strings.Repeat("т", 300),
		VideoURL:     "https://cdn.example/" + strings.Repeat("a", 100) + ".mp4",
		ThumbnailURL: "https://cdn.example/c.jpg",
		Duration:     75,
		LikeCount:    "2000",
	}

	res := h.inlineResult(postURL, video)
	require.Len(t, res.ID, 64)
	require.Len(t, []rune(res.Title), 200)
	require.Equal(t, "video/mp4", res.MimeType)
	require.Equal(t, "01:15 ❤️ 2.0K likes", res.Description)
	require.Equal(t, postURL, res.ReplyMarkup.InlineKeyboard[0][0].URL)
	require.Equal(t, "Original", res.ReplyMarkup.InlineKeyboard[0][0].Text)
}

func TestStatsEmptyWithoutCounts(t *testing.T) {
	h := newTestHandler(t, &stubDownloader{}, nil)

	require.Empty(t, h.stats(&downloaders.Video{}))
	require.Empty(t, h.duration(&downloaders.Video{}))
}

var entity = regexp.MustCompile(`&[a-z#0-9]*;?`)

func TestCaptionLongTitleKeepsMarkupValid(t *testing.T) {
	h := newTestHandler(t, &stubDownloader{}, nil)

	cases := []string{
		strings.Repeat("a", 1017) + " & more " + strings.Repeat("b", 2000),
		strings.Repeat("x & <y> ", 400),
		strings.Repeat("ж", 3000),
	}

	for _, title := range cases {
		caption := h.caption(&downloaders.Video{
			Title:     title,
			Author:    strings.Repeat("&", 500),
			PlayCount: "2500000",
			LikeCount: "1500",
		})

		require.LessOrEqual(t, utf8.RuneCountInString(caption), captionLimit)
		require.True(t, strings.HasPrefix(caption, "<b>"))
		require.Equal(t, 1, strings.Count(caption, "</b>"))
		require.Contains(t, caption, "👁️ 2.5M views ❤️ 1.5K likes")

		for _, e := range entity.FindAllString(caption, -1) {
			require.Contains(t, []string{"&amp;", "&lt;", "&gt;"}, e, "broken entity in caption")
		}
	}
}

func TestEscapeWithinStopsOnWholeEntity(t *testing.T) {
	require.Equal(t, "ab", escapeWithin("ab&c", 4))
	require.Equal(t, "ab&amp;", escapeWithin("ab&c", 7))
	require.Equal(t, "ab&amp;c", escapeWithin("ab&c", 100))
	require.Empty(t, escapeWithin("abc", 0))
}

type telegramCalls struct {
	sent   []string
	videos []telegramUtils.InputVideo
	edits  int
}

func stubTelegram(h *Handler, sendID int, editErr error) *telegramCalls {
	calls := &telegramCalls{}

	h.sendMessage = func(_ *th.Context, _ bool, _ telego.Update, text string, args ...any) int {
		calls.sent = append(calls.sent, text)

		for _, a := range args {
			if v, ok := a.(telegramUtils.InputVideo); ok {
				calls.videos = append(calls.videos, v)
			}
		}

		return sendID
	}
	h.editMessage = func(_ *th.Context, _ telego.Update, _ int, _ string, _ ...any) error {
		calls.edits++

		return editErr
	}

	return calls
}

func chatUpdate(text string) telego.Update {
	return telego.Update{Message: &telego.Message{
		MessageID: 1,
		Text:      text,
		Chat:      telego.Chat{ID: 100},
		From:      &telego.User{ID: 100},
	}}
}

func TestMessageVideoSendsResultWhenLoadingMessageMissing(t *testing.T) {
	d := &stubDownloader{video: &downloaders.Video{Title: "Cats", VideoURL: "https://cdn.example/v.mp4"}}
	h := newTestHandler(t, d, nil)
	calls := stubTelegram(h, 0, nil)

	require.Error(t, h.MessageVideo(nil, chatUpdate(postURL)))

	require.Zero(t, calls.edits)
	require.Len(t, calls.sent, 2)
	require.Len(t, calls.videos, 1)
	require.Equal(t, "https://cdn.example/v.mp4", calls.videos[0].URL)
}

func TestMessageVideoFallsBackWhenEditFails(t *testing.T) {
	d := &stubDownloader{video: &downloaders.Video{Title: "Cats", VideoURL: "https://cdn.example/v.mp4"}}
	h := newTestHandler(t, d, nil)
	calls := stubTelegram(h, 5, errors.New("Bad Request: can't parse entities"))

	require.NoError(t, h.MessageVideo(nil, chatUpdate(postURL)))

	require.Equal(t, 1, calls.edits)
	require.Len(t, calls.sent, 2)
	require.Len(t, calls.videos, 1)
}

func TestMessageVideoEditsLoadingMessage(t *testing.T) {
	h := newTestHandler(t, &stubDownloader{err: downloaders.ErrTransport}, nil)
	calls := stubTelegram(h, 5, nil)

	require.NoError(t, h.MessageVideo(nil, chatUpdate(postURL)))

	require.Equal(t, 1, calls.edits)
	require.Len(t, calls.sent, 1)
	require.Empty(t, calls.videos)
}
